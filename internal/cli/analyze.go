package cli

import (
	"github.com/spf13/cobra"

	"github.com/tackle-hunger/data-quality/internal/export"
	"github.com/tackle-hunger/data-quality/internal/logger"
)

var (
	analyzeSiteLimit int
	analyzeOrgLimit  int
	analyzeOutput    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a collection-wide completeness analysis",
	Long: `Fetch sites and organizations, compute per-field missing-data
statistics, flag critical gaps and cross-reference issues, and print
the completeness report as JSON.

Examples:
  dataquality analyze
  dataquality analyze --site-limit 500 --output report.json`,
	RunE:         runAnalyze,
	SilenceUsage: true,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeSiteLimit, "site-limit", 0, "Maximum sites to fetch (0 uses config)")
	analyzeCmd.Flags().IntVar(&analyzeOrgLimit, "org-limit", 0, "Maximum organizations to fetch (0 uses config)")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "Write the report to a file instead of stdout")
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	api, err := newAPIApp()
	if err != nil {
		return err
	}
	defer func() { _ = api.log.Sync() }()

	siteLimit := analyzeSiteLimit
	if siteLimit <= 0 {
		siteLimit = api.cfg.Analysis.SiteLimit
	}
	orgLimit := analyzeOrgLimit
	if orgLimit <= 0 {
		orgLimit = api.cfg.Analysis.OrgLimit
	}

	sites, err := api.sites.FetchForAI(cmd.Context(), siteLimit, 0)
	if err != nil {
		return err
	}
	orgs, err := api.orgs.FetchForAI(cmd.Context(), orgLimit)
	if err != nil {
		return err
	}

	api.log.Info("running completeness analysis",
		logger.Int("sites", len(sites)),
		logger.Int("organizations", len(orgs)))

	report := api.analyzer.Analyze(sites, orgs)

	out, closeOut, err := openOutput(analyzeOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	return export.WriteJSON(out, report)
}
