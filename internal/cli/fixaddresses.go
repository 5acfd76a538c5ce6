package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tackle-hunger/data-quality/internal/export"
	"github.com/tackle-hunger/data-quality/internal/logger"
)

var (
	fixLimit int
	fixApply bool
)

var fixAddressesCmd = &cobra.Command{
	Use:   "fix-addresses",
	Short: "Move non-physical addresses from sites to organizations",
	Long: `Identify sites whose street address is a PO box or virtual mailbox,
and move those addresses to the parent organization. The site receives
a physical address from a sibling site when one exists.

Without --apply this is a dry run that only prints the proposed fixes.

Examples:
  dataquality fix-addresses --limit 50
  dataquality fix-addresses --limit 50 --apply`,
	RunE:         runFixAddresses,
	SilenceUsage: true,
}

func init() {
	fixAddressesCmd.Flags().IntVar(&fixLimit, "limit", 0, "Maximum sites to process (0 uses config)")
	fixAddressesCmd.Flags().BoolVar(&fixApply, "apply", false, "Apply the fixes instead of previewing them")
	RootCmd.AddCommand(fixAddressesCmd)
}

func runFixAddresses(cmd *cobra.Command, _ []string) error {
	api, err := newAPIApp()
	if err != nil {
		return err
	}
	defer func() { _ = api.log.Sync() }()

	limit := fixLimit
	if limit <= 0 {
		limit = api.cfg.Analysis.SiteLimit
	}

	if fixApply {
		processed, applied, err := api.sites.FixNonFoodServiceAddresses(cmd.Context(), limit)
		if err != nil {
			return err
		}
		fmt.Printf("Sites analyzed: %d, fixes applied: %d\n", processed, applied)
		return nil
	}

	sites, err := api.sites.FetchForAI(cmd.Context(), limit, 0)
	if err != nil {
		return err
	}
	fixes := api.sites.AnalyzeAddresses(sites)

	api.log.Info("dry run, no changes applied",
		logger.Int("sites", len(sites)),
		logger.Int("fixes", len(fixes)))

	return export.WriteJSON(os.Stdout, map[string]any{
		"sites_analyzed": len(sites),
		"fixes":          fixes,
	})
}
