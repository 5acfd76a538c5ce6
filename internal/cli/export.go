package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/export"
	"github.com/tackle-hunger/data-quality/internal/processor"
)

var (
	exportKind   string
	exportLimit  int
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export raw records to CSV",
	Long: `Fetch site or organization records from the API and export them to
a CSV file with one column per field.

Examples:
  dataquality export --kind site --limit 10 --output sites.csv`,
	RunE:         runExport,
	SilenceUsage: true,
}

func init() {
	exportCmd.Flags().StringVar(&exportKind, "kind", processor.KindSite, "Record kind (site, organization)")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "Maximum records to fetch (0 uses config)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Write CSV to a file instead of stdout")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	api, err := newAPIApp()
	if err != nil {
		return err
	}
	defer func() { _ = api.log.Sync() }()

	limit := exportLimit
	if limit <= 0 {
		limit = api.cfg.Analysis.SiteLimit
	}

	var records []domain.Record
	switch exportKind {
	case processor.KindSite:
		records, err = api.sites.FetchForAI(cmd.Context(), limit, 0)
	case processor.KindOrganization:
		records, err = api.orgs.FetchForAI(cmd.Context(), limit)
	default:
		return fmt.Errorf("unknown kind %q", exportKind)
	}
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(exportOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	return export.WriteRecordsCSV(out, records)
}
