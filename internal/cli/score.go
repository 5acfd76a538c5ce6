package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/export"
	"github.com/tackle-hunger/data-quality/internal/processor"
)

var (
	scoreKind   string
	scoreLimit  int
	scoreInput  string
	scoreOutput string
	scoreCSV    bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score record quality",
	Long: `Score the field-level data quality of site or organization records.

Records come from the API by default, or from a local JSON file with
--input. Output is JSON, or CSV with --csv.

Examples:
  dataquality score --kind site --limit 50
  dataquality score --kind organization --csv --output orgs.csv
  dataquality score --input sites.json --kind site`,
	RunE:         runScore,
	SilenceUsage: true,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreKind, "kind", processor.KindSite, "Record kind (site, organization)")
	scoreCmd.Flags().IntVar(&scoreLimit, "limit", 0, "Maximum records to fetch (0 uses config)")
	scoreCmd.Flags().StringVar(&scoreInput, "input", "", "Read records from a JSON file instead of the API")
	scoreCmd.Flags().StringVar(&scoreOutput, "output", "", "Write results to a file instead of stdout")
	scoreCmd.Flags().BoolVar(&scoreCSV, "csv", false, "Write CSV instead of JSON")
	RootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if scoreKind != processor.KindSite && scoreKind != processor.KindOrganization {
		return fmt.Errorf("unknown kind %q", scoreKind)
	}

	var records []domain.Record
	var a *app

	if scoreInput != "" {
		local, err := newApp()
		if err != nil {
			return err
		}
		a = local
		records, err = readRecordsFile(scoreInput)
		if err != nil {
			return err
		}
	} else {
		api, err := newAPIApp()
		if err != nil {
			return err
		}
		a = api.app

		limit := scoreLimit
		if limit <= 0 {
			limit = a.cfg.Analysis.SiteLimit
		}
		if scoreKind == processor.KindOrganization {
			records, err = api.orgs.FetchForAI(cmd.Context(), limit)
		} else {
			records, err = api.sites.FetchForAI(cmd.Context(), limit, 0)
		}
		if err != nil {
			return err
		}
	}
	defer func() { _ = a.log.Sync() }()

	scorer := processor.NewBatchScorer(a.aggregator, a.cfg.Service.Concurrency, nil, a.log)
	results := scorer.Score(cmd.Context(), records, scoreKind)

	out, closeOut, err := openOutput(scoreOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	if scoreCSV {
		return export.WriteScoresCSV(out, results)
	}
	return export.WriteJSON(out, results)
}

func readRecordsFile(path string) ([]domain.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var records []domain.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// openOutput returns stdout or a created file, with a close func that is a
// no-op for stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
