package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tackle-hunger/data-quality/internal/export"
)

var classifyLine2 string

var classifyCmd = &cobra.Command{
	Use:   "classify <street-address>",
	Short: "Classify a street address",
	Long: `Classify a street address as PO box, virtual mailbox, or physical
location, and report whether it is suitable as a food service site.

Examples:
  dataquality classify "P.O. Box 123"
  dataquality classify "123 Main Street" --line2 "Suite 4"`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runClassify,
	SilenceUsage: true,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyLine2, "line2", "", "Second address line")
	RootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()

	address := strings.Join(args, " ")
	result := a.classifier.Classify(address, classifyLine2)

	return export.WriteJSON(os.Stdout, map[string]any{
		"classification":    result,
		"suitable_for_site": a.classifier.IsSuitableForSite(address, classifyLine2),
	})
}
