// Command dataquality is the CLI for charity data quality analysis.
package main

import (
	"os"

	"github.com/tackle-hunger/data-quality/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
