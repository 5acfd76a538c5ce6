// Package cli implements the dataquality command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tackle-hunger/data-quality/internal/classifier"
	"github.com/tackle-hunger/data-quality/internal/completeness"
	"github.com/tackle-hunger/data-quality/internal/config"
	"github.com/tackle-hunger/data-quality/internal/logger"
	"github.com/tackle-hunger/data-quality/internal/operations"
	"github.com/tackle-hunger/data-quality/internal/quality"
	"github.com/tackle-hunger/data-quality/internal/sboc"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

var RootCmd = &cobra.Command{
	Use:   "dataquality",
	Short: "Data quality analysis for charity sites and organizations",
	Long: `dataquality analyzes charity site and organization records from the
Tackle Hunger map: it classifies addresses, scores field-level data
quality, reports missing-data gaps across the collection, and can move
non-physical addresses from sites to their parent organizations.`,
}

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// app bundles the wiring shared by all commands.
type app struct {
	cfg        *config.Config
	log        logger.Logger
	classifier *classifier.AddressClassifier
	aggregator *quality.Aggregator
	analyzer   *completeness.Analyzer
}

func newApp() (*app, error) {
	path := configPath
	if path == "" {
		path = config.GetConfigPath("config.yml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Development: cfg.Service.Debug})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return &app{
		cfg:        cfg,
		log:        log,
		classifier: classifier.NewAddressClassifier(log),
		aggregator: quality.NewAggregator(log),
		analyzer: completeness.NewAnalyzerWithOptions(log, completeness.Options{
			RecommendationThreshold: cfg.Analysis.RecommendationThreshold,
		}),
	}, nil
}

// apiApp extends app with the upstream API client and operations.
type apiApp struct {
	*app
	sites *operations.Sites
	orgs  *operations.Organizations
}

func newAPIApp() (*apiApp, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}

	client, err := sboc.NewClient(a.cfg.API, nil, a.log)
	if err != nil {
		return nil, err
	}

	return &apiApp{
		app:   a,
		sites: operations.NewSites(client, a.classifier, nil, a.log),
		orgs:  operations.NewOrganizations(client, a.log),
	}, nil
}
