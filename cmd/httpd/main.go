// Command httpd runs the data-quality HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tackle-hunger/data-quality/internal/api"
	"github.com/tackle-hunger/data-quality/internal/classifier"
	"github.com/tackle-hunger/data-quality/internal/completeness"
	"github.com/tackle-hunger/data-quality/internal/config"
	"github.com/tackle-hunger/data-quality/internal/logger"
	"github.com/tackle-hunger/data-quality/internal/operations"
	"github.com/tackle-hunger/data-quality/internal/processor"
	"github.com/tackle-hunger/data-quality/internal/quality"
	"github.com/tackle-hunger/data-quality/internal/sboc"
	"github.com/tackle-hunger/data-quality/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting data-quality service",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.String("environment", cfg.API.Environment))

	provider := telemetry.NewProvider()

	client, err := sboc.NewClient(cfg.API, provider, log)
	if err != nil {
		return fmt.Errorf("create api client: %w", err)
	}

	addressClassifier := classifier.NewAddressClassifier(log)
	aggregator := quality.NewAggregator(log)
	batchScorer := processor.NewBatchScorer(aggregator, cfg.Service.Concurrency, provider, log)
	analyzer := completeness.NewAnalyzerWithOptions(log, completeness.Options{
		RecommendationThreshold: cfg.Analysis.RecommendationThreshold,
	})
	sites := operations.NewSites(client, addressClassifier, provider, log)
	orgs := operations.NewOrganizations(client, log)

	handler := api.NewHandler(addressClassifier, aggregator, batchScorer, analyzer, sites, orgs, provider, log)
	server := api.NewServer(handler, api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	}, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
