// Package telemetry provides OpenTelemetry instrumentation for the
// data-quality service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "data-quality"

// Metrics holds all data-quality Prometheus metrics
type Metrics struct {
	// Scoring metrics
	RecordsScored   *prometheus.CounterVec
	ScoringDuration *prometheus.HistogramVec
	ScoreValue      *prometheus.HistogramVec
	BatchSize       prometheus.Histogram

	// Address classification metrics
	AddressesClassified *prometheus.CounterVec
	AddressFixesApplied prometheus.Counter
	AddressFixesFailed  prometheus.Counter

	// Completeness analysis metrics
	AnalysesRun      prometheus.Counter
	AnalysisDuration prometheus.Histogram
	IntegrityIssues  *prometheus.GaugeVec

	// Upstream API metrics
	APIRequests   *prometheus.CounterVec
	APIDuration   *prometheus.HistogramVec
	ActiveWorkers prometheus.Gauge
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initScoringMetrics(m)
	initAddressMetrics(m)
	initAnalysisMetrics(m)
	initAPIMetrics(m)
	return m
}

func initScoringMetrics(m *Metrics) {
	m.RecordsScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataquality_records_scored_total",
		Help: "Total records scored, labeled by kind (site, organization)",
	}, []string{"kind"})

	m.ScoringDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dataquality_scoring_duration_seconds",
		Help:    "Time to score a single record",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	}, []string{"kind"})

	m.ScoreValue = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dataquality_score_value",
		Help:    "Distribution of overall quality scores",
		Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	}, []string{"kind"})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dataquality_batch_size",
		Help:    "Number of records per scoring batch",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
	})
}

func initAddressMetrics(m *Metrics) {
	m.AddressesClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataquality_addresses_classified_total",
		Help: "Total addresses classified, labeled by result (po_box, virtual, physical, indeterminate)",
	}, []string{"result"})

	m.AddressFixesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataquality_address_fixes_applied_total",
		Help: "Total address fixes successfully applied",
	})

	m.AddressFixesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataquality_address_fixes_failed_total",
		Help: "Total address fixes that failed to apply",
	})
}

func initAnalysisMetrics(m *Metrics) {
	m.AnalysesRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataquality_analyses_run_total",
		Help: "Total completeness analyses executed",
	})

	m.AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dataquality_analysis_duration_seconds",
		Help:    "Time to run a completeness analysis",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	})

	m.IntegrityIssues = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dataquality_integrity_issues",
		Help: "Cross-reference issues found in the last analysis, labeled by category",
	}, []string{"category"})
}

func initAPIMetrics(m *Metrics) {
	m.APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataquality_api_requests_total",
		Help: "Total upstream GraphQL requests, labeled by operation and outcome",
	}, []string{"operation", "outcome"})

	m.APIDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dataquality_api_request_duration_seconds",
		Help:    "Upstream GraphQL request duration",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
	}, []string{"operation"})

	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dataquality_active_workers",
		Help: "Currently active scoring worker goroutines",
	})
}

// RecordScore records metrics for a single scored record
func (p *Provider) RecordScore(ctx context.Context, kind string, score float64, duration time.Duration) {
	p.Metrics.RecordsScored.WithLabelValues(kind).Inc()
	p.Metrics.ScoringDuration.WithLabelValues(kind).Observe(duration.Seconds())
	p.Metrics.ScoreValue.WithLabelValues(kind).Observe(score)
}

// RecordBatch records the size of a scoring batch
func (p *Provider) RecordBatch(ctx context.Context, size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// RecordClassification increments the address classification counter
func (p *Provider) RecordClassification(ctx context.Context, result string) {
	if result == "" {
		result = "indeterminate"
	}
	p.Metrics.AddressesClassified.WithLabelValues(result).Inc()
}

// RecordFix records the outcome of an applied address fix
func (p *Provider) RecordFix(ctx context.Context, success bool) {
	if success {
		p.Metrics.AddressFixesApplied.Inc()
	} else {
		p.Metrics.AddressFixesFailed.Inc()
	}
}

// RecordAnalysis records a completed completeness analysis
func (p *Provider) RecordAnalysis(ctx context.Context, duration time.Duration) {
	p.Metrics.AnalysesRun.Inc()
	p.Metrics.AnalysisDuration.Observe(duration.Seconds())
}

// SetIntegrityIssues sets the issue gauge for a cross-reference category
func (p *Provider) SetIntegrityIssues(category string, count int) {
	p.Metrics.IntegrityIssues.WithLabelValues(category).Set(float64(count))
}

// RecordAPIRequest records an upstream GraphQL request
func (p *Provider) RecordAPIRequest(ctx context.Context, operation, outcome string, duration time.Duration) {
	p.Metrics.APIRequests.WithLabelValues(operation, outcome).Inc()
	p.Metrics.APIDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetActiveWorkers updates the active worker gauge
func (p *Provider) SetActiveWorkers(count int) {
	p.Metrics.ActiveWorkers.Set(float64(count))
}

// StartSpan starts a new trace span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name)
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	return ctx, span
}
