package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/tackle-hunger/data-quality/internal/classifier"
	"github.com/tackle-hunger/data-quality/internal/completeness"
	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/logger"
	"github.com/tackle-hunger/data-quality/internal/processor"
	"github.com/tackle-hunger/data-quality/internal/quality"
	"github.com/tackle-hunger/data-quality/internal/telemetry"
)

const defaultFetchLimit = 100

// SiteSource fetches sites and analyzes their addresses.
type SiteSource interface {
	FetchForAI(ctx context.Context, limit, offset int) ([]domain.Record, error)
	AnalyzeAddresses(sites []domain.Record) []domain.AddressFix
}

// OrganizationSource fetches organizations with their nested sites.
type OrganizationSource interface {
	FetchForAI(ctx context.Context, limit int) ([]domain.Record, error)
}

// Handler handles HTTP requests for the data-quality API
type Handler struct {
	classifier  *classifier.AddressClassifier
	aggregator  *quality.Aggregator
	batchScorer *processor.BatchScorer
	analyzer    *completeness.Analyzer
	sites       SiteSource
	orgs        OrganizationSource
	telemetry   *telemetry.Provider
	log         logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	addressClassifier *classifier.AddressClassifier,
	aggregator *quality.Aggregator,
	batchScorer *processor.BatchScorer,
	analyzer *completeness.Analyzer,
	sites SiteSource,
	orgs OrganizationSource,
	provider *telemetry.Provider,
	log logger.Logger,
) *Handler {
	return &Handler{
		classifier:  addressClassifier,
		aggregator:  aggregator,
		batchScorer: batchScorer,
		analyzer:    analyzer,
		sites:       sites,
		orgs:        orgs,
		telemetry:   provider,
		log:         log,
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ReadyCheck handles GET /ready. The engine has no local state to warm up,
// so readiness tracks liveness.
func (h *Handler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// ClassifyAddress handles POST /api/v1/classify/address
func (h *Handler) ClassifyAddress(c *gin.Context) {
	var req ClassifyAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result := h.classifier.Classify(req.StreetAddress, req.AddressLine2)
	if h.telemetry != nil {
		h.telemetry.RecordClassification(c.Request.Context(), classificationLabel(result))
	}

	c.JSON(http.StatusOK, ClassifyAddressResponse{
		Classification:  result,
		SuitableForSite: h.classifier.IsSuitableForSite(req.StreetAddress, req.AddressLine2),
	})
}

// ScoreSite handles POST /api/v1/quality/site
func (h *Handler) ScoreSite(c *gin.Context) {
	h.scoreRecord(c, processor.KindSite)
}

// ScoreOrganization handles POST /api/v1/quality/organization
func (h *Handler) ScoreOrganization(c *gin.Context) {
	h.scoreRecord(c, processor.KindOrganization)
}

func (h *Handler) scoreRecord(c *gin.Context, kind string) {
	var record domain.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	start := time.Now()
	var score *domain.QualityScore
	if kind == processor.KindOrganization {
		score = h.aggregator.ScoreOrganization(record)
	} else {
		score = h.aggregator.ScoreSite(record)
	}

	if h.telemetry != nil {
		h.telemetry.RecordScore(c.Request.Context(), kind, score.OverallScore, time.Since(start))
	}

	c.JSON(http.StatusOK, ScoreResponse{
		Score: score,
		Grade: quality.Grade(score.OverallScore),
	})
}

// ScoreBatch handles POST /api/v1/quality/batch
func (h *Handler) ScoreBatch(c *gin.Context) {
	var req BatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	// Batch size and per-record score metrics are recorded by the scorer.
	results := h.batchScorer.Score(c.Request.Context(), req.Records, req.Kind)

	c.JSON(http.StatusOK, BatchScoreResponse{
		Results: results,
		Total:   len(results),
	})
}

// MissingData handles GET /api/v1/analysis/missing-data
func (h *Handler) MissingData(c *gin.Context) {
	report, ok := h.runAnalysis(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// AnalysisSummary handles GET /api/v1/analysis/summary
func (h *Handler) AnalysisSummary(c *gin.Context) {
	report, ok := h.runAnalysis(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		Summary:         report.Summary,
		Sites:           report.Sites.Completeness,
		Organizations:   report.Organizations.Completeness,
		Recommendations: report.Recommendations,
	})
}

// runAnalysis fetches current data and runs the completeness analysis.
// On failure it writes the error response and returns false.
func (h *Handler) runAnalysis(c *gin.Context) (*domain.CompletenessReport, bool) {
	ctx := c.Request.Context()
	if h.telemetry != nil {
		var span trace.Span
		ctx, span = h.telemetry.StartSpan(ctx, "completeness-analysis")
		defer span.End()
	}

	limit := queryInt(c, "limit", defaultFetchLimit)
	siteLimit := queryInt(c, "site_limit", limit)
	orgLimit := queryInt(c, "org_limit", limit)

	sites, err := h.sites.FetchForAI(ctx, siteLimit, 0)
	if err != nil {
		h.log.Error("failed to fetch sites", logger.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to fetch sites"})
		return nil, false
	}

	orgs, err := h.orgs.FetchForAI(ctx, orgLimit)
	if err != nil {
		h.log.Error("failed to fetch organizations", logger.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to fetch organizations"})
		return nil, false
	}

	start := time.Now()
	report := h.analyzer.Analyze(sites, orgs)

	if h.telemetry != nil {
		h.telemetry.RecordAnalysis(ctx, time.Since(start))
		h.telemetry.SetIntegrityIssues("orphaned_sites", report.Integrity.OrphanedSites.Count)
		h.telemetry.SetIntegrityIssues("incomplete_organizations", report.Integrity.IncompleteParents.Count)
	}

	return report, true
}

// PreviewFixes handles GET /api/v1/fixes/preview. It reports the fixes that
// would be applied without changing anything upstream.
func (h *Handler) PreviewFixes(c *gin.Context) {
	ctx := c.Request.Context()
	limit := queryInt(c, "limit", defaultFetchLimit)

	sites, err := h.sites.FetchForAI(ctx, limit, 0)
	if err != nil {
		h.log.Error("failed to fetch sites", logger.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to fetch sites"})
		return
	}

	fixes := h.sites.AnalyzeAddresses(sites)
	if fixes == nil {
		fixes = []domain.AddressFix{}
	}

	c.JSON(http.StatusOK, PreviewFixesResponse{
		Fixes:         fixes,
		SitesAnalyzed: len(sites),
	})
}

// classificationLabel maps a classification to its metric label.
func classificationLabel(result domain.AddressClassification) string {
	switch {
	case result.IsPoBox:
		return "po_box"
	case result.IsPhysicalAddress:
		return "physical"
	case result.Confidence == classifier.VirtualConfidence:
		return "virtual"
	default:
		return "indeterminate"
	}
}

// queryInt reads an integer query parameter with a default.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
