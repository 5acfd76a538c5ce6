package api

import (
	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/processor"
)

// ClassifyAddressRequest asks for a single address classification.
type ClassifyAddressRequest struct {
	StreetAddress string `json:"street_address" binding:"required"`
	AddressLine2  string `json:"address_line2"`
}

// ClassifyAddressResponse carries the classification and the suitability
// verdict for a food service location.
type ClassifyAddressResponse struct {
	Classification  domain.AddressClassification `json:"classification"`
	SuitableForSite bool                         `json:"suitable_for_site"`
}

// ScoreResponse carries a single entity's quality score with its grade.
type ScoreResponse struct {
	Score *domain.QualityScore `json:"score"`
	Grade string               `json:"grade"`
}

// BatchScoreRequest asks for scores over a batch of records.
type BatchScoreRequest struct {
	Kind    string          `json:"kind" binding:"required,oneof=site organization"`
	Records []domain.Record `json:"records" binding:"required,min=1,max=500"`
}

// BatchScoreResponse carries scores for a batch, in request order.
type BatchScoreResponse struct {
	Results []processor.ScoreResult `json:"results"`
	Total   int                     `json:"total"`
}

// SummaryResponse condenses a completeness report to its headline numbers.
type SummaryResponse struct {
	Summary         domain.ReportSummary     `json:"summary"`
	Sites           domain.CompletenessScore `json:"sites"`
	Organizations   domain.CompletenessScore `json:"organizations"`
	Recommendations []string                 `json:"recommendations"`
}

// PreviewFixesResponse lists proposed address fixes without applying them.
type PreviewFixesResponse struct {
	Fixes         []domain.AddressFix `json:"fixes"`
	SitesAnalyzed int                 `json:"sites_analyzed"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
