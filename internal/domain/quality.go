package domain

// FieldCategory groups field definitions for per-category score reporting.
type FieldCategory string

// Field categories, from most to least essential.
const (
	CategoryCoreRequired FieldCategory = "core_required"
	CategoryLocation     FieldCategory = "location"
	CategoryContact      FieldCategory = "contact"
	CategoryServiceInfo  FieldCategory = "service_info"
	CategoryAdditional   FieldCategory = "additional"
)

// Categories returns all field categories in reporting order.
func Categories() []FieldCategory {
	return []FieldCategory{
		CategoryCoreRequired,
		CategoryLocation,
		CategoryContact,
		CategoryServiceInfo,
		CategoryAdditional,
	}
}

// QualityScore is the per-entity scoring result. All scores are floats on
// the [0,1] scale, rounded to three decimals.
type QualityScore struct {
	OverallScore    float64                   `json:"overall_score"`
	CategoryScores  map[FieldCategory]float64 `json:"category_scores"`
	FieldScores     map[string]float64        `json:"field_scores"`
	MissingRequired []string                  `json:"missing_required"`
	EmptyFields     []string                  `json:"empty_fields"`
	TotalFields     int                       `json:"total_fields"`
	FilledFields    int                       `json:"filled_fields"`
	Completeness    float64                   `json:"completeness"`

	// Organization records blend in their child sites.
	SiteCount    int      `json:"site_count,omitempty"`
	AvgSiteScore *float64 `json:"avg_site_score,omitempty"`
}
