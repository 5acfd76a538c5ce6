package domain

import "time"

// FieldStat is a per-field missing-value statistic over a collection.
type FieldStat struct {
	MissingCount      int     `json:"missing_count"`
	MissingPercentage float64 `json:"missing_percentage"`
	IsCritical        bool    `json:"is_critical"`
}

// EntityGap identifies an entity with at least one missing critical field.
type EntityGap struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	MissingCritical []string `json:"missing_critical"`
	MissingOptional []string `json:"missing_optional"`
	TotalMissing    int      `json:"total_missing"`
}

// CompletenessScore grades a collection's overall completeness on a 0-100
// scale with a letter grade.
type CompletenessScore struct {
	Score float64 `json:"score"`
	Grade string  `json:"grade"`
}

// CollectionReport covers one entity kind (sites or organizations).
type CollectionReport struct {
	Total           int                  `json:"total"`
	FieldStatistics map[string]FieldStat `json:"field_statistics"`
	CriticalGaps    []EntityGap          `json:"critical_gaps"`
	Completeness    CompletenessScore    `json:"completeness"`
}

// IntegrityGroup carries one class of cross-reference problem between sites
// and their parent organizations.
type IntegrityGroup struct {
	Count      int              `json:"count"`
	Percentage float64          `json:"percentage"`
	Examples   []IntegrityIssue `json:"examples"`
}

// IntegrityIssue is a single flagged site with the reason it was flagged.
type IntegrityIssue struct {
	SiteID         string `json:"site_id"`
	SiteName       string `json:"site_name"`
	OrganizationID string `json:"organization_id,omitempty"`
	Reason         string `json:"reason"`
}

// IntegrityReport is the combined site/organization cross-check.
type IntegrityReport struct {
	OrphanedSites      IntegrityGroup `json:"orphaned_sites"`
	IncompleteParents  IntegrityGroup `json:"sites_with_incomplete_organizations"`
	TotalSites         int            `json:"total_sites"`
	TotalOrganizations int            `json:"total_organizations"`
}

// ReportSummary carries report identity and totals.
type ReportSummary struct {
	ReportID           string    `json:"report_id"`
	GeneratedAt        time.Time `json:"generated_at"`
	TotalSites         int       `json:"total_sites"`
	TotalOrganizations int       `json:"total_organizations"`
}

// CompletenessReport is the collection-level analysis result.
type CompletenessReport struct {
	Summary         ReportSummary     `json:"summary"`
	Sites           *CollectionReport `json:"sites"`
	Organizations   *CollectionReport `json:"organizations"`
	Integrity       *IntegrityReport  `json:"integrity"`
	Recommendations []string          `json:"recommendations"`
}
