// Package completeness analyzes whole collections of site and organization
// records for missing fields, cross-reference integrity, and actionable
// recommendations.
package completeness

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/logger"
	"github.com/tackle-hunger/data-quality/internal/quality"
)

// Analysis constants.
const (
	// defaultRecommendationThreshold is the missing percentage above which
	// a critical field earns a recommendation line.
	defaultRecommendationThreshold = 20.0
	// defaultMaxEntityGaps caps the per-collection critical-gap list.
	defaultMaxEntityGaps = 20
	// defaultMaxExamples caps the example lists in the integrity report.
	defaultMaxExamples = 10
	// criticalWeight and optionalWeight blend the per-group sub-scores
	// into the collection completeness score.
	criticalWeight = 0.7
	optionalWeight = 0.3
)

// siteCriticalFields materially affect a site's usability when absent.
var siteCriticalFields = []string{
	"name", "streetAddress", "city", "state", "zip",
	"publicEmail", "publicPhone",
}

// siteOptionalFields are tracked but not treated as critical.
var siteOptionalFields = []string{
	"website", "description", "serviceArea", "acceptsFoodDonations", "ein",
}

var orgCriticalFields = []string{"name"}

var orgOptionalFields = []string{
	"streetAddress", "addressLine2", "city", "state", "zip",
	"publicEmail", "publicPhone", "website", "description",
	"ein", "nonProfitStatus",
}

// coreRecordFields is the organization field set checked during the
// site/organization cross-reference.
var coreRecordFields = []string{"name", "streetAddress", "city", "state", "zip"}

// Options tunes the analyzer. Zero values select the defaults.
type Options struct {
	// RecommendationThreshold is the missing percentage above which a
	// critical field is flagged.
	RecommendationThreshold float64
	// MaxEntityGaps caps the critical-gap lists.
	MaxEntityGaps int
	// MaxExamples caps the integrity example lists.
	MaxExamples int
	// Clock supplies the report timestamp. Defaults to time.Now.
	Clock func() time.Time
	// NewID supplies report identifiers. Defaults to uuid.NewString.
	NewID func() string
}

func (o *Options) setDefaults() {
	if o.RecommendationThreshold == 0 {
		o.RecommendationThreshold = defaultRecommendationThreshold
	}
	if o.MaxEntityGaps == 0 {
		o.MaxEntityGaps = defaultMaxEntityGaps
	}
	if o.MaxExamples == 0 {
		o.MaxExamples = defaultMaxExamples
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
}

// Analyzer computes collection-level completeness reports. It works over
// the snapshot it is handed and retains nothing between calls.
type Analyzer struct {
	opts Options
	log  logger.Logger
}

// NewAnalyzer creates an analyzer with default options.
func NewAnalyzer(log logger.Logger) *Analyzer {
	return NewAnalyzerWithOptions(log, Options{})
}

// NewAnalyzerWithOptions creates an analyzer with custom options.
func NewAnalyzerWithOptions(log logger.Logger, opts Options) *Analyzer {
	opts.setDefaults()
	return &Analyzer{opts: opts, log: log}
}

// Analyze produces the full completeness report for a snapshot of sites and
// organizations: per-collection field statistics and grades, the combined
// cross-check, and ordered recommendations.
func (a *Analyzer) Analyze(sites, orgs []domain.Record) *domain.CompletenessReport {
	siteReport := a.analyzeCollection(sites, siteCriticalFields, siteOptionalFields)
	orgReport := a.analyzeCollection(orgs, orgCriticalFields, orgOptionalFields)
	integrity := a.crossCheck(sites, orgs)

	report := &domain.CompletenessReport{
		Summary: domain.ReportSummary{
			ReportID:           a.opts.NewID(),
			GeneratedAt:        a.opts.Clock(),
			TotalSites:         len(sites),
			TotalOrganizations: len(orgs),
		},
		Sites:           siteReport,
		Organizations:   orgReport,
		Integrity:       integrity,
		Recommendations: a.recommendations(siteReport, orgReport, integrity),
	}

	a.log.Info("Completeness analysis complete",
		logger.Int("sites", len(sites)),
		logger.Int("organizations", len(orgs)),
		logger.Float64("site_score", siteReport.Completeness.Score),
		logger.Float64("org_score", orgReport.Completeness.Score),
	)

	return report
}

// analyzeCollection computes field statistics and the critical-gap list for
// one entity kind.
func (a *Analyzer) analyzeCollection(records []domain.Record, critical, optional []string) *domain.CollectionReport {
	allFields := make([]string, 0, len(critical)+len(optional))
	allFields = append(allFields, critical...)
	allFields = append(allFields, optional...)

	criticalSet := make(map[string]bool, len(critical))
	for _, f := range critical {
		criticalSet[f] = true
	}

	missingCounts := make(map[string]int, len(allFields))
	gaps := make([]domain.EntityGap, 0)

	for _, rec := range records {
		var missingCritical, missingOptional []string
		for _, field := range allFields {
			if !rec.IsMissing(field) {
				continue
			}
			missingCounts[field]++
			if criticalSet[field] {
				missingCritical = append(missingCritical, field)
			} else {
				missingOptional = append(missingOptional, field)
			}
		}

		if len(missingCritical) > 0 {
			gaps = append(gaps, domain.EntityGap{
				ID:              rec.ID(),
				Name:            entityName(rec),
				MissingCritical: missingCritical,
				MissingOptional: missingOptional,
				TotalMissing:    len(missingCritical) + len(missingOptional),
			})
		}
	}

	// Worst entities first: most missing critical fields, then most
	// missing overall. Stable so equal entities keep input order.
	sort.SliceStable(gaps, func(i, j int) bool {
		if len(gaps[i].MissingCritical) != len(gaps[j].MissingCritical) {
			return len(gaps[i].MissingCritical) > len(gaps[j].MissingCritical)
		}
		return gaps[i].TotalMissing > gaps[j].TotalMissing
	})
	if len(gaps) > a.opts.MaxEntityGaps {
		gaps = gaps[:a.opts.MaxEntityGaps]
	}

	stats := make(map[string]domain.FieldStat, len(allFields))
	total := len(records)
	for _, field := range allFields {
		count := missingCounts[field]
		percentage := 0.0
		if total > 0 {
			percentage = round2(float64(count) / float64(total) * 100)
		}
		stats[field] = domain.FieldStat{
			MissingCount:      count,
			MissingPercentage: percentage,
			IsCritical:        criticalSet[field],
		}
	}

	return &domain.CollectionReport{
		Total:           total,
		FieldStatistics: stats,
		CriticalGaps:    gaps,
		Completeness:    a.completenessScore(stats, critical, optional, total),
	}
}

// completenessScore blends critical and optional sub-scores, each defined as
// 100 minus the group's average missing percentage.
func (a *Analyzer) completenessScore(stats map[string]domain.FieldStat, critical, optional []string, total int) domain.CompletenessScore {
	if total == 0 {
		return domain.CompletenessScore{Score: 0, Grade: "F"}
	}

	criticalScore := 0.0
	if len(critical) > 0 {
		criticalScore = 100 - averageMissing(stats, critical)
	}
	optionalScore := 0.0
	if len(optional) > 0 {
		optionalScore = 100 - averageMissing(stats, optional)
	}

	score := round2(criticalScore*criticalWeight + optionalScore*optionalWeight)
	return domain.CompletenessScore{
		Score: score,
		Grade: quality.Grade(score / 100),
	}
}

func averageMissing(stats map[string]domain.FieldStat, fields []string) float64 {
	sum := 0.0
	for _, f := range fields {
		sum += stats[f].MissingPercentage
	}
	return sum / float64(len(fields))
}

// crossCheck resolves each site against its declared parent organization,
// flagging orphans and sites whose parent is missing core-record fields.
func (a *Analyzer) crossCheck(sites, orgs []domain.Record) *domain.IntegrityReport {
	orgMap := make(map[string]domain.Record, len(orgs))
	for _, org := range orgs {
		if id := org.ID(); id != "" {
			orgMap[id] = org
		}
	}

	var orphans, incomplete []domain.IntegrityIssue

	for _, site := range sites {
		orgID := site.OrganizationID()
		if orgID == "" {
			orphans = append(orphans, domain.IntegrityIssue{
				SiteID:   site.ID(),
				SiteName: entityName(site),
				Reason:   "no organizationId",
			})
			continue
		}

		org, ok := orgMap[orgID]
		if !ok {
			orphans = append(orphans, domain.IntegrityIssue{
				SiteID:         site.ID(),
				SiteName:       entityName(site),
				OrganizationID: orgID,
				Reason:         "organization not found",
			})
			continue
		}

		var missing []string
		for _, field := range coreRecordFields {
			if org.IsMissing(field) {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			incomplete = append(incomplete, domain.IntegrityIssue{
				SiteID:         site.ID(),
				SiteName:       entityName(site),
				OrganizationID: orgID,
				Reason:         "organization missing: " + strings.Join(missing, ", "),
			})
		}
	}

	return &domain.IntegrityReport{
		OrphanedSites:      a.integrityGroup(orphans, len(sites)),
		IncompleteParents:  a.integrityGroup(incomplete, len(sites)),
		TotalSites:         len(sites),
		TotalOrganizations: len(orgs),
	}
}

func (a *Analyzer) integrityGroup(issues []domain.IntegrityIssue, totalSites int) domain.IntegrityGroup {
	percentage := 0.0
	if totalSites > 0 {
		percentage = round2(float64(len(issues)) / float64(totalSites) * 100)
	}
	examples := issues
	if len(examples) > a.opts.MaxExamples {
		examples = examples[:a.opts.MaxExamples]
	}
	return domain.IntegrityGroup{
		Count:      len(issues),
		Percentage: percentage,
		Examples:   examples,
	}
}

// recommendations emits field-level issues first, then integrity issues,
// then a single affirmative line when nothing was flagged. Field order
// follows the declared field lists so output is deterministic.
func (a *Analyzer) recommendations(sites, orgs *domain.CollectionReport, integrity *domain.IntegrityReport) []string {
	recs := make([]string, 0)

	for _, field := range siteCriticalFields {
		stat := sites.FieldStatistics[field]
		if stat.MissingPercentage > a.opts.RecommendationThreshold {
			recs = append(recs, fmt.Sprintf(
				"Priority: %v%% of sites missing critical field '%s'",
				stat.MissingPercentage, field))
		}
	}

	for _, field := range orgCriticalFields {
		stat := orgs.FieldStatistics[field]
		if stat.MissingPercentage > a.opts.RecommendationThreshold {
			recs = append(recs, fmt.Sprintf(
				"Priority: %v%% of organizations missing critical field '%s'",
				stat.MissingPercentage, field))
		}
	}

	if integrity.OrphanedSites.Count > 0 {
		recs = append(recs, fmt.Sprintf(
			"Data integrity issue: %d sites have missing or invalid organization references",
			integrity.OrphanedSites.Count))
	}
	if integrity.IncompleteParents.Count > 0 {
		recs = append(recs, fmt.Sprintf(
			"Data quality issue: %d sites have organizations with missing critical data",
			integrity.IncompleteParents.Count))
	}

	if len(recs) == 0 {
		recs = append(recs, "Good news: No critical data quality issues detected")
	}

	return recs
}

func entityName(rec domain.Record) string {
	if rec.IsMissing("name") {
		return "Unknown"
	}
	return rec.Name()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
