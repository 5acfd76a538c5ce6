package quality

import (
	"math"

	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/logger"
)

// Aggregation constants.
const (
	// missingRequiredPenalty is subtracted from the overall score per
	// missing required field, clamped at zero.
	missingRequiredPenalty = 0.1
	// orgBlendWeight and siteBlendWeight combine an organization's own
	// score with the average score of its child sites.
	orgBlendWeight  = 0.7
	siteBlendWeight = 0.3
	// scorePrecision is the number of decimals scores are rounded to.
	scorePrecision = 3
)

// Grade boundaries, inclusive-lower: a score of exactly 0.9 grades A.
const (
	gradeABoundary = 0.9
	gradeBBoundary = 0.8
	gradeCBoundary = 0.7
	gradeDBoundary = 0.6
)

// Grade converts a [0,1] quality score to a letter grade. This is the
// single grading authority; callers holding 0-100 values divide by 100.
func Grade(score float64) string {
	switch {
	case score >= gradeABoundary:
		return "A"
	case score >= gradeBBoundary:
		return "B"
	case score >= gradeCBoundary:
		return "C"
	case score >= gradeDBoundary:
		return "D"
	default:
		return "F"
	}
}

// Aggregator computes per-record quality scores from the field tables.
type Aggregator struct {
	log logger.Logger
}

// NewAggregator creates a new quality aggregator.
func NewAggregator(log logger.Logger) *Aggregator {
	return &Aggregator{log: log}
}

// ScoreRecord scores a record against an ordered field-definition table:
// per-category weighted averages, a pooled overall weighted average, missing
// and required-field tracking, and a completeness ratio. The record is never
// mutated.
func (a *Aggregator) ScoreRecord(rec domain.Record, defs []FieldDefinition) *domain.QualityScore {
	fieldScores := make(map[string]float64, len(defs))
	categoryScores := make(map[domain.FieldCategory]float64)
	missingRequired := make([]string, 0)
	emptyFields := make([]string, 0)

	totalWeighted := 0.0
	totalWeight := 0.0

	for _, category := range domain.Categories() {
		categoryTotal := 0.0
		categoryWeight := 0.0

		for _, def := range defs {
			if def.Category != category {
				continue
			}

			score := ScoreField(rec[def.Name], def)
			fieldScores[def.Name] = round3(score)

			categoryTotal += score * def.Weight
			categoryWeight += def.Weight
			totalWeighted += score * def.Weight
			totalWeight += def.Weight

			if score == 0.0 {
				emptyFields = append(emptyFields, def.Name)
				if def.Required {
					missingRequired = append(missingRequired, def.Name)
				}
			}
		}

		if categoryWeight > 0 {
			categoryScores[category] = round3(categoryTotal / categoryWeight)
		}
	}

	overall := 0.0
	if totalWeight > 0 {
		overall = totalWeighted / totalWeight
	}

	overall -= float64(len(missingRequired)) * missingRequiredPenalty
	if overall < 0 {
		overall = 0
	}

	filled := 0
	for _, s := range fieldScores {
		if s > 0 {
			filled++
		}
	}

	completeness := 0.0
	if len(defs) > 0 {
		completeness = float64(filled) / float64(len(defs))
	}

	return &domain.QualityScore{
		OverallScore:    round3(overall),
		CategoryScores:  categoryScores,
		FieldScores:     fieldScores,
		MissingRequired: missingRequired,
		EmptyFields:     emptyFields,
		TotalFields:     len(defs),
		FilledFields:    filled,
		Completeness:    round3(completeness),
	}
}

// ScoreSite scores a site record against the site field table.
func (a *Aggregator) ScoreSite(site domain.Record) *domain.QualityScore {
	return a.ScoreRecord(site, SiteFieldDefinitions)
}

// ScoreOrganization scores an organization record. When child sites are
// attached, the overall score blends the organization's own score with the
// average of its site scores.
func (a *Aggregator) ScoreOrganization(org domain.Record) *domain.QualityScore {
	score := a.ScoreRecord(org, OrganizationFieldDefinitions)

	sites := org.Sites()
	if len(sites) == 0 {
		return score
	}

	siteTotal := 0.0
	for _, site := range sites {
		siteTotal += a.ScoreSite(site).OverallScore
	}
	avgSiteScore := siteTotal / float64(len(sites))

	blended := score.OverallScore*orgBlendWeight + avgSiteScore*siteBlendWeight
	score.OverallScore = round3(blended)
	rounded := round3(avgSiteScore)
	score.AvgSiteScore = &rounded
	score.SiteCount = len(sites)

	a.log.Debug("Blended organization score with child sites",
		logger.String("organization_id", org.ID()),
		logger.Int("site_count", len(sites)),
		logger.Float64("overall_score", score.OverallScore),
	)

	return score
}

// round3 rounds to scorePrecision decimals.
func round3(v float64) float64 {
	shift := math.Pow(10, scorePrecision)
	return math.Round(v*shift) / shift
}
