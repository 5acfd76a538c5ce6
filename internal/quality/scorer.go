package quality

import (
	"fmt"
	"strings"

	"github.com/tackle-hunger/data-quality/internal/domain"
)

// Field scoring constants.
const (
	// baseFieldScore is the score for a valid field before quality
	// adjustments.
	baseFieldScore = 1.0
	// lengthBonusDivisor converts free-text length into a bonus.
	lengthBonusDivisor = 100.0
	// maxLengthBonus caps the free-text length bonus.
	maxLengthBonus = 0.3
	// placeholderMultiplier heavily penalizes placeholder values.
	placeholderMultiplier = 0.3
	// shortValueMultiplier penalizes values under minValueLength.
	shortValueMultiplier = 0.5
	// minValueLength is the trimmed length below which a value is
	// considered low quality.
	minValueLength = 3
)

// placeholderTokens mark a value as filler rather than data. The check is a
// case-insensitive substring match, preserved as configurable rather than
// derived.
var placeholderTokens = []string{"n/a", "none", "unknown", "tbd", "todo"}

// freeTextFields get a length bonus for substantive content.
var freeTextFields = map[string]bool{
	"description": true,
	"serviceArea": true,
}

// ScoreField returns the quality contribution of a single field value in
// [0,1]. Missing values and pattern mismatches score 0; otherwise the base
// score is adjusted by a quality multiplier and clamped to 1.0.
func ScoreField(value any, def FieldDefinition) float64 {
	if !validateField(value, def) {
		return 0.0
	}

	multiplier := 1.0

	if s, ok := value.(string); ok {
		if freeTextFields[def.Name] {
			bonus := float64(len(strings.TrimSpace(s))) / lengthBonusDivisor
			if bonus > maxLengthBonus {
				bonus = maxLengthBonus
			}
			multiplier += bonus
		}

		lower := strings.ToLower(s)
		if containsPlaceholder(lower) {
			multiplier = placeholderMultiplier
		} else if len(strings.TrimSpace(s)) < minValueLength {
			multiplier = shortValueMultiplier
		}
	}

	score := baseFieldScore * multiplier
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// validateField reports whether a value is present and, when the definition
// declares a pattern, whether it matches. Non-string values are coerced to
// strings for pattern checks rather than rejected.
func validateField(value any, def FieldDefinition) bool {
	if domain.IsMissingValue(value) {
		return false
	}

	if def.Pattern != nil {
		s, ok := value.(string)
		if !ok {
			s = fmt.Sprint(value)
		}
		return def.Pattern.MatchString(s)
	}

	return true
}

// containsPlaceholder reports whether a lower-cased value contains any
// known placeholder token.
func containsPlaceholder(lower string) bool {
	for _, token := range placeholderTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
