package quality

import (
	"testing"

	"github.com/tackle-hunger/data-quality/internal/domain"
)

func TestScoreField(t *testing.T) {
	plain := FieldDefinition{Name: "name", Category: domain.CategoryCoreRequired, Weight: 1.0}
	email := FieldDefinition{Name: "publicEmail", Category: domain.CategoryContact, Weight: 0.8, Pattern: emailPattern}
	description := FieldDefinition{Name: "description", Category: domain.CategoryServiceInfo, Weight: 0.6}

	tests := []struct {
		name  string
		value any
		def   FieldDefinition
		want  float64
	}{
		{
			name:  "nil value scores zero",
			value: nil,
			def:   plain,
			want:  0.0,
		},
		{
			name:  "empty string scores zero",
			value: "",
			def:   plain,
			want:  0.0,
		},
		{
			name:  "literal null scores zero",
			value: "null",
			def:   plain,
			want:  0.0,
		},
		{
			name:  "whitespace scores zero",
			value: "   ",
			def:   plain,
			want:  0.0,
		},
		{
			name:  "normal value scores full",
			value: "Community Food Bank",
			def:   plain,
			want:  1.0,
		},
		{
			name:  "valid email matches pattern",
			value: "info@example.org",
			def:   email,
			want:  1.0,
		},
		{
			name:  "invalid email fails pattern",
			value: "not-an-email",
			def:   email,
			want:  0.0,
		},
		{
			name:  "placeholder value penalized",
			value: "N/A",
			def:   plain,
			want:  0.3,
		},
		{
			name:  "tbd placeholder penalized",
			value: "TBD",
			def:   plain,
			want:  0.3,
		},
		{
			name:  "very short value penalized",
			value: "ab",
			def:   plain,
			want:  0.5,
		},
		{
			name:  "long description capped at full score",
			value: "A soup kitchen serving hot meals every weekday, plus a weekend pantry with fresh produce for local families in need.",
			def:   description,
			want:  1.0,
		},
		{
			name:  "non-string value accepted",
			value: true,
			def:   FieldDefinition{Name: "acceptsFoodDonations", Category: domain.CategoryServiceInfo, Weight: 0.4},
			want:  1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreField(tt.value, tt.def); got != tt.want {
				t.Errorf("ScoreField(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestScoreField_Bounds(t *testing.T) {
	// Every definition and a spread of values must stay inside [0,1].
	values := []any{nil, "", "x", "ab", "n/a", "a perfectly reasonable value", 42, true,
		"a very long piece of free text that runs for well over one hundred characters so the length bonus would exceed its cap if unclamped"}

	for _, def := range SiteFieldDefinitions {
		for _, v := range values {
			score := ScoreField(v, def)
			if score < 0 || score > 1 {
				t.Errorf("ScoreField(%v, %s) = %v out of [0,1]", v, def.Name, score)
			}
		}
	}
}
