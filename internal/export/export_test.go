package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/processor"
)

func TestWriteRecordsCSV(t *testing.T) {
	records := []domain.Record{
		{"id": "site-1", "name": "North Pantry", "city": "Springfield"},
		{"id": "site-2", "name": "South Pantry", "zip": "62704"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecordsCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// header is the sorted union of all fields
	assert.Equal(t, []string{"city", "id", "name", "zip"}, rows[0])
	assert.Equal(t, []string{"Springfield", "site-1", "North Pantry", ""}, rows[1])
	assert.Equal(t, []string{"", "site-2", "South Pantry", "62704"}, rows[2])
}

func TestWriteRecordsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, WriteRecordsCSV(&buf, nil))
}

func TestWriteScoresCSV(t *testing.T) {
	results := []processor.ScoreResult{
		{
			ID:   "site-1",
			Name: "North Pantry",
			Kind: processor.KindSite,
			Score: &domain.QualityScore{
				OverallScore:    0.85,
				Completeness:    0.9,
				MissingRequired: []string{"zip"},
			},
			Grade: "B",
		},
		{ID: "site-2", Kind: processor.KindSite}, // nil score, skipped
	}

	var buf bytes.Buffer
	require.NoError(t, WriteScoresCSV(&buf, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, scoreHeader, rows[0])
	assert.Equal(t, []string{"site-1", "North Pantry", "site", "0.850", "B", "0.900", "1"}, rows[1])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	score := domain.QualityScore{OverallScore: 0.754}
	require.NoError(t, WriteJSON(&buf, score))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n"))
	assert.Contains(t, out, `"overall_score": 0.754`)
}
