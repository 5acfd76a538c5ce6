// Package export writes records, scores, and reports to CSV and JSON for
// offline analysis.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/processor"
)

// WriteRecordsCSV writes records as CSV. The header is the sorted union of
// all field names across records, so every run over the same data produces
// the same layout. Nested values are formatted with fmt.
func WriteRecordsCSV(w io.Writer, records []domain.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to write")
	}

	fields := collectFields(records)

	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(fields))
	for _, rec := range records {
		for i, field := range fields {
			if v, ok := rec[field]; ok && v != nil {
				row[i] = fmt.Sprint(v)
			} else {
				row[i] = ""
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// scoreHeader is the fixed layout for score exports.
var scoreHeader = []string{"id", "name", "kind", "overall_score", "grade", "completeness", "missing_required"}

// WriteScoresCSV writes batch scoring results as CSV, one row per record.
func WriteScoresCSV(w io.Writer, results []processor.ScoreResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scoreHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, res := range results {
		if res.Score == nil {
			continue
		}
		row := []string{
			res.ID,
			res.Name,
			res.Kind,
			strconv.FormatFloat(res.Score.OverallScore, 'f', 3, 64),
			res.Grade,
			strconv.FormatFloat(res.Score.Completeness, 'f', 3, 64),
			strconv.Itoa(len(res.Score.MissingRequired)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func collectFields(records []domain.Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for field := range rec {
			seen[field] = struct{}{}
		}
	}
	fields := make([]string, 0, len(seen))
	for field := range seen {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
