// Package operations implements the site and organization workflows against
// the Tackle Hunger GraphQL API: fetching records, analyzing addresses, and
// applying address fixes.
package operations

import (
	"fmt"

	"github.com/tackle-hunger/data-quality/internal/domain"
)

// ModifiedBy identifies automated edits in the API audit trail.
const ModifiedBy = "AI_Copilot_Assistant"

// decodeRecords converts a decoded GraphQL list into domain records.
func decodeRecords(raw any) ([]domain.Record, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected list type %T", raw)
	}
	records := make([]domain.Record, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected item type %T", item)
		}
		records = append(records, domain.Record(m))
	}
	return records, nil
}

// decodeRecord converts a single decoded GraphQL object into a domain record.
func decodeRecord(raw any) (domain.Record, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected object type %T", raw)
	}
	return domain.Record(m), nil
}
