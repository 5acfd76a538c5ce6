// Package domain holds the value types shared by the classification,
// scoring, and completeness packages. Records are immutable snapshots of
// API data; nothing in this package mutates them.
package domain

import (
	"fmt"
	"strings"
)

// Record is a loosely-typed snapshot of an Organization or Site as returned
// by the API. Fields not known to the engine are carried along and ignored.
type Record map[string]any

// IsMissingValue is the single authority for the missing-value contract.
// A value is missing when it is nil, an empty string, the literal string
// "null", or a string that is entirely whitespace.
func IsMissingValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	trimmed := strings.TrimSpace(s)
	return trimmed == "" || trimmed == "null"
}

// GetString returns the named field coerced to a string.
// Non-string scalars are formatted; missing fields yield "".
func (r Record) GetString(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// IsMissing reports whether the named field is missing from the record.
func (r Record) IsMissing(field string) bool {
	return IsMissingValue(r[field])
}

// ID returns the record's identifier, coerced to a string.
func (r Record) ID() string {
	return r.GetString("id")
}

// Name returns the record's display name.
func (r Record) Name() string {
	return r.GetString("name")
}

// OrganizationID returns the parent organization identifier for a site
// record, or "" when the site declares none.
func (r Record) OrganizationID() string {
	if r.IsMissing("organizationId") {
		return ""
	}
	return r.GetString("organizationId")
}

// Sites returns the nested child site records attached to an organization.
// The API delivers them as a list of objects; anything else yields nil.
func (r Record) Sites() []Record {
	raw, ok := r["sites"]
	if !ok || raw == nil {
		return nil
	}

	switch v := raw.(type) {
	case []Record:
		return v
	case []map[string]any:
		sites := make([]Record, 0, len(v))
		for _, m := range v {
			sites = append(sites, Record(m))
		}
		return sites
	case []any:
		sites := make([]Record, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				sites = append(sites, Record(m))
			}
		}
		return sites
	default:
		return nil
	}
}
