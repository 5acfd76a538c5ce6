package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes any value as indented JSON. Used for quality scores and
// completeness reports.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
