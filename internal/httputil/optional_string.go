package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent PATCH field from an explicit null:
//   - Present=false: field absent from JSON (leave unchanged)
//   - Present=true, Value=nil: JSON null (clear)
//   - Present=true, Value=&"...": new value
//
// An empty string is kept as-is; services decide whether "" also clears.
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only called when the key is present.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
