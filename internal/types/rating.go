package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Rating is a single trait rating as received at the input boundary.
// It carries either a numeric value or a categorical label; normalization
// to the canonical 1-5 integer scale happens in the scoring package.
type Rating struct {
	Number *float64
	Label  string
}

// IntRating returns a Rating holding an integer value.
func IntRating(v int) Rating {
	f := float64(v)
	return Rating{Number: &f}
}

// LabelRating returns a Rating holding a categorical label.
func LabelRating(label string) Rating {
	return Rating{Label: label}
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
// Any other JSON value is rejected at the boundary.
func (r *Rating) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return fmt.Errorf("rating must be a number or a label, got null")
	}

	if strings.HasPrefix(trimmed, `"`) {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return fmt.Errorf("failed to parse rating label: %w", err)
		}
		r.Label = label
		r.Number = nil
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("rating must be a number or a label: %w", err)
	}
	r.Number = &num
	r.Label = ""
	return nil
}

// MarshalJSON writes the numeric value if present, otherwise the label.
func (r Rating) MarshalJSON() ([]byte, error) {
	if r.Number != nil {
		return json.Marshal(*r.Number)
	}
	return json.Marshal(r.Label)
}

// String returns a human-readable form for error messages.
func (r Rating) String() string {
	if r.Number != nil {
		return fmt.Sprintf("%v", *r.Number)
	}
	return fmt.Sprintf("%q", r.Label)
}
