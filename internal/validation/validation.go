package validation

import "strings"

// Violations maps field name to a short error code. Empty map means valid.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MaxLen(field, value string, maxLen int, v Violations) {
	if len(value) > maxLen {
		v[field] = "too_long"
	}
}

func IntRange(field string, val, minVal, maxVal int, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}
