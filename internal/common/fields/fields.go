// Package fields implements the tolerant extraction policy used by every
// worker that reads intake form data: a missing, blank, or non-numeric value
// reads as zero (or empty string), never as an error.
package fields

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Float reads a numeric field from a flat form map. Accepts float64, int,
// json.Number and numeric strings; anything else (including absence) is 0.
func Float(data map[string]interface{}, key string) float64 {
	raw, ok := data[key]
	if !ok || raw == nil {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Int reads an integer field with the same leniency as Float. Fractional
// values are truncated toward zero.
func Int(data map[string]interface{}, key string) int {
	return int(Float(data, key))
}

// Text reads a free-text field, trimming surrounding whitespace. Non-string
// values are stringified so a numeric answer in a text box still counts.
func Text(data map[string]interface{}, key string) string {
	raw, ok := data[key]
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", raw))
}

// Bool reads a boolean field; unchecked checkboxes arrive as absent keys,
// string "true"/"on" forms are accepted.
func Bool(data map[string]interface{}, key string) bool {
	raw, ok := data[key]
	if !ok || raw == nil {
		return false
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "on" || s == "1" || s == "yes"
	case float64:
		return v != 0
	default:
		return false
	}
}
