package normalize

import (
	"strconv"
	"strings"
	"time"
)

// NotInformed is the sentinel substituted for any absent scalar field.
// Callers render it directly; the normalizer never fails over a hole in
// a backend payload.
const NotInformed = "Não informado"

// The backends disagree on timestamp formats; try them in order.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"02-01-2006",
}

// str reads the first present non-empty string under any of the given
// keys, falling back to the NotInformed sentinel.
func str(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			switch value := v.(type) {
			case string:
				if trimmed := strings.TrimSpace(value); trimmed != "" {
					return trimmed
				}
			case float64:
				return strconv.FormatFloat(value, 'f', -1, 64)
			}
		}
	}
	return NotInformed
}

// strOr is str with an explicit typed default
func strOr(m map[string]interface{}, fallback string, keys ...string) string {
	if v := str(m, keys...); v != NotInformed {
		return v
	}
	return fallback
}

// obj reads the first present nested object under any of the given keys
func obj(m map[string]interface{}, keys ...string) map[string]interface{} {
	for _, key := range keys {
		if v, ok := m[key].(map[string]interface{}); ok {
			return v
		}
	}
	return nil
}

// arr reads the first present array under any of the given keys. A lone
// object is promoted to a one-element array, a shape some backends use
// for single-entry collections.
func arr(m map[string]interface{}, keys ...string) []interface{} {
	for _, key := range keys {
		switch v := m[key].(type) {
		case []interface{}:
			return v
		case map[string]interface{}:
			return []interface{}{v}
		}
	}
	return nil
}

// num reads the first present numeric field, tolerating numbers encoded
// as strings.
func num(m map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return v
		case string:
			cleaned := strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
			if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// date reads and parses the first present timestamp field
func date(m map[string]interface{}, keys ...string) time.Time {
	for _, key := range keys {
		if v, ok := m[key].(string); ok {
			if t, ok := parseDate(v); ok {
				return t
			}
		}
	}
	return time.Time{}
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// asObj coerces one array element to an object, or nil
func asObj(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}
