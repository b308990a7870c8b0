// Package normalize turns raw upstream JSON trees into typed domain records.
// All functions are pure; numeric coercion is centralized here because the
// upstream occasionally sends the same field as an integer, a float, or a
// numeric string depending on endpoint and tier.
package normalize

import "strconv"

// Float64 coerces a decoded JSON value into a float64. Absent and
// non-numeric values coerce to 0 rather than failing.
func Float64(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Int coerces a decoded JSON value into an int, truncating floats.
func Int(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Int64 coerces a decoded JSON value into an int64, truncating floats.
func Int64(value any) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// String coerces a decoded JSON value into a string; non-strings yield "".
func String(value any) string {
	s, _ := value.(string)
	return s
}

// object extracts a nested JSON object; absent or mistyped values yield nil,
// which the coercers treat as zero everywhere downstream.
func object(tree map[string]any, key string) map[string]any {
	obj, _ := tree[key].(map[string]any)
	return obj
}

// list extracts a JSON array.
func list(value any) []any {
	arr, _ := value.([]any)
	return arr
}
