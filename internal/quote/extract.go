package quote

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Alias keys holding a last traded price, checked before recursing.
// Order matters: the first alias carrying a coercible value wins.
var ltpAliases = []string{"ltp", "last_price", "lastPrice", "last_traded_price"}

// ExtractLTP locates a numeric last-traded-price anywhere inside a decoded
// JSON value. Maps are probed for the known aliases first, then every member
// is searched depth-first; slices are searched element by element. Scalars
// fall back to numeric-string coercion. Returns nil when nothing numeric is
// found. Never panics regardless of payload shape.
func ExtractLTP(v any) *float64 {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		for _, alias := range ltpAliases {
			if inner, ok := val[alias]; ok && inner != nil {
				if f, ok := coerce(inner); ok {
					return &f
				}
			}
		}
		// Stable walk over the remaining members.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if p := ExtractLTP(val[k]); p != nil {
				return p
			}
		}
		return nil
	case []any:
		for _, e := range val {
			if p := ExtractLTP(e); p != nil {
				return p
			}
		}
		return nil
	default:
		if f, ok := coerce(v); ok {
			return &f
		}
		return nil
	}
}

// coerce converts a scalar into a float64. Strings are accepted when their
// trimmed form parses as a possibly-negative decimal numeral.
func coerce(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}
