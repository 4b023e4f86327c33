package quote

// Alias keys an instrument identifier may travel under in record lists.
var keyAliases = []string{"instrument_key", "instrumentKey", "symbol", "trading_symbol"}

// Normalize collapses the response shapes the quote API is known to answer
// with into one instrument-key -> payload map. Three shapes are handled: a
// wrapper object carrying the collection under "data", a keyed map, and a
// list of records holding their own identifier. Anything else yields an
// empty map.
func Normalize(raw any) map[string]any {
	out := make(map[string]any)
	if raw == nil {
		return out
	}

	src := raw
	if m, ok := raw.(map[string]any); ok {
		if inner, exists := m["data"]; exists {
			src = inner
		}
	}

	switch data := src.(type) {
	case map[string]any:
		for k, payload := range data {
			out[k] = payload
		}
	case []any:
		for _, e := range data {
			rec, ok := e.(map[string]any)
			if !ok {
				continue
			}
			key := ""
			for _, alias := range keyAliases {
				if s, ok := rec[alias].(string); ok && s != "" {
					key = s
					break
				}
			}
			if key == "" {
				continue
			}
			out[key] = rec
		}
	}

	return out
}
