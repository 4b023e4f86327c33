package quote

// Quote holds one instrument's extraction result for a single poll cycle.
// Ltp is nil when no numeric price could be located in the payload.
type Quote struct {
	Key    string
	Symbol string
	Ltp    *float64
}

var symbolAliases = []string{"trading_symbol", "tradingSymbol", "symbol"}

// SymbolOf derives a display name from the payload, falling back to the key.
func SymbolOf(key string, payload any) string {
	m, ok := payload.(map[string]any)
	if !ok {
		return key
	}
	for _, alias := range symbolAliases {
		if s, ok := m[alias].(string); ok && s != "" {
			return s
		}
	}
	return key
}
