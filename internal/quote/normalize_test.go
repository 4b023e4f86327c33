package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {

	t.Run("data 하위 keyed map", func(t *testing.T) {
		v := decode(t, `{
			"status": "success",
			"data": {
				"MCX_FO|463267": {"last_price": 98750, "trading_symbol": "GOLDTEN"},
				"MCX_FO|458302": {"last_price": 24810}
			}
		}`)
		m := Normalize(v)
		assert.Equal(t, 2, len(m))
		assert.Contains(t, m, "MCX_FO|463267")
		assert.Contains(t, m, "MCX_FO|458302")
	})

	t.Run("data 하위 record list", func(t *testing.T) {
		v := decode(t, `{
			"data": [
				{"instrument_key": "MCX_FO|463267", "ltp": 98750},
				{"symbol": "GOLDM", "ltp": 81200},
				{"no_key_here": true},
				"stray scalar"
			]
		}`)
		m := Normalize(v)
		assert.Equal(t, 2, len(m))
		assert.Contains(t, m, "MCX_FO|463267")
		assert.Contains(t, m, "GOLDM")
	})

	t.Run("flat map 그대로 사용", func(t *testing.T) {
		v := decode(t, `{"MCX_FO|440939": {"ltp": 101325.5}}`)
		m := Normalize(v)
		assert.Equal(t, 1, len(m))
		assert.Contains(t, m, "MCX_FO|440939")
	})

	t.Run("미지원 shape은 빈 map", func(t *testing.T) {
		assert.Empty(t, Normalize(nil))
		assert.Empty(t, Normalize("plain text"))
		assert.Empty(t, Normalize(decode(t, `{"data": "unexpected"}`)))
	})

	t.Run("멱등성", func(t *testing.T) {
		v := decode(t, `{"data": {"A": {"ltp": 1}, "B": {"ltp": 2}}}`)
		assert.Equal(t, Normalize(v), Normalize(v))
	})
}

func TestSymbolOf(t *testing.T) {
	assert.Equal(t, "GOLDTEN", SymbolOf("MCX_FO|463267", decode(t, `{"trading_symbol": "GOLDTEN"}`)))
	assert.Equal(t, "GOLDM", SymbolOf("MCX_FO|463393", decode(t, `{"symbol": "GOLDM"}`)))
	assert.Equal(t, "MCX_FO|463267", SymbolOf("MCX_FO|463267", decode(t, `{"ltp": 1}`)))
	assert.Equal(t, "MCX_FO|463267", SymbolOf("MCX_FO|463267", nil))
}
