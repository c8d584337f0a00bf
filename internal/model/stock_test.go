package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockRecord_UnmarshalJSON(t *testing.T) {
	t.Run("preserves column order and normalizes scalars", func(t *testing.T) {
		var r StockRecord
		err := json.Unmarshal([]byte(`{"Ticker":"NSE:ABC","LTP":1000.5,"Listed":true,"Note":null,"Stock Name":"Alpha Co"}`), &r)
		require.NoError(t, err)

		names := make([]string, len(r.Fields))
		for i, f := range r.Fields {
			names[i] = f.Name
		}
		assert.Equal(t, []string{"Ticker", "LTP", "Listed", "Note", "Stock Name"}, names)
		assert.Equal(t, "1000.5", r.LTP())
		assert.Equal(t, "true", r.Value("Listed"))
		assert.Equal(t, "", r.Value("Note"))
		assert.Equal(t, "Alpha Co", r.Name())
	})

	t.Run("decodes a list", func(t *testing.T) {
		var rs []StockRecord
		err := json.Unmarshal([]byte(`[{"Ticker":"A"},{"Ticker":"B"}]`), &rs)
		require.NoError(t, err)
		require.Len(t, rs, 2)
		assert.Equal(t, "B", rs[1].Ticker())
	})

	t.Run("rejects nested values", func(t *testing.T) {
		var r StockRecord
		err := json.Unmarshal([]byte(`{"Ticker":{"x":1}}`), &r)
		assert.Error(t, err)
	})

	t.Run("rejects non-object", func(t *testing.T) {
		var r StockRecord
		err := json.Unmarshal([]byte(`["Ticker"]`), &r)
		assert.Error(t, err)
	})
}

func TestStockRecord_MarshalJSON(t *testing.T) {
	r := NewStockRecord("Ticker", "ABC", "LTP", "1000")
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"Ticker":"ABC","LTP":"1000"}`, string(data))
}

func TestStockRecord_With(t *testing.T) {
	r := NewStockRecord("Ticker", "NSE:ABC", "LTP", "1000")

	updated := r.With("Ticker", "ABC")
	assert.Equal(t, "ABC", updated.Ticker())
	assert.Equal(t, "NSE:ABC", r.Ticker(), "original must not change")

	added := r.With("CHANGE", "▲ 5")
	assert.Equal(t, "▲ 5", added.Value("CHANGE"))
	assert.Len(t, r.Fields, 2)
}
