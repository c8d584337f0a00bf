package testutil

import (
	"encoding/json"
	"testing"

	"github.com/kritikayadav/screener-backend/internal/model"
)

// StockBuilder provides a fluent interface for creating test stock records.
//
// Example usage:
//
//	// Simple creation with defaults
//	stock := testutil.NewStock("ABC").Build()
//
//	// Customized stock
//	stock := testutil.NewStock("NSE:XYZ").
//	    WithName("Xylo Industries").
//	    WithLTP("250.5").
//	    With("P/E Ratio", "18").
//	    Build()
type StockBuilder struct {
	fields []model.Field
}

// NewStock creates a StockBuilder with sensible defaults for ticker.
func NewStock(ticker string) *StockBuilder {
	return &StockBuilder{fields: []model.Field{
		{Name: model.FieldTicker, Value: ticker},
		{Name: model.FieldStockName, Value: ticker + " Ltd"},
		{Name: model.FieldLTP, Value: "1000"},
		{Name: model.FieldChange, Value: "▲ 12.5"},
		{Name: model.FieldChangePercent, Value: "▲ 1.25%"},
		{Name: model.FieldValuation, Value: "Undervalued"},
		{Name: model.FieldFundamentals, Value: "Strong"},
		{Name: model.FieldRating, Value: "****"},
		{Name: "P/E Ratio", Value: "14.2"},
		{Name: "Avg ROE", Value: "16.4"},
		{Name: model.FieldTokenNumber, Value: "11536"},
	}}
}

// With sets a column, appending it when absent.
func (b *StockBuilder) With(name, value string) *StockBuilder {
	for i := range b.fields {
		if b.fields[i].Name == name {
			b.fields[i].Value = value
			return b
		}
	}
	b.fields = append(b.fields, model.Field{Name: name, Value: value})
	return b
}

// WithName sets the Stock Name column.
func (b *StockBuilder) WithName(name string) *StockBuilder {
	return b.With(model.FieldStockName, name)
}

// WithLTP sets the last traded price column.
func (b *StockBuilder) WithLTP(ltp string) *StockBuilder {
	return b.With(model.FieldLTP, ltp)
}

// Build returns the record.
func (b *StockBuilder) Build() model.StockRecord {
	fields := make([]model.Field, len(b.fields))
	copy(fields, b.fields)
	return model.StockRecord{Fields: fields}
}

// CreateStocks builds n default stocks with tickers prefixed by prefix
// ("NSE:STKA", "NSE:STKB", ...).
func CreateStocks(prefix string, n int) []model.StockRecord {
	out := make([]model.StockRecord, n)
	for i := range out {
		out[i] = NewStock(prefix + "STK" + string(rune('A'+i))).Build()
	}
	return out
}

// SheetJSON encodes records the way the sheet endpoint returns them.
func SheetJSON(t *testing.T, records ...model.StockRecord) string {
	t.Helper()
	if records == nil {
		records = []model.StockRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("failed to encode sheet records: %v", err)
	}
	return string(data)
}
