package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Well-known column names of the screener sheet.
const (
	FieldTicker        = "Ticker"
	FieldStockName     = "Stock Name"
	FieldLTP           = "LTP"
	FieldChange        = "CHANGE"
	FieldChangePercent = "CHANGE %"
	FieldValuation     = "VALUATION"
	FieldFundamentals  = "FUNDAMENTALS"
	FieldRating        = "Kritika RATING"
	FieldTokenNumber   = "Token Number"
)

// Field is a single named column of a stock record.
type Field struct {
	Name  string
	Value string
}

// StockRecord is one row of the screener sheet. Columns keep the order in
// which the sheet returned them; all values are held as strings.
type StockRecord struct {
	Fields []Field
}

// NewStockRecord builds a record from alternating name/value pairs.
func NewStockRecord(pairs ...string) StockRecord {
	r := StockRecord{Fields: make([]Field, 0, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Fields = append(r.Fields, Field{Name: pairs[i], Value: pairs[i+1]})
	}
	return r
}

// Get returns the value of the named column and whether it exists.
func (r StockRecord) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Value returns the named column or "" when absent.
func (r StockRecord) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// With returns a copy of r with the named column set to value. A new column
// is appended when it does not exist yet.
func (r StockRecord) With(name, value string) StockRecord {
	out := StockRecord{Fields: make([]Field, len(r.Fields), len(r.Fields)+1)}
	copy(out.Fields, r.Fields)
	for i := range out.Fields {
		if out.Fields[i].Name == name {
			out.Fields[i].Value = value
			return out
		}
	}
	out.Fields = append(out.Fields, Field{Name: name, Value: value})
	return out
}

// Ticker is shorthand for the Ticker column.
func (r StockRecord) Ticker() string { return r.Value(FieldTicker) }

// Name is shorthand for the Stock Name column.
func (r StockRecord) Name() string { return r.Value(FieldStockName) }

// LTP is shorthand for the last traded price column.
func (r StockRecord) LTP() string { return r.Value(FieldLTP) }

// UnmarshalJSON decodes a flat JSON object, preserving key order.
// Numbers keep their literal text, booleans become "true"/"false" and null
// becomes "".
func (r *StockRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("stock record: expected object, got %v", tok)
	}

	r.Fields = r.Fields[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("stock record: unexpected key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}

		var value string
		switch v := valTok.(type) {
		case string:
			value = v
		case json.Number:
			value = v.String()
		case bool:
			value = strconv.FormatBool(v)
		case nil:
			value = ""
		default:
			return fmt.Errorf("stock record: field %q is not a scalar", key)
		}
		r.Fields = append(r.Fields, Field{Name: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the record as a flat JSON object in column order.
func (r StockRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
