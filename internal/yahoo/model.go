package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance chart API.
// Price arrays hold pointers because Yahoo reports missing sessions as null.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level chart envelope.
type Chart struct {
	Result []Result `json:"result"`
	Error  *Error   `json:"error"`
}

// Error is the error object Yahoo returns for unknown symbols and bad ranges.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Result holds one symbol's metadata, timestamps and quotes.
type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

// Meta is the symbol metadata.
type Meta struct {
	Currency         string `json:"currency"`
	Symbol           string `json:"symbol"`
	ExchangeName     string `json:"exchangeName"`
	FullExchangeName string `json:"fullExchangeName"`
	LongName         string `json:"longName"`
	Shortname        string `json:"shortName"`
}

// IndicatorsContainer wraps the quote arrays.
type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

// Quote holds parallel OHLCV arrays aligned with Result.Timestamp.
type Quote struct {
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
}

// PriceChart is the parsed daily close series of one symbol.
type PriceChart struct {
	Symbol     string
	Currency   string
	LongName   string
	Indicators []Indicators
}

// Indicators is a single day's close. Days Yahoo reported as null are skipped.
type Indicators struct {
	Date       time.Time
	PriceClose float64
}
