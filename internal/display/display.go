// Package display turns raw sheet values into the strings and tones the
// screener page renders.
package display

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/kritikayadav/screener-backend/internal/model"
)

// Tone is the colour family a value is rendered with.
type Tone string

const (
	ToneGood    Tone = "good"
	ToneMild    Tone = "mild"
	ToneInfo    Tone = "info"
	ToneWarn    Tone = "warn"
	ToneCaution Tone = "caution"
	ToneBad     Tone = "bad"
	ToneNeutral Tone = "neutral"
)

// Direction of a price change.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

const (
	currencySymbol = "₹"
	placeholder    = "-"
	maxStars       = 5
)

// parseNumber reads a plain decimal, ignoring thousands separators.
func parseNumber(value string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatPrice renders an LTP as "₹1,234.5". Non-numeric input renders as "₹-".
func FormatPrice(ltp string) string {
	d, ok := parseNumber(ltp)
	if !ok {
		return currencySymbol + placeholder
	}
	f, _ := d.Round(3).Float64()
	return currencySymbol + humanize.Commaf(f)
}

// FormatValue renders an info grid value. Numbers get two decimals, and a
// percent sign for ratio, ROE, ROCE and growth columns.
func FormatValue(key, value string) string {
	if value == "" {
		return placeholder
	}
	if key == model.FieldLTP {
		return FormatPrice(value)
	}

	d, ok := parseNumber(value)
	if !ok {
		return value
	}
	if isPercentKey(key) {
		return d.StringFixed(2) + "%"
	}
	return d.StringFixed(2)
}

func isPercentKey(key string) bool {
	for _, marker := range []string{"Ratio", "ROE", "ROCE", "Growth"} {
		if strings.Contains(key, marker) {
			return true
		}
	}
	return false
}

// MetricTone grades a numeric column against fixed thresholds.
func MetricTone(key, value string) Tone {
	d, ok := parseNumber(value)
	if !ok {
		return ToneNeutral
	}
	num, _ := d.Float64()

	switch {
	case key == "P/E Ratio":
		return grade(num <= 15, num <= 25)
	case key == "Avg ROE" || key == "Avg ROCE":
		return grade(num >= 15, num >= 8)
	case strings.Contains(key, "Growth"):
		return grade(num >= 10, num >= 5)
	}
	return ToneNeutral
}

func grade(good, fair bool) Tone {
	if good {
		return ToneGood
	}
	if fair {
		return ToneWarn
	}
	return ToneBad
}

// ValuationTone maps Overvalued / Undervalued / Fairly Valued to a tone.
func ValuationTone(valuation string) Tone {
	switch strings.ToUpper(strings.TrimSpace(valuation)) {
	case "OVERVALUED":
		return ToneBad
	case "UNDERVALUED":
		return ToneGood
	case "FAIRLY VALUED":
		return ToneInfo
	}
	return ToneNeutral
}

// FundamentalsTone maps the fundamentals quality tag to a tone.
func FundamentalsTone(fundamentals string) Tone {
	switch strings.ToUpper(strings.TrimSpace(fundamentals)) {
	case "EXCELLENT":
		return ToneGood
	case "STRONG":
		return ToneInfo
	case "GOOD":
		return ToneMild
	case "AVERAGE":
		return ToneWarn
	case "BELOW AVERAGE":
		return ToneCaution
	case "POOR":
		return ToneBad
	}
	return ToneNeutral
}

// ChangeDirection reads the ▲/▼ marker the sheet puts on change columns.
func ChangeDirection(value string) Direction {
	switch {
	case strings.Contains(value, "▲"):
		return DirectionUp
	case strings.Contains(value, "▼"):
		return DirectionDown
	}
	return DirectionFlat
}

// Stars counts the "*" characters of a rating such as "***", capped at five.
func Stars(rating string) int {
	n := strings.Count(rating, "*")
	if n > maxStars {
		return maxStars
	}
	return n
}
