package display

import "github.com/kritikayadav/screener-backend/internal/model"

// Kind of an info grid item.
const (
	KindMetric       = "metric"
	KindRating       = "rating"
	KindFundamentals = "fundamentals"
)

// InfoItem is one cell of the selected stock's info grid.
type InfoItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
	Kind  string `json:"kind"`
	Tone  Tone   `json:"tone"`
	Stars int    `json:"stars,omitempty"`
}

// Columns shown elsewhere on the page or used only internally.
var excludedKeys = map[string]bool{
	model.FieldTicker:        true,
	model.FieldStockName:     true,
	"AVG ROE TEST":           true,
	"ROCE TEST":              true,
	model.FieldLTP:           true,
	model.FieldValuation:     true,
	model.FieldTokenNumber:   true,
	model.FieldChange:        true,
	model.FieldChangePercent: true,
}

// InfoGrid builds the info grid for a record, in column order.
func InfoGrid(r model.StockRecord) []InfoItem {
	items := make([]InfoItem, 0, len(r.Fields))
	for _, f := range r.Fields {
		if excludedKeys[f.Name] {
			continue
		}

		switch f.Name {
		case model.FieldRating:
			items = append(items, InfoItem{
				Key:   f.Name,
				Label: "Kritika Ratings",
				Value: f.Value,
				Kind:  KindRating,
				Tone:  ToneNeutral,
				Stars: Stars(f.Value),
			})
		case model.FieldFundamentals:
			items = append(items, InfoItem{
				Key:   f.Name,
				Label: f.Name,
				Value: f.Value,
				Kind:  KindFundamentals,
				Tone:  FundamentalsTone(f.Value),
			})
		default:
			items = append(items, InfoItem{
				Key:   f.Name,
				Label: f.Name,
				Value: FormatValue(f.Name, f.Value),
				Kind:  KindMetric,
				Tone:  MetricTone(f.Name, f.Value),
			})
		}
	}
	return items
}
