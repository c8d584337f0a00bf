// Package chart produces the price series shown under the selected stock.
package chart

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kritikayadav/screener-backend/internal/model"
)

const (
	// SeriesDays is the number of days before today covered by a mock series.
	SeriesDays = 30

	// DefaultBasePrice is used when the stock's LTP cannot be parsed.
	DefaultBasePrice = 1000.0

	// maxFluctuation bounds the relative deviation of each close from the base price.
	maxFluctuation = 0.05

	labelLayout = "2 Jan"
)

// Generator builds mock daily close series around a base price.
type Generator struct {
	rand func() float64
	now  func() time.Time
}

// NewGenerator returns a generator using the global random source and wall clock.
func NewGenerator() *Generator {
	return &Generator{rand: rand.Float64, now: time.Now}
}

// NewGeneratorWith returns a generator with an injected random source
// (values in [0, 1)) and clock.
func NewGeneratorWith(random func() float64, now func() time.Time) *Generator {
	return &Generator{rand: random, now: now}
}

// Generate returns SeriesDays+1 points ending today, one per calendar day.
// Each close is base*(1+u) with u uniform in [-0.05, 0.05].
func (g *Generator) Generate(base float64) []model.ChartPoint {
	now := g.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	points := make([]model.ChartPoint, 0, SeriesDays+1)
	for i := SeriesDays; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		fluctuation := (g.rand() - 0.5) * 2 * maxFluctuation
		points = append(points, model.ChartPoint{
			Date:  date,
			Label: date.Format(labelLayout),
			Close: base * (1 + fluctuation),
		})
	}
	return points
}

// ParseBasePrice reads a last traded price such as "1,234.50" or "₹980".
// Unparseable or non-positive input yields DefaultBasePrice.
func ParseBasePrice(ltp string) float64 {
	cleaned := strings.NewReplacer(",", "", "₹", "", " ", "").Replace(strings.TrimSpace(ltp))
	if cleaned == "" {
		return DefaultBasePrice
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil || !d.IsPositive() {
		return DefaultBasePrice
	}

	f, _ := d.Float64()
	return f
}
