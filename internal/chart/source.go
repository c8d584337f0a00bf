package chart

import (
	"context"
	"time"

	"github.com/kritikayadav/screener-backend/internal/model"
)

// Source produces the chart series for a stock. Implementations may fail;
// a failure puts the viewer's chart into the errored state.
type Source interface {
	Series(ctx context.Context, stock model.StockRecord) ([]model.ChartPoint, error)
}

// MockSource generates a random series around the stock's LTP after a fixed
// artificial delay.
type MockSource struct {
	gen   *Generator
	delay time.Duration
}

// NewMockSource creates a mock source. A zero delay generates immediately.
func NewMockSource(gen *Generator, delay time.Duration) *MockSource {
	return &MockSource{gen: gen, delay: delay}
}

// Series waits for the configured delay, then generates the series.
// It returns ctx.Err() if the context ends first.
func (s *MockSource) Series(ctx context.Context, stock model.StockRecord) ([]model.ChartPoint, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.gen.Generate(ParseBasePrice(stock.LTP())), nil
}
