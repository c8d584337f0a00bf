package chart

import (
	"context"
	"fmt"

	"github.com/kritikayadav/screener-backend/internal/model"
	"github.com/kritikayadav/screener-backend/internal/yahoo"
)

// YahooSource serves real daily closes for NSE listed stocks.
type YahooSource struct {
	client *yahoo.FinanceClient
	suffix string
}

// NewYahooSource creates a source that queries symbol = ticker + suffix
// (".NS" for the National Stock Exchange).
func NewYahooSource(client *yahoo.FinanceClient, suffix string) *YahooSource {
	return &YahooSource{client: client, suffix: suffix}
}

// Series fetches one month of daily closes for the stock.
func (s *YahooSource) Series(ctx context.Context, stock model.StockRecord) ([]model.ChartPoint, error) {
	ticker := stock.Ticker()
	if ticker == "" {
		return nil, fmt.Errorf("stock has no ticker")
	}

	resp, err := s.client.QueryDailySymbol(ctx, ticker+s.suffix, "1mo")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", ticker, err)
	}

	priceChart, err := s.client.ParseChart(resp)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ticker, err)
	}

	points := make([]model.ChartPoint, len(priceChart.Indicators))
	for i, ind := range priceChart.Indicators {
		points[i] = model.ChartPoint{
			Date:  ind.Date,
			Label: ind.Date.Format(labelLayout),
			Close: ind.PriceClose,
		}
	}
	return points, nil
}
