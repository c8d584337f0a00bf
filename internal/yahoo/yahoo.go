package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// FinanceClient provides methods for fetching daily price data from the Yahoo Finance chart API.
type FinanceClient struct {
	client *resty.Client
}

// NewFinanceClient creates a new Yahoo Finance client.
func NewFinanceClient(timeout time.Duration) *FinanceClient {
	return NewFinanceClientWithBaseURL(defaultBaseURL, timeout)
}

// NewFinanceClientWithBaseURL creates a client against a custom host, used by tests.
func NewFinanceClientWithBaseURL(baseURL string, timeout time.Duration) *FinanceClient {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	client.SetHeader("Accept", "application/json")

	return &FinanceClient{client: client}
}

// ParseChart converts a raw Yahoo Finance API response into a PriceChart.
//
// The method validates that:
//   - a result is present
//   - timestamp and close data are present
//   - the close array has the same length as the timestamps
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no results returned")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		indicators = append(indicators, Indicators{
			Date:       time.Unix(ts, 0).UTC(),
			PriceClose: *closes[i],
		})
	}

	return PriceChart{
		Symbol:     result.Meta.Symbol,
		Currency:   result.Meta.Currency,
		LongName:   result.Meta.LongName,
		Indicators: indicators,
	}, nil
}

// QueryDailySymbol fetches daily price data for symbol over a Yahoo range
// such as "1mo" or "5d".
func (c *FinanceClient) QueryDailySymbol(ctx context.Context, symbol, period string) (Response, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"range":    period,
		}).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		if resp.IsError() {
			return Response{}, fmt.Errorf("%w: %s", apperrors.ErrUnexpectedStatus, resp.Status())
		}
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", response.Chart.Error.Description)
	}
	if resp.IsError() {
		return Response{}, fmt.Errorf("%w: %s", apperrors.ErrUnexpectedStatus, resp.Status())
	}
	if len(response.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return response, nil
}
