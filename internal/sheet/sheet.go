// Package sheet loads the screener stock list from the spreadsheet API.
package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
	"github.com/kritikayadav/screener-backend/internal/model"
)

// Client fetches stock records from a tabular JSON endpoint.
// Concurrent FetchStocks calls share a single in-flight request; nothing is
// cached between calls.
type Client struct {
	client   *resty.Client
	endpoint string
	prefix   string
	group    singleflight.Group
	log      zerolog.Logger
}

// NewClient creates a sheet client for endpoint. prefix is removed from the
// start of every ticker, e.g. "NSE:".
func NewClient(endpoint, prefix string, timeout time.Duration, log zerolog.Logger) *Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &Client{
		client:   client,
		endpoint: endpoint,
		prefix:   prefix,
		log:      log.With().Str("component", "sheet_client").Logger(),
	}
}

// FetchStocks reads the full stock list and normalizes every ticker.
// The shared request is detached from any single caller's cancellation; each
// caller stops waiting when its own ctx is done.
func (c *Client) FetchStocks(ctx context.Context) ([]model.StockRecord, error) {
	ch := c.group.DoChan("stocks", func() (interface{}, error) {
		return c.fetch(context.WithoutCancel(ctx))
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveStocks, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		c.log.Debug().Msg("Shared in-flight stock list request")
	}

	// Callers receive their own slice header; records are immutable.
	records := res.Val.([]model.StockRecord)
	out := make([]model.StockRecord, len(records))
	copy(out, records)
	return out, nil
}

func (c *Client) fetch(ctx context.Context) ([]model.StockRecord, error) {
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveStocks, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrFailedToRetrieveStocks, apperrors.ErrUnexpectedStatus, resp.Status())
	}

	var records []model.StockRecord
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", apperrors.ErrFailedToRetrieveStocks, err)
	}

	for i, r := range records {
		if ticker, ok := r.Get(model.FieldTicker); ok {
			records[i] = r.With(model.FieldTicker, NormalizeTicker(ticker, c.prefix))
		}
	}

	c.log.Debug().
		Int("count", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched stock list")

	return records, nil
}

// NormalizeTicker strips the exchange prefix from ticker. Every occurrence is
// removed so a displayed ticker never carries the prefix.
func NormalizeTicker(ticker, prefix string) string {
	if prefix == "" {
		return ticker
	}
	return strings.ReplaceAll(ticker, prefix, "")
}
