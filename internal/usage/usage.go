// Package usage talks to the remote screener usage tracking service.
package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
	"github.com/kritikayadav/screener-backend/internal/model"
)

const (
	trackPath = "/api/screener/track"
	usagePath = "/api/screener/usage"
)

// Client calls the usage tracking API. The remote service is the only
// source of truth for usage counts; nothing is counted locally.
type Client struct {
	client *resty.Client
	log    zerolog.Logger
}

// NewClient creates a usage client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &Client{
		client: client,
		log:    log.With().Str("component", "usage_client").Logger(),
	}
}

type trackRequest struct {
	UserID string `json:"userId"`
}

// Track records one screener use for userID and returns the updated status.
func (c *Client) Track(ctx context.Context, userID string) (model.UsageStatus, error) {
	if userID == "" {
		return model.UsageStatus{}, apperrors.ErrInvalidUserID
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(trackRequest{UserID: userID}).
		Post(trackPath)
	if err != nil {
		return model.UsageStatus{}, fmt.Errorf("track usage: %w", err)
	}

	status, err := decode(resp)
	if err != nil {
		return model.UsageStatus{}, fmt.Errorf("track usage: %w", err)
	}

	c.log.Debug().
		Str("user_id", userID).
		Int("current_count", status.CurrentCount).
		Bool("limit_reached", status.LimitReached).
		Msg("Tracked screener request")

	return status, nil
}

// Usage returns the current status for userID without recording a use.
func (c *Client) Usage(ctx context.Context, userID string) (model.UsageStatus, error) {
	if userID == "" {
		return model.UsageStatus{}, apperrors.ErrInvalidUserID
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("userId", userID).
		Get(usagePath)
	if err != nil {
		return model.UsageStatus{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveUsage, err)
	}

	status, err := decode(resp)
	if err != nil {
		return model.UsageStatus{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveUsage, err)
	}
	return status, nil
}

func decode(resp *resty.Response) (model.UsageStatus, error) {
	if resp.IsError() {
		return model.UsageStatus{}, fmt.Errorf("%w: %s", apperrors.ErrUnexpectedStatus, resp.Status())
	}

	var status model.UsageStatus
	if err := json.Unmarshal(resp.Body(), &status); err != nil {
		return model.UsageStatus{}, fmt.Errorf("decode: %w", err)
	}
	return status, nil
}
