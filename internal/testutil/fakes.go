package testutil

import (
	"context"
	"sync"

	"github.com/kritikayadav/screener-backend/internal/model"
)

// FakeLoader returns a fixed stock list or error.
type FakeLoader struct {
	mu      sync.Mutex
	Records []model.StockRecord
	Err     error
	Calls   int
}

// FetchStocks returns the configured records.
func (f *FakeLoader) FetchStocks(_ context.Context) ([]model.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]model.StockRecord, len(f.Records))
	copy(out, f.Records)
	return out, nil
}

// FakeTracker returns a fixed usage status or error and records the users tracked.
type FakeTracker struct {
	mu     sync.Mutex
	Status model.UsageStatus
	Err    error
	Users  []string
}

// Track records userID and returns the configured status.
func (f *FakeTracker) Track(_ context.Context, userID string) (model.UsageStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Users = append(f.Users, userID)
	if f.Err != nil {
		return model.UsageStatus{}, f.Err
	}
	return f.Status, nil
}

// Calls returns how many times Track was called.
func (f *FakeTracker) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Users)
}

// SeriesCall is one pending request made to a ControlledSource.
type SeriesCall struct {
	Stock  model.StockRecord
	result chan seriesResult
}

type seriesResult struct {
	points []model.ChartPoint
	err    error
}

// Respond completes the call.
func (c *SeriesCall) Respond(points []model.ChartPoint, err error) {
	c.result <- seriesResult{points: points, err: err}
}

// ControlledSource is a chart source whose requests complete only when the
// test responds to them, in whatever order the test chooses. Context
// cancellation is ignored so tests can complete superseded requests.
type ControlledSource struct {
	Calls chan *SeriesCall
}

// NewControlledSource creates a source buffering up to 16 pending calls.
func NewControlledSource() *ControlledSource {
	return &ControlledSource{Calls: make(chan *SeriesCall, 16)}
}

// Series blocks until the test responds.
func (s *ControlledSource) Series(_ context.Context, stock model.StockRecord) ([]model.ChartPoint, error) {
	call := &SeriesCall{Stock: stock, result: make(chan seriesResult, 1)}
	s.Calls <- call
	r := <-call.result
	return r.points, r.err
}

// CountingSource wraps a function and counts calls.
type CountingSource struct {
	mu    sync.Mutex
	Fn    func(ctx context.Context, stock model.StockRecord) ([]model.ChartPoint, error)
	calls int
}

// Series calls Fn.
func (s *CountingSource) Series(ctx context.Context, stock model.StockRecord) ([]model.ChartPoint, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.Fn(ctx, stock)
}

// Calls returns how many series were requested.
func (s *CountingSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
