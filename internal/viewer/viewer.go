// Package viewer holds the server-side state of a mounted stock viewer:
// the stock list, the selected stock, the usage gate and the chart.
package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
	"github.com/kritikayadav/screener-backend/internal/chart"
	"github.com/kritikayadav/screener-backend/internal/model"
	"github.com/kritikayadav/screener-backend/internal/session"
)

// StockLoader fetches the normalized stock list.
type StockLoader interface {
	FetchStocks(ctx context.Context) ([]model.StockRecord, error)
}

// UsageTracker records a screener use for a user.
type UsageTracker interface {
	Track(ctx context.Context, userID string) (model.UsageStatus, error)
}

// Deps are the collaborators shared by all viewers.
type Deps struct {
	Loader     StockLoader
	Tracker    UsageTracker
	Source     chart.Source
	DailyLimit int
	Log        zerolog.Logger
	Now        func() time.Time
}

type chartState struct {
	state      model.ChartState
	generation uint64
	ticker     string
	points     []model.ChartPoint
	err        string
	cancel     context.CancelFunc
}

// Viewer is one mount of the stock viewer.
//
// All state changes happen under mu. Chart requests run in their own
// goroutines; each carries the generation it was dispatched with and its
// result is dropped unless that generation is still the latest.
type Viewer struct {
	id      uuid.UUID
	session *session.Session
	deps    Deps
	log     zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	charts sync.WaitGroup

	mu           sync.Mutex
	closed       bool
	loading      bool
	stocks       []model.StockRecord
	selected     int
	usage        *model.UsageStatus
	limitReached bool
	chart        chartState
	lastSeen     time.Time
}

// New creates an unmounted viewer. sess may be nil for anonymous visitors.
func New(id uuid.UUID, sess *session.Session, deps Deps) *Viewer {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())

	log := deps.Log.With().Str("component", "viewer").Str("viewer_id", id.String()).Logger()
	if sess.LoggedIn() {
		log = log.With().Str("user_id", sess.UserID).Logger()
	}

	return &Viewer{
		id:       id,
		session:  sess,
		deps:     deps,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		loading:  true,
		selected: -1,
		chart:    chartState{state: model.ChartIdle},
		lastSeen: deps.Now(),
	}
}

// ID returns the viewer's identifier.
func (v *Viewer) ID() uuid.UUID { return v.id }

// Session returns the session the viewer was mounted with, possibly nil.
func (v *Viewer) Session() *session.Session { return v.session }

// Mount loads the stock list and, for logged-in users, records one screener
// use. Both run concurrently. Afterwards the first chart request is
// dispatched unless the usage gate is closed.
//
// Failures never leave the viewer unusable: a failed load yields an empty
// list and a failed usage call leaves the gate open. The first such error is
// returned for the caller's information.
func (v *Viewer) Mount(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return v.loadStocks(ctx) })
	g.Go(func() error { return v.trackUsage(ctx) })
	err := g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.touchLocked()
	if !v.closed && v.selected >= 0 && !v.limitReached {
		v.dispatchLocked()
	}
	return err
}

// Reload fetches the stock list again. The selection is reset to the first
// record and a new chart request is dispatched when the gate allows it.
func (v *Viewer) Reload(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return apperrors.ErrViewerClosed
	}
	v.loading = true
	v.mu.Unlock()

	err := v.loadStocks(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.touchLocked()
	if !v.closed && v.selected >= 0 && !v.limitReached {
		v.dispatchLocked()
	}
	return err
}

func (v *Viewer) loadStocks(ctx context.Context) error {
	stocks, err := v.deps.Loader.FetchStocks(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.loading = false
	v.resetChartLocked()
	if err != nil {
		v.stocks = nil
		v.selected = -1
		v.log.Error().Err(err).Msg("Failed to fetch stock data")
		return err
	}

	v.stocks = stocks
	v.selected = -1
	if len(stocks) > 0 {
		v.selected = 0
	}
	v.log.Debug().Int("count", len(stocks)).Msg("Stock list loaded")
	return nil
}

func (v *Viewer) trackUsage(ctx context.Context) error {
	if !v.session.LoggedIn() || v.deps.Tracker == nil {
		return nil
	}

	status, err := v.deps.Tracker.Track(ctx, v.session.UserID)
	if err != nil {
		v.log.Warn().Err(err).Msg("Error tracking screener request")
		return err
	}
	if !status.Success {
		v.log.Warn().Msg("Usage service reported failure, gate left unchanged")
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.usage = &status
	v.limitReached = status.LimitReached
	if status.LimitReached {
		v.log.Info().Int("current_count", status.CurrentCount).Msg("Daily screener limit reached")
	}
	return nil
}

// Select makes the stock with the given ticker current and dispatches a
// chart request for it. It fails with ErrLimitReached when the usage gate is
// closed and ErrStockNotFound when the ticker is not in the current list.
func (v *Viewer) Select(ticker string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return apperrors.ErrViewerClosed
	}
	v.touchLocked()
	if v.limitReached {
		return apperrors.ErrLimitReached
	}
	if ticker == "" {
		return apperrors.ErrInvalidTicker
	}

	idx := -1
	for i, s := range v.stocks {
		if s.Ticker() == ticker {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.ErrStockNotFound
	}

	v.selected = idx
	v.dispatchLocked()
	return nil
}

// Refresh dispatches a new chart request for the current selection.
func (v *Viewer) Refresh() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return apperrors.ErrViewerClosed
	}
	v.touchLocked()
	if v.limitReached {
		return apperrors.ErrLimitReached
	}
	if v.selected < 0 {
		return apperrors.ErrNoSelection
	}

	v.dispatchLocked()
	return nil
}

// dispatchLocked moves the chart to loading and starts a request for the
// selected stock. Any request still in flight is cancelled and its result
// will be discarded.
func (v *Viewer) dispatchLocked() {
	if v.chart.cancel != nil {
		v.chart.cancel()
	}

	stock := v.stocks[v.selected]
	ctx, cancel := context.WithCancel(v.ctx)

	v.chart.generation++
	v.chart.state = model.ChartLoading
	v.chart.ticker = stock.Ticker()
	v.chart.points = nil
	v.chart.err = ""
	v.chart.cancel = cancel

	gen := v.chart.generation
	v.charts.Add(1)
	go v.runChart(ctx, gen, stock)
}

func (v *Viewer) runChart(ctx context.Context, gen uint64, stock model.StockRecord) {
	defer v.charts.Done()

	points, err := v.deps.Source.Series(ctx, stock)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.chart.generation {
		v.log.Debug().
			Uint64("generation", gen).
			Uint64("latest", v.chart.generation).
			Msg("Discarding superseded chart response")
		return
	}

	v.chart.cancel()
	v.chart.cancel = nil
	if err != nil {
		v.chart.state = model.ChartErrored
		v.chart.err = apperrors.ErrFailedToLoadChart.Error()
		v.log.Warn().Err(err).Str("ticker", stock.Ticker()).Msg("Error fetching chart data")
		return
	}
	v.chart.state = model.ChartLoaded
	v.chart.points = points
}

// resetChartLocked returns the chart to idle, dropping any pending request.
func (v *Viewer) resetChartLocked() {
	if v.chart.cancel != nil {
		v.chart.cancel()
	}
	v.chart = chartState{state: model.ChartIdle, generation: v.chart.generation + 1}
}

func (v *Viewer) touchLocked() {
	v.lastSeen = v.deps.Now()
}

// Touch marks the viewer as recently used.
func (v *Viewer) Touch() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.touchLocked()
}

// LastSeen returns when the viewer was last used.
func (v *Viewer) LastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// Close unmounts the viewer and cancels any pending chart request.
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.cancel()
}

// Wait blocks until every dispatched chart request has finished.
func (v *Viewer) Wait() {
	v.charts.Wait()
}
