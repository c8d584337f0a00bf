package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kritikayadav/screener-backend/internal/api"
	"github.com/kritikayadav/screener-backend/internal/chart"
	"github.com/kritikayadav/screener-backend/internal/config"
	"github.com/kritikayadav/screener-backend/internal/logger"
	"github.com/kritikayadav/screener-backend/internal/scheduler"
	"github.com/kritikayadav/screener-backend/internal/session"
	"github.com/kritikayadav/screener-backend/internal/sheet"
	"github.com/kritikayadav/screener-backend/internal/usage"
	"github.com/kritikayadav/screener-backend/internal/version"
	"github.com/kritikayadav/screener-backend/internal/viewer"
	"github.com/kritikayadav/screener-backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// The logger is configured from cfg, so fall back to defaults here.
		l := logger.New(logger.Config{})
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(log)

	codec, err := newSessionCodec(cfg.Session, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session codec")
	}

	// Create clients
	sheetClient := sheet.NewClient(cfg.Sheet.Endpoint, cfg.Sheet.TickerPrefix, cfg.Sheet.Timeout, log)
	usageClient := usage.NewClient(cfg.Usage.BaseURL, cfg.Usage.Timeout, log)

	var source chart.Source
	switch cfg.Chart.Source {
	case "yahoo":
		source = chart.NewYahooSource(yahoo.NewFinanceClient(cfg.Chart.Timeout), ".NS")
	default:
		source = chart.NewMockSource(chart.NewGenerator(), cfg.Chart.Delay)
	}

	store := viewer.NewStore(viewer.Deps{
		Loader:     sheetClient,
		Tracker:    usageClient,
		Source:     source,
		DailyLimit: cfg.Usage.DailyLimit,
		Log:        log,
	})

	// Background jobs
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.Viewer.PruneSchedule, scheduler.NewPruneViewersJob(store, cfg.Viewer.IdleTTL, log)); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Viewer.PruneSchedule).Msg("Failed to schedule viewer pruning")
	}
	sched.Start()

	// Create router
	router := api.NewRouter(api.Services{
		Sessions: codec,
		Viewers:  store,
		Stocks:   sheetClient,
		Usage:    usageClient,
		Features: map[string]bool{
			"yahoo_chart":    cfg.Chart.Source == "yahoo",
			"usage_tracking": cfg.Usage.BaseURL != "",
		},
	}, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Str("version", version.Version).
			Str("chart_source", cfg.Chart.Source).
			Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	sched.Stop()
	store.Close()

	log.Info().Msg("Server exited")
}

// newSessionCodec builds the token codec. Without SESSION_KEY an ephemeral
// key is generated, so tokens issued elsewhere will not verify.
func newSessionCodec(cfg config.SessionConfig, log zerolog.Logger) (*session.Codec, error) {
	key := cfg.Key
	if key == "" {
		generated, err := session.GenerateKey()
		if err != nil {
			return nil, err
		}
		log.Warn().Msg("SESSION_KEY not set, using an ephemeral key")
		key = generated
	}
	return session.NewCodec(cfg.TTL, key)
}
