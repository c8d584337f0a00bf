package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "localhost:5001", cfg.Server.Addr)
		assert.Equal(t, "NSE:", cfg.Sheet.TickerPrefix)
		assert.Equal(t, 2000, cfg.Usage.DailyLimit)
		assert.Equal(t, 800*time.Millisecond, cfg.Chart.Delay)
		assert.Equal(t, "mock", cfg.Chart.Source)
		assert.Equal(t, 10*time.Second, cfg.Chart.Timeout)
		assert.Equal(t, "screener_session", cfg.Session.CookieName)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("CHART_DELAY", "0s")
		t.Setenv("USAGE_DAILY_LIMIT", "10")
		t.Setenv("CHART_SOURCE", "YAHOO")
		t.Setenv("CHART_TIMEOUT", "3s")
		t.Setenv("SHEET_TIMEOUT", "20s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "localhost:8080", cfg.Server.Addr)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, time.Duration(0), cfg.Chart.Delay)
		assert.Equal(t, 10, cfg.Usage.DailyLimit)
		assert.Equal(t, "yahoo", cfg.Chart.Source)
		assert.Equal(t, 3*time.Second, cfg.Chart.Timeout)
		assert.Equal(t, 20*time.Second, cfg.Sheet.Timeout)
	})

	t.Run("rejects invalid duration", func(t *testing.T) {
		t.Setenv("SHEET_TIMEOUT", "soon")

		_, err := Load()
		assert.ErrorContains(t, err, "SHEET_TIMEOUT")
	})

	t.Run("rejects invalid chart timeout", func(t *testing.T) {
		t.Setenv("CHART_TIMEOUT", "later")

		_, err := Load()
		assert.ErrorContains(t, err, "CHART_TIMEOUT")
	})

	t.Run("rejects unknown chart source", func(t *testing.T) {
		t.Setenv("CHART_SOURCE", "random")

		_, err := Load()
		assert.Error(t, err)
	})
}
