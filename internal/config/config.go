package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Sheet   SheetConfig
	Usage   UsageConfig
	Chart   ChartConfig
	Session SessionConfig
	Viewer  ViewerConfig
	Log     LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// SheetConfig describes the spreadsheet-backed stock list endpoint.
type SheetConfig struct {
	Endpoint     string
	TickerPrefix string
	Timeout      time.Duration
}

// UsageConfig describes the remote screener usage tracking service.
type UsageConfig struct {
	BaseURL    string
	Timeout    time.Duration
	DailyLimit int
}

// ChartConfig selects and tunes the chart data source.
type ChartConfig struct {
	Source  string // "mock" or "yahoo"
	Delay   time.Duration
	Timeout time.Duration // Yahoo requests only
}

// SessionConfig holds the fernet key used to verify session tokens.
type SessionConfig struct {
	Key        string
	CookieName string
	TTL        time.Duration
}

// ViewerConfig controls how long an idle viewer is kept before pruning.
type ViewerConfig struct {
	IdleTTL       time.Duration
	PruneSchedule string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	var err error
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Sheet: SheetConfig{
			Endpoint:     getEnv("SHEET_ENDPOINT", "https://sheetdb.io/api/v1/ojr62jcf9wshw"),
			TickerPrefix: getEnv("SHEET_TICKER_PREFIX", "NSE:"),
		},
		Usage: UsageConfig{
			BaseURL: getEnv("USAGE_BASE_URL", "https://app.kritikayadav.in"),
		},
		Chart: ChartConfig{
			Source: strings.ToLower(getEnv("CHART_SOURCE", "mock")),
		},
		Session: SessionConfig{
			Key:        os.Getenv("SESSION_KEY"),
			CookieName: getEnv("SESSION_COOKIE", "screener_session"),
		},
		Viewer: ViewerConfig{
			PruneSchedule: getEnv("VIEWER_PRUNE_SCHEDULE", "@every 1m"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if config.Sheet.Timeout, err = getEnvDuration("SHEET_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if config.Usage.Timeout, err = getEnvDuration("USAGE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if config.Usage.DailyLimit, err = getEnvInt("USAGE_DAILY_LIMIT", 2000); err != nil {
		return nil, err
	}
	if config.Chart.Delay, err = getEnvDuration("CHART_DELAY", 800*time.Millisecond); err != nil {
		return nil, err
	}
	if config.Chart.Timeout, err = getEnvDuration("CHART_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if config.Session.TTL, err = getEnvDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if config.Viewer.IdleTTL, err = getEnvDuration("VIEWER_IDLE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if config.Log.Pretty, err = getEnvBool("LOG_PRETTY", false); err != nil {
		return nil, err
	}

	if config.Chart.Source != "mock" && config.Chart.Source != "yahoo" {
		return nil, fmt.Errorf("CHART_SOURCE must be mock or yahoo, got %q", config.Chart.Source)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
