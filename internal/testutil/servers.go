package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kritikayadav/screener-backend/internal/model"
	"github.com/kritikayadav/screener-backend/internal/yahoo"
)

// NewSheetServer starts a fake sheet endpoint replying with status and body.
func NewSheetServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// UsageServer is a fake usage tracking service.
type UsageServer struct {
	*httptest.Server
	Tracked atomic.Int32
	Queried atomic.Int32
}

// NewUsageServer starts a fake usage service that answers every track and
// usage call with status.
func NewUsageServer(t *testing.T, status model.UsageStatus) *UsageServer {
	t.Helper()
	us := &UsageServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/screener/track", func(w http.ResponseWriter, _ *http.Request) {
		us.Tracked.Add(1)
		writeJSON(w, status)
	})
	mux.HandleFunc("GET /api/screener/usage", func(w http.ResponseWriter, _ *http.Request) {
		us.Queried.Add(1)
		writeJSON(w, status)
	})
	us.Server = httptest.NewServer(mux)
	t.Cleanup(us.Close)
	return us
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Test server - encode failure surfaces as a client decode error
	json.NewEncoder(w).Encode(v)
}

// NewYahooServer starts a fake Yahoo chart endpoint returning resp for any symbol.
func NewYahooServer(t *testing.T, resp yahoo.Response) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// CreateMockYahooResponse creates a mock Yahoo Finance API response with test data.
// The response includes `days` number of days of price data, ending yesterday.
func CreateMockYahooResponse(days int) yahoo.Response {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)

	timestamps := make([]int64, days)
	closes := make([]*float64, days)

	basePrice := 100.0
	for i := 0; i < days; i++ {
		date := yesterday.AddDate(0, 0, -days+i+1)
		timestamps[i] = date.Unix()

		closePrice := basePrice + float64(i)*0.5 + 0.25
		closes[i] = &closePrice
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:   "TEST.NS",
						Currency: "INR",
						LongName: "Test Industries Ltd.",
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{{Close: closes}},
					},
				},
			},
		},
	}
}

// CreateMockYahooErrorResponse creates a mock Yahoo response with an error.
func CreateMockYahooErrorResponse(description string) yahoo.Response {
	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{},
			Error:  &yahoo.Error{Code: "Not Found", Description: description},
		},
	}
}
