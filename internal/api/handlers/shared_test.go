package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kritikayadav/screener-backend/internal/api/request"
)

// TestParseJSON is an internal test because parseJSON is unexported.
func TestParseJSON(t *testing.T) {
	t.Run("decodes a valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"ticker":"ABC"}`))

		got, err := parseJSON[request.SelectStockRequest](req)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Ticker != "ABC" {
			t.Errorf("Expected ticker 'ABC', got %q", got.Ticker)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"ticker":"ABC","index":2}`))

		if _, err := parseJSON[request.SelectStockRequest](req); err == nil {
			t.Error("Expected error for unknown field")
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"ticker":`))

		if _, err := parseJSON[request.SelectStockRequest](req); err == nil {
			t.Error("Expected error for malformed body")
		}
	})
}
