package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kritikayadav/screener-backend/internal/api/middleware"
	"github.com/kritikayadav/screener-backend/internal/testutil"
)

func TestValidateUUIDMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantCalled bool
		wantStatus int
	}{
		{name: "passes through valid UUID", id: "550e8400-e29b-41d4-a716-446655440000", wantCalled: true, wantStatus: http.StatusOK},
		{name: "returns 400 for invalid UUID", id: "invalid-id", wantStatus: http.StatusBadRequest},
		{name: "returns 400 for empty UUID", id: "", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/screener/viewers/"+tt.id, map[string]string{"uuid": tt.id})
			w := httptest.NewRecorder()
			middleware.ValidateUUIDMiddleware(next).ServeHTTP(w, req)

			if handlerCalled != tt.wantCalled {
				t.Errorf("Expected handler called=%v, got %v", tt.wantCalled, handlerCalled)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
