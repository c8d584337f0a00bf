package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kritikayadav/screener-backend/internal/adminnav"
	"github.com/kritikayadav/screener-backend/internal/session"
	"github.com/kritikayadav/screener-backend/internal/testutil"
)

func TestAdminHandler_Nav(t *testing.T) {
	handler := NewAdminHandler()
	admin := &session.Session{UserID: "a1", Name: "Kritika", Admin: true}

	t.Run("marks the active link", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/admin/nav", map[string]string{"path": "/admin/coupons/new"})
		w := httptest.NewRecorder()

		handler.Nav(w, withSession(req, admin))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response adminnav.Nav
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response.Items) != 15 {
			t.Fatalf("Expected 15 items, got %d", len(response.Items))
		}
		for _, item := range response.Items {
			if item.Active != (item.Label == "Coupon Codes") {
				t.Errorf("Unexpected active state for %q: %v", item.Label, item.Active)
			}
		}
		if response.User != "Kritika" {
			t.Errorf("Expected user 'Kritika', got %q", response.User)
		}
		if response.SidebarOpen {
			t.Error("Expected sidebar closed by default")
		}
	})

	t.Run("defaults to the dashboard", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/admin/nav", map[string]string{"sidebar": "open"})
		w := httptest.NewRecorder()

		handler.Nav(w, withSession(req, admin))

		var response adminnav.Nav
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.Items[0].Active {
			t.Error("Expected Dashboard to be active")
		}
		if !response.SidebarOpen {
			t.Error("Expected sidebar open")
		}
	})
}

func TestAdminHandler_Sidebar(t *testing.T) {
	handler := NewAdminHandler()

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
		wantOpen   bool
	}{
		{name: "toggle opens a closed sidebar", body: map[string]interface{}{"open": false, "event": "toggle"}, wantStatus: http.StatusOK, wantOpen: true},
		{name: "toggle closes an open sidebar", body: map[string]interface{}{"open": true, "event": "toggle"}, wantStatus: http.StatusOK, wantOpen: false},
		{name: "outside click closes", body: map[string]interface{}{"open": true, "event": "outside_click"}, wantStatus: http.StatusOK, wantOpen: false},
		{name: "open stays open", body: map[string]interface{}{"open": true, "event": "open"}, wantStatus: http.StatusOK, wantOpen: true},
		{name: "unknown event", body: map[string]interface{}{"open": true, "event": "swipe"}, wantStatus: http.StatusBadRequest},
		{name: "missing event", body: map[string]interface{}{"open": true}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/api/admin/sidebar", tt.body)
			w := httptest.NewRecorder()

			handler.Sidebar(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var response adminnav.Sidebar
			//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
			json.NewDecoder(w.Body).Decode(&response)

			if response.Open != tt.wantOpen {
				t.Errorf("Expected open=%v, got %v", tt.wantOpen, response.Open)
			}
		})
	}
}
