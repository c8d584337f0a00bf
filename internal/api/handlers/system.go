package handlers

import (
	"net/http"

	"github.com/kritikayadav/screener-backend/internal/api/response"
	"github.com/kritikayadav/screener-backend/internal/version"
)

// ViewerCounter reports how many viewers are mounted.
type ViewerCounter interface {
	Len() int
}

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	viewers  ViewerCounter
	features map[string]bool
}

// NewSystemHandler creates a new SystemHandler. features is reported
// as-is by the version endpoint.
func NewSystemHandler(viewers ViewerCounter, features map[string]bool) *SystemHandler {
	return &SystemHandler{
		viewers:  viewers,
		features: features,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Viewers int    `json:"viewers"`
}

// Health reports that the server is up and how many viewers it holds.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with HealthResponse
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Viewers: h.viewers.Len(),
	})
}

// VersionInfoResponse represents the version check response containing the
// application version and feature availability.
type VersionInfoResponse struct {
	AppVersion string          `json:"app_version"`
	Features   map[string]bool `json:"features"`
}

// Version handles GET requests to retrieve version information and feature availability.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	features := h.features
	if features == nil {
		features = map[string]bool{}
	}
	response.RespondJSON(w, http.StatusOK, VersionInfoResponse{
		AppVersion: version.Version,
		Features:   features,
	})
}
