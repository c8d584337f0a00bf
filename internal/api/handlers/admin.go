package handlers

import (
	"net/http"

	"github.com/kritikayadav/screener-backend/internal/adminnav"
	"github.com/kritikayadav/screener-backend/internal/api/request"
	"github.com/kritikayadav/screener-backend/internal/api/response"
	"github.com/kritikayadav/screener-backend/internal/session"
	"github.com/kritikayadav/screener-backend/internal/validation"
)

// AdminHandler serves the navigation shell of the admin pages.
type AdminHandler struct{}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Nav handles GET requests for the admin navigation of a page.
// The sidebar starts closed; the "sidebar" query parameter set to "open"
// renders it open.
//
// Endpoint: GET /api/admin/nav?path=/admin/users&sidebar=open
// Response: 200 OK with adminnav.Nav
// Error: 401 Unauthorized with redirect to /admin/login unless admin (enforced by middleware)
func (h *AdminHandler) Nav(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/admin"
	}
	sidebar := adminnav.Sidebar{Open: r.URL.Query().Get("sidebar") == "open"}

	response.RespondJSON(w, http.StatusOK, adminnav.Render(path, sidebar, session.FromContext(r.Context())))
}

// Sidebar handles POST requests applying an interaction to the sidebar state.
//
// Endpoint: POST /api/admin/sidebar
// Request Body: SidebarRequest (open, event)
// Response: 200 OK with adminnav.Sidebar
// Error: 400 Bad Request if the event is unknown
func (h *AdminHandler) Sidebar(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SidebarRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSidebar(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	next, err := adminnav.Sidebar{Open: req.Open}.Apply(adminnav.Event(req.Event))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, next)
}
