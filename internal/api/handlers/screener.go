package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kritikayadav/screener-backend/internal/api/request"
	"github.com/kritikayadav/screener-backend/internal/api/response"
	"github.com/kritikayadav/screener-backend/internal/apperrors"
	"github.com/kritikayadav/screener-backend/internal/model"
	"github.com/kritikayadav/screener-backend/internal/session"
	"github.com/kritikayadav/screener-backend/internal/validation"
	"github.com/kritikayadav/screener-backend/internal/viewer"
)

// UsageQuerier reads a user's screener usage without recording a new use.
type UsageQuerier interface {
	Usage(ctx context.Context, userID string) (model.UsageStatus, error)
}

// ScreenerHandler handles HTTP requests for the stock screener page.
// Each page mount owns a viewer in the store; the page drives it through
// these endpoints and renders the returned view.
type ScreenerHandler struct {
	store  *viewer.Store
	stocks viewer.StockLoader
	usage  UsageQuerier
	log    zerolog.Logger
}

// NewScreenerHandler creates a new ScreenerHandler.
func NewScreenerHandler(store *viewer.Store, stocks viewer.StockLoader, usage UsageQuerier, log zerolog.Logger) *ScreenerHandler {
	return &ScreenerHandler{
		store:  store,
		stocks: stocks,
		usage:  usage,
		log:    log.With().Str("component", "screener_handler").Logger(),
	}
}

// Stocks handles GET requests for the normalized stock list.
//
// Endpoint: GET /api/screener/stocks
// Response: 200 OK with array of stock records
// Error: 502 Bad Gateway if the sheet cannot be fetched
func (h *ScreenerHandler) Stocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.stocks.FetchStocks(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRetrieveStocks.Error(), err.Error())
		return
	}
	if stocks == nil {
		stocks = []model.StockRecord{}
	}

	response.RespondJSON(w, http.StatusOK, stocks)
}

// UsageResponse is the caller's usage together with the configured limit.
type UsageResponse struct {
	model.UsageStatus
	DailyLimit int `json:"dailyLimit"`
}

// Usage handles GET requests for the logged-in user's screener usage.
//
// Endpoint: GET /api/screener/usage
// Response: 200 OK with UsageResponse
// Error: 401 Unauthorized without a session (enforced by middleware)
// Error: 502 Bad Gateway if the usage service fails
func (h *ScreenerHandler) Usage(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	status, err := h.usage.Usage(r.Context(), sess.UserID)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRetrieveUsage.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, UsageResponse{
		UsageStatus: status,
		DailyLimit:  h.store.DailyLimit(),
	})
}

// MountResponse is returned when a page mounts a viewer.
type MountResponse struct {
	ID   string      `json:"id"`
	View viewer.View `json:"view"`
}

// Mount handles POST requests creating a viewer for the calling page.
// A degraded mount (stock list or usage unavailable) still succeeds; the
// view shows the empty list or an open gate.
//
// Endpoint: POST /api/screener/viewers
// Response: 201 Created with MountResponse
func (h *ScreenerHandler) Mount(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.Mount(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		h.log.Warn().Err(err).Str("viewer_id", v.ID().String()).Msg("Viewer mounted in degraded state")
	}

	response.RespondJSON(w, http.StatusCreated, MountResponse{
		ID:   v.ID().String(),
		View: v.View(),
	})
}

// View handles GET requests for a viewer's current state. Pages poll this
// while the chart is loading.
//
// Endpoint: GET /api/screener/viewers/{uuid}
// Response: 200 OK with viewer.View
// Error: 404 Not Found if the viewer does not exist or belongs to another user
func (h *ScreenerHandler) View(w http.ResponseWriter, r *http.Request) {
	v, ok := h.viewer(w, r)
	if !ok {
		return
	}

	response.RespondJSON(w, http.StatusOK, v.View())
}

// Select handles PUT requests changing the selected stock.
//
// Endpoint: PUT /api/screener/viewers/{uuid}/selection
// Request Body: SelectStockRequest (ticker)
// Response: 200 OK with viewer.View, chart loading
// Error: 400 Bad Request if the body is invalid
// Error: 403 Forbidden if the daily limit is reached
// Error: 404 Not Found if the viewer or ticker is unknown
func (h *ScreenerHandler) Select(w http.ResponseWriter, r *http.Request) {
	v, ok := h.viewer(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.SelectStockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSelectStock(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := v.Select(req.Ticker); err != nil {
		h.respondViewerError(w, v, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, v.View())
}

// Refresh handles POST requests reloading the chart for the current selection.
//
// Endpoint: POST /api/screener/viewers/{uuid}/refresh
// Response: 202 Accepted with viewer.View, chart loading
// Error: 403 Forbidden if the daily limit is reached
// Error: 409 Conflict if no stock is selected
func (h *ScreenerHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	v, ok := h.viewer(w, r)
	if !ok {
		return
	}

	if err := v.Refresh(); err != nil {
		h.respondViewerError(w, v, err)
		return
	}

	response.RespondJSON(w, http.StatusAccepted, v.View())
}

// Reload handles POST requests fetching the stock list again. A failed
// fetch still returns 200 with an empty list, matching a failed mount.
//
// Endpoint: POST /api/screener/viewers/{uuid}/reload
// Response: 200 OK with viewer.View
func (h *ScreenerHandler) Reload(w http.ResponseWriter, r *http.Request) {
	v, ok := h.viewer(w, r)
	if !ok {
		return
	}

	if err := v.Reload(r.Context()); err != nil {
		if errors.Is(err, apperrors.ErrViewerClosed) {
			h.respondViewerError(w, v, err)
			return
		}
		h.log.Warn().Err(err).Str("viewer_id", v.ID().String()).Msg("Stock list reload failed")
	}

	response.RespondJSON(w, http.StatusOK, v.View())
}

// Unmount handles DELETE requests discarding a viewer when its page unmounts.
//
// Endpoint: DELETE /api/screener/viewers/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the viewer does not exist
func (h *ScreenerHandler) Unmount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidUUID.Error(), err.Error())
		return
	}

	if err := h.store.Remove(id, session.FromContext(r.Context())); err != nil {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrViewerNotFound.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// viewer looks up the viewer named by the uuid URL parameter, writing an
// error response when it cannot.
func (h *ScreenerHandler) viewer(w http.ResponseWriter, r *http.Request) (*viewer.Viewer, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidUUID.Error(), err.Error())
		return nil, false
	}

	v, err := h.store.Get(id, session.FromContext(r.Context()))
	if err != nil {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrViewerNotFound.Error(), err.Error())
		return nil, false
	}
	return v, true
}

// ViewerErrorResponse is an error response that also carries the viewer's
// current view, so the page can render the upsell panel or keep its state.
type ViewerErrorResponse struct {
	response.ErrorResponse
	View viewer.View `json:"view"`
}

func (h *ScreenerHandler) respondViewerError(w http.ResponseWriter, v *viewer.Viewer, err error) {
	var status int
	switch {
	case errors.Is(err, apperrors.ErrLimitReached):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrStockNotFound), errors.Is(err, apperrors.ErrViewerClosed):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrNoSelection):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidTicker):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	response.RespondJSON(w, status, ViewerErrorResponse{
		ErrorResponse: response.ErrorResponse{Error: err.Error()},
		View:          v.View(),
	})
}
