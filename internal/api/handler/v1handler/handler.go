// Package v1handler implements the v1 REST handlers of the review-checker
// API: session lifecycle, element derivation, analysis triggering, report
// filing and the state-changed event stream.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reviewd/internal/checker"
	"reviewd/internal/reporter"
	"reviewd/pkg/logger"
	"reviewd/pkg/serrors"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// DefaultLimit is the page size of report listings when the client does not
// ask for one.
const DefaultLimit = 20

// Deps are the collaborators the v1 handlers need.
type Deps struct {
	// Hub is the registry of live checker sessions.
	Hub *checker.Hub
	// Reporter lists stored reports for the reports endpoint.
	Reporter reporter.Reporter
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register attaches all v1 routes to the given (sub)router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}", h.DeleteSession).Methods(http.MethodDelete)
	r.HandleFunc("/sessions/{id}/elements", h.SessionElements).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/analyze", h.AnalyzeSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/stock-report", h.ReportStock).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/ads/toggle", h.ToggleAds).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/ad-visibility", h.AdVisibility).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/events", h.SessionEvents).Methods(http.MethodGet)
	r.HandleFunc("/products/{productId}/reports", h.ProductReports).Methods(http.MethodGet)
}

// session resolves the {id} path variable to a live controller.
func (h *Handler) session(r *http.Request) (uuid.UUID, *checker.Controller, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid session id")
	}

	c, err := h.deps.Hub.Get(id)
	if err != nil {
		return uuid.Nil, nil, err
	}

	return id, c, nil
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(ctx, "could not encode response", zap.Error(err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps semantic error kinds to HTTP statuses. Internal failures
// are logged and rendered without their cause.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, serrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, serrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, serrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, serrors.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, serrors.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, serrors.ErrUnavailable), errors.Is(err, serrors.ErrNoConnection):
		status = http.StatusBadGateway
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
		msg = "internal error"
	}

	writeJSON(ctx, w, status, errorResponse{Error: msg})
}
