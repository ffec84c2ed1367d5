package v1handler

import (
	"encoding/json"
	"net/http"
	"reviewd/internal/checker"
	"reviewd/pkg/domain"
	"reviewd/pkg/serrors"

	"github.com/google/uuid"
)

type createSessionRequest struct {
	ProductID string `json:"productId"`
}

// Session is the wire representation of a checker session.
type Session struct {
	SessionID uuid.UUID `json:"sessionId"`
	ProductID string    `json:"productId"`
	State     ViewState `json:"state"`
}

// ViewState flattens checker.State for JSON clients. Analysis, Ads and
// Status are present only in the loaded state; Error only in the error state.
type ViewState struct {
	Kind            string                  `json:"kind"`
	Analysis        *domain.ProductAnalysis `json:"analysis,omitempty"`
	Ads             []domain.Ad             `json:"ads,omitempty"`
	Status          *domain.AnalysisStatus  `json:"status,omitempty"`
	AnalyzeAttempts int                     `json:"analyzeAttempts,omitempty"`
	Error           string                  `json:"error,omitempty"`
}

// CheckerStateToV1 converts a controller state to its wire representation.
func CheckerStateToV1(st checker.State) ViewState {
	out := ViewState{Kind: string(st.Kind)}

	switch st.Kind {
	case checker.StateLoaded:
		out.Analysis = st.Loaded.Analysis
		out.Ads = st.Loaded.Ads
		out.Status = st.Loaded.Status
		out.AnalyzeAttempts = st.Loaded.AnalyzeAttempts
	case checker.StateError:
		if st.Cause != nil {
			out.Error = st.Cause.Error()
		}
	case checker.StateLoading, checker.StateOnboarding:
	}

	return out
}

func sessionToV1(id uuid.UUID, c *checker.Controller) Session {
	return Session{
		SessionID: id,
		ProductID: string(c.Product()),
		State:     CheckerStateToV1(c.State()),
	}
}

// CreateSession opens a checker session for a product and starts the initial
// fetch in the background.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(r.Context(), w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	id, c, err := h.deps.Hub.Open(r.Context(), domain.ProductID(req.ProductID))
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusCreated, sessionToV1(id, c))
}

// GetSession returns the current session state.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, c, err := h.session(r)
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, sessionToV1(id, c))
}

// DeleteSession dismisses the session and tears its controller down.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, _, err := h.session(r)
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}
	if err := h.deps.Hub.Dismiss(id); err != nil {
		writeError(r.Context(), w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type elementsResponse struct {
	Elements []domain.ElementTag `json:"elements"`
}

// SessionElements returns the ordered display-element list derived from the
// current state and preferences.
func (h *Handler) SessionElements(w http.ResponseWriter, r *http.Request) {
	_, c, err := h.session(r)
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, elementsResponse{Elements: c.Elements(r.Context())})
}

// AnalyzeSession asks the provider to analyze the product. The request
// returns immediately; progress is observable through the session state.
func (h *Handler) AnalyzeSession(w http.ResponseWriter, r *http.Request) {
	_, c, err := h.session(r)
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}

	c.TriggerAnalysis()
	w.WriteHeader(http.StatusAccepted)
}

// ReportStock files a back-in-stock report for the session's product.
func (h *Handler) ReportStock(w http.ResponseWriter, r *http.Request) {
	_, c, err := h.session(r)
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}

	c.ReportBackInStock(r.Context())
	w.WriteHeader(http.StatusAccepted)
}

// ToggleAds flips the ads-enabled preference.
func (h *Handler) ToggleAds(w http.ResponseWriter, r *http.Request) {
	_, c, err := h.session(r)
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}
	if err := c.ToggleAds(r.Context()); err != nil {
		writeError(r.Context(), w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type adVisibilityRequest struct {
	Visible bool `json:"visible"`
}

// AdVisibility forwards the client's ad visibility signal, driving the
// impression debounce timer.
func (h *Handler) AdVisibility(w http.ResponseWriter, r *http.Request) {
	_, c, err := h.session(r)
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}

	var req adVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(r.Context(), w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	c.AdVisibilityChanged(req.Visible)
	w.WriteHeader(http.StatusNoContent)
}

// SessionEvents streams payload-free state-changed notifications over SSE.
// The client re-reads the session state after each event.
func (h *Handler) SessionEvents(w http.ResponseWriter, r *http.Request) {
	_, c, err := h.session(r)
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(r.Context(), w, serrors.With(serrors.ErrInternal, "streaming unsupported"))

		return
	}

	ch, unsubscribe := c.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, open := <-ch:
			if !open {
				// session dismissed
				return
			}
			_, _ = w.Write([]byte("event: state-changed\ndata: {}\n\n"))
			flusher.Flush()
		}
	}
}
