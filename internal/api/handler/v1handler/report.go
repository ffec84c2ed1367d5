package v1handler

import (
	"net/http"
	"reviewd/pkg/domain"
	"reviewd/pkg/serrors"
	"strconv"

	"github.com/gorilla/mux"
)

type reportListResponse struct {
	Items      []domain.Report `json:"items"`
	NextCursor string          `json:"nextCursor,omitempty"`
}

// ProductReports returns a page of reports filed for a product, newest
// first. Pagination uses the opaque cursor returned with the previous page.
func (h *Handler) ProductReports(w http.ResponseWriter, r *http.Request) {
	productID := domain.ProductID(mux.Vars(r)["productId"])
	if err := productID.Validate(); err != nil {
		writeError(r.Context(), w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid product id"))

		return
	}

	limit := uint(DefaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			writeError(r.Context(), w, serrors.With(serrors.ErrBadRequest, "invalid limit"))

			return
		}
		limit = uint(parsed)
	}

	items, next, err := h.deps.Reporter.ProductReports(r.Context(),
		productID,
		r.URL.Query().Get("cursor"),
		limit)
	if err != nil {
		writeError(r.Context(), w, err)

		return
	}
	if items == nil {
		items = []domain.Report{}
	}

	writeJSON(r.Context(), w, http.StatusOK, reportListResponse{Items: items, NextCursor: next})
}
