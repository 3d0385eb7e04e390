package api

import (
	"net/http"

	httpx "github.com/bornholm/producthub/internal/http"
	"github.com/pkg/errors"
)

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.services.Analytics.Dashboard(r.Context())
	if err != nil {
		h.handleError(w, r, "", errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, dashboard)
}

func (h *Handler) handleFeedbackTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.services.Analytics.FeedbackTrends(r.Context())
	if err != nil {
		h.handleError(w, r, "", errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, trends)
}
