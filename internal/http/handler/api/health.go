package api

import (
	"net/http"
	"time"

	httpx "github.com/bornholm/producthub/internal/http"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	// Uptime is expressed in seconds.
	Uptime float64 `json:"uptime"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := h.opts.Clock()

	httpx.WriteJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(h.startedAt).Seconds(),
	})
}
