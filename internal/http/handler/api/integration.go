package api

import (
	"net/http"

	"github.com/bornholm/producthub/internal/core/model"
	httpx "github.com/bornholm/producthub/internal/http"
	"github.com/pkg/errors"
)

type SyncResponse struct {
	Message       string       `json:"message"`
	IntegrationID model.ID     `json:"integrationId"`
	TaskID        model.TaskID `json:"taskId"`
}

func (h *Handler) handleSyncIntegration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathID(r, "id")
	if err != nil {
		h.handleError(w, r, "Integration", errors.WithStack(err))
		return
	}

	taskID, err := h.services.Integrations.Sync(ctx, id)
	if err != nil {
		h.handleError(w, r, "Integration", errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, SyncResponse{
		Message:       "Sync started",
		IntegrationID: id,
		TaskID:        taskID,
	})
}
