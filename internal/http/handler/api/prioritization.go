package api

import (
	"net/http"

	"github.com/bornholm/producthub/internal/core/model"
	httpx "github.com/bornholm/producthub/internal/http"
	"github.com/pkg/errors"
)

func (h *Handler) handlePrioritizedFeatures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	quadrant := model.Quadrant(r.URL.Query().Get("quadrant"))

	features, err := h.services.Features.Prioritize(ctx, quadrant)
	if err != nil {
		h.handleError(w, r, "", errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, features)
}

// handleUpdateFeaturePosition moves a feature on the prioritization matrix,
// either to explicit impact and effort scores or to a quadrant.
func (h *Handler) handleUpdateFeaturePosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathID(r, "id")
	if err != nil {
		h.handleError(w, r, "Feature", errors.WithStack(err))
		return
	}

	var req PositionRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleError(w, r, "Feature", errors.WithStack(err))
		return
	}

	var feature *model.Feature

	switch {
	case req.Quadrant != "":
		feature, err = h.services.Features.MoveToQuadrant(ctx, id, req.Quadrant)

	case req.Impact != nil && req.Effort != nil:
		feature, err = h.services.Features.MoveToPosition(ctx, id, *req.Impact, *req.Effort)

	default:
		err = model.NewValidationError("Impact and effort, or quadrant, are required")
	}
	if err != nil {
		h.handleError(w, r, "Feature", errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, feature)
}

type QuadrantRequest struct {
	Quadrant model.Quadrant `json:"quadrant"`
}

func (h *Handler) handleUpdateFeatureQuadrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathID(r, "id")
	if err != nil {
		h.handleError(w, r, "Feature", errors.WithStack(err))
		return
	}

	var req QuadrantRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleError(w, r, "Feature", errors.WithStack(err))
		return
	}

	feature, err := h.services.Features.MoveToQuadrant(ctx, id, req.Quadrant)
	if err != nil {
		h.handleError(w, r, "Feature", errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, feature)
}
