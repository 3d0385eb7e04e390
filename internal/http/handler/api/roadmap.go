package api

import (
	"net/http"

	"github.com/bornholm/producthub/internal/core/model"
	httpx "github.com/bornholm/producthub/internal/http"
	"github.com/pkg/errors"
)

const (
	labelRoadmap     = "Roadmap"
	labelRoadmapItem = "Roadmap item"
)

func (h *Handler) handleGetRoadmap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathID(r, "id")
	if err != nil {
		h.handleError(w, r, labelRoadmap, errors.WithStack(err))
		return
	}

	roadmap, err := h.services.Roadmaps.GetWithItems(ctx, id)
	if err != nil {
		h.handleError(w, r, labelRoadmap, errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, roadmap)
}

func (h *Handler) handleCreateRoadmapItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roadmapID, err := getPathID(r, "id")
	if err != nil {
		h.handleError(w, r, labelRoadmap, errors.WithStack(err))
		return
	}

	var item model.RoadmapItem
	if err := decodeBody(r, &item); err != nil {
		h.handleError(w, r, labelRoadmapItem, errors.WithStack(err))
		return
	}

	created, err := h.services.Roadmaps.CreateItem(ctx, roadmapID, &item)
	if err != nil {
		h.handleError(w, r, labelRoadmap, errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusCreated, created)
}

func (h *Handler) handleUpdateRoadmapItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roadmapID, itemID, err := getRoadmapItemIDs(r)
	if err != nil {
		h.handleError(w, r, labelRoadmapItem, errors.WithStack(err))
		return
	}

	var updates model.RoadmapItemUpdates
	if err := decodeBody(r, &updates); err != nil {
		h.handleError(w, r, labelRoadmapItem, errors.WithStack(err))
		return
	}

	updated, err := h.services.Roadmaps.UpdateItem(ctx, roadmapID, itemID, updates)
	if err != nil {
		h.handleError(w, r, labelRoadmapItem, errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) handleDeleteRoadmapItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roadmapID, itemID, err := getRoadmapItemIDs(r)
	if err != nil {
		h.handleError(w, r, labelRoadmapItem, errors.WithStack(err))
		return
	}

	deleted, err := h.services.Roadmaps.DeleteItem(ctx, roadmapID, itemID)
	if err != nil {
		h.handleError(w, r, labelRoadmapItem, errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, map[string]any{
		"message": labelRoadmapItem + " deleted successfully",
		"item":    deleted,
	})
}

func getRoadmapItemIDs(r *http.Request) (model.ID, model.ID, error) {
	roadmapID, err := getPathID(r, "id")
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}

	itemID, err := getPathID(r, "itemID")
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}

	return roadmapID, itemID, nil
}
