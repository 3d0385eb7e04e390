package api

import (
	"net/http"

	"github.com/bornholm/producthub/internal/core/service"
	httpx "github.com/bornholm/producthub/internal/http"
	"github.com/pkg/errors"
)

func (h *Handler) handleListIdeas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ideas := h.services.Ideas

	spec := getQuerySpec(r.URL.Query(), ideas.Schema().FilterNames())

	page, err := ideas.Query(ctx, spec)
	if err != nil {
		h.handleError(w, r, "Idea", errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, page)
}

func (h *Handler) handleGenerateIdea(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.GenerateIdeaRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleError(w, r, "Idea", errors.WithStack(err))
		return
	}

	idea, err := h.services.Ideas.Generate(ctx, req)
	if err != nil {
		h.handleError(w, r, "Idea", errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusCreated, idea)
}
