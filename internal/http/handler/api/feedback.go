package api

import (
	"fmt"
	"net/http"

	"github.com/bornholm/producthub/internal/core/model"
	httpx "github.com/bornholm/producthub/internal/http"
	"github.com/pkg/errors"
)

type VoteResponse struct {
	*model.Feedback
	Message string `json:"message"`
}

func (h *Handler) handleFeedbackVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathID(r, "id")
	if err != nil {
		h.handleError(w, r, "Feedback", errors.WithStack(err))
		return
	}

	var req VoteRequest
	if err := decodeBody(r, &req); err != nil {
		h.handleError(w, r, "Feedback", errors.WithStack(err))
		return
	}

	voteType := req.VoteType
	if voteType == "" {
		voteType = model.VoteUp
	}

	feedback, err := h.services.Feedback.Vote(ctx, id, voteType)
	if err != nil {
		h.handleError(w, r, "Feedback", errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, VoteResponse{
		Feedback: feedback,
		Message:  fmt.Sprintf("Vote %s recorded", voteType),
	})
}

func (h *Handler) handleFeedbackStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.services.Feedback.Stats(ctx)
	if err != nil {
		h.handleError(w, r, "", errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, stats)
}
