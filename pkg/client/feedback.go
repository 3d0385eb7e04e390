package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/query"
	"github.com/bornholm/producthub/internal/http/handler/api"
	"github.com/pkg/errors"
)

func (c *Client) ListFeedback(ctx context.Context, funcs ...ListOptionFunc) (*query.Page[*model.Feedback], error) {
	opts := NewListOptions(funcs...)

	var page query.Page[*model.Feedback]
	if err := c.jsonRequest(ctx, http.MethodGet, "/feedback", opts.values(), nil, &page); err != nil {
		return nil, errors.WithStack(err)
	}

	return &page, nil
}

func (c *Client) GetFeedback(ctx context.Context, id model.ID) (*model.Feedback, error) {
	var feedback model.Feedback
	if err := c.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/feedback/%d", id), nil, nil, &feedback); err != nil {
		return nil, errors.WithStack(err)
	}

	return &feedback, nil
}

func (c *Client) CreateFeedback(ctx context.Context, req api.FeedbackCreateRequest) (*model.Feedback, error) {
	var feedback model.Feedback
	if err := c.jsonRequest(ctx, http.MethodPost, "/feedback", nil, req, &feedback); err != nil {
		return nil, errors.WithStack(err)
	}

	return &feedback, nil
}

func (c *Client) VoteFeedback(ctx context.Context, id model.ID, voteType model.VoteType) (*api.VoteResponse, error) {
	var res api.VoteResponse
	if err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/feedback/%d/vote", id), nil, api.VoteRequest{VoteType: voteType}, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res, nil
}

func (c *Client) FeedbackStats(ctx context.Context) (*model.FeedbackStats, error) {
	var stats model.FeedbackStats
	if err := c.jsonRequest(ctx, http.MethodGet, "/feedback/stats/summary", nil, nil, &stats); err != nil {
		return nil, errors.WithStack(err)
	}

	return &stats, nil
}
