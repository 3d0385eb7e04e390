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

func (c *Client) ListIntegrations(ctx context.Context, funcs ...ListOptionFunc) (*query.Page[*model.Integration], error) {
	opts := NewListOptions(funcs...)

	var page query.Page[*model.Integration]
	if err := c.jsonRequest(ctx, http.MethodGet, "/integrations", opts.values(), nil, &page); err != nil {
		return nil, errors.WithStack(err)
	}

	return &page, nil
}

// SyncIntegration schedules a synchronization of the given integration.
// Use WaitFor with the returned task id to wait for its completion.
func (c *Client) SyncIntegration(ctx context.Context, id model.ID) (*api.SyncResponse, error) {
	var res api.SyncResponse
	if err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/integrations/%d/sync", id), nil, nil, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res, nil
}
