package client

import (
	"context"
	"net/http"

	"github.com/bornholm/producthub/internal/http/handler/api"
	"github.com/pkg/errors"
)

func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var res api.HealthResponse
	if err := c.jsonRequest(ctx, http.MethodGet, "/health", nil, nil, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res, nil
}
