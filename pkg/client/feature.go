package client

import (
	"context"
	"net/http"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/query"
	"github.com/pkg/errors"
)

const allFeaturesPageSize = 100

func (c *Client) ListFeatures(ctx context.Context, funcs ...ListOptionFunc) (*query.Page[*model.Feature], error) {
	opts := NewListOptions(funcs...)

	var page query.Page[*model.Feature]
	if err := c.jsonRequest(ctx, http.MethodGet, "/features", opts.values(), nil, &page); err != nil {
		return nil, errors.WithStack(err)
	}

	return &page, nil
}

// AllFeatures walks every page of the features listing.
func (c *Client) AllFeatures(ctx context.Context) ([]*model.Feature, error) {
	features := make([]*model.Feature, 0)

	for pageNumber := 1; ; pageNumber++ {
		page, err := c.ListFeatures(ctx,
			WithListSort("id", query.OrderAsc),
			WithListPage(pageNumber, allFeaturesPageSize),
		)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		features = append(features, page.Data...)

		if !page.HasNext {
			return features, nil
		}
	}
}
