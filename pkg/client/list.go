package client

import (
	"net/url"
	"strconv"

	"github.com/bornholm/producthub/internal/core/query"
)

// ListOptions are the listing parameters shared by the collection endpoints.
type ListOptions struct {
	Filters   map[string]string
	Search    string
	SortBy    string
	SortOrder query.Order
	Page      int
	Limit     int
}

type ListOptionFunc func(opts *ListOptions)

func WithListFilter(name, value string) ListOptionFunc {
	return func(opts *ListOptions) {
		if opts.Filters == nil {
			opts.Filters = map[string]string{}
		}
		opts.Filters[name] = value
	}
}

func WithListSearch(search string) ListOptionFunc {
	return func(opts *ListOptions) {
		opts.Search = search
	}
}

func WithListSort(sortBy string, order query.Order) ListOptionFunc {
	return func(opts *ListOptions) {
		opts.SortBy = sortBy
		opts.SortOrder = order
	}
}

func WithListPage(page, limit int) ListOptionFunc {
	return func(opts *ListOptions) {
		opts.Page = page
		opts.Limit = limit
	}
}

func NewListOptions(funcs ...ListOptionFunc) *ListOptions {
	opts := &ListOptions{
		Filters: map[string]string{},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func (o *ListOptions) values() url.Values {
	values := url.Values{}

	for name, value := range o.Filters {
		if value != "" {
			values.Set(name, value)
		}
	}

	if o.Search != "" {
		values.Set("search", o.Search)
	}

	if o.SortBy != "" {
		values.Set("sortBy", o.SortBy)
	}

	if o.SortOrder != "" {
		values.Set("sortOrder", string(o.SortOrder))
	}

	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}

	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}

	return values
}
