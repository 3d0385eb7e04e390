package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/core/query"
	"github.com/pkg/errors"
)

var (
	errInvalidBody  = errors.New("invalid request body")
	errBodyTooLarge = errors.New("request body too large")
)

func getQuerySpec(values url.Values, filters []string) query.Spec {
	funcs := []query.OptionFunc{
		query.WithPagination(
			getQueryPage(values, query.DefaultPage),
			getQueryLimit(values, query.DefaultLimit),
		),
		query.WithSearch(values.Get("search")),
	}

	sortBy := values.Get("sortBy")
	if sortBy == "" {
		sortBy = query.DefaultSortBy
	}

	funcs = append(funcs, query.WithSort(sortBy, query.ParseOrder(values.Get("sortOrder"))))

	for _, name := range filters {
		if value := values.Get(name); value != "" {
			funcs = append(funcs, query.WithFilter(name, value))
		}
	}

	return query.NewSpec(funcs...)
}

func getQueryPage(query url.Values, defaultValue int) int {
	return getQueryInt(query, "page", defaultValue)
}

func getQueryLimit(query url.Values, defaultValue int) int {
	return getQueryInt(query, "limit", defaultValue)
}

func getQueryInt(query url.Values, name string, defaultValue int) int {
	raw := query.Get(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return defaultValue
	}

	return int(value)
}

// getPathID parses a record identifier. Malformed identifiers cannot match
// any record and are reported as not found.
func getPathID(r *http.Request, name string) (model.ID, error) {
	raw := r.PathValue(name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.WithStack(port.ErrNotFound)
	}

	return model.ID(id), nil
}

// decodeBody decodes the JSON request body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errors.WithStack(errBodyTooLarge)
		}

		return errors.Wrapf(errInvalidBody, "%s", err.Error())
	}

	return nil
}
