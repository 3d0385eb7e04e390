package api

import (
	"net/http"
	"slices"
	"strings"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/service"
	httpx "github.com/bornholm/producthub/internal/http"
	"github.com/pkg/errors"
)

const (
	routeList   = "GET "
	routeGet    = "GET /{id}"
	routeCreate = "POST "
	routeUpdate = "PUT /{id}"
	routeDelete = "DELETE /{id}"
)

// resource exposes the CRUD operations of a collection. C is the creation
// request body and U the partial update body.
type resource[T model.Record[T], C any, U model.Patch[T]] struct {
	handler   *Handler
	label     string
	key       string
	manager   *service.CollectionManager[T]
	newRecord func(req C) T
}

func (res *resource[T, C, U]) mount(mux *http.ServeMux, prefix string, except ...string) {
	routes := []struct {
		Route   string
		Handler http.HandlerFunc
	}{
		{routeList, res.list},
		{routeGet, res.get},
		{routeCreate, res.create},
		{routeUpdate, res.update},
		{routeDelete, res.delete},
	}

	for _, r := range routes {
		if slices.Contains(except, r.Route) {
			continue
		}

		method, path, _ := strings.Cut(r.Route, " ")
		mux.HandleFunc(method+" "+prefix+path, r.Handler)
	}
}

func (res *resource[T, C, U]) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	spec := getQuerySpec(r.URL.Query(), res.manager.Schema().FilterNames())

	page, err := res.manager.Query(ctx, spec)
	if err != nil {
		res.handler.handleError(w, r, res.label, errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, page)
}

func (res *resource[T, C, U]) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathID(r, "id")
	if err != nil {
		res.handler.handleError(w, r, res.label, errors.WithStack(err))
		return
	}

	record, err := res.manager.Get(ctx, id)
	if err != nil {
		res.handler.handleError(w, r, res.label, errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, record)
}

func (res *resource[T, C, U]) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req C
	if err := decodeBody(r, &req); err != nil {
		res.handler.handleError(w, r, res.label, errors.WithStack(err))
		return
	}

	record, err := res.manager.Create(ctx, res.newRecord(req))
	if err != nil {
		res.handler.handleError(w, r, res.label, errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusCreated, record)
}

// update merges the request body into the stored record. An update leaving
// a required field empty is rejected with a 400 and the record is kept
// unchanged.
func (res *resource[T, C, U]) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathID(r, "id")
	if err != nil {
		res.handler.handleError(w, r, res.label, errors.WithStack(err))
		return
	}

	var updates U
	if err := decodeBody(r, &updates); err != nil {
		res.handler.handleError(w, r, res.label, errors.WithStack(err))
		return
	}

	record, err := res.manager.Update(ctx, id, updates)
	if err != nil {
		res.handler.handleError(w, r, res.label, errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, record)
}

func (res *resource[T, C, U]) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathID(r, "id")
	if err != nil {
		res.handler.handleError(w, r, res.label, errors.WithStack(err))
		return
	}

	record, err := res.manager.Delete(ctx, id)
	if err != nil {
		res.handler.handleError(w, r, res.label, errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, map[string]any{
		"message": res.label + " deleted successfully",
		res.key:   record,
	})
}

func orEmpty[T any](v *T) *T {
	if v == nil {
		return new(T)
	}
	return v
}
