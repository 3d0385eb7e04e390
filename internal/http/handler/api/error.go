package api

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	httpx "github.com/bornholm/producthub/internal/http"
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
)

const (
	messageInternalError = "Internal server error"
	messageInvalidBody   = "Invalid request body"
	messageBodyTooLarge  = "Request body too large"
	messageRouteNotFound = "Route not found"
)

var writeError = httpx.WriteError

// handleError maps err to its HTTP representation. label names the entity
// in not found messages.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, label string, err error) {
	var validationErr *model.ValidationError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, r, http.StatusBadRequest, validationErr.Message)

	case errors.Is(err, errInvalidBody):
		writeError(w, r, http.StatusBadRequest, messageInvalidBody)

	case errors.Is(err, errBodyTooLarge):
		writeError(w, r, http.StatusRequestEntityTooLarge, messageBodyTooLarge)

	case errors.Is(err, port.ErrNotFound):
		if label == "" {
			label = "Resource"
		}
		writeError(w, r, http.StatusNotFound, label+" not found")

	case errors.Is(err, port.ErrCanceled):
		writeError(w, r, http.StatusConflict, label+" already finished")

	default:
		ctx := r.Context()

		slog.ErrorContext(ctx, "unexpected error", slog.String("path", r.URL.Path), slogx.Error(err))

		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			hub.CaptureException(err)
		}

		message := messageInternalError
		if h.opts.Development {
			message = err.Error()
		}

		writeError(w, r, http.StatusInternalServerError, message)
	}
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, messageRouteNotFound)
}
