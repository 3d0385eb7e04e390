package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type Server struct {
	opts *Options
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	for _, hook := range s.opts.ShutdownHooks {
		server.RegisterOnShutdown(hook)
	}

	errs := make(chan error, 1)

	go func() {
		defer close(errs)

		slog.InfoContext(ctx, "http server listening", slog.String("address", s.opts.Address))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- errors.WithStack(err)
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	slog.InfoContext(ctx, "shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Handler returns the root handler serving every mount.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	baseURL := strings.TrimSuffix(s.opts.BaseURL, "/")

	for prefix, handler := range s.opts.Mounts {
		pattern := baseURL + prefix

		if strings.HasSuffix(prefix, "/") {
			handler = http.StripPrefix(baseURL+strings.TrimSuffix(prefix, "/"), handler)
		}

		mux.Handle(pattern, handler)
	}

	if _, exists := s.opts.Mounts["/"]; !exists {
		mux.HandleFunc(baseURL+"/", handleNotFound)
	}

	var handler http.Handler = mux
	for i := len(s.opts.Middlewares) - 1; i >= 0; i-- {
		handler = s.opts.Middlewares[i](handler)
	}

	return handler
}

func NewServer(funcs ...OptionFunc) *Server {
	opts := NewOptions(funcs...)
	return &Server{opts}
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusNotFound, "Route not found")
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a JSON error body with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSON(w, r, status, ErrorResponse{Error: message})
}

// WriteJSON writes value as an indented JSON body with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	if err := encoder.Encode(value); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slogx.Error(errors.WithStack(err)))
	}
}
