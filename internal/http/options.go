package http

import (
	"net/http"
	"time"
)

type Options struct {
	Address         string
	BaseURL         string
	Mounts          map[string]http.Handler
	Middlewares     []func(http.Handler) http.Handler
	ShutdownTimeout time.Duration
	ShutdownHooks   []func()
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Address:         ":5000",
		BaseURL:         "",
		Mounts:          map[string]http.Handler{},
		Middlewares:     []func(http.Handler) http.Handler{},
		ShutdownTimeout: 10 * time.Second,
		ShutdownHooks:   []func(){},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// WithMount registers handler under prefix. Prefixes ending with a slash
// are stripped before the request reaches the handler.
func WithMount(prefix string, handler http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Mounts[prefix] = handler
	}
}

// WithMiddleware wraps the whole server handler. Middlewares are applied in
// the given order, the first one being the outermost.
func WithMiddleware(middlewares ...func(http.Handler) http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Middlewares = append(opts.Middlewares, middlewares...)
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithAddress(addr string) OptionFunc {
	return func(opts *Options) {
		opts.Address = addr
	}
}

func WithShutdownTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.ShutdownTimeout = timeout
	}
}

// WithShutdownHook registers a function called when the server shuts down.
// Hijacked connections are not tracked by the server and must be released
// this way.
func WithShutdownHook(hooks ...func()) OptionFunc {
	return func(opts *Options) {
		opts.ShutdownHooks = append(opts.ShutdownHooks, hooks...)
	}
}
