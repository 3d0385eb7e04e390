package websocket

import "time"

type Options struct {
	SendBuffer     int
	WriteTimeout   time.Duration
	PingInterval   time.Duration
	ReadLimit      int64
	AllowedOrigins []string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		SendBuffer:     64,
		WriteTimeout:   10 * time.Second,
		PingInterval:   30 * time.Second,
		ReadLimit:      4096,
		AllowedOrigins: []string{},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithSendBuffer(size int) OptionFunc {
	return func(opts *Options) {
		opts.SendBuffer = size
	}
}

func WithWriteTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.WriteTimeout = timeout
	}
}

func WithPingInterval(interval time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.PingInterval = interval
	}
}

// WithAllowedOrigins restricts the accepted Origin headers. An empty list
// accepts any origin.
func WithAllowedOrigins(origins ...string) OptionFunc {
	return func(opts *Options) {
		opts.AllowedOrigins = origins
	}
}
