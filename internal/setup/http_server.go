package setup

import (
	"context"

	"github.com/bornholm/producthub/internal/config"
	"github.com/bornholm/producthub/internal/http"
	"github.com/bornholm/producthub/internal/http/handler/metrics"
	"github.com/pkg/errors"
	sloghttp "github.com/samber/slog-http"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	api, err := getAPIHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure api handler from config")
	}

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithMiddleware(sloghttp.Recovery),
		http.WithMount("/api/", api),
		http.WithMount("/metrics", metrics.NewHandler()),
	}

	if conf.Realtime.Enabled {
		hub, err := getRealtimeHubFromConfig(ctx, conf)
		if err != nil {
			return nil, errors.Wrap(err, "could not create realtime hub from config")
		}

		// Mounted without the api middlewares, the connection is hijacked.
		options = append(options,
			http.WithMount("/ws", hub),
			http.WithShutdownHook(hub.Close),
		)
	}

	// Create HTTP server

	server := http.NewServer(options...)

	return server, nil
}
