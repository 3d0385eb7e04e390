package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/producthub/internal/config"
	"github.com/bornholm/producthub/internal/http/handler/api"
	"github.com/bornholm/producthub/internal/http/middleware/ratelimit"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

const timeoutBody = `{"error":"Request timeout"}`

func getAPIHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	services, err := getServicesFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create services from config")
	}

	sentryEnabled, err := initSentryFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var handler http.Handler = api.NewHandler(services, api.WithDevelopment(conf.Development()))

	handler = http.MaxBytesHandler(handler, conf.HTTP.MaxBodySize)
	handler = http.TimeoutHandler(handler, conf.HTTP.RequestTimeout, timeoutBody)

	if conf.HTTP.RateLimit.Enabled {
		rateLimit := conf.HTTP.RateLimit
		handler = ratelimit.Middleware(ratelimit.Options{
			TrustHeaders: rateLimit.TrustHeaders,
			Interval:     rateLimit.Interval,
			MaxBurst:     rateLimit.MaxBurst,
			CacheSize:    rateLimit.CacheSize,
			CacheTTL:     rateLimit.CacheTTL,
		})(handler)
	}

	if sentryEnabled {
		handler = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(handler)
	}

	handler = cors.New(cors.Options{
		AllowedOrigins:   conf.HTTP.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(handler)

	handler = sloghttp.NewWithConfig(slog.Default(), sloghttp.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
	})(handler)

	return handler, nil
}
