package setup

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/producthub/internal/config"
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
)

// initSentryFromConfig initializes the Sentry client and reports whether
// error reporting is enabled.
var initSentryFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (bool, error) {
	if conf.Sentry.DSN == "" {
		return false, nil
	}

	environment := conf.Sentry.Environment
	if environment == "" {
		environment = conf.Environment
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              conf.Sentry.DSN,
		Environment:      environment,
		AttachStacktrace: true,
	})
	if err != nil {
		return false, errors.Wrap(err, "could not initialize sentry client")
	}

	slog.InfoContext(ctx, "sentry error reporting enabled", slog.String("environment", environment))

	return true, nil
})

// FlushSentry waits for the buffered events to be sent.
func FlushSentry(timeout time.Duration) {
	sentry.Flush(timeout)
}
