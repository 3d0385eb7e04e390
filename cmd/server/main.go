package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/producthub/internal/config"
	"github.com/bornholm/producthub/internal/setup"
	"github.com/pkg/errors"

	// Adapters
	_ "github.com/bornholm/producthub/internal/adapter/memory"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf, err := config.Parse()
	if err != nil {
		slog.ErrorContext(ctx, "could not parse config", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	handlerOptions := &slog.HandlerOptions{
		Level:     conf.Logger.Level,
		AddSource: conf.Development(),
	}

	var handler slog.Handler
	switch conf.Logger.Format {
	case config.LoggerFormatJSON:
		handler = slog.NewJSONHandler(os.Stderr, handlerOptions)
	default:
		handler = slog.NewTextHandler(os.Stderr, handlerOptions)
	}

	logger := slog.New(slogx.ContextHandler{
		Handler: handler,
	})

	slog.SetDefault(logger)

	slog.DebugContext(ctx, "using configuration", slog.Any("config", conf))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.InfoContext(ctx, "use ctrl+c to interrupt")
		<-sig
		cancel()
	}()

	server, err := setup.NewHTTPServerFromConfig(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not setup http server", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	defer setup.FlushSentry(2 * time.Second)

	slog.InfoContext(ctx, "starting server", slog.Any("address", conf.HTTP.Address), slog.String("environment", conf.Environment))

	if err := server.Run(ctx); err != nil {
		slog.Error("could not run server", slog.Any("error", errors.WithStack(err)))
		setup.FlushSentry(2 * time.Second)
		os.Exit(1)
	}
}
