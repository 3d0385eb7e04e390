package config

import (
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestParseDefaults(t *testing.T) {
	conf, err := ParseWithEnvironment(map[string]string{})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":5000", conf.HTTP.Address; e != g {
		t.Errorf("conf.HTTP.Address: expected %s, got %s", e, g)
	}

	if e, g := "memory://", conf.Storage.URI; e != g {
		t.Errorf("conf.Storage.URI: expected %s, got %s", e, g)
	}

	if e, g := 30*time.Second, conf.HTTP.RequestTimeout; e != g {
		t.Errorf("conf.HTTP.RequestTimeout: expected %v, got %v", e, g)
	}

	if e, g := int64(10<<20), conf.HTTP.MaxBodySize; e != g {
		t.Errorf("conf.HTTP.MaxBodySize: expected %d, got %d", e, g)
	}

	if e, g := []string{"http://localhost:3000"}, conf.HTTP.CORS.AllowedOrigins; !slices.Equal(e, g) {
		t.Errorf("conf.HTTP.CORS.AllowedOrigins: expected %v, got %v", e, g)
	}

	if e, g := slog.LevelInfo, conf.Logger.Level; e != g {
		t.Errorf("conf.Logger.Level: expected %v, got %v", e, g)
	}

	if conf.Development() {
		t.Errorf("conf.Development(): expected false")
	}
}

func TestParseOverrides(t *testing.T) {
	conf, err := ParseWithEnvironment(map[string]string{
		"PRODUCTHUB_ENVIRONMENT":             "development",
		"PRODUCTHUB_LOGGER_LEVEL":            "DEBUG",
		"PRODUCTHUB_STORAGE_URI":             "sqlite://data.sqlite",
		"PRODUCTHUB_REALTIME_SEND_BUFFER":    "8",
		"PRODUCTHUB_HTTP_RATE_LIMIT_ENABLED": "false",
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !conf.Development() {
		t.Errorf("conf.Development(): expected true")
	}

	if e, g := slog.LevelDebug, conf.Logger.Level; e != g {
		t.Errorf("conf.Logger.Level: expected %v, got %v", e, g)
	}

	if e, g := "sqlite://data.sqlite", conf.Storage.URI; e != g {
		t.Errorf("conf.Storage.URI: expected %s, got %s", e, g)
	}

	if e, g := 8, conf.Realtime.SendBuffer; e != g {
		t.Errorf("conf.Realtime.SendBuffer: expected %d, got %d", e, g)
	}

	if conf.HTTP.RateLimit.Enabled {
		t.Errorf("conf.HTTP.RateLimit.Enabled: expected false")
	}
}
