package setup

import (
	"context"

	"github.com/bornholm/producthub/internal/adapter/websocket"
	"github.com/bornholm/producthub/internal/config"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/pkg/errors"
)

var getRealtimeHubFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*websocket.Hub, error) {
	hub := websocket.NewHub(
		websocket.WithSendBuffer(conf.Realtime.SendBuffer),
		websocket.WithWriteTimeout(conf.Realtime.WriteTimeout),
		websocket.WithPingInterval(conf.Realtime.PingInterval),
		websocket.WithAllowedOrigins(conf.Realtime.AllowedOrigins...),
	)

	return hub, nil
})

func getNotifierFromConfig(ctx context.Context, conf *config.Config) (port.Notifier, error) {
	if !conf.Realtime.Enabled {
		return port.NoopNotifier, nil
	}

	hub, err := getRealtimeHubFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return hub, nil
}
