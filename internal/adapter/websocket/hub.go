package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/metrics"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// Hub keeps track of the connected clients and broadcasts events to all of
// them.
type Hub struct {
	opts     *Options
	upgrader websocket.Upgrader

	mutex   sync.RWMutex
	clients map[string]*client
}

// Publish implements port.Notifier.
func (h *Hub) Publish(ctx context.Context, event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		slog.ErrorContext(ctx, "could not encode event", slog.String("event", event), slogx.Error(errors.WithStack(err)))
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, c := range h.clients {
		if c.enqueue(data) {
			metrics.RealtimeMessages.With(prometheus.Labels{metrics.LabelStatus: metrics.StatusDelivered}).Inc()
			continue
		}

		metrics.RealtimeMessages.With(prometheus.Labels{metrics.LabelStatus: metrics.StatusDropped}).Inc()
		slog.WarnContext(ctx, "client queue full, event dropped", slog.String("event", event), slog.String("clientID", c.id))
	}
}

// ServeHTTP implements http.Handler.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not upgrade connection", slogx.Error(errors.WithStack(err)))
		return
	}

	c := &client{
		id:    xid.New().String(),
		conn:  conn,
		send:  make(chan []byte, h.opts.SendBuffer),
		rooms: map[string]struct{}{},
	}

	ctx := slogx.WithAttrs(context.Background(), slog.String("clientID", c.id))

	h.register(ctx, c)

	go c.writeLoop(ctx, h)

	h.reply(ctx, c, EventConnected, ConnectedPayload{ID: c.id})

	c.readLoop(ctx, h)

	h.unregister(ctx, c)

	if err := conn.Close(); err != nil {
		slog.DebugContext(ctx, "could not close connection", slogx.Error(errors.WithStack(err)))
	}
}

// Clients returns the identifiers of the connected clients.
func (h *Hub) Clients() []string {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

// Rooms returns the rooms joined by the given client.
func (h *Hub) Rooms(clientID string) ([]string, error) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	c, exists := h.clients[clientID]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return c.Rooms(), nil
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
		metrics.RealtimeClients.Dec()
	}
}

func (h *Hub) register(ctx context.Context, c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[c.id] = c
	metrics.RealtimeClients.Inc()

	slog.DebugContext(ctx, "client connected")
}

func (h *Hub) unregister(ctx context.Context, c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.clients[c.id]; !exists {
		return
	}

	delete(h.clients, c.id)
	close(c.send)
	metrics.RealtimeClients.Dec()

	slog.DebugContext(ctx, "client disconnected")
}

func (h *Hub) reply(ctx context.Context, c *client, event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		slog.ErrorContext(ctx, "could not encode reply", slogx.Error(errors.WithStack(err)))
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if _, exists := h.clients[c.id]; !exists {
		return
	}

	if !c.enqueue(data) {
		metrics.RealtimeMessages.With(prometheus.Labels{metrics.LabelStatus: metrics.StatusDropped}).Inc()
	}
}

func NewHub(funcs ...OptionFunc) *Hub {
	opts := NewOptions(funcs...)

	h := &Hub{
		opts:    opts,
		clients: map[string]*client{},
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if len(h.opts.AllowedOrigins) == 0 {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	return slices.Contains(h.opts.AllowedOrigins, origin) || slices.Contains(h.opts.AllowedOrigins, "*")
}

var (
	_ port.Notifier = &Hub{}
	_ http.Handler  = &Hub{}
)
