package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	roomsMutex sync.RWMutex
	rooms      map[string]struct{}
}

func (c *client) Rooms() []string {
	c.roomsMutex.RLock()
	defer c.roomsMutex.RUnlock()

	rooms := make([]string, 0, len(c.rooms))
	for r := range c.rooms {
		rooms = append(rooms, r)
	}

	slices.Sort(rooms)

	return rooms
}

func (c *client) join(room string) {
	c.roomsMutex.Lock()
	defer c.roomsMutex.Unlock()
	c.rooms[room] = struct{}{}
}

func (c *client) leave(room string) {
	c.roomsMutex.Lock()
	defer c.roomsMutex.Unlock()
	delete(c.rooms, room)
}

// enqueue never blocks. It reports false when the client queue is full.
func (c *client) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) readLoop(ctx context.Context, h *Hub) {
	c.conn.SetReadLimit(h.opts.ReadLimit)

	pongWait := h.opts.PingInterval * 2
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.DebugContext(ctx, "unexpected websocket close", slogx.Error(errors.WithStack(err)))
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			h.reply(ctx, c, EventError, ErrorPayload{Message: "Invalid message"})
			continue
		}

		switch cmd.Event {
		case EventJoinRoom:
			if cmd.Room == "" {
				h.reply(ctx, c, EventError, ErrorPayload{Message: "Room is required"})
				continue
			}
			c.join(cmd.Room)
			slog.DebugContext(ctx, "client joined room", slog.String("room", cmd.Room))

		case EventLeaveRoom:
			c.leave(cmd.Room)
			slog.DebugContext(ctx, "client left room", slog.String("room", cmd.Room))

		case EventJoinRoadmap:
			if cmd.Roadmap == "" {
				h.reply(ctx, c, EventError, ErrorPayload{Message: "Roadmap is required"})
				continue
			}
			room := RoadmapRoom(cmd.Roadmap)
			c.join(room)
			slog.DebugContext(ctx, "client joined roadmap", slog.String("room", room))

		case EventLeaveRoadmap:
			room := RoadmapRoom(cmd.Roadmap)
			c.leave(room)
			slog.DebugContext(ctx, "client left roadmap", slog.String("room", room))

		default:
			h.reply(ctx, c, EventError, ErrorPayload{Message: "Unknown event"})
		}
	}
}

func (c *client) writeLoop(ctx context.Context, h *Hub) {
	ticker := time.NewTicker(h.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))

			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				slog.DebugContext(ctx, "could not write websocket message", slogx.Error(errors.WithStack(err)))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
