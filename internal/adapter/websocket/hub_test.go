package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

type receivedMessage struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}

func read(t *testing.T, conn *websocket.Conn) receivedMessage {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg receivedMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return msg
}

func waitFor(t *testing.T, condition func() bool) {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestHub(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dial(t, server)

	connected := read(t, conn)
	if e, g := EventConnected, connected.Event; e != g {
		t.Fatalf("connected.Event: expected %s, got %s", e, g)
	}

	var payload ConnectedPayload
	if err := json.Unmarshal(connected.Payload, &payload); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := []string{payload.ID}, hub.Clients(); !slices.Equal(e, g) {
		t.Errorf("hub.Clients(): expected %v, got %v", e, g)
	}

	hub.Publish(context.Background(), "feedback:created", map[string]any{"id": 4})

	created := read(t, conn)
	if e, g := "feedback:created", created.Event; e != g {
		t.Errorf("created.Event: expected %s, got %s", e, g)
	}

	if e, g := `{"id":4}`, string(created.Payload); e != g {
		t.Errorf("created.Payload: expected %s, got %s", e, g)
	}

	if err := conn.WriteJSON(Command{Event: EventJoinRoom, Room: "user-1"}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	waitFor(t, func() bool {
		rooms, err := hub.Rooms(payload.ID)
		return err == nil && slices.Equal(rooms, []string{"user-1"})
	})

	if err := conn.WriteJSON(Command{Event: EventLeaveRoom, Room: "user-1"}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	waitFor(t, func() bool {
		rooms, err := hub.Rooms(payload.ID)
		return err == nil && len(rooms) == 0
	})

	if err := conn.WriteJSON(Command{Event: EventJoinRoadmap, Roadmap: "3"}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	waitFor(t, func() bool {
		rooms, err := hub.Rooms(payload.ID)
		return err == nil && slices.Equal(rooms, []string{"roadmap-3"})
	})

	if err := conn.WriteJSON(Command{Event: EventJoinRoadmap}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	missing := read(t, conn)
	if e, g := EventError, missing.Event; e != g {
		t.Errorf("missing.Event: expected %s, got %s", e, g)
	}

	if e, g := `{"message":"Roadmap is required"}`, string(missing.Payload); e != g {
		t.Errorf("missing.Payload: expected %s, got %s", e, g)
	}

	if err := conn.WriteJSON(Command{Event: EventLeaveRoadmap, Roadmap: "3"}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	waitFor(t, func() bool {
		rooms, err := hub.Rooms(payload.ID)
		return err == nil && len(rooms) == 0
	})

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	invalid := read(t, conn)
	if e, g := EventError, invalid.Event; e != g {
		t.Errorf("invalid.Event: expected %s, got %s", e, g)
	}

	conn.Close()

	waitFor(t, func() bool {
		return len(hub.Clients()) == 0
	})
}

func TestHubBroadcastsToEveryClient(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	server := httptest.NewServer(hub)
	defer server.Close()

	conns := []*websocket.Conn{dial(t, server), dial(t, server), dial(t, server)}
	for _, c := range conns {
		read(t, c)
	}

	hub.Publish(context.Background(), "feature:updated", map[string]any{"id": 1})

	for i, c := range conns {
		msg := read(t, c)
		if e, g := "feature:updated", msg.Event; e != g {
			t.Errorf("conns[%d] event: expected %s, got %s", i, e, g)
		}
	}
}

func TestHubDropsWhenQueueIsFull(t *testing.T) {
	hub := NewHub(WithSendBuffer(1))

	c := &client{id: "slow", send: make(chan []byte, 1), rooms: map[string]struct{}{}}
	hub.clients[c.id] = c

	hub.Publish(context.Background(), "feedback:voted", nil)
	hub.Publish(context.Background(), "feedback:voted", nil)

	if e, g := 1, len(c.send); e != g {
		t.Errorf("len(c.send): expected %d, got %d", e, g)
	}
}

func TestHubCheckOrigin(t *testing.T) {
	hub := NewHub(WithAllowedOrigins("http://localhost:3000"))

	type testCase struct {
		Origin   string
		Expected bool
	}

	testCases := []testCase{
		{Origin: "", Expected: true},
		{Origin: "http://localhost:3000", Expected: true},
		{Origin: "http://evil.example", Expected: false},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest("GET", "/ws", nil)
		if tc.Origin != "" {
			req.Header.Set("Origin", tc.Origin)
		}

		if e, g := tc.Expected, hub.checkOrigin(req); e != g {
			t.Errorf("checkOrigin(%q): expected %v, got %v", tc.Origin, e, g)
		}
	}
}
