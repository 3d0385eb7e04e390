package websocket

import "encoding/json"

const (
	EventConnected    = "connected"
	EventJoinRoom     = "join-room"
	EventLeaveRoom    = "leave-room"
	EventJoinRoadmap  = "join-roadmap"
	EventLeaveRoadmap = "leave-roadmap"
	EventError        = "error"
)

// Message is a server to client frame.
type Message struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Command is a client to server frame.
type Command struct {
	Event   string `json:"event"`
	Room    string `json:"room,omitempty"`
	Roadmap string `json:"roadmap,omitempty"`
}

// RoadmapRoom returns the room tracking a roadmap item.
func RoadmapRoom(roadmap string) string {
	return "roadmap-" + roadmap
}

type ConnectedPayload struct {
	ID string `json:"id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func encode(event string, payload any) ([]byte, error) {
	return json.Marshal(Message{Event: event, Payload: payload})
}
