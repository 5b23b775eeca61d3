package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewEventMessage builds a wire message carrying an activity event payload.
func NewEventMessage(payload interface{}) []byte {
	data, _ := json.Marshal(Message{Action: "event", Payload: payload})
	return data
}

// NewErrorMessage builds a wire message carrying an error for the client.
func NewErrorMessage(msg string) []byte {
	data, _ := json.Marshal(Message{Action: "error", Payload: msg})
	return data
}
