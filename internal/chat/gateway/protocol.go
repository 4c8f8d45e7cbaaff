package gateway

import (
	"encoding/json"

	"supportchat/internal/dbmysql"
)

// Wire contract. Field names are normative: they must match what the
// deployed chat clients already send and expect.

// Client -> server events.
const (
	// EventMessage is the canonical submit event. EventSendMessage is a
	// legacy alias some clients still emit; both land in the same
	// handler.
	EventMessage     = "message"
	EventSendMessage = "send-message"
	EventJoin        = "join"
	EventGetMessages = "getMessages"
)

// Server -> client events.
const (
	EventNewMessage     = "newMessage"
	EventMessageHistory = "messageHistory"
	EventError          = "error"
)

// Frame is the JSON envelope every event rides in, both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type joinPayload struct {
	UserID string `json:"userId"`
}

type messagePayload struct {
	Text          string `json:"text"`
	IsFromSupport bool   `json:"isFromSupport,omitempty"`
	TargetUserID  string `json:"targetUserId,omitempty"`
}

type getMessagesPayload struct {
	UserID string `json:"userId,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// historyPayload wraps replayed conversations. Clients must accept both
// this shape and a bare array; the server always sends the wrapped form.
type historyPayload struct {
	Messages []*dbmysql.Message `json:"messages"`
}

func newFrame(event string, data interface{}) (*Frame, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Frame{Event: event, Data: raw}, nil
}
