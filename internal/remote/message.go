package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lox/openface/internal/game"
)

var (
	// ErrDisconnected is returned by calls on an agent whose connection has gone.
	ErrDisconnected = errors.New("remote agent disconnected")
	// ErrBadMessage is returned when a peer sends something that cannot be decoded.
	ErrBadMessage = errors.New("malformed message")
	// ErrTableFull is returned to clients that connect once every seat is taken.
	ErrTableFull = errors.New("table is full")
	// ErrAgentFailed is reported by a client whose local agent returned an error.
	ErrAgentFailed = errors.New("agent failed")
)

// MessageType names a websocket message.
type MessageType string

const (
	// Client → host
	TypeHello     MessageType = "hello"
	TypeMove      MessageType = "move"
	TypePlacement MessageType = "placement"

	// Host → client
	TypeWelcome        MessageType = "welcome"
	TypeMoveRequest    MessageType = "move_request"
	TypeFantasyRequest MessageType = "fantasy_request"
	TypeRoundResult    MessageType = "round_result"

	// Either direction
	TypeError MessageType = "error"
)

// Message is the envelope for every websocket frame. Replies carry the
// RequestID of the request they answer.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(t MessageType, requestID string, data any) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return &Message{Type: t, Data: raw, Timestamp: time.Now(), RequestID: requestID}, nil
}

// Decode unmarshals the payload into v.
func (m *Message) Decode(v any) error {
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadMessage, m.Type, err)
	}
	return nil
}

type HelloData struct {
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
}

type WelcomeData struct {
	Seat  int    `json:"seat"`
	Name  string `json:"name"`
	Seats int    `json:"seats"`
}

// RoundResultData is sent to every seat once a round closes.
type RoundResultData struct {
	Seat  int                `json:"seat"`
	Round game.RoundSnapshot `json:"round"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ErrorData) Error() string { return e.Code + ": " + e.Message }

// errorData maps an error onto a wire code.
func errorData(err error) ErrorData {
	code := "internal"
	switch {
	case errors.Is(err, ErrTableFull):
		code = "table_full"
	case errors.Is(err, ErrUnauthorized):
		code = "unauthorized"
	case errors.Is(err, ErrBadMessage):
		code = "invalid_message"
	case game.KindOf(err) == game.KindRules:
		code = "rules"
	case errors.Is(err, ErrAgentFailed):
		code = "agent_failed"
	}
	return ErrorData{Code: code, Message: err.Error()}
}
