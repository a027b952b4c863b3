/*
Package collab implements the real-time collaboration relay: authenticated
WebSocket connections grouped into per-project rooms, with cursor broadcast and
a terminal echo loopback.

This file defines the wire envelope for relay events and the per-kind payload
validation. Every inbound payload is parsed into a typed value before any
handler acts on it; a payload that fails its shape check produces an error
event back to the sender and nothing else.
*/
package collab

import (
	"encoding/json"
	"fmt"
)

// Inbound event kinds accepted from clients.
const (
	// EventJoinRoom subscribes the connection to a project room.
	EventJoinRoom = "join-room"

	// EventTerminalInput carries one line of terminal input to echo back.
	EventTerminalInput = "terminal-input"

	// EventCursorPosition carries the sender's cursor coordinates.
	EventCursorPosition = "cursor-position"
)

// Outbound event kinds emitted to clients.
const (
	// EventProjectJoined confirms a room join to the joining connection.
	EventProjectJoined = "project-joined"

	// EventTerminalOutput carries echoed terminal data to the sender only.
	EventTerminalOutput = "terminal-output"

	// EventCursorUpdate fans a cursor position out to the other room members.
	EventCursorUpdate = "cursor-update"

	// EventError reports a recoverable per-event failure to the sender only.
	EventError = "error"
)

// Envelope is the wire frame for every relay event, inbound and outbound.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ProjectJoinedPayload confirms the room a connection just joined.
type ProjectJoinedPayload struct {
	RoomID string `json:"roomId"`
}

// TerminalOutputPayload carries echoed terminal data.
type TerminalOutputPayload struct {
	Data string `json:"data"`
}

// ErrorPayload describes a recoverable event-level failure.
type ErrorPayload struct {
	Message string `json:"message"`
}

// MarshalEvent builds the wire bytes for an outbound event of the given kind.
func MarshalEvent(kind string, payload any) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", kind, err)
	}

	return json.Marshal(Envelope{
		Type:    kind,
		Payload: payloadBytes,
	})
}

// parseJoinRoom extracts the room id from a join-room payload. Both the object
// form {"roomId":"..."} and a bare JSON string are accepted; the id must be
// non-empty.
func parseJoinRoom(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, bare != ""
	}

	var obj struct {
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}

	return obj.RoomID, obj.RoomID != ""
}

// parseTerminalInput extracts the input string from a terminal-input payload.
// The payload must be present and its "input" field must be a string.
func parseTerminalInput(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var obj struct {
		Input any `json:"input"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}

	input, ok := obj.Input.(string)
	return input, ok
}

// parseCursorPosition validates a cursor-position payload. x and y must be
// numeric; every other field is preserved so clients can attach extra cursor
// metadata that survives the rebroadcast.
func parseCursorPosition(raw json.RawMessage) (map[string]any, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}

	if _, ok := fields["x"].(float64); !ok {
		return nil, false
	}
	if _, ok := fields["y"].(float64); !ok {
		return nil, false
	}

	return fields, true
}
