package collab

import (
	"encoding/json"
	"testing"
	"time"

	"vibecode/internal/app/user"
)

// newTestClient registers a client with a synthetic identity and no transport.
// Dispatch and fan-out only touch the send queue, so no WebSocket is needed.
func newTestClient(t *testing.T, reg *Registry, id string) *Client {
	t.Helper()

	c := NewClient(reg, nil, user.Identity{
		ID:    id,
		Email: id + "@example.com",
		Name:  id,
	})
	reg.Register(c)
	return c
}

// nextEvent returns the next queued outbound event for the client, failing the
// test when none arrives in time.
func nextEvent(t *testing.T, c *Client) Envelope {
	t.Helper()

	select {
	case data, ok := <-c.send:
		if !ok {
			t.Fatalf("send queue closed while waiting for event")
		}
		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			t.Fatalf("unmarshal outbound event: %v", err)
		}
		return envelope
	case <-time.After(2 * time.Second):
		t.Fatalf("expected an outbound event, got none")
	}
	return Envelope{}
}

// mustEvent returns the next queued event and asserts its kind.
func mustEvent(t *testing.T, c *Client, kind string) Envelope {
	t.Helper()

	envelope := nextEvent(t, c)
	if envelope.Type != kind {
		t.Fatalf("expected event kind %q, got %q", kind, envelope.Type)
	}
	return envelope
}

// assertNoEvent fails the test when the client has anything queued.
func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()

	select {
	case data := <-c.send:
		t.Fatalf("expected no outbound event, got %s", data)
	default:
	}
}

// decodePayload unmarshals the envelope payload into dst.
func decodePayload(t *testing.T, envelope Envelope, dst any) {
	t.Helper()

	if err := json.Unmarshal(envelope.Payload, dst); err != nil {
		t.Fatalf("unmarshal %s payload: %v", envelope.Type, err)
	}
}

// joinRoom drives a join-room event through the dispatcher and consumes the
// confirmation.
func joinRoom(t *testing.T, c *Client, roomID string) {
	t.Helper()

	c.processInbound([]byte(`{"type":"join-room","payload":{"roomId":"` + roomID + `"}}`))

	envelope := mustEvent(t, c, EventProjectJoined)

	var joined ProjectJoinedPayload
	decodePayload(t, envelope, &joined)
	if joined.RoomID != roomID {
		t.Fatalf("expected join confirmation for %q, got %q", roomID, joined.RoomID)
	}
}
