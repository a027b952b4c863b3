package collab

import (
	"testing"
)

func TestJoinRoomObjectPayload(t *testing.T) {
	reg := NewRegistry()
	alice := newTestClient(t, reg, "u1")

	joinRoom(t, alice, "p1")

	if room := reg.RoomOf(alice); room != "p1" {
		t.Fatalf("expected alice in p1, got %q", room)
	}
}

func TestJoinRoomBareStringPayload(t *testing.T) {
	reg := NewRegistry()
	alice := newTestClient(t, reg, "u1")

	alice.processInbound([]byte(`{"type":"join-room","payload":"p1"}`))

	envelope := mustEvent(t, alice, EventProjectJoined)

	var joined ProjectJoinedPayload
	decodePayload(t, envelope, &joined)
	if joined.RoomID != "p1" {
		t.Fatalf("expected confirmation for p1, got %q", joined.RoomID)
	}
}

func TestJoinRoomInvalidPayloads(t *testing.T) {
	cases := []struct {
		name  string
		frame string
	}{
		{"missing payload", `{"type":"join-room"}`},
		{"empty room id", `{"type":"join-room","payload":{"roomId":""}}`},
		{"empty bare string", `{"type":"join-room","payload":""}`},
		{"numeric payload", `{"type":"join-room","payload":42}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry()
			alice := newTestClient(t, reg, "u1")

			alice.processInbound([]byte(tc.frame))

			envelope := mustEvent(t, alice, EventError)

			var errPayload ErrorPayload
			decodePayload(t, envelope, &errPayload)
			if errPayload.Message != msgInvalidRoomID {
				t.Fatalf("expected %q, got %q", msgInvalidRoomID, errPayload.Message)
			}

			if room := reg.RoomOf(alice); room != "" {
				t.Fatalf("expected no room membership after invalid join, got %q", room)
			}
			assertNoEvent(t, alice)
		})
	}
}

func TestTerminalInputEchoesToSenderOnly(t *testing.T) {
	reg := NewRegistry()
	alice := newTestClient(t, reg, "u1")
	bob := newTestClient(t, reg, "u2")

	joinRoom(t, alice, "p1")
	joinRoom(t, bob, "p1")

	alice.processInbound([]byte(`{"type":"terminal-input","payload":{"input":"ls -la"}}`))

	envelope := mustEvent(t, alice, EventTerminalOutput)

	var output TerminalOutputPayload
	decodePayload(t, envelope, &output)
	if output.Data != "Echo: ls -la" {
		t.Fatalf("expected echoed input, got %q", output.Data)
	}

	assertNoEvent(t, alice)
	assertNoEvent(t, bob)
}

func TestTerminalInputWorksOutsideRoom(t *testing.T) {
	reg := NewRegistry()
	alice := newTestClient(t, reg, "u1")

	alice.processInbound([]byte(`{"type":"terminal-input","payload":{"input":""}}`))

	envelope := mustEvent(t, alice, EventTerminalOutput)

	var output TerminalOutputPayload
	decodePayload(t, envelope, &output)
	if output.Data != "Echo: " {
		t.Fatalf("expected empty echo, got %q", output.Data)
	}
}

func TestTerminalInputInvalidPayloads(t *testing.T) {
	cases := []struct {
		name  string
		frame string
	}{
		{"missing payload", `{"type":"terminal-input"}`},
		{"null payload", `{"type":"terminal-input","payload":null}`},
		{"missing input field", `{"type":"terminal-input","payload":{}}`},
		{"numeric input", `{"type":"terminal-input","payload":{"input":7}}`},
		{"null input", `{"type":"terminal-input","payload":{"input":null}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry()
			alice := newTestClient(t, reg, "u1")

			alice.processInbound([]byte(tc.frame))

			envelope := mustEvent(t, alice, EventError)

			var errPayload ErrorPayload
			decodePayload(t, envelope, &errPayload)
			if errPayload.Message != msgInvalidInput {
				t.Fatalf("expected %q, got %q", msgInvalidInput, errPayload.Message)
			}

			// Exactly one error event and no terminal-output.
			assertNoEvent(t, alice)
		})
	}
}

func TestCursorPositionFansOutToPeers(t *testing.T) {
	reg := NewRegistry()
	alice := newTestClient(t, reg, "u1")
	bob := newTestClient(t, reg, "u2")

	joinRoom(t, alice, "p1")
	joinRoom(t, bob, "p1")

	alice.processInbound([]byte(`{"type":"cursor-position","payload":{"x":10,"y":20}}`))

	envelope := mustEvent(t, bob, EventCursorUpdate)

	var update map[string]any
	decodePayload(t, envelope, &update)
	if update["userId"] != "u1" {
		t.Fatalf("expected userId u1, got %v", update["userId"])
	}
	if update["x"] != 10.0 || update["y"] != 20.0 {
		t.Fatalf("unexpected coordinates: %v", update)
	}

	// Never echoed back to the sender.
	assertNoEvent(t, alice)
}

func TestCursorPositionAloneHasNoRecipients(t *testing.T) {
	reg := NewRegistry()
	alice := newTestClient(t, reg, "u1")

	joinRoom(t, alice, "p1")

	alice.processInbound([]byte(`{"type":"cursor-position","payload":{"x":10,"y":20}}`))

	assertNoEvent(t, alice)
}

func TestCursorPositionOutsideRoomIsDiscarded(t *testing.T) {
	reg := NewRegistry()
	alice := newTestClient(t, reg, "u1")

	alice.processInbound([]byte(`{"type":"cursor-position","payload":{"x":1,"y":2}}`))

	assertNoEvent(t, alice)
}

func TestCursorPositionPreservesExtraFields(t *testing.T) {
	reg := NewRegistry()
	alice := newTestClient(t, reg, "u1")
	bob := newTestClient(t, reg, "u2")

	joinRoom(t, alice, "p1")
	joinRoom(t, bob, "p1")

	alice.processInbound([]byte(`{"type":"cursor-position","payload":{"x":3,"y":4,"file":"main.go","color":"#ff0077"}}`))

	envelope := mustEvent(t, bob, EventCursorUpdate)

	var update map[string]any
	decodePayload(t, envelope, &update)
	if update["file"] != "main.go" || update["color"] != "#ff0077" {
		t.Fatalf("expected extra cursor fields to survive, got %v", update)
	}
}

func TestCursorPositionInvalidPayloads(t *testing.T) {
	cases := []struct {
		name  string
		frame string
	}{
		{"missing payload", `{"type":"cursor-position"}`},
		{"string x", `{"type":"cursor-position","payload":{"x":"10","y":20}}`},
		{"missing y", `{"type":"cursor-position","payload":{"x":10}}`},
		{"null y", `{"type":"cursor-position","payload":{"x":10,"y":null}}`},
		{"array payload", `{"type":"cursor-position","payload":[1,2]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry()
			alice := newTestClient(t, reg, "u1")
			bob := newTestClient(t, reg, "u2")

			joinRoom(t, alice, "p1")
			joinRoom(t, bob, "p1")

			alice.processInbound([]byte(tc.frame))

			envelope := mustEvent(t, alice, EventError)

			var errPayload ErrorPayload
			decodePayload(t, envelope, &errPayload)
			if errPayload.Message != msgInvalidCursor {
				t.Fatalf("expected %q, got %q", msgInvalidCursor, errPayload.Message)
			}

			// No broadcast happened.
			assertNoEvent(t, bob)
			assertNoEvent(t, alice)
		})
	}
}

func TestMalformedFramesAreDroppedSilently(t *testing.T) {
	cases := []struct {
		name  string
		frame string
	}{
		{"invalid json", `{not json`},
		{"unknown event type", `{"type":"format-disk","payload":{}}`},
		{"empty frame", ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry()
			alice := newTestClient(t, reg, "u1")

			alice.processInbound([]byte(tc.frame))

			assertNoEvent(t, alice)
		})
	}
}

func TestConnectionIdentityIsImmutable(t *testing.T) {
	reg := NewRegistry()
	alice := newTestClient(t, reg, "u1")

	identity := alice.Identity()
	if identity.ID != "u1" || identity.Email != "u1@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}
