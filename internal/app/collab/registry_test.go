package collab

import (
	"sync"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	reg := NewRegistry()

	alice := newTestClient(t, reg, "u1")

	if got := reg.Get(alice.ID); got != alice {
		t.Fatalf("expected Get to return the registered connection, got %v", got)
	}
	if got := reg.Get("missing"); got != nil {
		t.Fatalf("expected nil for unknown connection id, got %v", got)
	}
	if n := reg.ConnectionCount(); n != 1 {
		t.Fatalf("expected 1 connection, got %d", n)
	}
}

func TestJoinCreatesRoomAndTracksMembership(t *testing.T) {
	reg := NewRegistry()

	alice := newTestClient(t, reg, "u1")
	bob := newTestClient(t, reg, "u2")

	reg.Join(alice, "p1")
	reg.Join(bob, "p1")

	if n := reg.RoomCount(); n != 1 {
		t.Fatalf("expected 1 room, got %d", n)
	}
	if members := reg.RoomMembers("p1"); len(members) != 2 {
		t.Fatalf("expected 2 members in p1, got %d", len(members))
	}
	if room := reg.RoomOf(alice); room != "p1" {
		t.Fatalf("expected alice in p1, got %q", room)
	}
}

func TestJoinMovesConnectionBetweenRooms(t *testing.T) {
	reg := NewRegistry()

	alice := newTestClient(t, reg, "u1")

	reg.Join(alice, "p1")
	reg.Join(alice, "p2")

	if room := reg.RoomOf(alice); room != "p2" {
		t.Fatalf("expected alice moved to p2, got %q", room)
	}
	if members := reg.RoomMembers("p1"); members != nil {
		t.Fatalf("expected p1 dropped after its last member left, got members %v", members)
	}
	if n := reg.RoomCount(); n != 1 {
		t.Fatalf("expected only p2 to remain, got %d rooms", n)
	}
}

func TestRejoinSameRoomKeepsSingleMembership(t *testing.T) {
	reg := NewRegistry()

	alice := newTestClient(t, reg, "u1")

	reg.Join(alice, "p1")
	reg.Join(alice, "p1")

	if members := reg.RoomMembers("p1"); len(members) != 1 {
		t.Fatalf("expected exactly 1 membership after rejoin, got %d", len(members))
	}
}

func TestUnregisterRemovesFromRoomAndIsIdempotent(t *testing.T) {
	reg := NewRegistry()

	alice := newTestClient(t, reg, "u1")
	bob := newTestClient(t, reg, "u2")

	reg.Join(alice, "p1")
	reg.Join(bob, "p1")

	reg.Unregister(alice)
	reg.Unregister(alice) // second time must be a no-op

	if got := reg.Get(alice.ID); got != nil {
		t.Fatalf("expected alice removed from registry, got %v", got)
	}
	if members := reg.RoomMembers("p1"); len(members) != 1 || members[0] != bob.ID {
		t.Fatalf("expected bob to remain sole member of p1, got %v", members)
	}
}

func TestUnregisterWithoutRoomDoesNotPanic(t *testing.T) {
	reg := NewRegistry()

	alice := newTestClient(t, reg, "u1")

	reg.Unregister(alice)

	if n := reg.ConnectionCount(); n != 0 {
		t.Fatalf("expected 0 connections, got %d", n)
	}
}

func TestBroadcastExceptSkipsSender(t *testing.T) {
	reg := NewRegistry()

	alice := newTestClient(t, reg, "u1")
	bob := newTestClient(t, reg, "u2")

	reg.Join(alice, "p1")
	reg.Join(bob, "p1")

	data, err := MarshalEvent(EventCursorUpdate, map[string]any{"x": 1.0, "y": 2.0})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	reg.BroadcastExcept("p1", alice, data)

	mustEvent(t, bob, EventCursorUpdate)
	assertNoEvent(t, alice)
}

func TestBroadcastAllIncludesSender(t *testing.T) {
	reg := NewRegistry()

	alice := newTestClient(t, reg, "u1")
	bob := newTestClient(t, reg, "u2")

	reg.Join(alice, "p1")
	reg.Join(bob, "p1")

	data, err := MarshalEvent(EventTerminalOutput, TerminalOutputPayload{Data: "hello"})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	reg.BroadcastAll("p1", data)

	mustEvent(t, alice, EventTerminalOutput)
	mustEvent(t, bob, EventTerminalOutput)
}

func TestBroadcastToUnknownRoomIsNoOp(t *testing.T) {
	reg := NewRegistry()

	alice := newTestClient(t, reg, "u1")

	data, err := MarshalEvent(EventTerminalOutput, TerminalOutputPayload{Data: "hello"})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	reg.BroadcastAll("ghost", data)
	reg.BroadcastExcept("ghost", alice, data)

	assertNoEvent(t, alice)
}

func TestConcurrentJoinsAndBroadcasts(t *testing.T) {
	reg := NewRegistry()

	clients := make([]*Client, 16)
	for i := range clients {
		clients[i] = newTestClient(t, reg, "user")
	}

	data, err := MarshalEvent(EventTerminalOutput, TerminalOutputPayload{Data: "tick"})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	var wg sync.WaitGroup
	for _, c := range clients {
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			reg.Join(c, "p1")
			reg.BroadcastAll("p1", data)
			reg.Join(c, "p2")
		}(c)
	}
	wg.Wait()

	if members := reg.RoomMembers("p2"); len(members) != len(clients) {
		t.Fatalf("expected all %d connections in p2, got %d", len(clients), len(members))
	}
	if members := reg.RoomMembers("p1"); members != nil {
		t.Fatalf("expected p1 dropped after everyone moved, got %v", members)
	}
}

func TestShutdownClearsAllState(t *testing.T) {
	reg := NewRegistry()

	alice := newTestClient(t, reg, "u1")
	bob := newTestClient(t, reg, "u2")

	reg.Join(alice, "p1")
	reg.Join(bob, "p2")

	reg.Shutdown()

	if n := reg.ConnectionCount(); n != 0 {
		t.Fatalf("expected 0 connections after shutdown, got %d", n)
	}
	if n := reg.RoomCount(); n != 0 {
		t.Fatalf("expected 0 rooms after shutdown, got %d", n)
	}
	if alice.enqueue([]byte("x")) {
		t.Fatalf("expected enqueue to fail on a closed connection")
	}
}
