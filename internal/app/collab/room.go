/*
Package collab implements the real-time collaboration relay.

This file defines the Room type: the member set of one project's collaboration
session and the fan-out of events to those members.
*/
package collab

import (
	"github.com/rs/zerolog"

	"vibecode/internal/pkg/logx"
)

// Room groups the connections collaborating on one project. Rooms are created
// implicitly when the first connection joins and removed when the last one
// leaves. All methods assume the owning Registry's lock is held; the Registry
// is the single exclusion point for membership state.
type Room struct {
	// ID is the opaque room identifier, by convention a project code.
	ID string

	// members maps connection ids to their clients.
	members map[string]*Client

	// structured logger with room context.
	logger zerolog.Logger
}

// newRoom constructs an empty room.
func newRoom(id string) *Room {
	roomLogger := logx.Logger().With().
		Str("room_id", id).
		Logger()

	return &Room{
		ID:      id,
		members: make(map[string]*Client),
		logger:  roomLogger,
	}
}

// add inserts a client into the member set.
func (r *Room) add(c *Client) {
	r.members[c.ID] = c
}

// remove deletes a client from the member set. Removing an absent client is a no-op.
func (r *Room) remove(c *Client) {
	delete(r.members, c.ID)
}

// empty reports whether the room has no members left.
func (r *Room) empty() bool {
	return len(r.members) == 0
}

// size returns the current member count.
func (r *Room) size() int {
	return len(r.members)
}

// broadcast queues the event bytes on every member, skipping the sender when
// except is non-nil. Delivery is fire-and-forget: a member whose outbound
// queue is full has the event dropped rather than blocking the room.
func (r *Room) broadcast(except *Client, data []byte) {
	for _, member := range r.members {
		if except != nil && member.ID == except.ID {
			continue
		}

		if !member.enqueue(data) {
			r.logger.Warn().
				Str("connection_id", member.ID).
				Msg("Member send queue full or closed, dropping event.")
		}
	}
}
