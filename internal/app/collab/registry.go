/*
Package collab implements the real-time collaboration relay.

This file defines the Registry: the session registry and room router. It owns
every connection for its lifetime, tracks which room each connection occupies,
and routes broadcasts. One mutex guards all membership state so joins, leaves,
and broadcasts never observe a torn member set.
*/
package collab

import (
	"sync"

	"github.com/rs/zerolog"

	"vibecode/internal/pkg/logx"
)

// Registry tracks connected clients and their rooms. It is constructed once at
// process start and shared by all connection handlers.
type Registry struct {
	// mu protects conns, rooms, and every client's room field.
	mu sync.RWMutex

	// conns maps connection ids to registered clients.
	conns map[string]*Client

	// rooms maps room ids to active rooms.
	rooms map[string]*Room

	// structured logger with Registry context.
	logger zerolog.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	registryLogger := logx.Logger().With().Str("component", "Registry").Logger()

	return &Registry{
		conns:  make(map[string]*Client),
		rooms:  make(map[string]*Room),
		logger: registryLogger,
	}
}

// Register stores a freshly authenticated connection. No events are dispatched
// for a connection before it is registered.
func (reg *Registry) Register(c *Client) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.conns[c.ID] = c

	reg.logger.Info().
		Str("connection_id", c.ID).
		Str("user_id", c.identity.ID).
		Int("total_connections", len(reg.conns)).
		Msg("Connection registered.")
}

// Unregister removes a connection from its room (dropping the room when it
// becomes empty), discards its state, and closes its outbound queue. It is
// idempotent: unregistering an unknown or already removed connection is a no-op.
func (reg *Registry) Unregister(c *Client) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.conns[c.ID]; !ok {
		return
	}

	reg.leaveCurrentRoom(c)
	delete(reg.conns, c.ID)
	c.closeSend()

	reg.logger.Info().
		Str("connection_id", c.ID).
		Str("user_id", c.identity.ID).
		Int("total_connections", len(reg.conns)).
		Msg("Connection unregistered.")
}

// Get returns the registered client for the given connection id, or nil when
// no such connection exists.
func (reg *Registry) Get(connectionID string) *Client {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return reg.conns[connectionID]
}

// Join moves the connection into the named room, creating the room on first
// join. A connection occupies at most one room: joining a new room first
// leaves the previous one, and rejoining the current room is a no-op beyond
// the confirmation the caller sends.
func (reg *Registry) Join(c *Client, roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if c.room == roomID {
		return
	}

	reg.leaveCurrentRoom(c)

	room, ok := reg.rooms[roomID]
	if !ok {
		room = newRoom(roomID)
		reg.rooms[roomID] = room
		reg.logger.Info().Str("room_id", roomID).Msg("Room created.")
	}

	room.add(c)
	c.room = roomID

	reg.logger.Info().
		Str("connection_id", c.ID).
		Str("user_id", c.identity.ID).
		Str("room_id", roomID).
		Int("total_members", room.size()).
		Msg("Connection joined room.")
}

// leaveCurrentRoom detaches the client from whatever room it occupies and
// drops the room if that made it empty. Caller must hold reg.mu.
func (reg *Registry) leaveCurrentRoom(c *Client) {
	if c.room == "" {
		return
	}

	room, ok := reg.rooms[c.room]
	if ok {
		room.remove(c)
		if room.empty() {
			delete(reg.rooms, c.room)
			reg.logger.Info().Str("room_id", c.room).Msg("Room empty, removed.")
		}
	}

	c.room = ""
}

// RoomOf returns the id of the room the connection currently occupies, or ""
// when it has not joined one.
func (reg *Registry) RoomOf(c *Client) string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return c.room
}

// BroadcastExcept delivers the event bytes to every member of the named room
// except the sender.
func (reg *Registry) BroadcastExcept(roomID string, sender *Client, data []byte) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if room, ok := reg.rooms[roomID]; ok {
		room.broadcast(sender, data)
	}
}

// BroadcastAll delivers the event bytes to every member of the named room,
// sender included.
func (reg *Registry) BroadcastAll(roomID string, data []byte) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if room, ok := reg.rooms[roomID]; ok {
		room.broadcast(nil, data)
	}
}

// BroadcastToPeers delivers the event bytes to the other members of the
// sender's current room. A sender outside any room has no peers; the call is
// then a no-op.
func (reg *Registry) BroadcastToPeers(sender *Client, data []byte) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if sender.room == "" {
		return
	}

	if room, ok := reg.rooms[sender.room]; ok {
		room.broadcast(sender, data)
	}
}

// RoomMembers returns the connection ids currently in the named room.
func (reg *Registry) RoomMembers(roomID string) []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return nil
	}

	ids := make([]string, 0, room.size())
	for id := range room.members {
		ids = append(ids, id)
	}
	return ids
}

// ConnectionCount returns the number of registered connections.
func (reg *Registry) ConnectionCount() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.conns)
}

// RoomCount returns the number of active rooms.
func (reg *Registry) RoomCount() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.rooms)
}

// Shutdown detaches and closes every registered connection. Used during
// graceful server shutdown after the HTTP listener has stopped.
func (reg *Registry) Shutdown() {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.logger.Info().Int("connections", len(reg.conns)).Msg("Shutting down registry.")

	for id, c := range reg.conns {
		reg.leaveCurrentRoom(c)
		c.closeSend()
		delete(reg.conns, id)
	}
	reg.rooms = make(map[string]*Room)

	reg.logger.Info().Msg("Registry shutdown complete.")
}
