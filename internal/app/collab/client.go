/*
Package collab implements the real-time collaboration relay.

This file defines the Client type: one authenticated WebSocket connection. It
runs the read/write pumps, dispatches inbound events one at a time in arrival
order, and queues outbound events for delivery.
*/
package collab

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"vibecode/internal/app/user"
	"vibecode/internal/pkg/logx"
	"vibecode/internal/pkg/randx"
)

const (
	// timeout for writes to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time to wait for a Pong from the client.
	pongWait = 60 * time.Second

	// frequency of server Ping messages.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size in bytes of an inbound frame.
	maxMessageSize = 8192

	// sendQueueSize is the outbound buffer per connection. A member that falls
	// this far behind has further events dropped, never retried.
	sendQueueSize = 256
)

// Relay-internal error messages surfaced to clients as error events.
const (
	msgInvalidRoomID = "Invalid room id"
	msgInvalidInput  = "Invalid input format"
	msgInvalidCursor = "Invalid cursor position"
)

// Client represents one authenticated connection to the relay.
type Client struct {
	// ID is the server-assigned opaque connection identifier.
	ID string

	// identity is the authenticated principal, set at handshake and immutable.
	identity user.Identity

	// registry owns this client for its lifetime.
	registry *Registry

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// room is the id of the currently joined room, "" when none.
	// Guarded by registry.mu.
	room string

	// send queues outbound event bytes for the write pump.
	send chan []byte

	// sendMu and sendClosed guard enqueue against a concurrently closed queue.
	sendMu     sync.Mutex
	sendClosed bool

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient constructs a client for an authenticated connection.
func NewClient(registry *Registry, wsConn *websocket.Conn, identity user.Identity) *Client {
	connectionID := randx.ConnectionID()

	clientLogger := logx.Logger().With().
		Str("connection_id", connectionID).
		Str("user_id", identity.ID).
		Logger()

	return &Client{
		ID:       connectionID,
		identity: identity,
		registry: registry,
		conn:     wsConn,
		send:     make(chan []byte, sendQueueSize),
		logger:   clientLogger,
	}
}

// Identity returns the immutable identity attached at handshake.
func (c *Client) Identity() user.Identity {
	return c.identity
}

// ReadPump reads frames from the connection and dispatches them until the
// connection closes, then unregisters the client. Events from one connection
// are processed strictly in the order received because this loop is the only
// dispatcher for the connection.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		c.processInbound(messageBytes)
	}
}

// cleanupOnDisconnect removes the client from the registry and closes the
// transport when the read pump terminates.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Connection cleanup starting.")

	c.registry.Unregister(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Connection close error")
	}
}

// processInbound validates and routes one raw inbound frame. Malformed
// payloads are recoverable: the sender gets exactly one error event and the
// connection stays open.
func (c *Client) processInbound(messageBytes []byte) {
	var envelope Envelope

	if err := json.Unmarshal(messageBytes, &envelope); err != nil {
		c.logger.Warn().Err(err).
			Bytes("message_bytes", messageBytes).
			Msg("Client sent invalid JSON")
		return
	}

	switch envelope.Type {
	case EventJoinRoom:
		c.handleJoinRoom(envelope.Payload)

	case EventTerminalInput:
		c.handleTerminalInput(envelope.Payload)

	case EventCursorPosition:
		c.handleCursorPosition(envelope.Payload)

	default:
		c.logger.Warn().Str("event_type", envelope.Type).Msg("Client sent unsupported event type")
	}
}

// handleJoinRoom moves the connection into the requested room and confirms
// with a project-joined event.
func (c *Client) handleJoinRoom(payload json.RawMessage) {
	roomID, ok := parseJoinRoom(payload)
	if !ok {
		c.SendError(msgInvalidRoomID)
		return
	}

	c.registry.Join(c, roomID)

	c.sendEvent(EventProjectJoined, ProjectJoinedPayload{RoomID: roomID})
}

// handleTerminalInput echoes the input back to the sender as terminal-output.
// The relay never executes commands; a real terminal backend replaces this
// loopback.
func (c *Client) handleTerminalInput(payload json.RawMessage) {
	input, ok := parseTerminalInput(payload)
	if !ok {
		c.SendError(msgInvalidInput)
		return
	}

	c.sendEvent(EventTerminalOutput, TerminalOutputPayload{Data: "Echo: " + input})
}

// handleCursorPosition rebroadcasts the cursor payload as cursor-update to the
// other members of the sender's room, with the sender's subject id merged in.
// Outside a room there are no recipients and the event is discarded.
func (c *Client) handleCursorPosition(payload json.RawMessage) {
	fields, ok := parseCursorPosition(payload)
	if !ok {
		c.SendError(msgInvalidCursor)
		return
	}

	fields["userId"] = c.identity.ID

	data, err := MarshalEvent(EventCursorUpdate, fields)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build cursor-update event")
		return
	}

	c.registry.BroadcastToPeers(c, data)
}

// sendEvent marshals and queues an outbound event for this connection.
func (c *Client) sendEvent(kind string, payload any) {
	data, err := MarshalEvent(kind, payload)
	if err != nil {
		c.logger.Error().Err(err).Str("event_type", kind).Msg("Failed to build outbound event")
		return
	}

	if !c.enqueue(data) {
		c.logger.Warn().Str("event_type", kind).Msg("Send queue full or closed, dropping event")
	}
}

// SendError queues an error event carrying the given message.
func (c *Client) SendError(message string) {
	c.sendEvent(EventError, ErrorPayload{Message: message})
}

// enqueue places event bytes on the send queue without blocking. Returns false
// when the queue is full or already closed.
func (c *Client) enqueue(data []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.sendClosed {
		return false
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// closeSend closes the outbound queue exactly once, which terminates the write
// pump after it drains what was already queued.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.sendClosed {
		return
	}

	c.sendClosed = true
	close(c.send)
}

// WritePump writes queued events to the connection and keeps the heartbeat
// alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage writes one queued event, or the close frame when the
// queue has been closed. Returns false when the pump should terminate.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Error().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends one heartbeat ping. Returns false on write failure.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
