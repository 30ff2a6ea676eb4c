package websocket

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// Client represents a connected websocket client
type Client struct {
	// The websocket connection
	conn *websocket.Conn

	// The hub instance
	hub *Hub

	// Buffered channel of outbound messages
	send chan *GameEvent

	// Session group this client currently watches; guarded by hub.mu
	sessionCode string

	// Set once the hub has closed send; guarded by hub.mu
	closed bool

	// Client's unique identifier
	ID string

	// Authenticated user's name, set on subscribe
	Username string

	// Message handler function
	messageHandler func(*Client, []byte) error
}

// NewClient creates a new client instance
func NewClient(hub *Hub, conn *websocket.Conn, clientID string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan *GameEvent, 256),
		ID:   clientID,
	}
}

// SetMessageHandler sets the function to handle incoming messages
func (c *Client) SetMessageHandler(handler func(*Client, []byte) error) {
	c.messageHandler = handler
}

// SessionCode returns the session group the client currently watches.
func (c *Client) SessionCode() string {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	return c.sessionCode
}

// ReadPump pumps messages from the WebSocket connection to the hub
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read failed", "client_id", c.ID, "error", err)
			}
			break
		}

		if c.messageHandler != nil {
			if err := c.messageHandler(c, message); err != nil {
				slog.Warn("message handling failed", "client_id", c.ID, "error", err)
			}
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(event); err != nil {
				slog.Warn("websocket write failed", "client_id", c.ID, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
