package websocket

import (
	"log/slog"
	"sync"
)

// GameEvent is the JSON envelope delivered to subscribed clients.
type GameEvent struct {
	Type        string      `json:"type"`
	SessionCode string      `json:"session_code,omitempty"`
	Data        interface{} `json:"data,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// Hub fans session-scoped events out to connected clients. It only mirrors
// state changes; the database stays the source of truth, and a client that
// reconnects must re-fetch current state instead of relying on missed events.
type Hub struct {
	// Subscribed clients grouped by session code
	sessions map[string]map[string]*Client

	// Protects sessions and client group assignment
	mu sync.RWMutex

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// Broadcast messages
	Broadcast chan *GameEvent
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *GameEvent, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.handleRegister(client)
		case client := <-h.Unregister:
			h.handleUnregister(client)
		case event := <-h.Broadcast:
			h.handleBroadcast(event)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	if client.sessionCode != "" {
		h.Subscribe(client, client.sessionCode)
		return
	}
	slog.Debug("client connected", "client_id", client.ID)
}

// Subscribe puts the client in a session's notification group. A client
// belongs to at most one group; subscribing again moves it.
func (h *Hub) Subscribe(client *Client, sessionCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropLocked(client)

	if _, exists := h.sessions[sessionCode]; !exists {
		h.sessions[sessionCode] = make(map[string]*Client)
	}
	h.sessions[sessionCode][client.ID] = client
	client.sessionCode = sessionCode

	slog.Debug("client subscribed",
		"client_id", client.ID,
		"session_code", sessionCode,
		"subscribers", len(h.sessions[sessionCode]))
}

// handleUnregister is idempotent: a client can reach it more than once
// (read pump teardown racing an earlier forced drop) and the send channel
// must only ever close once.
func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropLocked(client)
	if !client.closed {
		client.closed = true
		close(client.send)
	}

	slog.Debug("client disconnected", "client_id", client.ID)
}

// dropLocked removes the client from its current group, pruning empty
// groups. Caller must hold h.mu.
func (h *Hub) dropLocked(client *Client) {
	if client.sessionCode == "" {
		return
	}

	if group, exists := h.sessions[client.sessionCode]; exists {
		delete(group, client.ID)
		if len(group) == 0 {
			delete(h.sessions, client.sessionCode)
		}
	}
	client.sessionCode = ""
}

// SubscriberCount returns the number of clients watching a session.
func (h *Hub) SubscriberCount(sessionCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.sessions[sessionCode])
}

// Publish queues an event for every subscriber of the session.
func (h *Hub) Publish(sessionCode string, eventType string, payload interface{}) {
	h.Broadcast <- &GameEvent{
		Type:        eventType,
		SessionCode: sessionCode,
		Data:        payload,
	}
}

// handleBroadcast delivers best-effort, at most once per connection. A
// client whose buffer is full misses the event rather than blocking the hub.
func (h *Hub) handleBroadcast(event *GameEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	group, exists := h.sessions[event.SessionCode]
	if !exists {
		return
	}

	for _, client := range group {
		select {
		case client.send <- event:
		default:
			slog.Warn("dropping event for slow client",
				"client_id", client.ID,
				"event", event.Type)
		}
	}
}

// SendToClient sends an event to a single client. Delivery matches the
// broadcast path: a full buffer or an already-closed client drops the
// event instead of touching the connection's lifecycle.
func (h *Hub) SendToClient(client *Client, event GameEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if client.closed {
		return nil
	}

	select {
	case client.send <- &event:
	default:
		slog.Warn("dropping event for slow client",
			"client_id", client.ID,
			"event", event.Type)
	}
	return nil
}
