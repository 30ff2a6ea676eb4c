package handlers

import (
	"encoding/json"
	"log/slog"

	"github.com/Jaden827827/Quizz-game/internal/service"
	"github.com/Jaden827827/Quizz-game/internal/websocket"
)

// Incoming message types
const (
	MsgSubscribe = "subscribe"
	MsgStartGame = "start_game"
	MsgEndGame   = "end_game"
)

type SubscribeData struct {
	SessionCode string `json:"session_code"`
	Username    string `json:"username"`
}

// GameHandler routes incoming websocket messages. State changes go through
// the session service; the hub itself never mutates game state.
type GameHandler struct {
	sessionService *service.SessionService
	hub            *websocket.Hub
}

func NewGameHandler(sessionService *service.SessionService, hub *websocket.Hub) *GameHandler {
	return &GameHandler{
		sessionService: sessionService,
		hub:            hub,
	}
}

// HandleMessage processes one incoming websocket message.
func (h *GameHandler) HandleMessage(client *websocket.Client, message []byte) error {
	var event struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(message, &event); err != nil {
		return h.sendError(client, "Invalid message format")
	}

	slog.Debug("websocket message received", "type", event.Type, "client_id", client.ID)

	switch event.Type {
	case MsgSubscribe:
		return h.handleSubscribe(client, event.Data)
	case MsgStartGame:
		return h.handleStartGame(client)
	case MsgEndGame:
		return h.handleEndGame(client)
	default:
		return h.sendError(client, "Unknown event type")
	}
}

// handleSubscribe attaches the connection to a session's event stream. The
// client must have joined over HTTP first; subscribing grants no membership.
func (h *GameHandler) handleSubscribe(client *websocket.Client, data json.RawMessage) error {
	var sub SubscribeData
	if err := json.Unmarshal(data, &sub); err != nil {
		return h.sendError(client, "Invalid subscribe data format")
	}

	stats, err := h.sessionService.SessionStatus(sub.SessionCode)
	if err != nil {
		return h.sendError(client, "Session lookup failed")
	}
	if stats.Total == 0 {
		return h.sendError(client, "Session not found")
	}

	client.Username = sub.Username
	h.hub.Subscribe(client, sub.SessionCode)

	return h.hub.SendToClient(client, websocket.GameEvent{
		Type:        "subscribed",
		SessionCode: sub.SessionCode,
		Data: map[string]interface{}{
			"total_players": stats.Total,
			"playing":       stats.Playing,
			"finished":      stats.Finished,
		},
	})
}

func (h *GameHandler) handleStartGame(client *websocket.Client) error {
	code := client.SessionCode()
	if code == "" {
		return h.sendError(client, "Subscribe to a session first")
	}

	if err := h.sessionService.StartGame(code); err != nil {
		return h.sendError(client, err.Error())
	}
	return nil
}

func (h *GameHandler) handleEndGame(client *websocket.Client) error {
	code := client.SessionCode()
	if code == "" {
		return h.sendError(client, "Subscribe to a session first")
	}

	if err := h.sessionService.EndGame(code); err != nil {
		return h.sendError(client, err.Error())
	}
	return nil
}

func (h *GameHandler) sendError(client *websocket.Client, message string) error {
	return h.hub.SendToClient(client, websocket.GameEvent{
		Type:  "error",
		Error: message,
	})
}
