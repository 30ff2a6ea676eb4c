package handlers

import (
	"log/slog"
	"net/http"

	ws "github.com/Jaden827827/Quizz-game/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict origins once the frontend domain is fixed
		return true
	},
}

type WebSocketHandler struct {
	hub         *ws.Hub
	gameHandler *GameHandler
}

func NewWebSocketHandler(hub *ws.Hub, gameHandler *GameHandler) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		gameHandler: gameHandler,
	}
}

// HandleConnection upgrades the request and starts the client pumps.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := ws.NewClient(h.hub, conn, clientID)
	client.SetMessageHandler(h.gameHandler.HandleMessage)

	h.hub.Register <- client

	go client.ReadPump()
	go client.WritePump()

	slog.Info("websocket connection established", "client_id", clientID)
}

func (h *WebSocketHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", h.HandleConnection)
}
