package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/bidworks/backend/internal/service"
	"github.com/bidworks/backend/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений.
type WSHandler struct {
	hub        *ws.Hub
	tokens     *service.TokenManager
	cookieName string
	upgrader   websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер.
func NewWSHandler(hub *ws.Hub, tokens *service.TokenManager, cookieName string) *WSHandler {
	return &WSHandler{
		hub:        hub,
		tokens:     tokens,
		cookieName: cookieName,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle обслуживает GET /api/ws.
// Токен берётся из cookie либо из query-параметра token.
func (h *WSHandler) Handle(c *gin.Context) {
	raw, err := c.Cookie(h.cookieName)
	if err != nil || raw == "" {
		raw = c.Query("token")
	}
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	userID, _, err := h.tokens.Parse(raw)
	if err != nil || userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "токен невалиден"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	client := ws.NewClient(conn, h.hub, userID)
	h.hub.Register(client)

	client.Run(c.Request.Context())
}
