package handlers

import (
	"net/http"

	"wallettally/internal/logger"
	"wallettally/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WS upgrades the connection and subscribes the user to live balance
// events. Auth comes from a ?token= query parameter since browsers
// cannot set headers on WebSocket dials.
func (h *Handler) WS(c *gin.Context) {
	token := c.Query("token")
	userID, _, err := service.ParseJWT(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "error", err)
		return
	}

	deregister := h.Hub.Register(userID, conn)

	// reader loop only drains control frames; the hub owns all writes
	go func() {
		defer deregister()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
