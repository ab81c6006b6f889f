package handlers

import (
	"roadguard/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type RealtimeHandler struct {
	Hub      *realtime.Hub
	Upgrader websocket.Upgrader
}

func NewRealtimeHandler(hub *realtime.Hub, allowedOrigins []string) *RealtimeHandler {
	return &RealtimeHandler{Hub: hub, Upgrader: realtime.Upgrader(allowedOrigins)}
}

// ServeWS upgrades the connection; the upgrader writes its own error response on failure.
func (h *RealtimeHandler) ServeWS(c *gin.Context) {
	if err := h.Hub.ServeWS(h.Upgrader, c.Writer, c.Request); err != nil {
		getLogger(c).Debug("Websocket upgrade failed", zap.Error(err))
	}
}
