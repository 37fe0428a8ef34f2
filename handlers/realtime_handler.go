package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

type wsServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

type RealtimeHandler struct {
	hub wsServer
}

func NewRealtimeHandler(hub wsServer) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Subscribe godoc
// @Summary Real-time notifications
// @Description Upgrades to a websocket that streams connection_update and incoming_message events
// @Tags realtime
// @Param key query string false "API key (alternative to the header)"
// @Param tenant query string false "Only stream events for this tenant"
// @Success 101
// @Router /api/v1/realtime/ws [get]
func (h *RealtimeHandler) Subscribe(c echo.Context) error {
	// the upgrader has already answered on failure
	if err := h.hub.ServeWS(c.Response(), c.Request()); err != nil {
		logger.Debugf("Websocket upgrade failed: %v", err)
	}
	return nil
}
