package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

type webhookIngestor interface {
	Handle(ctx context.Context, payload domain.WebhookPayload, token string) domain.WebhookResponse
}

type WebhookHandler struct {
	ingestor webhookIngestor
}

func NewWebhookHandler(ingestor webhookIngestor) *WebhookHandler {
	return &WebhookHandler{ingestor: ingestor}
}

// Receive godoc
// @Summary Gateway webhook
// @Description Receives connection updates and incoming messages from the gateway. Always answers 200; the outcome is in the body.
// @Tags webhook
// @Accept json
// @Produce json
// @Param X-Webhook-Token header string true "Per-session webhook secret"
// @Param payload body domain.WebhookPayload true "Gateway event"
// @Success 200 {object} domain.WebhookResponse
// @Router /api/v1/whatsapp/webhook [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	var payload domain.WebhookPayload
	if err := c.Bind(&payload); err != nil {
		logger.Warnf("Malformed webhook payload: %v", err)
		return c.JSON(http.StatusOK, domain.WebhookResponse{Status: "error", Message: "Invalid payload"})
	}

	token := c.Request().Header.Get(domain.WebhookTokenHeader)
	return c.JSON(http.StatusOK, h.ingestor.Handle(c.Request().Context(), payload, token))
}
