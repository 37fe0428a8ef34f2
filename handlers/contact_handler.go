package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/response"
)

type contactDirectory interface {
	Search(ctx context.Context, q string, limit int) ([]domain.Contact, error)
}

type ContactHandler struct {
	contacts contactDirectory
}

func NewContactHandler(contacts contactDirectory) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Search godoc
// @Summary Search contacts
// @Description Finds contacts and customers by name or number, one entry per phone number
// @Tags contacts
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param q query string true "Name or number fragment (min 2 characters)"
// @Param limit query int false "Max results (default 20, max 50)"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/contacts/search [get]
func (h *ContactHandler) Search(c echo.Context) error {
	limit, err := intQueryParam(c, "limit")
	if err != nil {
		return response.BadRequest(c, err)
	}

	contacts, err := h.contacts.Search(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, contacts)
}
