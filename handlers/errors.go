package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/gateway"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/response"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidPhone):
		return response.BadRequest(c, err)
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrNoActiveSession):
		return response.Conflict(c, err)
	case errors.Is(err, gateway.ErrUnreachable), errors.Is(err, gateway.ErrBadResponse):
		return response.BadGateway(c, err)
	default:
		return response.InternalServerError(c, err)
	}
}
