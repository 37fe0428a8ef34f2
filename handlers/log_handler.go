package handlers

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/response"
)

type communicationLogReader interface {
	GetPage(ctx context.Context, tenant string, page, pageSize int) ([]domain.CommunicationLogEntry, int64, error)
}

type LogHandler struct {
	logs communicationLogReader
}

func NewLogHandler(logs communicationLogReader) *LogHandler {
	return &LogHandler{logs: logs}
}

// GetCommunicationLogs godoc
// @Summary Communication log
// @Description Paginated audit trail of send attempts for one tenant, newest first
// @Tags logs
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param tenant query string true "Tenant"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} response.PaginatedResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/communication-logs [get]
func (h *LogHandler) GetCommunicationLogs(c echo.Context) error {
	tenant := c.QueryParam("tenant")
	if tenant == "" {
		return response.BadRequest(c, fmt.Errorf("tenant is required"))
	}

	page, pageSize, err := parsePaginationParams(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	entries, totalCount, err := h.logs.GetPage(c.Request().Context(), tenant, page, pageSize)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Paginated(c, entries, page, pageSize, totalCount)
}
