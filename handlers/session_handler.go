package handlers

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/internal/service"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/response"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/validator"
)

type sessionService interface {
	Configure(ctx context.Context, tenant, gatewayURL string, enabled bool) (*domain.Session, error)
	Connect(ctx context.Context, tenant string) (*service.ConnectResult, error)
	Status(ctx context.Context, tenant string) (*service.StatusReport, error)
	Logout(ctx context.Context, tenant string) error
	ContactInfo(ctx context.Context, tenant, phone string) (map[string]any, error)
}

type SessionHandler struct {
	sessions sessionService
}

func NewSessionHandler(sessions sessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type ConfigureSessionRequest struct {
	Tenant     string `json:"tenant" validate:"required"`
	GatewayURL string `json:"gatewayUrl" validate:"omitempty,url"`
	Enabled    bool   `json:"enabled"`
}

type TenantRequest struct {
	Tenant string `json:"tenant" validate:"required"`
}

type ContactInfoRequest struct {
	Tenant string `json:"tenant" validate:"required"`
	Phone  string `json:"phone" validate:"required,phone"`
}

// ConfigureSession godoc
// @Summary Configure a tenant's session
// @Description Creates the session on first use and updates its gateway URL and integration flag
// @Tags sessions
// @Accept json
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param session body ConfigureSessionRequest true "Session settings"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Router /api/v1/sessions [put]
func (h *SessionHandler) ConfigureSession(c echo.Context) error {
	var req ConfigureSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	session, err := h.sessions.Configure(c.Request().Context(), req.Tenant, req.GatewayURL, req.Enabled)
	if err != nil {
		return respondError(c, err)
	}

	return response.OkWithMessage(c, "Session configured", session)
}

// Connect godoc
// @Summary Start the tenant's session
// @Description Starts the gateway session; the response carries a QR code when pairing is required
// @Tags sessions
// @Accept json
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param request body TenantRequest true "Tenant"
// @Success 200 {object} response.SuccessResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/sessions/connect [post]
func (h *SessionHandler) Connect(c echo.Context) error {
	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	result, err := h.sessions.Connect(c.Request().Context(), req.Tenant)
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, result)
}

// Status godoc
// @Summary Session status
// @Description Reconciles the stored status with the gateway and reports it
// @Tags sessions
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param tenant query string true "Tenant"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/sessions/status [get]
func (h *SessionHandler) Status(c echo.Context) error {
	tenant := c.QueryParam("tenant")
	if tenant == "" {
		return response.BadRequest(c, fmt.Errorf("tenant is required"))
	}

	report, err := h.sessions.Status(c.Request().Context(), tenant)
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, report)
}

// Logout godoc
// @Summary Log the session out
// @Description Ends the gateway session and marks it Disconnected
// @Tags sessions
// @Accept json
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param request body TenantRequest true "Tenant"
// @Success 200 {object} response.SuccessResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/sessions/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	if err := h.sessions.Logout(c.Request().Context(), req.Tenant); err != nil {
		return respondError(c, err)
	}

	return response.OkWithMessage(c, "Logged out", nil)
}

// ContactInfo godoc
// @Summary WhatsApp contact info
// @Description Asks the gateway whether a number is on WhatsApp and returns its profile
// @Tags sessions
// @Accept json
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param request body ContactInfoRequest true "Lookup"
// @Success 200 {object} response.SuccessResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/sessions/contact-info [post]
func (h *SessionHandler) ContactInfo(c echo.Context) error {
	var req ContactInfoRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	info, err := h.sessions.ContactInfo(c.Request().Context(), req.Tenant, req.Phone)
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, info)
}
