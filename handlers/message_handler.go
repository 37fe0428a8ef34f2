package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/internal/service"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/response"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/validator"
)

type messageSender interface {
	Send(ctx context.Context, req domain.SendRequest) (domain.SendResult, error)
}

type messageStore interface {
	RecentConversations(ctx context.Context, tenant string, limit int) ([]domain.ConversationSummary, error)
	History(ctx context.Context, phone string, limit, offset int) ([]domain.Message, error)
	Stats(ctx context.Context) (*service.MessageStats, error)
	Get(ctx context.Context, messageID int64) (*domain.Message, error)
	AttachMedia(ctx context.Context, messageID int64, blobRef string) error
}

type mediaService interface {
	Upload(ctx context.Context, data, filename, mimetype string) (*service.UploadResult, error)
	VoiceNote(audio string) (*domain.MediaPayload, error)
}

type MessageHandler struct {
	sender messageSender
	store  messageStore
	media  mediaService
}

func NewMessageHandler(sender messageSender, store messageStore, media mediaService) *MessageHandler {
	return &MessageHandler{sender: sender, store: store, media: media}
}

type SendMessageRequest struct {
	Tenant   string               `json:"tenant" validate:"required"`
	Receiver string               `json:"receiver" validate:"required"`
	Message  string               `json:"message" validate:"required"`
	Media    *domain.MediaPayload `json:"media,omitempty"`
}

type VoiceNoteRequest struct {
	Tenant   string `json:"tenant" validate:"required"`
	Receiver string `json:"receiver" validate:"required"`
	Audio    string `json:"audio" validate:"required"`
}

type AttachMediaRequest struct {
	Data     string `json:"data" validate:"required"`
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype" validate:"required"`
}

// SendMessage godoc
// @Summary Send a WhatsApp message
// @Description Sends a text message, optionally with media, through the tenant's session
// @Tags messages
// @Accept json
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param message body SendMessageRequest true "Message to send"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Router /api/v1/messages/send [post]
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	return h.send(c, domain.SendRequest{
		Tenant:   req.Tenant,
		Receiver: req.Receiver,
		Body:     req.Message,
		Media:    req.Media,
		Kind:     domain.KindChat,
	})
}

// SendVoiceNote godoc
// @Summary Send a voice note
// @Description Sends recorded audio (base64, OGG or WebM) as a voice message
// @Tags messages
// @Accept json
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param voice body VoiceNoteRequest true "Voice note"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Router /api/v1/messages/voice [post]
func (h *MessageHandler) SendVoiceNote(c echo.Context) error {
	var req VoiceNoteRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	media, err := h.media.VoiceNote(req.Audio)
	if err != nil {
		return respondError(c, err)
	}

	return h.send(c, domain.SendRequest{
		Tenant:   req.Tenant,
		Receiver: req.Receiver,
		Body:     service.VoiceNoteCaption,
		Media:    media,
		Kind:     domain.KindVoiceNote,
	})
}

func (h *MessageHandler) send(c echo.Context, req domain.SendRequest) error {
	result, err := h.sender.Send(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	if !result.Sent() {
		return response.OkWithMessage(c, "Message not sent", result)
	}
	return response.OkWithMessage(c, "Message sent successfully", result)
}

// GetConversations godoc
// @Summary Recent conversations
// @Description Returns the latest message per counterparty, newest first
// @Tags messages
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param tenant query string false "Restrict to one tenant"
// @Param limit query int false "Max conversations (default 50, max 100)"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/messages/conversations [get]
func (h *MessageHandler) GetConversations(c echo.Context) error {
	limit, err := intQueryParam(c, "limit")
	if err != nil {
		return response.BadRequest(c, err)
	}

	conversations, err := h.store.RecentConversations(c.Request().Context(), c.QueryParam("tenant"), limit)
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, conversations)
}

// GetHistory godoc
// @Summary Chat history
// @Description Returns the messages exchanged with one phone number, oldest first
// @Tags messages
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param phone query string true "Counterparty phone number"
// @Param limit query int false "Page size (default 100, max 500)"
// @Param offset query int false "Offset"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/messages/history [get]
func (h *MessageHandler) GetHistory(c echo.Context) error {
	limit, err := intQueryParam(c, "limit")
	if err != nil {
		return response.BadRequest(c, err)
	}
	offset, err := intQueryParam(c, "offset")
	if err != nil {
		return response.BadRequest(c, err)
	}

	history, err := h.store.History(c.Request().Context(), c.QueryParam("phone"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, history)
}

// GetStats godoc
// @Summary Get message statistics
// @Description Returns count of messages by direction and with media
// @Tags messages
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Success 200 {object} response.SuccessResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages/stats [get]
func (h *MessageHandler) GetStats(c echo.Context) error {
	stats, err := h.store.Stats(c.Request().Context())
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Ok(c, map[string]any{
		"inbound":   stats.Inbound,
		"outbound":  stats.Outbound,
		"withMedia": stats.WithMedia,
		"total":     stats.Inbound + stats.Outbound,
	})
}

// AttachMedia godoc
// @Summary Attach media to a stored message
// @Description Uploads a file and records it as the message's media
// @Tags messages
// @Accept json
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param id path int true "Message ID"
// @Param media body AttachMediaRequest true "Media payload"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/messages/{id}/media [post]
func (h *MessageHandler) AttachMedia(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return response.BadRequest(c, fmt.Errorf("invalid message id"))
	}

	var req AttachMediaRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	ctx := c.Request().Context()
	if _, err := h.store.Get(ctx, id); err != nil {
		return respondError(c, err)
	}

	upload, err := h.media.Upload(ctx, req.Data, req.Filename, req.Mimetype)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.store.AttachMedia(ctx, id, upload.URL); err != nil {
		return respondError(c, err)
	}

	msg, err := h.store.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	return response.OkWithMessage(c, "Media attached", msg)
}

func intQueryParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func parsePaginationParams(c echo.Context) (int, int, error) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)

	pageStr := c.QueryParam("page")
	pageSizeStr := c.QueryParam("pageSize")

	// Page
	page := defaultPage
	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p <= 0 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
		page = p
	}

	// Page size
	pageSize := defaultPageSize
	if pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps <= 0 || ps > maxPageSize {
			return 0, 0, fmt.Errorf("pageSize must be between 1 and %d", maxPageSize)
		}

		pageSize = ps
	}

	return page, pageSize, nil
}
