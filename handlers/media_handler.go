package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/pkg/response"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/validator"
)

type MediaHandler struct {
	media mediaService
}

func NewMediaHandler(media mediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

type UploadMediaRequest struct {
	Data     string `json:"data" validate:"required"`
	Filename string `json:"filename" validate:"required"`
	Mimetype string `json:"mimetype" validate:"required"`
}

// Upload godoc
// @Summary Upload media
// @Description Stores a base64 attachment (max 16MB, allow-listed types) and returns its URL
// @Tags media
// @Accept json
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param media body UploadMediaRequest true "Media payload"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Router /api/v1/media [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	var req UploadMediaRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	result, err := h.media.Upload(c.Request().Context(), req.Data, req.Filename, req.Mimetype)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Media uploaded", result)
}
