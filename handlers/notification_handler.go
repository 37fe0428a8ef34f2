package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/response"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/validator"
)

type documentNotifier interface {
	NotifyInvoice(ctx context.Context, inv domain.Invoice) domain.SendResult
	SendDocumentPDF(ctx context.Context, doc domain.PrintableDocument) (domain.SendResult, error)
}

type NotificationHandler struct {
	notifier documentNotifier
}

func NewNotificationHandler(notifier documentNotifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

type InvoiceNotificationRequest struct {
	Tenant         string  `json:"tenant" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Customer       string  `json:"customer"`
	CustomerName   string  `json:"customerName"`
	ContactMobile  string  `json:"contactMobile"`
	MobileNo       string  `json:"mobileNo"`
	Phone          string  `json:"phone"`
	CustomerMobile string  `json:"customerMobile"`
	GrandTotal     float64 `json:"grandTotal" validate:"gte=0"`
	Currency       string  `json:"currency"`
	DueDate        string  `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

type SendDocumentRequest struct {
	Tenant            string `json:"tenant" validate:"required"`
	DocType           string `json:"doctype" validate:"required"`
	Name              string `json:"name" validate:"required"`
	Customer          string `json:"customer"`
	PrintFormat       string `json:"printFormat"`
	Letterhead        bool   `json:"letterhead"`
	ContactMobile     string `json:"contactMobile"`
	MobileNo          string `json:"mobileNo"`
	Phone             string `json:"phone"`
	CustomerMobile    string `json:"customerMobile"`
	CustomMobilePhone string `json:"customMobilePhone"`
	ContactPhoneNo    string `json:"contactPhoneNo"`
}

// NotifyInvoice godoc
// @Summary Send an invoice notification
// @Description Messages the invoice's contact. Delivery problems never fail the request.
// @Tags notifications
// @Accept json
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param invoice body InvoiceNotificationRequest true "Invoice"
// @Success 200 {object} response.SuccessResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Router /api/v1/notifications/invoice [post]
func (h *NotificationHandler) NotifyInvoice(c echo.Context) error {
	var req InvoiceNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	inv := domain.Invoice{
		Name:           req.Name,
		Tenant:         req.Tenant,
		Customer:       req.Customer,
		CustomerName:   req.CustomerName,
		ContactMobile:  req.ContactMobile,
		MobileNo:       req.MobileNo,
		Phone:          req.Phone,
		CustomerMobile: req.CustomerMobile,
		GrandTotal:     req.GrandTotal,
		Currency:       req.Currency,
	}
	if req.DueDate != "" {
		inv.DueDate, _ = time.Parse("2006-01-02", req.DueDate)
	}

	return response.Ok(c, h.notifier.NotifyInvoice(c.Request().Context(), inv))
}

// SendDocumentPDF godoc
// @Summary Send a document as PDF
// @Description Renders the document through the print service and sends it to its contact
// @Tags notifications
// @Accept json
// @Produce json
// @Param x-ins-auth-key header string true "API key"
// @Param document body SendDocumentRequest true "Document"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Router /api/v1/documents/send-pdf [post]
func (h *NotificationHandler) SendDocumentPDF(c echo.Context) error {
	var req SendDocumentRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	result, err := h.notifier.SendDocumentPDF(c.Request().Context(), domain.PrintableDocument{
		DocType:           req.DocType,
		Name:              req.Name,
		Tenant:            req.Tenant,
		Customer:          req.Customer,
		PrintFormat:       req.PrintFormat,
		Letterhead:        req.Letterhead,
		ContactMobile:     req.ContactMobile,
		MobileNo:          req.MobileNo,
		Phone:             req.Phone,
		CustomerMobile:    req.CustomerMobile,
		CustomMobilePhone: req.CustomMobilePhone,
		ContactPhoneNo:    req.ContactPhoneNo,
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, result)
}
