package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/printer"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/sanitize"
)

var ErrNoContactPhone = errors.New("document has no contact phone")

// CustomerDirectory resolves a customer's primary contact phone.
type CustomerDirectory interface {
	PrimaryContactPhone(ctx context.Context, customer string) (string, bool, error)
}

type PDFRenderer interface {
	Render(ctx context.Context, req printer.RenderRequest) ([]byte, error)
}

type messageSender interface {
	Send(ctx context.Context, req domain.SendRequest) (domain.SendResult, error)
}

// Notifier sends business documents to the customer they belong to.
type Notifier struct {
	sender    messageSender
	customers CustomerDirectory
	renderer  PDFRenderer
}

func NewNotifier(sender messageSender, customers CustomerDirectory, renderer PDFRenderer) *Notifier {
	return &Notifier{
		sender:    sender,
		customers: customers,
		renderer:  renderer,
	}
}

// ResolveContactPhone prefers the phone carried by the document and falls
// back to the linked customer's primary contact.
func (n *Notifier) ResolveContactPhone(ctx context.Context, doc domain.HasContactPhone) (string, error) {
	if p, ok := doc.ContactPhone(); ok {
		return p, nil
	}

	linked, ok := doc.(domain.CustomerLinked)
	if !ok || linked.CustomerRef() == "" || n.customers == nil {
		return "", ErrNoContactPhone
	}

	p, found, err := n.customers.PrimaryContactPhone(ctx, linked.CustomerRef())
	if err != nil {
		return "", fmt.Errorf("failed to resolve contact for %s: %w", linked.CustomerRef(), err)
	}
	if !found || p == "" {
		return "", ErrNoContactPhone
	}

	return p, nil
}

// NotifyInvoice never fails the caller; problems are logged and the
// outcome is reported through the returned result.
func (n *Notifier) NotifyInvoice(ctx context.Context, inv domain.Invoice) domain.SendResult {
	receiver, err := n.ResolveContactPhone(ctx, inv)
	if err != nil {
		logger.Warnf("Skipping invoice notification for %s: %v", inv.Name, err)
		return errorResult(err.Error())
	}

	res, err := n.sender.Send(ctx, domain.SendRequest{
		Tenant:   inv.Tenant,
		Receiver: receiver,
		Body:     invoiceMessage(inv),
		Kind:     domain.KindInvoiceNotification,
	})
	if err != nil {
		logger.Warnf("Invoice notification for %s failed: %v", inv.Name, err)
		return errorResult(err.Error())
	}
	if !res.Sent() {
		logger.Warnf("Invoice notification for %s not sent: %s", inv.Name, res.Error)
	}

	return res
}

func invoiceMessage(inv domain.Invoice) string {
	name := inv.CustomerName
	if name == "" {
		name = inv.Customer
	}

	amount := strings.TrimSpace(fmt.Sprintf("%.2f %s", inv.GrandTotal, inv.Currency))
	due := "-"
	if !inv.DueDate.IsZero() {
		due = inv.DueDate.Format("2006-01-02")
	}

	return fmt.Sprintf("Hello %s,\n\nYour invoice *%s* has been generated.\nAmount: *%s*\nDue Date: %s\n\nThank you for your business!",
		name, inv.Name, amount, due)
}

// SendDocumentPDF renders the document and delivers it as an attachment.
func (n *Notifier) SendDocumentPDF(ctx context.Context, doc domain.PrintableDocument) (domain.SendResult, error) {
	if doc.DocType == "" || doc.Name == "" {
		return domain.SendResult{}, fmt.Errorf("%w: doctype and name are required", domain.ErrInvalidInput)
	}

	receiver, err := n.ResolveContactPhone(ctx, doc)
	if err != nil {
		return domain.SendResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	pdf, err := n.renderer.Render(ctx, printer.RenderRequest{
		DocType:     doc.DocType,
		Name:        doc.Name,
		PrintFormat: doc.PrintFormat,
		Letterhead:  doc.Letterhead,
	})
	if err != nil {
		logger.Errorf("PDF rendering for %s %s failed: %v", doc.DocType, doc.Name, err)
		return errorResult("PDF rendering failed"), nil
	}

	return n.sender.Send(ctx, domain.SendRequest{
		Tenant:   doc.Tenant,
		Receiver: receiver,
		Body:     fmt.Sprintf("Hello, please find the attached PDF for %s: %s", doc.DocType, doc.Name),
		Kind:     domain.KindDocument,
		Media: &domain.MediaPayload{
			Data:     base64.StdEncoding.EncodeToString(pdf),
			Filename: sanitize.Filename(strings.ReplaceAll(doc.Name, "/", "-"), "document") + ".pdf",
			Mimetype: "application/pdf",
		},
	})
}
