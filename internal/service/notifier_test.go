package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/internal/repository"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/printer"
)

type recordingSender struct {
	requests []domain.SendRequest
	result   domain.SendResult
	err      error
}

func (s *recordingSender) Send(_ context.Context, req domain.SendRequest) (domain.SendResult, error) {
	s.requests = append(s.requests, req)
	return s.result, s.err
}

type fakeRenderer struct {
	pdf []byte
	err error
	got []printer.RenderRequest
}

func (r *fakeRenderer) Render(_ context.Context, req printer.RenderRequest) ([]byte, error) {
	r.got = append(r.got, req)
	return r.pdf, r.err
}

func TestNotifier_ResolveContactPhone(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.contacts.Upsert(ctx, domain.Contact{
		ID: "CONT-9", FullName: "Ann", MobileNo: "14155550123", Kind: repository.ContactKindContact,
		Customer: "CUST-1", IsPrimary: true,
	}))
	n := NewNotifier(&recordingSender{}, env.contacts, &fakeRenderer{})

	p, err := n.ResolveContactPhone(ctx, domain.Invoice{Name: "INV-1", MobileNo: "14155550100", Customer: "CUST-1"})
	require.NoError(t, err)
	assert.Equal(t, "14155550100", p)

	p, err = n.ResolveContactPhone(ctx, domain.Invoice{Name: "INV-2", Customer: "CUST-1"})
	require.NoError(t, err)
	assert.Equal(t, "14155550123", p)

	_, err = n.ResolveContactPhone(ctx, domain.Invoice{Name: "INV-3", Customer: "CUST-404"})
	assert.ErrorIs(t, err, ErrNoContactPhone)
}

func TestNotifier_NotifyInvoice(t *testing.T) {
	ctx := context.Background()
	sender := &recordingSender{result: domain.SendResult{Status: domain.SendStatusSent}}
	n := NewNotifier(sender, nil, &fakeRenderer{})

	res := n.NotifyInvoice(ctx, domain.Invoice{
		Name:         "INV-0042",
		Tenant:       "Acme Co",
		CustomerName: "Jane",
		Phone:        "14155550100",
		GrandTotal:   1250.5,
		Currency:     "USD",
		DueDate:      time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.True(t, res.Sent())

	require.Len(t, sender.requests, 1)
	req := sender.requests[0]
	assert.Equal(t, domain.KindInvoiceNotification, req.Kind)
	assert.Equal(t, "Acme Co", req.Tenant)
	assert.Equal(t,
		"Hello Jane,\n\nYour invoice *INV-0042* has been generated.\nAmount: *1250.50 USD*\nDue Date: 2026-11-01\n\nThank you for your business!",
		req.Body)
}

func TestNotifier_NotifyInvoice_IsSilentOnFailure(t *testing.T) {
	ctx := context.Background()

	sender := &recordingSender{err: domain.ErrNoActiveSession}
	n := NewNotifier(sender, nil, &fakeRenderer{})
	res := n.NotifyInvoice(ctx, domain.Invoice{Name: "INV-1", Phone: "14155550100"})
	assert.Equal(t, domain.SendStatusError, res.Status)

	res = n.NotifyInvoice(ctx, domain.Invoice{Name: "INV-2"})
	assert.Equal(t, domain.SendStatusError, res.Status)
	assert.Len(t, sender.requests, 1, "no send without a phone")
}

func TestNotifier_SendDocumentPDF(t *testing.T) {
	ctx := context.Background()
	sender := &recordingSender{result: domain.SendResult{Status: domain.SendStatusSent}}
	renderer := &fakeRenderer{pdf: []byte("%PDF-1.4")}
	n := NewNotifier(sender, nil, renderer)

	res, err := n.SendDocumentPDF(ctx, domain.PrintableDocument{
		DocType:        "Sales Order",
		Name:           "SO/2026/7",
		Tenant:         "Acme Co",
		PrintFormat:    "Standard",
		ContactPhoneNo: "14155550100",
	})
	require.NoError(t, err)
	assert.True(t, res.Sent())

	require.Len(t, renderer.got, 1)
	assert.Equal(t, "Standard", renderer.got[0].PrintFormat)

	require.Len(t, sender.requests, 1)
	req := sender.requests[0]
	assert.Equal(t, domain.KindDocument, req.Kind)
	assert.Equal(t, "Hello, please find the attached PDF for Sales Order: SO/2026/7", req.Body)
	require.NotNil(t, req.Media)
	assert.Equal(t, "application/pdf", req.Media.Mimetype)
	assert.Equal(t, "SO-2026-7.pdf", req.Media.Filename)
}

func TestNotifier_SendDocumentPDF_Failures(t *testing.T) {
	ctx := context.Background()

	n := NewNotifier(&recordingSender{}, nil, &fakeRenderer{})
	_, err := n.SendDocumentPDF(ctx, domain.PrintableDocument{DocType: "Quotation", Name: "Q-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sender := &recordingSender{}
	n = NewNotifier(sender, nil, &fakeRenderer{err: errors.New("boom")})
	res, err := n.SendDocumentPDF(ctx, domain.PrintableDocument{DocType: "Quotation", Name: "Q-1", Phone: "14155550100"})
	require.NoError(t, err)
	assert.Equal(t, domain.SendStatusError, res.Status)
	assert.Empty(t, sender.requests)
}
