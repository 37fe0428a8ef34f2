package service

import (
	"context"
	"errors"
	"time"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/phone"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/realtime"
)

type webhookSessions interface {
	VerifyWebhookToken(ctx context.Context, sessionID, presented string) (*domain.Session, bool, error)
	UpdateStatus(ctx context.Context, sessionID string, status domain.ConnectionStatus, at time.Time) error
}

type messageSaver interface {
	Save(ctx context.Context, ev domain.MessageEvent) (*domain.Message, error)
	AttachMedia(ctx context.Context, messageID int64, blobRef string) error
}

type mediaStorer interface {
	Store(ctx context.Context, p *domain.MediaPayload) (string, error)
}

// WebhookIngestor authenticates gateway callbacks and routes their events.
// It never returns an error to the transport; every outcome is a response.
type WebhookIngestor struct {
	sessions  webhookSessions
	store     messageSaver
	media     mediaStorer
	publisher realtime.Publisher
	now       func() time.Time
}

func NewWebhookIngestor(sessions webhookSessions, store messageSaver, media mediaStorer, publisher realtime.Publisher) *WebhookIngestor {
	return &WebhookIngestor{
		sessions:  sessions,
		store:     store,
		media:     media,
		publisher: publisher,
		now:       time.Now,
	}
}

func (w *WebhookIngestor) Handle(ctx context.Context, payload domain.WebhookPayload, token string) domain.WebhookResponse {
	session, err := w.authenticate(ctx, payload.SessionID, token)
	if err != nil {
		return rejection(err)
	}

	switch payload.Event {
	case "":
		logger.Warnf("Webhook for session %s without event", session.SessionID)
		return domain.WebhookResponse{Status: "error", Message: "No event provided"}

	case domain.EventConnectionUpdate:
		if err := w.handleConnectionUpdate(ctx, session, payload.Status); err != nil {
			logger.Errorf("Connection update for session %s failed: %v", session.SessionID, err)
			return domain.WebhookResponse{Status: "error", Message: "Failed to update connection status"}
		}

	case domain.EventMessagesUpsert:
		w.handleMessages(ctx, session, payload.Messages)

	default:
		logger.Warnf("Unrecognised webhook event %q for session %s", payload.Event, session.SessionID)
	}

	return domain.WebhookResponse{Status: "success"}
}

func (w *WebhookIngestor) authenticate(ctx context.Context, sessionID, token string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrMissingSession
	}
	if token == "" {
		logger.Warnf("Webhook for session %s without token", sessionID)
		return nil, domain.ErrMissingToken
	}

	session, ok, err := w.sessions.VerifyWebhookToken(ctx, sessionID, token)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warnf("Webhook for unknown session %s (presented token %s)", sessionID, logger.Redact(token))
		return nil, domain.ErrUnknownSession
	}
	if err != nil {
		logger.Errorf("Webhook session lookup for %s failed: %v", sessionID, err)
		return nil, err
	}

	if !ok {
		logger.Warnf("Webhook token mismatch for session %s (stored %s, presented %s)",
			sessionID, logger.Redact(session.WebhookSecret), logger.Redact(token))
		return nil, domain.ErrUnauthorized
	}

	return session, nil
}

func rejection(err error) domain.WebhookResponse {
	switch {
	case errors.Is(err, domain.ErrMissingSession):
		return domain.WebhookResponse{Status: "error", Message: "No sessionId provided"}
	case errors.Is(err, domain.ErrMissingToken):
		return domain.WebhookResponse{Status: "error", Message: "No authentication token"}
	case errors.Is(err, domain.ErrUnknownSession), errors.Is(err, domain.ErrUnauthorized):
		return domain.WebhookResponse{Status: "error", Message: "Unauthorized"}
	default:
		return domain.WebhookResponse{Status: "error", Message: "Internal error"}
	}
}

func (w *WebhookIngestor) handleConnectionUpdate(ctx context.Context, session *domain.Session, raw string) error {
	if raw == "" {
		return nil
	}

	status, ok := domain.ParseConnectionStatus(raw)
	if !ok {
		logger.Warnf("Unrecognised gateway status %q for session %s, storing %s", raw, session.SessionID, status)
	}

	return w.sessions.UpdateStatus(ctx, session.SessionID, status, w.now())
}

// handleMessages processes each message independently; one failure never
// stops the batch.
func (w *WebhookIngestor) handleMessages(ctx context.Context, session *domain.Session, messages []domain.WebhookMessage) {
	failed := 0
	for _, m := range messages {
		if err := w.handleMessage(ctx, session, m); err != nil {
			failed++
			logger.Errorf("Incoming message %s for session %s failed: %v", m.ID, session.SessionID, err)
		}
	}

	logger.Infof("Processed %d incoming messages for session %s (%d failed)", len(messages), session.SessionID, failed)
}

func (w *WebhookIngestor) handleMessage(ctx context.Context, session *domain.Session, m domain.WebhookMessage) error {
	if m.From == "" {
		return errors.New("message without sender")
	}

	displayName := m.PushName
	if displayName == "" {
		displayName = phone.StripJID(m.From)
	}

	msg, err := w.store.Save(ctx, domain.MessageEvent{
		GatewayMessageID: m.ID,
		Direction:        domain.DirectionInbound,
		Phone:            m.From,
		DisplayName:      displayName,
		Body:             m.Text,
		Tenant:           session.Tenant,
	})
	if err != nil {
		return err
	}

	if m.Media != nil && m.Media.Data != "" && msg.MediaURL == nil && w.media != nil {
		if url, err := w.media.Store(ctx, m.Media); err != nil {
			logger.Errorf("Failed to store media for message %d: %v", msg.ID, err)
		} else if err := w.store.AttachMedia(ctx, msg.ID, url); err != nil {
			logger.Errorf("Failed to attach media to message %d: %v", msg.ID, err)
		} else {
			msg.MediaURL = &url
		}
	}

	if w.publisher != nil {
		notification := domain.IncomingMessageNotification{
			From:        m.From,
			Text:        m.Text,
			DisplayName: displayName,
			Media:       msg.MediaURL,
			Tenant:      session.Tenant,
		}
		if err := w.publisher.Publish(ctx, domain.TopicIncomingMessage, notification); err != nil {
			logger.Warnf("Failed to publish incoming message %d: %v", msg.ID, err)
		}
	}

	return nil
}
