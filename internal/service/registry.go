package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/database"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/realtime"
)

type sessionRepository interface {
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Session, error)
	GetByTenant(ctx context.Context, tenant string) (*domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	SetWebhookSecretIfEmpty(ctx context.Context, sessionID, secret string) (bool, error)
	UpdateStatus(ctx context.Context, sessionID string, status domain.ConnectionStatus, connectedAt *time.Time) error
	UpdateSettings(ctx context.Context, sessionID, gatewayURL string, enabled bool) error
}

// SessionRegistry owns per-tenant session state.
type SessionRegistry struct {
	repo      sessionRepository
	publisher realtime.Publisher
	guard     ReconnectGuard
}

func NewSessionRegistry(repo sessionRepository, publisher realtime.Publisher, guard ReconnectGuard) *SessionRegistry {
	return &SessionRegistry{
		repo:      repo,
		publisher: publisher,
		guard:     guard,
	}
}

// Ensure loads the tenant's session, creating it on first use, and
// guarantees a webhook secret is stored. Existing secrets are never rotated.
func (r *SessionRegistry) Ensure(ctx context.Context, tenant string) (*domain.Session, error) {
	if tenant == "" {
		return nil, fmt.Errorf("%w: tenant is required", domain.ErrInvalidInput)
	}

	session, err := r.repo.GetByTenant(ctx, tenant)
	if errors.Is(err, domain.ErrNotFound) {
		session, err = r.create(ctx, tenant)
	}
	if err != nil {
		return nil, err
	}

	if session.WebhookSecret != "" {
		return session, nil
	}

	secret, err := newWebhookSecret()
	if err != nil {
		return nil, err
	}
	if _, err := r.repo.SetWebhookSecretIfEmpty(ctx, session.SessionID, secret); err != nil {
		return nil, err
	}

	logger.Infof("Generated webhook secret for session %s", session.SessionID)

	return r.repo.GetBySessionID(ctx, session.SessionID)
}

func (r *SessionRegistry) create(ctx context.Context, tenant string) (*domain.Session, error) {
	secret, err := newWebhookSecret()
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		SessionID:        domain.SessionIDFromTenant(tenant),
		Tenant:           tenant,
		WebhookSecret:    secret,
		ConnectionStatus: domain.StatusDisconnected,
	}

	if err := r.repo.Create(ctx, session); err != nil {
		if database.IsUniqueViolation(err) {
			return r.repo.GetByTenant(ctx, tenant)
		}
		return nil, err
	}

	logger.Infof("Created session %s for tenant %q", session.SessionID, tenant)
	return session, nil
}

// Configure updates the gateway URL and integration flag of a tenant.
func (r *SessionRegistry) Configure(ctx context.Context, tenant, gatewayURL string, enabled bool) (*domain.Session, error) {
	session, err := r.Ensure(ctx, tenant)
	if err != nil {
		return nil, err
	}

	if err := r.repo.UpdateSettings(ctx, session.SessionID, gatewayURL, enabled); err != nil {
		return nil, err
	}

	return r.repo.GetBySessionID(ctx, session.SessionID)
}

// ActiveSessionFor is the single decision point for whether messaging is
// allowed for tenant.
func (r *SessionRegistry) ActiveSessionFor(ctx context.Context, tenant string) (*domain.Session, error) {
	session, err := r.repo.GetByTenant(ctx, tenant)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w for tenant %q", domain.ErrNoActiveSession, tenant)
	}
	if err != nil {
		return nil, err
	}
	if !session.IntegrationEnabled {
		return nil, fmt.Errorf("%w: integration disabled for tenant %q", domain.ErrNoActiveSession, tenant)
	}

	return session, nil
}

func (r *SessionRegistry) Lookup(ctx context.Context, sessionID string) (*domain.Session, error) {
	return r.repo.GetBySessionID(ctx, sessionID)
}

func (r *SessionRegistry) List(ctx context.Context) ([]domain.Session, error) {
	return r.repo.List(ctx)
}

// UpdateStatus persists the status and only then notifies listeners.
// lastConnectedAt moves only when the new status is Connected.
func (r *SessionRegistry) UpdateStatus(ctx context.Context, sessionID string, status domain.ConnectionStatus, at time.Time) error {
	var connectedAt *time.Time
	if status == domain.StatusConnected {
		utc := at.UTC()
		connectedAt = &utc
	}

	if err := r.repo.UpdateStatus(ctx, sessionID, status, connectedAt); err != nil {
		return err
	}

	logger.Infof("Session %s status -> %s", sessionID, status)

	if status == domain.StatusConnected && r.guard != nil {
		if err := r.guard.Release(ctx, sessionID); err != nil {
			logger.Warnf("Failed to clear reconnect flag for %s: %v", sessionID, err)
		}
	}

	if r.publisher != nil {
		payload := domain.ConnectionNotification{Status: status, SessionID: sessionID}
		// ids are minted from the tenant, so no read is needed to scope the event
		if tenant, err := domain.TenantFromSessionID(sessionID); err == nil {
			payload.Tenant = tenant
		} else {
			logger.Warnf("Connection update for %s is not tenant scoped: %v", sessionID, err)
		}
		if err := r.publisher.Publish(ctx, domain.TopicConnectionUpdate, payload); err != nil {
			logger.Warnf("Failed to publish connection update for %s: %v", sessionID, err)
		}
	}

	return nil
}

// VerifyWebhookToken reports whether presented matches the session's stored
// secret in constant time. The loaded session is returned on match and
// mismatch alike so callers need no second read; an unknown id yields
// domain.ErrNotFound.
func (r *SessionRegistry) VerifyWebhookToken(ctx context.Context, sessionID, presented string) (*domain.Session, bool, error) {
	session, err := r.repo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	return session, session.MatchesWebhookToken(presented), nil
}

func newWebhookSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate webhook secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
