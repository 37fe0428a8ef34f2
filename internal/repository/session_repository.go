package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
)

const sessionColumns = `session_id, tenant, gateway_url, webhook_secret, connection_status, last_connected_at, integration_enabled, created_at, updated_at`

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Session, error) {
	return r.getOne(ctx, `SELECT `+sessionColumns+` FROM wa_sessions WHERE session_id = ?`, sessionID)
}

func (r *SessionRepository) GetByTenant(ctx context.Context, tenant string) (*domain.Session, error) {
	return r.getOne(ctx, `SELECT `+sessionColumns+` FROM wa_sessions WHERE tenant = ?`, tenant)
}

func (r *SessionRepository) getOne(ctx context.Context, query string, arg any) (*domain.Session, error) {
	var session domain.Session
	if err := r.db.GetContext(ctx, &session, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]domain.Session, error) {
	sessions := []domain.Session{}
	query := `SELECT ` + sessionColumns + ` FROM wa_sessions ORDER BY tenant ASC`
	if err := r.db.SelectContext(ctx, &sessions, query); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	if s.ConnectionStatus == "" {
		s.ConnectionStatus = domain.StatusDisconnected
	}

	query := `
		INSERT INTO wa_sessions (session_id, tenant, gateway_url, webhook_secret, connection_status, last_connected_at, integration_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.SessionID, s.Tenant, s.GatewayURL, s.WebhookSecret, string(s.ConnectionStatus),
		s.LastConnectedAt, s.IntegrationEnabled, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// SetWebhookSecretIfEmpty stores secret only when none is stored yet.
func (r *SessionRepository) SetWebhookSecretIfEmpty(ctx context.Context, sessionID, secret string) (bool, error) {
	query := `
		UPDATE wa_sessions
		SET webhook_secret = ?, updated_at = ?
		WHERE session_id = ? AND webhook_secret = ''
	`

	result, err := r.db.ExecContext(ctx, query, secret, time.Now().UTC(), sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to set webhook secret: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}

// UpdateStatus sets the connection status. connectedAt, when non-nil, also
// replaces last_connected_at.
func (r *SessionRepository) UpdateStatus(ctx context.Context, sessionID string, status domain.ConnectionStatus, connectedAt *time.Time) error {
	query := `UPDATE wa_sessions SET connection_status = ?, updated_at = ? WHERE session_id = ?`
	args := []any{string(status), time.Now().UTC(), sessionID}

	if connectedAt != nil {
		query = `UPDATE wa_sessions SET connection_status = ?, last_connected_at = ?, updated_at = ? WHERE session_id = ?`
		args = []any{string(status), connectedAt.UTC(), time.Now().UTC(), sessionID}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("session %q: %w", sessionID, domain.ErrNotFound)
	}

	return nil
}

func (r *SessionRepository) UpdateSettings(ctx context.Context, sessionID, gatewayURL string, enabled bool) error {
	query := `
		UPDATE wa_sessions
		SET gateway_url = ?, integration_enabled = ?, updated_at = ?
		WHERE session_id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, gatewayURL, enabled, time.Now().UTC(), sessionID); err != nil {
		return fmt.Errorf("failed to update session settings: %w", err)
	}

	return nil
}
