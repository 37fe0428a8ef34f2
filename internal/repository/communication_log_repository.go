package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
)

// CommunicationLogRepository is append-only; entries are never updated.
type CommunicationLogRepository struct {
	db *sqlx.DB
}

func NewCommunicationLogRepository(db *sqlx.DB) *CommunicationLogRepository {
	return &CommunicationLogRepository{db: db}
}

func (r *CommunicationLogRepository) Append(ctx context.Context, entry *domain.CommunicationLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO wa_communication_logs (tenant, receiver, message_kind, status, error_detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.Tenant, entry.Receiver, entry.MessageKind, string(entry.Status), entry.ErrorDetail, entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append communication log: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}

	return nil
}

func (r *CommunicationLogRepository) ListByTenant(ctx context.Context, tenant string, limit int) ([]domain.CommunicationLogEntry, error) {
	query := `
		SELECT id, tenant, receiver, message_kind, status, error_detail, created_at
		FROM wa_communication_logs
		WHERE tenant = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	entries := []domain.CommunicationLogEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, tenant, limit); err != nil {
		return nil, fmt.Errorf("failed to list communication logs: %w", err)
	}

	return entries, nil
}

// GetPage returns one page of a tenant's log, newest first, with the total count.
func (r *CommunicationLogRepository) GetPage(ctx context.Context, tenant string, page, pageSize int) ([]domain.CommunicationLogEntry, int64, error) {
	offset := (page - 1) * pageSize

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM wa_communication_logs WHERE tenant = ?"
	if err := r.db.GetContext(ctx, &totalCount, countQuery, tenant); err != nil {
		return nil, 0, fmt.Errorf("failed to count communication logs: %w", err)
	}

	query := `
		SELECT id, tenant, receiver, message_kind, status, error_detail, created_at
		FROM wa_communication_logs
		WHERE tenant = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	entries := []domain.CommunicationLogEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, tenant, pageSize, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to get communication logs: %w", err)
	}

	return entries, totalCount, nil
}
