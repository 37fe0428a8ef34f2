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

const messageColumns = `id, gateway_message_id, direction, counterparty_phone, display_name, body, tenant, linked_contact, media_url, created_at`

// MessageRepository handles database operations for messages.
type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Insert stores msg and returns its new id. A duplicate gateway message id
// surfaces as the driver's unique violation.
func (r *MessageRepository) Insert(ctx context.Context, msg *domain.Message) (int64, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO wa_messages (gateway_message_id, direction, counterparty_phone, display_name, body, tenant, linked_contact, media_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		msg.GatewayMessageID, string(msg.Direction), msg.CounterpartyPhone, msg.DisplayName,
		msg.Body, msg.Tenant, msg.LinkedContact, msg.MediaURL, msg.CreatedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	msg.ID = id
	return id, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM wa_messages WHERE id = ?`

	var message domain.Message
	if err := r.db.GetContext(ctx, &message, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return &message, nil
}

func (r *MessageRepository) GetByGatewayID(ctx context.Context, gatewayID string) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM wa_messages WHERE gateway_message_id = ?`

	var message domain.Message
	if err := r.db.GetContext(ctx, &message, query, gatewayID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get message by gateway id: %w", err)
	}

	return &message, nil
}

// SetMediaURL writes the media reference. With onlyIfEmpty an existing
// reference is left untouched. It reports whether a row changed.
func (r *MessageRepository) SetMediaURL(ctx context.Context, id int64, url string, onlyIfEmpty bool) (bool, error) {
	query := `UPDATE wa_messages SET media_url = ? WHERE id = ?`
	if onlyIfEmpty {
		query += ` AND (media_url IS NULL OR media_url = '')`
	}

	result, err := r.db.ExecContext(ctx, query, url, id)
	if err != nil {
		return false, fmt.Errorf("failed to set media url: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}

type conversationRow struct {
	Phone         string           `db:"counterparty_phone"`
	DisplayName   sql.NullString   `db:"display_name"`
	LastMessage   string           `db:"body"`
	LastMessageAt time.Time        `db:"created_at"`
	Direction     domain.Direction `db:"direction"`
}

// RecentConversations returns the latest message of each counterparty, most
// recent first. An empty tenant spans all tenants.
func (r *MessageRepository) RecentConversations(ctx context.Context, tenant string, limit int) ([]domain.ConversationSummary, error) {
	filter := ""
	args := []any{}
	if tenant != "" {
		filter = "WHERE tenant = ?"
		args = append(args, tenant)
	}
	args = append(args, limit)

	query := `
		SELECT m.counterparty_phone, m.display_name, m.body, m.created_at, m.direction
		FROM wa_messages m
		JOIN (
			SELECT id, ROW_NUMBER() OVER (PARTITION BY counterparty_phone ORDER BY created_at DESC, id DESC) AS rn
			FROM wa_messages
			` + filter + `
		) ranked ON ranked.id = m.id
		WHERE ranked.rn = 1
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT ?
	`

	var rows []conversationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get recent conversations: %w", err)
	}

	summaries := make([]domain.ConversationSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.ConversationSummary{
			Phone:         row.Phone,
			DisplayName:   row.DisplayName.String,
			LastMessage:   row.LastMessage,
			LastMessageAt: row.LastMessageAt,
			Direction:     row.Direction,
		})
	}

	return summaries, nil
}

// History returns messages whose counterparty contains phone, oldest first.
func (r *MessageRepository) History(ctx context.Context, phone string, limit, offset int) ([]domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM wa_messages
		WHERE counterparty_phone LIKE ?
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?
	`

	messages := []domain.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, "%"+phone+"%", limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get message history: %w", err)
	}

	return messages, nil
}

// GetStats returns message counts per direction.
func (r *MessageRepository) GetStats(ctx context.Context) (inbound, outbound, withMedia int64, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN direction = 'Inbound' THEN 1 ELSE 0 END), 0)  AS inbound,
			COALESCE(SUM(CASE WHEN direction = 'Outbound' THEN 1 ELSE 0 END), 0) AS outbound,
			COALESCE(SUM(CASE WHEN media_url IS NOT NULL AND media_url <> '' THEN 1 ELSE 0 END), 0) AS with_media
		FROM wa_messages
	`

	var stats struct {
		Inbound   int64 `db:"inbound"`
		Outbound  int64 `db:"outbound"`
		WithMedia int64 `db:"with_media"`
	}

	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get message stats: %w", err)
	}

	return stats.Inbound, stats.Outbound, stats.WithMedia, nil
}
