package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

// NewSQLiteDB opens an embedded database. path may be ":memory:".
func NewSQLiteDB(path string) (*sqlx.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path + "?_time_format=sqlite&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite serialises writers; one connection also keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	logger.Infof("Opened SQLite database at %s", path)
	return db, nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS wa_sessions (
		session_id TEXT NOT NULL PRIMARY KEY,
		tenant TEXT NOT NULL UNIQUE,
		gateway_url TEXT NOT NULL DEFAULT '',
		webhook_secret TEXT NOT NULL DEFAULT '',
		connection_status TEXT NOT NULL DEFAULT 'Disconnected',
		last_connected_at DATETIME NULL,
		integration_enabled INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wa_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		gateway_message_id TEXT NULL UNIQUE,
		direction TEXT NOT NULL,
		counterparty_phone TEXT NOT NULL,
		display_name TEXT NULL,
		body TEXT NOT NULL,
		tenant TEXT NOT NULL,
		linked_contact TEXT NULL,
		media_url TEXT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wa_messages_phone_created ON wa_messages (counterparty_phone, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_wa_messages_created ON wa_messages (created_at)`,
	`CREATE TABLE IF NOT EXISTS wa_communication_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tenant TEXT NOT NULL,
		receiver TEXT NOT NULL,
		message_kind TEXT NOT NULL,
		status TEXT NOT NULL,
		error_detail TEXT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wa_communication_logs_tenant ON wa_communication_logs (tenant, created_at)`,
	`CREATE TABLE IF NOT EXISTS wa_contacts (
		id TEXT NOT NULL PRIMARY KEY,
		full_name TEXT NOT NULL DEFAULT '',
		mobile_no TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL DEFAULT 'Contact',
		customer TEXT NOT NULL DEFAULT '',
		is_primary INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wa_contacts_customer ON wa_contacts (customer)`,
}
