package database

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/whatsapp-session-bridge/environments"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

func NewMySQLDB(cfg environments.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Infof("Connected to MySQL database")
	return db, nil
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS wa_sessions (
		session_id VARCHAR(191) NOT NULL PRIMARY KEY,
		tenant VARCHAR(191) NOT NULL,
		gateway_url VARCHAR(255) NOT NULL DEFAULT '',
		webhook_secret VARCHAR(128) NOT NULL DEFAULT '',
		connection_status VARCHAR(20) NOT NULL DEFAULT 'Disconnected',
		last_connected_at DATETIME(6) NULL,
		integration_enabled TINYINT(1) NOT NULL DEFAULT 0,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		UNIQUE KEY uq_wa_sessions_tenant (tenant)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS wa_messages (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		gateway_message_id VARCHAR(191) NULL,
		direction VARCHAR(10) NOT NULL,
		counterparty_phone VARCHAR(32) NOT NULL,
		display_name VARCHAR(255) NULL,
		body TEXT NOT NULL,
		tenant VARCHAR(191) NOT NULL,
		linked_contact VARCHAR(191) NULL,
		media_url VARCHAR(1024) NULL,
		created_at DATETIME(6) NOT NULL,
		UNIQUE KEY uq_wa_messages_gateway_id (gateway_message_id),
		INDEX idx_wa_messages_phone_created (counterparty_phone, created_at),
		INDEX idx_wa_messages_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS wa_communication_logs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		tenant VARCHAR(191) NOT NULL,
		receiver VARCHAR(32) NOT NULL,
		message_kind VARCHAR(64) NOT NULL,
		status VARCHAR(10) NOT NULL,
		error_detail TEXT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_wa_communication_logs_tenant (tenant, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	`CREATE TABLE IF NOT EXISTS wa_contacts (
		id VARCHAR(191) NOT NULL PRIMARY KEY,
		full_name VARCHAR(255) NOT NULL DEFAULT '',
		mobile_no VARCHAR(32) NOT NULL DEFAULT '',
		kind VARCHAR(20) NOT NULL DEFAULT 'Contact',
		customer VARCHAR(191) NOT NULL DEFAULT '',
		is_primary TINYINT(1) NOT NULL DEFAULT 0,
		INDEX idx_wa_contacts_name (full_name),
		INDEX idx_wa_contacts_customer (customer),
		INDEX idx_wa_contacts_mobile (mobile_no)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}
