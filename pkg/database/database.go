package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/whatsapp-session-bridge/environments"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Open connects using the configured driver.
func Open(cfg environments.DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverMySQL, "":
		return NewMySQLDB(cfg)
	case DriverSQLite:
		return NewSQLiteDB(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// RunMigrations creates the bridge tables for the connection's dialect.
func RunMigrations(db *sqlx.DB) error {
	schema := mysqlSchema
	if db.DriverName() == DriverSQLite {
		schema = sqliteSchema
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	logger.Infof("Database migrations completed")

	return nil
}
