package database

import (
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_SQLiteIsIdempotent(t *testing.T) {
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name LIKE 'wa_%'`))
	assert.Equal(t, 4, count)
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, RunMigrations(db))

	insert := `INSERT INTO wa_messages (gateway_message_id, direction, counterparty_phone, body, tenant, created_at)
		VALUES (?, 'Inbound', '14155550100', 'hi', 'Acme Co', ?)`

	_, err = db.Exec(insert, "ABC1", time.Now().UTC())
	require.NoError(t, err)

	_, err = db.Exec(insert, "ABC1", time.Now().UTC())
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation_MySQLAndOthers(t *testing.T) {
	assert.True(t, IsUniqueViolation(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, IsUniqueViolation(&mysql.MySQLError{Number: 1045}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}
