package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
)

const (
	mysqlDuplicateEntry      = 1062
	sqliteConstraint         = 19
	sqliteConstraintUnique   = 2067
	sqliteConstraintPrimaryK = 1555
)

// IsUniqueViolation reports whether err came from a unique or primary key
// constraint on either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch code := liteErr.Code(); code {
		case sqliteConstraintUnique, sqliteConstraintPrimaryK:
			return true
		default:
			return code&0xff == sqliteConstraint && strings.Contains(liteErr.Error(), "UNIQUE")
		}
	}

	return false
}
