package data

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("record not found")

// ErrInUse is returned when a deletion is blocked because dependent feedback
// rows still reference the entity.
var ErrInUse = errors.New("record is referenced by existing feedback")

// IsUniqueViolation reports whether err is a duplicate-key error from the
// database. The toggle and mark-read operations rely on this: two concurrent
// writers can both observe "no existing record", and the losing insert must be
// treated as already-present rather than surfaced.
//
// MySQL reports error 1062. The SQLite driver used in integration tests has no
// typed error we link against without cgo in the main binary, so its
// constraint failures are matched on the message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
