// Package repositories holds the errors shared by the PostgreSQL-backed
// stores in its subpackages.
package repositories

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	// ErrMissingReference means a referenced row, such as a task's owner,
	// does not exist.
	ErrMissingReference = errors.New("missing reference")
)

// IsUniqueViolation reports whether err carries a postgres unique_violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, pgerrcode.UniqueViolation)
}

// IsForeignKeyViolation reports whether err carries a postgres
// foreign_key_violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, pgerrcode.ForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
