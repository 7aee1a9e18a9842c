package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories translate.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// AsPgError extracts the PostgreSQL error from err's chain.
func AsPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports a unique_violation, optionally restricted to one constraint.
func IsUniqueViolation(err error, constraint string) bool {
	return isViolation(err, CodeUniqueViolation, constraint)
}

// IsForeignKeyViolation reports a foreign_key_violation, optionally restricted to one constraint.
func IsForeignKeyViolation(err error, constraint string) bool {
	return isViolation(err, CodeForeignKeyViolation, constraint)
}

func isViolation(err error, code, constraint string) bool {
	pgErr, ok := AsPgError(err)
	if !ok || pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
