package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether the error is a Postgres unique violation,
// optionally scoped to a specific constraint name.
func IsUniqueViolation(err error, constraintName ...string) bool {
	if err == nil {
		return false
	}

	var code, constraint string
	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgxErr):
		code = pgxErr.Code
		constraint = pgxErr.ConstraintName
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
		constraint = pqErr.Constraint
	default:
		// sqlite in tests reports no SQLSTATE
		if !strings.Contains(err.Error(), "UNIQUE constraint failed") &&
			!strings.Contains(err.Error(), "duplicate key value") {
			return false
		}
		code = uniqueViolationCode
	}

	if code != uniqueViolationCode {
		return false
	}
	if len(constraintName) > 0 && constraintName[0] != "" {
		return constraint == constraintName[0] || strings.Contains(err.Error(), constraintName[0])
	}
	return true
}
