package repo

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"jokehub/src/core/domain"
)

// PostgreSQL SQLSTATE codes translated into client-facing error categories.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

// translateError maps a pg constraint violation to a domain error, so
// handlers never see raw SQLSTATE codes. Unique violations are narrowed by
// constraint name: the username and email constraints get their own codes,
// everything else (e.g. a duplicate favorite) is a generic duplicate.
// Any other failure becomes a generic backend-unavailable error; the raw
// cause is for logs only.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return domain.NewUnavailableError("storage temporarily unavailable")
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return domain.NewDuplicateError(domain.CodeDuplicateUsername, "username already taken")
		case strings.Contains(pgErr.ConstraintName, "email"):
			return domain.NewDuplicateError(domain.CodeDuplicateEmail, "email already registered")
		default:
			return domain.NewDuplicateError(domain.CodeDuplicateResource, "resource already exists")
		}
	case foreignKeyViolationCode:
		return domain.NewReferenceError("referenced resource does not exist")
	case checkViolationCode:
		return domain.NewValidationError("", "value violates a storage constraint")
	default:
		return domain.NewUnavailableError("storage temporarily unavailable")
	}
}
