package database

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/rotisserie/eris"

	"github.com/wist/backend/internal/domain"
)

// persistenceError wraps a driver error for the named operation
func persistenceError(op string, err error) error {
	return &domain.PersistenceError{Op: op, Err: eris.Wrap(err, "database error")}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
