package persistence

import (
	"errors"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the repositories translate into domain errors
const (
	pgUniqueViolation      = "23505"
	pgLockNotAvailable     = "55P03"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// translateError maps store-level failures onto the domain error kinds.
// Lock timeouts, serialization failures and deadlocks all surface as a
// retryable concurrency conflict.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return shared.ErrAlreadyExists
		case pgLockNotAvailable, pgSerializationFailure, pgDeadlockDetected:
			return shared.ErrConcurrencyConflict
		}
	}

	return err
}
