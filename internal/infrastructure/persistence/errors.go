package persistence

import (
	"errors"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATEs of unique and exclusion constraint violations
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// isUniqueViolation reports whether err comes from a unique or exclusion
// constraint, either as a raw Postgres error or translated by GORM.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		(pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation)
}

// constraintName returns the violated constraint, when the driver reports one
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// notFound maps gorm.ErrRecordNotFound to a domain NotFoundError
func notFound(err error, resource string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(resource, id)
	}
	return err
}
