package repository

import (
	"errors"

	domainRepo "medimeet-api/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error code 23505 = unique_violation
const pgUniqueViolation = "23505"

// translateError turns driver errors the usecases care about into domain errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &domainRepo.DuplicateError{Constraint: pgErr.ConstraintName}
	}
	return err
}
