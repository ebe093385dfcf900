package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgQueryCanceled       = "57014"
	pgDeadlockDetected    = "40P01"
)

// Constraint names declared in migrations.
const (
	constraintUsersEmail      = "users_email_key"
	constraintApplicationPair = "applications_user_job_key"
)

// mapError converts driver errors into domain sentinels or apperror values.
// Unknown errors are wrapped and left for the error handler to log.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return apperror.Unavailable(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return fmt.Errorf("%w: %s: %w", domain.ErrDuplicate, pgErr.ConstraintName, err)
		case pgErr.Code == pgForeignKeyViolation:
			return fmt.Errorf("%w: %s: %w", domain.ErrReferenced, pgErr.ConstraintName, err)
		case pgErr.Code == pgQueryCanceled, pgErr.Code == pgDeadlockDetected:
			return apperror.Unavailable(err)
		case strings.HasPrefix(pgErr.Code, "08"): // connection_exception class
			return apperror.Unavailable(err)
		}
		return fmt.Errorf("postgres: %w", err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return apperror.Unavailable(err)
	}
	return fmt.Errorf("postgres: %w", err)
}

// isConstraint reports whether err is a violation of the named constraint.
func isConstraint(err error, name string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.ConstraintName == name
}
