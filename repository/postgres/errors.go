package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/jobboard/domain"
)

const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgInvalidTextRepresent = "22P02"

	constraintApplicationPair = "applications_job_seeker_key"
	constraintUserEmail       = "users_email_key"
	constraintApplicationJob  = "applications_job_id_fkey"
)

// mapError converts pgx errors into domain errors. notFound is returned for a
// missing row or a malformed identifier. Unclassified errors pass through so the
// use case can report them as STORAGE_UNAVAILABLE.
func mapError(err error, notFound *domain.Error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintApplicationPair:
			return domain.ErrDuplicateApplication
		case constraintUserEmail:
			return domain.ErrEmailTaken
		}
		return domain.WrapError(domain.ErrCodeConflict, "conflicting record", err)
	case pgForeignKeyViolation:
		if pgErr.ConstraintName == constraintApplicationJob {
			return domain.ErrJobNotFound
		}
		return domain.ErrUserNotFound
	case pgInvalidTextRepresent:
		return notFound
	}
	return err
}
