package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// DBTX is satisfied by *pgxpool.Pool; each call acquires and releases its own connection.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SQLSTATE codes mapped to constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgInvalidTextRepr     = "22P02"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// mapPgError converts driver errors into domain errors for op.
func mapPgError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCheckViolation, pgForeignKeyViolation, pgNotNullViolation, pgInvalidTextRepr, pgUniqueViolation:
			return apperrors.NewConstraintViolation(op+": "+pgErr.Message, map[string]any{
				"sqlstate":   pgErr.Code,
				"constraint": pgErr.ConstraintName,
			}, err)
		}
	}
	return apperrors.NewStorageFailure(op, err)
}
