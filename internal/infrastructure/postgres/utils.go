package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx; los repos aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isExclusionViolation 23P01: solapamiento detectado por una restricción EXCLUDE.
func isExclusionViolation(err error) bool {
	return pgCode(err) == "23P01"
}

// isInvalidText 22P02: p.ej. un id que no es un UUID válido.
func isInvalidText(err error) bool {
	return pgCode(err) == "22P02"
}

// isForeignKeyViolation 23503.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}
