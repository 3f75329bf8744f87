package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// isInvalidText verifica si un parámetro no se pudo convertir al tipo de la columna (22P02),
// por ejemplo un id que no es UUID.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// notFound traduce pgx.ErrNoRows (o un id mal formado) a domain.ErrNotFound con contexto;
// el resto se envuelve con op.
func notFound(err error, op, what string) error {
	if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// writeErr traduce violaciones de constraints a errores de dominio.
func writeErr(err error, op, what string) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", what, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
