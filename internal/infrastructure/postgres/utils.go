package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// wrapWrite traduce violaciones de unicidad a domain.ErrDuplicate; el resto se envuelve con op.
func wrapWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectOne devuelve domain.ErrNotFound si la sentencia no afectó filas.
func expectOne(op string, tag pgconn.CommandTag, err error) error {
	if err != nil {
		return wrapWrite(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// noRows indica ausencia de fila en QueryRow.Scan.
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
