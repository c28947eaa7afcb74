package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE de unique_violation. Lo producen el número de componente, el nombre
// de ubicación y el par (email, planta) de usuarios; los repos lo traducen a
// domain.ErrDuplicate / ErrEmailAlreadyExists.
const sqlstateUniqueViolation = "23505"

// isUniqueViolation informa si err proviene de una violación de constraint único.
// El fallback por texto cubre errores ya envueltos que perdieron el *PgError.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlstateUniqueViolation
	}
	return strings.Contains(err.Error(), sqlstateUniqueViolation)
}
