package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// The store surfaces a closed set of failure kinds so handlers can map
// them to distinct status codes instead of a single generic failure.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConstraint   = errors.New("constraint violation")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// wrapDBError tags integrity-constraint failures (SQLSTATE class 23) as
// ErrConstraint so a restricted delete or broken reference reads as a
// conflict, not a server fault.
func wrapDBError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23" {
		return fmt.Errorf("%s: %w: %s", op, ErrConstraint, pgErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
