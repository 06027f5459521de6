package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
)

var (
	// ErrEventNotFound is returned when no event matches the lookup; an
	// ownership mismatch is deliberately indistinguishable from a missing
	// record.
	ErrEventNotFound = errors.New("event not found")
	// ErrDuplicateName is returned when an insert or update violates the
	// unique constraint on the event name.
	ErrDuplicateName = errors.New("duplicate event name")
)

// wrapDBError maps driver failures to the package's sentinel errors. Unique
// violations keep the constraint message from Postgres so callers can embed
// it in diagnostics.
func wrapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrEventNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicateName, pgErr.Message)
	}

	return err
}
