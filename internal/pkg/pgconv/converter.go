package pgconv

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// IsNoRows reports whether err is pgx's empty-result sentinel. Repositories
// use it to tell "no matching row" apart from a real query failure.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
