package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"clover/internal/apperr"
)

// getErr translates a single-row lookup failure, mapping a missing row to
// apperr.ErrNotFound.
func getErr(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	}
	return fmt.Errorf("getting %s: %w", what, err)
}

// affected reports apperr.ErrNotFound when a write touched no row, which is
// also what happens when the row belongs to another user.
func affected(result sql.Result, what string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	}
	return nil
}
