// Package rowfunc provides the one-method callback adapters for
// processing query results. Result-set shape violations surface as
// cursor-state faults, so callers get the same classified errors here
// as from statement execution.
package rowfunc

import (
	"database/sql"

	"codeberg.org/mutker/sqlfault/internal/catalog"
	"codeberg.org/mutker/sqlfault/internal/fault"
)

// RowMapper converts the current row of a cursor into a value.
type RowMapper[T any] func(rows *sql.Rows) (T, error)

// RowHandler processes the current row of a cursor for its side
// effects.
type RowHandler func(rows *sql.Rows) error

// ForEach advances the cursor and invokes handle for every row. The
// first handler error stops iteration and is returned as-is.
func ForEach(rows *sql.Rows, handle RowHandler) error {
	for rows.Next() {
		if err := handle(rows); err != nil {
			return err
		}
	}

	return rows.Err()
}

// Collect maps every row through m and returns the results in cursor
// order.
func Collect[T any](rows *sql.Rows, m RowMapper[T]) ([]T, error) {
	var out []T
	for rows.Next() {
		val, err := m(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// One maps exactly one row. An empty result set and a result set with
// more than one row are both cursor-state faults.
func One[T any](rows *sql.Rows, m RowMapper[T]) (T, error) {
	var zero T

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, err
		}
		return zero, fault.CursorStateKey(catalog.KeyCursorNoRow)
	}

	val, err := m(rows)
	if err != nil {
		return zero, err
	}

	if rows.Next() {
		return zero, fault.CursorStateKey(catalog.KeyCursorExtraRows, 1)
	}
	if err := rows.Err(); err != nil {
		return zero, err
	}

	return val, nil
}
