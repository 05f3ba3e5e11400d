// Package rowdesc renders the current row of a result cursor as a
// human-readable snapshot, used when building fault messages from the
// row that triggered the failure.
package rowdesc

import (
	"database/sql"
	"fmt"
	"strings"

	"codeberg.org/mutker/sqlfault/internal/errors"
)

// Describe renders rows' current row as "(col=val, ...)". The cursor
// must be positioned on a row (Next returned true); Describe consumes
// the row's values. Extraction failures are reported as their own
// errors rather than folded into whatever fault the caller was
// building.
func Describe(rows *sql.Rows) (string, error) {
	errFactory := errors.New()

	if rows == nil {
		return "", errFactory.New(ErrNoCursor)
	}

	cols, err := rows.Columns()
	if err != nil {
		return "", errFactory.Wrap(ErrColumnsFailed, err)
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	if err := rows.Scan(ptrs...); err != nil {
		return "", errFactory.Wrap(ErrScanFailed, err)
	}

	var b strings.Builder
	b.WriteByte('(')
	for i, col := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col)
		b.WriteByte('=')
		b.WriteString(render(vals[i]))
	}
	b.WriteByte(')')

	return b.String(), nil
}

func render(val any) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
