// Package classify maps driver-level errors onto the typed fault
// variants, layering the classification over whatever database client
// is in use. Postgres and MySQL report SQLSTATE directly; sqlite is
// mapped through its extended result codes.
package classify

import (
	"database/sql/driver"
	"errors"

	"codeberg.org/mutker/sqlfault/internal/catalog"
	"codeberg.org/mutker/sqlfault/internal/fault"
	"codeberg.org/mutker/sqlfault/internal/sqlstate"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// MySQL server error numbers that carry more detail than their
// SQLSTATE.
const (
	mysqlErrBadNull        = 1048
	mysqlErrDataOutOfRange = 1264
	mysqlErrDivisionByZero = 1365
	mysqlErrDataTooLong    = 1406
)

// Fault classifies err as one of the typed fault variants. The second
// return is false when err carries no recognized driver condition;
// callers keep the original error in that case.
func Fault(err error) (fault.Fault, bool) {
	if err == nil {
		return nil, false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPostgres(pgErr, err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return fromMySQL(myErr, err)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return fromSQLite(liteErr, err)
	}

	if errors.Is(err, driver.ErrBadConn) {
		return fault.ConnectionFailureWrap(err.Error(), err), true
	}

	return nil, false
}

func fromPostgres(pgErr *pgconn.PgError, cause error) (fault.Fault, bool) {
	// Postgres reports NOT NULL violations under class 23 with the
	// offending column attached; surface those through the localized
	// column template.
	if pgErr.Code == "23502" && pgErr.ColumnName != "" {
		return fault.NullValueKeyWrap(cause, catalog.KeyNullValueColumn, pgErr.ColumnName), true
	}
	if pgErr.Code == "23502" {
		return fault.NullValueWrap(pgErr.Message, cause), true
	}

	return fromState(sqlstate.Code(pgErr.Code), pgErr.Message, cause)
}

func fromMySQL(myErr *mysql.MySQLError, cause error) (fault.Fault, bool) {
	switch myErr.Number {
	case mysqlErrBadNull:
		return fault.NullValueWrap(myErr.Message, cause), true
	case mysqlErrDataOutOfRange:
		return fault.NumericOutOfRangeWrap(myErr.Message, cause), true
	case mysqlErrDivisionByZero:
		return fault.DivisionByZeroWrap(myErr.Message, cause), true
	case mysqlErrDataTooLong:
		return fault.StringTruncationWrap(myErr.Message, cause), true
	}

	return fromState(sqlstate.Code(myErr.SQLState[:]), myErr.Message, cause)
}

func fromSQLite(liteErr sqlite3.Error, cause error) (fault.Fault, bool) {
	msg := liteErr.Error()

	switch {
	case liteErr.ExtendedCode == sqlite3.ErrConstraintNotNull:
		return fault.NullValueWrap(msg, cause), true
	case liteErr.Code == sqlite3.ErrTooBig:
		return fault.StringTruncationWrap(msg, cause), true
	case liteErr.Code == sqlite3.ErrRange:
		return fault.NumericOutOfRangeWrap(msg, cause), true
	case liteErr.Code == sqlite3.ErrMisuse:
		return fault.CursorStateWrap(msg, cause), true
	case liteErr.Code == sqlite3.ErrCantOpen,
		liteErr.Code == sqlite3.ErrNotADB,
		liteErr.Code == sqlite3.ErrBusy:
		return fault.ConnectionFailureWrap(msg, cause), true
	}

	return nil, false
}

func fromState(state sqlstate.Code, msg string, cause error) (fault.Fault, bool) {
	switch state {
	case sqlstate.NullValue:
		return fault.NullValueWrap(msg, cause), true
	case sqlstate.StringTruncation:
		return fault.StringTruncationWrap(msg, cause), true
	case sqlstate.NumericOutOfRange:
		return fault.NumericOutOfRangeWrap(msg, cause), true
	case sqlstate.DivisionByZero:
		return fault.DivisionByZeroWrap(msg, cause), true
	case sqlstate.CursorState:
		return fault.CursorStateWrap(msg, cause), true
	}

	if state.InClass(sqlstate.ClassConnection) {
		return fault.ConnectionFailureWrap(msg, cause), true
	}

	return nil, false
}
