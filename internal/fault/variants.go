package fault

import (
	"database/sql"
	"fmt"

	"codeberg.org/mutker/sqlfault/internal/rowdesc"
	"codeberg.org/mutker/sqlfault/internal/sqlstate"
	"codeberg.org/mutker/sqlfault/internal/surrogate"
)

// Every variant supports the same construction paths: canonical
// fallback text, literal message with or without cause, catalog key
// with or without cause, and a snapshot of the result cursor's current
// row. The from-row path fails with the row-description error itself
// when extraction breaks, since that means the diagnostic path is
// broken.

func fromRow(code sqlstate.Code, rows *sql.Rows) (core, error) {
	desc, err := rowdesc.Describe(rows)
	if err != nil {
		return core{}, err
	}

	return literal(code, fmt.Sprintf("%s in row %s", code.String(), desc), nil), nil
}

// NullValue reports a null value where one is not allowed (SQLSTATE 22004).
type NullValue struct{ core }

func NewNullValue() *NullValue {
	return &NullValue{fallback(sqlstate.NullValue)}
}

func NullValueText(msg string) *NullValue {
	return &NullValue{literal(sqlstate.NullValue, msg, nil)}
}

func NullValueWrap(msg string, cause error) *NullValue {
	return &NullValue{literal(sqlstate.NullValue, msg, cause)}
}

func NullValueKey(key string, args ...any) *NullValue {
	return &NullValue{localized(sqlstate.NullValue, key, args, nil)}
}

func NullValueKeyWrap(cause error, key string, args ...any) *NullValue {
	return &NullValue{localized(sqlstate.NullValue, key, args, cause)}
}

func NullValueFromRow(rows *sql.Rows) (*NullValue, error) {
	c, err := fromRow(sqlstate.NullValue, rows)
	if err != nil {
		return nil, err
	}

	return &NullValue{c}, nil
}

// StringTruncation reports right-truncated string data (SQLSTATE 22001).
type StringTruncation struct{ core }

func NewStringTruncation() *StringTruncation {
	return &StringTruncation{fallback(sqlstate.StringTruncation)}
}

func StringTruncationText(msg string) *StringTruncation {
	return &StringTruncation{literal(sqlstate.StringTruncation, msg, nil)}
}

func StringTruncationWrap(msg string, cause error) *StringTruncation {
	return &StringTruncation{literal(sqlstate.StringTruncation, msg, cause)}
}

func StringTruncationKey(key string, args ...any) *StringTruncation {
	return &StringTruncation{localized(sqlstate.StringTruncation, key, args, nil)}
}

func StringTruncationKeyWrap(cause error, key string, args ...any) *StringTruncation {
	return &StringTruncation{localized(sqlstate.StringTruncation, key, args, cause)}
}

func StringTruncationFromRow(rows *sql.Rows) (*StringTruncation, error) {
	c, err := fromRow(sqlstate.StringTruncation, rows)
	if err != nil {
		return nil, err
	}

	return &StringTruncation{c}, nil
}

// NumericOutOfRange reports a numeric value outside its type's range
// (SQLSTATE 22003).
type NumericOutOfRange struct{ core }

func NewNumericOutOfRange() *NumericOutOfRange {
	return &NumericOutOfRange{fallback(sqlstate.NumericOutOfRange)}
}

func NumericOutOfRangeText(msg string) *NumericOutOfRange {
	return &NumericOutOfRange{literal(sqlstate.NumericOutOfRange, msg, nil)}
}

func NumericOutOfRangeWrap(msg string, cause error) *NumericOutOfRange {
	return &NumericOutOfRange{literal(sqlstate.NumericOutOfRange, msg, cause)}
}

func NumericOutOfRangeKey(key string, args ...any) *NumericOutOfRange {
	return &NumericOutOfRange{localized(sqlstate.NumericOutOfRange, key, args, nil)}
}

func NumericOutOfRangeKeyWrap(cause error, key string, args ...any) *NumericOutOfRange {
	return &NumericOutOfRange{localized(sqlstate.NumericOutOfRange, key, args, cause)}
}

func NumericOutOfRangeFromRow(rows *sql.Rows) (*NumericOutOfRange, error) {
	c, err := fromRow(sqlstate.NumericOutOfRange, rows)
	if err != nil {
		return nil, err
	}

	return &NumericOutOfRange{c}, nil
}

// DivisionByZero reports a division by zero (SQLSTATE 22012).
type DivisionByZero struct{ core }

func NewDivisionByZero() *DivisionByZero {
	return &DivisionByZero{fallback(sqlstate.DivisionByZero)}
}

func DivisionByZeroText(msg string) *DivisionByZero {
	return &DivisionByZero{literal(sqlstate.DivisionByZero, msg, nil)}
}

func DivisionByZeroWrap(msg string, cause error) *DivisionByZero {
	return &DivisionByZero{literal(sqlstate.DivisionByZero, msg, cause)}
}

func DivisionByZeroKey(key string, args ...any) *DivisionByZero {
	return &DivisionByZero{localized(sqlstate.DivisionByZero, key, args, nil)}
}

func DivisionByZeroKeyWrap(cause error, key string, args ...any) *DivisionByZero {
	return &DivisionByZero{localized(sqlstate.DivisionByZero, key, args, cause)}
}

func DivisionByZeroFromRow(rows *sql.Rows) (*DivisionByZero, error) {
	c, err := fromRow(sqlstate.DivisionByZero, rows)
	if err != nil {
		return nil, err
	}

	return &DivisionByZero{c}, nil
}

// CursorState reports an operation against a cursor in an invalid
// state, such as reading before Next or past the last row
// (SQLSTATE 24000).
type CursorState struct{ core }

func NewCursorState() *CursorState {
	return &CursorState{fallback(sqlstate.CursorState)}
}

func CursorStateText(msg string) *CursorState {
	return &CursorState{literal(sqlstate.CursorState, msg, nil)}
}

func CursorStateWrap(msg string, cause error) *CursorState {
	return &CursorState{literal(sqlstate.CursorState, msg, cause)}
}

func CursorStateKey(key string, args ...any) *CursorState {
	return &CursorState{localized(sqlstate.CursorState, key, args, nil)}
}

func CursorStateKeyWrap(cause error, key string, args ...any) *CursorState {
	return &CursorState{localized(sqlstate.CursorState, key, args, cause)}
}

func CursorStateFromRow(rows *sql.Rows) (*CursorState, error) {
	c, err := fromRow(sqlstate.CursorState, rows)
	if err != nil {
		return nil, err
	}

	return &CursorState{c}, nil
}

// ConnectionFailure reports a lost or unusable connection
// (SQLSTATE 08006).
type ConnectionFailure struct{ core }

func NewConnectionFailure() *ConnectionFailure {
	return &ConnectionFailure{fallback(sqlstate.ConnectionFailure)}
}

func ConnectionFailureText(msg string) *ConnectionFailure {
	return &ConnectionFailure{literal(sqlstate.ConnectionFailure, msg, nil)}
}

func ConnectionFailureWrap(msg string, cause error) *ConnectionFailure {
	return &ConnectionFailure{literal(sqlstate.ConnectionFailure, msg, cause)}
}

func ConnectionFailureKey(key string, args ...any) *ConnectionFailure {
	return &ConnectionFailure{localized(sqlstate.ConnectionFailure, key, args, nil)}
}

func ConnectionFailureKeyWrap(cause error, key string, args ...any) *ConnectionFailure {
	return &ConnectionFailure{localized(sqlstate.ConnectionFailure, key, args, cause)}
}

func ConnectionFailureFromRow(rows *sql.Rows) (*ConnectionFailure, error) {
	c, err := fromRow(sqlstate.ConnectionFailure, rows)
	if err != nil {
		return nil, err
	}

	return &ConnectionFailure{c}, nil
}

func rebuildNullValue(template, cause error) error {
	return &NullValue{template.(*NullValue).clone(cause)}
}

func rebuildStringTruncation(template, cause error) error {
	return &StringTruncation{template.(*StringTruncation).clone(cause)}
}

func rebuildNumericOutOfRange(template, cause error) error {
	return &NumericOutOfRange{template.(*NumericOutOfRange).clone(cause)}
}

func rebuildDivisionByZero(template, cause error) error {
	return &DivisionByZero{template.(*DivisionByZero).clone(cause)}
}

func rebuildCursorState(template, cause error) error {
	return &CursorState{template.(*CursorState).clone(cause)}
}

func rebuildConnectionFailure(template, cause error) error {
	return &ConnectionFailure{template.(*ConnectionFailure).clone(cause)}
}

// RegisterSurrogates installs every variant's reconstruction factory
// into r. Calling it twice against the same registry is a no-op.
func RegisterSurrogates(r *surrogate.Registry) {
	r.Register(&NullValue{}, rebuildNullValue)
	r.Register(&StringTruncation{}, rebuildStringTruncation)
	r.Register(&NumericOutOfRange{}, rebuildNumericOutOfRange)
	r.Register(&DivisionByZero{}, rebuildDivisionByZero)
	r.Register(&CursorState{}, rebuildCursorState)
	r.Register(&ConnectionFailure{}, rebuildConnectionFailure)
}
