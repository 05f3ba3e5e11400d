// Package sqlstate defines the standard SQLSTATE codes this library
// classifies. The literal code values are part of the contract toward
// SQL-aware callers and must not change.
package sqlstate

// Code is a five-character SQLSTATE value identifying a class of
// database error, independent of message text.
type Code string

// Standard codes covered by the fault taxonomy.
const (
	// Class 08 - connection exception
	ConnectionFailure Code = "08006"

	// Class 22 - data exception
	StringTruncation  Code = "22001"
	NumericOutOfRange Code = "22003"
	NullValue         Code = "22004"
	DivisionByZero    Code = "22012"

	// Class 24 - invalid cursor state
	CursorState Code = "24000"
)

// Class prefixes, used when matching driver errors by category rather
// than exact code.
const (
	ClassConnection Code = "08"
	ClassData       Code = "22"
	ClassIntegrity  Code = "23"
	ClassCursor     Code = "24"
	ClassRollback   Code = "40"
)

var descriptions = map[Code]string{
	ConnectionFailure: "connection failure",
	StringTruncation:  "string data, right truncation",
	NumericOutOfRange: "numeric value out of range",
	NullValue:         "null value not allowed",
	DivisionByZero:    "division by zero",
	CursorState:       "invalid cursor state",
}

// Class returns the two-character class portion of the code.
func (c Code) Class() Code {
	if len(c) < 2 {
		return c
	}
	return c[:2]
}

// InClass reports whether the code belongs to the given class.
func (c Code) InClass(class Code) bool {
	return c.Class() == class
}

// String returns the canonical description for a known code, or the
// raw code value when no description is registered.
func (c Code) String() string {
	if desc, ok := descriptions[c]; ok {
		return desc
	}

	return string(c)
}
