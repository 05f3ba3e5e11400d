package catalog

// Catalog keys used by the fault variants.
const (
	KeyNullValue         = "nullValue"
	KeyNullValueColumn   = "nullValue.column"
	KeyStringTruncation  = "stringTruncation"
	KeyNumericOutOfRange = "numericOutOfRange"
	KeyDivisionByZero    = "divisionByZero"
	KeyCursorState       = "cursorState"
	KeyCursorNoRow       = "cursorState.noCurrentRow"
	KeyCursorExtraRows   = "cursorState.extraRows"
	KeyConnectionFailure = "connectionFailure"
)

// Built-in English templates. Overlay files loaded at runtime replace
// entries by key; keys absent from the overlay keep these values.
var defaultTemplates = map[string]string{
	KeyNullValue:         "null value not allowed",
	KeyNullValueColumn:   "null value not allowed for column %v",
	KeyStringTruncation:  "string data truncated at length %v",
	KeyNumericOutOfRange: "numeric value out of range: %v",
	KeyDivisionByZero:    "division by zero",
	KeyCursorState:       "invalid cursor state",
	KeyCursorNoRow:       "no current row",
	KeyCursorExtraRows:   "result set has more than %v row(s)",
	KeyConnectionFailure: "connection failure",
}
