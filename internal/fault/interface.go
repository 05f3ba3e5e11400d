package fault

import "codeberg.org/mutker/sqlfault/internal/sqlstate"

// Fault is one member of the closed set of classified SQL failures.
// Every concrete variant carries a fixed SQLSTATE code and either a
// frozen literal message or a catalog key that is re-localized each
// time the message is rendered.
type Fault interface {
	error
	SQLState() sqlstate.Code
	Message() string
	Localize() (string, error)
	Unwrap() error
}
