// Package fault defines the typed SQL failure variants and wires them
// into the surrogate registry, so a caught fault can cross a goroutine
// or retry boundary and be re-thrown as a fresh instance of the same
// concrete variant with a new cause.
package fault

import (
	"errors"
	"fmt"
	"sync"

	"codeberg.org/mutker/sqlfault/internal/catalog"
	"codeberg.org/mutker/sqlfault/internal/sqlstate"
	"codeberg.org/mutker/sqlfault/internal/surrogate"
)

// core holds the state shared by every variant. A fault is either
// literal (text set, key empty) or localized (key set, text empty);
// the cause is immutable after construction.
type core struct {
	code  sqlstate.Code
	text  string
	key   string
	args  []any
	cause error
}

func literal(code sqlstate.Code, text string, cause error) core {
	return core{code: code, text: text, cause: cause}
}

func localized(code sqlstate.Code, key string, args []any, cause error) core {
	return core{code: code, key: key, args: args, cause: cause}
}

func fallback(code sqlstate.Code) core {
	return literal(code, code.String(), nil)
}

func (f *core) SQLState() sqlstate.Code {
	return f.code
}

// Message renders the fault's message: the frozen literal for literal
// faults, a fresh catalog resolution for localized ones. When
// resolution fails it degrades to the code's canonical description;
// Localize exposes the underlying failure.
func (f *core) Message() string {
	if f.key == "" {
		return f.text
	}

	msg, err := catalog.Default().Resolve(f.key, f.args...)
	if err != nil {
		return f.code.String()
	}

	return msg
}

// Localize is the strict form of Message: catalog resolution failures
// propagate instead of being masked by the fallback text.
func (f *core) Localize() (string, error) {
	if f.key == "" {
		return f.text, nil
	}

	return catalog.Default().Resolve(f.key, f.args...)
}

func (f *core) Error() string {
	msg := f.Message()
	if f.cause != nil {
		return fmt.Sprintf("%s: %v", msg, f.cause)
	}

	return msg
}

func (f *core) Unwrap() error {
	return f.cause
}

// clone produces the state for a surrogate carrying the new cause. A
// literal fault freezes its rendered text at clone time (read through
// the message accessor); a localized one keeps key and args so the
// surrogate stays re-localizable.
func (f *core) clone(cause error) core {
	if f.key != "" {
		return localized(f.code, f.key, f.args, cause)
	}

	return literal(f.code, f.Message(), cause)
}

var (
	registryOnce sync.Once
	registry     *surrogate.Registry
)

// Registry returns the process-wide surrogate registry with every
// variant's factory registered, created on first use.
func Registry() *surrogate.Registry {
	registryOnce.Do(func() {
		registry = surrogate.NewRegistry()
		RegisterSurrogates(registry)
	})

	return registry
}

// Rethrow re-throws err with a new cause: a fresh instance of the same
// concrete variant when its factory is registered, a generic wrapper
// otherwise.
func Rethrow(err error, cause error) error {
	return Registry().Rethrow(err, cause)
}

// StateOf extracts the SQLSTATE code from err or any fault in its
// chain.
func StateOf(err error) (sqlstate.Code, bool) {
	var f Fault
	if errors.As(err, &f) {
		return f.SQLState(), true
	}

	return "", false
}
