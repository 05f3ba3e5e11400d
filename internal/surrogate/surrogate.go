// Package surrogate implements the reconstruction registry that lets a
// caught error be re-thrown later as a fresh instance of the same
// concrete type with a new cause, without the rethrow site knowing that
// type. Lookup is keyed by exact runtime type: a type without a
// registered factory falls back to generic wrapping instead of being
// cloned through a factory for some supertype.
package surrogate

import (
	"fmt"
	"reflect"
	"sync"
)

// Factory produces a new instance of template's concrete type carrying
// the given cause, preserving the template's classification and
// message data.
type Factory func(template error, cause error) error

// Registry maps concrete error types to their reconstruction
// factories. Registration happens once per type before first use;
// lookups are read-mostly and safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[reflect.Type]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[reflect.Type]Factory)}
}

// Register associates a factory with prototype's concrete type.
// Re-registering the identical factory is a no-op; registering a
// different factory for an already-registered type is a programming
// error and panics, since a silent overwrite would let one type's
// clones carry another's reconstruction semantics.
func (r *Registry) Register(prototype error, factory Factory) {
	if prototype == nil || factory == nil {
		panic("surrogate: nil prototype or factory")
	}

	key := reflect.TypeOf(prototype)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.factories[key]; ok {
		if reflect.ValueOf(existing).Pointer() == reflect.ValueOf(factory).Pointer() {
			return
		}
		panic(fmt.Sprintf("surrogate: conflicting factory registration for %v", key))
	}

	r.factories[key] = factory
}

// Reconstruct looks up the factory for template's exact runtime type
// and, if found, returns a new instance carrying cause. The second
// return is false when no factory is registered, so the caller can
// fall back to generic wrapping.
func (r *Registry) Reconstruct(template error, cause error) (error, bool) {
	if template == nil {
		return nil, false
	}

	r.mu.RLock()
	factory, ok := r.factories[reflect.TypeOf(template)]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}

	return factory(template, cause), true
}

// Rethrow reconstructs err with the new cause when a factory is
// registered for its type, and otherwise wraps it generically,
// preserving the cause chain at the price of concrete-type fidelity.
func (r *Registry) Rethrow(err error, cause error) error {
	if rebuilt, ok := r.Reconstruct(err, cause); ok {
		return rebuilt
	}

	return &Wrapped{Original: err, Cause: cause}
}

// Wrapped is the degraded result of rethrowing an error whose type has
// no registered factory.
type Wrapped struct {
	Original error
	Cause    error
}

func (w *Wrapped) Error() string {
	if w.Cause == nil {
		return w.Original.Error()
	}

	return fmt.Sprintf("%s: %v", w.Original.Error(), w.Cause)
}

// Unwrap exposes both the original error and the new cause, so
// errors.Is and errors.As keep working across the rethrow.
func (w *Wrapped) Unwrap() []error {
	errs := make([]error, 0, 2)
	if w.Original != nil {
		errs = append(errs, w.Original)
	}
	if w.Cause != nil {
		errs = append(errs, w.Cause)
	}

	return errs
}
