package catalog

// Resolver renders a localized message for a catalog key and its
// positional arguments. Implementations must be safe for concurrent
// use and side-effect-free: resolving the same key and args twice
// against unchanged catalog content yields the same string.
type Resolver interface {
	Resolve(key string, args ...any) (string, error)
}
