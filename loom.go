package loom

import "reflect"

// Resolver is the untyped resolution surface shared by Module and Builder.
// The type token and qualifier together identify a binding; args are handed
// to the binding's producer unchanged.
//
// Most callers should prefer the generic entry points (Instance, ProviderOf,
// LazyOf) which build the type token from the type parameter.
type Resolver interface {
	// ResolveKey resolves the binding registered for (typ, q), passing args
	// to its producer. Returns a binding-not-found error if no binding
	// exists at that key.
	ResolveKey(typ reflect.Type, q Qualifier, args ...any) (any, error)

	// CheckKey reports whether a binding exists for (typ, q). Returns nil
	// when the binding exists, a binding-not-found error otherwise.
	CheckKey(typ reflect.Type, q Qualifier) error
}

// Producer constructs a value of type T. It receives the Resolver that
// initiated resolution, so it can pull its own dependencies, and the
// positional arguments supplied by the caller (see Arg and ArgOf).
type Producer[T any] func(r Resolver, args Args) (T, error)
