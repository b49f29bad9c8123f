package loom

import (
	"fmt"
	"time"

	logger "github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
)

// resolveKey is the single resolution path behind Module and Builder. It
// wraps the lookup-and-create step with the hook chain: a BeforeResolve error
// aborts the resolution before anything is created, an AfterResolve error
// replaces its outcome.
func resolveKey(r Resolver, reg *registry, hooks *hookChain, key bindingKey, args Args) (any, error) {
	if err := hooks.beforeResolve(key.String()); err != nil {
		return nil, err
	}

	start := time.Now()
	value, err := createKey(r, reg, key, args)

	if hookErr := hooks.afterResolve(key.String(), value, err, time.Since(start)); hookErr != nil {
		return nil, hookErr
	}

	return value, err
}

// createKey looks up the binding at key and asks it for a value. r is the
// resolver handed to the producer, so nested resolutions inside producers go
// through the caller's registry view and hook chain.
func createKey(r Resolver, reg *registry, key bindingKey, args Args) (any, error) {
	bnd, ok := reg.get(key)
	if !ok {
		return nil, ErrBindingNotFound(key.typeName(), key.qualifier)
	}

	return bnd.create(r, args)
}

// checkKey reports binding existence as an error so that callers that fail
// fast (provider creation, HasNamed) surface the same message as resolution.
func checkKey(reg *registry, key bindingKey) error {
	if _, ok := reg.get(key); !ok {
		return ErrBindingNotFound(key.typeName(), key.qualifier)
	}

	return nil
}

// Instance resolves the default-bucket binding for T from r, which may be a
// Module or the Builder inside a declaration block. args are passed through
// to the producer positionally; see Arg and ArgOf for extracting them.
//
// Example:
//
//	cache, err := loom.Instance[*Cache](m, 1024)
//	if err != nil {
//	    return err
//	}
func Instance[T any](r Resolver, args ...any) (T, error) {
	return InstanceNamed[T](r, Qualifier{}, args...)
}

// InstanceNamed resolves the binding for T under the given qualifier.
// A missing binding and a binding that produced a value of the wrong type
// report the same error: in both cases no usable T exists at the key.
func InstanceNamed[T any](r Resolver, q Qualifier, args ...any) (T, error) {
	var zero T

	value, err := r.ResolveKey(typeOf[T](), q, args...)
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, ErrTypeMismatch(typeOf[T]().String(), q.Name(), value)
	}

	return typed, nil
}

// MustInstance is Instance that panics on error. Intended for wiring code
// where a missing binding is a programming error.
func MustInstance[T any](r Resolver, args ...any) T {
	return MustInstanceNamed[T](r, Qualifier{}, args...)
}

// MustInstanceNamed is InstanceNamed that panics on error.
func MustInstanceNamed[T any](r Resolver, q Qualifier, args ...any) T {
	value, err := InstanceNamed[T](r, q, args...)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", keyString(typeOf[T]().String(), q.Name()), err))
	}

	return value
}

// Has reports whether r has a binding for T in the default bucket. On a
// Module this forces the build; a module whose build failed has nothing.
func Has[T any](r Resolver) bool {
	return HasNamed[T](r, Qualifier{})
}

// HasNamed reports whether r has a binding for T under the given qualifier.
func HasNamed[T any](r Resolver, q Qualifier) bool {
	return r.CheckKey(typeOf[T](), q) == nil
}

// ResolveLogger resolves the conventionally bound logger: a logger.Logger
// binding in the default bucket.
func ResolveLogger(r Resolver) (logger.Logger, error) {
	return Instance[logger.Logger](r)
}

// ResolveMetrics resolves the conventionally bound metrics.Metrics binding
// from the default bucket.
func ResolveMetrics(r Resolver) (metrics.Metrics, error) {
	return Instance[metrics.Metrics](r)
}
