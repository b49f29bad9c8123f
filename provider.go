package loom

import (
	"fmt"
	"slices"
	"sync"
)

// Provider wraps a binding that is resolved anew on each access. This is
// useful for breaking construction cycles between singletons and for
// handing factories to code that should mint instances on demand without
// seeing the resolver itself.
//
// Creating a provider checks that the binding exists, so a misspelled
// qualifier fails at wiring time; construction is deferred entirely to Get.
type Provider[T any] struct {
	r    Resolver
	q    Qualifier
	args Args
}

// ProviderOf creates a provider for the default-bucket binding of T.
// The args are captured now and passed to the producer on every Get.
//
// Example:
//
//	loom.Singleton(b, func(r loom.Resolver, args loom.Args) (*Dispatcher, error) {
//	    workers, err := loom.ProviderOf[*Worker](r)
//	    if err != nil {
//	        return nil, err
//	    }
//
//	    return NewDispatcher(workers.MustGet, workers.MustGet), nil
//	})
func ProviderOf[T any](r Resolver, args ...any) (*Provider[T], error) {
	return ProviderNamed[T](r, Qualifier{}, args...)
}

// ProviderNamed creates a provider for the binding of T under the given
// qualifier. Fails with binding-not-found if no such binding exists.
func ProviderNamed[T any](r Resolver, q Qualifier, args ...any) (*Provider[T], error) {
	if err := r.CheckKey(typeOf[T](), q); err != nil {
		return nil, err
	}

	return &Provider[T]{r: r, q: q, args: slices.Clone(args)}, nil
}

// Get resolves and returns the value. Each call goes through the full
// resolution path: a factory binding yields a fresh instance per call, a
// singleton binding the shared cached one.
func (p *Provider[T]) Get() (T, error) {
	return InstanceNamed[T](p.r, p.q, p.args...)
}

// MustGet resolves and returns the value, panicking on error.
func (p *Provider[T]) MustGet() T {
	value, err := p.Get()
	if err != nil {
		panic(fmt.Sprintf("provider %s failed: %v", p.Key(), err))
	}

	return value
}

// Key returns the binding key this provider resolves.
func (p *Provider[T]) Key() string {
	return keyString(typeOf[T]().String(), p.q.Name())
}

// Lazy wraps a binding that is resolved on first access and cached from then
// on, including the error outcome. Unlike a singleton binding, which caches
// per module, a Lazy caches per handle: two Lazy values over the same factory
// binding resolve independently.
type Lazy[T any] struct {
	r    Resolver
	q    Qualifier
	args Args

	mu       sync.Once
	value    T
	err      error
	resolved bool
}

// LazyOf creates a lazy handle for the default-bucket binding of T.
// Like ProviderOf it checks that the binding exists; resolution itself is
// deferred to the first Get.
func LazyOf[T any](r Resolver, args ...any) (*Lazy[T], error) {
	return LazyNamed[T](r, Qualifier{}, args...)
}

// LazyNamed creates a lazy handle for the binding of T under the given
// qualifier.
func LazyNamed[T any](r Resolver, q Qualifier, args ...any) (*Lazy[T], error) {
	if err := r.CheckKey(typeOf[T](), q); err != nil {
		return nil, err
	}

	return &Lazy[T]{r: r, q: q, args: slices.Clone(args)}, nil
}

// Get resolves the value on the first call and returns the cached outcome on
// every call after that.
func (l *Lazy[T]) Get() (T, error) {
	l.mu.Do(func() {
		value, err := InstanceNamed[T](l.r, l.q, l.args...)
		if err != nil {
			l.err = err

			return
		}

		l.value = value
		l.resolved = true
	})

	return l.value, l.err
}

// MustGet resolves the value, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy %s failed: %v", l.Key(), err))
	}

	return value
}

// IsResolved returns true once the value has been resolved successfully.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved
}

// Key returns the binding key this handle resolves.
func (l *Lazy[T]) Key() string {
	return keyString(typeOf[T]().String(), l.q.Name())
}
