package loom

import "sync"

// binding is a registered capability to produce values for one key.
type binding interface {
	// create produces a value, passing r and args to the producer as needed.
	create(r Resolver, args Args) (any, error)

	// kind returns the binding kind for diagnostics: "factory", "singleton"
	// or "value".
	kind() string

	// cached reports whether the binding already holds a produced value.
	cached() bool
}

// untypedProducer adapts a typed Producer to the binding layer.
func untypedProducer[T any](produce Producer[T]) func(Resolver, Args) (any, error) {
	return func(r Resolver, args Args) (any, error) {
		return produce(r, args)
	}
}

// factoryBinding invokes its producer fresh on every create call.
// It holds no state, so concurrent create calls need no coordination.
type factoryBinding struct {
	produce func(Resolver, Args) (any, error)
}

func (b *factoryBinding) create(r Resolver, args Args) (any, error) {
	return b.produce(r, args)
}

func (b *factoryBinding) kind() string {
	return "factory"
}

func (b *factoryBinding) cached() bool {
	return false
}

// singletonBinding invokes its producer at most once and caches the result,
// value or error. Arguments passed to create calls after the first are
// ignored. The producer runs while the cell's write lock is held, so a
// producer that resolves its own key deadlocks; defer such cycles through
// ProviderOf or LazyOf instead.
type singletonBinding struct {
	produce func(Resolver, Args) (any, error)
	mu      sync.RWMutex
	value   any
	err     error
	done    bool
}

func (b *singletonBinding) create(r Resolver, args Args) (any, error) {
	// Fast path: already produced (read lock)
	b.mu.RLock()

	if b.done {
		value, err := b.value, b.err
		b.mu.RUnlock()

		return value, err
	}
	b.mu.RUnlock()

	// Slow path: produce under the write lock
	b.mu.Lock()
	defer b.mu.Unlock()

	// Double-check after acquiring write lock
	if b.done {
		return b.value, b.err
	}

	b.value, b.err = b.produce(r, args)
	b.done = true

	return b.value, b.err
}

func (b *singletonBinding) kind() string {
	return "singleton"
}

func (b *singletonBinding) cached() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.done
}

// valueBinding wraps a pre-built instance. Every create call returns the
// same value.
type valueBinding struct {
	value any
}

func (b *valueBinding) create(Resolver, Args) (any, error) {
	return b.value, nil
}

func (b *valueBinding) kind() string {
	return "value"
}

func (b *valueBinding) cached() bool {
	return true
}
