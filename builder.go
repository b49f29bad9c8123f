package loom

import "reflect"

// Builder is the mutable declaration context handed to Declaration blocks
// while a module is being built. Bindings are registered through the generic
// entry points Factory, Singleton and Value (and their qualified variants);
// already-declared bindings, including everything inherited from parent
// modules, can be resolved through the same Instance entry points that work
// on a finished Module.
//
// Resolution through a Builder sees the registry as declared so far: a later
// binding's producer may pull an earlier binding, but a forward reference to
// a binding declared further down the block fails with binding-not-found.
type Builder struct {
	registry *registry
	hooks    *hookChain
}

func newBuilder(hooks *hookChain) *Builder {
	return &Builder{
		registry: newRegistry(),
		hooks:    hooks,
	}
}

// ResolveKey implements Resolver against the in-progress registry.
func (b *Builder) ResolveKey(typ reflect.Type, q Qualifier, args ...any) (any, error) {
	return resolveKey(b, b.registry, b.hooks, newBindingKey(typ, q), args)
}

// CheckKey implements Resolver against the in-progress registry.
func (b *Builder) CheckKey(typ reflect.Type, q Qualifier) error {
	return checkKey(b.registry, newBindingKey(typ, q))
}

// register stores a binding, overwriting any previous binding at the key.
func (b *Builder) register(typ reflect.Type, q Qualifier, bnd binding) {
	b.registry.put(newBindingKey(typ, q), bnd)
}

// Factory registers a binding for T in the default bucket whose producer
// runs fresh on every resolution.
//
// Example:
//
//	loom.NewModule(func(b *loom.Builder) error {
//	    loom.Factory(b, func(r loom.Resolver, args loom.Args) (*Session, error) {
//	        return NewSession(), nil
//	    })
//
//	    return nil
//	})
func Factory[T any](b *Builder, produce Producer[T]) {
	FactoryNamed(b, Qualifier{}, produce)
}

// FactoryNamed registers a factory binding for T under the given qualifier.
// Panics with ErrNilProducer if produce is nil.
func FactoryNamed[T any](b *Builder, q Qualifier, produce Producer[T]) {
	if produce == nil {
		panic(ErrNilProducer)
	}

	b.register(typeOf[T](), q, &factoryBinding{produce: untypedProducer(produce)})
}

// Singleton registers a binding for T in the default bucket whose producer
// runs at most once; the first result, value or error, is cached and shared
// by all subsequent resolutions. Construction is safe under concurrent first
// access: exactly one caller runs the producer, the rest wait for its result.
func Singleton[T any](b *Builder, produce Producer[T]) {
	SingletonNamed(b, Qualifier{}, produce)
}

// SingletonNamed registers a singleton binding for T under the given
// qualifier. Panics with ErrNilProducer if produce is nil.
func SingletonNamed[T any](b *Builder, q Qualifier, produce Producer[T]) {
	if produce == nil {
		panic(ErrNilProducer)
	}

	b.register(typeOf[T](), q, &singletonBinding{produce: untypedProducer(produce)})
}

// Value registers a pre-built instance for T in the default bucket. Every
// resolution returns the same value.
func Value[T any](b *Builder, value T) {
	ValueNamed(b, Qualifier{}, value)
}

// ValueNamed registers a pre-built instance for T under the given qualifier.
func ValueNamed[T any](b *Builder, q Qualifier, value T) {
	b.register(typeOf[T](), q, &valueBinding{value: value})
}
