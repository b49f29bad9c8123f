package loom

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Module is an immutable collection of bindings assembled from declaration
// blocks. Construction is cheap: NewModule only records the declarations.
// They run exactly once, on the first resolution (or an explicit Build call),
// and the outcome — a published registry or the first declaration error — is
// cached for the lifetime of the module.
//
// A module never changes after NewModule returns. Composition happens at
// construction time through WithParents: the parents' declarations are
// replayed into this module's own registry ahead of its own block, so every
// module owns fresh binding state. In particular a singleton declared in a
// shared parent is built independently per module that inherits it.
type Module struct {
	decls []Declaration
	hooks *hookChain

	once     sync.Once
	registry *registry
	buildErr error
	built    atomic.Bool
}

// NewModule creates a module from a declaration block. The block does not run
// here; it runs on first use. Parent modules supplied via WithParents
// contribute their declarations first, in the order given, with this module's
// own block last, so the usual shadowing rules fall out of registration
// order: later parents shadow earlier ones, and the module's own bindings
// shadow everything inherited.
//
// Example:
//
//	base := loom.NewModule(func(b *loom.Builder) error {
//	    loom.Singleton(b, func(r loom.Resolver, args loom.Args) (*Config, error) {
//	        return LoadConfig()
//	    })
//
//	    return nil
//	})
//
//	app := loom.NewModule(func(b *loom.Builder) error {
//	    loom.Factory(b, func(r loom.Resolver, args loom.Args) (*Handler, error) {
//	        cfg, err := loom.Instance[*Config](r)
//	        if err != nil {
//	            return nil, err
//	        }
//
//	        return NewHandler(cfg), nil
//	    })
//
//	    return nil
//	}, loom.WithParents(base))
func NewModule(decl Declaration, opts ...Option) *Module {
	options := mergeOptions(opts)

	decls := make([]Declaration, 0, len(options.parents)+1)

	for _, parent := range options.parents {
		if parent == nil {
			continue
		}

		decls = append(decls, parent.decls...)
	}

	if decl != nil {
		decls = append(decls, decl)
	}

	return &Module{
		decls: decls,
		hooks: newHookChain(options.hooks),
	}
}

// Build runs the module's declarations now instead of on first resolution.
// Calling it is never required; it exists so startup code can fail fast.
// The result is cached: every later Build or resolution sees the same outcome.
func (m *Module) Build() error {
	return m.ensureBuilt()
}

// Built reports whether the one-time build has already run, successfully or
// not. It never triggers the build.
func (m *Module) Built() bool {
	return m.built.Load()
}

// ensureBuilt replays the declarations into a fresh registry exactly once.
// The sync.Once publish makes the finished registry safe for lock-free
// concurrent reads; a declaration error is cached and returned forever.
func (m *Module) ensureBuilt() error {
	m.once.Do(func() {
		b := newBuilder(m.hooks)

		for _, decl := range m.decls {
			if err := decl(b); err != nil {
				m.buildErr = err

				break
			}
		}

		if m.buildErr == nil {
			m.registry = b.registry
		}

		m.built.Store(true)
	})

	return m.buildErr
}

// ResolveKey implements Resolver. It builds the module if needed, then
// resolves the binding at (typ, q), passing args through to the producer.
func (m *Module) ResolveKey(typ reflect.Type, q Qualifier, args ...any) (any, error) {
	if err := m.ensureBuilt(); err != nil {
		return nil, err
	}

	return resolveKey(m, m.registry, m.hooks, newBindingKey(typ, q), args)
}

// CheckKey implements Resolver. It builds the module if needed and reports
// whether a binding exists at (typ, q) without creating anything.
func (m *Module) CheckKey(typ reflect.Type, q Qualifier) error {
	if err := m.ensureBuilt(); err != nil {
		return err
	}

	return checkKey(m.registry, newBindingKey(typ, q))
}
