package loom

// Option configures a Module at construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	parents []*Module
	hooks   []Hook
}

// WithParents declares parent modules whose bindings the new module
// inherits. Parents are replayed in the order supplied, before the module's
// own declaration, so a later parent's binding overwrites an earlier
// parent's binding at the same key, and the module's own declaration
// overwrites both.
func WithParents(parents ...*Module) Option {
	return func(o *moduleOptions) {
		o.parents = append(o.parents, parents...)
	}
}

// WithHooks attaches resolution hooks to the module. Hooks run in the order
// given. They are not inherited by child modules.
func WithHooks(hooks ...Hook) Option {
	return func(o *moduleOptions) {
		o.hooks = append(o.hooks, hooks...)
	}
}

// mergeOptions combines multiple options.
func mergeOptions(opts []Option) *moduleOptions {
	merged := &moduleOptions{}

	for _, opt := range opts {
		if opt != nil {
			opt(merged)
		}
	}

	return merged
}
