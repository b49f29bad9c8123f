package loom

// registry maps binding keys to bindings and remembers insertion order so
// diagnostics can list bindings the way they were declared.
//
// A registry is populated on a single goroutine during one module build and
// is published through the module's once-guard, after which it is read-only.
// That publication is the happens-before edge that makes the map safe for
// concurrent readers; no lock is needed here. Singleton cells guard their
// own cache slots.
type registry struct {
	bindings map[bindingKey]binding
	order    []bindingKey
}

func newRegistry() *registry {
	return &registry{
		bindings: make(map[bindingKey]binding),
	}
}

// put stores a binding, unconditionally overwriting any previous binding at
// the same key. A rebound key keeps its original position in the declaration
// order.
func (r *registry) put(key bindingKey, b binding) {
	if _, exists := r.bindings[key]; !exists {
		r.order = append(r.order, key)
	}

	r.bindings[key] = b
}

// get returns the binding at key. Absence is not an error; callers decide
// how to react.
func (r *registry) get(key bindingKey) (binding, bool) {
	b, ok := r.bindings[key]

	return b, ok
}

// keys returns all binding keys in declaration order.
func (r *registry) keys() []bindingKey {
	return r.order
}

// size returns the number of bindings.
func (r *registry) size() int {
	return len(r.bindings)
}
