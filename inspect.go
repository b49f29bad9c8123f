package loom

// BindingInfo describes one binding in a built module.
type BindingInfo struct {
	// Key is the formatted (type, qualifier) key, as it appears in error
	// messages.
	Key string

	// Type is the bound type's name.
	Type string

	// Qualifier is the qualifier string. Empty for the default bucket.
	Qualifier string

	// Kind reports how the binding constructs values: "factory", "singleton"
	// or "value".
	Kind string

	// Cached reports whether the binding reuses one constructed value.
	Cached bool
}

func newBindingInfo(key bindingKey, bnd binding) BindingInfo {
	return BindingInfo{
		Key:       key.String(),
		Type:      key.typeName(),
		Qualifier: key.qualifier,
		Kind:      bnd.kind(),
		Cached:    bnd.cached(),
	}
}

// Bindings returns information about every binding in the module, in
// declaration order (inherited bindings first). It forces the build.
func (m *Module) Bindings() ([]BindingInfo, error) {
	if err := m.ensureBuilt(); err != nil {
		return nil, err
	}

	keys := m.registry.keys()
	infos := make([]BindingInfo, 0, len(keys))

	for _, key := range keys {
		bnd, ok := m.registry.get(key)
		if !ok {
			continue
		}

		infos = append(infos, newBindingInfo(key, bnd))
	}

	return infos, nil
}

// Inspect returns information about the default-bucket binding for T.
func Inspect[T any](m *Module) (BindingInfo, error) {
	return InspectNamed[T](m, Qualifier{})
}

// InspectNamed returns information about the binding for T under the given
// qualifier. Reports binding-not-found if no such binding exists.
func InspectNamed[T any](m *Module, q Qualifier) (BindingInfo, error) {
	if err := m.ensureBuilt(); err != nil {
		return BindingInfo{}, err
	}

	key := newBindingKey(typeOf[T](), q)

	bnd, ok := m.registry.get(key)
	if !ok {
		return BindingInfo{}, ErrBindingNotFound(key.typeName(), key.qualifier)
	}

	return newBindingInfo(key, bnd), nil
}

// BindingQuery defines criteria for filtering a module's bindings.
type BindingQuery struct {
	// Kind filters by binding kind ("factory", "singleton", "value").
	// Empty string matches all kinds.
	Kind string

	// Qualifier filters by qualifier. nil matches all qualifiers.
	Qualifier *Qualifier

	// Cached filters by whether the binding reuses a constructed value.
	// nil matches both.
	Cached *bool
}

// QueryBindings returns the bindings matching the query criteria, in
// declaration order.
//
// Example:
//
//	// Find all singletons in the default bucket
//	q := loom.Named("")
//	infos, err := loom.QueryBindings(m, loom.BindingQuery{
//	    Kind:      "singleton",
//	    Qualifier: &q,
//	})
func QueryBindings(m *Module, query BindingQuery) ([]BindingInfo, error) {
	all, err := m.Bindings()
	if err != nil {
		return nil, err
	}

	var results []BindingInfo

	for _, info := range all {
		// Filter by kind
		if query.Kind != "" && info.Kind != query.Kind {
			continue
		}

		// Filter by qualifier
		if query.Qualifier != nil && info.Qualifier != query.Qualifier.Name() {
			continue
		}

		// Filter by cache behavior
		if query.Cached != nil && info.Cached != *query.Cached {
			continue
		}

		results = append(results, info)
	}

	return results, nil
}

// FindByKind returns all bindings of a specific kind.
func FindByKind(m *Module, kind string) ([]BindingInfo, error) {
	return QueryBindings(m, BindingQuery{Kind: kind})
}

// FindCached returns all bindings that reuse a constructed value, that is
// singleton and value bindings.
func FindCached(m *Module) ([]BindingInfo, error) {
	cached := true

	return QueryBindings(m, BindingQuery{Cached: &cached})
}
