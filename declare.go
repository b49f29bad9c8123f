package loom

// Declaration is a block of binding declarations evaluated against a Builder
// during a module build. Returning an error aborts the build; the module
// caches the error and returns it from every subsequent resolution.
//
// A declaration runs once per build of every module that includes it,
// directly or through parents, so it should register bindings and resolve
// already-declared ones but carry no state of its own between runs.
type Declaration func(b *Builder) error

// Declarations composes declaration blocks into a single Declaration that
// evaluates them in order, stopping at the first error. Nil blocks are
// skipped. This lets packages export reusable binding fragments that callers
// assemble into one module.
//
// Example:
//
//	var StoreBindings = loom.Declarations(
//	    repoBindings,
//	    cacheBindings,
//	)
//
//	m := loom.NewModule(loom.Declarations(StoreBindings, appBindings))
func Declarations(decls ...Declaration) Declaration {
	return func(b *Builder) error {
		for _, decl := range decls {
			if decl == nil {
				continue
			}

			if err := decl(b); err != nil {
				return err
			}
		}

		return nil
	}
}
