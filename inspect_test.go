package loom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inspectTestModule() *Module {
	return NewModule(func(b *Builder) error {
		Factory(b, func(r Resolver, args Args) (*mockService, error) {
			return &mockService{name: "f"}, nil
		})

		FactoryNamed(b, Named("aux"), func(r Resolver, args Args) (*mockService, error) {
			return &mockService{name: "aux"}, nil
		})

		Singleton(b, func(r Resolver, args Args) (string, error) {
			return "s", nil
		})

		Value(b, 42)

		return nil
	})
}

func TestModule_Bindings(t *testing.T) {
	m := inspectTestModule()

	infos, err := m.Bindings()
	require.NoError(t, err)
	require.Len(t, infos, 4)

	// Declaration order is preserved
	assert.Equal(t, "*loom.mockService", infos[0].Key)
	assert.Equal(t, "factory", infos[0].Kind)
	assert.False(t, infos[0].Cached)

	assert.Equal(t, "*loom.mockService[qualifier=aux]", infos[1].Key)
	assert.Equal(t, "aux", infos[1].Qualifier)

	assert.Equal(t, "string", infos[2].Key)
	assert.Equal(t, "singleton", infos[2].Kind)

	assert.Equal(t, "int", infos[3].Key)
	assert.Equal(t, "value", infos[3].Kind)
	assert.True(t, infos[3].Cached)
}

func TestBindings_BuildError(t *testing.T) {
	declErr := errors.New("broken")

	m := NewModule(func(b *Builder) error {
		return declErr
	})

	_, err := m.Bindings()
	assert.ErrorIs(t, err, declErr)
}

func TestInspect(t *testing.T) {
	m := inspectTestModule()

	info, err := Inspect[string](m)
	require.NoError(t, err)
	assert.Equal(t, "string", info.Type)
	assert.Equal(t, "singleton", info.Kind)
	assert.Equal(t, "", info.Qualifier)
}

func TestInspectNamed(t *testing.T) {
	m := inspectTestModule()

	info, err := InspectNamed[*mockService](m, Named("aux"))
	require.NoError(t, err)
	assert.Equal(t, "factory", info.Kind)
	assert.Equal(t, "aux", info.Qualifier)
}

func TestInspectNamed_NotFound(t *testing.T) {
	m := inspectTestModule()

	_, err := InspectNamed[*mockService](m, Named("missing"))
	assert.ErrorIs(t, err, ErrBindingNotFoundSentinel)
}

func TestInspect_SingletonCachedFlag(t *testing.T) {
	m := inspectTestModule()

	info, err := Inspect[string](m)
	require.NoError(t, err)
	assert.False(t, info.Cached)

	MustInstance[string](m)

	// The flag flips once the cell holds its value
	info, err = Inspect[string](m)
	require.NoError(t, err)
	assert.True(t, info.Cached)
}

func TestQueryBindings_ByKind(t *testing.T) {
	m := inspectTestModule()

	factories, err := QueryBindings(m, BindingQuery{Kind: "factory"})
	require.NoError(t, err)
	assert.Len(t, factories, 2)
}

func TestQueryBindings_ByQualifier(t *testing.T) {
	m := inspectTestModule()

	aux := Named("aux")

	infos, err := QueryBindings(m, BindingQuery{Qualifier: &aux})
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "*loom.mockService[qualifier=aux]", infos[0].Key)

	def := Qualifier{}

	infos, err = QueryBindings(m, BindingQuery{Qualifier: &def})
	require.NoError(t, err)
	assert.Len(t, infos, 3)
}

func TestQueryBindings_Combined(t *testing.T) {
	m := inspectTestModule()

	def := Qualifier{}

	infos, err := QueryBindings(m, BindingQuery{Kind: "factory", Qualifier: &def})
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "*loom.mockService", infos[0].Key)
}

func TestFindByKind(t *testing.T) {
	m := inspectTestModule()

	values, err := FindByKind(m, "value")
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "int", values[0].Key)
}

func TestFindCached(t *testing.T) {
	m := inspectTestModule()

	// Before any resolution only the value binding holds an instance
	infos, err := FindCached(m)
	require.NoError(t, err)
	assert.Len(t, infos, 1)

	MustInstance[string](m)

	infos, err = FindCached(m)
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}
