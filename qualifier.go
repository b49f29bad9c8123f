package loom

import (
	"fmt"
	"reflect"
)

// Qualifier discriminates between multiple bindings of the same type.
// It is an immutable value object wrapping a single string; two qualifiers
// are equal iff their strings are equal. The zero Qualifier is the default
// bucket, shared with Named(""): a binding declared without a qualifier and
// a binding declared with Named("x") occupy independent keys, so binding one
// never satisfies a lookup for the other.
//
// Example:
//
//	FactoryNamed(b, loom.Named("primary"), newPrimaryDB)
//	FactoryNamed(b, loom.Named("replica"), newReplicaDB)
//
//	db, err := loom.InstanceNamed[*DB](m, loom.Named("replica"))
type Qualifier struct {
	name string
}

// Named creates a qualifier from a string. Named("") is the default bucket.
func Named(name string) Qualifier {
	return Qualifier{name: name}
}

// Name returns the qualifier string. Empty for the default bucket.
func (q Qualifier) Name() string {
	return q.name
}

// IsDefault reports whether this is the default (unqualified) bucket.
func (q Qualifier) IsDefault() bool {
	return q.name == ""
}

// String implements fmt.Stringer.
func (q Qualifier) String() string {
	if q.name == "" {
		return "<default>"
	}

	return q.name
}

// bindingKey uniquely identifies a binding by its type and qualifier.
// Keys are comparable by value so they can serve as map keys; the type
// half is a reflect.Type token, which is canonical per type.
type bindingKey struct {
	typ       reflect.Type
	qualifier string
}

func newBindingKey(typ reflect.Type, q Qualifier) bindingKey {
	return bindingKey{typ: typ, qualifier: q.name}
}

// String returns a human-readable representation of the binding key,
// matching the format used in error messages and diagnostics.
func (k bindingKey) String() string {
	return keyString(k.typeName(), k.qualifier)
}

func (k bindingKey) typeName() string {
	if k.typ == nil {
		return "<nil>"
	}

	return k.typ.String()
}

// keyString formats a (type, qualifier) pair. The default bucket renders as
// the bare type name.
func keyString(typeName, qualifier string) string {
	if qualifier == "" {
		return typeName
	}

	return fmt.Sprintf("%s[qualifier=%s]", typeName, qualifier)
}

// typeOf returns the reflect.Type token for T. Unlike reflect.TypeOf on a
// value, it works for interface types: typeOf[io.Reader]() is the interface
// type itself, not nil.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
