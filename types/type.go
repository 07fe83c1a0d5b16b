package types

import (
	"reflect"
)

// Type is a dispatch type descriptor: the declared type of one positional
// parameter, or the concrete runtime type of one argument.
// Descriptors are compared by an Oracle, never directly.
type Type interface {
	TypeName() string
	Hash() uint64
}

// Typed lets host values carry their own dispatch type, for oracles
// (like Lattice) that do not derive types from Go's runtime.
type Typed interface {
	DispatchType() Type
}

// Any is the wildcard descriptor: every type is a subtype of Any.
var Any Type = anyType{}

type anyType struct{}

func (anyType) TypeName() string { return "_" }
func (anyType) Hash() uint64     { return hashString("_") }

// Named is a type known only by name, belonging to some Lattice.
type Named struct {
	name string
}

func NewNamed(name string) Named { return Named{name: name} }

func (n Named) TypeName() string { return n.name }
func (n Named) Hash() uint64     { return hashString(n.name) }

// goType wraps a reflect.Type so Go values can be dispatched on directly.
type goType struct {
	rt reflect.Type
}

// GoType wraps rt as a dispatch descriptor. A nil rt is rejected by
// GoOracle.Validate at registration time rather than here.
func GoType(rt reflect.Type) Type { return goType{rt: rt} }

// For is the declared-type helper for Go dispatch: For[Shape]() denotes the
// interface type Shape itself, not the dynamic type of some value.
func For[T any]() Type {
	return goType{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

func (g goType) TypeName() string {
	if g.rt == nil {
		return "<nil>"
	}
	return g.rt.String()
}

func (g goType) Hash() uint64 { return hashString(g.TypeName()) }

// Runtime exposes the underlying reflect.Type, or nil for non-Go descriptors.
func Runtime(t Type) reflect.Type {
	if g, ok := t.(goType); ok {
		return g.rt
	}
	return nil
}

func hashString(s string) uint64 {
	// FNV-1a
	h := uint64(14695981039346656037)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}
