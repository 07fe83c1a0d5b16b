package types

import (
	"fmt"

	"github.com/cottand/manifold/util"
)

// Oracle is the host-supplied subtype relation the engine dispatches with.
//
// Subtype must be a strict partial order over descriptors, with Any as the
// top element. Validate is consulted once per descriptor at registration
// time; a descriptor that fails validation must never be admitted into a
// signature store. TypeOf derives the concrete dispatch type of a runtime
// value at a call site.
type Oracle interface {
	Subtype(sub, super Type) bool
	Validate(t Type) error
	TypeOf(v any) (Type, error)
}

// Lattice is an Oracle over explicitly declared named types with explicit
// supertype edges. Subtype queries run against the precomputed transitive
// closure, so they are a single map lookup.
type Lattice struct {
	declared util.MSet[string]
	// supers maps a type name to the set of all its strict supertypes
	supers map[string]util.MSet[string]
}

func NewLattice() *Lattice {
	return &Lattice{
		declared: util.NewEmptySet[string](),
		supers:   make(map[string]util.MSet[string]),
	}
}

// Declare adds a named type with the given direct supertypes, which must
// already be declared. Redeclaring a name is an error.
func (l *Lattice) Declare(name string, extends ...string) (Named, error) {
	if name == "" || name == Any.TypeName() {
		return Named{}, fmt.Errorf("type name %q is reserved", name)
	}
	if l.declared.Contains(name) {
		return Named{}, fmt.Errorf("type %q is already declared", name)
	}
	closure := util.NewEmptySet[string]()
	for _, super := range extends {
		if !l.declared.Contains(super) {
			return Named{}, fmt.Errorf("supertype %q of %q is not declared", super, name)
		}
		closure.Add(super)
		closure.Add(l.supers[super].AsSlice()...)
	}
	l.declared.Add(name)
	l.supers[name] = closure
	return NewNamed(name), nil
}

// Lookup resolves a type name to its descriptor. The wildcard "_" resolves
// to Any.
func (l *Lattice) Lookup(name string) (Type, error) {
	if name == Any.TypeName() {
		return Any, nil
	}
	if !l.declared.Contains(name) {
		return nil, fmt.Errorf("type %q is not declared in this lattice", name)
	}
	return NewNamed(name), nil
}

func (l *Lattice) Subtype(sub, super Type) bool {
	if _, isAny := super.(anyType); isAny {
		return true
	}
	if _, isAny := sub.(anyType); isAny {
		return false
	}
	if sub.TypeName() == super.TypeName() {
		return true
	}
	supers, ok := l.supers[sub.TypeName()]
	return ok && supers.Contains(super.TypeName())
}

func (l *Lattice) Validate(t Type) error {
	switch t.(type) {
	case anyType:
		return nil
	case Named:
		if !l.declared.Contains(t.TypeName()) {
			return fmt.Errorf("type %q is not declared in this lattice", t.TypeName())
		}
		return nil
	default:
		return fmt.Errorf("descriptor %q is not a named lattice type", t.TypeName())
	}
}

// TypeOf requires lattice-dispatched values to carry their own type via
// Typed; the lattice knows nothing about Go's runtime types.
func (l *Lattice) TypeOf(v any) (Type, error) {
	typed, ok := v.(Typed)
	if !ok {
		return nil, fmt.Errorf("value of type %T does not implement types.Typed", v)
	}
	t := typed.DispatchType()
	if err := l.Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}
