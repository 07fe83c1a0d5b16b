package types

import (
	"strings"
)

// Tuple is the ordered sequence of type descriptors attached to one
// registered implementation, or observed at one call site.
type Tuple []Type

func TupleOf(ts ...Type) Tuple { return Tuple(ts) }

func (t Tuple) Arity() int { return len(t) }

// Equal is structural: same arity, same descriptor names in the same order.
// Descriptors are assumed to come from a single oracle, where TypeName is
// canonical.
func (t Tuple) Equal(other Tuple) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i].TypeName() != other[i].TypeName() {
			return false
		}
	}
	return true
}

// Key is the canonical rendering of the tuple, usable as a cache map key.
func (t Tuple) Key() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, ty := range t {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(ty.TypeName())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (t Tuple) String() string { return t.Key() }

func (t Tuple) Hash() uint64 {
	h := uint64(33533)
	for _, ty := range t {
		h = 31*h ^ ty.Hash()
	}
	return h
}

// TupleLeq reports whether a is at least as specific as b: arities match and
// every position of a is a subtype of (or equal to) the same position of b.
// This is a partial order; incomparability is expected and meaningful.
func TupleLeq(o Oracle, a, b Tuple) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !o.Subtype(a[i], b[i]) {
			return false
		}
	}
	return true
}

// TupleLt reports strict domination: a is more specific than b and b is not
// as specific as a.
func TupleLt(o Oracle, a, b Tuple) bool {
	return TupleLeq(o, a, b) && !TupleLeq(o, b, a)
}
