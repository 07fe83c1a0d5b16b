package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLattice(t *testing.T) *Lattice {
	t.Helper()
	l := NewLattice()
	decls := []struct {
		name    string
		extends []string
	}{
		{"Shape", nil},
		{"Circle", []string{"Shape"}},
		{"Square", []string{"Shape"}},
		{"Numeric", nil},
		{"Ordered", nil},
		{"Integer", []string{"Numeric", "Ordered"}},
		{"Float", []string{"Numeric"}},
	}
	for _, d := range decls {
		_, err := l.Declare(d.name, d.extends...)
		require.NoError(t, err)
	}
	return l
}

func named(names ...string) Tuple {
	tuple := make(Tuple, len(names))
	for i, n := range names {
		if n == "_" {
			tuple[i] = Any
			continue
		}
		tuple[i] = NewNamed(n)
	}
	return tuple
}

func TestTupleLeq(t *testing.T) {
	lattice := testLattice(t)

	testCases := []struct {
		name string
		a, b Tuple
		leq  bool
	}{
		{
			name: "equal tuples are comparable both ways",
			a:    named("Circle", "Integer"),
			b:    named("Circle", "Integer"),
			leq:  true,
		},
		{
			name: "pointwise subtype holds",
			a:    named("Circle", "Integer"),
			b:    named("Shape", "Numeric"),
			leq:  true,
		},
		{
			name: "one failing position fails the tuple",
			a:    named("Circle", "Float"),
			b:    named("Shape", "Ordered"),
			leq:  false,
		},
		{
			name: "different arity is incomparable",
			a:    named("Circle"),
			b:    named("Circle", "Circle"),
			leq:  false,
		},
		{
			name: "wildcard accepts anything",
			a:    named("Circle", "Integer"),
			b:    named("_", "_"),
			leq:  true,
		},
		{
			name: "wildcard is less specific than a named type",
			a:    named("_"),
			b:    named("Shape"),
			leq:  false,
		},
		{
			name: "siblings are incomparable",
			a:    named("Circle"),
			b:    named("Square"),
			leq:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.leq, TupleLeq(lattice, tc.a, tc.b))
		})
	}
}

func TestTupleLtIsStrict(t *testing.T) {
	lattice := testLattice(t)

	assert.True(t, TupleLt(lattice, named("Circle"), named("Shape")))
	assert.False(t, TupleLt(lattice, named("Shape"), named("Circle")))
	assert.False(t, TupleLt(lattice, named("Circle"), named("Circle")), "equal tuples do not strictly dominate")
	assert.False(t, TupleLt(lattice, named("Circle"), named("Square")), "incomparable tuples do not strictly dominate")
}

func TestTupleEqualityIsStructural(t *testing.T) {
	assert.True(t, named("Circle", "Integer").Equal(named("Circle", "Integer")))
	assert.False(t, named("Circle", "Integer").Equal(named("Integer", "Circle")), "order matters")
	assert.False(t, named("Circle").Equal(named("Circle", "Circle")))
	assert.Equal(t, named("Circle", "Integer").Hash(), named("Circle", "Integer").Hash())
	assert.NotEqual(t, named("Circle", "Integer").Hash(), named("Integer", "Circle").Hash(),
		"hash is order sensitive")
}

func TestTupleKey(t *testing.T) {
	assert.Equal(t, "(Circle, Integer)", named("Circle", "Integer").Key())
	assert.Equal(t, "()", Tuple{}.Key())
	assert.Equal(t, "(_)", named("_").Key())
}

func TestTupleAntisymmetry(t *testing.T) {
	lattice := testLattice(t)
	// mutual Leq implies structural equality for lattice tuples
	tuples := []Tuple{
		named("Shape"), named("Circle"), named("Square"),
		named("Shape", "Shape"), named("Circle", "Square"),
	}
	for _, a := range tuples {
		for _, b := range tuples {
			if TupleLeq(lattice, a, b) && TupleLeq(lattice, b, a) {
				assert.True(t, a.Equal(b), "%s and %s are mutually leq but not equal", a, b)
			}
		}
	}
}
