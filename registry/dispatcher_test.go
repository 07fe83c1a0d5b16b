package registry

import (
	"fmt"
	"testing"

	"github.com/cottand/manifold/merr"
	"github.com/cottand/manifold/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// value tags arbitrary data with a lattice type for dispatching
type value struct {
	typeName string
	data     any
}

func (v value) DispatchType() types.Type { return types.NewNamed(v.typeName) }

func TestCallPassesArgumentsUnmodified(t *testing.T) {
	reg := New(testLattice(t))
	d, err := reg.Register("render", named("Circle", "Integer"), func(args ...any) (any, error) {
		return fmt.Sprintf("%v+%v", args[0].(value).data, args[1].(value).data), nil
	})
	require.NoError(t, err)

	out, err := d.Call(value{"Circle", "c"}, value{"Integer", 7})
	assert.NoError(t, err)
	assert.Equal(t, "c+7", out)
}

func TestCallPropagatesImplementationError(t *testing.T) {
	boom := fmt.Errorf("boom")
	reg := New(testLattice(t))
	d, err := reg.Register("explode", named("Shape"), func(args ...any) (any, error) {
		return nil, boom
	})
	require.NoError(t, err)

	_, err = d.Call(value{typeName: "Circle"})
	assert.ErrorIs(t, err, boom, "implementation errors pass through unchanged")
	assert.False(t, merr.IsNoMatch(err))
}

func TestCallNoMatchInvokesNothing(t *testing.T) {
	invoked := false
	reg := New(testLattice(t))
	d, err := reg.Register("f", named("Circle"), func(args ...any) (any, error) {
		invoked = true
		return nil, nil
	})
	require.NoError(t, err)

	_, err = d.Call(value{typeName: "Square"})
	assert.True(t, merr.IsNoMatch(err))
	assert.False(t, invoked)
}

func TestCallRejectsUntypeableArgument(t *testing.T) {
	reg := New(testLattice(t))
	d, err := reg.Register("f", named("Circle"), labelled("x"))
	require.NoError(t, err)

	_, err = d.Call("just a string")
	require.Error(t, err)
	var bad merr.NewBadTypeDescriptor
	assert.ErrorAs(t, err, &bad)
}

func TestMethodDispatcherExcludesReceiver(t *testing.T) {
	lattice := testLattice(t)
	m := NewMethod("describe", lattice)

	_, err := m.Add(named("Circle"), func(args ...any) (any, error) {
		// the receiver is still the first argument
		return fmt.Sprintf("%v sees circle", args[0].(value).data), nil
	})
	require.NoError(t, err)
	_, err = m.Add(named("Shape"), labelled("generic"))
	require.NoError(t, err)

	receiver := value{"Ordered", "self"} // receiver type takes no part in dispatch
	out, err := m.Call(receiver, value{typeName: "Circle"})
	assert.NoError(t, err)
	assert.Equal(t, "self sees circle", out)

	out, err = m.Call(receiver, value{typeName: "Square"})
	assert.NoError(t, err)
	assert.Equal(t, "generic", out)

	_, err = m.Call()
	assert.Error(t, err, "a method call needs at least its receiver")
}
