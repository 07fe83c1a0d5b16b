package manifold

import (
	"fmt"
	"testing"

	"github.com/cottand/manifold/merr"
	"github.com/cottand/manifold/registry"
	"github.com/cottand/manifold/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoRegistry() *registry.Registry {
	return registry.New(types.GoOracle{})
}

func TestRegisterDispatchesOnGoTypes(t *testing.T) {
	reg := newGoRegistry()

	add, err := Register(reg, "add", func(a, b int) int { return a + b })
	require.NoError(t, err)
	_, err = Register(reg, "add", func(a, b float64) float64 { return a - b })
	require.NoError(t, err)

	out, err := add.Call(3, 4)
	assert.NoError(t, err)
	assert.Equal(t, 7, out)

	out, err = add.Call(3.0, 4.0)
	assert.NoError(t, err)
	assert.Equal(t, -1.0, out)

	_, err = add.Call(3, 4.0)
	assert.True(t, merr.IsNoMatch(err), "mixed tuple matches nothing: %v", err)
}

type shape interface{ area() float64 }

type circle struct{ r float64 }

func (c circle) area() float64 { return 3 * c.r * c.r }

type square struct{ side float64 }

func (s square) area() float64 { return s.side * s.side }

func TestRegisterInterfaceSpecificity(t *testing.T) {
	reg := newGoRegistry()

	describe, err := Register(reg, "describe", func(s shape) string {
		return fmt.Sprintf("some shape of area %.0f", s.area())
	})
	require.NoError(t, err)
	_, err = Register(reg, "describe", func(c circle) string {
		return fmt.Sprintf("a circle of radius %.0f", c.r)
	})
	require.NoError(t, err)

	out, err := describe.Call(circle{r: 2})
	assert.NoError(t, err)
	assert.Equal(t, "a circle of radius 2", out)

	out, err = describe.Call(square{side: 3})
	assert.NoError(t, err)
	assert.Equal(t, "some shape of area 9", out)
}

func TestRegisterReturnShapes(t *testing.T) {
	reg := newGoRegistry()
	boom := fmt.Errorf("boom")

	t.Run("no returns", func(t *testing.T) {
		called := false
		d, err := Register(reg, "sideEffect", func(n int) { called = true })
		require.NoError(t, err)
		out, err := d.Call(1)
		assert.NoError(t, err)
		assert.Nil(t, out)
		assert.True(t, called)
	})

	t.Run("error only", func(t *testing.T) {
		d, err := Register(reg, "errOnly", func(n int) error { return boom })
		require.NoError(t, err)
		_, err = d.Call(1)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("value and error", func(t *testing.T) {
		d, err := Register(reg, "both", func(n int) (int, error) {
			if n < 0 {
				return 0, boom
			}
			return n * 2, nil
		})
		require.NoError(t, err)

		out, err := d.Call(2)
		assert.NoError(t, err)
		assert.Equal(t, 4, out)

		_, err = d.Call(-1)
		assert.ErrorIs(t, err, boom)
	})
}

func TestRegisterRejectsNonFunctions(t *testing.T) {
	reg := newGoRegistry()

	_, err := Register(reg, "f", 42)
	assert.Error(t, err)

	_, err = Register(reg, "f", func(ns ...int) {})
	assert.Error(t, err, "variadic funcs cannot be dispatched on")

	_, err = Register(reg, "f", func() (int, string) { return 0, "" })
	assert.Error(t, err, "second return must be error")
}

func TestMustRegisterPanics(t *testing.T) {
	reg := newGoRegistry()
	assert.Panics(t, func() { MustRegister(reg, "f", "not a func") })
	assert.NotPanics(t, func() { MustRegister(reg, "f", func(n int) int { return n }) })
}

type counter struct{ n int }

func TestMethodDispatch(t *testing.T) {
	m := NewMethod("bump", types.GoOracle{})

	require.NoError(t, AddMethod(m, func(c *counter, by int) int {
		c.n += by
		return c.n
	}))
	require.NoError(t, AddMethod(m, func(c *counter, by float64) int {
		c.n += int(by * 10)
		return c.n
	}))

	c := &counter{}
	out, err := m.Call(c, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, out)

	out, err = m.Call(c, 0.5)
	assert.NoError(t, err)
	assert.Equal(t, 7, out)

	assert.Error(t, AddMethod(m, func() {}), "a method needs a receiver parameter")
}

func TestDefaultRegistryIsSharedAndIsolated(t *testing.T) {
	assert.Same(t, Default(), Default())

	isolated := newGoRegistry()
	_, err := Register(isolated, "onlyHere", func(n int) int { return n })
	require.NoError(t, err)

	var count int
	for range Default().Signatures("onlyHere") {
		count++
	}
	assert.Equal(t, 0, count, "isolated registries never leak into the default one")
}

func TestRegisterNilArgumentForInterfaceParam(t *testing.T) {
	reg := newGoRegistry()
	d, err := Register(reg, "read", func(s shape) string {
		if s == nil {
			return "nothing"
		}
		return "something"
	})
	require.NoError(t, err)

	// untyped nil cannot be dispatched on: there is no runtime type to rank
	_, err = d.Call(nil)
	assert.Error(t, err)
}
