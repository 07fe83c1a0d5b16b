package types

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoOracleSubtype(t *testing.T) {
	o := GoOracle{}

	testCases := []struct {
		name       string
		sub, super Type
		want       bool
	}{
		{
			name: "identical concrete types",
			sub:  For[int](), super: For[int](),
			want: true,
		},
		{
			name: "concrete type implements interface",
			sub:  For[*strings.Reader](), super: For[io.Reader](),
			want: true,
		},
		{
			name: "interface does not subtype a concrete type",
			sub:  For[io.Reader](), super: For[*strings.Reader](),
			want: false,
		},
		{
			name: "narrower interface satisfies wider one",
			sub:  For[io.ReadWriter](), super: For[io.Reader](),
			want: true,
		},
		{
			name: "unrelated concrete types",
			sub:  For[int](), super: For[string](),
			want: false,
		},
		{
			name: "anything is a subtype of Any",
			sub:  For[int](), super: Any,
			want: true,
		},
		{
			name: "Any is only a subtype of Any",
			sub:  Any, super: For[int](),
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, o.Subtype(tc.sub, tc.super))
		})
	}
}

func TestGoOracleTypeOf(t *testing.T) {
	o := GoOracle{}

	ty, err := o.TypeOf(42)
	assert.NoError(t, err)
	assert.Equal(t, "int", ty.TypeName())

	_, err = o.TypeOf(nil)
	assert.Error(t, err, "untyped nil has no dispatch type")
}

func TestGoOracleValidate(t *testing.T) {
	o := GoOracle{}

	assert.NoError(t, o.Validate(For[io.Reader]()))
	assert.NoError(t, o.Validate(Any))
	assert.Error(t, o.Validate(GoType(nil)))
	assert.Error(t, o.Validate(NewNamed("Circle")), "lattice descriptors are foreign to this oracle")
}
