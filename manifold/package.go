// Package manifold is the registration surface for runtime multiple
// dispatch over Go values.
//
// A plain Go function's parameter list doubles as its declared type tuple:
//
//	r := registry.New(types.GoOracle{})
//	add, _ := manifold.Register(r, "add", func(a, b int) int { return a + b })
//	_, _ = manifold.Register(r, "add", func(a, b float64) float64 { return a + b })
//	out, err := add.Call(1, 2)
//
// Dispatch picks the most specific applicable signature from the runtime
// types of the actual arguments; interfaces act as supertypes of their
// implementations and types.Any matches everything.
package manifold

import (
	"reflect"
	"sync"

	"github.com/cottand/manifold/merr"
	"github.com/cottand/manifold/registry"
	"github.com/cottand/manifold/types"
)

var defaultRegistry = sync.OnceValue(func() *registry.Registry {
	return registry.New(types.GoOracle{})
})

// Default is the process-wide registry over Go runtime types, initialized
// on first use. Prefer isolated registry.New instances in tests and
// embedded engines.
func Default() *registry.Registry { return defaultRegistry() }

// Register derives the dispatch tuple from fn's parameter types and
// registers fn under name in r. fn must be a non-variadic func returning
// nothing, one value, an error, or a (value, error) pair.
func Register(r *registry.Registry, name string, fn any) (*registry.Dispatcher, error) {
	tuple, impl, err := reflectImpl(name, fn, 0)
	if err != nil {
		return nil, err
	}
	return r.Register(name, tuple, impl)
}

// MustRegister is Register, panicking on registration errors. Intended for
// package-level init of dispatch tables.
func MustRegister(r *registry.Registry, name string, fn any) *registry.Dispatcher {
	d, err := Register(r, name, fn)
	if err != nil {
		panic(err)
	}
	return d
}

// NewMethod builds a receiver-scoped dispatcher: the first parameter of
// every implementation is the receiver and does not take part in dispatch.
// Call this explicitly where the methods are defined; there is no implicit
// scope detection.
func NewMethod(name string, oracle types.Oracle, opts ...registry.Option) *registry.MethodDispatcher {
	return registry.NewMethod(name, oracle, opts...)
}

// AddMethod registers fn on a method dispatcher, deriving the dispatch
// tuple from every parameter after the receiver.
func AddMethod(m *registry.MethodDispatcher, fn any) error {
	tuple, impl, err := reflectImpl(m.Name(), fn, 1)
	if err != nil {
		return err
	}
	_, err = m.Add(tuple, impl)
	return err
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// reflectImpl adapts a plain Go func into a dispatch implementation,
// deriving the declared tuple from its parameters after skipping the first
// skip of them.
func reflectImpl(name string, fn any, skip int) (types.Tuple, registry.Impl, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, nil, merr.New(merr.NewNotAFunction{
			Name:   name,
			Reason: "implementation is not a func",
		})
	}
	rt := rv.Type()
	if rt.IsVariadic() {
		return nil, nil, merr.New(merr.NewNotAFunction{
			Name:   name,
			Reason: "variadic funcs cannot be dispatched on",
		})
	}
	if rt.NumIn() < skip {
		return nil, nil, merr.New(merr.NewNotAFunction{
			Name:   name,
			Reason: "method implementation is missing its receiver parameter",
		})
	}
	tuple := make(types.Tuple, rt.NumIn()-skip)
	for i := skip; i < rt.NumIn(); i++ {
		tuple[i-skip] = types.GoType(rt.In(i))
	}

	returnsValue, returnsErr := false, false
	switch rt.NumOut() {
	case 0:
	case 1:
		if rt.Out(0) == errType {
			returnsErr = true
		} else {
			returnsValue = true
		}
	case 2:
		if rt.Out(1) != errType {
			return nil, nil, merr.New(merr.NewNotAFunction{
				Name:   name,
				Reason: "second return value must be error",
			})
		}
		returnsValue, returnsErr = true, true
	default:
		return nil, nil, merr.New(merr.NewNotAFunction{
			Name:   name,
			Reason: "too many return values",
		})
	}

	impl := func(args ...any) (any, error) {
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			if arg == nil {
				in[i] = reflect.Zero(rt.In(i))
				continue
			}
			in[i] = reflect.ValueOf(arg)
		}
		out := rv.Call(in)
		var result any
		var callErr error
		if returnsValue {
			result = out[0].Interface()
		}
		if returnsErr {
			errVal := out[len(out)-1]
			if !errVal.IsNil() {
				callErr = errVal.Interface().(error)
			}
		}
		return result, callErr
	}
	return tuple, impl, nil
}
