package registry

import (
	"fmt"
	"iter"

	"github.com/cottand/manifold/merr"
	"github.com/cottand/manifold/types"
)

// Dispatcher is the callable surface bound to one operation name. It is
// cheap to copy around: all state lives in the family it points at.
type Dispatcher struct {
	fam *family
}

func (d *Dispatcher) Name() string { return d.fam.name }

// Add inserts or replaces the signature for tuple in this dispatcher's
// family.
func (d *Dispatcher) Add(tuple types.Tuple, impl Impl) (*Signature, error) {
	return d.fam.add(tuple, impl)
}

// Signatures iterates the registered signatures in registration order.
func (d *Dispatcher) Signatures() iter.Seq[*Signature] {
	return d.fam.signatures()
}

// Resolve picks the implementation for the given concrete argument types
// without invoking it.
func (d *Dispatcher) Resolve(concrete types.Tuple) (*Signature, error) {
	return d.fam.getOrResolve(concrete)
}

// Call dispatches on the runtime types of args (positional only) and
// invokes the winning implementation with the original arguments,
// unmodified. When nothing applies it returns a NoMatch error without
// invoking anything; any error from the implementation itself passes
// through unchanged.
func (d *Dispatcher) Call(args ...any) (any, error) {
	concrete := make(types.Tuple, len(args))
	for i, arg := range args {
		t, err := d.fam.oracle.TypeOf(arg)
		if err != nil {
			return nil, merr.New(merr.NewBadTypeDescriptor{
				Name:     d.fam.name,
				Position: i,
				Cause:    err,
			})
		}
		concrete[i] = t
	}
	sig, err := d.fam.getOrResolve(concrete)
	if err != nil {
		return nil, err
	}
	return sig.impl(args...)
}

// MethodDispatcher dispatches on every argument except the first (the
// receiver), which is still passed through to the implementation. Each
// MethodDispatcher owns a private family scoped to wherever it was defined,
// distinct from any registry namespace; build one explicitly at definition
// time with NewMethod.
type MethodDispatcher struct {
	Dispatcher
}

// NewMethod builds a receiver-scoped dispatcher. Registered tuples describe
// the parameters after the receiver.
func NewMethod(name string, oracle types.Oracle, opts ...Option) *MethodDispatcher {
	cfg := newConfig(opts...)
	return &MethodDispatcher{Dispatcher{fam: newFamily(name, oracle, cfg)}}
}

func (m *MethodDispatcher) Call(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, merr.New(merr.Unclassified{
			From: fmt.Errorf("method %s called without a receiver", m.fam.name),
		})
	}
	concrete := make(types.Tuple, len(args)-1)
	for i, arg := range args[1:] {
		t, err := m.fam.oracle.TypeOf(arg)
		if err != nil {
			return nil, merr.New(merr.NewBadTypeDescriptor{
				Name:     m.fam.name,
				Position: i + 1,
				Cause:    err,
			})
		}
		concrete[i] = t
	}
	sig, err := m.fam.getOrResolve(concrete)
	if err != nil {
		return nil, err
	}
	return sig.impl(args...)
}
