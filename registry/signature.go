package registry

import (
	"github.com/cottand/manifold/types"
)

// Impl is the opaque callable a signature dispatches to.
// The error it returns (or the panic it raises) is propagated to the caller
// unchanged.
type Impl func(args ...any) (any, error)

// Signature is one registered (type tuple, implementation) pair.
// Signatures are owned exclusively by their family: the tuple and the
// registration index never change after creation, and re-registering the
// same tuple produces a fresh Signature with the original index.
type Signature struct {
	tuple types.Tuple
	impl  Impl
	index int
}

func (s *Signature) Tuple() types.Tuple { return s.tuple }

func (s *Signature) Invoke(args ...any) (any, error) { return s.impl(args...) }

func (s *Signature) String() string { return s.tuple.Key() }
