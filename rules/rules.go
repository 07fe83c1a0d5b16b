// Package rules loads dispatch rule files: a declared type lattice, the
// signatures registered under each operation name, and sample queries to
// resolve against them. The manifold CLI consumes these for ambiguity
// checking and query resolution; implementations are optional Go snippets
// compiled at load time.
package rules

import (
	"fmt"
	"io"

	"github.com/cottand/manifold/registry"
	"github.com/cottand/manifold/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type File struct {
	Types     []TypeDecl `yaml:"types"`
	Functions []Function `yaml:"functions"`
	Queries   []Query    `yaml:"queries"`
}

type TypeDecl struct {
	Name    string   `yaml:"name"`
	Extends []string `yaml:"extends"`
}

type Function struct {
	Name       string          `yaml:"name"`
	Signatures []SignatureDecl `yaml:"signatures"`
}

type SignatureDecl struct {
	Params []string `yaml:"params"`
	// Impl is optional Go source for the implementation, for example
	//   func(args ...interface{}) interface{} { return "hi" }
	// When absent, a stub returning the signature's rendering is registered
	// so queries can still show which signature won.
	Impl string `yaml:"impl"`
}

type Query struct {
	Name string `yaml:"name"`
	Args []Arg  `yaml:"args"`
	// Expect is the optional tuple key of the signature this query should
	// resolve to, e.g. "(Circle)". Checked by `manifold check` and tests.
	Expect string `yaml:"expect"`
	// Result is the optional fmt rendering of the value the call should
	// produce.
	Result string `yaml:"result"`
	// ExpectNoMatch marks a query that must NOT resolve: useful to pin down
	// that a family does not accidentally cover a tuple.
	ExpectNoMatch bool `yaml:"expect_no_match"`
}

// Arg is either a bare type name or a {type, value} mapping.
type Arg struct {
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

func (a *Arg) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&a.Type)
	}
	type raw Arg
	return node.Decode((*raw)(a))
}

// Value tags a raw payload with its declared lattice type, so lattice
// oracles can dispatch on it.
type Value struct {
	Type types.Type
	Raw  any
}

func (v Value) DispatchType() types.Type { return v.Type }

func (v Value) String() string {
	if v.Raw == nil {
		return v.Type.TypeName()
	}
	return fmt.Sprintf("%v: %v", v.Type.TypeName(), v.Raw)
}

func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decoding rule file")
	}
	return &f, nil
}

// Build declares the lattice and registers every signature, compiling
// implementation snippets as it goes.
func (f *File) Build(opts ...registry.Option) (*registry.Registry, *types.Lattice, error) {
	lattice := types.NewLattice()
	for _, decl := range f.Types {
		if _, err := lattice.Declare(decl.Name, decl.Extends...); err != nil {
			return nil, nil, errors.Wrapf(err, "declaring type %q", decl.Name)
		}
	}
	reg := registry.New(lattice, opts...)
	for _, fn := range f.Functions {
		for i, decl := range fn.Signatures {
			tuple, err := tupleOf(lattice, decl.Params)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "signature %d of %q", i, fn.Name)
			}
			impl, err := implOf(fn.Name, tuple, decl)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "signature %d of %q", i, fn.Name)
			}
			if _, err := reg.Register(fn.Name, tuple, impl); err != nil {
				return nil, nil, err
			}
		}
	}
	return reg, lattice, nil
}

func tupleOf(lattice *types.Lattice, params []string) (types.Tuple, error) {
	tuple := make(types.Tuple, len(params))
	for i, param := range params {
		t, err := lattice.Lookup(param)
		if err != nil {
			return nil, err
		}
		tuple[i] = t
	}
	return tuple, nil
}

func implOf(name string, tuple types.Tuple, decl SignatureDecl) (registry.Impl, error) {
	if decl.Impl == "" {
		stub := name + tuple.Key()
		return func(args ...any) (any, error) { return stub, nil }, nil
	}
	return CompileImpl(decl.Impl)
}

// Outcome is the result of resolving (and, when resolution succeeds,
// invoking) one query.
type Outcome struct {
	Query  Query
	Winner *registry.Signature
	Result any
	Err    error
}

// RunQuery resolves the query's concrete tuple, then invokes the winning
// implementation with the raw argument payloads.
func RunQuery(reg *registry.Registry, lattice *types.Lattice, q Query) Outcome {
	outcome := Outcome{Query: q}
	tuple := make(types.Tuple, len(q.Args))
	raw := make([]any, len(q.Args))
	for i, a := range q.Args {
		t, err := lattice.Lookup(a.Type)
		if err != nil {
			outcome.Err = errors.Wrapf(err, "argument %d of query %q", i, q.Name)
			return outcome
		}
		tuple[i] = t
		raw[i] = a.Value
	}
	sig, err := reg.Dispatcher(q.Name).Resolve(tuple)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Winner = sig
	outcome.Result, outcome.Err = sig.Invoke(raw...)
	return outcome
}
