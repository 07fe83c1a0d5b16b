package merr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cottand/manifold/types"
	"github.com/xtgo/set"
)

type Unclassified struct {
	From  error
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) DispatchError {
	e.stack = stack
	return e
}

// NewNoMatch means no registered signature's declared types were all
// satisfied by the call's concrete types. It is fatal to that call.
type NewNoMatch struct {
	Name     string
	Concrete types.Tuple
	Declared []types.Tuple
	stack    []byte
}

func (e NewNoMatch) Error() string {
	keys := make(sort.StringSlice, 0, len(e.Declared))
	for _, t := range e.Declared {
		keys = append(keys, t.Key())
	}
	sort.Sort(keys)
	keys = keys[:set.Uniq(keys)]
	return fmt.Sprintf("no matching signature for %s%s; registered signatures: %s",
		e.Name, e.Concrete.Key(), strings.Join(keys, ", "))
}
func (e NewNoMatch) Code() ErrCode    { return NoMatch }
func (e NewNoMatch) getStack() []byte { return e.stack }
func (e NewNoMatch) withStack(stack []byte) DispatchError {
	e.stack = stack
	return e
}

// NewBadTypeDescriptor means a declared type could not be validated by the
// oracle at registration time. The signature is not admitted.
type NewBadTypeDescriptor struct {
	Name     string
	Position int
	Type     types.Type
	Cause    error
	stack    []byte
}

func (e NewBadTypeDescriptor) Error() string {
	return fmt.Sprintf("unusable type descriptor for %s, position %d: %v",
		e.Name, e.Position, e.Cause)
}
func (e NewBadTypeDescriptor) Code() ErrCode    { return BadTypeDescriptor }
func (e NewBadTypeDescriptor) getStack() []byte { return e.stack }
func (e NewBadTypeDescriptor) withStack(stack []byte) DispatchError {
	e.stack = stack
	return e
}

// NewNotAFunction is raised by the reflect-driven registration sugar when
// given something other than a non-variadic Go func.
type NewNotAFunction struct {
	Name   string
	Reason string
	stack  []byte
}

func (e NewNotAFunction) Error() string {
	return fmt.Sprintf("cannot register %s: %s", e.Name, e.Reason)
}
func (e NewNotAFunction) Code() ErrCode    { return NotAFunction }
func (e NewNotAFunction) getStack() []byte { return e.stack }
func (e NewNotAFunction) withStack(stack []byte) DispatchError {
	e.stack = stack
	return e
}

// AmbiguityNotice is the non-fatal payload handed to ambiguity callbacks:
// two registered signatures of equal arity, neither more specific than the
// other. Resolution still proceeds using the earliest-registered candidate.
type AmbiguityNotice struct {
	Name          string
	First, Second types.Tuple
}

func (n AmbiguityNotice) String() string {
	return fmt.Sprintf(
		"ambiguous signatures for %s: %s and %s are not comparable; "+
			"consider registering a signature for their intersection to disambiguate",
		n.Name, n.First.Key(), n.Second.Key())
}

// ReplacementNotice is the non-fatal record of an exact-tuple
// re-registration, which overwrites the prior implementation.
type ReplacementNotice struct {
	Name  string
	Tuple types.Tuple
}

func (n ReplacementNotice) String() string {
	return fmt.Sprintf("replaced implementation of %s%s", n.Name, n.Tuple.Key())
}
