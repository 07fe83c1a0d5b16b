package registry

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/manifold/merr"
	"github.com/cottand/manifold/types"
	"github.com/cottand/manifold/util"
)

// resolveAgainst picks the winning signature for the concrete argument
// types among one snapshot's signatures.
//
// A signature applies when every concrete type is a subtype of (or equal
// to) the corresponding declared type. Among applicable signatures, the
// minimal elements under the specificity order are computed; a single
// minimal element wins outright. Several minimal elements mean the call is
// ambiguous: the earliest-registered minimal candidate wins so the call
// still makes progress, and every conflicting unordered pair is returned
// for reporting.
//
// The function is pure: a fixed (snapshot, concrete) input always yields
// the identical winner.
func resolveAgainst(
	oracle types.Oracle,
	name string,
	snap *immutable.List[*Signature],
	concrete types.Tuple,
) (winner *Signature, conflicts []util.Pair[*Signature, *Signature], err error) {
	var candidates []*Signature // kept in registration order
	var declared []types.Tuple
	itr := snap.Iterator()
	for !itr.Done() {
		_, s := itr.Next()
		declared = append(declared, s.tuple)
		if types.TupleLeq(oracle, concrete, s.tuple) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, nil, merr.New(merr.NewNoMatch{
			Name:     name,
			Concrete: concrete,
			Declared: declared,
		})
	}

	// minimal elements: candidates not strictly dominated by another
	// candidate
	var minimal []*Signature
	for _, s := range candidates {
		dominated := false
		for _, t := range candidates {
			if t != s && types.TupleLt(oracle, t.tuple, s.tuple) {
				dominated = true
				break
			}
		}
		if !dominated {
			minimal = append(minimal, s)
		}
	}

	// candidates preserve registration order, so minimal[0] is the
	// earliest-registered minimal element: the deterministic tie-break
	winner = minimal[0]
	for i := 0; i < len(minimal); i++ {
		for j := i + 1; j < len(minimal); j++ {
			conflicts = append(conflicts, util.NewPair(minimal[i], minimal[j]))
		}
	}
	return winner, conflicts, nil
}
