package registry

import (
	"iter"
	"log/slog"
	"sync"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/manifold/merr"
	"github.com/cottand/manifold/types"
	"github.com/cottand/manifold/util"
	set "github.com/hashicorp/go-set/v3"
)

// family holds every signature registered under one name within one
// registry (or within one method dispatcher).
//
// Signatures accumulate monotonically: there is no deletion, only
// same-tuple replacement. The signature list is an immutable, copy-on-write
// snapshot tagged with a version counter, so resolution always works
// against a single consistent snapshot and a registration can never
// invalidate a resolution mid-flight.
type family struct {
	name        string
	oracle      types.Oracle
	onAmbiguity AmbiguityFunc
	logger      *slog.Logger

	mu       sync.RWMutex
	sigs     *immutable.List[*Signature] // registration order
	byKey    map[string]int              // tuple key -> index into sigs
	version  uint64
	reported *set.Set[util.Pair[string, string]]

	cacheMu sync.Mutex
	cache   map[cacheKey]cacheEntry
}

func newFamily(name string, oracle types.Oracle, cfg config) *family {
	f := &family{
		name:     name,
		oracle:   oracle,
		logger:   cfg.logger.With("name", name),
		sigs:     immutable.NewList[*Signature](),
		byKey:    make(map[string]int),
		reported: set.New[util.Pair[string, string]](0),
		cache:    make(map[cacheKey]cacheEntry),
	}
	f.onAmbiguity = cfg.onAmbiguity
	if f.onAmbiguity == nil {
		f.onAmbiguity = defaultAmbiguityWarn(f.logger)
	}
	return f
}

// add inserts or replaces the signature for tuple. Every descriptor is
// validated first: a tuple the oracle cannot compare is never admitted.
func (f *family) add(tuple types.Tuple, impl Impl) (*Signature, error) {
	for i, t := range tuple {
		if err := f.oracle.Validate(t); err != nil {
			return nil, merr.New(merr.NewBadTypeDescriptor{
				Name:     f.name,
				Position: i,
				Type:     t,
				Cause:    err,
			})
		}
	}
	key := tuple.Key()

	f.mu.Lock()
	if idx, ok := f.byKey[key]; ok {
		// exact tuple already present: overwrite semantics, no ambiguity
		// re-scan (the set of pairs is unchanged)
		prior := f.sigs.Get(idx)
		sig := &Signature{tuple: prior.tuple, impl: impl, index: prior.index}
		f.sigs = f.sigs.Set(idx, sig)
		f.version++
		f.mu.Unlock()
		f.dropCache()
		f.logger.Debug(merr.ReplacementNotice{Name: f.name, Tuple: tuple}.String(), "section", "registry")
		return sig, nil
	}

	sig := &Signature{tuple: tuple, impl: impl, index: f.sigs.Len()}
	f.sigs = f.sigs.Append(sig)
	f.byKey[key] = sig.index
	f.version++

	// scan the new signature against all prior same-arity signatures
	var conflicts []*Signature
	itr := f.sigs.Iterator()
	for !itr.Done() {
		_, prior := itr.Next()
		if prior == sig || prior.tuple.Arity() != tuple.Arity() {
			continue
		}
		if !types.TupleLeq(f.oracle, tuple, prior.tuple) && !types.TupleLeq(f.oracle, prior.tuple, tuple) {
			conflicts = append(conflicts, prior)
		}
	}
	f.mu.Unlock()

	f.dropCache()
	f.logger.Debug("registered signature", "section", "registry", "tuple", key)
	for _, prior := range conflicts {
		f.reportPair(sig, prior)
	}
	return sig, nil
}

// snapshot returns the current signature list and its version. The list is
// immutable: it stays coherent however long resolution takes.
func (f *family) snapshot() (*immutable.List[*Signature], uint64) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sigs, f.version
}

// signatures iterates a snapshot in registration order. The sequence is
// finite and restartable.
func (f *family) signatures() iter.Seq[*Signature] {
	snap, _ := f.snapshot()
	return func(yield func(*Signature) bool) {
		itr := snap.Iterator()
		for !itr.Done() {
			_, s := itr.Next()
			if !yield(s) {
				return
			}
		}
	}
}
