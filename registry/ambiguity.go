package registry

import (
	"log/slog"

	"github.com/cottand/manifold/merr"
	"github.com/cottand/manifold/util"
)

// AmbiguityFunc is called when two registered signatures of equal arity are
// found mutually incomparable: neither is more specific than the other. It
// is called at most once per distinct unordered pair over the lifetime of a
// family, whether the pair is found at registration time or while resolving
// a call.
//
// The detector does not prove a real call could hit the ambiguity (it never
// computes whether a common subtype of the two tuples exists); every
// incomparable same-arity pair is treated as latent ambiguity.
type AmbiguityFunc func(name string, a, b *Signature)

func defaultAmbiguityWarn(logger *slog.Logger) AmbiguityFunc {
	return func(name string, a, b *Signature) {
		notice := merr.AmbiguityNotice{Name: name, First: a.tuple, Second: b.tuple}
		logger.Warn(notice.String())
	}
}

// pairKeyOf builds the canonical unordered key for a conflicting pair.
func pairKeyOf(a, b *Signature) util.Pair[string, string] {
	ka, kb := a.tuple.Key(), b.tuple.Key()
	if kb < ka {
		ka, kb = kb, ka
	}
	return util.NewPair(ka, kb)
}

// reportPair hands the pair to the ambiguity callback unless it was
// reported before.
func (f *family) reportPair(a, b *Signature) {
	key := pairKeyOf(a, b)
	f.mu.Lock()
	already := f.reported.Contains(key)
	if !already {
		f.reported.Insert(key)
	}
	f.mu.Unlock()
	if already {
		return
	}
	f.onAmbiguity(f.name, a, b)
}
