package registry

import (
	"github.com/cottand/manifold/types"
)

// Resolution results are memoized per concrete tuple, tagged with the
// family version current when the snapshot was taken. Registration bumps
// the version, so entries resolved before a mutation can never satisfy a
// lookup made after it; dropCache merely reclaims the memory of those
// unreachable entries.

type cacheKey struct {
	tuple   string
	version uint64
}

type cacheEntry struct {
	sig *Signature
	err error // the NoMatch marker: resolution failed for this tuple
}

// getOrResolve returns the memoized resolution for concrete, resolving and
// storing on a miss. The resolution runs against the snapshot the version
// was read from, so a concurrent registration never invalidates it
// mid-flight; only future lookups see the new version.
func (f *family) getOrResolve(concrete types.Tuple) (*Signature, error) {
	snap, version := f.snapshot()
	key := cacheKey{tuple: concrete.Key(), version: version}

	f.cacheMu.Lock()
	if e, ok := f.cache[key]; ok {
		f.cacheMu.Unlock()
		return e.sig, e.err
	}
	f.cacheMu.Unlock()

	sig, conflicts, err := resolveAgainst(f.oracle, f.name, snap, concrete)

	f.cacheMu.Lock()
	f.cache[key] = cacheEntry{sig: sig, err: err}
	f.cacheMu.Unlock()

	// pair dedup makes repeated ambiguous calls report nothing new
	for _, pair := range conflicts {
		f.reportPair(pair.Fst, pair.Snd)
	}
	return sig, err
}

func (f *family) dropCache() {
	f.cacheMu.Lock()
	f.cache = make(map[cacheKey]cacheEntry)
	f.cacheMu.Unlock()
}
