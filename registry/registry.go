// Package registry implements runtime multiple dispatch: per-name families
// of (type tuple, implementation) signatures, a resolver that picks the most
// specific applicable signature from the concrete types of a call, a
// version-keyed resolution cache, and a warn-and-continue ambiguity
// detector.
package registry

import (
	"iter"
	"log/slog"
	"sort"
	"sync"

	"github.com/cottand/manifold/internal/log"
	"github.com/cottand/manifold/types"
	"github.com/google/uuid"
)

type config struct {
	onAmbiguity AmbiguityFunc
	logger      *slog.Logger
}

type Option func(*config)

// WithAmbiguityFunc replaces the default warn-and-continue callback.
func WithAmbiguityFunc(f AmbiguityFunc) Option {
	return func(c *config) { c.onAmbiguity = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts ...Option) config {
	cfg := config{
		logger: log.DefaultLogger.With("section", "registry"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Registry is an isolated dispatch namespace: families in different
// registries never collide, even under the same name. Construct as many as
// you need; manifold.Default exposes the single process-wide one.
type Registry struct {
	id     string
	oracle types.Oracle
	cfg    config

	mu       sync.Mutex
	families map[string]*family
}

func New(oracle types.Oracle, opts ...Option) *Registry {
	cfg := newConfig(opts...)
	r := &Registry{
		id:       uuid.NewString(),
		oracle:   oracle,
		cfg:      cfg,
		families: make(map[string]*family),
	}
	r.cfg.logger = r.cfg.logger.With("registry", r.id[:8])
	return r
}

func (r *Registry) Oracle() types.Oracle { return r.oracle }

// Dispatcher returns the callable surface for name, creating its family on
// first use. The family then lives for the rest of the process.
func (r *Registry) Dispatcher(name string) *Dispatcher {
	r.mu.Lock()
	defer r.mu.Unlock()
	fam, ok := r.families[name]
	if !ok {
		fam = newFamily(name, r.oracle, r.cfg)
		r.families[name] = fam
	}
	return &Dispatcher{fam: fam}
}

// Register adds a signature under name and returns the dispatcher for it.
func (r *Registry) Register(name string, tuple types.Tuple, impl Impl) (*Dispatcher, error) {
	d := r.Dispatcher(name)
	if _, err := d.Add(tuple, impl); err != nil {
		return nil, err
	}
	return d, nil
}

// Signatures iterates the signatures registered under name, in registration
// order. Unknown names yield an empty sequence.
func (r *Registry) Signatures(name string) iter.Seq[*Signature] {
	r.mu.Lock()
	fam, ok := r.families[name]
	r.mu.Unlock()
	if !ok {
		return func(yield func(*Signature) bool) {}
	}
	return fam.signatures()
}

// Names lists every operation name with at least one family, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
