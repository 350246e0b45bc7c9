// Package pool caches one client pair per AWS region for the duration of
// a single invocation. Pairs are built lazily on first reference to a
// region and shared by every fetch that targets it.
package pool

import (
	"context"
	"fmt"
	"sync"

	"github.com/youyo/secretlaunch/internal/backend"
	"github.com/youyo/secretlaunch/internal/secretref"
)

// Factory builds the client pair for one region. An empty region means
// the process's ambient default region resolution.
type Factory func(ctx context.Context, region string) (*backend.Pair, error)

// Pool maps region identifiers to lazily constructed client pairs.
// References without an explicit region share one default pair. An ARN
// with an empty region segment gets its own pool entry, distinct from
// the default pair.
type Pool struct {
	mu      sync.Mutex
	factory Factory
	regions map[string]*backend.Pair
	def     *backend.Pair
}

// New creates a pool around the given factory.
func New(factory Factory) *Pool {
	return &Pool{
		factory: factory,
		regions: make(map[string]*backend.Pair),
	}
}

// For returns the client pair for the given reference: the regional pair
// for typed ARNs carrying a region, the default pair otherwise.
// Construction is serialized so concurrent first touches of the same
// region observe a single shared pair. A construction failure is
// returned to the caller and not cached.
func (p *Pool) For(ctx context.Context, ref secretref.Ref) (*backend.Pair, error) {
	if ref.Kind != secretref.KindName {
		if region, ok := secretref.Region(ref.Raw); ok {
			return p.regional(ctx, region)
		}
	}
	return p.defaultPair(ctx)
}

func (p *Pool) regional(ctx context.Context, region string) (*backend.Pair, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pair, ok := p.regions[region]; ok {
		return pair, nil
	}
	pair, err := p.factory(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("build clients for region %q: %w", region, err)
	}
	p.regions[region] = pair
	return pair, nil
}

func (p *Pool) defaultPair(ctx context.Context) (*backend.Pair, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.def != nil {
		return p.def, nil
	}
	pair, err := p.factory(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("build default clients: %w", err)
	}
	p.def = pair
	return pair, nil
}
