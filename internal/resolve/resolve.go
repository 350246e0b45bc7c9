// Package resolve turns collected secret references into values by
// fanning fetches out over the regional client pool. Resolution is
// fail-fast: the first backend error aborts the whole batch and no
// partial result is returned.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/youyo/secretlaunch/internal/collect"
	"github.com/youyo/secretlaunch/internal/pool"
	"github.com/youyo/secretlaunch/internal/secretref"
)

// Resolver resolves pending fetches against the client pool.
type Resolver struct {
	pool   *pool.Pool
	logger *slog.Logger
}

// New creates a resolver. A nil logger falls back to slog.Default.
func New(p *pool.Pool, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{pool: p, logger: logger}
}

// ResolveAll fetches every collected reference concurrently and returns
// the final output-key/value map. Indirection documents are fetched in
// the first wave alongside direct references; the references they expand
// to are fetched in a second wave. Duplicate output keys are
// last-write-wins, direct values first, then expansion values in entry
// point order.
func (r *Resolver) ResolveAll(ctx context.Context, col collect.Collection) (map[string]string, error) {
	directVals := make([]string, len(col.Direct))
	docs := make([]string, len(col.Indirections))

	nd := len(col.Direct)
	err := fanOut(ctx, nd+len(col.Indirections), func(ctx context.Context, i int) error {
		if i < nd {
			p := col.Direct[i]
			v, err := r.fetchOne(ctx, p.Ref)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", p.Key, err)
			}
			directVals[i] = v
			return nil
		}

		ind := col.Indirections[i-nd]
		doc, err := r.fetchDocument(ctx, ind.Ref)
		if err != nil {
			return fmt.Errorf("%s: %w", ind.Source, err)
		}
		docs[i-nd] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	var expanded []collect.Pending
	for i, ind := range col.Indirections {
		expanded = append(expanded, r.expandDocument(ind.Source, docs[i])...)
	}

	expandedVals := make([]string, len(expanded))
	err = fanOut(ctx, len(expanded), func(ctx context.Context, i int) error {
		p := expanded[i]
		v, err := r.fetchOne(ctx, p.Ref)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p.Key, err)
		}
		expandedVals[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]string, len(col.Direct)+len(expanded))
	for i, p := range col.Direct {
		resolved[p.Key] = directVals[i]
		r.logger.Debug("resolved", slog.String("key", p.Key), slog.String("value", Mask(directVals[i])))
	}
	for i, p := range expanded {
		resolved[p.Key] = expandedVals[i]
		r.logger.Debug("resolved", slog.String("key", p.Key), slog.String("value", Mask(expandedVals[i])))
	}
	return resolved, nil
}

// fetchOne routes a single reference to the right store: ssm ARNs go to
// the parameter store, everything else (secretsmanager ARNs and plain
// names) to the secret store.
func (r *Resolver) fetchOne(ctx context.Context, ref secretref.Ref) (string, error) {
	pair, err := r.pool.For(ctx, ref)
	if err != nil {
		return "", err
	}
	if ref.Kind == secretref.KindParameterStoreARN {
		return pair.Parameters.FetchParameter(ctx, ref.Raw, true)
	}
	return pair.Secrets.FetchSecret(ctx, ref.Raw)
}

// fetchDocument fetches an indirection entry-point parameter. The value
// is classified only to pick a regional pair; it is always read through
// the parameter client with decryption.
func (r *Resolver) fetchDocument(ctx context.Context, ref secretref.Ref) (string, error) {
	pair, err := r.pool.For(ctx, ref)
	if err != nil {
		return "", err
	}
	return pair.Parameters.FetchParameter(ctx, ref.Raw, true)
}

// fanOut runs fn(i) for every index concurrently, one goroutine per
// fetch, and joins on all of them. The first error wins and cancels the
// shared context so stragglers stop mattering; their results are
// discarded.
func fanOut(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := fn(ctx, i); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	return firstErr
}

// Mask renders a secret value safe for logs, keeping just enough shape
// to tell values apart.
func Mask(value string) string {
	switch {
	case len(value) == 0:
		return "(empty)"
	case len(value) <= 8:
		return strings.Repeat("*", len(value))
	default:
		return value[:2] + strings.Repeat("*", 6) + value[len(value)-2:]
	}
}
