package store

import (
	"context"

	"github.com/roach88/schemagraph/internal/ir"
)

// ListResources returns every resource IRI, sorted.
func (s *Store) ListResources(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listResources(), nil
}

// ListResourcesOfType returns the IRIs of resources tagged t, sorted.
func (s *Store) ListResourcesOfType(ctx context.Context, t ir.Type) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listResourcesOfType(t), nil
}

// ReadResource returns the resource iri, or nil when it does not exist.
// The returned value is shared and must not be mutated; Clone it first.
func (s *Store) ReadResource(ctx context.Context, iri string) (ir.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readResource(iri), nil
}

func (s *Store) listResources() []string {
	return sortedKeys(s.resources)
}

func (s *Store) listResourcesOfType(t ir.Type) []string {
	out := []string{}
	for _, iri := range sortedKeys(s.resources) {
		if ir.Is(s.resources[iri].res, t) {
			out = append(out, iri)
		}
	}
	return out
}

func (s *Store) readResource(iri string) ir.Resource {
	e, ok := s.resources[iri]
	if !ok {
		return nil
	}
	return e.res
}

// lockedReader reads a store whose lock the caller already holds. Executors
// see the store through it while ApplyOperation runs.
type lockedReader struct{ s *Store }

func (r lockedReader) ListResources(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.s.listResources(), nil
}

func (r lockedReader) ListResourcesOfType(ctx context.Context, t ir.Type) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.s.listResourcesOfType(t), nil
}

func (r lockedReader) ReadResource(ctx context.Context, iri string) (ir.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.s.readResource(iri), nil
}
