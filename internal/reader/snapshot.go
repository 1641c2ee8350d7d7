package reader

import (
	"context"
	"maps"
	"slices"

	"github.com/roach88/schemagraph/internal/ir"
)

// Snapshot is a static, read-only graph. It clones its input when built and
// clones again on every read, so neither the source nor a caller can change
// what later reads return.
type Snapshot struct {
	resources map[string]ir.Resource
	iris      []string
}

// NewSnapshot copies resources. Entries with an empty IRI are skipped.
func NewSnapshot(resources []ir.Resource) *Snapshot {
	s := &Snapshot{resources: make(map[string]ir.Resource, len(resources))}
	for _, res := range resources {
		if res == nil || res.IRI() == "" {
			continue
		}
		s.resources[res.IRI()] = res.Clone()
	}
	s.iris = slices.Sorted(maps.Keys(s.resources))
	return s
}

// NewSnapshotOf copies every resource currently visible through r.
func NewSnapshotOf(ctx context.Context, r ir.Reader) (*Snapshot, error) {
	iris, err := r.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	resources := make([]ir.Resource, 0, len(iris))
	for _, iri := range iris {
		res, err := r.ReadResource(ctx, iri)
		if err != nil {
			return nil, err
		}
		if res != nil {
			resources = append(resources, res)
		}
	}
	return NewSnapshot(resources), nil
}

// Without returns a snapshot that lacks the given IRIs.
func (s *Snapshot) Without(iris ...string) *Snapshot {
	out := &Snapshot{resources: maps.Clone(s.resources)}
	for _, iri := range iris {
		delete(out.resources, iri)
	}
	out.iris = slices.Sorted(maps.Keys(out.resources))
	return out
}

// Len returns the number of resources.
func (s *Snapshot) Len() int { return len(s.iris) }

// ListResources returns every IRI, sorted.
func (s *Snapshot) ListResources(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.iris), nil
}

// ListResourcesOfType returns the IRIs tagged t, sorted.
func (s *Snapshot) ListResourcesOfType(ctx context.Context, t ir.Type) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []string{}
	for _, iri := range s.iris {
		if ir.Is(s.resources[iri], t) {
			out = append(out, iri)
		}
	}
	return out, nil
}

// ReadResource returns a private copy of iri, or nil.
func (s *Snapshot) ReadResource(ctx context.Context, iri string) (ir.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, ok := s.resources[iri]
	if !ok {
		return nil, nil
	}
	return res.Clone(), nil
}
