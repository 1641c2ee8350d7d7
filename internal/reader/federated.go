package reader

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/schemagraph/internal/ir"
)

// Federated reads a list of readers in positional precedence.
type Federated struct {
	readers []ir.Reader
}

// NewFederated returns a reader over readers. Earlier readers shadow later
// ones for ReadResource.
func NewFederated(readers ...ir.Reader) *Federated {
	return &Federated{readers: slices.Clone(readers)}
}

// Readers returns the composed readers in precedence order.
func (f *Federated) Readers() []ir.Reader {
	return slices.Clone(f.readers)
}

// ReadResource returns the first non-nil result walking the readers in
// order, or nil when no reader knows iri.
func (f *Federated) ReadResource(ctx context.Context, iri string) (ir.Resource, error) {
	for i, r := range f.readers {
		res, err := r.ReadResource(ctx, iri)
		if err != nil {
			return nil, fmt.Errorf("reader %d: %w", i, err)
		}
		if res != nil {
			return res, nil
		}
	}
	return nil, nil
}

// ListResources returns the deduplicated union of every reader's listing.
func (f *Federated) ListResources(ctx context.Context) ([]string, error) {
	return f.union(ctx, func(ctx context.Context, r ir.Reader) ([]string, error) {
		return r.ListResources(ctx)
	})
}

// ListResourcesOfType returns the deduplicated union of every reader's
// listing of t.
func (f *Federated) ListResourcesOfType(ctx context.Context, t ir.Type) ([]string, error) {
	return f.union(ctx, func(ctx context.Context, r ir.Reader) ([]string, error) {
		return r.ListResourcesOfType(ctx, t)
	})
}

// union lists every reader concurrently, then merges the listings in reader
// order so the result does not depend on scheduling. An IRI keeps the
// position of its first occurrence.
func (f *Federated) union(ctx context.Context, list func(context.Context, ir.Reader) ([]string, error)) ([]string, error) {
	listings := make([][]string, len(f.readers))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, r := range f.readers {
		eg.Go(func() error {
			iris, err := list(egCtx, r)
			if err != nil {
				return fmt.Errorf("reader %d: %w", i, err)
			}
			listings[i] = iris
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	out := []string{}
	for _, iris := range listings {
		for _, iri := range iris {
			if !seen[iri] {
				seen[iri] = true
				out = append(out, iri)
			}
		}
	}
	return out, nil
}
