package gc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schemagraph/internal/gc"
	"github.com/roach88/schemagraph/internal/ir"
	"github.com/roach88/schemagraph/internal/store"
	"github.com/roach88/schemagraph/internal/testutil"
)

func newStore(base string) *store.Store {
	return store.New(base,
		store.WithAllocator(testutil.NewSequentialAllocator(base)),
		store.WithLogger(testutil.DiscardLogger()))
}

// assertClosed checks that every reference in the structural graph of s
// points at an existing resource.
func assertClosed(t *testing.T, s *store.Store) {
	t.Helper()
	resources := s.Resources()
	exists := func(owner, iri string) {
		_, ok := resources[iri]
		assert.True(t, ok, "%s references the missing %s", owner, iri)
	}
	for iri, res := range resources {
		switch v := res.(type) {
		case *ir.PsmSchema:
			for _, p := range v.Parts {
				exists(iri, p)
			}
			for _, p := range v.Roots {
				exists(iri, p)
			}
		case *ir.PsmClass:
			for _, p := range v.Parts {
				exists(iri, p)
			}
			for _, p := range v.Extends {
				exists(iri, p)
			}
		case *ir.PsmContainer:
			for _, p := range v.Parts {
				exists(iri, p)
			}
		case *ir.PsmAssociationEnd:
			exists(iri, v.Part)
		case *ir.PsmOr:
			for _, p := range v.Choices {
				exists(iri, p)
			}
		}
	}
}

type orphans struct {
	class, attr, container, inner, class2, end, or, ref, external, keptRef string
}

// addOrphans extends the structural fixture with resources the roots
// cannot reach, plus one class reference reachable through Address.
func addOrphans(t *testing.T, s *store.Store, f testutil.StructuralFixture) orphans {
	t.Helper()
	var o orphans
	o.class = testutil.MustCreate(t, s, ir.NewCreatePsmClass(f.Schema))
	o.attr = testutil.MustCreate(t, s, ir.NewCreatePsmAttribute(o.class))
	o.container = testutil.MustCreate(t, s, ir.NewCreatePsmContainer(o.class, ir.ContainerSequence))
	o.inner = testutil.MustCreate(t, s, ir.NewCreatePsmAttribute(o.container))

	class2 := ir.NewCreatePsmClass(f.Schema)
	class2.Extends = []string{o.class}
	o.class2 = testutil.MustCreate(t, s, class2)
	o.end = testutil.MustCreate(t, s, ir.NewCreatePsmAssociationEnd(o.class2, f.Person))

	o.or = testutil.MustCreate(t, s, ir.NewCreatePsmOr(f.Schema, o.class, o.class2))
	o.ref = testutil.MustCreate(t, s, ir.NewCreatePsmClassReference(f.Schema, "https://example.org/other", "https://example.org/other/Thing"))
	o.external = testutil.MustCreate(t, s, ir.NewCreatePsmExternalRoot(f.Schema, "https://example.org/Type"))

	o.keptRef = testutil.MustCreate(t, s, ir.NewCreatePsmClassReference(f.Schema, "https://example.org/other", "https://example.org/other/Base"))
	testutil.MustApply(t, s, ir.NewSetPsmClassExtends(f.Address, o.keptRef))
	return o
}

func TestMarkStructure_FollowsOwnershipEdges(t *testing.T) {
	s := newStore("https://example.org/s")
	f := testutil.BuildStructural(t, s, nil)
	o := addOrphans(t, s, f)

	visited, err := gc.MarkStructure(context.Background(), s, f.Schema)
	require.NoError(t, err)

	for _, iri := range []string{f.Person, f.Name, f.AddressEnd, f.Address, f.Street, o.keptRef} {
		assert.True(t, visited[iri], "%s should be reachable", iri)
	}
	for _, iri := range []string{o.class, o.class2, o.or, o.ref, o.external} {
		assert.False(t, visited[iri], "%s should be unreachable", iri)
	}
}

func TestCollectStructure_DeletesUnreachable(t *testing.T) {
	ctx := context.Background()
	s := newStore("https://example.org/s")
	f := testutil.BuildStructural(t, s, nil)
	o := addOrphans(t, s, f)

	report, err := gc.CollectStructure(ctx, s, f.Schema, gc.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)

	assert.Equal(t, []string{
		o.attr, o.inner, o.container, o.end,
		o.or, o.ref, o.external,
		o.class, o.class2,
	}, report.Deleted)
	assert.Equal(t, []string{f.Schema}, report.Changed)
	assert.Equal(t, 11, report.Operations)

	schema := testutil.MustRead[*ir.PsmSchema](t, s, f.Schema)
	assert.Equal(t, []string{f.Person, f.Address, f.Name, f.AddressEnd, f.Street, o.keptRef}, schema.Parts)
	assert.Equal(t, []string{f.Person}, schema.Roots)
	assertClosed(t, s)

	again, err := gc.CollectStructure(ctx, s, f.Schema, gc.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)
	assert.True(t, again.Empty())
}

func TestCollectStructure_DryRunMatchesSweep(t *testing.T) {
	ctx := context.Background()
	s := newStore("https://example.org/s")
	f := testutil.BuildStructural(t, s, nil)
	addOrphans(t, s, f)
	before := s.Generation()

	planned, err := gc.CollectStructure(ctx, s, f.Schema, gc.WithDryRun(), gc.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)
	assert.Equal(t, before, s.Generation(), "a dry run applies nothing")
	assert.Zero(t, planned.Operations)

	swept, err := gc.CollectStructure(ctx, s, f.Schema, gc.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)
	assert.Equal(t, planned.Deleted, swept.Deleted)
}

// brokenRead fails every read of one IRI.
type brokenRead struct {
	*store.Store
	iri string
}

func (b brokenRead) ReadResource(ctx context.Context, iri string) (ir.Resource, error) {
	if iri == b.iri {
		return nil, errors.New("disk on fire")
	}
	return b.Store.ReadResource(ctx, iri)
}

func TestCollectStructure_DryRunReportsReadErrors(t *testing.T) {
	s := newStore("https://example.org/s")
	f := testutil.BuildStructural(t, s, nil)
	o := addOrphans(t, s, f)

	_, err := gc.CollectStructure(context.Background(), brokenRead{Store: s, iri: o.container}, f.Schema,
		gc.WithDryRun(), gc.WithLogger(testutil.DiscardLogger()))

	assert.ErrorContains(t, err, "disk on fire")
	assert.ErrorContains(t, err, o.container)
}

func TestCollectStructure_NoRootsCollectsEverything(t *testing.T) {
	s := newStore("https://example.org/s")
	f := testutil.BuildStructural(t, s, nil)
	testutil.MustApply(t, s, ir.NewSetPsmSchemaRoots(f.Schema))

	report, err := gc.CollectStructure(context.Background(), s, f.Schema, gc.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{f.Person, f.Name, f.AddressEnd, f.Address, f.Street}, report.Deleted)
	assert.Empty(t, testutil.MustRead[*ir.PsmSchema](t, s, f.Schema).Parts)
	assertClosed(t, s)
}

func TestCollectStructure_UnknownSchema(t *testing.T) {
	s := newStore("https://example.org/s")

	_, err := gc.CollectStructure(context.Background(), s, "https://example.org/nope", gc.WithLogger(testutil.DiscardLogger()))

	assert.ErrorContains(t, err, "not a structural schema")
}
