package reader

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schemagraph/internal/ir"
)

func class(iri, label string) *ir.PsmClass {
	c := ir.NewPsmClass()
	c.SetIRI(iri)
	c.TechnicalLabel = label
	return c
}

func attribute(iri string) *ir.PsmAttribute {
	a := ir.NewPsmAttribute()
	a.SetIRI(iri)
	return a
}

type failingReader struct{ err error }

func (f failingReader) ListResources(context.Context) ([]string, error) { return nil, f.err }
func (f failingReader) ListResourcesOfType(context.Context, ir.Type) ([]string, error) {
	return nil, f.err
}
func (f failingReader) ReadResource(context.Context, string) (ir.Resource, error) {
	return nil, f.err
}

func TestFederated_ReadResourceFirstHitWins(t *testing.T) {
	ctx := context.Background()
	local := NewSnapshot([]ir.Resource{class("urn:a", "local")})
	reused := NewSnapshot([]ir.Resource{class("urn:a", "reused"), class("urn:b", "reused")})
	surroundings := NewSnapshot([]ir.Resource{attribute("urn:c")})
	readers := []ir.Reader{local, reused, surroundings}
	f := NewFederated(readers...)

	for _, iri := range []string{"urn:a", "urn:b", "urn:c", "urn:missing"} {
		got, err := f.ReadResource(ctx, iri)
		require.NoError(t, err)

		var want ir.Resource
		for _, r := range readers {
			res, err := r.ReadResource(ctx, iri)
			require.NoError(t, err)
			if res != nil {
				want = res
				break
			}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ReadResource(%s) mismatch (-want +got):\n%s", iri, diff)
		}
	}

	a, err := f.ReadResource(ctx, "urn:a")
	require.NoError(t, err)
	assert.Equal(t, "local", a.(*ir.PsmClass).TechnicalLabel)
}

func TestFederated_ListingsAreDeduplicatedUnion(t *testing.T) {
	ctx := context.Background()
	f := NewFederated(
		NewSnapshot([]ir.Resource{class("urn:b", ""), attribute("urn:z")}),
		NewSnapshot([]ir.Resource{class("urn:a", ""), class("urn:b", "")}),
	)

	all, err := f.ListResources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"urn:b", "urn:z", "urn:a"}, all)

	classes, err := f.ListResourcesOfType(ctx, ir.TagPsmClass)
	require.NoError(t, err)
	assert.Equal(t, []string{"urn:b", "urn:a"}, classes)

	none, err := f.ListResourcesOfType(ctx, ir.TagPimClass)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFederated_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	f := NewFederated(NewSnapshot(nil), failingReader{err: boom})

	_, err := f.ListResources(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = f.ReadResource(ctx, "urn:x")
	assert.ErrorIs(t, err, boom)
}

func TestFederated_Empty(t *testing.T) {
	f := NewFederated()
	all, err := f.ListResources(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	res, err := f.ReadResource(context.Background(), "urn:a")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSnapshot_IsolatedFromSourceAndCallers(t *testing.T) {
	ctx := context.Background()
	source := class("urn:a", "before")
	s := NewSnapshot([]ir.Resource{source, nil, ir.NewPsmClass()})
	assert.Equal(t, 1, s.Len())

	source.TechnicalLabel = "mutated source"
	first, err := s.ReadResource(ctx, "urn:a")
	require.NoError(t, err)
	assert.Equal(t, "before", first.(*ir.PsmClass).TechnicalLabel)

	first.(*ir.PsmClass).Parts = append(first.(*ir.PsmClass).Parts, "urn:junk")
	second, err := s.ReadResource(ctx, "urn:a")
	require.NoError(t, err)
	assert.Empty(t, second.(*ir.PsmClass).Parts)
}

func TestNewSnapshotOf(t *testing.T) {
	ctx := context.Background()
	src := NewSnapshot([]ir.Resource{class("urn:a", ""), attribute("urn:b")})

	s, err := NewSnapshotOf(ctx, src)
	require.NoError(t, err)

	iris, err := s.ListResources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"urn:a", "urn:b"}, iris)

	attrs, err := s.ListResourcesOfType(ctx, ir.TagPsmAttribute)
	require.NoError(t, err)
	assert.Equal(t, []string{"urn:b"}, attrs)
}

func TestSnapshot_Without(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshot([]ir.Resource{class("urn:a", ""), attribute("urn:b"), class("urn:c", "")})

	trimmed := s.Without("urn:a", "urn:missing")
	iris, err := trimmed.ListResources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"urn:b", "urn:c"}, iris)
	classes, err := trimmed.ListResourcesOfType(ctx, ir.TagPsmClass)
	require.NoError(t, err)
	assert.Equal(t, []string{"urn:c"}, classes)
	gone, err := trimmed.ReadResource(ctx, "urn:a")
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.Equal(t, 3, s.Len())
}
