package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schemagraph/internal/ir"
	"github.com/roach88/schemagraph/internal/testutil"
)

func TestCreatePimAssociation_CreatesTwoEnds(t *testing.T) {
	s := newStore(t)
	f := testutil.BuildConceptual(t, s)

	require.Len(t, f.Ends, 2)
	assoc := testutil.MustRead[*ir.PimAssociation](t, s, f.Association)
	assert.Equal(t, f.Ends, assoc.Ends)
	assert.Equal(t, f.Person, testutil.MustRead[*ir.PimAssociationEnd](t, s, f.Ends[0]).Part)
	assert.Equal(t, f.Address, testutil.MustRead[*ir.PimAssociationEnd](t, s, f.Ends[1]).Part)

	parts := testutil.MustRead[*ir.PimSchema](t, s, f.Schema).Parts
	assert.Subset(t, parts, append([]string{f.Association}, f.Ends...))
}

func TestCreatePimAssociation_PinsEndIdentities(t *testing.T) {
	s := newStore(t)
	f := testutil.BuildConceptual(t, s)

	ops := s.Operations()
	logged, ok := ops[len(ops)-1].(*ir.CreatePimAssociation)
	require.True(t, ok)
	assert.Equal(t, f.Association, logged.NewIRI)
	assert.Equal(t, f.Ends, logged.NewEndIRIs)
}

func TestCreatePimAssociation_Validation(t *testing.T) {
	s := newStore(t)
	f := testutil.BuildConceptual(t, s)

	single := ir.NewCreatePimAssociation(f.Person, f.Address)
	single.Classes = single.Classes[:1]
	requireRejected(t, s, single)

	requireRejected(t, s, ir.NewCreatePimAssociation(f.Person, f.Name))

	dup := ir.NewCreatePimAssociation(f.Person, f.Address)
	dup.NewIRI = "https://example.org/assoc"
	dup.NewEndIRIs = []string{"https://example.org/assoc", "https://example.org/end"}
	requireRejected(t, s, dup)
}

func TestSetPimCardinality(t *testing.T) {
	s := newStore(t)
	f := testutil.BuildConceptual(t, s)

	testutil.MustApply(t, s, ir.NewSetPimCardinality(f.Name, &ir.Cardinality{Min: 1, Max: ir.Unbounded}))
	testutil.MustApply(t, s, ir.NewSetPimCardinality(f.Ends[1], &ir.Cardinality{Min: 0, Max: 1}))

	assert.Equal(t, &ir.Cardinality{Min: 1, Max: ir.Unbounded}, testutil.MustRead[*ir.PimAttribute](t, s, f.Name).Cardinality)
	assert.Equal(t, &ir.Cardinality{Min: 0, Max: 1}, testutil.MustRead[*ir.PimAssociationEnd](t, s, f.Ends[1]).Cardinality)

	requireRejected(t, s, ir.NewSetPimCardinality(f.Name, &ir.Cardinality{Min: 2, Max: 1}))
	requireRejected(t, s, ir.NewSetPimCardinality(f.Person, &ir.Cardinality{Min: 0, Max: 1}))
}

func TestDeletePimClass_Preconditions(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	f := testutil.BuildConceptual(t, s)

	msg := requireRejected(t, s, ir.NewDeletePimClass(f.Agent))
	assert.Contains(t, msg, f.Name)

	msg = requireRejected(t, s, ir.NewDeletePimClass(f.Address))
	assert.Contains(t, msg, f.Street)

	testutil.MustApply(t, s, ir.NewDeletePimAttribute(f.Street))
	msg = requireRejected(t, s, ir.NewDeletePimClass(f.Address))
	assert.Contains(t, msg, f.Ends[1])

	res := testutil.MustApply(t, s, ir.NewDeletePimAssociation(f.Association))
	assert.Equal(t, append([]string{f.Association}, f.Ends...), res.Deleted)
	testutil.MustApply(t, s, ir.NewDeletePimClass(f.Address))

	ends, err := s.ListResourcesOfType(ctx, ir.TagPimAssociationEnd)
	require.NoError(t, err)
	assert.Empty(t, ends)
	assert.NotContains(t, testutil.MustRead[*ir.PimSchema](t, s, f.Schema).Parts, f.Address)

	testutil.MustApply(t, s, ir.NewDeletePimAttribute(f.Name))
	msg = requireRejected(t, s, ir.NewDeletePimClass(f.Agent))
	assert.Contains(t, msg, "extended by "+f.Person)
	assert.Equal(t, []string{f.Agent}, testutil.MustRead[*ir.PimClass](t, s, f.Person).Extends)

	testutil.MustApply(t, s, ir.NewSetPimClassExtends(f.Person))
	testutil.MustApply(t, s, ir.NewDeletePimClass(f.Agent))
}

func TestSetPimClassExtends(t *testing.T) {
	s := newStore(t)
	f := testutil.BuildConceptual(t, s)

	requireRejected(t, s, ir.NewSetPimClassExtends(f.Person, f.Person))
	requireRejected(t, s, ir.NewSetPimClassExtends(f.Person, f.Name))

	testutil.MustApply(t, s, ir.NewSetPimClassExtends(f.Person))
	assert.Empty(t, testutil.MustRead[*ir.PimClass](t, s, f.Person).Extends)
}

func TestImportResources_CreatesAndReplaces(t *testing.T) {
	s := newStore(t)
	f := testutil.BuildConceptual(t, s)

	renamed := testutil.MustRead[*ir.PimClass](t, s, f.Person).Clone().(*ir.PimClass)
	renamed.TechnicalLabel = "person"
	fresh := ir.NewPimClass()
	fresh.SetIRI("https://example.org/imported")

	res := testutil.MustApply(t, s, ir.NewImportResources(renamed, fresh))

	assert.Equal(t, []string{"https://example.org/imported"}, res.Created)
	assert.Equal(t, []string{f.Person}, res.Changed)
	assert.Equal(t, "person", testutil.MustRead[*ir.PimClass](t, s, f.Person).TechnicalLabel)

	renamed.TechnicalLabel = "changed after import"
	assert.Equal(t, "person", testutil.MustRead[*ir.PimClass](t, s, f.Person).TechnicalLabel,
		"imported values are cloned")
}

func TestImportResources_Rejections(t *testing.T) {
	s := newStore(t)
	f := testutil.BuildConceptual(t, s)

	anonymous := ir.NewPimClass()
	requireRejected(t, s, ir.NewImportResources(anonymous))

	kindSwap := ir.NewPimAttribute()
	kindSwap.SetIRI(f.Person)
	requireRejected(t, s, ir.NewImportResources(kindSwap))

	a := ir.NewPimClass()
	a.SetIRI("https://example.org/twice")
	requireRejected(t, s, ir.NewImportResources(a, a.Clone()))

	op := ir.NewCreatePimSchema()
	op.Relink("https://example.org/op", "")
	requireRejected(t, s, ir.NewImportResources(op))
}
