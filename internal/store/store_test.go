package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schemagraph/internal/engine"
	"github.com/roach88/schemagraph/internal/ir"
	"github.com/roach88/schemagraph/internal/testutil"
)

const testBase = "https://example.org/model"

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{
		WithAllocator(testutil.NewSequentialAllocator(testBase)),
		WithLogger(testutil.DiscardLogger()),
	}, opts...)
	return New(testBase, opts...)
}

func TestApplyOperation_SchemaClassAttributeScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	schema := testutil.MustCreate(t, s, ir.NewCreatePsmSchema())
	c1 := testutil.MustCreate(t, s, ir.NewCreatePsmClass(schema))
	assert.Equal(t, []string{c1}, testutil.MustRead[*ir.PsmSchema](t, s, schema).Parts)

	a1 := testutil.MustCreate(t, s, ir.NewCreatePsmAttribute(c1))
	assert.Equal(t, []string{c1, a1}, testutil.MustRead[*ir.PsmSchema](t, s, schema).Parts)
	assert.Equal(t, []string{a1}, testutil.MustRead[*ir.PsmClass](t, s, c1).Parts)

	_, err := s.ApplyOperation(ctx, ir.NewDeletePsmClass(c1))
	require.Error(t, err)
	assert.True(t, engine.IsPreconditionError(err), "got %T", err)

	res := testutil.MustApply(t, s, ir.NewDeletePsmAttribute(c1, a1))
	assert.Equal(t, []string{a1}, res.Deleted)
	assert.Equal(t, []string{c1}, testutil.MustRead[*ir.PsmSchema](t, s, schema).Parts)
	assert.Empty(t, testutil.MustRead[*ir.PsmClass](t, s, c1).Parts)

	testutil.MustApply(t, s, ir.NewDeletePsmClass(c1))
	assert.NotContains(t, testutil.MustRead[*ir.PsmSchema](t, s, schema).Parts, c1)

	gone, err := s.ReadResource(ctx, c1)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestApplyOperation_ResultListsIRIsInExecutorOrder(t *testing.T) {
	s := newTestStore(t)
	schema := testutil.MustCreate(t, s, ir.NewCreatePsmSchema())
	class := testutil.MustCreate(t, s, ir.NewCreatePsmClass(schema))

	res := testutil.MustApply(t, s, ir.NewCreatePsmAttribute(class))

	require.Len(t, res.Created, 1)
	assert.Equal(t, []string{class, schema}, res.Changed)
	assert.Empty(t, res.Deleted)
	assert.Equal(t, ir.CreatedPayload{IRI: res.Created[0]}, res.Payload)
	assert.Equal(t, res.Created[0], res.CreatedIRI())
}

func TestApplyOperation_FailureLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	schema := testutil.MustCreate(t, s, ir.NewCreatePsmSchema())
	class := testutil.MustCreate(t, s, ir.NewCreatePsmClass(schema))
	testutil.MustCreate(t, s, ir.NewCreatePsmAttribute(class))

	before := s.Export()
	beforeDigest, err := s.Digest()
	require.NoError(t, err)
	generation := s.Generation()

	failing := []ir.Operation{
		ir.NewDeletePsmClass(class),
		ir.NewCreatePsmClass("https://example.org/missing"),
		ir.NewCreatePsmAttribute(schema),
		ir.NewSetPsmSchemaRoots(schema, "https://example.org/not-a-part"),
	}
	for _, op := range failing {
		_, err := s.ApplyOperation(ctx, op)
		require.Error(t, err)

		var pe *engine.PreconditionError
		require.ErrorAs(t, err, &pe)
		assert.NotEmpty(t, pe.Message)
		assert.Equal(t, byte('.'), pe.Message[len(pe.Message)-1], "message must be a sentence: %q", pe.Message)
	}

	after := s.Export()
	afterDigest, err := s.Digest()
	require.NoError(t, err)
	assert.Equal(t, beforeDigest, afterDigest)
	assert.Equal(t, len(before.Operations), len(after.Operations))
	assert.Equal(t, generation, s.Generation())
}

func TestApplyOperation_DispatchErrorWithEmptyRegistry(t *testing.T) {
	s := newTestStore(t, WithRegistry(engine.NewRegistry()))

	_, err := s.ApplyOperation(context.Background(), ir.NewCreatePsmSchema())

	require.Error(t, err)
	assert.True(t, engine.IsDispatchError(err))
	assert.Empty(t, s.Operations())
}

func TestApplyOperation_ParentChainFollowsCallOrder(t *testing.T) {
	s := newTestStore(t)
	schema := testutil.MustCreate(t, s, ir.NewCreatePsmSchema())
	class := testutil.MustCreate(t, s, ir.NewCreatePsmClass(schema))
	testutil.MustApply(t, s, ir.NewSetTechnicalLabel(class, "person"))
	testutil.MustApply(t, s, ir.NewSetPsmSchemaRoots(schema, class))

	ops := s.Operations()
	require.Len(t, ops, 4)
	assert.Empty(t, ops[0].Parent())
	for i := 1; i < len(ops); i++ {
		assert.Equal(t, ops[i-1].IRI(), ops[i].Parent(), "operation %d", i)
	}
	assert.Equal(t, ops[3].IRI(), s.Tail())
	assert.Equal(t, int64(4), s.Generation())
}

func TestApplyOperation_LogsClonesNotCallerValues(t *testing.T) {
	s := newTestStore(t)
	op := ir.NewCreatePsmSchema()
	op.TechnicalLabel = "first"

	res := testutil.MustApply(t, s, op)
	op.TechnicalLabel = "mutated"

	logged := s.Operations()[0].(*ir.CreatePsmSchema)
	assert.Equal(t, "first", logged.TechnicalLabel)
	assert.Empty(t, op.IRI(), "caller's operation must not be relinked")
	assert.Equal(t, res.CreatedIRI(), logged.NewIRI, "allocated IRI is pinned on the log")
}

func TestApplyOperation_UpdateReplacesValue(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	schema := testutil.MustCreate(t, s, ir.NewCreatePsmSchema())
	class := testutil.MustCreate(t, s, ir.NewCreatePsmClass(schema))

	held, err := s.ReadResource(ctx, class)
	require.NoError(t, err)
	genBefore := s.GenerationOf(class)

	testutil.MustApply(t, s, ir.NewSetTechnicalLabel(class, "renamed"))

	assert.Empty(t, held.(*ir.PsmClass).TechnicalLabel, "values handed out earlier never change")
	assert.Equal(t, "renamed", testutil.MustRead[*ir.PsmClass](t, s, class).TechnicalLabel)
	assert.Greater(t, s.GenerationOf(class), genBefore)
}

func TestListResourcesOfType_Sorted(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	schema := testutil.MustCreate(t, s, ir.NewCreatePsmSchema())
	b := ir.NewCreatePsmClass(schema)
	b.NewIRI = "https://example.org/b"
	a := ir.NewCreatePsmClass(schema)
	a.NewIRI = "https://example.org/a"
	testutil.MustApply(t, s, b)
	testutil.MustApply(t, s, a)

	classes, err := s.ListResourcesOfType(ctx, ir.TagPsmClass)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.org/a", "https://example.org/b"}, classes)

	owners, err := s.ListResourcesOfType(ctx, ir.TagPartOwner)
	require.NoError(t, err)
	assert.Len(t, owners, 3)

	all, err := s.ListResources(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	missing, err := s.ReadResource(ctx, "https://example.org/none")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestApplyOperation_RequestedIRIMustBeFree(t *testing.T) {
	s := newTestStore(t)
	schema := testutil.MustCreate(t, s, ir.NewCreatePsmSchema())
	op := ir.NewCreatePsmClass(schema)
	op.NewIRI = schema

	_, err := s.ApplyOperation(context.Background(), op)

	assert.True(t, engine.IsPreconditionError(err))
}

func TestApplyOperation_CanceledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ApplyOperation(ctx, ir.NewCreatePsmSchema())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.Generation())
}

func TestUUIDAllocator_Shape(t *testing.T) {
	a := NewUUIDAllocator("https://example.org/model")
	iri := a.Allocate("psm/class")
	assert.Regexp(t, `^https://example\.org/model/psm/class/[0-9a-f-]{36}$`, iri)
	assert.NotEqual(t, iri, a.Allocate("psm/class"))
}
