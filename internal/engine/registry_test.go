package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schemagraph/internal/ir"
)

func noop(context.Context, ir.Reader, Allocator, ir.Operation) ExecutorResult {
	return ExecutorResult{}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(ir.OpCreatePsmSchema, noop))

	err := r.Register(ir.OpCreatePsmSchema, noop)

	var de *DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ErrCodeDuplicateExecutor, de.Code)
	assert.Panics(t, func() { r.MustRegister(ir.OpCreatePsmSchema, noop) })
}

func TestRegistry_ResolveNoExecutor(t *testing.T) {
	r := NewRegistry()

	_, _, err := r.Resolve(ir.NewCreatePsmSchema())

	var de *DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ErrCodeNoExecutor, de.Code)
	assert.True(t, IsDispatchError(err))
	assert.False(t, IsPreconditionError(err))
}

func TestRegistry_ResolveAmbiguous(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(ir.OpCreatePsmSchema, noop)
	r.MustRegister(ir.TagOperation, noop)

	_, _, err := r.Resolve(ir.NewCreatePsmSchema())

	var de *DispatchError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ErrCodeAmbiguousExecutor, de.Code)
	assert.ElementsMatch(t, []ir.Type{ir.OpCreatePsmSchema, ir.TagOperation}, de.Matches)
	assert.Contains(t, de.Error(), string(ErrCodeAmbiguousExecutor))
}

func TestRegistry_ResolveSingle(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(ir.OpCreatePsmSchema, noop)

	tag, ex, err := r.Resolve(ir.NewCreatePsmSchema())

	require.NoError(t, err)
	assert.Equal(t, ir.OpCreatePsmSchema, tag)
	assert.NotNil(t, ex)
}

func TestDefault_CoversEveryOperationKind(t *testing.T) {
	r := Default()
	registered := r.Types()

	for _, tag := range []ir.Type{
		ir.OpCreatePsmSchema, ir.OpSetPsmSchemaRoots, ir.OpCreatePsmClass,
		ir.OpCreatePsmAttribute, ir.OpCreatePsmAssociationEnd, ir.OpCreatePsmClassReference,
		ir.OpCreatePsmOr, ir.OpSetPsmOrChoices, ir.OpCreatePsmInclude, ir.OpCreatePsmContainer,
		ir.OpCreatePsmExternalRoot, ir.OpSetPsmClassExtends, ir.OpSetPsmPart, ir.OpSetPsmDatatype,
		ir.OpReplacePsmParts, ir.OpDeletePsmAttribute, ir.OpDeletePsmAssociationEnd,
		ir.OpDeletePsmInclude, ir.OpDeletePsmContainer, ir.OpDeletePsmClass,
		ir.OpDeletePsmClassReference, ir.OpDeletePsmOr, ir.OpDeletePsmExternalRoot,
		ir.OpSetHumanLabel, ir.OpSetTechnicalLabel, ir.OpSetInterpretation,
		ir.OpCreatePimSchema, ir.OpCreatePimClass, ir.OpCreatePimAttribute,
		ir.OpCreatePimAssociation, ir.OpSetPimClassExtends, ir.OpSetPimCardinality,
		ir.OpDeletePimAttribute, ir.OpDeletePimAssociation, ir.OpDeletePimClass,
		ir.OpImportResources,
	} {
		assert.Contains(t, registered, tag)

		op, err := ir.NewOperation(tag)
		require.NoError(t, err)
		_, _, err = r.Resolve(op)
		assert.NoError(t, err, "resolve %s", ir.LocalName(tag))
	}
}

func TestTyped_WrongShape(t *testing.T) {
	ex := Typed(func(context.Context, ir.Reader, Allocator, *ir.CreatePsmClass) ExecutorResult {
		return ExecutorResult{}
	})

	res := ex(context.Background(), nil, nil, ir.NewCreatePsmSchema())

	assert.True(t, res.Failed)
	assert.NotEmpty(t, res.Message)
}
