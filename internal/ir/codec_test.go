package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalResource_DispatchesOnPrimaryTag(t *testing.T) {
	cls := NewPsmClass()
	cls.SetIRI("https://example.org/psm/class/1")
	cls.Interpretation = "https://example.org/pim/class/1"
	cls.HumanLabel = LanguageString{"en": "Person"}
	cls.Parts = []string{"https://example.org/psm/attribute/1"}

	data, err := MarshalResource(cls)
	require.NoError(t, err)

	decoded, err := UnmarshalResource(data)
	require.NoError(t, err)
	require.IsType(t, &PsmClass{}, decoded)
	if diff := cmp.Diff(cls, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, Is(decoded, TagHumanLabeled))
	assert.True(t, Is(decoded, TagInterpreted))
}

func TestUnmarshalResource_UnknownKind(t *testing.T) {
	_, err := UnmarshalResource([]byte(`{"iri":"x","types":["https://example.org/Unknown"]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no known kind")
}

func TestUnmarshalOperation_RejectsPlainResource(t *testing.T) {
	data, err := MarshalResource(NewPimClass())
	require.NoError(t, err)

	_, err = UnmarshalOperation(data)
	require.Error(t, err)
}

func TestImportResources_RoundTripsEmbeddedResources(t *testing.T) {
	attr := NewPimAttribute()
	attr.SetIRI("https://example.org/pim/attribute/1")
	attr.OwnerClass = "https://example.org/pim/class/1"
	attr.Cardinality = &Cardinality{Min: 0, Max: Unbounded}
	op := NewImportResources(NewPimSchema(), attr)

	data, err := MarshalResource(op)
	require.NoError(t, err)
	decoded, err := UnmarshalOperation(data)
	require.NoError(t, err)

	imp, ok := decoded.(*ImportResources)
	require.True(t, ok)
	require.Len(t, imp.Resources, 2)
	assert.IsType(t, &PimSchema{}, imp.Resources[0])
	assert.Equal(t, attr, imp.Resources[1])
}

func TestClone_IsDeep(t *testing.T) {
	schema := NewPsmSchema()
	schema.Parts = append(schema.Parts, "a")
	schema.HumanLabel = LanguageString{"en": "Schema"}

	clone := schema.Clone().(*PsmSchema)
	clone.Parts[0] = "b"
	clone.HumanLabel["en"] = "Changed"
	clone.Tags[0] = TagPsmClass

	assert.Equal(t, []string{"a"}, schema.Parts)
	assert.Equal(t, "Schema", schema.HumanLabel["en"])
	assert.True(t, Is(schema, TagPsmSchema))
}

func TestCloneOperation_KeepsIdentityAndFields(t *testing.T) {
	op := NewCreatePsmClass("https://example.org/schema")
	op.Extends = []string{"https://example.org/super"}
	op.Relink("https://example.org/op/2", "https://example.org/op/1")

	clone := op.Clone().(*CreatePsmClass)
	assert.Equal(t, op, clone)

	clone.Extends[0] = "changed"
	assert.Equal(t, "https://example.org/super", op.Extends[0])
}

func TestPinIdentities(t *testing.T) {
	create := NewCreatePsmClass("s")
	create.PinIdentities([]string{"c1", "other"})
	assert.Equal(t, "c1", create.NewIRI)

	requested := NewCreatePsmClass("s")
	requested.NewIRI = "fixed"
	requested.PinIdentities([]string{"c1"})
	assert.Equal(t, "fixed", requested.NewIRI)

	assoc := NewCreatePimAssociation("a", "b")
	assoc.PinIdentities([]string{"assoc", "end-1", "end-2"})
	assert.Equal(t, "assoc", assoc.NewIRI)
	assert.Equal(t, []string{"end-1", "end-2"}, assoc.NewEndIRIs)
}

func TestNewOperation(t *testing.T) {
	op, err := NewOperation(OpDeletePsmClass)
	require.NoError(t, err)
	assert.IsType(t, &DeletePsmClass{}, op)
	assert.Equal(t, []Type{TagOperation, OpDeletePsmClass}, op.Types())

	_, err = NewOperation(TagPsmClass)
	require.Error(t, err)
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "Class", LocalName(TagPsmClass))
	assert.Equal(t, "create-class", LocalName(OpCreatePsmClass))
	assert.Equal(t, "plain", LocalName("plain"))
}
