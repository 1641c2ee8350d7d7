package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/schemagraph/internal/ir"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MustApply applies op and fails the test on error.
func MustApply(t testing.TB, w ir.Writer, op ir.Operation) *ir.OperationResult {
	t.Helper()
	res, err := w.ApplyOperation(context.Background(), op)
	kind, _ := ir.PrimaryTag(op.Types())
	require.NoError(t, err, "apply %s", ir.LocalName(kind))
	return res
}

// MustCreate applies a create operation and returns the new resource IRI.
func MustCreate(t testing.TB, w ir.Writer, op ir.Operation) string {
	t.Helper()
	iri := MustApply(t, w, op).CreatedIRI()
	require.NotEmpty(t, iri, "create operation returned no IRI")
	return iri
}

// MustRead reads iri as a T and fails the test when it is absent or has
// another kind.
func MustRead[T ir.Resource](t testing.TB, r ir.Reader, iri string) T {
	t.Helper()
	res, err := r.ReadResource(context.Background(), iri)
	require.NoError(t, err)
	require.NotNil(t, res, "resource %s does not exist", iri)
	typed, ok := res.(T)
	require.True(t, ok, "resource %s is %T", iri, res)
	return typed
}

// StructuralFixture is the IRIs of a small structural schema:
//
//	Schema (root: Person)
//	  Person { name, address -> Address }
//	  Address { street }
type StructuralFixture struct {
	Schema, Person, Name, AddressEnd, Address, Street string
}

// BuildStructural creates the StructuralFixture schema through w. Classes
// are interpreted by the conceptual IRIs in interp, keyed by the same names
// ("Person", "name", ...); missing keys leave the reference empty.
func BuildStructural(t testing.TB, w ir.Writer, interp map[string]string) StructuralFixture {
	t.Helper()
	var f StructuralFixture
	f.Schema = MustCreate(t, w, ir.NewCreatePsmSchema())

	person := ir.NewCreatePsmClass(f.Schema)
	person.Interpretation = interp["Person"]
	person.TechnicalLabel = "person"
	f.Person = MustCreate(t, w, person)

	address := ir.NewCreatePsmClass(f.Schema)
	address.Interpretation = interp["Address"]
	address.TechnicalLabel = "address"
	f.Address = MustCreate(t, w, address)

	name := ir.NewCreatePsmAttribute(f.Person)
	name.Interpretation = interp["name"]
	name.TechnicalLabel = "name"
	f.Name = MustCreate(t, w, name)

	end := ir.NewCreatePsmAssociationEnd(f.Person, f.Address)
	end.Interpretation = interp["address"]
	end.TechnicalLabel = "address"
	f.AddressEnd = MustCreate(t, w, end)

	street := ir.NewCreatePsmAttribute(f.Address)
	street.Interpretation = interp["street"]
	street.TechnicalLabel = "street"
	f.Street = MustCreate(t, w, street)

	MustApply(t, w, ir.NewSetPsmSchemaRoots(f.Schema, f.Person))
	return f
}

// ConceptualFixture is the IRIs of a small conceptual model:
//
//	Agent { name }
//	Person extends Agent
//	Address { street }
//	address: Person -> Address
type ConceptualFixture struct {
	Schema, Agent, Person, Address, Name, Street, Association string
	Ends                                                    []string
}

// BuildConceptual creates the ConceptualFixture model through w.
func BuildConceptual(t testing.TB, w ir.Writer) ConceptualFixture {
	t.Helper()
	var f ConceptualFixture
	f.Schema = MustCreate(t, w, ir.NewCreatePimSchema())

	f.Agent = MustCreate(t, w, ir.NewCreatePimClass(f.Schema))
	person := ir.NewCreatePimClass(f.Schema)
	person.Extends = []string{f.Agent}
	f.Person = MustCreate(t, w, person)
	f.Address = MustCreate(t, w, ir.NewCreatePimClass(f.Schema))

	f.Name = MustCreate(t, w, ir.NewCreatePimAttribute(f.Agent))
	f.Street = MustCreate(t, w, ir.NewCreatePimAttribute(f.Address))

	res := MustApply(t, w, ir.NewCreatePimAssociation(f.Person, f.Address))
	payload, ok := res.Payload.(ir.CreatedAssociationPayload)
	require.True(t, ok, "association payload is %T", res.Payload)
	f.Association = payload.IRI
	f.Ends = payload.Ends
	return f
}

// Interpretations maps fixture names to conceptual IRIs, ready for
// BuildStructural. The structural Person class is interpreted by the
// conceptual Person, while its name attribute is interpreted by the
// attribute owned by the superclass Agent.
func (f ConceptualFixture) Interpretations() map[string]string {
	return map[string]string{
		"Person":  f.Person,
		"Address": f.Address,
		"name":    f.Name,
		"address": f.Association,
		"street":  f.Street,
	}
}
