package engine

import (
	"context"
	"slices"

	"github.com/roach88/schemagraph/internal/ir"
)

func createPsmSchema(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePsmSchema) ExecutorResult {
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "psm/schema")
	if fail != nil {
		return *fail
	}
	schema := ir.NewPsmSchema()
	schema.SetIRI(iri)
	schema.HumanLabel = op.HumanLabel.Clone()
	schema.HumanDescription = op.HumanDescription.Clone()
	schema.TechnicalLabel = op.TechnicalLabel
	return ExecutorResult{
		Created: []ir.Resource{schema},
		Payload: ir.CreatedPayload{IRI: iri},
	}
}

func setPsmSchemaRoots(ctx context.Context, r ir.Reader, _ Allocator, op *ir.SetPsmSchemaRoots) ExecutorResult {
	schema, fail := lookup[*ir.PsmSchema](ctx, r, op.Schema, "structural schema")
	if fail != nil {
		return *fail
	}
	for _, root := range op.Roots {
		if !listsPart(schema, root) {
			return Fail("The root %s is not part of the schema %s.", root, schema.IRI())
		}
	}
	changed := schema.Clone().(*ir.PsmSchema)
	changed.Roots = slices.Clone(op.Roots)
	if changed.Roots == nil {
		changed.Roots = []string{}
	}
	return ExecutorResult{Changed: []ir.Resource{changed}}
}

// checkTargets verifies that every iri names a resource carrying one of tags.
func checkTargets(ctx context.Context, r ir.Reader, iris []string, what string, tags ...ir.Type) *ExecutorResult {
	for _, iri := range iris {
		res, err := r.ReadResource(ctx, iri)
		if err != nil {
			f := Fail("The resource %s could not be read: %v.", iri, err)
			return &f
		}
		if res == nil {
			f := Fail("The %s %s does not exist.", what, iri)
			return &f
		}
		if !ir.IsAny(res, tags...) {
			f := Fail("The resource %s cannot be used as a %s.", iri, what)
			return &f
		}
	}
	return nil
}

func createPsmClass(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePsmClass) ExecutorResult {
	schema, fail := lookup[*ir.PsmSchema](ctx, r, op.Schema, "structural schema")
	if fail != nil {
		return *fail
	}
	if fail := checkTargets(ctx, r, op.Extends, "superclass", ir.TagPsmClass, ir.TagPsmClassReference); fail != nil {
		return *fail
	}
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "psm/class")
	if fail != nil {
		return *fail
	}
	class := ir.NewPsmClass()
	class.SetIRI(iri)
	class.Interpretation = op.Interpretation
	class.HumanLabel = op.HumanLabel.Clone()
	class.HumanDescription = op.HumanDescription.Clone()
	class.TechnicalLabel = op.TechnicalLabel
	class.Extends = append(class.Extends, op.Extends...)
	return ExecutorResult{
		Created: []ir.Resource{class},
		Changed: []ir.Resource{withPart(schema, iri)},
		Payload: ir.CreatedPayload{IRI: iri},
	}
}

// structuralOwner resolves a class or container that new parts can join,
// together with the schema that lists it.
func structuralOwner(ctx context.Context, r ir.Reader, iri string) (ir.PartOwner, ir.PartOwner, *ExecutorResult) {
	owner, fail := lookup[ir.PartOwner](ctx, r, iri, "owner")
	if fail != nil {
		return nil, nil, fail
	}
	if !ir.IsAny(owner, ir.TagPsmClass, ir.TagPsmContainer) {
		f := Fail("The resource %s is neither a structural class nor a container.", iri)
		return nil, nil, &f
	}
	schema, fail := owningSchema(ctx, r, ir.TagPsmSchema, iri)
	if fail != nil {
		return nil, nil, fail
	}
	return owner, schema, nil
}

// attachPart creates res under owner and schema.
func attachPart(owner, schema ir.PartOwner, res ir.Resource) ExecutorResult {
	return ExecutorResult{
		Created: []ir.Resource{res},
		Changed: []ir.Resource{withPart(owner, res.IRI()), withPart(schema, res.IRI())},
		Payload: ir.CreatedPayload{IRI: res.IRI()},
	}
}

func createPsmAttribute(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePsmAttribute) ExecutorResult {
	owner, schema, fail := structuralOwner(ctx, r, op.Owner)
	if fail != nil {
		return *fail
	}
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "psm/attribute")
	if fail != nil {
		return *fail
	}
	attr := ir.NewPsmAttribute()
	attr.SetIRI(iri)
	attr.Interpretation = op.Interpretation
	attr.Datatype = op.Datatype
	attr.HumanLabel = op.HumanLabel.Clone()
	attr.HumanDescription = op.HumanDescription.Clone()
	attr.TechnicalLabel = op.TechnicalLabel
	return attachPart(owner, schema, attr)
}

func createPsmAssociationEnd(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePsmAssociationEnd) ExecutorResult {
	owner, schema, fail := structuralOwner(ctx, r, op.Owner)
	if fail != nil {
		return *fail
	}
	if op.Part != "" {
		if fail := checkTargets(ctx, r, []string{op.Part}, "association target",
			ir.TagPsmClass, ir.TagPsmClassReference, ir.TagPsmOr); fail != nil {
			return *fail
		}
	}
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "psm/association-end")
	if fail != nil {
		return *fail
	}
	end := ir.NewPsmAssociationEnd()
	end.SetIRI(iri)
	end.Part = op.Part
	end.Interpretation = op.Interpretation
	end.HumanLabel = op.HumanLabel.Clone()
	end.HumanDescription = op.HumanDescription.Clone()
	end.TechnicalLabel = op.TechnicalLabel
	return attachPart(owner, schema, end)
}

func createPsmClassReference(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePsmClassReference) ExecutorResult {
	schema, fail := lookup[*ir.PsmSchema](ctx, r, op.Schema, "structural schema")
	if fail != nil {
		return *fail
	}
	if op.Specification == "" || op.Part == "" {
		return Fail("A class reference needs both a specification and a class.")
	}
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "psm/class-reference")
	if fail != nil {
		return *fail
	}
	ref := ir.NewPsmClassReference()
	ref.SetIRI(iri)
	ref.Specification = op.Specification
	ref.Part = op.Part
	return ExecutorResult{
		Created: []ir.Resource{ref},
		Changed: []ir.Resource{withPart(schema, iri)},
		Payload: ir.CreatedPayload{IRI: iri},
	}
}

var choiceTags = []ir.Type{ir.TagPsmClass, ir.TagPsmClassReference}

func createPsmOr(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePsmOr) ExecutorResult {
	schema, fail := lookup[*ir.PsmSchema](ctx, r, op.Schema, "structural schema")
	if fail != nil {
		return *fail
	}
	if fail := checkTargets(ctx, r, op.Choices, "choice", choiceTags...); fail != nil {
		return *fail
	}
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "psm/or")
	if fail != nil {
		return *fail
	}
	or := ir.NewPsmOr()
	or.SetIRI(iri)
	or.Choices = append(or.Choices, op.Choices...)
	return ExecutorResult{
		Created: []ir.Resource{or},
		Changed: []ir.Resource{withPart(schema, iri)},
		Payload: ir.CreatedPayload{IRI: iri},
	}
}

func setPsmOrChoices(ctx context.Context, r ir.Reader, _ Allocator, op *ir.SetPsmOrChoices) ExecutorResult {
	or, fail := lookup[*ir.PsmOr](ctx, r, op.Or, "or")
	if fail != nil {
		return *fail
	}
	if fail := checkTargets(ctx, r, op.Choices, "choice", choiceTags...); fail != nil {
		return *fail
	}
	changed := or.Clone().(*ir.PsmOr)
	changed.Choices = append([]string{}, op.Choices...)
	return ExecutorResult{Changed: []ir.Resource{changed}}
}

func createPsmInclude(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePsmInclude) ExecutorResult {
	owner, schema, fail := structuralOwner(ctx, r, op.Owner)
	if fail != nil {
		return *fail
	}
	if _, fail := lookup[*ir.PsmClass](ctx, r, op.IncludesClass, "included class"); fail != nil {
		return *fail
	}
	if op.IncludesClass == op.Owner {
		return Fail("The class %s cannot include itself.", op.Owner)
	}
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "psm/include")
	if fail != nil {
		return *fail
	}
	include := ir.NewPsmInclude()
	include.SetIRI(iri)
	include.IncludesClass = op.IncludesClass
	return attachPart(owner, schema, include)
}

func createPsmContainer(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePsmContainer) ExecutorResult {
	owner, schema, fail := structuralOwner(ctx, r, op.Owner)
	if fail != nil {
		return *fail
	}
	switch op.ContainerType {
	case ir.ContainerSequence, ir.ContainerChoice:
	default:
		return Fail("The container type %q is not supported.", op.ContainerType)
	}
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "psm/container")
	if fail != nil {
		return *fail
	}
	container := ir.NewPsmContainer(op.ContainerType)
	container.SetIRI(iri)
	return attachPart(owner, schema, container)
}

func createPsmExternalRoot(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePsmExternalRoot) ExecutorResult {
	schema, fail := lookup[*ir.PsmSchema](ctx, r, op.Schema, "structural schema")
	if fail != nil {
		return *fail
	}
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "psm/external-root")
	if fail != nil {
		return *fail
	}
	root := ir.NewPsmExternalRoot()
	root.SetIRI(iri)
	root.ExternalTypes = append(root.ExternalTypes, op.ExternalTypes...)
	return ExecutorResult{
		Created: []ir.Resource{root},
		Changed: []ir.Resource{withPart(schema, iri)},
		Payload: ir.CreatedPayload{IRI: iri},
	}
}
