package engine

import (
	"context"
	"slices"

	"github.com/roach88/schemagraph/internal/ir"
)

func createPimSchema(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePimSchema) ExecutorResult {
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "pim/schema")
	if fail != nil {
		return *fail
	}
	schema := ir.NewPimSchema()
	schema.SetIRI(iri)
	schema.HumanLabel = op.HumanLabel.Clone()
	schema.HumanDescription = op.HumanDescription.Clone()
	return ExecutorResult{
		Created: []ir.Resource{schema},
		Payload: ir.CreatedPayload{IRI: iri},
	}
}

func createPimClass(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePimClass) ExecutorResult {
	schema, fail := lookup[*ir.PimSchema](ctx, r, op.Schema, "conceptual schema")
	if fail != nil {
		return *fail
	}
	if fail := checkTargets(ctx, r, op.Extends, "superclass", ir.TagPimClass); fail != nil {
		return *fail
	}
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "pim/class")
	if fail != nil {
		return *fail
	}
	class := ir.NewPimClass()
	class.SetIRI(iri)
	class.Interpretation = op.Interpretation
	class.HumanLabel = op.HumanLabel.Clone()
	class.HumanDescription = op.HumanDescription.Clone()
	class.TechnicalLabel = op.TechnicalLabel
	class.Extends = append(class.Extends, op.Extends...)
	class.IsCodelist = op.IsCodelist
	return ExecutorResult{
		Created: []ir.Resource{class},
		Changed: []ir.Resource{withPart(schema, iri)},
		Payload: ir.CreatedPayload{IRI: iri},
	}
}

func checkCardinality(c *ir.Cardinality) *ExecutorResult {
	if c == nil {
		return nil
	}
	if c.Min < 0 || (c.Max != ir.Unbounded && c.Max < c.Min) {
		f := Fail("The cardinality [%d..%d] is not valid.", c.Min, c.Max)
		return &f
	}
	return nil
}

func createPimAttribute(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePimAttribute) ExecutorResult {
	if _, fail := lookup[*ir.PimClass](ctx, r, op.OwnerClass, "conceptual class"); fail != nil {
		return *fail
	}
	if fail := checkCardinality(op.Cardinality); fail != nil {
		return *fail
	}
	schema, fail := owningSchema(ctx, r, ir.TagPimSchema, op.OwnerClass)
	if fail != nil {
		return *fail
	}
	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "pim/attribute")
	if fail != nil {
		return *fail
	}
	attr := ir.NewPimAttribute()
	attr.SetIRI(iri)
	attr.OwnerClass = op.OwnerClass
	attr.Interpretation = op.Interpretation
	attr.Datatype = op.Datatype
	if op.Cardinality != nil {
		c := *op.Cardinality
		attr.Cardinality = &c
	}
	attr.HumanLabel = op.HumanLabel.Clone()
	attr.HumanDescription = op.HumanDescription.Clone()
	attr.TechnicalLabel = op.TechnicalLabel
	return ExecutorResult{
		Created: []ir.Resource{attr},
		Changed: []ir.Resource{withPart(schema, iri)},
		Payload: ir.CreatedPayload{IRI: iri},
	}
}

func createPimAssociation(ctx context.Context, r ir.Reader, alloc Allocator, op *ir.CreatePimAssociation) ExecutorResult {
	if len(op.Classes) != 2 {
		return Fail("An association needs exactly two classes, got %d.", len(op.Classes))
	}
	if len(op.NewEndIRIs) != 0 && len(op.NewEndIRIs) != len(op.Classes) {
		return Fail("An association needs either no end IRIs or exactly %d.", len(op.Classes))
	}
	if fail := checkTargets(ctx, r, op.Classes, "association class", ir.TagPimClass); fail != nil {
		return *fail
	}
	schema, fail := owningSchema(ctx, r, ir.TagPimSchema, op.Classes[0])
	if fail != nil {
		return *fail
	}

	iri, fail := allocate(ctx, r, alloc, op.NewIRI, "pim/association")
	if fail != nil {
		return *fail
	}
	assoc := ir.NewPimAssociation()
	assoc.SetIRI(iri)
	assoc.Interpretation = op.Interpretation
	assoc.HumanLabel = op.HumanLabel.Clone()
	assoc.HumanDescription = op.HumanDescription.Clone()
	assoc.IsOriented = op.IsOriented

	created := []ir.Resource{assoc}
	used := []string{iri}
	for i, class := range op.Classes {
		var requested string
		if len(op.NewEndIRIs) > 0 {
			requested = op.NewEndIRIs[i]
		}
		endIRI, fail := allocate(ctx, r, alloc, requested, "pim/association-end")
		if fail != nil {
			return *fail
		}
		if slices.Contains(used, endIRI) {
			return Fail("The IRI %s is requested more than once.", endIRI)
		}
		used = append(used, endIRI)
		end := ir.NewPimAssociationEnd()
		end.SetIRI(endIRI)
		end.Part = class
		assoc.Ends = append(assoc.Ends, endIRI)
		created = append(created, end)
	}

	changed := schema.Clone().(ir.PartOwner)
	changed.PartsFacet().Parts = append(changed.PartsFacet().Parts, used...)
	return ExecutorResult{
		Created: created,
		Changed: []ir.Resource{changed},
		Payload: ir.CreatedAssociationPayload{IRI: iri, Ends: slices.Clone(assoc.Ends)},
	}
}

func setPimClassExtends(ctx context.Context, r ir.Reader, _ Allocator, op *ir.SetPimClassExtends) ExecutorResult {
	class, fail := lookup[*ir.PimClass](ctx, r, op.Class, "conceptual class")
	if fail != nil {
		return *fail
	}
	if slices.Contains(op.Extends, op.Class) {
		return Fail("The class %s cannot extend itself.", op.Class)
	}
	if fail := checkTargets(ctx, r, op.Extends, "superclass", ir.TagPimClass); fail != nil {
		return *fail
	}
	changed := class.Clone().(*ir.PimClass)
	changed.Extends = append([]string{}, op.Extends...)
	return ExecutorResult{Changed: []ir.Resource{changed}}
}

func setPimCardinality(ctx context.Context, r ir.Reader, _ Allocator, op *ir.SetPimCardinality) ExecutorResult {
	res, fail := lookup[ir.Resource](ctx, r, op.Resource, "resource")
	if fail != nil {
		return *fail
	}
	if fail := checkCardinality(op.Cardinality); fail != nil {
		return *fail
	}
	var card *ir.Cardinality
	if op.Cardinality != nil {
		c := *op.Cardinality
		card = &c
	}
	switch v := res.(type) {
	case *ir.PimAttribute:
		changed := v.Clone().(*ir.PimAttribute)
		changed.Cardinality = card
		return ExecutorResult{Changed: []ir.Resource{changed}}
	case *ir.PimAssociationEnd:
		changed := v.Clone().(*ir.PimAssociationEnd)
		changed.Cardinality = card
		return ExecutorResult{Changed: []ir.Resource{changed}}
	}
	return Fail("The resource %s has no cardinality.", op.Resource)
}

func deletePimAttribute(ctx context.Context, r ir.Reader, _ Allocator, op *ir.DeletePimAttribute) ExecutorResult {
	if _, fail := lookup[*ir.PimAttribute](ctx, r, op.Attribute, "conceptual attribute"); fail != nil {
		return *fail
	}
	schema, fail := owningSchema(ctx, r, ir.TagPimSchema, op.Attribute)
	if fail != nil {
		return *fail
	}
	return ExecutorResult{
		Changed: []ir.Resource{withoutPart(schema, op.Attribute)},
		Deleted: []string{op.Attribute},
	}
}

func deletePimAssociation(ctx context.Context, r ir.Reader, _ Allocator, op *ir.DeletePimAssociation) ExecutorResult {
	assoc, fail := lookup[*ir.PimAssociation](ctx, r, op.Association, "association")
	if fail != nil {
		return *fail
	}
	schema, fail := owningSchema(ctx, r, ir.TagPimSchema, op.Association)
	if fail != nil {
		return *fail
	}
	deleted := append([]string{op.Association}, assoc.Ends...)
	changed := schema.Clone().(ir.PartOwner)
	for _, iri := range deleted {
		changed.PartsFacet().Parts = ir.Without(changed.PartsFacet().Parts, iri)
	}
	return ExecutorResult{
		Changed: []ir.Resource{changed},
		Deleted: deleted,
	}
}

func deletePimClass(ctx context.Context, r ir.Reader, _ Allocator, op *ir.DeletePimClass) ExecutorResult {
	if _, fail := lookup[*ir.PimClass](ctx, r, op.Class, "conceptual class"); fail != nil {
		return *fail
	}
	attrs, fail := readAll(ctx, r, ir.TagPimAttribute)
	if fail != nil {
		return *fail
	}
	for _, res := range attrs {
		if a, ok := res.(*ir.PimAttribute); ok && a.OwnerClass == op.Class {
			return Fail("The class %s still owns the attribute %s.", op.Class, a.IRI())
		}
	}
	ends, fail := readAll(ctx, r, ir.TagPimAssociationEnd)
	if fail != nil {
		return *fail
	}
	for _, res := range ends {
		if e, ok := res.(*ir.PimAssociationEnd); ok && e.Part == op.Class {
			return Fail("The class %s is still the target of the association end %s.", op.Class, e.IRI())
		}
	}
	classes, fail := readAll(ctx, r, ir.TagPimClass)
	if fail != nil {
		return *fail
	}
	for _, res := range classes {
		if c, ok := res.(*ir.PimClass); ok && slices.Contains(c.Extends, op.Class) {
			return Fail("The class %s is still extended by %s.", op.Class, c.IRI())
		}
	}
	schema, fail := owningSchema(ctx, r, ir.TagPimSchema, op.Class)
	if fail != nil {
		return *fail
	}
	return ExecutorResult{
		Changed: []ir.Resource{withoutPart(schema, op.Class)},
		Deleted: []string{op.Class},
	}
}
