package engine

import (
	"context"
	"slices"

	"github.com/roach88/schemagraph/internal/ir"
)

// detachPart deletes child from owner and from the schema that lists it.
func detachPart(ctx context.Context, r ir.Reader, ownerIRI, childIRI string, tag ir.Type, what string) (ir.Resource, ExecutorResult) {
	child, fail := lookup[ir.Resource](ctx, r, childIRI, what)
	if fail != nil {
		return nil, *fail
	}
	if !ir.Is(child, tag) {
		return nil, Fail("The resource %s is not a %s.", childIRI, what)
	}
	owner, fail := lookup[ir.PartOwner](ctx, r, ownerIRI, "owner")
	if fail != nil {
		return nil, *fail
	}
	if !listsPart(owner, childIRI) {
		return nil, Fail("The %s %s is not a part of %s.", what, childIRI, ownerIRI)
	}
	schema, fail := owningSchema(ctx, r, ir.TagPsmSchema, childIRI)
	if fail != nil {
		return nil, *fail
	}
	return child, ExecutorResult{
		Changed: []ir.Resource{withoutPart(owner, childIRI), withoutPart(schema, childIRI)},
		Deleted: []string{childIRI},
	}
}

func deletePsmAttribute(ctx context.Context, r ir.Reader, _ Allocator, op *ir.DeletePsmAttribute) ExecutorResult {
	_, res := detachPart(ctx, r, op.Owner, op.Attribute, ir.TagPsmAttribute, "structural attribute")
	return res
}

func deletePsmAssociationEnd(ctx context.Context, r ir.Reader, _ Allocator, op *ir.DeletePsmAssociationEnd) ExecutorResult {
	_, res := detachPart(ctx, r, op.Owner, op.AssociationEnd, ir.TagPsmAssociationEnd, "association end")
	return res
}

func deletePsmInclude(ctx context.Context, r ir.Reader, _ Allocator, op *ir.DeletePsmInclude) ExecutorResult {
	_, res := detachPart(ctx, r, op.Owner, op.Include, ir.TagPsmInclude, "include")
	return res
}

func deletePsmContainer(ctx context.Context, r ir.Reader, _ Allocator, op *ir.DeletePsmContainer) ExecutorResult {
	child, res := detachPart(ctx, r, op.Owner, op.Container, ir.TagPsmContainer, "container")
	if res.Failed {
		return res
	}
	if parts := ir.PartsOf(child); len(parts) > 0 {
		return Fail("The container %s still has %d parts.", op.Container, len(parts))
	}
	return res
}

// psmReferrers lists the structural resources that point at iri through an
// ownership-independent edge: superclass, association target, include or
// choice.
func psmReferrers(ctx context.Context, r ir.Reader, iri string) ([]string, *ExecutorResult) {
	var out []string
	for _, tag := range []ir.Type{ir.TagPsmClass, ir.TagPsmAssociationEnd, ir.TagPsmInclude, ir.TagPsmOr} {
		resources, fail := readAll(ctx, r, tag)
		if fail != nil {
			return nil, fail
		}
		for _, res := range resources {
			var refers bool
			switch v := res.(type) {
			case *ir.PsmClass:
				refers = slices.Contains(v.Extends, iri)
			case *ir.PsmAssociationEnd:
				refers = v.Part == iri
			case *ir.PsmInclude:
				refers = v.IncludesClass == iri
			case *ir.PsmOr:
				refers = slices.Contains(v.Choices, iri)
			}
			if refers && res.IRI() != iri {
				out = append(out, res.IRI())
			}
		}
	}
	return out, nil
}

// detachFromSchema deletes a schema-level resource, dropping it from the
// schema's parts and roots.
func detachFromSchema(ctx context.Context, r ir.Reader, iri, what string) ExecutorResult {
	referrers, fail := psmReferrers(ctx, r, iri)
	if fail != nil {
		return *fail
	}
	if len(referrers) > 0 {
		return Fail("The %s %s is still referenced by %s.", what, iri, referrers[0])
	}
	owner, fail := owningSchema(ctx, r, ir.TagPsmSchema, iri)
	if fail != nil {
		return *fail
	}
	schema := withoutPart(owner, iri).(*ir.PsmSchema)
	schema.Roots = ir.Without(schema.Roots, iri)
	return ExecutorResult{
		Changed: []ir.Resource{schema},
		Deleted: []string{iri},
	}
}

func deletePsmClass(ctx context.Context, r ir.Reader, _ Allocator, op *ir.DeletePsmClass) ExecutorResult {
	class, fail := lookup[*ir.PsmClass](ctx, r, op.Class, "structural class")
	if fail != nil {
		return *fail
	}
	if len(class.Parts) > 0 {
		return Fail("The class %s still has %d parts.", op.Class, len(class.Parts))
	}
	return detachFromSchema(ctx, r, op.Class, "class")
}

func deletePsmClassReference(ctx context.Context, r ir.Reader, _ Allocator, op *ir.DeletePsmClassReference) ExecutorResult {
	if _, fail := lookup[*ir.PsmClassReference](ctx, r, op.ClassReference, "class reference"); fail != nil {
		return *fail
	}
	return detachFromSchema(ctx, r, op.ClassReference, "class reference")
}

func deletePsmOr(ctx context.Context, r ir.Reader, _ Allocator, op *ir.DeletePsmOr) ExecutorResult {
	if _, fail := lookup[*ir.PsmOr](ctx, r, op.Or, "or"); fail != nil {
		return *fail
	}
	return detachFromSchema(ctx, r, op.Or, "or")
}

func deletePsmExternalRoot(ctx context.Context, r ir.Reader, _ Allocator, op *ir.DeletePsmExternalRoot) ExecutorResult {
	if _, fail := lookup[*ir.PsmExternalRoot](ctx, r, op.ExternalRoot, "external root"); fail != nil {
		return *fail
	}
	return detachFromSchema(ctx, r, op.ExternalRoot, "external root")
}
