package engine

import (
	"context"
	"slices"

	"github.com/roach88/schemagraph/internal/ir"
)

func setPsmClassExtends(ctx context.Context, r ir.Reader, _ Allocator, op *ir.SetPsmClassExtends) ExecutorResult {
	class, fail := lookup[*ir.PsmClass](ctx, r, op.Class, "structural class")
	if fail != nil {
		return *fail
	}
	if slices.Contains(op.Extends, op.Class) {
		return Fail("The class %s cannot extend itself.", op.Class)
	}
	if fail := checkTargets(ctx, r, op.Extends, "superclass", ir.TagPsmClass, ir.TagPsmClassReference); fail != nil {
		return *fail
	}
	changed := class.Clone().(*ir.PsmClass)
	changed.Extends = append([]string{}, op.Extends...)
	return ExecutorResult{Changed: []ir.Resource{changed}}
}

func setPsmPart(ctx context.Context, r ir.Reader, _ Allocator, op *ir.SetPsmPart) ExecutorResult {
	end, fail := lookup[*ir.PsmAssociationEnd](ctx, r, op.AssociationEnd, "association end")
	if fail != nil {
		return *fail
	}
	if op.Part != "" {
		if fail := checkTargets(ctx, r, []string{op.Part}, "association target",
			ir.TagPsmClass, ir.TagPsmClassReference, ir.TagPsmOr); fail != nil {
			return *fail
		}
	}
	changed := end.Clone().(*ir.PsmAssociationEnd)
	changed.Part = op.Part
	return ExecutorResult{Changed: []ir.Resource{changed}}
}

func setPsmDatatype(ctx context.Context, r ir.Reader, _ Allocator, op *ir.SetPsmDatatype) ExecutorResult {
	attr, fail := lookup[*ir.PsmAttribute](ctx, r, op.Attribute, "structural attribute")
	if fail != nil {
		return *fail
	}
	changed := attr.Clone().(*ir.PsmAttribute)
	changed.Datatype = op.Datatype
	return ExecutorResult{Changed: []ir.Resource{changed}}
}

func replacePsmParts(ctx context.Context, r ir.Reader, _ Allocator, op *ir.ReplacePsmParts) ExecutorResult {
	owner, fail := lookup[ir.PartOwner](ctx, r, op.Owner, "owner")
	if fail != nil {
		return *fail
	}
	if !ir.IsAny(owner, ir.TagPsmClass, ir.TagPsmContainer, ir.TagPsmSchema) {
		return Fail("The resource %s does not own structural parts.", op.Owner)
	}
	current := slices.Clone(owner.PartsFacet().Parts)
	proposed := slices.Clone(op.Parts)
	slices.Sort(current)
	slices.Sort(proposed)
	if !slices.Equal(current, proposed) {
		return Fail("The new parts of %s must be a reordering of the current parts.", op.Owner)
	}
	changed := owner.Clone().(ir.PartOwner)
	changed.PartsFacet().Parts = append([]string{}, op.Parts...)
	return ExecutorResult{Changed: []ir.Resource{changed}}
}
