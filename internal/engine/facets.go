package engine

import (
	"context"

	"github.com/roach88/schemagraph/internal/ir"
)

func setHumanLabel(ctx context.Context, r ir.Reader, _ Allocator, op *ir.SetHumanLabel) ExecutorResult {
	res, fail := lookup[ir.HumanLabeled](ctx, r, op.Resource, "labeled resource")
	if fail != nil {
		return *fail
	}
	if !ir.Is(res, ir.TagHumanLabeled) {
		return Fail("The resource %s does not carry a human label.", op.Resource)
	}
	changed := res.Clone().(ir.HumanLabeled)
	changed.LabelFacet().HumanLabel = op.HumanLabel.Clone()
	changed.LabelFacet().HumanDescription = op.HumanDescription.Clone()
	return ExecutorResult{Changed: []ir.Resource{changed}}
}

func setTechnicalLabel(ctx context.Context, r ir.Reader, _ Allocator, op *ir.SetTechnicalLabel) ExecutorResult {
	res, fail := lookup[ir.TechnicallyLabeled](ctx, r, op.Resource, "technically labeled resource")
	if fail != nil {
		return *fail
	}
	if !ir.Is(res, ir.TagTechnicalLabeled) {
		return Fail("The resource %s does not carry a technical label.", op.Resource)
	}
	changed := res.Clone().(ir.TechnicallyLabeled)
	changed.TechnicalFacet().TechnicalLabel = op.TechnicalLabel
	return ExecutorResult{Changed: []ir.Resource{changed}}
}

func setInterpretation(ctx context.Context, r ir.Reader, _ Allocator, op *ir.SetInterpretation) ExecutorResult {
	res, fail := lookup[ir.Interpreted](ctx, r, op.Resource, "interpreted resource")
	if fail != nil {
		return *fail
	}
	if !ir.Is(res, ir.TagInterpreted) {
		return Fail("The resource %s cannot carry an interpretation.", op.Resource)
	}
	changed := res.Clone().(ir.Interpreted)
	changed.InterpretationFacet().Interpretation = op.Interpretation
	return ExecutorResult{Changed: []ir.Resource{changed}}
}
