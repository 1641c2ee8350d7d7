package engine

import (
	"context"

	"github.com/roach88/schemagraph/internal/ir"
)

// importResources creates the resources that are missing and replaces the
// ones already present. Operation records cannot be imported.
func importResources(ctx context.Context, r ir.Reader, _ Allocator, op *ir.ImportResources) ExecutorResult {
	var result ExecutorResult
	seen := make(map[string]bool, len(op.Resources))
	for _, res := range op.Resources {
		if res == nil || res.IRI() == "" {
			return Fail("Every imported resource needs an IRI.")
		}
		iri := res.IRI()
		if seen[iri] {
			return Fail("The resource %s is imported more than once.", iri)
		}
		seen[iri] = true
		tag, ok := ir.PrimaryTag(res.Types())
		if !ok {
			return Fail("The resource %s has no known type.", iri)
		}
		if ir.Has(res.Types(), ir.TagOperation) {
			return Fail("The resource %s is an operation record and cannot be imported.", iri)
		}
		current, err := r.ReadResource(ctx, iri)
		if err != nil {
			return Fail("The resource %s could not be read: %v.", iri, err)
		}
		if current == nil {
			result.Created = append(result.Created, res.Clone())
			continue
		}
		if currentTag, _ := ir.PrimaryTag(current.Types()); currentTag != tag {
			return Fail("The resource %s is a %s and cannot be replaced by a %s.",
				iri, ir.LocalName(currentTag), ir.LocalName(tag))
		}
		result.Changed = append(result.Changed, res.Clone())
	}
	return result
}
