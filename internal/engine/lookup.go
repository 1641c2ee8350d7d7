package engine

import (
	"context"
	"slices"

	"github.com/roach88/schemagraph/internal/ir"
)

// lookup reads iri and checks it is a T. On failure it returns a ready-made
// failed result whose message names what was expected.
func lookup[T ir.Resource](ctx context.Context, r ir.Reader, iri, what string) (T, *ExecutorResult) {
	var zero T
	if iri == "" {
		fail := Fail("No %s was specified.", what)
		return zero, &fail
	}
	res, err := r.ReadResource(ctx, iri)
	if err != nil {
		fail := Fail("The %s %s could not be read: %v.", what, iri, err)
		return zero, &fail
	}
	if res == nil {
		fail := Fail("The %s %s does not exist.", what, iri)
		return zero, &fail
	}
	typed, ok := res.(T)
	if !ok {
		fail := Fail("The resource %s is not a %s.", iri, what)
		return zero, &fail
	}
	return typed, nil
}

// exists reports whether iri resolves to any resource.
func exists(ctx context.Context, r ir.Reader, iri string) (bool, *ExecutorResult) {
	res, err := r.ReadResource(ctx, iri)
	if err != nil {
		fail := Fail("The resource %s could not be read: %v.", iri, err)
		return false, &fail
	}
	return res != nil, nil
}

// readAll reads every resource of tag t, in the reader's list order.
func readAll(ctx context.Context, r ir.Reader, t ir.Type) ([]ir.Resource, *ExecutorResult) {
	iris, err := r.ListResourcesOfType(ctx, t)
	if err != nil {
		fail := Fail("Resources of type %s could not be listed: %v.", ir.LocalName(t), err)
		return nil, &fail
	}
	out := make([]ir.Resource, 0, len(iris))
	for _, iri := range iris {
		res, err := r.ReadResource(ctx, iri)
		if err != nil {
			fail := Fail("The resource %s could not be read: %v.", iri, err)
			return nil, &fail
		}
		if res != nil {
			out = append(out, res)
		}
	}
	return out, nil
}

// owningSchema finds the schema of kind schemaTag whose parts list iri.
func owningSchema(ctx context.Context, r ir.Reader, schemaTag ir.Type, iri string) (ir.PartOwner, *ExecutorResult) {
	schemas, fail := readAll(ctx, r, schemaTag)
	if fail != nil {
		return nil, fail
	}
	for _, s := range schemas {
		owner, ok := s.(ir.PartOwner)
		if ok && slices.Contains(owner.PartsFacet().Parts, iri) {
			return owner, nil
		}
	}
	f := Fail("The resource %s does not belong to any schema.", iri)
	return nil, &f
}

// allocate returns requested when set and free, or a fresh IRI of kind.
func allocate(ctx context.Context, r ir.Reader, alloc Allocator, requested, kind string) (string, *ExecutorResult) {
	if requested == "" {
		return alloc.Allocate(kind), nil
	}
	taken, fail := exists(ctx, r, requested)
	if fail != nil {
		return "", fail
	}
	if taken {
		f := Fail("The IRI %s is already used by another resource.", requested)
		return "", &f
	}
	return requested, nil
}

// withPart returns a clone of owner with iri appended to its parts.
func withPart(owner ir.PartOwner, iri string) ir.Resource {
	c := owner.Clone().(ir.PartOwner)
	c.PartsFacet().Parts = append(c.PartsFacet().Parts, iri)
	return c
}

// withoutPart returns a clone of owner with iri removed from its parts.
func withoutPart(owner ir.PartOwner, iri string) ir.Resource {
	c := owner.Clone().(ir.PartOwner)
	c.PartsFacet().Parts = ir.Without(c.PartsFacet().Parts, iri)
	return c
}

// listsPart reports whether owner lists iri among its parts.
func listsPart(owner ir.PartOwner, iri string) bool {
	return slices.Contains(owner.PartsFacet().Parts, iri)
}
