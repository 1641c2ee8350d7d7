package gc

import (
	"context"
	"fmt"

	"github.com/roach88/schemagraph/internal/ir"
)

// MarkStructure returns the IRIs reachable from the roots of a structural
// schema. It follows class parts and superclasses, container parts,
// association targets, included classes and or choices.
func MarkStructure(ctx context.Context, r ir.Reader, schemaIRI string) (map[string]bool, error) {
	schema, ok, err := read[*ir.PsmSchema](ctx, r, schemaIRI)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("mark: %s is not a structural schema", schemaIRI)
	}

	visited := make(map[string]bool)
	queue := append([]string{}, schema.Roots...)
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iri := queue[0]
		queue = queue[1:]
		if iri == "" || visited[iri] {
			continue
		}
		res, err := r.ReadResource(ctx, iri)
		if err != nil {
			return nil, fmt.Errorf("mark %s: %w", iri, err)
		}
		if res == nil {
			continue
		}
		visited[iri] = true

		switch v := res.(type) {
		case *ir.PsmClass:
			queue = append(queue, v.Parts...)
			queue = append(queue, v.Extends...)
		case *ir.PsmContainer:
			queue = append(queue, v.Parts...)
		case *ir.PsmAssociationEnd:
			queue = append(queue, v.Part)
		case *ir.PsmInclude:
			queue = append(queue, v.IncludesClass)
		case *ir.PsmOr:
			queue = append(queue, v.Choices...)
		}
	}
	return visited, nil
}

// structuralPlan is the decide stage: what to remove from one schema.
type structuralPlan struct {
	classes       []*ir.PsmClass
	ors           []*ir.PsmOr
	references    []string
	externalRoots []string
}

func (p structuralPlan) empty() bool {
	return len(p.classes)+len(p.ors)+len(p.references)+len(p.externalRoots) == 0
}

func decideStructure(ctx context.Context, r ir.Reader, schemaIRI string, visited map[string]bool) (structuralPlan, error) {
	var plan structuralPlan
	schema, _, err := read[*ir.PsmSchema](ctx, r, schemaIRI)
	if err != nil {
		return plan, err
	}
	for _, iri := range schema.Parts {
		if visited[iri] {
			continue
		}
		res, err := r.ReadResource(ctx, iri)
		if err != nil {
			return plan, fmt.Errorf("decide %s: %w", iri, err)
		}
		switch v := res.(type) {
		case *ir.PsmClass:
			plan.classes = append(plan.classes, v)
		case *ir.PsmOr:
			plan.ors = append(plan.ors, v)
		case *ir.PsmClassReference:
			plan.references = append(plan.references, iri)
		case *ir.PsmExternalRoot:
			plan.externalRoots = append(plan.externalRoots, iri)
		}
	}
	return plan, nil
}

// CollectStructure deletes every class, or, class reference and external
// root of the schema that its roots cannot reach. A schema without roots
// loses all of them.
//
// Children of a doomed class go first, then the superclass links between
// doomed classes, then ors, class references and external roots, and the
// classes last. Each step leaves the preconditions of the next one
// satisfied.
func CollectStructure(ctx context.Context, rw ir.ReadWriter, schemaIRI string, opts ...Option) (*Report, error) {
	cfg := newSettings(opts)
	report := &Report{}

	visited, err := MarkStructure(ctx, rw, schemaIRI)
	if err != nil {
		return nil, err
	}
	plan, err := decideStructure(ctx, rw, schemaIRI, visited)
	if err != nil {
		return nil, err
	}
	cfg.logger.Info("structural gc decided",
		"schema", schemaIRI,
		"reachable", len(visited),
		"classes", len(plan.classes),
		"ors", len(plan.ors),
		"references", len(plan.references),
		"external_roots", len(plan.externalRoots))

	if plan.empty() {
		return report, nil
	}
	if cfg.dryRun {
		report.Deleted, err = plannedStructure(ctx, rw, plan)
		if err != nil {
			return nil, err
		}
		return report, nil
	}

	s := &sweeper{w: rw, report: report, logger: cfg.logger}
	if err := sweepStructure(ctx, rw, s, plan); err != nil {
		report.finish()
		return report, err
	}
	report.finish()
	cfg.logger.Info("structural gc finished", "schema", schemaIRI, "deleted", len(report.Deleted), "operations", report.Operations)
	return report, nil
}

func sweepStructure(ctx context.Context, r ir.Reader, s *sweeper, plan structuralPlan) error {
	for _, class := range plan.classes {
		if err := emptyOwner(ctx, r, s, class.IRI(), class.Parts); err != nil {
			return err
		}
	}
	for _, class := range plan.classes {
		if len(class.Extends) == 0 {
			continue
		}
		if err := s.apply(ctx, ir.NewSetPsmClassExtends(class.IRI())); err != nil {
			return err
		}
	}
	for _, or := range plan.ors {
		if len(or.Choices) == 0 {
			continue
		}
		if err := s.apply(ctx, ir.NewSetPsmOrChoices(or.IRI())); err != nil {
			return err
		}
	}
	for _, or := range plan.ors {
		if err := s.apply(ctx, ir.NewDeletePsmOr(or.IRI())); err != nil {
			return err
		}
	}
	for _, iri := range plan.references {
		if err := s.apply(ctx, ir.NewDeletePsmClassReference(iri)); err != nil {
			return err
		}
	}
	for _, iri := range plan.externalRoots {
		if err := s.apply(ctx, ir.NewDeletePsmExternalRoot(iri)); err != nil {
			return err
		}
	}
	for _, class := range plan.classes {
		if err := s.apply(ctx, ir.NewDeletePsmClass(class.IRI())); err != nil {
			return err
		}
	}
	return nil
}

// emptyOwner deletes the parts of a class or container, depth first.
func emptyOwner(ctx context.Context, r ir.Reader, s *sweeper, owner string, parts []string) error {
	for _, part := range append([]string{}, parts...) {
		res, err := r.ReadResource(ctx, part)
		if err != nil {
			return fmt.Errorf("read %s: %w", part, err)
		}
		var op ir.Operation
		switch v := res.(type) {
		case *ir.PsmAttribute:
			op = ir.NewDeletePsmAttribute(owner, part)
		case *ir.PsmAssociationEnd:
			op = ir.NewDeletePsmAssociationEnd(owner, part)
		case *ir.PsmInclude:
			op = ir.NewDeletePsmInclude(owner, part)
		case *ir.PsmContainer:
			if err := emptyOwner(ctx, r, s, part, v.Parts); err != nil {
				return err
			}
			op = ir.NewDeletePsmContainer(owner, part)
		case nil:
			return fmt.Errorf("gc: %s lists the missing part %s", owner, part)
		default:
			return fmt.Errorf("gc: %s lists %s, which cannot be a part", owner, part)
		}
		if err := s.apply(ctx, op); err != nil {
			return err
		}
	}
	return nil
}

// plannedStructure lists what sweepStructure would delete, in its order.
func plannedStructure(ctx context.Context, r ir.Reader, plan structuralPlan) ([]string, error) {
	var out []string
	var walk func(parts []string) error
	walk = func(parts []string) error {
		for _, part := range parts {
			c, ok, err := read[*ir.PsmContainer](ctx, r, part)
			if err != nil {
				return err
			}
			if ok {
				if err := walk(c.Parts); err != nil {
					return err
				}
			}
			out = append(out, part)
		}
		return nil
	}
	for _, class := range plan.classes {
		if err := walk(class.Parts); err != nil {
			return nil, err
		}
	}
	for _, or := range plan.ors {
		out = append(out, or.IRI())
	}
	out = append(out, plan.references...)
	out = append(out, plan.externalRoots...)
	for _, class := range plan.classes {
		out = append(out, class.IRI())
	}
	return out, nil
}
