package gc

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/roach88/schemagraph/internal/ir"
)

// conceptualGraph is the part of a conceptual graph the keep-set needs,
// indexed by IRI.
type conceptualGraph struct {
	classes      map[string]*ir.PimClass
	attributes   map[string]*ir.PimAttribute
	associations map[string]*ir.PimAssociation
	// endOf maps an association end to its association.
	endOf map[string]string
	ends  map[string]*ir.PimAssociationEnd
}

func loadConceptual(ctx context.Context, r ir.Reader) (*conceptualGraph, error) {
	g := &conceptualGraph{
		classes:      make(map[string]*ir.PimClass),
		attributes:   make(map[string]*ir.PimAttribute),
		associations: make(map[string]*ir.PimAssociation),
		endOf:        make(map[string]string),
		ends:         make(map[string]*ir.PimAssociationEnd),
	}
	classes, err := readAll[*ir.PimClass](ctx, r, ir.TagPimClass)
	if err != nil {
		return nil, err
	}
	for _, c := range classes {
		g.classes[c.IRI()] = c
	}
	attrs, err := readAll[*ir.PimAttribute](ctx, r, ir.TagPimAttribute)
	if err != nil {
		return nil, err
	}
	for _, a := range attrs {
		g.attributes[a.IRI()] = a
	}
	assocs, err := readAll[*ir.PimAssociation](ctx, r, ir.TagPimAssociation)
	if err != nil {
		return nil, err
	}
	for _, a := range assocs {
		g.associations[a.IRI()] = a
		for _, end := range a.Ends {
			g.endOf[end] = a.IRI()
		}
	}
	ends, err := readAll[*ir.PimAssociationEnd](ctx, r, ir.TagPimAssociationEnd)
	if err != nil {
		return nil, err
	}
	for _, e := range ends {
		g.ends[e.IRI()] = e
	}
	return g, nil
}

// inheritancePath returns the classes on a superclass path from one class
// to another, both included, or nil when to is not an ancestor of from.
func (g *conceptualGraph) inheritancePath(from, to string) []string {
	visited := make(map[string]bool)
	var walk func(iri string) []string
	walk = func(iri string) []string {
		if visited[iri] {
			return nil
		}
		visited[iri] = true
		if iri == to {
			return []string{iri}
		}
		class, ok := g.classes[iri]
		if !ok {
			return nil
		}
		for _, super := range class.Extends {
			if path := walk(super); path != nil {
				return append([]string{iri}, path...)
			}
		}
		return nil
	}
	if from == "" || to == "" {
		return nil
	}
	return walk(from)
}

// structuralOwners maps every part of a structural class or container to
// its owner.
type structuralOwners struct {
	owner      map[string]string
	classes    map[string]*ir.PsmClass
	containers map[string]bool
}

func loadOwners(ctx context.Context, r ir.Reader) (*structuralOwners, error) {
	o := &structuralOwners{
		owner:      make(map[string]string),
		classes:    make(map[string]*ir.PsmClass),
		containers: make(map[string]bool),
	}
	classes, err := readAll[*ir.PsmClass](ctx, r, ir.TagPsmClass)
	if err != nil {
		return nil, err
	}
	for _, c := range classes {
		o.classes[c.IRI()] = c
		for _, p := range c.Parts {
			o.owner[p] = c.IRI()
		}
	}
	containers, err := readAll[*ir.PsmContainer](ctx, r, ir.TagPsmContainer)
	if err != nil {
		return nil, err
	}
	for _, c := range containers {
		o.containers[c.IRI()] = true
		for _, p := range c.Parts {
			o.owner[p] = c.IRI()
		}
	}
	return o, nil
}

// classOf returns the class that owns iri, looking through containers.
func (o *structuralOwners) classOf(iri string) *ir.PsmClass {
	seen := make(map[string]bool)
	for cur := o.owner[iri]; cur != "" && !seen[cur]; cur = o.owner[cur] {
		seen[cur] = true
		if c, ok := o.classes[cur]; ok {
			return c
		}
		if !o.containers[cur] {
			return nil
		}
	}
	return nil
}

func checkSupported(ctx context.Context, structural ir.Reader) error {
	ors, err := structural.ListResourcesOfType(ctx, ir.TagPsmOr)
	if err != nil {
		return fmt.Errorf("list ors: %w", err)
	}
	if len(ors) > 0 {
		return fmt.Errorf("%w: the or %s has no single conceptual owner", ErrUnsupportedSchema, ors[0])
	}
	schemas, err := readAll[*ir.PsmSchema](ctx, structural, ir.TagPsmSchema)
	if err != nil {
		return err
	}
	for _, s := range schemas {
		if len(s.Roots) > 1 {
			return fmt.Errorf("%w: the schema %s has %d roots", ErrUnsupportedSchema, s.IRI(), len(s.Roots))
		}
	}
	return nil
}

// ConceptualKeepSet returns the conceptual IRIs that the structural graph
// still needs. Each interpretation is kept. A member interpretation also
// keeps the superclass path from its structural owner's interpreted class
// to the conceptual class that owns the member, so an inherited attribute
// keeps its ancestor alive. An association keeps both ends and both end
// classes.
func ConceptualKeepSet(ctx context.Context, conceptual, structural ir.Reader) (map[string]bool, error) {
	if err := checkSupported(ctx, structural); err != nil {
		return nil, err
	}
	g, err := loadConceptual(ctx, conceptual)
	if err != nil {
		return nil, err
	}
	owners, err := loadOwners(ctx, structural)
	if err != nil {
		return nil, err
	}
	iris, err := structural.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list structural resources: %w", err)
	}

	keep := make(map[string]bool)
	mark := func(iris ...string) {
		for _, iri := range iris {
			if iri != "" {
				keep[iri] = true
			}
		}
	}
	for _, iri := range iris {
		res, err := structural.ReadResource(ctx, iri)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", iri, err)
		}
		interp := ir.InterpretationOf(res)
		if interp == "" {
			continue
		}
		mark(interp)

		var from string
		if owner := owners.classOf(iri); owner != nil {
			from = owner.Interpretation
		}

		if attr, ok := g.attributes[interp]; ok {
			mark(attr.OwnerClass)
			mark(g.inheritancePath(from, attr.OwnerClass)...)
			continue
		}
		assocIRI := interp
		if a, ok := g.endOf[interp]; ok {
			assocIRI = a
		}
		assoc, ok := g.associations[assocIRI]
		if !ok {
			continue
		}
		mark(assoc.IRI())
		var endClasses []string
		for _, endIRI := range assoc.Ends {
			mark(endIRI)
			if end, ok := g.ends[endIRI]; ok {
				mark(end.Part)
				endClasses = append(endClasses, end.Part)
			}
		}
		for _, target := range endClasses {
			if path := g.inheritancePath(from, target); path != nil {
				mark(path...)
				break
			}
		}
	}
	return keep, nil
}

// CollectConceptual deletes the conceptual resources that no structural
// resource needs any more. Unreferenced attributes go first, then
// associations with their ends. Superclass links that name a doomed class
// are pruned next, and the doomed classes go last.
func CollectConceptual(ctx context.Context, conceptual ir.ReadWriter, structural ir.Reader, opts ...Option) (*Report, error) {
	cfg := newSettings(opts)
	report := &Report{}

	keep, err := ConceptualKeepSet(ctx, conceptual, structural)
	if err != nil {
		return nil, err
	}
	g, err := loadConceptual(ctx, conceptual)
	if err != nil {
		return nil, err
	}

	var attrs, assocs, classes []string
	var pruned []*ir.PimClass
	doomed := func(s string) bool { return !keep[s] }
	for _, iri := range sortedKeys(g.attributes) {
		if !keep[iri] {
			attrs = append(attrs, iri)
		}
	}
	for _, iri := range sortedKeys(g.associations) {
		if !keep[iri] {
			assocs = append(assocs, iri)
		}
	}
	for _, iri := range sortedKeys(g.classes) {
		class := g.classes[iri]
		if !keep[iri] {
			classes = append(classes, iri)
		}
		if slices.ContainsFunc(class.Extends, doomed) {
			pruned = append(pruned, class)
		}
	}
	cfg.logger.Info("conceptual gc decided",
		"keep", len(keep),
		"attributes", len(attrs),
		"associations", len(assocs),
		"classes", len(classes),
		"pruned", len(pruned))

	if cfg.dryRun {
		report.Deleted = append(report.Deleted, attrs...)
		for _, iri := range assocs {
			report.Deleted = append(report.Deleted, iri)
			report.Deleted = append(report.Deleted, g.associations[iri].Ends...)
		}
		report.Deleted = append(report.Deleted, classes...)
		for _, c := range pruned {
			report.Changed = append(report.Changed, c.IRI())
		}
		report.finish()
		return report, nil
	}

	s := &sweeper{w: conceptual, report: report, logger: cfg.logger}
	err = func() error {
		for _, iri := range attrs {
			if err := s.apply(ctx, ir.NewDeletePimAttribute(iri)); err != nil {
				return err
			}
		}
		for _, iri := range assocs {
			if err := s.apply(ctx, ir.NewDeletePimAssociation(iri)); err != nil {
				return err
			}
		}
		for _, class := range pruned {
			extends := slices.DeleteFunc(slices.Clone(class.Extends), doomed)
			if err := s.apply(ctx, ir.NewSetPimClassExtends(class.IRI(), extends...)); err != nil {
				return err
			}
		}
		for _, iri := range classes {
			if err := s.apply(ctx, ir.NewDeletePimClass(iri)); err != nil {
				return err
			}
		}
		return nil
	}()
	report.finish()
	if err != nil {
		return report, err
	}
	cfg.logger.Info("conceptual gc finished", "deleted", len(report.Deleted), "operations", report.Operations)
	return report, nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
