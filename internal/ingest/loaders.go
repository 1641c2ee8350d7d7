package ingest

import (
	"fmt"
	"strconv"

	"github.com/roach88/schemagraph/internal/ir"
)

// kindLoader loads nodes typed with one ir tag.
type kindLoader struct {
	tag   ir.Type
	build func(n *Node) (ir.Resource, []string, error)
}

func (l kindLoader) CanLoad(n *Node) bool { return n.HasType(string(l.tag)) }

func (l kindLoader) Load(n *Node) (ir.Resource, []string, error) {
	res, refs, err := l.build(n)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s %s: %w", ir.LocalName(l.tag), n.ID, err)
	}
	return res, refs, nil
}

// DefaultLoaders returns loaders for every structural and conceptual kind.
// Structural loaders follow ownership edges only; interpretation references
// point into another graph and are not followed.
func DefaultLoaders() []Loader {
	return []Loader{
		kindLoader{ir.TagPsmSchema, loadPsmSchema},
		kindLoader{ir.TagPsmClass, loadPsmClass},
		kindLoader{ir.TagPsmAttribute, loadPsmAttribute},
		kindLoader{ir.TagPsmAssociationEnd, loadPsmAssociationEnd},
		kindLoader{ir.TagPsmClassReference, loadPsmClassReference},
		kindLoader{ir.TagPsmOr, loadPsmOr},
		kindLoader{ir.TagPsmInclude, loadPsmInclude},
		kindLoader{ir.TagPsmContainer, loadPsmContainer},
		kindLoader{ir.TagPsmExternalRoot, loadPsmExternalRoot},
		kindLoader{ir.TagPimSchema, loadPimSchema},
		kindLoader{ir.TagPimClass, loadPimClass},
		kindLoader{ir.TagPimAttribute, loadPimAttribute},
		kindLoader{ir.TagPimAssociation, loadPimAssociation},
		kindLoader{ir.TagPimAssociationEnd, loadPimAssociationEnd},
	}
}

func langString(n *Node, pred string) ir.LanguageString {
	var out ir.LanguageString
	for _, v := range n.Values(pred) {
		if v.Kind != KindLiteral {
			continue
		}
		if out == nil {
			out = ir.LanguageString{}
		}
		out[v.Lang] = v.Value
	}
	return out
}

func labels(n *Node) ir.Labels {
	return ir.Labels{
		HumanLabel:       langString(n, PredHumanLabel),
		HumanDescription: langString(n, PredHumanDescription),
	}
}

func strs(n *Node, pred string) []string {
	out := n.IRIs(pred)
	if out == nil {
		return []string{}
	}
	return out
}

func boolean(n *Node, pred string) (bool, error) {
	lit, ok := n.Literal(pred)
	if !ok {
		return false, nil
	}
	b, err := strconv.ParseBool(lit.Value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ir.LocalName(ir.Type(pred)), err)
	}
	return b, nil
}

func cardinality(n *Node) (*ir.Cardinality, error) {
	minLit, hasMin := n.Literal(PredCardinalityMin)
	maxLit, hasMax := n.Literal(PredCardinalityMax)
	if !hasMin && !hasMax {
		return nil, nil
	}
	c := &ir.Cardinality{Max: ir.Unbounded}
	if hasMin {
		v, err := strconv.Atoi(minLit.Value)
		if err != nil {
			return nil, fmt.Errorf("cardinality min: %w", err)
		}
		c.Min = v
	}
	if hasMax && maxLit.Value != "*" {
		v, err := strconv.Atoi(maxLit.Value)
		if err != nil {
			return nil, fmt.Errorf("cardinality max: %w", err)
		}
		c.Max = v
	}
	return c, nil
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func loadPsmSchema(n *Node) (ir.Resource, []string, error) {
	s := ir.NewPsmSchema()
	s.SetIRI(n.ID)
	s.Labels = labels(n)
	s.TechnicalLabel = n.Value(PredTechnicalLabel)
	s.Parts = strs(n, PredParts)
	s.Roots = strs(n, PredRoots)
	return s, concat(s.Roots, s.Parts), nil
}

func loadPsmClass(n *Node) (ir.Resource, []string, error) {
	c := ir.NewPsmClass()
	c.SetIRI(n.ID)
	c.Labels = labels(n)
	c.TechnicalLabel = n.Value(PredTechnicalLabel)
	c.Interpretation = n.Value(PredInterpretation)
	c.Parts = strs(n, PredParts)
	c.Extends = strs(n, PredExtends)
	return c, concat(c.Parts, c.Extends), nil
}

func loadPsmAttribute(n *Node) (ir.Resource, []string, error) {
	a := ir.NewPsmAttribute()
	a.SetIRI(n.ID)
	a.Labels = labels(n)
	a.TechnicalLabel = n.Value(PredTechnicalLabel)
	a.Interpretation = n.Value(PredInterpretation)
	a.Datatype = n.Value(PredDatatype)
	return a, nil, nil
}

func loadPsmAssociationEnd(n *Node) (ir.Resource, []string, error) {
	e := ir.NewPsmAssociationEnd()
	e.SetIRI(n.ID)
	e.Labels = labels(n)
	e.TechnicalLabel = n.Value(PredTechnicalLabel)
	e.Interpretation = n.Value(PredInterpretation)
	e.Part = n.Value(PredPart)
	return e, []string{e.Part}, nil
}

func loadPsmClassReference(n *Node) (ir.Resource, []string, error) {
	r := ir.NewPsmClassReference()
	r.SetIRI(n.ID)
	r.Specification = n.Value(PredSpecification)
	r.Part = n.Value(PredPart)
	return r, nil, nil
}

func loadPsmOr(n *Node) (ir.Resource, []string, error) {
	o := ir.NewPsmOr()
	o.SetIRI(n.ID)
	o.Labels = labels(n)
	o.TechnicalLabel = n.Value(PredTechnicalLabel)
	o.Choices = strs(n, PredChoices)
	return o, o.Choices, nil
}

func loadPsmInclude(n *Node) (ir.Resource, []string, error) {
	i := ir.NewPsmInclude()
	i.SetIRI(n.ID)
	i.IncludesClass = n.Value(PredIncludesClass)
	return i, []string{i.IncludesClass}, nil
}

func loadPsmContainer(n *Node) (ir.Resource, []string, error) {
	containerType := n.Value(PredContainerType)
	if containerType == "" {
		containerType = ir.ContainerSequence
	}
	c := ir.NewPsmContainer(containerType)
	c.SetIRI(n.ID)
	c.TechnicalLabel = n.Value(PredTechnicalLabel)
	c.Parts = strs(n, PredParts)
	return c, c.Parts, nil
}

func loadPsmExternalRoot(n *Node) (ir.Resource, []string, error) {
	r := ir.NewPsmExternalRoot()
	r.SetIRI(n.ID)
	r.ExternalTypes = strs(n, PredExternalTypes)
	return r, nil, nil
}

func loadPimSchema(n *Node) (ir.Resource, []string, error) {
	s := ir.NewPimSchema()
	s.SetIRI(n.ID)
	s.Labels = labels(n)
	s.Parts = strs(n, PredParts)
	return s, s.Parts, nil
}

func loadPimClass(n *Node) (ir.Resource, []string, error) {
	c := ir.NewPimClass()
	c.SetIRI(n.ID)
	c.Labels = labels(n)
	c.TechnicalLabel = n.Value(PredTechnicalLabel)
	c.Interpretation = n.Value(PredInterpretation)
	c.Extends = strs(n, PredExtends)
	codelist, err := boolean(n, PredIsCodelist)
	if err != nil {
		return nil, nil, err
	}
	c.IsCodelist = codelist
	return c, c.Extends, nil
}

func loadPimAttribute(n *Node) (ir.Resource, []string, error) {
	a := ir.NewPimAttribute()
	a.SetIRI(n.ID)
	a.Labels = labels(n)
	a.TechnicalLabel = n.Value(PredTechnicalLabel)
	a.Interpretation = n.Value(PredInterpretation)
	a.OwnerClass = n.Value(PredOwnerClass)
	a.Datatype = n.Value(PredDatatype)
	card, err := cardinality(n)
	if err != nil {
		return nil, nil, err
	}
	a.Cardinality = card
	return a, []string{a.OwnerClass}, nil
}

func loadPimAssociation(n *Node) (ir.Resource, []string, error) {
	a := ir.NewPimAssociation()
	a.SetIRI(n.ID)
	a.Labels = labels(n)
	a.TechnicalLabel = n.Value(PredTechnicalLabel)
	a.Interpretation = n.Value(PredInterpretation)
	a.Ends = strs(n, PredEnds)
	oriented, err := boolean(n, PredIsOriented)
	if err != nil {
		return nil, nil, err
	}
	a.IsOriented = oriented
	return a, a.Ends, nil
}

func loadPimAssociationEnd(n *Node) (ir.Resource, []string, error) {
	e := ir.NewPimAssociationEnd()
	e.SetIRI(n.ID)
	e.Labels = labels(n)
	e.TechnicalLabel = n.Value(PredTechnicalLabel)
	e.Interpretation = n.Value(PredInterpretation)
	e.Part = n.Value(PredPart)
	card, err := cardinality(n)
	if err != nil {
		return nil, nil, err
	}
	e.Cardinality = card
	return e, []string{e.Part}, nil
}
