package ir

import (
	"maps"
	"slices"
)

// Resource is an identity-bearing record in a resource graph.
//
// Implementations are always pointers to one of the domain structs in this
// package. Values stored in a store are never mutated; executors Clone()
// before changing anything and hand the clone back as a replacement.
type Resource interface {
	IRI() string
	Types() []Type
	Clone() Resource
}

// Base carries the identity and role tags shared by every resource.
type Base struct {
	ID   string `json:"iri,omitempty"`
	Tags []Type `json:"types"`
}

// NewBase returns a Base with the given tags and no IRI.
func NewBase(tags ...Type) Base {
	return Base{Tags: slices.Clone(tags)}
}

// IRI returns the resource identifier, or "" if none was assigned yet.
func (b *Base) IRI() string { return b.ID }

// Types returns a copy of the role tags.
func (b *Base) Types() []Type { return slices.Clone(b.Tags) }

// SetIRI assigns the identifier. Only call it on a value that has not been
// handed to a store yet.
func (b *Base) SetIRI(iri string) { b.ID = iri }

func (b Base) clone() Base {
	return Base{ID: b.ID, Tags: slices.Clone(b.Tags)}
}

// LanguageString maps a language code to text.
type LanguageString map[string]string

// Clone returns a copy of the map; nil stays nil.
func (l LanguageString) Clone() LanguageString {
	if l == nil {
		return nil
	}
	return maps.Clone(l)
}

// Labels is the human-readable facet shared by most kinds.
type Labels struct {
	HumanLabel       LanguageString `json:"humanLabel,omitempty"`
	HumanDescription LanguageString `json:"humanDescription,omitempty"`
}

// LabelFacet exposes the facet for generic executors.
func (l *Labels) LabelFacet() *Labels { return l }

func (l Labels) clone() Labels {
	return Labels{HumanLabel: l.HumanLabel.Clone(), HumanDescription: l.HumanDescription.Clone()}
}

// HumanLabeled is implemented by every kind tagged TagHumanLabeled.
type HumanLabeled interface {
	Resource
	LabelFacet() *Labels
}

// Technical is the facet holding the label used in generated artifacts.
type Technical struct {
	TechnicalLabel string `json:"technicalLabel,omitempty"`
}

// TechnicalFacet exposes the facet for generic executors.
func (t *Technical) TechnicalFacet() *Technical { return t }

// TechnicallyLabeled is implemented by every kind tagged TagTechnicalLabeled.
type TechnicallyLabeled interface {
	Resource
	TechnicalFacet() *Technical
}

// InterpretationRef is a weak, lookup-only pointer into the conceptual graph.
// It never implies ownership.
type InterpretationRef struct {
	Interpretation string `json:"interpretation,omitempty"`
}

// InterpretationFacet exposes the facet for generic executors.
func (i *InterpretationRef) InterpretationFacet() *InterpretationRef { return i }

// Interpreted is implemented by every kind tagged TagInterpreted.
type Interpreted interface {
	Resource
	InterpretationFacet() *InterpretationRef
}

// InterpretationOf returns r's interpretation IRI, or "" when r has none.
func InterpretationOf(r Resource) string {
	if i, ok := r.(Interpreted); ok {
		return i.InterpretationFacet().Interpretation
	}
	return ""
}

// PartList is the ordered ownership list of schemas, classes and containers.
type PartList struct {
	Parts []string `json:"parts"`
}

// PartsFacet exposes the facet for generic executors.
func (p *PartList) PartsFacet() *PartList { return p }

func (p PartList) clone() PartList {
	return PartList{Parts: cloneStrings(p.Parts)}
}

// PartOwner is implemented by every kind tagged TagPartOwner.
type PartOwner interface {
	Resource
	PartsFacet() *PartList
}

// PartsOf returns r's parts, or nil when r owns nothing.
func PartsOf(r Resource) []string {
	if p, ok := r.(PartOwner); ok {
		return p.PartsFacet().Parts
	}
	return nil
}

// cloneStrings copies a slice, keeping non-nil empty slices non-nil so JSON
// output stays "[]" rather than "null".
func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Without returns a copy of list with every occurrence of iri removed.
func Without(list []string, iri string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != iri {
			out = append(out, v)
		}
	}
	return out
}
