package ir

// Cardinality bounds; Max < 0 means unbounded.
type Cardinality struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Unbounded is the Max value for "*".
const Unbounded = -1

// PimSchema is the root of a conceptual model.
type PimSchema struct {
	Base
	Labels
	PartList
}

// NewPimSchema returns an empty conceptual schema.
func NewPimSchema() *PimSchema {
	return &PimSchema{
		Base:     NewBase(TagPimSchema, TagHumanLabeled, TagPartOwner),
		PartList: PartList{Parts: []string{}},
	}
}

func (s *PimSchema) Clone() Resource {
	return &PimSchema{Base: s.Base.clone(), Labels: s.Labels.clone(), PartList: s.PartList.clone()}
}

// PimClass is a conceptual class. Extends lists its direct superclasses.
// Interpretation points one level further down, into the shared vocabulary.
type PimClass struct {
	Base
	Labels
	Technical
	InterpretationRef
	Extends    []string `json:"extends"`
	IsCodelist bool     `json:"isCodelist,omitempty"`
}

// NewPimClass returns a class with no superclasses.
func NewPimClass() *PimClass {
	return &PimClass{
		Base:    NewBase(TagPimClass, TagHumanLabeled, TagTechnicalLabeled, TagInterpreted),
		Extends: []string{},
	}
}

func (c *PimClass) Clone() Resource {
	return &PimClass{
		Base:              c.Base.clone(),
		Labels:            c.Labels.clone(),
		Technical:         c.Technical,
		InterpretationRef: c.InterpretationRef,
		Extends:           cloneStrings(c.Extends),
		IsCodelist:        c.IsCodelist,
	}
}

// PimAttribute is owned by OwnerClass. Unlike the structural model, the
// conceptual owner is a field rather than parts membership.
type PimAttribute struct {
	Base
	Labels
	Technical
	InterpretationRef
	OwnerClass  string       `json:"ownerClass,omitempty"`
	Datatype    string       `json:"datatype,omitempty"`
	Cardinality *Cardinality `json:"cardinality,omitempty"`
}

// NewPimAttribute returns an attribute with no owner.
func NewPimAttribute() *PimAttribute {
	return &PimAttribute{
		Base: NewBase(TagPimAttribute, TagHumanLabeled, TagTechnicalLabeled, TagInterpreted),
	}
}

func (a *PimAttribute) Clone() Resource {
	return &PimAttribute{
		Base:              a.Base.clone(),
		Labels:            a.Labels.clone(),
		Technical:         a.Technical,
		InterpretationRef: a.InterpretationRef,
		OwnerClass:        a.OwnerClass,
		Datatype:          a.Datatype,
		Cardinality:       cloneCardinality(a.Cardinality),
	}
}

// PimAssociation connects two classes through its two Ends.
type PimAssociation struct {
	Base
	Labels
	Technical
	InterpretationRef
	Ends       []string `json:"ends"`
	IsOriented bool     `json:"isOriented,omitempty"`
}

// NewPimAssociation returns an association with no ends.
func NewPimAssociation() *PimAssociation {
	return &PimAssociation{
		Base: NewBase(TagPimAssociation, TagHumanLabeled, TagTechnicalLabeled, TagInterpreted),
		Ends: []string{},
	}
}

func (a *PimAssociation) Clone() Resource {
	return &PimAssociation{
		Base:              a.Base.clone(),
		Labels:            a.Labels.clone(),
		Technical:         a.Technical,
		InterpretationRef: a.InterpretationRef,
		Ends:              cloneStrings(a.Ends),
		IsOriented:        a.IsOriented,
	}
}

// PimAssociationEnd points at the class Part on one side of an association.
type PimAssociationEnd struct {
	Base
	Labels
	Technical
	InterpretationRef
	Part        string       `json:"part,omitempty"`
	Cardinality *Cardinality `json:"cardinality,omitempty"`
}

// NewPimAssociationEnd returns an end with no target.
func NewPimAssociationEnd() *PimAssociationEnd {
	return &PimAssociationEnd{
		Base: NewBase(TagPimAssociationEnd, TagHumanLabeled, TagTechnicalLabeled, TagInterpreted),
	}
}

func (e *PimAssociationEnd) Clone() Resource {
	return &PimAssociationEnd{
		Base:              e.Base.clone(),
		Labels:            e.Labels.clone(),
		Technical:         e.Technical,
		InterpretationRef: e.InterpretationRef,
		Part:              e.Part,
		Cardinality:       cloneCardinality(e.Cardinality),
	}
}

func cloneCardinality(c *Cardinality) *Cardinality {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}
