package ir

// PsmSchema is the root of a structural model. Parts lists every resource
// that belongs to the schema; Roots lists the entry points of the structure.
type PsmSchema struct {
	Base
	Labels
	Technical
	PartList
	Roots []string `json:"roots"`
}

// NewPsmSchema returns an empty schema.
func NewPsmSchema() *PsmSchema {
	return &PsmSchema{
		Base:     NewBase(TagPsmSchema, TagHumanLabeled, TagTechnicalLabeled, TagPartOwner),
		PartList: PartList{Parts: []string{}},
		Roots:    []string{},
	}
}

func (s *PsmSchema) Clone() Resource {
	return &PsmSchema{
		Base:      s.Base.clone(),
		Labels:    s.Labels.clone(),
		Technical: s.Technical,
		PartList:  s.PartList.clone(),
		Roots:     cloneStrings(s.Roots),
	}
}

// PsmClass is a structural class. Parts holds its attributes, association
// ends, includes and containers in order.
type PsmClass struct {
	Base
	Labels
	Technical
	InterpretationRef
	PartList
	Extends []string `json:"extends"`
}

// NewPsmClass returns an empty class.
func NewPsmClass() *PsmClass {
	return &PsmClass{
		Base:     NewBase(TagPsmClass, TagHumanLabeled, TagTechnicalLabeled, TagInterpreted, TagPartOwner),
		PartList: PartList{Parts: []string{}},
		Extends:  []string{},
	}
}

func (c *PsmClass) Clone() Resource {
	return &PsmClass{
		Base:              c.Base.clone(),
		Labels:            c.Labels.clone(),
		Technical:         c.Technical,
		InterpretationRef: c.InterpretationRef,
		PartList:          c.PartList.clone(),
		Extends:           cloneStrings(c.Extends),
	}
}

// PsmAttribute is a leaf property of a class or container.
type PsmAttribute struct {
	Base
	Labels
	Technical
	InterpretationRef
	Datatype string `json:"datatype,omitempty"`
}

// NewPsmAttribute returns an attribute with no datatype.
func NewPsmAttribute() *PsmAttribute {
	return &PsmAttribute{
		Base: NewBase(TagPsmAttribute, TagHumanLabeled, TagTechnicalLabeled, TagInterpreted),
	}
}

func (a *PsmAttribute) Clone() Resource {
	return &PsmAttribute{
		Base:              a.Base.clone(),
		Labels:            a.Labels.clone(),
		Technical:         a.Technical,
		InterpretationRef: a.InterpretationRef,
		Datatype:          a.Datatype,
	}
}

// PsmAssociationEnd is an edge from its owner to Part, which is a class,
// class reference, or or.
type PsmAssociationEnd struct {
	Base
	Labels
	Technical
	InterpretationRef
	Part string `json:"part,omitempty"`
}

// NewPsmAssociationEnd returns an association end with no target.
func NewPsmAssociationEnd() *PsmAssociationEnd {
	return &PsmAssociationEnd{
		Base: NewBase(TagPsmAssociationEnd, TagHumanLabeled, TagTechnicalLabeled, TagInterpreted),
	}
}

func (e *PsmAssociationEnd) Clone() Resource {
	return &PsmAssociationEnd{
		Base:              e.Base.clone(),
		Labels:            e.Labels.clone(),
		Technical:         e.Technical,
		InterpretationRef: e.InterpretationRef,
		Part:              e.Part,
	}
}

// PsmClassReference points at a class owned by another schema.
type PsmClassReference struct {
	Base
	Specification string `json:"specification,omitempty"`
	Part          string `json:"part,omitempty"`
}

// NewPsmClassReference returns an unbound class reference.
func NewPsmClassReference() *PsmClassReference {
	return &PsmClassReference{Base: NewBase(TagPsmClassReference)}
}

func (r *PsmClassReference) Clone() Resource {
	return &PsmClassReference{
		Base:          r.Base.clone(),
		Specification: r.Specification,
		Part:          r.Part,
	}
}

// PsmOr is a choice between several classes or class references.
type PsmOr struct {
	Base
	Labels
	Technical
	Choices []string `json:"choices"`
}

// NewPsmOr returns an or with no choices.
func NewPsmOr() *PsmOr {
	return &PsmOr{
		Base:    NewBase(TagPsmOr, TagHumanLabeled, TagTechnicalLabeled),
		Choices: []string{},
	}
}

func (o *PsmOr) Clone() Resource {
	return &PsmOr{
		Base:      o.Base.clone(),
		Labels:    o.Labels.clone(),
		Technical: o.Technical,
		Choices:   cloneStrings(o.Choices),
	}
}

// PsmInclude reuses the parts of IncludesClass inside its owner.
type PsmInclude struct {
	Base
	IncludesClass string `json:"includesClass,omitempty"`
}

// NewPsmInclude returns an include with no target.
func NewPsmInclude() *PsmInclude {
	return &PsmInclude{Base: NewBase(TagPsmInclude)}
}

func (i *PsmInclude) Clone() Resource {
	return &PsmInclude{Base: i.Base.clone(), IncludesClass: i.IncludesClass}
}

// Container types understood by the artifact generators.
const (
	ContainerSequence = "sequence"
	ContainerChoice   = "choice"
)

// PsmContainer groups parts of a class without introducing a new class.
type PsmContainer struct {
	Base
	Technical
	PartList
	ContainerType string `json:"containerType"`
}

// NewPsmContainer returns an empty container of the given type.
func NewPsmContainer(containerType string) *PsmContainer {
	return &PsmContainer{
		Base:          NewBase(TagPsmContainer, TagTechnicalLabeled, TagPartOwner),
		PartList:      PartList{Parts: []string{}},
		ContainerType: containerType,
	}
}

func (c *PsmContainer) Clone() Resource {
	return &PsmContainer{
		Base:          c.Base.clone(),
		Technical:     c.Technical,
		PartList:      c.PartList.clone(),
		ContainerType: c.ContainerType,
	}
}

// PsmExternalRoot is an untyped root whose shape is defined elsewhere.
type PsmExternalRoot struct {
	Base
	ExternalTypes []string `json:"externalTypes"`
}

// NewPsmExternalRoot returns an external root with no types.
func NewPsmExternalRoot() *PsmExternalRoot {
	return &PsmExternalRoot{
		Base:          NewBase(TagPsmExternalRoot),
		ExternalTypes: []string{},
	}
}

func (r *PsmExternalRoot) Clone() Resource {
	return &PsmExternalRoot{Base: r.Base.clone(), ExternalTypes: cloneStrings(r.ExternalTypes)}
}
