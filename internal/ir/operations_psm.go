package ir

// Structural operation tags.
const (
	OpCreatePsmSchema         Type = NSOp + "psm/create-schema"
	OpSetPsmSchemaRoots       Type = NSOp + "psm/set-schema-roots"
	OpCreatePsmClass          Type = NSOp + "psm/create-class"
	OpCreatePsmAttribute      Type = NSOp + "psm/create-attribute"
	OpCreatePsmAssociationEnd Type = NSOp + "psm/create-association-end"
	OpCreatePsmClassReference Type = NSOp + "psm/create-class-reference"
	OpCreatePsmOr             Type = NSOp + "psm/create-or"
	OpSetPsmOrChoices         Type = NSOp + "psm/set-or-choices"
	OpCreatePsmInclude        Type = NSOp + "psm/create-include"
	OpCreatePsmContainer      Type = NSOp + "psm/create-container"
	OpCreatePsmExternalRoot   Type = NSOp + "psm/create-external-root"
	OpSetPsmClassExtends      Type = NSOp + "psm/set-class-extends"
	OpSetPsmPart              Type = NSOp + "psm/set-part"
	OpSetPsmDatatype          Type = NSOp + "psm/set-datatype"
	OpReplacePsmParts         Type = NSOp + "psm/replace-parts"
	OpDeletePsmAttribute      Type = NSOp + "psm/delete-attribute"
	OpDeletePsmAssociationEnd Type = NSOp + "psm/delete-association-end"
	OpDeletePsmInclude        Type = NSOp + "psm/delete-include"
	OpDeletePsmContainer      Type = NSOp + "psm/delete-container"
	OpDeletePsmClass          Type = NSOp + "psm/delete-class"
	OpDeletePsmClassReference Type = NSOp + "psm/delete-class-reference"
	OpDeletePsmOr             Type = NSOp + "psm/delete-or"
	OpDeletePsmExternalRoot   Type = NSOp + "psm/delete-external-root"
)

// CreatePsmSchema creates an empty structural schema.
type CreatePsmSchema struct {
	OperationBase
	NewResource
	HumanLabel       LanguageString `json:"humanLabel,omitempty"`
	HumanDescription LanguageString `json:"humanDescription,omitempty"`
	TechnicalLabel   string         `json:"technicalLabel,omitempty"`
}

func NewCreatePsmSchema() *CreatePsmSchema {
	return &CreatePsmSchema{OperationBase: NewOperationBase(OpCreatePsmSchema)}
}

func (o *CreatePsmSchema) Clone() Resource { return cloneOperation(o) }

// SetPsmSchemaRoots replaces the root list of Schema.
type SetPsmSchemaRoots struct {
	OperationBase
	Schema string   `json:"schema"`
	Roots  []string `json:"roots"`
}

func NewSetPsmSchemaRoots(schema string, roots ...string) *SetPsmSchemaRoots {
	return &SetPsmSchemaRoots{OperationBase: NewOperationBase(OpSetPsmSchemaRoots), Schema: schema, Roots: roots}
}

func (o *SetPsmSchemaRoots) Clone() Resource { return cloneOperation(o) }

// CreatePsmClass creates a class and appends it to Schema.Parts.
type CreatePsmClass struct {
	OperationBase
	NewResource
	Schema           string         `json:"schema"`
	Interpretation   string         `json:"interpretation,omitempty"`
	HumanLabel       LanguageString `json:"humanLabel,omitempty"`
	HumanDescription LanguageString `json:"humanDescription,omitempty"`
	TechnicalLabel   string         `json:"technicalLabel,omitempty"`
	Extends          []string       `json:"extends,omitempty"`
}

func NewCreatePsmClass(schema string) *CreatePsmClass {
	return &CreatePsmClass{OperationBase: NewOperationBase(OpCreatePsmClass), Schema: schema}
}

func (o *CreatePsmClass) Clone() Resource { return cloneOperation(o) }

// CreatePsmAttribute creates an attribute owned by Owner, a class or a
// container. The attribute joins both the owner's parts and the parts of the
// schema that owns Owner.
type CreatePsmAttribute struct {
	OperationBase
	NewResource
	Owner            string         `json:"owner"`
	Interpretation   string         `json:"interpretation,omitempty"`
	Datatype         string         `json:"datatype,omitempty"`
	HumanLabel       LanguageString `json:"humanLabel,omitempty"`
	HumanDescription LanguageString `json:"humanDescription,omitempty"`
	TechnicalLabel   string         `json:"technicalLabel,omitempty"`
}

func NewCreatePsmAttribute(owner string) *CreatePsmAttribute {
	return &CreatePsmAttribute{OperationBase: NewOperationBase(OpCreatePsmAttribute), Owner: owner}
}

func (o *CreatePsmAttribute) Clone() Resource { return cloneOperation(o) }

// CreatePsmAssociationEnd creates an association end owned by Owner and
// pointing at Part.
type CreatePsmAssociationEnd struct {
	OperationBase
	NewResource
	Owner            string         `json:"owner"`
	Part             string         `json:"part"`
	Interpretation   string         `json:"interpretation,omitempty"`
	HumanLabel       LanguageString `json:"humanLabel,omitempty"`
	HumanDescription LanguageString `json:"humanDescription,omitempty"`
	TechnicalLabel   string         `json:"technicalLabel,omitempty"`
}

func NewCreatePsmAssociationEnd(owner, part string) *CreatePsmAssociationEnd {
	return &CreatePsmAssociationEnd{OperationBase: NewOperationBase(OpCreatePsmAssociationEnd), Owner: owner, Part: part}
}

func (o *CreatePsmAssociationEnd) Clone() Resource { return cloneOperation(o) }

// CreatePsmClassReference creates a link to class Part of the schema
// Specification.
type CreatePsmClassReference struct {
	OperationBase
	NewResource
	Schema        string `json:"schema"`
	Specification string `json:"specification"`
	Part          string `json:"part"`
}

func NewCreatePsmClassReference(schema, specification, part string) *CreatePsmClassReference {
	return &CreatePsmClassReference{
		OperationBase: NewOperationBase(OpCreatePsmClassReference),
		Schema:        schema,
		Specification: specification,
		Part:          part,
	}
}

func (o *CreatePsmClassReference) Clone() Resource { return cloneOperation(o) }

// CreatePsmOr creates a choice in Schema.
type CreatePsmOr struct {
	OperationBase
	NewResource
	Schema  string   `json:"schema"`
	Choices []string `json:"choices,omitempty"`
}

func NewCreatePsmOr(schema string, choices ...string) *CreatePsmOr {
	return &CreatePsmOr{OperationBase: NewOperationBase(OpCreatePsmOr), Schema: schema, Choices: choices}
}

func (o *CreatePsmOr) Clone() Resource { return cloneOperation(o) }

// SetPsmOrChoices replaces the choices of Or.
type SetPsmOrChoices struct {
	OperationBase
	Or      string   `json:"or"`
	Choices []string `json:"choices"`
}

func NewSetPsmOrChoices(or string, choices ...string) *SetPsmOrChoices {
	return &SetPsmOrChoices{OperationBase: NewOperationBase(OpSetPsmOrChoices), Or: or, Choices: choices}
}

func (o *SetPsmOrChoices) Clone() Resource { return cloneOperation(o) }

// CreatePsmInclude creates an include of IncludesClass inside Owner.
type CreatePsmInclude struct {
	OperationBase
	NewResource
	Owner         string `json:"owner"`
	IncludesClass string `json:"includesClass"`
}

func NewCreatePsmInclude(owner, includesClass string) *CreatePsmInclude {
	return &CreatePsmInclude{OperationBase: NewOperationBase(OpCreatePsmInclude), Owner: owner, IncludesClass: includesClass}
}

func (o *CreatePsmInclude) Clone() Resource { return cloneOperation(o) }

// CreatePsmContainer creates an empty container inside Owner.
type CreatePsmContainer struct {
	OperationBase
	NewResource
	Owner         string `json:"owner"`
	ContainerType string `json:"containerType"`
}

func NewCreatePsmContainer(owner, containerType string) *CreatePsmContainer {
	return &CreatePsmContainer{OperationBase: NewOperationBase(OpCreatePsmContainer), Owner: owner, ContainerType: containerType}
}

func (o *CreatePsmContainer) Clone() Resource { return cloneOperation(o) }

// CreatePsmExternalRoot creates an untyped root in Schema.
type CreatePsmExternalRoot struct {
	OperationBase
	NewResource
	Schema        string   `json:"schema"`
	ExternalTypes []string `json:"externalTypes,omitempty"`
}

func NewCreatePsmExternalRoot(schema string, types ...string) *CreatePsmExternalRoot {
	return &CreatePsmExternalRoot{OperationBase: NewOperationBase(OpCreatePsmExternalRoot), Schema: schema, ExternalTypes: types}
}

func (o *CreatePsmExternalRoot) Clone() Resource { return cloneOperation(o) }

// SetPsmClassExtends replaces the superclass list of Class.
type SetPsmClassExtends struct {
	OperationBase
	Class   string   `json:"class"`
	Extends []string `json:"extends"`
}

func NewSetPsmClassExtends(class string, extends ...string) *SetPsmClassExtends {
	return &SetPsmClassExtends{OperationBase: NewOperationBase(OpSetPsmClassExtends), Class: class, Extends: extends}
}

func (o *SetPsmClassExtends) Clone() Resource { return cloneOperation(o) }

// SetPsmPart retargets AssociationEnd to Part.
type SetPsmPart struct {
	OperationBase
	AssociationEnd string `json:"associationEnd"`
	Part           string `json:"part"`
}

func NewSetPsmPart(end, part string) *SetPsmPart {
	return &SetPsmPart{OperationBase: NewOperationBase(OpSetPsmPart), AssociationEnd: end, Part: part}
}

func (o *SetPsmPart) Clone() Resource { return cloneOperation(o) }

// SetPsmDatatype sets the datatype of Attribute.
type SetPsmDatatype struct {
	OperationBase
	Attribute string `json:"attribute"`
	Datatype  string `json:"datatype"`
}

func NewSetPsmDatatype(attribute, datatype string) *SetPsmDatatype {
	return &SetPsmDatatype{OperationBase: NewOperationBase(OpSetPsmDatatype), Attribute: attribute, Datatype: datatype}
}

func (o *SetPsmDatatype) Clone() Resource { return cloneOperation(o) }

// ReplacePsmParts reorders the parts of Owner. Parts must be a permutation of
// the current list.
type ReplacePsmParts struct {
	OperationBase
	Owner string   `json:"owner"`
	Parts []string `json:"parts"`
}

func NewReplacePsmParts(owner string, parts ...string) *ReplacePsmParts {
	return &ReplacePsmParts{OperationBase: NewOperationBase(OpReplacePsmParts), Owner: owner, Parts: parts}
}

func (o *ReplacePsmParts) Clone() Resource { return cloneOperation(o) }

// DeletePsmAttribute removes Attribute from Owner and its schema.
type DeletePsmAttribute struct {
	OperationBase
	Owner     string `json:"owner"`
	Attribute string `json:"attribute"`
}

func NewDeletePsmAttribute(owner, attribute string) *DeletePsmAttribute {
	return &DeletePsmAttribute{OperationBase: NewOperationBase(OpDeletePsmAttribute), Owner: owner, Attribute: attribute}
}

func (o *DeletePsmAttribute) Clone() Resource { return cloneOperation(o) }

// DeletePsmAssociationEnd removes AssociationEnd from Owner and its schema.
type DeletePsmAssociationEnd struct {
	OperationBase
	Owner          string `json:"owner"`
	AssociationEnd string `json:"associationEnd"`
}

func NewDeletePsmAssociationEnd(owner, end string) *DeletePsmAssociationEnd {
	return &DeletePsmAssociationEnd{OperationBase: NewOperationBase(OpDeletePsmAssociationEnd), Owner: owner, AssociationEnd: end}
}

func (o *DeletePsmAssociationEnd) Clone() Resource { return cloneOperation(o) }

// DeletePsmInclude removes Include from Owner and its schema.
type DeletePsmInclude struct {
	OperationBase
	Owner   string `json:"owner"`
	Include string `json:"include"`
}

func NewDeletePsmInclude(owner, include string) *DeletePsmInclude {
	return &DeletePsmInclude{OperationBase: NewOperationBase(OpDeletePsmInclude), Owner: owner, Include: include}
}

func (o *DeletePsmInclude) Clone() Resource { return cloneOperation(o) }

// DeletePsmContainer removes an empty Container from Owner and its schema.
type DeletePsmContainer struct {
	OperationBase
	Owner     string `json:"owner"`
	Container string `json:"container"`
}

func NewDeletePsmContainer(owner, container string) *DeletePsmContainer {
	return &DeletePsmContainer{OperationBase: NewOperationBase(OpDeletePsmContainer), Owner: owner, Container: container}
}

func (o *DeletePsmContainer) Clone() Resource { return cloneOperation(o) }

// DeletePsmClass removes an empty Class from its schema and the schema roots.
type DeletePsmClass struct {
	OperationBase
	Class string `json:"class"`
}

func NewDeletePsmClass(class string) *DeletePsmClass {
	return &DeletePsmClass{OperationBase: NewOperationBase(OpDeletePsmClass), Class: class}
}

func (o *DeletePsmClass) Clone() Resource { return cloneOperation(o) }

// DeletePsmClassReference removes ClassReference from its schema.
type DeletePsmClassReference struct {
	OperationBase
	ClassReference string `json:"classReference"`
}

func NewDeletePsmClassReference(ref string) *DeletePsmClassReference {
	return &DeletePsmClassReference{OperationBase: NewOperationBase(OpDeletePsmClassReference), ClassReference: ref}
}

func (o *DeletePsmClassReference) Clone() Resource { return cloneOperation(o) }

// DeletePsmOr removes Or from its schema.
type DeletePsmOr struct {
	OperationBase
	Or string `json:"or"`
}

func NewDeletePsmOr(or string) *DeletePsmOr {
	return &DeletePsmOr{OperationBase: NewOperationBase(OpDeletePsmOr), Or: or}
}

func (o *DeletePsmOr) Clone() Resource { return cloneOperation(o) }

// DeletePsmExternalRoot removes ExternalRoot from its schema.
type DeletePsmExternalRoot struct {
	OperationBase
	ExternalRoot string `json:"externalRoot"`
}

func NewDeletePsmExternalRoot(root string) *DeletePsmExternalRoot {
	return &DeletePsmExternalRoot{OperationBase: NewOperationBase(OpDeletePsmExternalRoot), ExternalRoot: root}
}

func (o *DeletePsmExternalRoot) Clone() Resource { return cloneOperation(o) }
