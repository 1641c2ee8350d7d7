package ir

// Conceptual operation tags.
const (
	OpCreatePimSchema      Type = NSOp + "pim/create-schema"
	OpCreatePimClass       Type = NSOp + "pim/create-class"
	OpCreatePimAttribute   Type = NSOp + "pim/create-attribute"
	OpCreatePimAssociation Type = NSOp + "pim/create-association"
	OpSetPimClassExtends   Type = NSOp + "pim/set-class-extends"
	OpSetPimCardinality    Type = NSOp + "pim/set-cardinality"
	OpDeletePimAttribute   Type = NSOp + "pim/delete-attribute"
	OpDeletePimAssociation Type = NSOp + "pim/delete-association"
	OpDeletePimClass       Type = NSOp + "pim/delete-class"
)

// CreatePimSchema creates an empty conceptual schema.
type CreatePimSchema struct {
	OperationBase
	NewResource
	HumanLabel       LanguageString `json:"humanLabel,omitempty"`
	HumanDescription LanguageString `json:"humanDescription,omitempty"`
}

func NewCreatePimSchema() *CreatePimSchema {
	return &CreatePimSchema{OperationBase: NewOperationBase(OpCreatePimSchema)}
}

func (o *CreatePimSchema) Clone() Resource { return cloneOperation(o) }

// CreatePimClass creates a class in Schema.
type CreatePimClass struct {
	OperationBase
	NewResource
	Schema           string         `json:"schema"`
	Interpretation   string         `json:"interpretation,omitempty"`
	HumanLabel       LanguageString `json:"humanLabel,omitempty"`
	HumanDescription LanguageString `json:"humanDescription,omitempty"`
	TechnicalLabel   string         `json:"technicalLabel,omitempty"`
	Extends          []string       `json:"extends,omitempty"`
	IsCodelist       bool           `json:"isCodelist,omitempty"`
}

func NewCreatePimClass(schema string) *CreatePimClass {
	return &CreatePimClass{OperationBase: NewOperationBase(OpCreatePimClass), Schema: schema}
}

func (o *CreatePimClass) Clone() Resource { return cloneOperation(o) }

// CreatePimAttribute creates an attribute owned by OwnerClass. The attribute
// joins the schema that lists OwnerClass.
type CreatePimAttribute struct {
	OperationBase
	NewResource
	OwnerClass       string         `json:"ownerClass"`
	Interpretation   string         `json:"interpretation,omitempty"`
	Datatype         string         `json:"datatype,omitempty"`
	Cardinality      *Cardinality   `json:"cardinality,omitempty"`
	HumanLabel       LanguageString `json:"humanLabel,omitempty"`
	HumanDescription LanguageString `json:"humanDescription,omitempty"`
	TechnicalLabel   string         `json:"technicalLabel,omitempty"`
}

func NewCreatePimAttribute(ownerClass string) *CreatePimAttribute {
	return &CreatePimAttribute{OperationBase: NewOperationBase(OpCreatePimAttribute), OwnerClass: ownerClass}
}

func (o *CreatePimAttribute) Clone() Resource { return cloneOperation(o) }

// CreatePimAssociation creates an association and one end per entry of
// Classes, in that order. NewEndIRIs optionally fixes the end identifiers.
type CreatePimAssociation struct {
	OperationBase
	NewResource
	NewEndIRIs       []string       `json:"newEndIris,omitempty"`
	Classes          []string       `json:"classes"`
	Interpretation   string         `json:"interpretation,omitempty"`
	HumanLabel       LanguageString `json:"humanLabel,omitempty"`
	HumanDescription LanguageString `json:"humanDescription,omitempty"`
	IsOriented       bool           `json:"isOriented,omitempty"`
}

func NewCreatePimAssociation(source, target string) *CreatePimAssociation {
	return &CreatePimAssociation{OperationBase: NewOperationBase(OpCreatePimAssociation), Classes: []string{source, target}}
}

func (o *CreatePimAssociation) Clone() Resource { return cloneOperation(o) }

// PinIdentities records the association IRI followed by the end IRIs.
func (o *CreatePimAssociation) PinIdentities(created []string) {
	o.NewResource.PinIdentities(created)
	if len(o.NewEndIRIs) == 0 && len(created) > 1 {
		o.NewEndIRIs = cloneStrings(created[1:])
	}
}

// SetPimClassExtends replaces the superclass list of Class.
type SetPimClassExtends struct {
	OperationBase
	Class   string   `json:"class"`
	Extends []string `json:"extends"`
}

func NewSetPimClassExtends(class string, extends ...string) *SetPimClassExtends {
	return &SetPimClassExtends{OperationBase: NewOperationBase(OpSetPimClassExtends), Class: class, Extends: extends}
}

func (o *SetPimClassExtends) Clone() Resource { return cloneOperation(o) }

// SetPimCardinality sets the cardinality of an attribute or association end.
type SetPimCardinality struct {
	OperationBase
	Resource    string       `json:"resource"`
	Cardinality *Cardinality `json:"cardinality,omitempty"`
}

func NewSetPimCardinality(resource string, c *Cardinality) *SetPimCardinality {
	return &SetPimCardinality{OperationBase: NewOperationBase(OpSetPimCardinality), Resource: resource, Cardinality: c}
}

func (o *SetPimCardinality) Clone() Resource { return cloneOperation(o) }

// DeletePimAttribute removes Attribute from its schema.
type DeletePimAttribute struct {
	OperationBase
	Attribute string `json:"attribute"`
}

func NewDeletePimAttribute(attribute string) *DeletePimAttribute {
	return &DeletePimAttribute{OperationBase: NewOperationBase(OpDeletePimAttribute), Attribute: attribute}
}

func (o *DeletePimAttribute) Clone() Resource { return cloneOperation(o) }

// DeletePimAssociation removes Association and both of its ends.
type DeletePimAssociation struct {
	OperationBase
	Association string `json:"association"`
}

func NewDeletePimAssociation(association string) *DeletePimAssociation {
	return &DeletePimAssociation{OperationBase: NewOperationBase(OpDeletePimAssociation), Association: association}
}

func (o *DeletePimAssociation) Clone() Resource { return cloneOperation(o) }

// DeletePimClass removes Class from its schema. The class must own no
// attributes. Neither an association end nor a superclass list may still
// name it.
type DeletePimClass struct {
	OperationBase
	Class string `json:"class"`
}

func NewDeletePimClass(class string) *DeletePimClass {
	return &DeletePimClass{OperationBase: NewOperationBase(OpDeletePimClass), Class: class}
}

func (o *DeletePimClass) Clone() Resource { return cloneOperation(o) }
