package ir

import (
	"encoding/json"
	"fmt"
)

// kinds maps each primary tag to a constructor of its zero value. The set is
// closed: the decoder rejects anything not listed here.
var kinds = map[Type]func() Resource{
	TagPsmSchema:         func() Resource { return &PsmSchema{} },
	TagPsmClass:          func() Resource { return &PsmClass{} },
	TagPsmAttribute:      func() Resource { return &PsmAttribute{} },
	TagPsmAssociationEnd: func() Resource { return &PsmAssociationEnd{} },
	TagPsmClassReference: func() Resource { return &PsmClassReference{} },
	TagPsmOr:             func() Resource { return &PsmOr{} },
	TagPsmInclude:        func() Resource { return &PsmInclude{} },
	TagPsmContainer:      func() Resource { return &PsmContainer{} },
	TagPsmExternalRoot:   func() Resource { return &PsmExternalRoot{} },

	TagPimSchema:         func() Resource { return &PimSchema{} },
	TagPimClass:          func() Resource { return &PimClass{} },
	TagPimAttribute:      func() Resource { return &PimAttribute{} },
	TagPimAssociation:    func() Resource { return &PimAssociation{} },
	TagPimAssociationEnd: func() Resource { return &PimAssociationEnd{} },

	OpCreatePsmSchema:         func() Resource { return &CreatePsmSchema{} },
	OpSetPsmSchemaRoots:       func() Resource { return &SetPsmSchemaRoots{} },
	OpCreatePsmClass:          func() Resource { return &CreatePsmClass{} },
	OpCreatePsmAttribute:      func() Resource { return &CreatePsmAttribute{} },
	OpCreatePsmAssociationEnd: func() Resource { return &CreatePsmAssociationEnd{} },
	OpCreatePsmClassReference: func() Resource { return &CreatePsmClassReference{} },
	OpCreatePsmOr:             func() Resource { return &CreatePsmOr{} },
	OpSetPsmOrChoices:         func() Resource { return &SetPsmOrChoices{} },
	OpCreatePsmInclude:        func() Resource { return &CreatePsmInclude{} },
	OpCreatePsmContainer:      func() Resource { return &CreatePsmContainer{} },
	OpCreatePsmExternalRoot:   func() Resource { return &CreatePsmExternalRoot{} },
	OpSetPsmClassExtends:      func() Resource { return &SetPsmClassExtends{} },
	OpSetPsmPart:              func() Resource { return &SetPsmPart{} },
	OpSetPsmDatatype:          func() Resource { return &SetPsmDatatype{} },
	OpReplacePsmParts:         func() Resource { return &ReplacePsmParts{} },
	OpDeletePsmAttribute:      func() Resource { return &DeletePsmAttribute{} },
	OpDeletePsmAssociationEnd: func() Resource { return &DeletePsmAssociationEnd{} },
	OpDeletePsmInclude:        func() Resource { return &DeletePsmInclude{} },
	OpDeletePsmContainer:      func() Resource { return &DeletePsmContainer{} },
	OpDeletePsmClass:          func() Resource { return &DeletePsmClass{} },
	OpDeletePsmClassReference: func() Resource { return &DeletePsmClassReference{} },
	OpDeletePsmOr:             func() Resource { return &DeletePsmOr{} },
	OpDeletePsmExternalRoot:   func() Resource { return &DeletePsmExternalRoot{} },

	OpCreatePimSchema:      func() Resource { return &CreatePimSchema{} },
	OpCreatePimClass:       func() Resource { return &CreatePimClass{} },
	OpCreatePimAttribute:   func() Resource { return &CreatePimAttribute{} },
	OpCreatePimAssociation: func() Resource { return &CreatePimAssociation{} },
	OpSetPimClassExtends:   func() Resource { return &SetPimClassExtends{} },
	OpSetPimCardinality:    func() Resource { return &SetPimCardinality{} },
	OpDeletePimAttribute:   func() Resource { return &DeletePimAttribute{} },
	OpDeletePimAssociation: func() Resource { return &DeletePimAssociation{} },
	OpDeletePimClass:       func() Resource { return &DeletePimClass{} },

	OpSetHumanLabel:     func() Resource { return &SetHumanLabel{} },
	OpSetTechnicalLabel: func() Resource { return &SetTechnicalLabel{} },
	OpSetInterpretation: func() Resource { return &SetInterpretation{} },
	OpImportResources:   func() Resource { return &ImportResources{} },
}

// KnownKind reports whether t is the primary tag of a decodable kind.
func KnownKind(t Type) bool {
	_, ok := kinds[t]
	return ok
}

// PrimaryTag returns the first tag in tags that names a known kind.
func PrimaryTag(tags []Type) (Type, bool) {
	for _, t := range tags {
		if KnownKind(t) {
			return t, true
		}
	}
	return "", false
}

// NewOperation returns an empty, tagged operation of kind t, ready to be
// filled by json.Unmarshal. The harness uses it to build operations from
// scenario steps.
func NewOperation(t Type) (Operation, error) {
	factory, ok := kinds[t]
	if !ok {
		return nil, fmt.Errorf("unknown operation kind %q", t)
	}
	op, ok := factory().(Operation)
	if !ok {
		return nil, fmt.Errorf("%q is not an operation kind", t)
	}
	op.OperationFacet().Base = NewBase(TagOperation, t)
	return op, nil
}

// MarshalResource encodes a resource. The "types" member carries the
// discriminator; no other framing is added.
func MarshalResource(r Resource) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("marshal resource: nil resource")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal resource %s: %w", r.IRI(), err)
	}
	return data, nil
}

// UnmarshalResource decodes a resource written by MarshalResource.
func UnmarshalResource(data []byte) (Resource, error) {
	var head struct {
		Types []Type `json:"types"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("unmarshal resource: %w", err)
	}
	kind, ok := PrimaryTag(head.Types)
	if !ok {
		return nil, fmt.Errorf("unmarshal resource: no known kind in types %v", head.Types)
	}
	r := kinds[kind]()
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", LocalName(kind), err)
	}
	return r, nil
}

// UnmarshalOperation decodes an operation written by MarshalResource.
func UnmarshalOperation(data []byte) (Operation, error) {
	r, err := UnmarshalResource(data)
	if err != nil {
		return nil, err
	}
	op, ok := r.(Operation)
	if !ok {
		return nil, fmt.Errorf("unmarshal operation: %T is not an operation", r)
	}
	return op, nil
}
