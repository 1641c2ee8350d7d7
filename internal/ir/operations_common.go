package ir

import (
	"encoding/json"
	"fmt"
)

// Facet and bulk operation tags.
const (
	OpSetHumanLabel     Type = NSOp + "set-human-label"
	OpSetTechnicalLabel Type = NSOp + "set-technical-label"
	OpSetInterpretation Type = NSOp + "set-interpretation"
	OpImportResources   Type = NSOp + "import-resources"
)

// SetHumanLabel replaces the label facet of any TagHumanLabeled resource.
type SetHumanLabel struct {
	OperationBase
	Resource         string         `json:"resource"`
	HumanLabel       LanguageString `json:"humanLabel,omitempty"`
	HumanDescription LanguageString `json:"humanDescription,omitempty"`
}

func NewSetHumanLabel(resource string, label LanguageString) *SetHumanLabel {
	return &SetHumanLabel{OperationBase: NewOperationBase(OpSetHumanLabel), Resource: resource, HumanLabel: label}
}

func (o *SetHumanLabel) Clone() Resource { return cloneOperation(o) }

// SetTechnicalLabel sets the technical label of any TagTechnicalLabeled
// resource.
type SetTechnicalLabel struct {
	OperationBase
	Resource       string `json:"resource"`
	TechnicalLabel string `json:"technicalLabel"`
}

func NewSetTechnicalLabel(resource, label string) *SetTechnicalLabel {
	return &SetTechnicalLabel{OperationBase: NewOperationBase(OpSetTechnicalLabel), Resource: resource, TechnicalLabel: label}
}

func (o *SetTechnicalLabel) Clone() Resource { return cloneOperation(o) }

// SetInterpretation points any TagInterpreted resource at a conceptual
// counterpart. An empty Interpretation clears the reference.
type SetInterpretation struct {
	OperationBase
	Resource       string `json:"resource"`
	Interpretation string `json:"interpretation,omitempty"`
}

func NewSetInterpretation(resource, interpretation string) *SetInterpretation {
	return &SetInterpretation{OperationBase: NewOperationBase(OpSetInterpretation), Resource: resource, Interpretation: interpretation}
}

func (o *SetInterpretation) Clone() Resource { return cloneOperation(o) }

// ImportResources merges externally loaded resources into a store. Missing
// resources are created, present ones replaced.
type ImportResources struct {
	OperationBase
	Resources []Resource `json:"-"`
}

func NewImportResources(resources ...Resource) *ImportResources {
	return &ImportResources{OperationBase: NewOperationBase(OpImportResources), Resources: resources}
}

func (o *ImportResources) Clone() Resource { return cloneOperation(o) }

type importResourcesJSON struct {
	OperationBase
	Resources []json.RawMessage `json:"resources"`
}

// MarshalJSON encodes the embedded resources with their own discriminators.
func (o *ImportResources) MarshalJSON() ([]byte, error) {
	raw := importResourcesJSON{OperationBase: o.OperationBase, Resources: make([]json.RawMessage, 0, len(o.Resources))}
	for _, r := range o.Resources {
		data, err := MarshalResource(r)
		if err != nil {
			return nil, err
		}
		raw.Resources = append(raw.Resources, data)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes the embedded resources through the kind registry.
func (o *ImportResources) UnmarshalJSON(data []byte) error {
	var raw importResourcesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.OperationBase = raw.OperationBase
	o.Resources = make([]Resource, 0, len(raw.Resources))
	for i, item := range raw.Resources {
		r, err := UnmarshalResource(item)
		if err != nil {
			return fmt.Errorf("resources[%d]: %w", i, err)
		}
		o.Resources = append(o.Resources, r)
	}
	return nil
}
