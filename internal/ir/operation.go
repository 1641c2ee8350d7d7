package ir

import (
	"encoding/json"
	"fmt"
)

// Operation is a replayable mutation record. The store assigns its IRI and
// links Parent to the previously committed operation, forming a singly linked,
// strictly ordered log.
type Operation interface {
	Resource
	Parent() string
	OperationFacet() *OperationBase
}

// OperationBase carries identity and the log link of an operation.
type OperationBase struct {
	Base
	ParentIRI string `json:"parent,omitempty"`
}

// NewOperationBase returns a base tagged as an operation of kind t.
func NewOperationBase(t Type) OperationBase {
	return OperationBase{Base: NewBase(TagOperation, t)}
}

// Parent returns the IRI of the preceding operation, or "" for the first.
func (o *OperationBase) Parent() string { return o.ParentIRI }

// OperationFacet exposes the base for the store to relink clones.
func (o *OperationBase) OperationFacet() *OperationBase { return o }

// Relink assigns identity and log position. The store calls it on a clone
// before appending; committed operations are never relinked.
func (o *OperationBase) Relink(iri, parent string) {
	o.ID = iri
	o.ParentIRI = parent
}

// IdentityPinner is implemented by operations that create resources. The
// store pins the IRIs an executor allocated onto the logged clone so the log
// replays to the same identifiers without the original allocator.
type IdentityPinner interface {
	PinIdentities(created []string)
}

// NewResource is embedded by create operations. NewIRI is optional; when
// empty the executor allocates one.
type NewResource struct {
	NewIRI string `json:"newIri,omitempty"`
}

// PinIdentities records the first created IRI when none was requested.
func (n *NewResource) PinIdentities(created []string) {
	if n.NewIRI == "" && len(created) > 0 {
		n.NewIRI = created[0]
	}
}

// cloneOperation deep-copies an operation through its JSON form. Operation
// records hold only plain data, so a marshal failure is a programming error.
func cloneOperation[T any, P interface {
	*T
	Operation
}](o P) Resource {
	data, err := json.Marshal(o)
	if err != nil {
		panic(fmt.Sprintf("clone %T: %v", o, err))
	}
	c := P(new(T))
	if err := json.Unmarshal(data, c); err != nil {
		panic(fmt.Sprintf("clone %T: %v", o, err))
	}
	return c
}
