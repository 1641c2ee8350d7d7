package ir

import "context"

// OperationResult records the effect of one committed operation.
type OperationResult struct {
	// Operation is the logged clone, with its assigned IRI and parent link.
	Operation Operation

	Created []string
	Changed []string
	Deleted []string

	// Payload is operation specific, e.g. CreatedPayload for create operations.
	Payload any
}

// CreatedPayload is returned by executors that create exactly one resource.
type CreatedPayload struct {
	IRI string `json:"iri"`
}

// CreatedAssociationPayload is returned when an association is created.
type CreatedAssociationPayload struct {
	IRI  string   `json:"iri"`
	Ends []string `json:"ends"`
}

// CreatedIRI returns the IRI carried by a create payload, or "".
func (r *OperationResult) CreatedIRI() string {
	switch p := r.Payload.(type) {
	case CreatedPayload:
		return p.IRI
	case CreatedAssociationPayload:
		return p.IRI
	}
	return ""
}

// Reader is the read contract exposed to editors, generators and the
// garbage collector. An unknown IRI yields (nil, nil), not an error.
type Reader interface {
	ListResources(ctx context.Context) ([]string, error)
	ListResourcesOfType(ctx context.Context, t Type) ([]string, error)
	ReadResource(ctx context.Context, iri string) (Resource, error)
}

// Writer is the mutation contract. A returned error means nothing was
// committed.
type Writer interface {
	ApplyOperation(ctx context.Context, op Operation) (*OperationResult, error)
}

// ReadWriter is a Reader that also accepts operations, i.e. a store.
type ReadWriter interface {
	Reader
	Writer
}
