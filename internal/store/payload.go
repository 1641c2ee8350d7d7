package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/schemagraph/internal/ir"
)

// Payload is the persisted layout of a store: the operation log in commit
// order and the resource map it produced.
type Payload struct {
	Operations []ir.Operation
	Resources  map[string]ir.Resource
}

type payloadJSON struct {
	Operations []json.RawMessage          `json:"operations"`
	Resources  map[string]json.RawMessage `json:"resources"`
}

// MarshalJSON encodes every record with its own type discriminator.
func (p Payload) MarshalJSON() ([]byte, error) {
	raw := payloadJSON{
		Operations: make([]json.RawMessage, 0, len(p.Operations)),
		Resources:  make(map[string]json.RawMessage, len(p.Resources)),
	}
	for i, op := range p.Operations {
		data, err := ir.MarshalResource(op)
		if err != nil {
			return nil, fmt.Errorf("operations[%d]: %w", i, err)
		}
		raw.Operations = append(raw.Operations, data)
	}
	for iri, res := range p.Resources {
		data, err := ir.MarshalResource(res)
		if err != nil {
			return nil, fmt.Errorf("resources[%s]: %w", iri, err)
		}
		raw.Resources[iri] = data
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes records through the ir kind registry.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw payloadJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Operations = make([]ir.Operation, 0, len(raw.Operations))
	for i, item := range raw.Operations {
		op, err := ir.UnmarshalOperation(item)
		if err != nil {
			return fmt.Errorf("operations[%d]: %w", i, err)
		}
		p.Operations = append(p.Operations, op)
	}
	p.Resources = make(map[string]ir.Resource, len(raw.Resources))
	for iri, item := range raw.Resources {
		res, err := ir.UnmarshalResource(item)
		if err != nil {
			return fmt.Errorf("resources[%s]: %w", iri, err)
		}
		if res.IRI() != iri {
			return fmt.Errorf("resources[%s]: record carries IRI %q", iri, res.IRI())
		}
		p.Resources[iri] = res
	}
	return nil
}

// Export returns a deep copy of the store state.
func (s *Store) Export() Payload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := Payload{
		Operations: make([]ir.Operation, 0, len(s.operations)),
		Resources:  make(map[string]ir.Resource, len(s.resources)),
	}
	for _, op := range s.operations {
		p.Operations = append(p.Operations, op.Clone().(ir.Operation))
	}
	for iri, e := range s.resources {
		p.Resources[iri] = e.res.Clone()
	}
	return p
}

// Import replaces the store state with p. The operation log must form an
// unbroken parent chain; it is stored in chain order.
func (s *Store) Import(p Payload) error {
	ordered, err := OrderOperations(p.Operations)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	resources := make(map[string]entry, len(p.Resources))
	generation := int64(len(ordered))
	for iri, res := range p.Resources {
		if res == nil || res.IRI() != iri {
			return fmt.Errorf("import: resource entry %s does not match its record", iri)
		}
		resources[iri] = entry{res: res.Clone(), generation: generation}
	}
	operations := make([]ir.Operation, 0, len(ordered))
	for _, op := range ordered {
		operations = append(operations, op.Clone().(ir.Operation))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = resources
	s.operations = operations
	s.generation = generation
	s.logger.Debug("store imported", "operations", len(operations), "resources", len(resources))
	return nil
}
