package store

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/roach88/schemagraph/internal/engine"
	"github.com/roach88/schemagraph/internal/ir"
)

type entry struct {
	res        ir.Resource
	generation int64
}

// Store is an in-memory resource graph with its operation log.
//
// Thread-safety: every method is safe for concurrent use. Writes are
// serialized; reads see the state after the last completed commit.
type Store struct {
	mu         sync.RWMutex
	resources  map[string]entry
	operations []ir.Operation
	generation int64

	baseIRI   string
	allocator engine.Allocator
	registry  *engine.Registry
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithAllocator substitutes the identifier allocator.
func WithAllocator(a engine.Allocator) Option {
	return func(s *Store) { s.allocator = a }
}

// WithRegistry substitutes the executor registry. The default is
// engine.Default().
func WithRegistry(r *engine.Registry) Option {
	return func(s *Store) { s.registry = r }
}

// WithLogger sets the logger for commit and failure events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New returns an empty store whose allocated IRIs start with baseIRI.
func New(baseIRI string, opts ...Option) *Store {
	s := &Store{
		resources: make(map[string]entry),
		baseIRI:   baseIRI,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.allocator == nil {
		s.allocator = NewUUIDAllocator(baseIRI)
	}
	if s.registry == nil {
		s.registry = engine.Default()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// BaseIRI returns the prefix used for allocated identifiers.
func (s *Store) BaseIRI() string { return s.baseIRI }

// Generation returns the number of commits applied so far.
func (s *Store) Generation() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Operations returns the committed log, oldest first.
func (s *Store) Operations() []ir.Operation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.operations)
}

// Tail returns the IRI of the last committed operation, or "".
func (s *Store) Tail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tail()
}

func (s *Store) tail() string {
	if len(s.operations) == 0 {
		return ""
	}
	return s.operations[len(s.operations)-1].IRI()
}

// ApplyOperation executes op and commits its effect.
//
// The executor runs against the current state under the write lock. If it
// fails, the failure is returned as *engine.PreconditionError and nothing is
// committed. Otherwise a clone of op is assigned a fresh IRI, linked to the
// current log tail and appended; created and changed resources replace their
// map entries and deleted IRIs are removed.
func (s *Store) ApplyOperation(ctx context.Context, op ir.Operation) (*ir.OperationResult, error) {
	return s.apply(ctx, op, "")
}

// apply commits op. A non-empty opIRI keeps a previously logged identity.
func (s *Store) apply(ctx context.Context, op ir.Operation, opIRI string) (*ir.OperationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if op == nil {
		return nil, fmt.Errorf("apply operation: nil operation")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tag, result, err := s.registry.Execute(ctx, lockedReader{s}, s.allocator, op)
	if err != nil {
		s.logger.Error("operation dispatch failed", "types", op.Types(), "error", err)
		return nil, fmt.Errorf("apply operation: %w", err)
	}
	if result.Failed {
		s.logger.Debug("operation rejected", "operation", ir.LocalName(tag), "message", result.Message)
		return nil, &engine.PreconditionError{Operation: tag, Message: result.Message}
	}

	created := result.CreatedIRIs()
	logged := op.Clone().(ir.Operation)
	if pinner, ok := logged.(ir.IdentityPinner); ok {
		pinner.PinIdentities(created)
	}
	if opIRI == "" {
		opIRI = s.allocator.Allocate("operation")
	}
	logged.OperationFacet().Relink(opIRI, s.tail())

	s.generation++
	s.operations = append(s.operations, logged)
	for _, res := range result.Created {
		s.resources[res.IRI()] = entry{res: res, generation: s.generation}
	}
	for _, res := range result.Changed {
		s.resources[res.IRI()] = entry{res: res, generation: s.generation}
	}
	for _, iri := range result.Deleted {
		delete(s.resources, iri)
	}

	s.logger.Debug("operation committed",
		"operation", ir.LocalName(tag),
		"iri", opIRI,
		"created", len(created),
		"changed", len(result.Changed),
		"deleted", len(result.Deleted),
	)

	return &ir.OperationResult{
		Operation: logged.Clone().(ir.Operation),
		Created:   created,
		Changed:   result.ChangedIRIs(),
		Deleted:   slices.Clone(result.Deleted),
		Payload:   result.Payload,
	}, nil
}

// Resources returns a copy of the resource map. Values are shared and must
// not be mutated.
func (s *Store) Resources() map[string]ir.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]ir.Resource, len(s.resources))
	for iri, e := range s.resources {
		out[iri] = e.res
	}
	return out
}

// GenerationOf returns the commit that last wrote iri, or 0 when absent.
func (s *Store) GenerationOf(iri string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resources[iri].generation
}

// Digest hashes the current resource map.
func (s *Store) Digest() (string, error) {
	return ir.Digest(s.Resources())
}

// sortedKeys returns the IRIs of m, sorted.
func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
