package store

import (
	"context"
	"fmt"

	"github.com/roach88/schemagraph/internal/ir"
)

// ChainError reports an operation log whose parent links do not form a
// single chain.
type ChainError struct {
	// Operation is the IRI of the offending record, if any.
	Operation string
	Reason    string
}

func (e *ChainError) Error() string {
	if e.Operation == "" {
		return "broken operation chain: " + e.Reason
	}
	return fmt.Sprintf("broken operation chain at %s: %s", e.Operation, e.Reason)
}

// OrderOperations returns ops in parent order, starting with the operation
// that has no parent. Every operation needs an IRI, no two may share a
// parent, and every record must be reachable from the head.
func OrderOperations(ops []ir.Operation) ([]ir.Operation, error) {
	byParent := make(map[string]ir.Operation, len(ops))
	seen := make(map[string]bool, len(ops))
	for _, op := range ops {
		if op.IRI() == "" {
			return nil, &ChainError{Reason: "operation without IRI"}
		}
		if seen[op.IRI()] {
			return nil, &ChainError{Operation: op.IRI(), Reason: "duplicate operation"}
		}
		seen[op.IRI()] = true
		if other, ok := byParent[op.Parent()]; ok {
			return nil, &ChainError{
				Operation: op.IRI(),
				Reason:    fmt.Sprintf("shares parent %q with %s", op.Parent(), other.IRI()),
			}
		}
		byParent[op.Parent()] = op
	}

	ordered := make([]ir.Operation, 0, len(ops))
	for cur := ""; ; {
		next, ok := byParent[cur]
		if !ok {
			break
		}
		ordered = append(ordered, next)
		cur = next.IRI()
	}
	if len(ordered) != len(ops) {
		for _, op := range ops {
			if _, ok := byParent[op.Parent()]; ok && op.Parent() != "" && !seen[op.Parent()] {
				return nil, &ChainError{Operation: op.IRI(), Reason: fmt.Sprintf("unknown parent %q", op.Parent())}
			}
		}
		return nil, &ChainError{Reason: fmt.Sprintf("%d of %d operations are unreachable from the head", len(ops)-len(ordered), len(ops))}
	}
	return ordered, nil
}

// Replay builds a new store by re-applying ops through the executors. The
// logged operation IRIs and the identifiers pinned on create operations are
// kept, so a replayed log reproduces the original graph.
func Replay(ctx context.Context, baseIRI string, ops []ir.Operation, opts ...Option) (*Store, error) {
	ordered, err := OrderOperations(ops)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	s := New(baseIRI, opts...)
	for i, op := range ordered {
		res, err := s.apply(ctx, op, op.IRI())
		if err != nil {
			return nil, fmt.Errorf("replay operation %d (%s): %w", i, op.IRI(), err)
		}
		if res.Operation.Parent() != op.Parent() {
			return nil, &ChainError{Operation: op.IRI(), Reason: "replayed parent differs from the log"}
		}
	}
	s.logger.Debug("log replayed", "operations", len(ordered))
	return s, nil
}
