package engine

import (
	"context"
	"slices"

	"github.com/roach88/schemagraph/internal/ir"
)

// Registry maps operation tags to executors. It is populated at startup and
// read-only afterwards.
type Registry struct {
	executors map[ir.Type]Executor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{executors: make(map[ir.Type]Executor)}
}

// Register adds the executor for tag t. Registering the same tag twice is a
// configuration error.
func (r *Registry) Register(t ir.Type, ex Executor) error {
	if _, exists := r.executors[t]; exists {
		return &DispatchError{Code: ErrCodeDuplicateExecutor, Types: []ir.Type{t}}
	}
	r.executors[t] = ex
	return nil
}

// MustRegister is Register for static startup wiring; it panics on error.
func (r *Registry) MustRegister(t ir.Type, ex Executor) {
	if err := r.Register(t, ex); err != nil {
		panic(err)
	}
}

// Types returns the registered tags, sorted.
func (r *Registry) Types() []ir.Type {
	out := make([]ir.Type, 0, len(r.executors))
	for t := range r.executors {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Resolve finds the single executor whose tag op carries.
func (r *Registry) Resolve(op ir.Operation) (ir.Type, Executor, error) {
	tags := op.Types()
	var matches []ir.Type
	for _, t := range tags {
		if _, ok := r.executors[t]; ok && !slices.Contains(matches, t) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return "", nil, &DispatchError{Code: ErrCodeNoExecutor, Types: tags}
	case 1:
		return matches[0], r.executors[matches[0]], nil
	default:
		return "", nil, &DispatchError{Code: ErrCodeAmbiguousExecutor, Types: tags, Matches: matches}
	}
}

// Execute resolves and runs the executor for op. A dispatch error is returned
// as an error; executor failures come back inside the result.
func (r *Registry) Execute(ctx context.Context, reader ir.Reader, alloc Allocator, op ir.Operation) (ir.Type, ExecutorResult, error) {
	t, ex, err := r.Resolve(op)
	if err != nil {
		return "", ExecutorResult{}, err
	}
	return t, ex(ctx, reader, alloc, op), nil
}
