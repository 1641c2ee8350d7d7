package engine

import (
	"context"
	"fmt"

	"github.com/roach88/schemagraph/internal/ir"
)

// Allocator hands out fresh resource IRIs. kind is a short path segment such
// as "psm/class".
type Allocator interface {
	Allocate(kind string) string
}

// Executor computes the effect of one operation against the current graph.
//
// Executors are pure: they read through r, allocate identifiers through
// alloc, and describe the change in the returned result. They never mutate
// op or any resource returned by r.
type Executor func(ctx context.Context, r ir.Reader, alloc Allocator, op ir.Operation) ExecutorResult

// ExecutorResult is the diff produced by an executor, or a failure.
type ExecutorResult struct {
	// Created and Changed hold brand-new values; Created is in creation
	// order, which IdentityPinner relies on.
	Created []ir.Resource
	Changed []ir.Resource
	Deleted []string

	Payload any

	Failed  bool
	Message string
}

// Fail returns a failed result. The message must be a complete sentence.
func Fail(format string, args ...any) ExecutorResult {
	return ExecutorResult{Failed: true, Message: fmt.Sprintf(format, args...)}
}

// CreatedIRIs returns the IRIs of Created in order.
func (r ExecutorResult) CreatedIRIs() []string {
	return iris(r.Created)
}

// ChangedIRIs returns the IRIs of Changed in order.
func (r ExecutorResult) ChangedIRIs() []string {
	return iris(r.Changed)
}

func iris(resources []ir.Resource) []string {
	out := make([]string, 0, len(resources))
	for _, res := range resources {
		out = append(out, res.IRI())
	}
	return out
}

// Typed adapts an executor written against a concrete operation type.
func Typed[T ir.Operation](fn func(ctx context.Context, r ir.Reader, alloc Allocator, op T) ExecutorResult) Executor {
	return func(ctx context.Context, r ir.Reader, alloc Allocator, op ir.Operation) ExecutorResult {
		typed, ok := op.(T)
		if !ok {
			var zero T
			return Fail("The operation %s has the wrong shape; expected %T but got %T.", op.IRI(), zero, op)
		}
		return fn(ctx, r, alloc, typed)
	}
}
