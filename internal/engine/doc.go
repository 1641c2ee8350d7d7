// Package engine implements the executor registry of the schemagraph model
// engine.
//
// Every change to a resource graph is an ir.Operation. The registry maps each
// operation tag to exactly one Executor, a pure function that reads the
// current graph and describes the change as an ExecutorResult: created and
// changed resources plus deleted IRIs. Executors never mutate their inputs.
// The store commits the result; the garbage collector issues ordinary
// operations through the same executors, so there is no privileged mutation
// path.
//
// ERROR TAXONOMY:
//
// Dispatch errors (DispatchError) are configuration defects: an operation
// whose tags match no executor or several, or a duplicate registration. They
// are raised before anything is executed.
//
// Precondition failures are reported by executors as a failed ExecutorResult
// carrying a complete sentence suitable for direct display. The store turns
// them into PreconditionError at the ApplyOperation boundary.
package engine
