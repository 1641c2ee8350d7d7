// Package store holds a resource graph and the operation log that produced
// it.
//
// A Store is the only writer of its graph. Every change goes through
// ApplyOperation, which resolves an executor in the engine registry, runs it
// against the current state and commits the resulting diff together with a
// relinked clone of the operation:
//
//   - A failed executor result is returned as *engine.PreconditionError and
//     leaves no trace: neither the log nor the resource map changes.
//   - Commits are serialized by a mutex, so the log order is the call order.
//   - Logged operations carry the identifiers their executors allocated, so
//     Replay rebuilds the same graph without the original allocator.
//
// # Persistence
//
// Payload is the persisted layout {operations, resources}. Journal stores a
// payload in SQLite:
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// Resources are stored as canonical JSON (see ir.MarshalCanonical) so the
// same graph always produces the same rows.
package store
