// Package gc prunes resources that can no longer be reached.
//
// Collection runs in three stages: mark, decide and sweep. The structural
// pass works inside one graph and starts from a schema's roots. The
// conceptual pass derives a keep-set for a conceptual graph from the
// interpretations of the structural graphs that use it.
//
// Both passes mutate only through ApplyOperation with the ordinary delete
// and update operations, so every deletion is logged and replayable. The
// first rejected operation stops the pass; the operations applied before it
// stay committed and are listed in the returned Report.
package gc
