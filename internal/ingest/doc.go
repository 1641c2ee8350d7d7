// Package ingest builds a resource graph from triple data.
//
// Load walks a Source from one root identifier with a worklist and a visited
// set, so every node is loaded at most once and cycles terminate. Each node
// is offered to the loaders in priority order; the first loader that accepts
// it builds the resource and names the identifiers it references, which join
// the worklist.
//
// RDF collections (rdf:first/rdf:rest chains ending in rdf:nil) are resolved
// into flat sequences before a loader sees the node. A chain with missing or
// repeated links, or a cycle, is corrupt input and fails the whole load with
// *CorruptListError. A node that no loader accepts is only recorded in
// Result.Missing, so partial graphs still load.
//
// Nothing reaches a store until the caller passes the Result to Merge.
package ingest
