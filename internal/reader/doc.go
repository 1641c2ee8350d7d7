// Package reader composes ir.Reader implementations.
//
// Federated reads several graphs as one: a resource is looked up in each
// reader in order and the first hit wins, while listings return the union.
// Snapshot exposes a fixed set of resources, such as an ingestion result,
// without letting anyone mutate it through the reader.
//
// Federated reads are not transactional across the underlying readers. A
// listing reflects each reader at the moment it was asked.
package reader
