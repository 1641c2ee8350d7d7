// Package harness runs operation scenarios against a fresh store.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: schema_class_attribute
//	description: "A class can only be deleted once it is empty"
//	base_iri: https://example.org/model
//	steps:
//	  - op: psm/create-schema
//	    as: schema
//	  - op: psm/create-class
//	    as: person
//	    args: { schema: $schema }
//	  - op: psm/create-attribute
//	    args: { owner: $person, technicalLabel: name }
//	  - op: psm/delete-class
//	    args: { class: $person }
//	    expect: { rejected: true, message: "still has" }
//	  - gc: { schema: $schema }
//	assertions:
//	  - type: exists
//	    resource: $schema
//	  - type: field
//	    resource: $schema
//	    field: roots
//	    equals: []
//
// An op step names an operation kind relative to the operation namespace
// ("psm/create-class") and gives its JSON members as args. A string
// starting with "$" refers to an IRI bound by an earlier step's "as"; the
// created IRIs of that step are also bound as "$name.0", "$name.1" and so
// on. A gc step runs the structural
// collector on a schema.
//
// # Assertion Types
//
//   - exists, absent: the resource is (not) in the final graph
//   - field: a JSON member of a resource equals a list or a string
//   - trace_order: operation kinds appear in this order
//   - trace_count: an operation kind was committed exactly N times
//
// # Deterministic Testing
//
// Run uses a sequential allocator, so IRIs are base/kind/N and identical
// across runs. Traces are compared with golden files through goldie:
//
//	go test ./internal/harness -update
package harness
