// Package ir provides the resource and operation model for schemagraph.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the model the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Resources live in a flat iri -> resource map; ownership is membership
//     in a Parts list, never physical containment
//   - Type tags are fixed at construction and never mutated
//   - A resource value handed out by a store is never mutated in place;
//     updates Clone() and replace the map entry
//   - Interpretation references point into a different graph and are
//     lookup-only
//   - All JSON tags use camelCase IRIs-as-strings; "types" is the
//     discriminator for polymorphic decoding
package ir
