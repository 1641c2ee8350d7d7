package store

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDAllocator allocates baseIRI/kind/<uuid v7>. Version 7 identifiers sort
// by creation time, which keeps sorted listings close to creation order.
type UUIDAllocator struct {
	base string
}

// NewUUIDAllocator returns an allocator rooted at baseIRI. A trailing slash
// is added when missing.
func NewUUIDAllocator(baseIRI string) *UUIDAllocator {
	if baseIRI != "" && !strings.HasSuffix(baseIRI, "/") && !strings.HasSuffix(baseIRI, "#") {
		baseIRI += "/"
	}
	return &UUIDAllocator{base: baseIRI}
}

// Allocate implements engine.Allocator.
func (a *UUIDAllocator) Allocate(kind string) string {
	return a.base + kind + "/" + uuid.Must(uuid.NewV7()).String()
}
