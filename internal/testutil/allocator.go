package testutil

import (
	"fmt"
	"strings"
	"sync"
)

// SequentialAllocator hands out base/kind/N with one counter shared by all
// kinds, so IRIs are predictable and reflect allocation order.
//
// Thread-safety: all methods are safe for concurrent use.
type SequentialAllocator struct {
	mu   sync.Mutex
	base string
	seq  int
}

// NewSequentialAllocator returns an allocator rooted at base. The first
// Allocate returns base/kind/1.
func NewSequentialAllocator(base string) *SequentialAllocator {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &SequentialAllocator{base: base}
}

// Allocate implements engine.Allocator.
func (a *SequentialAllocator) Allocate(kind string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	return fmt.Sprintf("%s%s/%d", a.base, kind, a.seq)
}

// Current returns how many IRIs were allocated.
func (a *SequentialAllocator) Current() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seq
}

// Reset restarts the counter. After Reset the next Allocate returns N = 1.
func (a *SequentialAllocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq = 0
}
