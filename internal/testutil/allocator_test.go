package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialAllocator_StartsAtOne(t *testing.T) {
	a := NewSequentialAllocator("https://example.org/model")
	assert.Equal(t, 0, a.Current())
	assert.Equal(t, "https://example.org/model/psm/class/1", a.Allocate("psm/class"))
	assert.Equal(t, "https://example.org/model/psm/attribute/2", a.Allocate("psm/attribute"))
	assert.Equal(t, 2, a.Current())
}

func TestSequentialAllocator_KeepsTrailingSlash(t *testing.T) {
	a := NewSequentialAllocator("https://example.org/")
	assert.Equal(t, "https://example.org/operation/1", a.Allocate("operation"))
}

func TestSequentialAllocator_Reset(t *testing.T) {
	a := NewSequentialAllocator("urn:test")
	a.Allocate("x")
	a.Allocate("x")
	a.Reset()
	assert.Equal(t, "urn:test/x/1", a.Allocate("x"))
}

func TestSequentialAllocator_ThreadSafe(t *testing.T) {
	a := NewSequentialAllocator("urn:test")
	const goroutines = 50
	const calls = 40

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < calls; j++ {
				iri := a.Allocate("k")
				mu.Lock()
				seen[iri] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, goroutines*calls, "every IRI must be unique")
	assert.Equal(t, goroutines*calls, a.Current())
}
