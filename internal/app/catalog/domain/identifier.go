package domain

import "sync"

// DefaultLocalIDBase is the start of the identifier range reserved for local products.
const DefaultLocalIDBase int64 = 1_000_000

// IdentifierAllocator issues identifiers for local products. Identifiers start at
// a reserved base, strictly increase, and are never reissued. Remote identifiers
// reported through Observe push the next identifier past them.
type IdentifierAllocator struct {
	mu   sync.Mutex
	next int64
}

// NewIdentifierAllocator creates an allocator whose first identifier is base.
func NewIdentifierAllocator(base int64) *IdentifierAllocator {
	if base <= 0 {
		base = DefaultLocalIDBase
	}
	return &IdentifierAllocator{next: base}
}

// Allocate returns the next identifier.
func (a *IdentifierAllocator) Allocate() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.next
	a.next++
	return id
}

// Observe records an identifier seen in a remote response.
func (a *IdentifierAllocator) Observe(remoteID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if remoteID >= a.next {
		a.next = remoteID + 1
	}
}
