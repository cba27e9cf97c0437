// Package indices manages the identifiers a tape hands out to active values.
//
// Identifiers are dense small integers so that adjoint storage can be a flat
// slice. Index 0 is reserved for passive values, which never carry an
// adjoint. Freed identifiers are recycled in LIFO order, which keeps the live
// range compact and the adjoint slice short.
package indices

import "fmt"

// Index identifies one active value on a tape. The zero Index marks a
// passive value.
type Index int32

// Passive is the index of every value that does not participate in
// differentiation.
const Passive Index = 0

// maxIndex is the largest identifier an Allocator will issue.
const maxIndex = Index(^uint32(0) >> 1)

// Allocator issues and recycles identifiers. Freed identifiers are reused
// most-recently-freed first; only when the free list is empty is a brand new
// identifier minted. The zero value is ready to use.
//
// An Allocator is not safe for concurrent use.
type Allocator struct {
	issued Index   // highest identifier ever minted
	free   []Index // recycled identifiers, top of stack last
}

// NewIndex returns an identifier that is not currently assigned to any
// value. Exhausting the identifier space is fatal.
func (a *Allocator) NewIndex() Index {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		return idx
	}
	if a.issued == maxIndex {
		panic(fmt.Sprintf("indices: identifier space exhausted at %d", maxIndex))
	}
	a.issued++
	return a.issued
}

// FreeIndex recycles *idx and sets it to Passive. Freeing a passive index is
// a no-op.
func (a *Allocator) FreeIndex(idx *Index) {
	if *idx == Passive {
		return
	}
	a.free = append(a.free, *idx)
	*idx = Passive
}

// CheckIndex assigns a fresh identifier to *idx if it is still passive. A
// value that already has an identifier keeps it.
func (a *Allocator) CheckIndex(idx *Index) {
	if *idx == Passive {
		*idx = a.NewIndex()
	}
}

// MaxIndex returns the highest identifier ever minted. Adjoint storage must
// cover indices 1 through MaxIndex.
func (a *Allocator) MaxIndex() Index {
	return a.issued
}

// FreeCount returns the number of recycled identifiers awaiting reuse.
func (a *Allocator) FreeCount() int {
	return len(a.free)
}

// FreeCapacity returns the capacity of the recycle stack.
func (a *Allocator) FreeCapacity() int {
	return cap(a.free)
}

// LiveCount returns the number of identifiers currently assigned.
func (a *Allocator) LiveCount() int {
	return int(a.issued) - len(a.free)
}

// Reset forgets every identifier. All previously issued indices become
// invalid; the recycle stack keeps its storage.
func (a *Allocator) Reset() {
	a.issued = 0
	a.free = a.free[:0]
}
