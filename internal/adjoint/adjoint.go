// Package adjoint stores the derivative value for each active identifier.
//
// Storage is a flat slice indexed by identifier, so lookup during replay is
// a single bounds check. Slot 0 belongs to the passive index: it always reads
// as zero, and writes to it are invisible, so identifiers map to slots with
// no validity branch.
package adjoint

import (
	"fmt"

	"github.com/revad-ml/revad/internal/indices"
)

// Vector is a growable adjoint store. The zero value is empty and ready to
// use. A Vector is not safe for concurrent use.
type Vector struct {
	// data never shrinks, so the region between len and cap is still zero
	// from allocation and can be exposed by a plain reslice.
	data []float64
}

// Get returns the adjoint of idx. Identifiers beyond the current storage,
// and the passive index, read as zero.
func (v *Vector) Get(idx indices.Index) float64 {
	if idx < 1 || int(idx) >= len(v.data) {
		return 0
	}
	return v.data[idx]
}

// Ref returns a pointer to the adjoint of idx, growing the storage as
// needed. The pointer is invalidated by the next growth; callers must not
// hold it across an operation that may grow the vector. Asking for the
// passive index is fatal.
func (v *Vector) Ref(idx indices.Index) *float64 {
	if idx < 1 {
		panic(fmt.Sprintf("adjoint: no adjoint slot for index %d", idx))
	}
	v.EnsureLen(int(idx) + 1)
	return &v.data[idx]
}

// Set writes the adjoint of idx, growing the storage as needed.
func (v *Vector) Set(idx indices.Index, value float64) {
	*v.Ref(idx) = value
}

// EnsureLen grows the vector to at least n slots, zero-filling new ones.
func (v *Vector) EnsureLen(n int) {
	if n <= len(v.data) {
		return
	}
	if n <= cap(v.data) {
		v.data = v.data[:n]
		return
	}
	c := cap(v.data) * 2
	if c < n {
		c = n
	}
	grown := make([]float64, n, c)
	copy(grown, v.data)
	v.data = grown
}

// Len returns the number of slots currently held, slot 0 included.
func (v *Vector) Len() int {
	return len(v.data)
}

// Data exposes the live slots for in-place propagation. Slot 0 is the
// passive sink. The slice is invalidated by the next growth.
func (v *Vector) Data() []float64 {
	return v.data
}

// Clear zeroes every slot without releasing storage.
func (v *Vector) Clear() {
	for i := range v.data {
		v.data[i] = 0
	}
}
