package indices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIndexCountsUpFromOne(t *testing.T) {
	var a Allocator

	assert.Equal(t, Index(1), a.NewIndex())
	assert.Equal(t, Index(2), a.NewIndex())
	assert.Equal(t, Index(3), a.NewIndex())
	assert.Equal(t, Index(3), a.MaxIndex())
	assert.Equal(t, 3, a.LiveCount())
}

func TestFreeIndexRecyclesLIFO(t *testing.T) {
	var a Allocator

	i1 := a.NewIndex()
	i2 := a.NewIndex()
	i3 := a.NewIndex()

	a.FreeIndex(&i1)
	a.FreeIndex(&i3)
	assert.Equal(t, Passive, i1, "freed index is cleared in place")
	assert.Equal(t, Passive, i3)
	assert.Equal(t, 2, a.FreeCount())
	assert.Equal(t, 1, a.LiveCount())

	// Most recently freed comes back first.
	assert.Equal(t, Index(3), a.NewIndex())
	assert.Equal(t, Index(1), a.NewIndex())
	assert.Equal(t, Index(4), a.NewIndex(), "fresh mint once the stack is empty")
	assert.Equal(t, Index(2), i2)
}

func TestFreePassiveIsNoop(t *testing.T) {
	var a Allocator

	idx := Passive
	a.FreeIndex(&idx)
	assert.Zero(t, a.FreeCount())
	assert.Equal(t, Index(0), a.MaxIndex())
}

func TestCheckIndexAssignsOnlyWhenPassive(t *testing.T) {
	var a Allocator

	idx := Passive
	a.CheckIndex(&idx)
	assert.Equal(t, Index(1), idx)

	a.CheckIndex(&idx)
	assert.Equal(t, Index(1), idx, "an assigned index is kept")
}

func TestMaxIndexIgnoresRecycling(t *testing.T) {
	var a Allocator

	i1 := a.NewIndex()
	i2 := a.NewIndex()
	a.FreeIndex(&i2)
	a.FreeIndex(&i1)

	assert.Equal(t, Index(2), a.MaxIndex())
	assert.Equal(t, 0, a.LiveCount())
}

func TestResetForgetsEverything(t *testing.T) {
	var a Allocator

	i1 := a.NewIndex()
	a.NewIndex()
	a.FreeIndex(&i1)

	a.Reset()
	assert.Equal(t, Index(0), a.MaxIndex())
	assert.Zero(t, a.FreeCount())
	assert.Equal(t, Index(1), a.NewIndex(), "counting restarts at one")
}
