package chunklog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkOrdering(t *testing.T) {
	a := Mark{Chunk: 0, Offset: 5}
	b := Mark{Chunk: 0, Offset: 7}
	c := Mark{Chunk: 2, Offset: 0}

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, b.Before(c))
	assert.False(t, a.Before(a))
	assert.False(t, a.After(a))
	assert.Equal(t, "2:0", c.String())
}

func TestAppendWithinChunk(t *testing.T) {
	l := New[int](4, nil)

	l.Reserve(3)
	l.Append(10)
	l.Append(20)
	l.Append(30)

	assert.Equal(t, Mark{Chunk: 0, Offset: 3}, l.Mark())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 1, l.ChunkCount())
	assert.Equal(t, []int{10, 20, 30}, l.Chunk(0))
}

func TestReserveRollsOver(t *testing.T) {
	l := New[int](4, nil)

	l.Reserve(3)
	l.Append(1)
	l.Append(2)
	l.Append(3)

	// Two more cannot fit in the remaining slot; the chunk is sealed at 3.
	l.Reserve(2)
	assert.Equal(t, Mark{Chunk: 1, Offset: 0}, l.Mark())
	l.Append(4)
	l.Append(5)

	assert.Equal(t, 5, l.Len())
	assert.Equal(t, 2, l.ChunkCount())
	assert.Equal(t, 3, l.ChunkLen(0))
	assert.Equal(t, 2, l.ChunkLen(1))
}

func TestReserveNoopWhenRoomRemains(t *testing.T) {
	l := New[int](4, nil)

	l.Reserve(2)
	l.Append(1)
	l.Reserve(2) // 1 used, 3 free: stays in chunk 0
	assert.Equal(t, Mark{Chunk: 0, Offset: 1}, l.Mark())
}

func TestReserveTooLargePanics(t *testing.T) {
	l := New[int](4, nil)
	assert.Panics(t, func() { l.Reserve(5) })
}

func TestAppendWithoutReservationPanics(t *testing.T) {
	l := New[int](2, nil)
	l.Reserve(2)
	l.Append(1)
	l.Append(2)
	assert.Panics(t, func() { l.Append(3) })
}

func TestZeroChunkSizePanics(t *testing.T) {
	assert.Panics(t, func() { New[int](0, nil) })
	l := New[int](2, nil)
	assert.Panics(t, func() { l.SetChunkSize(-1) })
}

func TestBirthMarksTrackInnerLog(t *testing.T) {
	inner := New[int](8, nil)
	outer := New[string](2, inner)

	require.Equal(t, Mark{}, outer.Birth(0))

	inner.Reserve(3)
	inner.Append(1)
	inner.Append(2)
	inner.Append(3)

	outer.Reserve(2)
	outer.Append("a")
	outer.Append("b")
	outer.Reserve(1) // rolls outer to chunk 1; inner is at 0:3
	outer.Append("c")

	assert.Equal(t, Mark{Chunk: 0, Offset: 3}, outer.Birth(1))
	assert.Equal(t, Mark{}, outer.Birth(0))
}

func TestBirthWithoutInnerPanics(t *testing.T) {
	l := New[int](2, nil)
	assert.Panics(t, func() { l.Birth(0) })
}

func TestIterateBackwardCrossesChunks(t *testing.T) {
	l := New[int](3, nil)
	for i := 1; i <= 8; i++ {
		l.Reserve(1)
		l.Append(i)
	}
	// Layout: [1 2 3] [4 5 6] [7 8]

	var got []int
	var order []int
	l.IterateBackward(l.Mark(), Mark{}, func(chunk int, window []int) {
		order = append(order, chunk)
		for i := len(window) - 1; i >= 0; i-- {
			got = append(got, window[i])
		}
	})

	assert.Equal(t, []int{2, 1, 0}, order)
	assert.Equal(t, []int{8, 7, 6, 5, 4, 3, 2, 1}, got)
}

func TestIterateBackwardPartialRange(t *testing.T) {
	l := New[int](3, nil)
	var m Mark
	for i := 1; i <= 8; i++ {
		if i == 3 {
			m = l.Mark()
		}
		l.Reserve(1)
		l.Append(i)
	}

	var got []int
	l.IterateBackward(Mark{Chunk: 2, Offset: 1}, m, func(chunk int, window []int) {
		for i := len(window) - 1; i >= 0; i-- {
			got = append(got, window[i])
		}
	})
	// Records in (0:2, 2:1]: values 7, 6, 5, 4, 3.
	assert.Equal(t, []int{7, 6, 5, 4, 3}, got)
}

func TestIterateBackwardEmptyRange(t *testing.T) {
	l := New[int](3, nil)
	l.Reserve(2)
	l.Append(1)
	l.Append(2)

	calls := 0
	l.IterateBackward(l.Mark(), l.Mark(), func(int, []int) { calls++ })
	assert.Zero(t, calls)
}

func TestIterateBackwardInvertedRangePanics(t *testing.T) {
	l := New[int](3, nil)
	l.Reserve(2)
	l.Append(1)
	l.Append(2)

	assert.Panics(t, func() {
		l.IterateBackward(Mark{}, l.Mark(), func(int, []int) {})
	})
}

func TestRewindTruncatesAndReuses(t *testing.T) {
	l := New[int](3, nil)
	for i := 1; i <= 7; i++ {
		l.Reserve(1)
		l.Append(i)
	}
	m := Mark{Chunk: 1, Offset: 1} // keep 1 2 3 | 4

	l.Rewind(m)
	require.Equal(t, m, l.Mark())
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, 2, l.ChunkCount())
	assert.Equal(t, 3, l.AllocatedChunks(), "chunks stay allocated for reuse")

	l.Reserve(2)
	l.Append(40)
	l.Append(50)
	assert.Equal(t, []int{4, 40, 50}, l.Chunk(1))

	l.Rewind(Mark{})
	assert.Zero(t, l.Len())
	assert.Equal(t, Mark{}, l.Mark())
}

func TestRewindRefreshesBirthOnReuse(t *testing.T) {
	inner := New[int](16, nil)
	outer := New[string](2, inner)

	inner.Reserve(2)
	inner.Append(1)
	inner.Append(2)
	outer.Reserve(2)
	outer.Append("a")
	outer.Append("b")
	outer.Reserve(1)
	outer.Append("c")
	require.Equal(t, Mark{Chunk: 0, Offset: 2}, outer.Birth(1))

	outer.Rewind(Mark{})
	inner.Rewind(Mark{})

	inner.Reserve(1)
	inner.Append(9)
	outer.Reserve(2)
	outer.Append("x")
	outer.Append("y")
	outer.Reserve(1) // reuses chunk 1; birth must be re-snapshotted
	outer.Append("z")

	assert.Equal(t, Mark{Chunk: 0, Offset: 1}, outer.Birth(1))
}

func TestRewindForeignMarkPanics(t *testing.T) {
	l := New[int](3, nil)
	l.Reserve(1)
	l.Append(1)

	assert.Panics(t, func() { l.Rewind(Mark{Chunk: 4, Offset: 0}) })
	assert.Panics(t, func() { l.Rewind(Mark{Chunk: 0, Offset: 9}) })
}

func TestResizePreallocates(t *testing.T) {
	l := New[int](4, nil)
	l.Resize(10)

	assert.GreaterOrEqual(t, l.AllocatedCap(), 10)
	assert.Equal(t, 3, l.AllocatedChunks())
	assert.Equal(t, 1, l.ChunkCount(), "preallocated chunks are not in use yet")

	// Appends flow into the preallocated chunks without fresh allocation.
	for i := 0; i < 10; i++ {
		l.Reserve(1)
		l.Append(i)
	}
	assert.Equal(t, 3, l.AllocatedChunks())
	assert.Equal(t, 10, l.Len())
}

func TestSetChunkSizeAffectsFutureChunks(t *testing.T) {
	l := New[int](2, nil)
	l.Reserve(2)
	l.Append(1)
	l.Append(2)

	l.SetChunkSize(5)
	l.Reserve(4)
	for i := 0; i < 4; i++ {
		l.Append(i)
	}

	assert.Equal(t, 2, cap(l.Chunk(0)))
	assert.Equal(t, 5, cap(l.Chunk(1)))
}

func TestReuseTooSmallChunkReplacesIt(t *testing.T) {
	l := New[int](2, nil)
	for i := 0; i < 4; i++ {
		l.Reserve(1)
		l.Append(i)
	}
	l.Rewind(Mark{})

	l.SetChunkSize(6)
	l.Reserve(2)
	l.Append(1)
	l.Append(2)
	// Chunk 1 was allocated with the old capacity 2; a reservation of 3 must
	// not be squeezed into it.
	l.Reserve(3)
	l.Append(3)
	l.Append(4)
	l.Append(5)

	assert.Equal(t, Mark{Chunk: 1, Offset: 3}, l.Mark())
	assert.GreaterOrEqual(t, cap(l.Chunk(1)), 3)
}
