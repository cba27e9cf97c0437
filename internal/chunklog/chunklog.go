// Package chunklog implements the segmented append-only stores that back a
// recording tape.
//
// A Log is a sequence of fixed-capacity chunks. Appending never moves data
// that is already stored: when the current chunk cannot honor a reservation,
// a fresh chunk is started and the old one is left untouched. Marks into the
// log therefore stay valid until the log is rewound past them, and rewinding
// is O(1) per chunk with no copying.
//
// Callers must reserve space before appending:
//
//	log.Reserve(2)
//	log.Append(a)
//	log.Append(b)
//
// Reserve guarantees that all reserved records land in the same chunk, which
// is what allows a statement's Jacobian entries to be counted by the in-chunk
// cursor delta and consumed as one contiguous run during replay.
package chunklog

import "fmt"

// Mark is a cursor into a Log: the index of a chunk and an offset within it.
// Marks order lexicographically, chunk first. A Mark is only meaningful for
// the log that produced it.
type Mark struct {
	Chunk  int
	Offset int
}

// Before reports whether m is strictly earlier than o.
func (m Mark) Before(o Mark) bool {
	if m.Chunk != o.Chunk {
		return m.Chunk < o.Chunk
	}
	return m.Offset < o.Offset
}

// After reports whether m is strictly later than o.
func (m Mark) After(o Mark) bool {
	return o.Before(m)
}

// String renders the mark as chunk:offset.
func (m Mark) String() string {
	return fmt.Sprintf("%d:%d", m.Chunk, m.Offset)
}

// Marker is the cursor surface a log exposes to an enclosing log. An outer
// log snapshots its inner log's Mark every time a chunk becomes current;
// those birth marks are what keep two co-recorded logs aligned when replay
// crosses a chunk boundary.
type Marker interface {
	Mark() Mark
	Rewind(Mark)
}

// Log is a chunked append-only store of records of type T.
//
// The zero value is not usable; construct with New. A Log is not safe for
// concurrent use.
type Log[T any] struct {
	inner  Marker // inner log snapshotted at chunk birth; nil for the innermost layer
	chunks [][]T  // chunks[i] has len = used records, cap = that chunk's capacity
	births []Mark // births[i] = inner.Mark() when chunk i became current
	cur    int    // index of the chunk currently being filled

	chunkSize int // capacity for chunks allocated from now on
}

// New creates a Log with the given per-chunk capacity. inner may be nil for
// the innermost log of a nest; otherwise its Mark is snapshotted whenever a
// chunk of this log becomes current.
func New[T any](chunkSize int, inner Marker) *Log[T] {
	if chunkSize <= 0 {
		panic(fmt.Sprintf("chunklog: chunk size must be positive, got %d", chunkSize))
	}
	l := &Log[T]{
		inner:     inner,
		chunks:    [][]T{make([]T, 0, chunkSize)},
		cur:       0,
		chunkSize: chunkSize,
	}
	if inner != nil {
		l.births = []Mark{inner.Mark()}
	}
	return l
}

// SetChunkSize changes the capacity used for chunks allocated in the future.
// Existing chunks keep their capacity.
func (l *Log[T]) SetChunkSize(n int) {
	if n <= 0 {
		panic(fmt.Sprintf("chunklog: chunk size must be positive, got %d", n))
	}
	l.chunkSize = n
}

// ChunkSize returns the capacity used for newly allocated chunks.
func (l *Log[T]) ChunkSize() int {
	return l.chunkSize
}

// Reserve guarantees that the next n Append calls land in the current chunk,
// starting a new chunk if the current one cannot hold them. n larger than the
// configured chunk size can never be satisfied and is fatal.
func (l *Log[T]) Reserve(n int) {
	c := l.chunks[l.cur]
	if len(c)+n <= cap(c) {
		return
	}
	if n > l.chunkSize {
		panic(fmt.Sprintf("chunklog: reservation of %d records exceeds chunk size %d", n, l.chunkSize))
	}
	l.nextChunk(n)
}

// nextChunk makes a fresh chunk current, reusing a previously allocated one
// when it is large enough. The inner log's position at this moment is
// recorded as the new chunk's birth mark.
func (l *Log[T]) nextChunk(minCap int) {
	l.cur++
	if l.cur == len(l.chunks) || cap(l.chunks[l.cur]) < minCap {
		fresh := make([]T, 0, l.chunkSize)
		if l.cur == len(l.chunks) {
			l.chunks = append(l.chunks, fresh)
			if l.inner != nil {
				l.births = append(l.births, Mark{})
			}
		} else {
			l.chunks[l.cur] = fresh
		}
	} else {
		l.chunks[l.cur] = l.chunks[l.cur][:0]
	}
	if l.inner != nil {
		l.births[l.cur] = l.inner.Mark()
	}
}

// Append writes one record at the cursor. Space must have been reserved.
func (l *Log[T]) Append(rec T) {
	c := l.chunks[l.cur]
	if len(c) == cap(c) {
		panic("chunklog: append without reservation")
	}
	l.chunks[l.cur] = append(c, rec)
}

// Mark returns the current cursor.
func (l *Log[T]) Mark() Mark {
	return Mark{Chunk: l.cur, Offset: len(l.chunks[l.cur])}
}

// ChunkOffset returns the offset within the current chunk. Together with
// Reserve's same-chunk guarantee this lets a caller count records written by
// a nested call as a simple delta.
func (l *Log[T]) ChunkOffset() int {
	return len(l.chunks[l.cur])
}

// Len returns the total number of records stored.
func (l *Log[T]) Len() int {
	n := 0
	for i := 0; i <= l.cur; i++ {
		n += len(l.chunks[i])
	}
	return n
}

// ChunkCount returns the number of chunks in use (including the current one).
func (l *Log[T]) ChunkCount() int {
	return l.cur + 1
}

// AllocatedChunks returns the number of chunks held, in use or not.
func (l *Log[T]) AllocatedChunks() int {
	return len(l.chunks)
}

// AllocatedCap returns the total record capacity across all held chunks.
func (l *Log[T]) AllocatedCap() int {
	n := 0
	for _, c := range l.chunks {
		n += cap(c)
	}
	return n
}

// ChunkLen returns the number of records used in chunk i.
func (l *Log[T]) ChunkLen(i int) int {
	return len(l.chunks[i])
}

// Chunk returns chunk i's used records as a shared window. The window must
// not be appended to or retained across a Rewind.
func (l *Log[T]) Chunk(i int) []T {
	return l.chunks[i]
}

// Birth returns the inner log's Mark recorded when chunk i became current.
// Only valid for logs constructed with a non-nil inner Marker.
func (l *Log[T]) Birth(i int) Mark {
	if l.inner == nil {
		panic("chunklog: birth marks require an inner log")
	}
	return l.births[i]
}

// Resize allocates chunks until the log can hold at least total records
// without further allocation. It never discards data.
func (l *Log[T]) Resize(total int) {
	for l.AllocatedCap() < total {
		l.chunks = append(l.chunks, make([]T, 0, l.chunkSize))
		if l.inner != nil {
			l.births = append(l.births, Mark{})
		}
	}
}

// IterateBackward calls fn once per chunk holding records in (to, from],
// newest chunk first. The window passed to fn is the in-range portion of
// that chunk, shared with the log (no copy); fn must not retain it. Chunks
// whose in-range portion is empty are skipped.
func (l *Log[T]) IterateBackward(from, to Mark, fn func(chunk int, window []T)) {
	l.check(from)
	l.check(to)
	if from.Before(to) {
		panic(fmt.Sprintf("chunklog: backward range inverted: from %v precedes to %v", from, to))
	}
	for i := from.Chunk; i >= to.Chunk; i-- {
		lo, hi := 0, len(l.chunks[i])
		if i == from.Chunk {
			hi = from.Offset
		}
		if i == to.Chunk {
			lo = to.Offset
		}
		if lo < hi {
			fn(i, l.chunks[i][lo:hi])
		}
	}
}

// Rewind truncates the log to m, discarding every record at or after it.
// Truncated chunks stay allocated and are reused by later appends.
func (l *Log[T]) Rewind(m Mark) {
	l.check(m)
	for i := m.Chunk + 1; i <= l.cur; i++ {
		l.chunks[i] = l.chunks[i][:0]
	}
	l.chunks[m.Chunk] = l.chunks[m.Chunk][:m.Offset]
	l.cur = m.Chunk
}

// check validates that m points into the used region of the log.
func (l *Log[T]) check(m Mark) {
	if m.Chunk < 0 || m.Chunk > l.cur || m.Offset < 0 || m.Offset > len(l.chunks[m.Chunk]) {
		panic(fmt.Sprintf("chunklog: mark %v outside used range (current %v)", m, l.Mark()))
	}
}
