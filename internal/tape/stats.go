package tape

import (
	"fmt"
	"strings"
	"unsafe"
)

// LogStats describes the usage of one recording log.
type LogStats struct {
	Chunks         int // chunks allocated, in use or not
	Entries        int // records currently stored
	UsedBytes      int
	AllocatedBytes int
}

// Statistics is a snapshot of a tape's usage counters, taken with
// Tape.Statistics.
type Statistics struct {
	Statements        LogStats
	JacobianEntries   LogStats
	ExternalFunctions LogStats

	// Adjoints covered when replaying now: every issued index plus the
	// passive slot.
	AdjointCount int
	AdjointBytes int

	MaxLiveIndices      int // highest index ever issued
	LiveIndices         int // indices currently assigned to values
	StoredIndices       int // recycled indices awaiting reuse
	IndexUsedBytes      int
	IndexAllocatedBytes int
}

// Statistics reports the tape's current memory and usage counters.
func (t *Tape) Statistics() Statistics {
	const (
		stmtSize = int(unsafe.Sizeof(Statement{}))
		jacSize  = int(unsafe.Sizeof(JacobianEntry{}))
		extSize  = int(unsafe.Sizeof(extRecord{}))
		idxSize  = int(unsafe.Sizeof(Index(0)))
		adjSize  = int(unsafe.Sizeof(float64(0)))
	)

	s := Statistics{
		Statements: LogStats{
			Chunks:         t.statements.AllocatedChunks(),
			Entries:        t.statements.Len(),
			UsedBytes:      t.statements.Len() * stmtSize,
			AllocatedBytes: t.statements.AllocatedCap() * stmtSize,
		},
		JacobianEntries: LogStats{
			Chunks:         t.jacobians.AllocatedChunks(),
			Entries:        t.jacobians.Len(),
			UsedBytes:      t.jacobians.Len() * jacSize,
			AllocatedBytes: t.jacobians.AllocatedCap() * jacSize,
		},
		ExternalFunctions: LogStats{
			Chunks:         t.extfuncs.AllocatedChunks(),
			Entries:        t.extfuncs.Len(),
			UsedBytes:      t.extfuncs.Len() * extSize,
			AllocatedBytes: t.extfuncs.AllocatedCap() * extSize,
		},
	}

	s.AdjointCount = int(t.alloc.MaxIndex()) + 1
	s.AdjointBytes = s.AdjointCount * adjSize

	s.MaxLiveIndices = int(t.alloc.MaxIndex())
	s.LiveIndices = t.alloc.LiveCount()
	s.StoredIndices = t.alloc.FreeCount()
	s.IndexUsedBytes = t.alloc.FreeCount() * idxSize
	s.IndexAllocatedBytes = t.alloc.FreeCapacity() * idxSize

	return s
}

const statsRule = "---------------------------------------------"

// String renders the statistics as the usual report table.
func (s Statistics) String() string {
	var b strings.Builder

	section := func(title string) {
		fmt.Fprintf(&b, "%s\n%s\n%s\n", statsRule, title, statsRule)
	}
	count := func(label string, n int) {
		fmt.Fprintf(&b, "  %-19s %10d\n", label+":", n)
	}
	mem := func(label string, bytes int) {
		fmt.Fprintf(&b, "  %-19s %10.2f MB\n", label+":", float64(bytes)/1024.0/1024.0)
	}

	section("Tape statistics")
	section("Statements")
	count("Number of chunks", s.Statements.Chunks)
	count("Total number", s.Statements.Entries)
	mem("Memory used", s.Statements.UsedBytes)
	mem("Memory allocated", s.Statements.AllocatedBytes)

	section("Jacobian entries")
	count("Number of chunks", s.JacobianEntries.Chunks)
	count("Total number", s.JacobianEntries.Entries)
	mem("Memory used", s.JacobianEntries.UsedBytes)
	mem("Memory allocated", s.JacobianEntries.AllocatedBytes)

	section("Adjoint vector")
	count("Number of adjoints", s.AdjointCount)
	mem("Memory allocated", s.AdjointBytes)

	section("Indices")
	count("Max live indices", s.MaxLiveIndices)
	count("Cur live indices", s.LiveIndices)
	count("Indices stored", s.StoredIndices)
	mem("Memory used", s.IndexUsedBytes)
	mem("Memory allocated", s.IndexAllocatedBytes)

	section("External functions")
	count("Number of chunks", s.ExternalFunctions.Chunks)
	count("Total number", s.ExternalFunctions.Entries)

	return b.String()
}
