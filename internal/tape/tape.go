// Package tape records differentiable assignments and replays them backward
// to accumulate adjoints (reverse-mode automatic differentiation).
//
// A Tape owns three co-recorded chunked logs. The statement log holds one
// record per tracked assignment; the Jacobian log holds the partial
// derivative entries of those assignments; the external function log holds
// checkpoint callbacks spliced into the replay. The logs nest: each Jacobian
// chunk remembers the statement cursor at its birth, which is what lets the
// backward walk cross chunk boundaries without searching.
//
// Recording is driven by an arithmetic front end through the store methods;
// differentiation is driven by the client:
//
//	t := tape.New()
//	t.StartRecording()
//	... record y = f(x) ...
//	t.StopRecording()
//	t.SetGradient(yIdx, 1)
//	t.Backward()
//	dydx := t.Gradient(xIdx)
//
// A Tape is single-threaded. Distinct differentiation passes, including
// nested ones, must each use their own Tape.
package tape

import (
	"github.com/google/uuid"

	"github.com/revad-ml/revad/internal/adjoint"
	"github.com/revad-ml/revad/internal/chunklog"
	"github.com/revad-ml/revad/internal/indices"
)

// Index identifies one tracked value on a tape. The zero Index is the
// passive sentinel.
type Index = indices.Index

// Passive is the index of every untracked value.
const Passive = indices.Passive

// Tape is a chunked recording of differentiable assignments, replayable
// backward. Construct with New or NewWithOptions; the zero value is not
// usable.
type Tape struct {
	id uuid.UUID

	// The logs nest innermost to outermost: statements, then Jacobian
	// entries (whose chunk births snapshot the statement cursor), then
	// external functions (whose chunk births snapshot the Jacobian
	// cursor).
	statements *chunklog.Log[Statement]
	jacobians  *chunklog.Log[JacobianEntry]
	extfuncs   *chunklog.Log[extRecord]

	adjoints adjoint.Vector
	alloc    indices.Allocator

	recording bool
	opts      Options
}

// New creates an idle tape with default options. Recording starts off; call
// StartRecording before the first tracked assignment.
func New() *Tape {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates an idle tape with the given configuration.
func NewWithOptions(opts Options) *Tape {
	t := &Tape{
		id:   uuid.New(),
		opts: opts,
	}
	t.statements = chunklog.New[Statement](opts.StatementChunkSize, nil)
	t.jacobians = chunklog.New[JacobianEntry](opts.JacobianChunkSize, t.statements)
	t.extfuncs = chunklog.New[extRecord](opts.ExternalFunctionChunkSize, t.jacobians)
	return t
}

// StartRecording turns the tape active: store calls append to the logs.
func (t *Tape) StartRecording() {
	t.recording = true
}

// StopRecording turns the tape passive: store calls only move primal values
// and release indices.
func (t *Tape) StopRecording() {
	t.recording = false
}

// IsRecording reports whether store calls currently append to the logs.
func (t *Tape) IsRecording() bool {
	return t.recording
}

// Gradient returns the adjoint accumulated for idx. Indices that were never
// seeded or reached, and the passive index, read as zero.
func (t *Tape) Gradient(idx Index) float64 {
	return t.adjoints.Get(idx)
}

// SetGradient seeds the adjoint of idx, typically 1 on an output before
// Backward. Setting the passive index is ignored.
func (t *Tape) SetGradient(idx Index, value float64) {
	if idx == Passive {
		return
	}
	t.adjoints.Set(idx, value)
}

// GradientRef returns a writable reference to the adjoint of idx, growing
// the adjoint vector as needed. The reference is invalidated by the next
// growth. The passive index has no adjoint slot; asking for it is fatal.
func (t *Tape) GradientRef(idx Index) *float64 {
	return t.adjoints.Ref(idx)
}

// ClearAdjoints zeroes every adjoint without touching the recording.
func (t *Tape) ClearAdjoints() {
	t.adjoints.Clear()
}

// RegisterInput marks a value as a differentiation input by forcing an
// index allocation. Without it a variable only becomes tracked once it
// depends on another tracked value.
func (t *Tape) RegisterInput(idx *Index) {
	t.alloc.CheckIndex(idx)
}

// RegisterOutput marks a value as a differentiation output. Nothing needs
// to happen for this tape; the method exists for symmetry with
// RegisterInput.
func (t *Tape) RegisterOutput(idx *Index) {}

// InitGradientData initializes the tracking state of a freshly constructed
// value. value is unused by this tape but part of the recording protocol.
func (t *Tape) InitGradientData(value *float64, idx *Index) {
	*idx = Passive
}

// DestroyGradientData releases the tracking state of a value that goes out
// of use, recycling its index. value is unused by this tape but part of the
// recording protocol.
func (t *Tape) DestroyGradientData(value *float64, idx *Index) {
	t.alloc.FreeIndex(idx)
}

// MaxIndex returns the highest index issued so far.
func (t *Tape) MaxIndex() Index {
	return t.alloc.MaxIndex()
}

// UsedStatements returns the number of statements currently recorded.
func (t *Tape) UsedStatements() int {
	return t.statements.Len()
}

// UsedJacobianEntries returns the number of Jacobian entries currently
// recorded.
func (t *Tape) UsedJacobianEntries() int {
	return t.jacobians.Len()
}

// UsedExternalFunctions returns the number of external function records
// currently recorded.
func (t *Tape) UsedExternalFunctions() int {
	return t.extfuncs.Len()
}

// SetStatementChunkSize changes the chunk capacity used for future
// statement chunks.
func (t *Tape) SetStatementChunkSize(n int) {
	t.statements.SetChunkSize(n)
}

// SetJacobianChunkSize changes the chunk capacity used for future Jacobian
// chunks.
func (t *Tape) SetJacobianChunkSize(n int) {
	t.jacobians.SetChunkSize(n)
}

// SetExternalFunctionChunkSize changes the chunk capacity used for future
// external function chunks.
func (t *Tape) SetExternalFunctionChunkSize(n int) {
	t.extfuncs.SetChunkSize(n)
}

// Resize preallocates log chunks so that the given numbers of Jacobian
// entries and statements fit without further allocation.
func (t *Tape) Resize(jacobianEntries, statements int) {
	t.jacobians.Resize(jacobianEntries)
	t.statements.Resize(statements)
}

// Reset discards the whole recording, releases every external function's
// data, zeroes all adjoints and forgets all issued indices. The tape is as
// new afterwards; storage stays allocated for reuse.
func (t *Tape) Reset() {
	t.ResetTo(t.start())
	t.alloc.Reset()
}

// ResetTo truncates the recording back to pos, releasing the data of every
// external function recorded after it, newest first. All adjoints are
// zeroed. Issued indices are kept: values that were live at pos stay valid.
func (t *Tape) ResetTo(pos Position) {
	t.checkPosition(pos)
	t.adjoints.Clear()

	t.extfuncs.IterateBackward(t.extfuncs.Mark(), pos.ext, func(_ int, win []extRecord) {
		for i := len(win) - 1; i >= 0; i-- {
			if win[i].release != nil {
				win[i].release(win[i].data)
			}
			win[i] = extRecord{}
		}
	})

	t.extfuncs.Rewind(pos.ext)
	t.jacobians.Rewind(pos.jac)
	t.statements.Rewind(pos.stmt)
}
