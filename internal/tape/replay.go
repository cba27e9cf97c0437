package tape

import (
	"fmt"

	"github.com/revad-ml/revad/internal/chunklog"
)

// Backward replays the whole recording, accumulating adjoints from the
// current end of the tape down to its start.
func (t *Tape) Backward() {
	t.BackwardRange(t.Position(), t.start())
}

// BackwardRange replays the recording between two checkpoints, newest
// first. start must be at or after end; both must come from this tape.
// Before the walk the adjoint vector is grown to cover every issued index,
// so replay itself never reallocates it.
//
// External functions recorded inside the range are invoked at exactly the
// point they were pushed: all adjoints of statements recorded after the
// push are fully propagated first. The walk ends when the cursors of all
// three logs reach end together; a recording that cannot be lined up that
// way is corrupt and fatal.
func (t *Tape) BackwardRange(start, end Position) {
	t.checkPosition(start)
	t.checkPosition(end)
	if start.Before(end) {
		panic(fmt.Sprintf("tape: backward range inverted: start %v precedes end %v", start, end))
	}
	t.adjoints.EnsureLen(int(t.alloc.MaxIndex()) + 1)
	t.replayExternal(start, end)
}

// replayExternal walks the external function records in (end, start],
// newest first. Each record first drains the statement/Jacobian range
// between the cursor and its snapshot, then runs its callback, then moves
// the cursor to the snapshot. The tail below the oldest record is drained
// at the end.
func (t *Tape) replayExternal(start, end Position) {
	curJac, curStmt := start.jac, start.stmt
	t.extfuncs.IterateBackward(start.ext, end.ext, func(_ int, win []extRecord) {
		for i := len(win) - 1; i >= 0; i-- {
			r := win[i]
			t.replayJacobians(curJac, curStmt, r.jac, r.stmt)
			r.fn(t, r.data)
			curJac, curStmt = r.jac, r.stmt
		}
	})
	t.replayJacobians(curJac, curStmt, end.jac, end.stmt)
}

// replayJacobians walks the Jacobian chunks between two cursors, newest
// first. For each chunk, the statements recorded while it was current are
// exactly those between the running statement cursor and the chunk's birth
// mark; draining them must consume the chunk's in-range entries exactly.
func (t *Tape) replayJacobians(jacFrom, stmtFrom, jacTo, stmtTo chunklog.Mark) {
	adj := t.adjoints.Data()

	stmtCur := stmtFrom
	jacOff := jacFrom.Offset
	for c := jacFrom.Chunk; c > jacTo.Chunk; c-- {
		win := t.jacobians.Chunk(c)
		birth := t.jacobians.Birth(c)
		jacOff = t.replayStatements(stmtCur, birth, win, jacOff, adj)
		if jacOff != 0 {
			panic(fmt.Sprintf("tape: %d entries of jacobian chunk %d not claimed by any statement", jacOff, c))
		}
		stmtCur = birth
		jacOff = t.jacobians.ChunkLen(c - 1)
	}

	win := t.jacobians.Chunk(jacTo.Chunk)
	jacOff = t.replayStatements(stmtCur, stmtTo, win, jacOff, adj)
	if jacOff != jacTo.Offset {
		panic(fmt.Sprintf("tape: jacobian cursor stopped at %d:%d, expected %v", jacTo.Chunk, jacOff, jacTo))
	}
}

// replayStatements drains the statements between two cursors, newest
// first, consuming their entries from the current Jacobian chunk window.
// Each statement's adjoint is read and zeroed exactly once; the chain rule
// then scatters it into the adjoints of the statement's arguments. The
// updated in-window offset is returned so the caller can verify alignment.
func (t *Tape) replayStatements(from, to chunklog.Mark, jacWin []JacobianEntry, jacOff int, adj []float64) int {
	skipZero := t.opts.SkipZeroAdjoint
	t.statements.IterateBackward(from, to, func(_ int, win []Statement) {
		for i := len(win) - 1; i >= 0; i-- {
			s := win[i]
			if int(s.Args) > jacOff {
				panic(fmt.Sprintf("tape: statement claims %d entries but %d remain in the jacobian chunk", s.Args, jacOff))
			}
			a := adj[s.Result]
			adj[s.Result] = 0
			if a != 0 || !skipZero {
				for n := int(s.Args); n > 0; n-- {
					jacOff--
					e := jacWin[jacOff]
					adj[e.Arg] += a * e.Coefficient
				}
			} else {
				// Zero adjoint: nothing to scatter, but the entries must
				// still be consumed to keep the logs aligned.
				jacOff -= int(s.Args)
			}
		}
	})
	return jacOff
}
