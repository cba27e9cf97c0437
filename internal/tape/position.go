package tape

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/revad-ml/revad/internal/chunklog"
)

// Position is a checkpoint into a tape's recorded history: one cursor per
// log, snapshotted together. Positions are totally ordered within the tape
// that minted them and compare lexicographically, outermost log first.
// Passing a Position to a different tape is fatal.
type Position struct {
	ext  chunklog.Mark
	jac  chunklog.Mark
	stmt chunklog.Mark
	tape uuid.UUID
}

// Before reports whether p is chronologically earlier than o.
func (p Position) Before(o Position) bool {
	if p.ext != o.ext {
		return p.ext.Before(o.ext)
	}
	if p.jac != o.jac {
		return p.jac.Before(o.jac)
	}
	return p.stmt.Before(o.stmt)
}

// After reports whether p is chronologically later than o.
func (p Position) After(o Position) bool {
	return o.Before(p)
}

// String renders the position as ext/jacobian/statement cursors.
func (p Position) String() string {
	return fmt.Sprintf("ext %v jac %v stmt %v", p.ext, p.jac, p.stmt)
}

// Position returns a checkpoint at the current end of the recording. It can
// later bound a replay or rewind the tape.
func (t *Tape) Position() Position {
	return Position{
		ext:  t.extfuncs.Mark(),
		jac:  t.jacobians.Mark(),
		stmt: t.statements.Mark(),
		tape: t.id,
	}
}

// start returns the position of the empty tape.
func (t *Tape) start() Position {
	return Position{tape: t.id}
}

// checkPosition verifies that pos was minted by this tape.
func (t *Tape) checkPosition(pos Position) {
	if pos.tape != t.id {
		panic(fmt.Sprintf("tape: position %v belongs to a different tape", pos))
	}
}
