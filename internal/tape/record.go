package tape

import (
	"fmt"
	"math"
)

// MaxStatementArgs is the largest number of Jacobian entries one statement
// can group.
const MaxStatementArgs = 255

// Statement records one tracked assignment: the Args Jacobian entries
// written immediately before it feed the value at Result. Result is never
// the passive index.
type Statement struct {
	Args   uint8
	Result Index
}

// JacobianEntry is one edge of a statement: the local partial derivative
// with respect to the argument at Arg.
type JacobianEntry struct {
	Coefficient float64
	Arg         Index
}

// Sink receives the Jacobian entries of an expression during recording.
// The tape itself is the Sink handed to EmitGradient.
type Sink interface {
	// PushJacobi records one entry, subject to the tape's coefficient
	// filters. value is the argument's primal, unused by this tape but
	// part of the recording protocol.
	PushJacobi(coefficient, value float64, idx Index)

	// PushJacobiUnit records one entry with coefficient 1, bypassing the
	// coefficient filters.
	PushJacobiUnit(value float64, idx Index)
}

// Expression is the right hand side of a tracked assignment as seen by the
// recorder. MaxArgs bounds how many entries EmitGradient may push; the
// bound is reserved up front so that all entries land in one chunk.
type Expression interface {
	// Value returns the primal result.
	Value() float64

	// MaxArgs returns an upper bound on the number of active arguments.
	MaxArgs() int

	// EmitGradient pushes one entry per active argument into sink.
	EmitGradient(sink Sink)
}

// StoreExpression records the assignment *value = rhs. While recording, the
// expression's entries are collected and a statement grouping them is
// appended; an assignment whose arguments all turn out passive instead
// releases *index, since the result no longer depends on any tracked value.
// While passive only *index is released. The primal value is always
// written.
func (t *Tape) StoreExpression(value *float64, index *Index, rhs Expression) {
	if t.recording {
		max := rhs.MaxArgs()
		if max > MaxStatementArgs {
			panic(fmt.Sprintf("tape: expression with %d arguments exceeds the statement limit %d", max, MaxStatementArgs))
		}
		t.statements.Reserve(1)
		t.jacobians.Reserve(max)

		start := t.jacobians.ChunkOffset()
		rhs.EmitGradient(t)
		active := t.jacobians.ChunkOffset() - start

		if active == 0 {
			t.alloc.FreeIndex(index)
		} else {
			t.alloc.CheckIndex(index)
			t.statements.Append(Statement{Args: uint8(active), Result: *index})
		}
	} else {
		t.alloc.FreeIndex(index)
	}
	*value = rhs.Value()
}

// StoreCopy records the assignment *value = rhs for a plain copy of a
// tracked value: one unit entry instead of the expression machinery. A copy
// of a passive value releases *index.
func (t *Tape) StoreCopy(value *float64, index *Index, rhsValue float64, rhsIndex Index) {
	if t.recording {
		if rhsIndex != Passive {
			t.alloc.CheckIndex(index)
			t.statements.Reserve(1)
			t.jacobians.Reserve(1)
			t.jacobians.Append(JacobianEntry{Coefficient: 1, Arg: rhsIndex})
			t.statements.Append(Statement{Args: 1, Result: *index})
		} else {
			t.alloc.FreeIndex(index)
		}
	} else {
		t.alloc.FreeIndex(index)
	}
	*value = rhsValue
}

// StoreConstant records the assignment *value = c. The left hand side
// becomes passive whether or not the tape is recording.
func (t *Tape) StoreConstant(value *float64, index *Index, c float64) {
	t.alloc.FreeIndex(index)
	*value = c
}

// PushJacobi records one Jacobian entry into the space reserved by the
// surrounding store. Entries for passive arguments are always elided; zero
// and non-finite coefficients are elided according to the tape's options.
func (t *Tape) PushJacobi(coefficient, value float64, idx Index) {
	if idx == Passive {
		return
	}
	if t.opts.SkipZeroCoefficients && coefficient == 0 {
		return
	}
	if t.opts.DropNonFiniteCoefficients && (math.IsNaN(coefficient) || math.IsInf(coefficient, 0)) {
		return
	}
	t.jacobians.Append(JacobianEntry{Coefficient: coefficient, Arg: idx})
}

// PushJacobiUnit records one Jacobian entry with coefficient 1 into the
// space reserved by the surrounding store. Entries for passive arguments
// are elided; no other filter applies.
func (t *Tape) PushJacobiUnit(value float64, idx Index) {
	if idx == Passive {
		return
	}
	t.jacobians.Append(JacobianEntry{Coefficient: 1, Arg: idx})
}

// ManualStore is an open statement whose Jacobian entries the caller pushes
// itself, used when an external kernel computes its own derivatives.
// Obtain one from BeginManual, Push exactly the declared number of entries
// and End it.
type ManualStore struct {
	tape     *Tape
	result   Index
	declared uint8
	written  uint8
	done     bool
}

// BeginManual opens a statement with a declared entry count. Space for the
// statement and all its entries is reserved up front, and *index is
// allocated if the value was passive. While the tape is passive the
// returned ManualStore records nothing.
func (t *Tape) BeginManual(index *Index, args uint8) *ManualStore {
	if !t.recording {
		return &ManualStore{done: false}
	}
	t.jacobians.Reserve(int(args))
	t.statements.Reserve(1)
	t.alloc.CheckIndex(index)
	return &ManualStore{tape: t, result: *index, declared: args}
}

// Push appends one entry verbatim. No coefficient filter applies: the
// declared count must stay in step with the entries actually written, or
// replay could not line the logs up again.
func (m *ManualStore) Push(coefficient float64, arg Index) {
	if m.done {
		panic("tape: push on an ended manual statement")
	}
	if m.tape == nil {
		return
	}
	if m.written == m.declared {
		panic(fmt.Sprintf("tape: manual statement declared %d entries, push %d", m.declared, m.written+1))
	}
	m.tape.jacobians.Append(JacobianEntry{Coefficient: coefficient, Arg: arg})
	m.written++
}

// End appends the statement behind the pushed entries. Ending with fewer
// entries than declared is fatal.
func (m *ManualStore) End() {
	if m.done {
		panic("tape: manual statement ended twice")
	}
	m.done = true
	if m.tape == nil {
		return
	}
	if m.written != m.declared {
		panic(fmt.Sprintf("tape: manual statement declared %d entries, got %d", m.declared, m.written))
	}
	m.tape.statements.Append(Statement{Args: m.declared, Result: m.result})
	m.tape = nil
}
