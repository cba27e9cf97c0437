// Copyright 2025 The Revad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tape provides the recording and replay engine for reverse-mode
// automatic differentiation.
//
// A Tape records differentiable assignments as statements with Jacobian
// entries and replays them backward to accumulate adjoints. Most programs
// drive it through the active package and only touch the tape for
// recording control, seeding and replay.
//
// Example:
//
//	import (
//	    "github.com/revad-ml/revad/active"
//	    "github.com/revad-ml/revad/tape"
//	)
//
//	func main() {
//	    tp := tape.New()
//	    c := active.NewContext(tp)
//
//	    tp.StartRecording()
//	    x := c.Input(2)
//	    y := c.Mul(x, x)
//	    tp.StopRecording()
//
//	    c.SetGradient(y, 1)
//	    tp.Backward()
//	    _ = c.Gradient(x) // 4
//	}
package tape

import "github.com/revad-ml/revad/internal/tape"

// Tape records differentiable assignments onto chunked logs and replays
// them backward.
type Tape = tape.Tape

// Options configures a Tape at construction time.
type Options = tape.Options

// Position is a checkpoint into a tape's recorded history.
type Position = tape.Position

// Statistics is a snapshot of a tape's usage counters.
type Statistics = tape.Statistics

// LogStats describes the usage of one recording log.
type LogStats = tape.LogStats

// Index identifies one tracked value on a tape.
type Index = tape.Index

// Statement records one tracked assignment.
type Statement = tape.Statement

// JacobianEntry is one edge of a statement.
type JacobianEntry = tape.JacobianEntry

// Expression is the right hand side of a tracked assignment as seen by the
// recorder.
type Expression = tape.Expression

// Sink receives the Jacobian entries of an expression during recording.
type Sink = tape.Sink

// ManualStore is an open statement whose Jacobian entries the caller
// pushes itself.
type ManualStore = tape.ManualStore

// Func is an external function invoked when the backward replay reaches
// the point where it was pushed.
type Func = tape.Func

// Passive is the index of every untracked value.
const Passive = tape.Passive

// MaxStatementArgs is the largest number of Jacobian entries one statement
// can group.
const MaxStatementArgs = tape.MaxStatementArgs

// Default chunk sizes for the three recording logs.
const (
	DefaultStatementChunkSize        = tape.DefaultStatementChunkSize
	DefaultJacobianChunkSize         = tape.DefaultJacobianChunkSize
	DefaultExternalFunctionChunkSize = tape.DefaultExternalFunctionChunkSize
)

// New creates an idle tape with default options.
func New() *Tape {
	return tape.New()
}

// NewWithOptions creates an idle tape with the given configuration.
func NewWithOptions(opts Options) *Tape {
	return tape.NewWithOptions(opts)
}

// DefaultOptions returns the configuration a plain New uses.
func DefaultOptions() Options {
	return tape.DefaultOptions()
}
