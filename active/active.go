// Copyright 2025 The Revad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package active provides the scalar arithmetic front end for recording
// differentiable programs.
//
// A Context owns one tape and applies tracked arithmetic to Real values;
// every operation records its local partial derivatives so the tape can
// replay the chain rule backward.
//
// Example:
//
//	import (
//	    "github.com/revad-ml/revad/active"
//	    "github.com/revad-ml/revad/tape"
//	)
//
//	func main() {
//	    c := active.NewContext(tape.New())
//	    c.Tape().StartRecording()
//
//	    x := c.Input(3)
//	    y := c.Add(c.Mul(x, x), c.Sin(x)) // y = x² + sin(x)
//
//	    c.Tape().StopRecording()
//	    c.SetGradient(y, 1)
//	    c.Tape().Backward()
//	    _ = c.Gradient(x) // 2x + cos(x)
//	}
package active

import (
	"github.com/revad-ml/revad/internal/active"
	"github.com/revad-ml/revad/tape"
)

// Context applies tracked arithmetic on one tape.
type Context = active.Context

// Real is one tracked scalar.
type Real = active.Real

// UnaryOp is a registered single-argument operation shape.
type UnaryOp = active.UnaryOp

// BinaryOp is a registered two-argument operation shape.
type BinaryOp = active.BinaryOp

// NewContext creates a front end recording onto t.
func NewContext(t *tape.Tape) *Context {
	return active.NewContext(t)
}

// RegisterUnary adds a single-argument operation shape under a unique
// name and returns it for use with Context.Apply1. Registering the same
// name twice is fatal.
func RegisterUnary(name string, eval func(float64) float64, partial func(x, fx float64) float64) *UnaryOp {
	return active.RegisterUnary(name, eval, partial)
}

// RegisterBinary adds a two-argument operation shape under a unique name
// and returns it for use with Context.Apply2. Registering the same name
// twice is fatal.
func RegisterBinary(name string, eval func(a, b float64) float64, partials func(a, b, fab float64) (da, db float64)) *BinaryOp {
	return active.RegisterBinary(name, eval, partials)
}

// LookupUnary resolves a registered single-argument operation by name.
func LookupUnary(name string) (*UnaryOp, bool) {
	return active.LookupUnary(name)
}

// LookupBinary resolves a registered two-argument operation by name.
func LookupBinary(name string) (*BinaryOp, bool) {
	return active.LookupBinary(name)
}

// UnaryNames lists the registered single-argument operations, sorted.
func UnaryNames() []string {
	return active.UnaryNames()
}

// BinaryNames lists the registered two-argument operations, sorted.
func BinaryNames() []string {
	return active.BinaryNames()
}
