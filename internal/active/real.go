// Package active is the scalar arithmetic front end of the tape engine.
//
// A Context owns one recording tape and applies tracked arithmetic to Real
// values. Every operation computes the primal result and hands the local
// partial derivatives to the tape; the chain rule is applied later by the
// tape's backward replay.
//
// Usage:
//
//	c := active.NewContext(tape.New())
//	c.Tape().StartRecording()
//
//	x := c.Input(3)
//	y := c.Mul(x, x) // y = x²
//
//	c.Tape().StopRecording()
//	c.SetGradient(y, 1)
//	c.Tape().Backward()
//	fmt.Println(c.Gradient(x)) // dy/dx = 2x = 6
//
// Nested differentiation uses one Context per level. A Context is
// single-threaded, like the tape it owns.
package active

import (
	"github.com/revad-ml/revad/internal/tape"
)

// Real is one tracked scalar: a primal value and the index of its
// derivative slot on the tape. Reals are created by a Context and must not
// be copied by plain assignment; the index inside would alias. Use
// Context.Assign to copy a value onto the tape.
type Real struct {
	value float64
	index tape.Index
}

// Value returns the primal value.
func (r *Real) Value() float64 {
	return r.value
}

// Index returns the derivative slot, or tape.Passive for an untracked
// value.
func (r *Real) Index() tape.Index {
	return r.index
}

// IsActive reports whether the value currently carries a derivative slot.
func (r *Real) IsActive() bool {
	return r.index != tape.Passive
}

// Context applies tracked arithmetic on one tape. Construct with
// NewContext; the zero value is not usable.
type Context struct {
	tape *tape.Tape
}

// NewContext creates a front end recording onto t.
func NewContext(t *tape.Tape) *Context {
	if t == nil {
		panic("active: context needs a tape")
	}
	return &Context{tape: t}
}

// Tape returns the context's tape for recording control, replay and
// checkpoints.
func (c *Context) Tape() *tape.Tape {
	return c.tape
}

// Input creates a tracked value and registers it as a differentiation
// input.
func (c *Context) Input(v float64) *Real {
	x := c.newReal()
	x.value = v
	c.tape.RegisterInput(&x.index)
	return x
}

// Const creates an untracked value. It participates in arithmetic but no
// derivative flows through it.
func (c *Context) Const(v float64) *Real {
	x := c.newReal()
	x.value = v
	return x
}

// newReal constructs a passive Real with initialized gradient data.
func (c *Context) newReal() *Real {
	x := &Real{}
	c.tape.InitGradientData(&x.value, &x.index)
	return x
}

// Assign records dst = src: the copy fast path, one identity edge on the
// tape. Assigning a passive source turns dst passive.
func (c *Context) Assign(dst, src *Real) {
	c.tape.StoreCopy(&dst.value, &dst.index, src.value, src.index)
}

// AssignConst records dst = v. dst becomes passive.
func (c *Context) AssignConst(dst *Real, v float64) {
	c.tape.StoreConstant(&dst.value, &dst.index, v)
}

// Release returns x's derivative slot to the tape. Call it when a tracked
// value goes out of use so the slot can be recycled; x is passive
// afterwards.
func (c *Context) Release(x *Real) {
	c.tape.DestroyGradientData(&x.value, &x.index)
}

// Gradient returns the adjoint accumulated for x.
func (c *Context) Gradient(x *Real) float64 {
	return c.tape.Gradient(x.index)
}

// SetGradient seeds x's adjoint, typically 1 on an output before the
// backward pass.
func (c *Context) SetGradient(x *Real, v float64) {
	c.tape.SetGradient(x.index, v)
}
