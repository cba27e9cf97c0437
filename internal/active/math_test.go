package active

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revad-ml/revad/internal/tape"
)

// numDeriv approximates df/dx with a central difference.
func numDeriv(f func(float64) float64, x float64) float64 {
	const h = 1e-6
	return (f(x+h) - f(x-h)) / (2 * h)
}

// grad1 records y = f(x) at x0 and returns dy/dx from a backward pass.
func grad1(t *testing.T, f func(*Context, *Real) *Real, x0 float64) (value, deriv float64) {
	t.Helper()
	c := NewContext(tape.New())
	c.Tape().StartRecording()
	x := c.Input(x0)
	y := f(c, x)
	c.Tape().StopRecording()
	c.SetGradient(y, 1)
	c.Tape().Backward()
	return y.Value(), c.Gradient(x)
}

// grad2 records z = f(a, b) and returns both partials.
func grad2(t *testing.T, f func(*Context, *Real, *Real) *Real, a0, b0 float64) (value, da, db float64) {
	t.Helper()
	c := NewContext(tape.New())
	c.Tape().StartRecording()
	a := c.Input(a0)
	b := c.Input(b0)
	z := f(c, a, b)
	c.Tape().StopRecording()
	c.SetGradient(z, 1)
	c.Tape().Backward()
	return z.Value(), c.Gradient(a), c.Gradient(b)
}

func TestUnaryDerivatives(t *testing.T) {
	cases := []struct {
		name string
		f    func(*Context, *Real) *Real
		ref  func(float64) float64
		at   []float64
	}{
		{"exp", (*Context).Exp, math.Exp, []float64{-1, 0, 1.3}},
		{"log", (*Context).Log, math.Log, []float64{0.2, 1, 4.5}},
		{"sqrt", (*Context).Sqrt, math.Sqrt, []float64{0.25, 2, 16}},
		{"sin", (*Context).Sin, math.Sin, []float64{-2, 0, 0.7}},
		{"cos", (*Context).Cos, math.Cos, []float64{-2, 0, 0.7}},
		{"tan", (*Context).Tan, math.Tan, []float64{-0.6, 0, 1}},
		{"abs", (*Context).Abs, math.Abs, []float64{-3, 2}},
		{"neg", (*Context).Neg, func(x float64) float64 { return -x }, []float64{-1, 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, x0 := range tc.at {
				value, deriv := grad1(t, tc.f, x0)
				require.InDelta(t, tc.ref(x0), value, 1e-12, "value at %v", x0)
				assert.InDelta(t, numDeriv(tc.ref, x0), deriv, 1e-5, "derivative at %v", x0)
			}
		})
	}
}

func TestBinaryDerivatives(t *testing.T) {
	cases := []struct {
		name   string
		f      func(*Context, *Real, *Real) *Real
		ref    func(a, b float64) float64
		a0, b0 float64
	}{
		{"add", (*Context).Add, func(a, b float64) float64 { return a + b }, 1.5, -2},
		{"sub", (*Context).Sub, func(a, b float64) float64 { return a - b }, 1.5, -2},
		{"mul", (*Context).Mul, func(a, b float64) float64 { return a * b }, 2, 3},
		{"div", (*Context).Div, func(a, b float64) float64 { return a / b }, 1.4, -2.2},
		{"pow", (*Context).Pow, math.Pow, 1.7, 2.3},
		{"min", (*Context).Min, math.Min, 1.2, 3.4},
		{"max", (*Context).Max, math.Max, 1.2, 3.4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, da, db := grad2(t, tc.f, tc.a0, tc.b0)
			require.InDelta(t, tc.ref(tc.a0, tc.b0), value, 1e-12)

			refA := func(a float64) float64 { return tc.ref(a, tc.b0) }
			refB := func(b float64) float64 { return tc.ref(tc.a0, b) }
			assert.InDelta(t, numDeriv(refA, tc.a0), da, 1e-5, "partial in a")
			assert.InDelta(t, numDeriv(refB, tc.b0), db, 1e-5, "partial in b")
		})
	}
}

func TestConstVariants(t *testing.T) {
	const k = 2.5
	cases := []struct {
		name string
		f    func(*Context, *Real) *Real
		ref  func(float64) float64
	}{
		{"add const", func(c *Context, x *Real) *Real { return c.AddConst(x, k) }, func(x float64) float64 { return x + k }},
		{"sub const", func(c *Context, x *Real) *Real { return c.SubConst(x, k) }, func(x float64) float64 { return x - k }},
		{"mul const", func(c *Context, x *Real) *Real { return c.MulConst(x, k) }, func(x float64) float64 { return k * x }},
		{"div const", func(c *Context, x *Real) *Real { return c.DivConst(x, k) }, func(x float64) float64 { return x / k }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, deriv := grad1(t, tc.f, 3.2)
			require.InDelta(t, tc.ref(3.2), value, 1e-12)
			assert.InDelta(t, numDeriv(tc.ref, 3.2), deriv, 1e-5)
		})
	}
}

func TestPowNonPositiveBase(t *testing.T) {
	// The exponent partial is defined only for a positive base; the
	// recording convention is zero elsewhere.
	_, da, db := grad2(t, (*Context).Pow, -2, 2)
	assert.Equal(t, -4.0, da, "d(a²)/da = 2a")
	assert.Zero(t, db)
}

func TestMinMaxPickSwitches(t *testing.T) {
	_, da, db := grad2(t, (*Context).Min, 5, 1)
	assert.Zero(t, da)
	assert.Equal(t, 1.0, db)

	_, da, db = grad2(t, (*Context).Max, 5, 1)
	assert.Equal(t, 1.0, da)
	assert.Zero(t, db)
}

func TestRosenbrockGradient(t *testing.T) {
	// f(x, y) = 100(y-x²)² + (1-x)²
	rosen := func(c *Context, x, y *Real) *Real {
		t1 := c.Sub(y, c.Mul(x, x))
		left := c.MulConst(c.Mul(t1, t1), 100)
		t2 := c.AddConst(c.Neg(x), 1)
		return c.Add(left, c.Mul(t2, t2))
	}

	x0, y0 := -1.2, 1.0
	value, dx, dy := grad2(t, rosen, x0, y0)

	require.InDelta(t, 24.2, value, 1e-9)
	assert.InDelta(t, -400*x0*(y0-x0*x0)-2*(1-x0), dx, 1e-9)
	assert.InDelta(t, 200*(y0-x0*x0), dy, 1e-9)
}

func TestSharedSubexpressionAccumulates(t *testing.T) {
	// y = x*x + x: the adjoint of x accumulates from two statements.
	f := func(c *Context, x *Real) *Real {
		return c.Add(c.Mul(x, x), x)
	}
	_, deriv := grad1(t, f, 3)
	assert.Equal(t, 7.0, deriv, "2x+1 at x=3")
}

func TestApplyRegisteredOp(t *testing.T) {
	softplus := RegisterUnary("softplus",
		func(x float64) float64 { return math.Log1p(math.Exp(x)) },
		func(x, _ float64) float64 { return 1 / (1 + math.Exp(-x)) },
	)

	value, deriv := grad1(t, func(c *Context, x *Real) *Real {
		return c.Apply1(softplus, x)
	}, 0.8)

	ref := func(x float64) float64 { return math.Log1p(math.Exp(x)) }
	require.InDelta(t, ref(0.8), value, 1e-12)
	assert.InDelta(t, numDeriv(ref, 0.8), deriv, 1e-5)
}

func TestRegistryLookup(t *testing.T) {
	op, ok := LookupUnary("exp")
	require.True(t, ok)
	assert.Equal(t, "exp", op.Name())

	_, ok = LookupBinary("no-such-op")
	assert.False(t, ok)

	assert.Contains(t, UnaryNames(), "sqrt")
	assert.Contains(t, BinaryNames(), "mul")
	assert.IsIncreasing(t, UnaryNames())
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		RegisterUnary("exp", math.Exp, func(_, fx float64) float64 { return fx })
	})
	assert.Panics(t, func() {
		RegisterBinary("add", func(a, b float64) float64 { return a + b },
			func(_, _, _ float64) (float64, float64) { return 1, 1 })
	})
}
