package active

import (
	"fmt"
	"math"
	"slices"
)

// UnaryOp is one single-argument operation shape: the forward evaluation
// paired with its partial derivative. Shapes are resolved once, at
// registration, and applied through Context.Apply1; the built-in Context
// methods all go through registered shapes.
type UnaryOp struct {
	name string
	eval func(x float64) float64

	// partial receives the argument and the already-computed result, so
	// rules like d(exp x) = exp x reuse the forward value.
	partial func(x, fx float64) float64
}

// Name returns the name the operation was registered under.
func (op *UnaryOp) Name() string { return op.name }

// BinaryOp is one two-argument operation shape.
type BinaryOp struct {
	name     string
	eval     func(a, b float64) float64
	partials func(a, b, fab float64) (da, db float64)
}

// Name returns the name the operation was registered under.
func (op *BinaryOp) Name() string { return op.name }

var (
	unaryOps  = map[string]*UnaryOp{}
	binaryOps = map[string]*BinaryOp{}
)

// RegisterUnary adds a single-argument operation shape under a unique name
// and returns it for direct use with Context.Apply1. Registration happens
// at package init time; registering the same name twice is fatal.
func RegisterUnary(name string, eval func(float64) float64, partial func(x, fx float64) float64) *UnaryOp {
	if _, dup := unaryOps[name]; dup {
		panic(fmt.Sprintf("active: unary operation %q registered twice", name))
	}
	op := &UnaryOp{name: name, eval: eval, partial: partial}
	unaryOps[name] = op
	return op
}

// RegisterBinary adds a two-argument operation shape under a unique name
// and returns it for direct use with Context.Apply2. Registering the same
// name twice is fatal.
func RegisterBinary(name string, eval func(a, b float64) float64, partials func(a, b, fab float64) (da, db float64)) *BinaryOp {
	if _, dup := binaryOps[name]; dup {
		panic(fmt.Sprintf("active: binary operation %q registered twice", name))
	}
	op := &BinaryOp{name: name, eval: eval, partials: partials}
	binaryOps[name] = op
	return op
}

// LookupUnary resolves a registered single-argument operation by name.
func LookupUnary(name string) (*UnaryOp, bool) {
	op, ok := unaryOps[name]
	return op, ok
}

// LookupBinary resolves a registered two-argument operation by name.
func LookupBinary(name string) (*BinaryOp, bool) {
	op, ok := binaryOps[name]
	return op, ok
}

// UnaryNames lists the registered single-argument operations, sorted.
func UnaryNames() []string {
	names := make([]string, 0, len(unaryOps))
	for name := range unaryOps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// BinaryNames lists the registered two-argument operations, sorted.
func BinaryNames() []string {
	names := make([]string, 0, len(binaryOps))
	for name := range binaryOps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Built-in operation shapes. Where the mathematical derivative does not
// exist the recorded partial is zero: abs at 0, sqrt at 0, the exponent
// partial of pow for a non-positive base.
var (
	// d(abs x)/dx = sign(x)
	opAbs = RegisterUnary("abs", math.Abs, func(x, _ float64) float64 {
		switch {
		case x < 0:
			return -1
		case x > 0:
			return 1
		default:
			return 0
		}
	})

	// d(exp x)/dx = exp(x)
	opExp = RegisterUnary("exp", math.Exp, func(_, fx float64) float64 {
		return fx
	})

	// d(log x)/dx = 1/x
	opLog = RegisterUnary("log", math.Log, func(x, _ float64) float64 {
		return 1 / x
	})

	// d(sqrt x)/dx = 1/(2*sqrt(x))
	opSqrt = RegisterUnary("sqrt", math.Sqrt, func(_, fx float64) float64 {
		if fx == 0 {
			return 0
		}
		return 0.5 / fx
	})

	// d(sin x)/dx = cos(x)
	opSin = RegisterUnary("sin", math.Sin, func(x, _ float64) float64 {
		return math.Cos(x)
	})

	// d(cos x)/dx = -sin(x)
	opCos = RegisterUnary("cos", math.Cos, func(x, _ float64) float64 {
		return -math.Sin(x)
	})

	// d(tan x)/dx = 1/cos²(x)
	opTan = RegisterUnary("tan", math.Tan, func(x, _ float64) float64 {
		c := math.Cos(x)
		return 1 / (c * c)
	})

	// d(a+b)/da = 1, d(a+b)/db = 1
	opAdd = RegisterBinary("add", func(a, b float64) float64 {
		return a + b
	}, func(_, _, _ float64) (float64, float64) {
		return 1, 1
	})

	// d(a-b)/da = 1, d(a-b)/db = -1
	opSub = RegisterBinary("sub", func(a, b float64) float64 {
		return a - b
	}, func(_, _, _ float64) (float64, float64) {
		return 1, -1
	})

	// d(a*b)/da = b, d(a*b)/db = a
	opMul = RegisterBinary("mul", func(a, b float64) float64 {
		return a * b
	}, func(a, b, _ float64) (float64, float64) {
		return b, a
	})

	// d(a/b)/da = 1/b, d(a/b)/db = -a/b² = -(a/b)/b
	opDiv = RegisterBinary("div", func(a, b float64) float64 {
		return a / b
	}, func(_, b, fab float64) (float64, float64) {
		return 1 / b, -fab / b
	})

	// d(a^b)/da = b*a^(b-1); d(a^b)/db = a^b*log(a) for a > 0, else 0
	opPow = RegisterBinary("pow", math.Pow, func(a, b, fab float64) (float64, float64) {
		da := b * math.Pow(a, b-1)
		db := 0.0
		if a > 0 {
			db = fab * math.Log(a)
		}
		return da, db
	})

	// min picks its smaller argument; the derivative follows the pick.
	opMin = RegisterBinary("min", math.Min, func(a, b, _ float64) (float64, float64) {
		if a < b {
			return 1, 0
		}
		return 0, 1
	})

	// max picks its larger argument; the derivative follows the pick.
	opMax = RegisterBinary("max", math.Max, func(a, b, _ float64) (float64, float64) {
		if a > b {
			return 1, 0
		}
		return 0, 1
	})
)
