package active

// Apply1 records out = op(x) for a registered single-argument operation.
func (c *Context) Apply1(op *UnaryOp, x *Real) *Real {
	out := c.newReal()
	c.tape.StoreExpression(&out.value, &out.index, unaryExpr{
		op:    op,
		value: op.eval(x.value),
		arg:   x.value,
		idx:   x.index,
	})
	return out
}

// Apply2 records out = op(a, b) for a registered two-argument operation.
func (c *Context) Apply2(op *BinaryOp, a, b *Real) *Real {
	out := c.newReal()
	c.tape.StoreExpression(&out.value, &out.index, binaryExpr{
		op:    op,
		value: op.eval(a.value, b.value),
		a:     a.value,
		b:     b.value,
		ia:    a.index,
		ib:    b.index,
	})
	return out
}

// Add records a + b.
func (c *Context) Add(a, b *Real) *Real { return c.Apply2(opAdd, a, b) }

// Sub records a - b.
func (c *Context) Sub(a, b *Real) *Real { return c.Apply2(opSub, a, b) }

// Mul records a * b.
func (c *Context) Mul(a, b *Real) *Real { return c.Apply2(opMul, a, b) }

// Div records a / b.
func (c *Context) Div(a, b *Real) *Real { return c.Apply2(opDiv, a, b) }

// Pow records a**b.
func (c *Context) Pow(a, b *Real) *Real { return c.Apply2(opPow, a, b) }

// Min records the smaller of a and b; the derivative follows the picked
// argument.
func (c *Context) Min(a, b *Real) *Real { return c.Apply2(opMin, a, b) }

// Max records the larger of a and b; the derivative follows the picked
// argument.
func (c *Context) Max(a, b *Real) *Real { return c.Apply2(opMax, a, b) }

// Abs records |x|. The partial at exactly 0 is recorded as 0.
func (c *Context) Abs(x *Real) *Real { return c.Apply1(opAbs, x) }

// Exp records e**x.
func (c *Context) Exp(x *Real) *Real { return c.Apply1(opExp, x) }

// Log records the natural logarithm of x.
func (c *Context) Log(x *Real) *Real { return c.Apply1(opLog, x) }

// Sqrt records the square root of x. The partial at exactly 0 is recorded
// as 0.
func (c *Context) Sqrt(x *Real) *Real { return c.Apply1(opSqrt, x) }

// Sin records sin(x).
func (c *Context) Sin(x *Real) *Real { return c.Apply1(opSin, x) }

// Cos records cos(x).
func (c *Context) Cos(x *Real) *Real { return c.Apply1(opCos, x) }

// Tan records tan(x).
func (c *Context) Tan(x *Real) *Real { return c.Apply1(opTan, x) }

// Neg records -x.
func (c *Context) Neg(x *Real) *Real {
	out := c.newReal()
	c.tape.StoreExpression(&out.value, &out.index, affineExpr{
		value: -x.value,
		coef:  -1,
		arg:   x.value,
		idx:   x.index,
	})
	return out
}

// AddConst records x + k.
func (c *Context) AddConst(x *Real, k float64) *Real {
	out := c.newReal()
	c.tape.StoreExpression(&out.value, &out.index, affineExpr{
		value: x.value + k,
		coef:  1,
		arg:   x.value,
		idx:   x.index,
	})
	return out
}

// SubConst records x - k.
func (c *Context) SubConst(x *Real, k float64) *Real {
	return c.AddConst(x, -k)
}

// MulConst records k * x.
func (c *Context) MulConst(x *Real, k float64) *Real {
	out := c.newReal()
	c.tape.StoreExpression(&out.value, &out.index, affineExpr{
		value: k * x.value,
		coef:  k,
		arg:   x.value,
		idx:   x.index,
	})
	return out
}

// DivConst records x / k.
func (c *Context) DivConst(x *Real, k float64) *Real {
	return c.MulConst(x, 1/k)
}
