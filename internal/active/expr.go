package active

import "github.com/revad-ml/revad/internal/tape"

// The expression types below are the right hand sides handed to the tape's
// recorder. Primal values are computed eagerly when the expression is
// built; partial derivatives are computed lazily in EmitGradient, so a
// passive tape pays nothing for them.

// affineExpr is a single-argument right hand side with a constant partial:
// copies shifted or scaled by a constant.
type affineExpr struct {
	value float64
	coef  float64
	arg   float64
	idx   tape.Index
}

func (e affineExpr) Value() float64 { return e.value }
func (e affineExpr) MaxArgs() int   { return 1 }
func (e affineExpr) EmitGradient(sink tape.Sink) {
	sink.PushJacobi(e.coef, e.arg, e.idx)
}

// unaryExpr is f(x) for a registered unary operation.
type unaryExpr struct {
	op    *UnaryOp
	value float64
	arg   float64
	idx   tape.Index
}

func (e unaryExpr) Value() float64 { return e.value }
func (e unaryExpr) MaxArgs() int   { return 1 }
func (e unaryExpr) EmitGradient(sink tape.Sink) {
	sink.PushJacobi(e.op.partial(e.arg, e.value), e.arg, e.idx)
}

// binaryExpr is f(a, b) for a registered binary operation.
type binaryExpr struct {
	op     *BinaryOp
	value  float64
	a, b   float64
	ia, ib tape.Index
}

func (e binaryExpr) Value() float64 { return e.value }
func (e binaryExpr) MaxArgs() int   { return 2 }
func (e binaryExpr) EmitGradient(sink tape.Sink) {
	da, db := e.op.partials(e.a, e.b, e.value)
	sink.PushJacobi(da, e.a, e.ia)
	sink.PushJacobi(db, e.b, e.ib)
}
