package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// divOp is element-wise division with broadcasting: y = x0 / x1.
//
// Backward pass:
//   - d(x0/x1)/dx0 = 1/x1, so gx0 = gy / x1
//   - d(x0/x1)/dx1 = -x0/x1², so gx1 = -gy * x0 / x1²
type divOp struct {
	x0Shape ndarray.Shape
	x1Shape ndarray.Shape
}

func (op *divOp) Name() string { return "Div" }
func (op *divOp) Arity() int   { return 2 }

func (op *divOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	op.x0Shape, op.x1Shape = xs[0].Shape(), xs[1].Shape()
	return []*ndarray.Array{ndarray.Div(xs[0], xs[1])}
}

func (op *divOp) Backward(inputs, _, gys []*Variable) []*Variable {
	x0, x1 := inputs[0], inputs[1]
	gy := gys[0]

	gx0 := Div(gy, x1)
	gx1 := Mul(gy, Neg(Div(x0, Mul(x1, x1))))
	return reduceBroadcast(gx0, gx1, op.x0Shape, op.x1Shape)
}

// Div returns the element-wise quotient x0 / x1 with broadcasting.
func Div(x0, x1 *Variable) *Variable {
	return call(&divOp{}, x0, x1)
}
