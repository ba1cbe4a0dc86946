package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// subOp is element-wise subtraction with broadcasting: y = x0 - x1.
//
// Backward pass: gx0 = gy, gx1 = -gy, reduced to the input shapes.
type subOp struct {
	x0Shape ndarray.Shape
	x1Shape ndarray.Shape
}

func (op *subOp) Name() string { return "Sub" }
func (op *subOp) Arity() int   { return 2 }

func (op *subOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	op.x0Shape, op.x1Shape = xs[0].Shape(), xs[1].Shape()
	return []*ndarray.Array{ndarray.Sub(xs[0], xs[1])}
}

func (op *subOp) Backward(_, _, gys []*Variable) []*Variable {
	return reduceBroadcast(gys[0], Neg(gys[0]), op.x0Shape, op.x1Shape)
}

// Sub returns x0 - x1 with broadcasting.
func Sub(x0, x1 *Variable) *Variable {
	return call(&subOp{}, x0, x1)
}
