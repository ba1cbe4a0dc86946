package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// mulOp is element-wise multiplication with broadcasting: y = x0 * x1.
//
// Backward pass:
//   - d(x0*x1)/dx0 = x1, so gx0 = gy * x1
//   - d(x0*x1)/dx1 = x0, so gx1 = gy * x0
type mulOp struct {
	x0Shape ndarray.Shape
	x1Shape ndarray.Shape
}

func (op *mulOp) Name() string { return "Mul" }
func (op *mulOp) Arity() int   { return 2 }

func (op *mulOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	op.x0Shape, op.x1Shape = xs[0].Shape(), xs[1].Shape()
	return []*ndarray.Array{ndarray.Mul(xs[0], xs[1])}
}

func (op *mulOp) Backward(inputs, _, gys []*Variable) []*Variable {
	x0, x1 := inputs[0], inputs[1]
	return reduceBroadcast(Mul(gys[0], x1), Mul(gys[0], x0), op.x0Shape, op.x1Shape)
}

// Mul returns the element-wise product x0 * x1 with broadcasting.
func Mul(x0, x1 *Variable) *Variable {
	return call(&mulOp{}, x0, x1)
}
