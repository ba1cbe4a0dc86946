package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// addOp is element-wise addition with broadcasting: y = x0 + x1.
//
// Backward pass:
//   - gx0 = gy, gx1 = gy
//   - when the input shapes differ, each gradient is summed back to its
//     input's shape
type addOp struct {
	x0Shape ndarray.Shape
	x1Shape ndarray.Shape
}

func (op *addOp) Name() string { return "Add" }
func (op *addOp) Arity() int   { return 2 }

func (op *addOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	op.x0Shape, op.x1Shape = xs[0].Shape(), xs[1].Shape()
	return []*ndarray.Array{ndarray.Add(xs[0], xs[1])}
}

func (op *addOp) Backward(_, _, gys []*Variable) []*Variable {
	gx0, gx1 := gys[0], gys[0]
	return reduceBroadcast(gx0, gx1, op.x0Shape, op.x1Shape)
}

// reduceBroadcast sums gradients of a broadcasting binary op back to the
// original input shapes. It is a no-op when the shapes already agreed.
func reduceBroadcast(gx0, gx1 *Variable, x0Shape, x1Shape ndarray.Shape) []*Variable {
	if !x0Shape.Equal(x1Shape) {
		gx0 = SumTo(gx0, x0Shape)
		gx1 = SumTo(gx1, x1Shape)
	}
	return []*Variable{gx0, gx1}
}

// Add returns x0 + x1 with broadcasting.
func Add(x0, x1 *Variable) *Variable {
	return call(&addOp{}, x0, x1)
}
