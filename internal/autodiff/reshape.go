package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// reshapeOp changes the shape of its input without touching the elements.
//
// Backward pass: the gradient is reshaped back to the input's shape.
type reshapeOp struct {
	shape  ndarray.Shape
	xShape ndarray.Shape
}

func (op *reshapeOp) Name() string { return "Reshape" }
func (op *reshapeOp) Arity() int   { return 1 }

func (op *reshapeOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	op.xShape = xs[0].Shape()
	return []*ndarray.Array{ndarray.Reshape(xs[0], op.shape)}
}

func (op *reshapeOp) Backward(_, _, gys []*Variable) []*Variable {
	return []*Variable{Reshape(gys[0], op.xShape)}
}

// Reshape returns x with the given shape. When x already has that shape, x
// itself is returned and no node is recorded.
func Reshape(x *Variable, shape ndarray.Shape) *Variable {
	if x.value.Shape().Equal(shape) {
		return x
	}
	return call(&reshapeOp{shape: shape.Clone()}, x)
}
