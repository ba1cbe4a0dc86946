package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// sumToOp sums its input down to a target shape.
//
// Backward pass: broadcast_to(gy, x.shape).
type sumToOp struct {
	shape  ndarray.Shape
	xShape ndarray.Shape
}

func (op *sumToOp) Name() string { return "SumTo" }
func (op *sumToOp) Arity() int   { return 1 }

func (op *sumToOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	op.xShape = xs[0].Shape()
	return []*ndarray.Array{ndarray.SumTo(xs[0], op.shape)}
}

func (op *sumToOp) Backward(_, _, gys []*Variable) []*Variable {
	return []*Variable{BroadcastTo(gys[0], op.xShape)}
}

// SumTo sums x down to shape. When x already has that shape, x itself is
// returned.
func SumTo(x *Variable, shape ndarray.Shape) *Variable {
	if x.value.Shape().Equal(shape) {
		return x
	}
	return call(&sumToOp{shape: shape.Clone()}, x)
}
