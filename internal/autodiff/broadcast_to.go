package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// broadcastToOp repeats its input along broadcast dimensions.
//
// Backward pass: sum_to(gy, x.shape). BroadcastTo and SumTo are each other's
// backward rule, which is what makes broadcasting arithmetic differentiable.
type broadcastToOp struct {
	shape  ndarray.Shape
	xShape ndarray.Shape
}

func (op *broadcastToOp) Name() string { return "BroadcastTo" }
func (op *broadcastToOp) Arity() int   { return 1 }

func (op *broadcastToOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	op.xShape = xs[0].Shape()
	return []*ndarray.Array{ndarray.BroadcastTo(xs[0], op.shape)}
}

func (op *broadcastToOp) Backward(_, _, gys []*Variable) []*Variable {
	return []*Variable{SumTo(gys[0], op.xShape)}
}

// BroadcastTo broadcasts x to shape. When x already has that shape, x itself
// is returned.
func BroadcastTo(x *Variable, shape ndarray.Shape) *Variable {
	if x.value.Shape().Equal(shape) {
		return x
	}
	return call(&broadcastToOp{shape: shape.Clone()}, x)
}
