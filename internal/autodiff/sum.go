package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// sumOp reduces along one axis, or over every element when all is set.
//
// Backward pass: the gradient is given back its reduced dimension (size 1)
// and broadcast to the input shape.
type sumOp struct {
	axis     int
	all      bool
	keepDims bool
	xShape   ndarray.Shape
}

func (op *sumOp) Name() string { return "Sum" }
func (op *sumOp) Arity() int   { return 1 }

func (op *sumOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	op.xShape = xs[0].Shape()
	if op.all {
		return []*ndarray.Array{ndarray.SumAll(xs[0])}
	}
	return []*ndarray.Array{ndarray.Sum(xs[0], op.axis, op.keepDims)}
}

func (op *sumOp) Backward(_, _, gys []*Variable) []*Variable {
	gy := gys[0]
	if !op.all && !op.keepDims {
		gy = Reshape(gy, ndarray.KeepDimsShape(op.xShape, op.axis))
	}
	return []*Variable{BroadcastTo(gy, op.xShape)}
}

// Sum reduces x along axis. Negative axes count from the end.
func Sum(x *Variable, axis int, keepDims bool) *Variable {
	return call(&sumOp{axis: axis, keepDims: keepDims}, x)
}

// SumAll reduces x to a 0-d scalar.
func SumAll(x *Variable) *Variable {
	return call(&sumOp{all: true}, x)
}
