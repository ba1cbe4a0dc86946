package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// transposeOp permutes dimensions. With no axes it reverses them.
//
// Backward pass: the gradient is permuted by the inverse permutation, which
// for the default reversal is the reversal itself.
type transposeOp struct {
	axes []int
}

func (op *transposeOp) Name() string { return "Transpose" }
func (op *transposeOp) Arity() int   { return 1 }

func (op *transposeOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	if len(op.axes) == 0 {
		ndim := xs[0].Ndim()
		op.axes = make([]int, ndim)
		for i := range op.axes {
			op.axes[i] = ndim - 1 - i
		}
	}
	return []*ndarray.Array{ndarray.Transpose(xs[0], op.axes...)}
}

func (op *transposeOp) Backward(_, _, gys []*Variable) []*Variable {
	return []*Variable{Transpose(gys[0], ndarray.InverseAxes(op.axes)...)}
}

// Transpose permutes the dimensions of x, reversing them when no axes are given.
func Transpose(x *Variable, axes ...int) *Variable {
	op := &transposeOp{}
	if len(axes) > 0 {
		op.axes = make([]int, len(axes))
		copy(op.axes, axes)
	}
	return call(op, x)
}
