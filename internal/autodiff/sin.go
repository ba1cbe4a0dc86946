package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// sinOp is y = sin(x). Backward pass: gx = gy * cos(x).
type sinOp struct{}

func (op *sinOp) Name() string { return "Sin" }
func (op *sinOp) Arity() int   { return 1 }

func (op *sinOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.Sin(xs[0])}
}

func (op *sinOp) Backward(inputs, _, gys []*Variable) []*Variable {
	return []*Variable{Mul(gys[0], Cos(inputs[0]))}
}

// Sin returns the element-wise sine of x.
func Sin(x *Variable) *Variable {
	return call(&sinOp{}, x)
}
