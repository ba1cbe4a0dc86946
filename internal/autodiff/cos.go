package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// cosOp is y = cos(x). Backward pass: gx = -gy * sin(x).
type cosOp struct{}

func (op *cosOp) Name() string { return "Cos" }
func (op *cosOp) Arity() int   { return 1 }

func (op *cosOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.Cos(xs[0])}
}

func (op *cosOp) Backward(inputs, _, gys []*Variable) []*Variable {
	return []*Variable{Mul(gys[0], Neg(Sin(inputs[0])))}
}

// Cos returns the element-wise cosine of x.
func Cos(x *Variable) *Variable {
	return call(&cosOp{}, x)
}
