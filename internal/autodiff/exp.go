package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// expOp is the exponential: y = e^x.
//
// Since d(e^x)/dx = e^x, the backward pass reuses the output: gx = gy * y.
type expOp struct{}

func (op *expOp) Name() string { return "Exp" }
func (op *expOp) Arity() int   { return 1 }

func (op *expOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.Exp(xs[0])}
}

func (op *expOp) Backward(_, outputs, gys []*Variable) []*Variable {
	return []*Variable{Mul(gys[0], outputs[0])}
}

// Exp returns e raised to x.
func Exp(x *Variable) *Variable {
	return call(&expOp{}, x)
}
