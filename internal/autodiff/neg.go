package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// negOp is negation: y = -x.
type negOp struct{}

func (op *negOp) Name() string { return "Neg" }
func (op *negOp) Arity() int   { return 1 }

func (op *negOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.Neg(xs[0])}
}

func (op *negOp) Backward(_, _, gys []*Variable) []*Variable {
	return []*Variable{Neg(gys[0])}
}

// Neg returns -x.
func Neg(x *Variable) *Variable {
	return call(&negOp{}, x)
}
