package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// squareOp is y = x².
//
// Backward pass: gx = 2x * gy.
type squareOp struct{}

func (op *squareOp) Name() string { return "Square" }
func (op *squareOp) Arity() int   { return 1 }

func (op *squareOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.Mul(xs[0], xs[0])}
}

func (op *squareOp) Backward(inputs, _, gys []*Variable) []*Variable {
	x := inputs[0]
	return []*Variable{Mul(Mul(x.graph.constant(2), x), gys[0])}
}

// Square returns x².
func Square(x *Variable) *Variable {
	return call(&squareOp{}, x)
}
