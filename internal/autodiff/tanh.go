package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// tanhOp is the hyperbolic tangent.
//
// d(tanh(x))/dx = 1 - tanh²(x), and tanh(x) is the output, so the backward
// pass is gx = gy * (1 - y²).
type tanhOp struct{}

func (op *tanhOp) Name() string { return "Tanh" }
func (op *tanhOp) Arity() int   { return 1 }

func (op *tanhOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.Tanh(xs[0])}
}

func (op *tanhOp) Backward(_, outputs, gys []*Variable) []*Variable {
	y := outputs[0]
	one := y.graph.constant(1)
	return []*Variable{Mul(gys[0], Sub(one, Mul(y, y)))}
}

// Tanh returns the element-wise hyperbolic tangent of x.
func Tanh(x *Variable) *Variable {
	return call(&tanhOp{}, x)
}
