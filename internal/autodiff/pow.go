package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// powOp raises its input to a constant integer power: y = x^c.
//
// The exponent is bound when the op is created; it is not an input.
//
// Backward pass: gx = c * x^(c-1) * gy.
type powOp struct {
	c int
}

func (op *powOp) Name() string { return "Pow" }
func (op *powOp) Arity() int   { return 1 }

func (op *powOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.Pow(xs[0], op.c)}
}

func (op *powOp) Backward(inputs, _, gys []*Variable) []*Variable {
	x := inputs[0]
	c := x.graph.constant(float64(op.c))
	return []*Variable{Mul(Mul(c, Pow(x, op.c-1)), gys[0])}
}

// Pow returns x raised to the integer power c.
func Pow(x *Variable, c int) *Variable {
	return call(&powOp{c: c}, x)
}
