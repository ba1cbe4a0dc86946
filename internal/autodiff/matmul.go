package autodiff

import "github.com/born-ml/dezero/internal/ndarray"

// matMulOp is the matrix product y = x @ w.
//
// Backward pass:
//   - gx = gy @ wᵀ
//   - gw = xᵀ @ gy
type matMulOp struct{}

func (op *matMulOp) Name() string { return "MatMul" }
func (op *matMulOp) Arity() int   { return 2 }

func (op *matMulOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{ndarray.MatMul(xs[0], xs[1])}
}

func (op *matMulOp) Backward(inputs, _, gys []*Variable) []*Variable {
	x, w := inputs[0], inputs[1]
	gy := gys[0]
	return []*Variable{MatMul(gy, w.T()), MatMul(x.T(), gy)}
}

// MatMul returns the matrix product x @ w of two 2-d Variables.
func MatMul(x, w *Variable) *Variable {
	return call(&matMulOp{}, x, w)
}
