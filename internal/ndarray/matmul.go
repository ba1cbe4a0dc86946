package ndarray

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MatMul returns the matrix product a @ b of two 2-d arrays.
func MatMul(a, b *Array) *Array {
	if len(a.shape) != 2 || len(b.shape) != 2 {
		panic(fmt.Sprintf("matmul: only 2-d arrays supported, got %d-d and %d-d", len(a.shape), len(b.shape)))
	}

	m, k := a.shape[0], a.shape[1]
	kAlt, n := b.shape[0], b.shape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	// mat.NewDense aliases its backing slice, so hand it copies.
	lhs := mat.NewDense(m, k, a.Data())
	rhs := mat.NewDense(k, n, b.Data())
	dst := make([]float64, m*n)
	out := mat.NewDense(m, n, dst)
	out.Mul(lhs, rhs)

	return fromBuffer(dst, Shape{m, n})
}
