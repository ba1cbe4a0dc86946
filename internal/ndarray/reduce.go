package ndarray

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// SumAll sums every element into a 0-d array.
func SumAll(a *Array) *Array {
	return Scalar(floats.Sum(a.data))
}

// Sum reduces a along axis. Negative axes count from the end. With keepDims
// the reduced dimension is kept with size 1.
func Sum(a *Array, axis int, keepDims bool) *Array {
	ax, err := normalizeAxis(axis, len(a.shape))
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	outer := a.shape[:ax].NumElements()
	n := a.shape[ax]
	inner := a.shape[ax+1:].NumElements()

	dst := make([]float64, outer*inner)
	for o := 0; o < outer; o++ {
		for k := 0; k < n; k++ {
			base := (o*n + k) * inner
			floats.Add(dst[o*inner:(o+1)*inner], a.data[base:base+inner])
		}
	}

	outShape := a.shape.Clone()
	if keepDims {
		outShape[ax] = 1
	} else {
		outShape = append(outShape[:ax], outShape[ax+1:]...)
	}
	return fromBuffer(dst, outShape)
}

// KeepDimsShape returns shape with axis set to 1, the shape Sum(a, axis, true)
// produces. Used to undo a non-keepdims reduction before broadcasting back.
func KeepDimsShape(shape Shape, axis int) Shape {
	ax, err := normalizeAxis(axis, len(shape))
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}
	out := shape.Clone()
	out[ax] = 1
	return out
}

// SumTo sums a down to shape, the inverse of BroadcastTo.
//
// Leading dimensions a has beyond len(shape) are summed away, and so is every
// dimension where shape has size 1:
//
//	(2, 3) → (1, 3)  sums rows
//	(2, 3) → (3)     sums the leading axis
//	(2, 3) → ()      sums everything
func SumTo(a *Array, shape Shape) *Array {
	lead := len(a.shape) - len(shape)
	if lead < 0 {
		panic(fmt.Sprintf("sum_to: cannot sum %v to larger rank %v", a.shape, shape))
	}

	out := a
	for i := len(a.shape) - 1; i >= 0; i-- {
		switch {
		case i < lead:
			out = Sum(out, i, true)
		case shape[i-lead] == 1 && a.shape[i] != 1:
			out = Sum(out, i, true)
		case shape[i-lead] != a.shape[i]:
			panic(fmt.Sprintf("sum_to: cannot sum %v to %v", a.shape, shape))
		}
	}
	if out == a {
		return fromBuffer(a.Data(), shape.Clone())
	}
	return fromBuffer(out.data, shape.Clone())
}
