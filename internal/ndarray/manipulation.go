package ndarray

import "fmt"

// Reshape returns a copy of a with a new shape. One dimension may be -1, in
// which case it is inferred from the element count.
func Reshape(a *Array, shape Shape) *Array {
	target := shape.Clone()
	inferred := -1
	known := 1
	for i, dim := range target {
		switch {
		case dim == -1 && inferred < 0:
			inferred = i
		case dim <= 0:
			panic(fmt.Sprintf("reshape: invalid dimension %d in %v", dim, shape))
		default:
			known *= dim
		}
	}
	if inferred >= 0 {
		if known == 0 || len(a.data)%known != 0 {
			panic(fmt.Sprintf("reshape: cannot infer dimension for %v from %d elements", shape, len(a.data)))
		}
		target[inferred] = len(a.data) / known
	}
	if target.NumElements() != len(a.data) {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v", a.shape, len(a.data), shape))
	}
	return fromBuffer(a.Data(), target)
}

// Transpose permutes the dimensions of a. With no axes the dimensions are
// reversed, which for a matrix is the ordinary transpose.
func Transpose(a *Array, axes ...int) *Array {
	ndim := len(a.shape)
	axes = resolveAxes(axes, ndim)

	srcStrides := a.shape.ComputeStrides()
	dstShape := make(Shape, ndim)
	for i, ax := range axes {
		dstShape[i] = a.shape[ax]
	}
	dstStrides := dstShape.ComputeStrides()

	dst := make([]float64, len(a.data))
	coords := make([]int, ndim)
	for i := range a.data {
		idx := i
		for d := 0; d < ndim; d++ {
			coords[d] = idx / srcStrides[d]
			idx %= srcStrides[d]
		}
		dstIdx := 0
		for dstDim, srcDim := range axes {
			dstIdx += coords[srcDim] * dstStrides[dstDim]
		}
		dst[dstIdx] = a.data[i]
	}
	return fromBuffer(dst, dstShape)
}

// InverseAxes returns the permutation that undoes axes.
func InverseAxes(axes []int) []int {
	inv := make([]int, len(axes))
	for i, ax := range axes {
		inv[ax] = i
	}
	return inv
}

// resolveAxes validates a permutation, defaulting to reversed dimensions.
func resolveAxes(axes []int, ndim int) []int {
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
		return axes
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %d-d array", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}
	out := make([]int, ndim)
	copy(out, axes)
	return out
}

// BroadcastTo repeats a along broadcast dimensions so it has the given shape.
func BroadcastTo(a *Array, shape Shape) *Array {
	out, _, err := BroadcastShapes(a.shape, shape)
	if err != nil || !out.Equal(shape) {
		panic(fmt.Sprintf("broadcast_to: cannot broadcast %v to %v", a.shape, shape))
	}

	outStrides := shape.ComputeStrides()
	inStrides := broadcastStrides(a.shape, shape)
	dst := make([]float64, shape.NumElements())
	fill(dst, func(i int) float64 { return a.data[flatIndex(i, outStrides, inStrides)] })
	return fromBuffer(dst, shape.Clone())
}
