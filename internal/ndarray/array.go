// Package ndarray provides the dense float64 n-dimensional array consumed by
// the autodiff engine.
//
// Arrays are immutable by convention: every operation allocates a fresh result
// and never writes into its operands. Row-major layout, NumPy-style
// broadcasting for elementwise arithmetic.
//
// Shape violations (incompatible broadcast, bad reshape, matmul mismatch) are
// programming errors and panic with a descriptive message.
package ndarray

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
)

// Array is a dense row-major float64 array.
type Array struct {
	shape Shape
	data  []float64
}

// New creates an array from data laid out in row-major order.
// The data slice is copied.
func New(data []float64, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid shape")
	}
	if len(data) != shape.NumElements() {
		return nil, errors.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return &Array{shape: shape.Clone(), data: buf}, nil
}

// fromBuffer wraps buf without copying. Callers hand over ownership.
func fromBuffer(buf []float64, shape Shape) *Array {
	return &Array{shape: shape, data: buf}
}

// Scalar creates a 0-d array holding v.
func Scalar(v float64) *Array {
	return fromBuffer([]float64{v}, Shape{})
}

// Vector creates a 1-d array from values.
func Vector(values ...float64) *Array {
	buf := make([]float64, len(values))
	copy(buf, values)
	return fromBuffer(buf, Shape{len(values)})
}

// Matrix creates a 2-d array from rows. All rows must have the same length.
func Matrix(rows [][]float64) (*Array, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("matrix requires at least one row and one column")
	}
	cols := len(rows[0])
	buf := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Errorf("row %d has %d columns, expected %d", i, len(row), cols)
		}
		buf = append(buf, row...)
	}
	return fromBuffer(buf, Shape{len(rows), cols}), nil
}

// Full creates an array of the given shape filled with v.
func Full(shape Shape, v float64) *Array {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("full: %v", err))
	}
	buf := make([]float64, shape.NumElements())
	for i := range buf {
		buf[i] = v
	}
	return fromBuffer(buf, shape.Clone())
}

// Zeros creates a zero-filled array.
func Zeros(shape Shape) *Array {
	return Full(shape, 0)
}

// Ones creates an array filled with ones.
func Ones(shape Shape) *Array {
	return Full(shape, 1)
}

// OnesLike creates an array of ones with a's shape.
func OnesLike(a *Array) *Array {
	return Ones(a.shape)
}

// ZerosLike creates an array of zeros with a's shape.
func ZerosLike(a *Array) *Array {
	return Zeros(a.shape)
}

// Rand creates an array of uniform [0, 1) samples drawn from rng.
func Rand(shape Shape, rng *rand.Rand) *Array {
	a := Zeros(shape)
	for i := range a.data {
		a.data[i] = rng.Float64()
	}
	return a
}

// Randn creates an array of standard normal samples drawn from rng.
func Randn(shape Shape, rng *rand.Rand) *Array {
	a := Zeros(shape)
	for i := range a.data {
		a.data[i] = rng.NormFloat64()
	}
	return a
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() Shape {
	return a.shape.Clone()
}

// Ndim returns the number of dimensions.
func (a *Array) Ndim() int {
	return len(a.shape)
}

// Size returns the number of elements.
func (a *Array) Size() int {
	return len(a.data)
}

// Data returns a copy of the underlying elements in row-major order.
func (a *Array) Data() []float64 {
	out := make([]float64, len(a.data))
	copy(out, a.data)
	return out
}

// Item returns the single element of a one-element array.
func (a *Array) Item() float64 {
	if len(a.data) != 1 {
		panic(fmt.Sprintf("item: array of shape %v has %d elements", a.shape, len(a.data)))
	}
	return a.data[0]
}

// At returns the element at the given indices.
func (a *Array) At(indices ...int) float64 {
	if len(indices) != len(a.shape) {
		panic(fmt.Sprintf("at: expected %d indices, got %d", len(a.shape), len(indices)))
	}
	strides := a.shape.ComputeStrides()
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			panic(fmt.Sprintf("at: index %d out of range for dimension %d of size %d", idx, i, a.shape[i]))
		}
		flat += idx * strides[i]
	}
	return a.data[flat]
}

// With returns a copy of a with the element at flat index i replaced by v.
// Used by finite-difference checks, which perturb one element at a time.
func (a *Array) With(i int, v float64) *Array {
	out := a.Data()
	out[i] = v
	return fromBuffer(out, a.shape.Clone())
}

// String formats the array like NumPy does.
func (a *Array) String() string {
	var sb strings.Builder
	a.format(&sb, 0, 0)
	return sb.String()
}

func (a *Array) format(sb *strings.Builder, dim, offset int) {
	if len(a.shape) == 0 {
		fmt.Fprintf(sb, "%g", a.data[0])
		return
	}
	strides := a.shape.ComputeStrides()
	sb.WriteByte('[')
	for i := 0; i < a.shape[dim]; i++ {
		if i > 0 {
			if dim < len(a.shape)-1 {
				sb.WriteByte('\n')
				sb.WriteString(strings.Repeat(" ", dim+1))
			} else {
				sb.WriteByte(' ')
			}
		}
		if dim == len(a.shape)-1 {
			fmt.Fprintf(sb, "%g", a.data[offset+i])
		} else {
			a.format(sb, dim+1, offset+i*strides[dim])
		}
	}
	sb.WriteByte(']')
}
