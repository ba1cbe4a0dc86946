// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ndarray provides the dense float64 n-dimensional array that
// Variables wrap.
//
// Example:
//
//	a, err := ndarray.Matrix([][]float64{{1, 2, 3}, {4, 5, 6}})
//	if err != nil {
//	    return err
//	}
//	b := ndarray.Add(a, ndarray.Vector(10, 20, 30)) // broadcasts over rows
//	fmt.Println(ndarray.SumTo(b, ndarray.Shape{3}))  // [25 47 69]
package ndarray

import (
	"math/rand/v2"

	"github.com/born-ml/dezero/internal/ndarray"
)

// Array is a dense row-major float64 array.
type Array = ndarray.Array

// Shape is the size of each dimension. The empty shape is a 0-d scalar.
type Shape = ndarray.Shape

// Default tolerances for AllClose.
const (
	DefaultRTol = ndarray.DefaultRTol
	DefaultATol = ndarray.DefaultATol
)

// New creates an array from row-major data. The data is copied.
func New(data []float64, shape Shape) (*Array, error) {
	return ndarray.New(data, shape)
}

// Scalar creates a 0-d array.
func Scalar(v float64) *Array {
	return ndarray.Scalar(v)
}

// Vector creates a 1-d array.
func Vector(values ...float64) *Array {
	return ndarray.Vector(values...)
}

// Matrix creates a 2-d array from rows of equal length.
func Matrix(rows [][]float64) (*Array, error) {
	return ndarray.Matrix(rows)
}

// Zeros creates an array of zeros.
func Zeros(shape Shape) *Array {
	return ndarray.Zeros(shape)
}

// Ones creates an array of ones.
func Ones(shape Shape) *Array {
	return ndarray.Ones(shape)
}

// Full creates an array filled with v.
func Full(shape Shape, v float64) *Array {
	return ndarray.Full(shape, v)
}

// Rand creates an array of uniform [0, 1) samples.
func Rand(shape Shape, rng *rand.Rand) *Array {
	return ndarray.Rand(shape, rng)
}

// Randn creates an array of standard normal samples.
func Randn(shape Shape, rng *rand.Rand) *Array {
	return ndarray.Randn(shape, rng)
}

// Add returns a + b with broadcasting.
func Add(a, b *Array) *Array {
	return ndarray.Add(a, b)
}

// Sub returns a - b with broadcasting.
func Sub(a, b *Array) *Array {
	return ndarray.Sub(a, b)
}

// Mul returns a * b with broadcasting.
func Mul(a, b *Array) *Array {
	return ndarray.Mul(a, b)
}

// Div returns a / b with broadcasting.
func Div(a, b *Array) *Array {
	return ndarray.Div(a, b)
}

// MatMul returns the matrix product of two 2-d arrays.
func MatMul(a, b *Array) *Array {
	return ndarray.MatMul(a, b)
}

// Reshape returns a with a new shape; one dimension may be -1.
func Reshape(a *Array, shape Shape) *Array {
	return ndarray.Reshape(a, shape)
}

// Transpose permutes the dimensions of a.
func Transpose(a *Array, axes ...int) *Array {
	return ndarray.Transpose(a, axes...)
}

// BroadcastTo broadcasts a to shape.
func BroadcastTo(a *Array, shape Shape) *Array {
	return ndarray.BroadcastTo(a, shape)
}

// SumTo sums a down to shape.
func SumTo(a *Array, shape Shape) *Array {
	return ndarray.SumTo(a, shape)
}

// Sum reduces a along axis.
func Sum(a *Array, axis int, keepDims bool) *Array {
	return ndarray.Sum(a, axis, keepDims)
}

// SumAll sums every element into a 0-d array.
func SumAll(a *Array) *Array {
	return ndarray.SumAll(a)
}

// AllClose reports whether a and b agree within the given tolerances.
func AllClose(a, b *Array, rtol, atol float64) bool {
	return ndarray.AllClose(a, b, rtol, atol)
}

// MulScalar returns a * c.
func MulScalar(a *Array, c float64) *Array {
	return ndarray.MulScalar(a, c)
}

// AddScalar returns a + c.
func AddScalar(a *Array, c float64) *Array {
	return ndarray.AddScalar(a, c)
}

// Sin returns the elementwise sine.
func Sin(a *Array) *Array {
	return ndarray.Sin(a)
}
