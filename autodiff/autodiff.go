// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides define-by-run reverse-mode automatic
// differentiation.
//
// Operations run eagerly. While the Graph is recording, every result
// remembers the operation that produced it, and Backward walks those links in
// reverse rank order to accumulate gradients. Gradients are Variables
// themselves, so a backward pass run with CreateGraph can be differentiated
// again.
//
// Example:
//
//	import (
//	    "github.com/born-ml/dezero/autodiff"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    x := g.Scalar(2.0)
//
//	    // f(x) = x⁴ - 2x²
//	    y := x.Pow(4).Sub(x.Pow(2).Mul(2))
//	    if err := y.Backward(autodiff.CreateGraph()); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    gx := x.Grad() // 24
//	    x.ClearGrad()
//	    if err := gx.Backward(); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.Grad()) // variable(44)
//	}
package autodiff

import (
	"github.com/born-ml/dezero/internal/autodiff"
	"github.com/born-ml/dezero/internal/ndarray"
)

// Graph holds the recording switch shared by a family of Variables.
type Graph = autodiff.Graph

// Option configures a Graph.
type Option = autodiff.Option

// NewGraph creates a Graph with recording enabled.
func NewGraph(opts ...Option) *Graph {
	return autodiff.NewGraph(opts...)
}

// WithLogger sets the logger used for backward-pass diagnostics.
var WithLogger = autodiff.WithLogger

// WithRecording sets the initial state of the recording switch.
var WithRecording = autodiff.WithRecording

// Variable is a value node of the computation graph.
type Variable = autodiff.Variable

// Function is a recorded application of an operation.
type Function = autodiff.Function

// Op is a differentiable operation.
type Op = autodiff.Op

// BackwardOption configures a backward pass.
type BackwardOption = autodiff.BackwardOption

// Backward options.
var (
	RetainGrad  = autodiff.RetainGrad
	CreateGraph = autodiff.CreateGraph
	OnVisit     = autodiff.OnVisit
)

// Errors returned by the engine.
var (
	ErrInvalidArity         = autodiff.ErrInvalidArity
	ErrBackwardArity        = autodiff.ErrBackwardArity
	ErrUnsupportedValueType = autodiff.ErrUnsupportedValueType
	ErrDanglingOutput       = autodiff.ErrDanglingOutput
	ErrGraphMismatch        = autodiff.ErrGraphMismatch
)

// AsArray converts a numeric value to an array.
func AsArray(value any) (*ndarray.Array, error) {
	return autodiff.AsArray(value)
}

// Walk visits every Function reachable from root without touching gradients.
func Walk(root *Variable, visit func(*Function)) {
	autodiff.Walk(root, visit)
}

// Operations

// Add returns x0 + x1 with broadcasting.
func Add(x0, x1 *Variable) *Variable { return autodiff.Add(x0, x1) }

// Sub returns x0 - x1 with broadcasting.
func Sub(x0, x1 *Variable) *Variable { return autodiff.Sub(x0, x1) }

// Mul returns x0 * x1 with broadcasting.
func Mul(x0, x1 *Variable) *Variable { return autodiff.Mul(x0, x1) }

// Div returns x0 / x1 with broadcasting.
func Div(x0, x1 *Variable) *Variable { return autodiff.Div(x0, x1) }

// Neg returns -x.
func Neg(x *Variable) *Variable { return autodiff.Neg(x) }

// Pow returns x raised to the integer power c.
func Pow(x *Variable, c int) *Variable { return autodiff.Pow(x, c) }

// Square returns x².
func Square(x *Variable) *Variable { return autodiff.Square(x) }

// Exp returns eˣ element-wise.
func Exp(x *Variable) *Variable { return autodiff.Exp(x) }

// Sin returns sin(x) element-wise.
func Sin(x *Variable) *Variable { return autodiff.Sin(x) }

// Cos returns cos(x) element-wise.
func Cos(x *Variable) *Variable { return autodiff.Cos(x) }

// Tanh returns tanh(x) element-wise.
func Tanh(x *Variable) *Variable { return autodiff.Tanh(x) }

// Reshape returns x with a new shape.
func Reshape(x *Variable, shape ndarray.Shape) *Variable { return autodiff.Reshape(x, shape) }

// Transpose permutes the dimensions of x.
func Transpose(x *Variable, axes ...int) *Variable { return autodiff.Transpose(x, axes...) }

// BroadcastTo broadcasts x to shape.
func BroadcastTo(x *Variable, shape ndarray.Shape) *Variable { return autodiff.BroadcastTo(x, shape) }

// SumTo sums x down to shape.
func SumTo(x *Variable, shape ndarray.Shape) *Variable { return autodiff.SumTo(x, shape) }

// Sum reduces x along axis.
func Sum(x *Variable, axis int, keepDims bool) *Variable { return autodiff.Sum(x, axis, keepDims) }

// SumAll reduces x to a scalar.
func SumAll(x *Variable) *Variable { return autodiff.SumAll(x) }

// MatMul returns the matrix product x·w.
func MatMul(x, w *Variable) *Variable { return autodiff.MatMul(x, w) }
