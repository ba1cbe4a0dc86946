package autodiff

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/dezero/internal/ndarray"
)

// Variable is a node holding a value in the computation graph.
//
// The value is never modified in place. The gradient is itself a Variable so
// that a backward pass recorded with CreateGraph can be differentiated again.
type Variable struct {
	value    *ndarray.Array
	grad     *Variable
	producer *Function // nil for leaves
	rank     int       // 0 for leaves, producer.rank + 1 otherwise
	name     string
	graph    *Graph
}

func newVariable(g *Graph, value *ndarray.Array) *Variable {
	if value == nil {
		panic("autodiff: variable value must not be nil")
	}
	return &Variable{value: value, graph: g}
}

// Value returns the wrapped array.
func (v *Variable) Value() *ndarray.Array {
	return v.value
}

// SetValue rebinds the wrapped array. The previous array is left untouched,
// so a recorded graph that captured it stays consistent.
func (v *Variable) SetValue(value *ndarray.Array) {
	if value == nil {
		panic("autodiff: variable value must not be nil")
	}
	v.value = value
}

// Grad returns the accumulated gradient, or nil before any backward pass.
func (v *Variable) Grad() *Variable {
	return v.grad
}

// SetGrad pre-seeds the gradient used by the next backward pass. A nil grad
// clears it. grad must belong to v's Graph.
func (v *Variable) SetGrad(grad *Variable) error {
	if grad != nil && grad.graph != v.graph {
		return errors.Wrap(ErrGraphMismatch, "set grad")
	}
	v.grad = grad
	return nil
}

// ClearGrad drops the accumulated gradient so v can take part in a fresh
// backward pass.
func (v *Variable) ClearGrad() {
	v.grad = nil
}

// Producer returns the Function that created v, or nil for a leaf.
func (v *Variable) Producer() *Function {
	return v.producer
}

// Rank returns the generation of v: 0 for leaves, otherwise one more than
// the rank of its producer.
func (v *Variable) Rank() int {
	return v.rank
}

// Name returns the optional label of v.
func (v *Variable) Name() string {
	return v.name
}

// SetName sets the label used by graph export and String.
func (v *Variable) SetName(name string) {
	v.name = name
}

// Graph returns the Graph v was created under.
func (v *Variable) Graph() *Graph {
	return v.graph
}

// Shape returns the shape of the wrapped value.
func (v *Variable) Shape() ndarray.Shape {
	return v.value.Shape()
}

// Size returns the number of elements of the wrapped value.
func (v *Variable) Size() int {
	return v.value.Size()
}

// Ndim returns the number of dimensions of the wrapped value.
func (v *Variable) Ndim() int {
	return v.value.Ndim()
}

// String formats v as variable(...), indenting multi-line values.
func (v *Variable) String() string {
	body := strings.ReplaceAll(v.value.String(), "\n", "\n         ")
	return "variable(" + body + ")"
}

// Add returns v + other. Raw numeric operands are wrapped as constants.
func (v *Variable) Add(other any) *Variable {
	return Add(v, v.graph.mustVariable(other))
}

// Sub returns v - other.
func (v *Variable) Sub(other any) *Variable {
	return Sub(v, v.graph.mustVariable(other))
}

// RSub returns other - v.
func (v *Variable) RSub(other any) *Variable {
	return Sub(v.graph.mustVariable(other), v)
}

// Mul returns v * other.
func (v *Variable) Mul(other any) *Variable {
	return Mul(v, v.graph.mustVariable(other))
}

// Div returns v / other.
func (v *Variable) Div(other any) *Variable {
	return Div(v, v.graph.mustVariable(other))
}

// RDiv returns other / v.
func (v *Variable) RDiv(other any) *Variable {
	return Div(v.graph.mustVariable(other), v)
}

// Neg returns -v.
func (v *Variable) Neg() *Variable {
	return Neg(v)
}

// Pow returns v raised to the integer power c.
func (v *Variable) Pow(c int) *Variable {
	return Pow(v, c)
}

// Reshape returns v with a new shape.
func (v *Variable) Reshape(shape ...int) *Variable {
	return Reshape(v, ndarray.Shape(shape))
}

// Transpose permutes the dimensions of v, reversing them when no axes are given.
func (v *Variable) Transpose(axes ...int) *Variable {
	return Transpose(v, axes...)
}

// T returns the transpose of v.
func (v *Variable) T() *Variable {
	return Transpose(v)
}

// Sum reduces v along axis.
func (v *Variable) Sum(axis int, keepDims bool) *Variable {
	return Sum(v, axis, keepDims)
}

// SumAll reduces v to a scalar.
func (v *Variable) SumAll() *Variable {
	return SumAll(v)
}
