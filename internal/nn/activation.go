package nn

import (
	"github.com/born-ml/dezero/internal/autodiff"
	"github.com/born-ml/dezero/internal/ndarray"
)

// Tanh applies the hyperbolic tangent element-wise.
//
// Tanh squashes values to the range (-1, 1), making it zero-centered
// which can help with training.
type Tanh struct{}

// NewTanh creates a new Tanh activation module.
func NewTanh() *Tanh {
	return &Tanh{}
}

// Forward applies Tanh activation.
func (t *Tanh) Forward(input *autodiff.Variable) *autodiff.Variable {
	return autodiff.Tanh(input)
}

// Parameters returns nil (Tanh has no trainable parameters).
func (t *Tanh) Parameters() []*Parameter {
	return nil
}

// StateDict returns an empty map.
func (t *Tanh) StateDict() map[string]*ndarray.Array {
	return map[string]*ndarray.Array{}
}

// LoadStateDict is a no-op.
func (t *Tanh) LoadStateDict(map[string]*ndarray.Array) error {
	return nil
}

// Sigmoid applies the logistic function 1 / (1 + exp(-x)) element-wise.
//
// It is computed as 0.5·tanh(0.5·x) + 0.5, which is the same function
// without overflowing exp for large negative inputs.
type Sigmoid struct{}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid() *Sigmoid {
	return &Sigmoid{}
}

// Forward applies Sigmoid activation.
func (s *Sigmoid) Forward(input *autodiff.Variable) *autodiff.Variable {
	return autodiff.Tanh(input.Mul(0.5)).Mul(0.5).Add(0.5)
}

// Parameters returns nil (Sigmoid has no trainable parameters).
func (s *Sigmoid) Parameters() []*Parameter {
	return nil
}

// StateDict returns an empty map.
func (s *Sigmoid) StateDict() map[string]*ndarray.Array {
	return map[string]*ndarray.Array{}
}

// LoadStateDict is a no-op.
func (s *Sigmoid) LoadStateDict(map[string]*ndarray.Array) error {
	return nil
}
