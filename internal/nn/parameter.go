package nn

import (
	"github.com/born-ml/dezero/internal/autodiff"
	"github.com/born-ml/dezero/internal/ndarray"
)

// Parameter is a trainable leaf Variable with a name.
//
// Example:
//
//	weight := nn.NewParameter("weight", g.NewVariable(w))
//	// ... loss.Backward() ...
//	grad := weight.Grad()
type Parameter struct {
	name     string
	variable *autodiff.Variable
}

// NewParameter wraps v as a parameter. The Variable takes the parameter's
// name so that graph exports label it.
func NewParameter(name string, v *autodiff.Variable) *Parameter {
	v.SetName(name)
	return &Parameter{
		name:     name,
		variable: v,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Variable returns the underlying Variable, for use in forward computations.
func (p *Parameter) Variable() *autodiff.Variable {
	return p.variable
}

// Value returns the current parameter value.
func (p *Parameter) Value() *ndarray.Array {
	return p.variable.Value()
}

// SetValue replaces the parameter value.
func (p *Parameter) SetValue(value *ndarray.Array) {
	p.variable.SetValue(value)
}

// Grad returns the accumulated gradient, or nil before any backward pass.
func (p *Parameter) Grad() *autodiff.Variable {
	return p.variable.Grad()
}

// ZeroGrad clears the gradient.
//
// This should be called before each training iteration to avoid
// accumulating gradients from previous iterations.
func (p *Parameter) ZeroGrad() {
	p.variable.ClearGrad()
}
