// Package nn implements neural network building blocks on top of the
// autodiff engine.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: a named trainable Variable
//   - Linear: Fully connected layer
//   - Activations: Tanh, Sigmoid
//   - Loss functions: MeanSquaredError
//   - Sequential: Container for stacking layers
//   - Save, Load: SafeTensors checkpoints of a module's state dict
//
// Every module is composed from differentiable operations, so calling
// Backward on a loss reaches the parameters without extra wiring.
package nn

import (
	"github.com/born-ml/dezero/internal/autodiff"
	"github.com/born-ml/dezero/internal/ndarray"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build larger models:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(g, 1, 10, rng),
//	    nn.NewSigmoid(),
//	    nn.NewLinear(g, 10, 1, rng),
//	)
type Module interface {
	// Forward computes the output of the module for input.
	Forward(input *autodiff.Variable) *autodiff.Variable

	// Parameters returns all trainable parameters of this module.
	// Modules without parameters return nil.
	Parameters() []*Parameter

	// StateDict returns the current parameter values keyed by name.
	StateDict() map[string]*ndarray.Array

	// LoadStateDict replaces parameter values from a state dictionary.
	LoadStateDict(stateDict map[string]*ndarray.Array) error
}
