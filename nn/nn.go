// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/dezero/internal/autodiff"
	"github.com/born-ml/dezero/internal/ndarray"
	"github.com/born-ml/dezero/internal/nn"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and Variable.
func NewParameter(name string, v *autodiff.Variable) *Parameter {
	return nn.NewParameter(name, v)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	g := autodiff.NewGraph()
//	layer := nn.NewLinear(g, 784, 128, nil)
func NewLinear(g *autodiff.Graph, inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	return nn.NewLinear(g, inFeatures, outFeatures, rng)
}

// Activations

// Sigmoid represents the logistic activation.
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a new Sigmoid activation.
func NewSigmoid() *Sigmoid {
	return nn.NewSigmoid()
}

// Tanh represents the hyperbolic tangent activation.
type Tanh = nn.Tanh

// NewTanh creates a new Tanh activation.
func NewTanh() *Tanh {
	return nn.NewTanh()
}

// Loss Functions

// MeanSquaredError computes mean((predictions - targets)²).
func MeanSquaredError(predictions, targets *autodiff.Variable) *autodiff.Variable {
	return nn.MeanSquaredError(predictions, targets)
}

// Containers

// Sequential chains modules together.
type Sequential = nn.Sequential

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Initialization

// Xavier returns weights drawn from the Glorot uniform distribution.
func Xavier(fanIn, fanOut int, shape ndarray.Shape, rng *rand.Rand) *ndarray.Array {
	return nn.Xavier(fanIn, fanOut, shape, rng)
}

// Checkpoints

// Save writes the module's state dict to path in SafeTensors format.
func Save(path string, m Module, metadata map[string]string) error {
	return nn.Save(path, m, metadata)
}

// Load reads a SafeTensors state dict from path into m.
func Load(path string, m Module) (map[string]string, error) {
	return nn.Load(path, m)
}
