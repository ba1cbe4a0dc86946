// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: Sigmoid, Tanh
//   - Loss functions: MeanSquaredError
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Xavier
//   - Checkpoints: Save, Load (SafeTensors)
//
// # Basic Usage
//
//	import (
//	    "math/rand/v2"
//
//	    "github.com/born-ml/dezero/autodiff"
//	    "github.com/born-ml/dezero/nn"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    rng := rand.New(rand.NewPCG(0, 0))
//
//	    // Build a simple MLP
//	    model := nn.NewSequential(
//	        nn.NewLinear(g, 1, 10, rng),
//	        nn.NewSigmoid(),
//	        nn.NewLinear(g, 10, 1, rng),
//	    )
//
//	    // Forward pass
//	    output := model.Forward(input)
//	    loss := nn.MeanSquaredError(output, target)
//	}
//
// # Parameter Management
//
// Access model parameters for optimization:
//
//	params := model.Parameters()
//	for _, param := range params {
//	    fmt.Println(param.Name(), param.Value().Shape())
//	}
//
// Save and restore them:
//
//	if err := nn.Save("model.safetensors", model, nil); err != nil {
//	    return err
//	}
//	if _, err := nn.Load("model.safetensors", model); err != nil {
//	    return err
//	}
package nn
