// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read the gradients accumulated on their parameters by a
// backward pass and rebind the parameter values. They work on plain arrays,
// so an update is never recorded in the computation graph.
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{
//	    LR: 0.001,
//	})
//
//	for epoch := range epochs {
//	    optimizer.ZeroGrad()
//	    loss := nn.MeanSquaredError(model.Forward(x), y)
//	    if err := loss.Backward(); err != nil {
//	        return err
//	    }
//	    optimizer.Step()
//	}
package optim

import (
	"github.com/born-ml/dezero/internal/ndarray"
	"github.com/born-ml/dezero/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every parameter that has a gradient.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// This should be called before each backward pass to prevent
	// gradient accumulation from previous iterations.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// getGradient returns the gradient value of param.
//
// Returns nil if no gradient is found (parameter wasn't part of computation graph).
func getGradient(param *nn.Parameter) *ndarray.Array {
	if param == nil {
		return nil
	}
	grad := param.Grad()
	if grad == nil {
		return nil
	}
	return grad.Value()
}

func zeroGrad(params []*nn.Parameter) {
	for _, param := range params {
		param.ZeroGrad()
	}
}
