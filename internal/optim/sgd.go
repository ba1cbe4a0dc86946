package optim

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/dezero/internal/ndarray"
	"github.com/born-ml/dezero/internal/nn"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []*nn.Parameter
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter]*ndarray.Array
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 `yaml:"lr"`       // Learning rate (default: 0.01)
	Momentum float64 `yaml:"momentum"` // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer over params.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter]*ndarray.Array),
	}
}

// Step performs a single optimization step.
//
// Parameters with no gradient (not in computational graph) are skipped.
func (s *SGD) Step() {
	for _, param := range s.params {
		grad := getGradient(param)
		if grad == nil {
			continue
		}

		update := grad
		if s.momentum != 0 {
			velocity, exists := s.velocities[param]
			if !exists {
				velocity = ndarray.ZerosLike(param.Value())
			}
			velocity = ndarray.Add(ndarray.MulScalar(velocity, s.momentum), grad)
			s.velocities[param] = velocity
			update = velocity
		}

		param.SetValue(ndarray.Sub(param.Value(), ndarray.MulScalar(update, s.lr)))
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// StateDict returns the velocity buffers keyed "velocity.{param_index}".
// Without momentum, returns an empty map.
func (s *SGD) StateDict() map[string]*ndarray.Array {
	stateDict := make(map[string]*ndarray.Array)
	if s.momentum == 0 {
		return stateDict
	}

	for i, param := range s.params {
		velocity, exists := s.velocities[param]
		if !exists {
			continue // No velocity yet (hasn't been used in training)
		}
		stateDict[fmt.Sprintf("velocity.%d", i)] = velocity
	}
	return stateDict
}

// LoadStateDict restores velocity buffers saved by StateDict.
//
// Returns an error if velocity shapes don't match parameter shapes.
func (s *SGD) LoadStateDict(stateDict map[string]*ndarray.Array) error {
	if s.momentum == 0 {
		return nil
	}

	velocities := make(map[*nn.Parameter]*ndarray.Array)
	for i, param := range s.params {
		velocity, exists := stateDict[fmt.Sprintf("velocity.%d", i)]
		if !exists {
			continue
		}
		if !velocity.Shape().Equal(param.Value().Shape()) {
			return errors.Errorf("velocity shape mismatch for parameter %d: expected %v, got %v",
				i, param.Value().Shape(), velocity.Shape())
		}
		velocities[param] = velocity
	}

	s.velocities = velocities
	return nil
}
