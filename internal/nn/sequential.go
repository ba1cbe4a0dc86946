package nn

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/dezero/internal/autodiff"
	"github.com/born-ml/dezero/internal/ndarray"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(g, 1, 10, rng),
//	    nn.NewSigmoid(),
//	    nn.NewLinear(g, 10, 1, rng),
//	)
//
//	output := model.Forward(input)
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(input *autodiff.Variable) *autodiff.Variable {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Add appends a module to the sequence.
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Module(index int) Module {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}

// StateDict returns every parameter value, keyed by module index and
// parameter name ("0.weight", "0.bias", "2.weight", ...).
func (s *Sequential) StateDict() map[string]*ndarray.Array {
	stateDict := make(map[string]*ndarray.Array)
	for i, module := range s.modules {
		for name, value := range module.StateDict() {
			stateDict[fmt.Sprintf("%d.%s", i, name)] = value
		}
	}
	return stateDict
}

// LoadStateDict loads parameters saved by StateDict.
func (s *Sequential) LoadStateDict(stateDict map[string]*ndarray.Array) error {
	for i, module := range s.modules {
		prefix := fmt.Sprintf("%d.", i)
		moduleStateDict := make(map[string]*ndarray.Array)
		for key, value := range stateDict {
			if name, ok := strings.CutPrefix(key, prefix); ok && name != "" {
				moduleStateDict[name] = value
			}
		}

		if len(moduleStateDict) == 0 {
			continue
		}
		if err := module.LoadStateDict(moduleStateDict); err != nil {
			return errors.Wrapf(err, "load module %d", i)
		}
	}
	return nil
}
