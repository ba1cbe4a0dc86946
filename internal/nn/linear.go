package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/born-ml/dezero/internal/autodiff"
	"github.com/born-ml/dezero/internal/ndarray"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Example:
//
//	g := autodiff.NewGraph()
//	layer := nn.NewLinear(g, 3, 2, rand.New(rand.NewPCG(1, 2)))
//
//	x := g.NewVariable(ndarray.Randn(ndarray.Shape{32, 3}, rng))
//	y := layer.Forward(x) // shape: [32, 2]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features]
}

// NewLinear creates a Linear layer whose parameters are leaves of g.
func NewLinear(g *autodiff.Graph, inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	weightShape := ndarray.Shape{outFeatures, inFeatures}
	weight := NewParameter("weight", g.NewVariable(Xavier(inFeatures, outFeatures, weightShape, rng)))
	bias := NewParameter("bias", g.NewVariable(ndarray.Zeros(ndarray.Shape{outFeatures})))

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}
}

// Forward computes x @ W.T + b.
//
// Panics unless input has shape [batch_size, in_features].
func (l *Linear) Forward(input *autodiff.Variable) *autodiff.Variable {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, inputShape[1]))
	}

	output := autodiff.MatMul(input, l.weight.Variable().T())

	// [out_features] -> [1, out_features] broadcasts over the batch.
	b := l.bias.Variable().Reshape(1, l.outFeatures)
	return autodiff.Add(output, b)
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}

// StateDict returns the weight and bias values.
func (l *Linear) StateDict() map[string]*ndarray.Array {
	return map[string]*ndarray.Array{
		"weight": l.weight.Value(),
		"bias":   l.bias.Value(),
	}
}

// LoadStateDict replaces the weight and bias values. Both must be present
// with matching shapes; on error nothing is changed.
func (l *Linear) LoadStateDict(stateDict map[string]*ndarray.Array) error {
	weight, ok := stateDict["weight"]
	if !ok {
		return errors.New("missing weight in state dict")
	}
	if want := (ndarray.Shape{l.outFeatures, l.inFeatures}); !weight.Shape().Equal(want) {
		return errors.Errorf("weight shape mismatch: expected %v, got %v", want, weight.Shape())
	}

	bias, ok := stateDict["bias"]
	if !ok {
		return errors.New("missing bias in state dict")
	}
	if want := (ndarray.Shape{l.outFeatures}); !bias.Shape().Equal(want) {
		return errors.Errorf("bias shape mismatch: expected %v, got %v", want, bias.Shape())
	}

	l.weight.SetValue(weight)
	l.bias.SetValue(bias)
	return nil
}
