package nn

import (
	"fmt"

	"github.com/born-ml/dezero/internal/autodiff"
)

// MeanSquaredError computes mean((predictions - targets)²) as a 0-d Variable.
//
// MSE is commonly used for regression tasks where the goal is to predict
// continuous values. Panics if the shapes differ.
//
// Example:
//
//	loss := nn.MeanSquaredError(model.Forward(x), y)
//	loss.Backward()
func MeanSquaredError(predictions, targets *autodiff.Variable) *autodiff.Variable {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("MeanSquaredError: shape mismatch %v vs %v", predictions.Shape(), targets.Shape()))
	}

	diff := autodiff.Sub(predictions, targets)
	return autodiff.SumAll(autodiff.Square(diff)).Div(float64(diff.Size()))
}
