package nn

import (
	"math"
	"math/rand/v2"

	"github.com/born-ml/dezero/internal/ndarray"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// Samples come from rng, or from the global source when rng is nil.
func Xavier(fanIn, fanOut int, shape ndarray.Shape, rng *rand.Rand) *ndarray.Array {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	uniform := rand.Float64 //nolint:gosec // weight initialization is not security-critical
	if rng != nil {
		uniform = rng.Float64
	}

	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = (uniform()*2.0 - 1.0) * bound
	}

	a, err := ndarray.New(data, shape)
	if err != nil {
		panic(err)
	}
	return a
}
