package autodiff_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dezero/internal/autodiff"
	"github.com/born-ml/dezero/internal/ndarray"
)

const (
	gradEpsilon = 1e-4
	gradRTol    = 1e-4
	gradATol    = 1e-5
)

// numericalGradient estimates d(sum(f(x)))/dx element by element using
// central differences.
func numericalGradient(f func(*ndarray.Array) *ndarray.Array, x *ndarray.Array, eps float64) *ndarray.Array {
	data := x.Data()
	grad := make([]float64, len(data))
	for i, v := range data {
		plus := ndarray.SumAll(f(x.With(i, v+eps))).Item()
		minus := ndarray.SumAll(f(x.With(i, v-eps))).Item()
		grad[i] = (plus - minus) / (2 * eps)
	}
	out, err := ndarray.New(grad, x.Shape())
	if err != nil {
		panic(err)
	}
	return out
}

// checkGradients compares the backward pass of sum(fn(inputs...)) with a
// numerical estimate, for every input.
func checkGradients(t *testing.T, fn func(xs ...*autodiff.Variable) *autodiff.Variable, inputs ...*ndarray.Array) {
	t.Helper()

	g := autodiff.NewGraph()
	vars := make([]*autodiff.Variable, len(inputs))
	for i, in := range inputs {
		vars[i] = g.NewVariable(in)
	}
	y := autodiff.SumAll(fn(vars...))
	require.NoError(t, y.Backward())

	for i := range inputs {
		eval := func(x *ndarray.Array) *ndarray.Array {
			ng := autodiff.NewGraph(autodiff.WithRecording(false))
			args := make([]*autodiff.Variable, len(inputs))
			for j, in := range inputs {
				if j == i {
					in = x
				}
				args[j] = ng.NewVariable(in)
			}
			return fn(args...).Value()
		}

		want := numericalGradient(eval, inputs[i], gradEpsilon)
		got := vars[i].Grad()
		require.NotNil(t, got, "input %d has no gradient", i)
		assert.Equal(t, inputs[i].Shape(), got.Shape(), "input %d", i)
		assert.True(t, ndarray.AllClose(got.Value(), want, gradRTol, gradATol),
			"input %d: backward %v, numerical %v", i, got.Value(), want)
	}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1024))
}

func positive(shape ndarray.Shape, rng *rand.Rand) *ndarray.Array {
	return ndarray.AddScalar(ndarray.Rand(shape, rng), 0.5)
}

func TestGradient_Binary(t *testing.T) {
	rng := testRNG()

	tests := []struct {
		name   string
		fn     func(x0, x1 *autodiff.Variable) *autodiff.Variable
		x0, x1 ndarray.Shape
	}{
		{"add", autodiff.Add, ndarray.Shape{2, 3}, ndarray.Shape{2, 3}},
		{"add broadcast row", autodiff.Add, ndarray.Shape{2, 3}, ndarray.Shape{3}},
		{"add broadcast column", autodiff.Add, ndarray.Shape{2, 1}, ndarray.Shape{2, 3}},
		{"add scalar", autodiff.Add, ndarray.Shape{2, 3}, ndarray.Shape{}},
		{"sub", autodiff.Sub, ndarray.Shape{3}, ndarray.Shape{3}},
		{"sub broadcast", autodiff.Sub, ndarray.Shape{1, 3}, ndarray.Shape{4, 1}},
		{"mul", autodiff.Mul, ndarray.Shape{2, 2}, ndarray.Shape{2, 2}},
		{"mul broadcast", autodiff.Mul, ndarray.Shape{2, 3}, ndarray.Shape{1, 3}},
		{"div", autodiff.Div, ndarray.Shape{3}, ndarray.Shape{3}},
		{"div broadcast", autodiff.Div, ndarray.Shape{}, ndarray.Shape{2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGradients(t, func(xs ...*autodiff.Variable) *autodiff.Variable {
				return tt.fn(xs[0], xs[1])
			}, positive(tt.x0, rng), positive(tt.x1, rng))
		})
	}
}

func TestGradient_Unary(t *testing.T) {
	rng := testRNG()

	tests := []struct {
		name string
		fn   func(x *autodiff.Variable) *autodiff.Variable
	}{
		{"neg", autodiff.Neg},
		{"square", autodiff.Square},
		{"exp", autodiff.Exp},
		{"sin", autodiff.Sin},
		{"cos", autodiff.Cos},
		{"tanh", autodiff.Tanh},
		{"pow 3", func(x *autodiff.Variable) *autodiff.Variable { return autodiff.Pow(x, 3) }},
		{"pow 0", func(x *autodiff.Variable) *autodiff.Variable { return autodiff.Pow(x, 0) }},
		{"rsub", func(x *autodiff.Variable) *autodiff.Variable { return x.RSub(1.5) }},
		{"rdiv", func(x *autodiff.Variable) *autodiff.Variable { return x.RDiv(2) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGradients(t, func(xs ...*autodiff.Variable) *autodiff.Variable {
				return tt.fn(xs[0])
			}, positive(ndarray.Shape{2, 3}, rng))
		})
	}
}

func TestGradient_Literal(t *testing.T) {
	x, err := ndarray.Matrix([][]float64{{0.1, -0.7}, {1.3, 2.0}})
	require.NoError(t, err)

	checkGradients(t, func(xs ...*autodiff.Variable) *autodiff.Variable {
		// (sin(x)·x - 1) / (exp(x) + 1)
		num := autodiff.Mul(autodiff.Sin(xs[0]), xs[0]).Sub(1)
		return num.Div(autodiff.Exp(xs[0]).Add(1))
	}, x)

	checkGradients(t, func(xs ...*autodiff.Variable) *autodiff.Variable {
		return autodiff.Square(autodiff.Exp(autodiff.Square(xs[0])))
	}, ndarray.Scalar(0.5))
}

func TestGradient_Shape(t *testing.T) {
	rng := testRNG()

	tests := []struct {
		name  string
		fn    func(x *autodiff.Variable) *autodiff.Variable
		shape ndarray.Shape
	}{
		{"reshape", func(x *autodiff.Variable) *autodiff.Variable { return x.Reshape(3, 2) }, ndarray.Shape{2, 3}},
		{"reshape inferred", func(x *autodiff.Variable) *autodiff.Variable { return x.Reshape(-1) }, ndarray.Shape{2, 3}},
		{"transpose", func(x *autodiff.Variable) *autodiff.Variable { return x.T() }, ndarray.Shape{2, 3}},
		{"transpose axes", func(x *autodiff.Variable) *autodiff.Variable { return x.Transpose(1, 2, 0) }, ndarray.Shape{2, 3, 4}},
		{"broadcast to", func(x *autodiff.Variable) *autodiff.Variable {
			return autodiff.BroadcastTo(x, ndarray.Shape{2, 3})
		}, ndarray.Shape{3}},
		{"broadcast to column", func(x *autodiff.Variable) *autodiff.Variable {
			return autodiff.BroadcastTo(x, ndarray.Shape{4, 3})
		}, ndarray.Shape{4, 1}},
		{"sum to row", func(x *autodiff.Variable) *autodiff.Variable {
			return autodiff.SumTo(x, ndarray.Shape{1, 3})
		}, ndarray.Shape{2, 3}},
		{"sum to vector", func(x *autodiff.Variable) *autodiff.Variable {
			return autodiff.SumTo(x, ndarray.Shape{3})
		}, ndarray.Shape{2, 3}},
		{"sum to scalar", func(x *autodiff.Variable) *autodiff.Variable {
			return autodiff.SumTo(x, ndarray.Shape{})
		}, ndarray.Shape{2, 3}},
		{"sum axis 0", func(x *autodiff.Variable) *autodiff.Variable { return x.Sum(0, false) }, ndarray.Shape{2, 3}},
		{"sum axis 1 keepdims", func(x *autodiff.Variable) *autodiff.Variable { return x.Sum(1, true) }, ndarray.Shape{2, 3}},
		{"sum negative axis", func(x *autodiff.Variable) *autodiff.Variable { return x.Sum(-1, false) }, ndarray.Shape{2, 3, 2}},
		{"sum all", func(x *autodiff.Variable) *autodiff.Variable { return x.SumAll() }, ndarray.Shape{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Square so that the gradient depends on the element position.
			checkGradients(t, func(xs ...*autodiff.Variable) *autodiff.Variable {
				return autodiff.Square(tt.fn(xs[0]))
			}, ndarray.Randn(tt.shape, rng))
		})
	}
}

func TestGradient_MatMul(t *testing.T) {
	rng := testRNG()

	checkGradients(t, func(xs ...*autodiff.Variable) *autodiff.Variable {
		return autodiff.MatMul(xs[0], xs[1])
	}, ndarray.Randn(ndarray.Shape{2, 3}, rng), ndarray.Randn(ndarray.Shape{3, 4}, rng))

	checkGradients(t, func(xs ...*autodiff.Variable) *autodiff.Variable {
		return autodiff.Square(autodiff.MatMul(xs[0], xs[1]))
	}, ndarray.Randn(ndarray.Shape{1, 5}, rng), ndarray.Randn(ndarray.Shape{5, 2}, rng))
}

func TestGradient_LinearLayer(t *testing.T) {
	rng := testRNG()

	// tanh(x·W + b) with b broadcast over the batch.
	checkGradients(t, func(xs ...*autodiff.Variable) *autodiff.Variable {
		return autodiff.Tanh(autodiff.Add(autodiff.MatMul(xs[0], xs[1]), xs[2]))
	}, ndarray.Randn(ndarray.Shape{4, 3}, rng), ndarray.Randn(ndarray.Shape{3, 2}, rng), ndarray.Randn(ndarray.Shape{2}, rng))
}

func TestShapeDuality(t *testing.T) {
	g := autodiff.NewGraph()

	// Backward of BroadcastTo sums back to the source shape.
	x := g.NewVariable(ndarray.Vector(1, 2, 3))
	y := autodiff.BroadcastTo(x, ndarray.Shape{4, 3})
	require.NoError(t, y.Backward())
	assert.Equal(t, []float64{4, 4, 4}, x.Grad().Value().Data())

	// Backward of SumTo broadcasts back to the source shape.
	z := g.NewVariable(ndarray.Ones(ndarray.Shape{2, 3}))
	w := autodiff.SumTo(z, ndarray.Shape{1, 3})
	require.NoError(t, w.SetGrad(g.NewVariable(mustArray(t, []float64{1, 2, 3}, ndarray.Shape{1, 3}))))
	require.NoError(t, w.Backward())
	assert.Equal(t, ndarray.Shape{2, 3}, z.Grad().Shape())
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, z.Grad().Value().Data())
}

func TestShapeIdentity(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.NewVariable(ndarray.Ones(ndarray.Shape{2, 3}))

	assert.Same(t, x, autodiff.Reshape(x, ndarray.Shape{2, 3}))
	assert.Same(t, x, autodiff.BroadcastTo(x, ndarray.Shape{2, 3}))
	assert.Same(t, x, autodiff.SumTo(x, ndarray.Shape{2, 3}))
}

func mustArray(t *testing.T, data []float64, shape ndarray.Shape) *ndarray.Array {
	t.Helper()
	a, err := ndarray.New(data, shape)
	require.NoError(t, err)
	return a
}
