package ndarray

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dezero/internal/parallel"
)

func mustMatrix(t *testing.T, rows [][]float64) *Array {
	t.Helper()
	a, err := Matrix(rows)
	require.NoError(t, err)
	return a
}

func TestNew_Validation(t *testing.T) {
	_, err := New([]float64{1, 2, 3}, Shape{2, 2})
	require.Error(t, err)

	_, err = New([]float64{1}, Shape{0})
	require.Error(t, err)

	a, err := New([]float64{1, 2, 3, 4}, Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, a.Shape())
	assert.Equal(t, 3.0, a.At(1, 0))
}

func TestNew_CopiesInput(t *testing.T) {
	data := []float64{1, 2}
	a, err := New(data, Shape{2})
	require.NoError(t, err)
	data[0] = 99
	assert.Equal(t, 1.0, a.At(0))
}

func TestMatrix_RaggedRows(t *testing.T) {
	_, err := Matrix([][]float64{{1, 2}, {3}})
	require.Error(t, err)
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{"same", Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{"column", Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"row", Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"rank", Shape{5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"scalar", Shape{}, Shape{2, 2}, Shape{2, 2}, true, false},
		{"incompatible", Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.broadcast, broadcast)
		})
	}
}

func TestAdd_Broadcast(t *testing.T) {
	x := mustMatrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	row := Vector(10, 20, 30)
	col := mustMatrix(t, [][]float64{{100}, {200}})

	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, Add(x, row).Data())
	assert.Equal(t, []float64{101, 102, 103, 204, 205, 206}, Add(x, col).Data())
	assert.Equal(t, []float64{2, 3, 4, 5, 6, 7}, Add(x, Scalar(1)).Data())
}

func TestArithmetic(t *testing.T) {
	a := Vector(1, 2, 3)
	b := Vector(4, 5, 6)

	assert.Equal(t, []float64{-3, -3, -3}, Sub(a, b).Data())
	assert.Equal(t, []float64{4, 10, 18}, Mul(a, b).Data())
	assert.Equal(t, []float64{0.25, 0.4, 0.5}, Div(a, b).Data())
	assert.Equal(t, []float64{-1, -2, -3}, Neg(a).Data())
	assert.Equal(t, []float64{1, 8, 27}, Pow(a, 3).Data())
	assert.Equal(t, []float64{3, 4, 5}, AddScalar(a, 2).Data())

	// Operands are never modified.
	assert.Equal(t, []float64{1, 2, 3}, a.Data())
}

func TestAdd_IncompatiblePanics(t *testing.T) {
	assert.Panics(t, func() { Add(Vector(1, 2), Vector(1, 2, 3)) })
}

func TestReshape(t *testing.T) {
	a := Vector(1, 2, 3, 4, 5, 6)
	r := Reshape(a, Shape{2, 3})
	assert.Equal(t, Shape{2, 3}, r.Shape())
	assert.Equal(t, 6.0, r.At(1, 2))

	inferred := Reshape(a, Shape{3, -1})
	assert.Equal(t, Shape{3, 2}, inferred.Shape())

	assert.Panics(t, func() { Reshape(a, Shape{4, 2}) })
}

func TestTranspose(t *testing.T) {
	x := mustMatrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	xt := Transpose(x)
	assert.Equal(t, Shape{3, 2}, xt.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, xt.Data())

	cube, err := New([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, Shape{2, 3, 2})
	require.NoError(t, err)
	axes := []int{1, 2, 0}
	p := Transpose(cube, axes...)
	assert.Equal(t, Shape{3, 2, 2}, p.Shape())
	assert.Equal(t, cube.At(1, 2, 0), p.At(2, 0, 1))

	back := Transpose(p, InverseAxes(axes)...)
	assert.True(t, Equal(cube, back))
}

func TestSum(t *testing.T) {
	x := mustMatrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	assert.Equal(t, 21.0, SumAll(x).Item())
	assert.Equal(t, Shape{}, SumAll(x).Shape())

	s0 := Sum(x, 0, false)
	assert.Equal(t, Shape{3}, s0.Shape())
	assert.Equal(t, []float64{5, 7, 9}, s0.Data())

	s1 := Sum(x, 1, true)
	assert.Equal(t, Shape{2, 1}, s1.Shape())
	assert.Equal(t, []float64{6, 15}, s1.Data())

	neg := Sum(x, -1, false)
	assert.Equal(t, []float64{6, 15}, neg.Data())

	assert.Panics(t, func() { Sum(x, 2, false) })
}

func TestSumTo(t *testing.T) {
	x := mustMatrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	tests := []struct {
		name  string
		shape Shape
		want  []float64
	}{
		{"rows", Shape{1, 3}, []float64{5, 7, 9}},
		{"cols", Shape{2, 1}, []float64{6, 15}},
		{"leading", Shape{3}, []float64{5, 7, 9}},
		{"scalar", Shape{}, []float64{21}},
		{"identity", Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SumTo(x, tt.shape)
			assert.Equal(t, tt.shape, got.Shape())
			assert.Equal(t, tt.want, got.Data())
		})
	}

	assert.Panics(t, func() { SumTo(x, Shape{2}) })
}

func TestBroadcastTo(t *testing.T) {
	b := BroadcastTo(Vector(1, 2, 3), Shape{2, 3})
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, b.Data())

	c := BroadcastTo(Scalar(7), Shape{2})
	assert.Equal(t, []float64{7, 7}, c.Data())

	assert.Panics(t, func() { BroadcastTo(Vector(1, 2), Shape{3}) })
}

func TestSumToBroadcastToDuality(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	x := Rand(Shape{1, 3}, rng)
	target := Shape{4, 3}

	// Summing a broadcast array recovers it scaled by the repeat count.
	back := SumTo(BroadcastTo(x, target), x.Shape())
	assert.True(t, AllClose(MulScalar(x, 4), back, DefaultRTol, DefaultATol))
}

func TestMatMul(t *testing.T) {
	a := mustMatrix(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	b := mustMatrix(t, [][]float64{{1, 0, 2}, {0, 1, 3}})

	c := MatMul(a, b)
	assert.Equal(t, Shape{3, 3}, c.Shape())
	assert.Equal(t, []float64{1, 2, 8, 3, 4, 18, 5, 6, 28}, c.Data())

	assert.Panics(t, func() { MatMul(a, a) })
	assert.Panics(t, func() { MatMul(Vector(1, 2), b) })
}

func TestAllClose(t *testing.T) {
	a := Vector(1, 2, 3)
	assert.True(t, AllClose(a, Vector(1, 2, 3+1e-9), DefaultRTol, DefaultATol))
	assert.False(t, AllClose(a, Vector(1, 2, 3.1), DefaultRTol, DefaultATol))
	assert.False(t, AllClose(a, Vector(1, 2), DefaultRTol, DefaultATol))
}

func TestString(t *testing.T) {
	assert.Equal(t, "0.5", Scalar(0.5).String())
	assert.Equal(t, "[1 2 3]", Vector(1, 2, 3).String())
	assert.Equal(t, "[[1 2]\n [3 4]]", mustMatrix(t, [][]float64{{1, 2}, {3, 4}}).String())
}

func TestParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	a := Randn(Shape{64, 300}, rng)
	b := Randn(Shape{1, 300}, rng)

	restore := SetParallelism(parallel.Sequential())
	wantAdd := Add(a, b)
	wantTanh := Tanh(a)
	wantBcast := BroadcastTo(b, Shape{64, 300})
	restore()

	restore = SetParallelism(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 256})
	defer restore()

	assert.True(t, Equal(wantAdd, Add(a, b)))
	assert.True(t, Equal(wantTanh, Tanh(a)))
	assert.True(t, Equal(wantBcast, BroadcastTo(b, Shape{64, 300})))
	assert.Equal(t, 4, Parallelism().NumWorkers)
}
