package autodiff

import (
	"runtime"
	"testing"
	"weak"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dezero/internal/ndarray"
)

// identityOp returns its input; its backward rule is supplied by the test.
type identityOp struct {
	backward func(gys []*Variable) []*Variable
}

func (op *identityOp) Name() string { return "Identity" }
func (op *identityOp) Arity() int   { return 1 }

func (op *identityOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{xs[0]}
}

func (op *identityOp) Backward(_, _, gys []*Variable) []*Variable {
	return op.backward(gys)
}

// splitOp has two outputs: x and 2x.
type splitOp struct{}

func (op *splitOp) Name() string { return "Split" }
func (op *splitOp) Arity() int   { return 1 }

func (op *splitOp) Forward(xs []*ndarray.Array) []*ndarray.Array {
	return []*ndarray.Array{xs[0], ndarray.MulScalar(xs[0], 2)}
}

func (op *splitOp) Backward(_, _, gys []*Variable) []*Variable {
	return []*Variable{Add(gys[0], Mul(gys[1].graph.constant(2), gys[1]))}
}

func TestApply_Links(t *testing.T) {
	g := NewGraph()
	x0 := g.Scalar(1)
	x1 := Exp(g.Scalar(2))

	ys, err := g.Apply(&addOp{}, x0, x1)
	require.NoError(t, err)
	require.Len(t, ys, 1)

	y := ys[0]
	f := y.producer
	require.NotNil(t, f)
	assert.Equal(t, "Add", f.Name())
	assert.Equal(t, 1, f.rank)
	assert.Equal(t, 2, y.rank)
	assert.Equal(t, []*Variable{x0, x1}, f.Inputs())
	assert.Equal(t, []*Variable{y}, f.Outputs())
}

func TestApply_NotRecording(t *testing.T) {
	g := NewGraph(WithRecording(false))
	x := g.Scalar(3)

	y := Square(x)
	assert.Nil(t, y.producer)
	assert.Equal(t, 0, y.rank)
	assert.InDelta(t, 9.0, y.value.Item(), 1e-12)
}

func TestApply_InvalidArity(t *testing.T) {
	g := NewGraph()
	x := g.Scalar(1)

	_, err := g.Apply(&addOp{}, x)
	require.ErrorIs(t, err, ErrInvalidArity)
	assert.Contains(t, err.Error(), "Add")

	assert.Panics(t, func() { call(&addOp{}, x) })
}

func TestApply_GraphMismatch(t *testing.T) {
	x0 := NewGraph().Scalar(1)
	x1 := NewGraph().Scalar(2)

	_, err := x0.graph.Apply(&addOp{}, x0, x1)
	require.ErrorIs(t, err, ErrGraphMismatch)

	assert.Panics(t, func() { x0.Add(x1) })
}

func TestApply_NilInput(t *testing.T) {
	g := NewGraph()
	_, err := g.Apply(&squareOp{}, nil)
	require.Error(t, err)
}

func TestCall_NilInput(t *testing.T) {
	x := NewGraph().Scalar(1)

	assert.PanicsWithError(t, "Add: input 0 is nil", func() { Add(nil, x) })
	assert.PanicsWithError(t, "Mul: input 1 is nil", func() { Mul(x, nil) })
	assert.PanicsWithError(t, "Square: input 0 is nil", func() { Square(nil) })
}

func TestSetGrad_GraphMismatch(t *testing.T) {
	g := NewGraph()
	x := g.Vector(1, 2)
	y := Square(x)

	err := y.SetGrad(NewGraph().Vector(1, 1))
	require.ErrorIs(t, err, ErrGraphMismatch)
	assert.Nil(t, y.grad)

	require.NoError(t, y.SetGrad(g.Vector(1, 1)))
	require.NoError(t, y.SetGrad(nil))
	assert.Nil(t, y.grad)
}

func TestApply_MultipleOutputs(t *testing.T) {
	g := NewGraph()
	x := g.Vector(1, 2)

	ys, err := g.Apply(&splitOp{}, x)
	require.NoError(t, err)
	require.Len(t, ys, 2)
	assert.Same(t, ys[0].producer, ys[1].producer)

	// Only the second output contributes; the first gets a zero gradient.
	y := SumAll(Square(ys[1]))
	require.NoError(t, y.Backward())
	runtime.KeepAlive(ys)

	// y = Σ(2x)², dy/dx = 8x
	assert.Equal(t, []float64{8, 16}, x.grad.value.Data())
}

func TestBackward_ArityMismatch(t *testing.T) {
	g := NewGraph()
	x := g.Scalar(1)
	y := call(&identityOp{backward: func([]*Variable) []*Variable { return nil }}, x)

	err := y.Backward()
	require.ErrorIs(t, err, ErrBackwardArity)
	assert.Contains(t, err.Error(), "Identity")
	assert.True(t, g.IsRecording())
}

func TestBackward_PanicRestoresRecording(t *testing.T) {
	g := NewGraph()
	x := g.Scalar(1)
	y := call(&identityOp{backward: func([]*Variable) []*Variable { panic("boom") }}, x)

	assert.PanicsWithValue(t, "boom", func() { _ = y.Backward() })
	assert.True(t, g.IsRecording())

	restore := g.NoGrad()
	assert.PanicsWithValue(t, "boom", func() { _ = y.Backward(CreateGraph()) })
	assert.False(t, g.IsRecording())
	restore()
}

func TestBackward_DanglingOutput(t *testing.T) {
	g := NewGraph()
	x := g.Scalar(2)

	f := &Function{
		op:      &squareOp{},
		inputs:  []*Variable{x},
		outputs: make([]weak.Pointer[Variable], 1),
	}
	root := &Variable{value: ndarray.Scalar(4), graph: g, producer: f, rank: 1}

	err := root.Backward()
	require.ErrorIs(t, err, ErrDanglingOutput)
	assert.Contains(t, err.Error(), "Square")
	assert.Nil(t, x.grad)
}

// producerOf returns the producer of Square(x) without keeping the output.
func producerOf(x *Variable) *Function {
	return Square(x).producer
}

func TestFunction_OutputsAreWeak(t *testing.T) {
	g := NewGraph()
	x := g.Scalar(2)

	f := producerOf(x)
	runtime.GC()

	assert.Equal(t, []*Variable{nil}, f.Outputs())
	_, err := f.resolveOutputs()
	assert.True(t, errors.Is(err, ErrDanglingOutput))

	// The inputs are still owned by the Function.
	assert.Same(t, x, f.Inputs()[0])
}
