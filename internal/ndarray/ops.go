package ndarray

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// binary applies fn elementwise with broadcasting. sameShape is the
// vectorized path used when no broadcasting is needed.
func binary(name string, a, b *Array, sameShape func(dst, s, t []float64) []float64, fn func(x, y float64) float64) *Array {
	if a.shape.Equal(b.shape) {
		dst := make([]float64, len(a.data))
		sameShape(dst, a.data, b.data)
		return fromBuffer(dst, a.shape.Clone())
	}

	outShape, _, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.shape, outShape)
	bStrides := broadcastStrides(b.shape, outShape)

	dst := make([]float64, outShape.NumElements())
	fill(dst, func(i int) float64 {
		return fn(a.data[flatIndex(i, outStrides, aStrides)], b.data[flatIndex(i, outStrides, bStrides)])
	})
	return fromBuffer(dst, outShape)
}

// unary applies fn to every element.
func unary(a *Array, fn func(float64) float64) *Array {
	dst := make([]float64, len(a.data))
	fill(dst, func(i int) float64 { return fn(a.data[i]) })
	return fromBuffer(dst, a.shape.Clone())
}

// Add returns a + b with broadcasting.
func Add(a, b *Array) *Array {
	return binary("add", a, b, floats.AddTo, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b with broadcasting.
func Sub(a, b *Array) *Array {
	return binary("sub", a, b, floats.SubTo, func(x, y float64) float64 { return x - y })
}

// Mul returns the elementwise product a * b with broadcasting.
func Mul(a, b *Array) *Array {
	return binary("mul", a, b, floats.MulTo, func(x, y float64) float64 { return x * y })
}

// Div returns the elementwise quotient a / b with broadcasting.
// Division by zero follows IEEE 754 (Inf/NaN).
func Div(a, b *Array) *Array {
	return binary("div", a, b, floats.DivTo, func(x, y float64) float64 { return x / y })
}

// Neg returns -a.
func Neg(a *Array) *Array {
	return MulScalar(a, -1)
}

// MulScalar returns a * c.
func MulScalar(a *Array, c float64) *Array {
	dst := make([]float64, len(a.data))
	floats.ScaleTo(dst, c, a.data)
	return fromBuffer(dst, a.shape.Clone())
}

// AddScalar returns a + c.
func AddScalar(a *Array, c float64) *Array {
	dst := a.Data()
	floats.AddConst(c, dst)
	return fromBuffer(dst, a.shape.Clone())
}

// Pow raises every element to the integer power c.
func Pow(a *Array, c int) *Array {
	return unary(a, func(v float64) float64 { return math.Pow(v, float64(c)) })
}

// Exp returns e raised to every element.
func Exp(a *Array) *Array {
	return unary(a, math.Exp)
}

// Sin returns the elementwise sine.
func Sin(a *Array) *Array {
	return unary(a, math.Sin)
}

// Cos returns the elementwise cosine.
func Cos(a *Array) *Array {
	return unary(a, math.Cos)
}

// Tanh returns the elementwise hyperbolic tangent.
func Tanh(a *Array) *Array {
	return unary(a, math.Tanh)
}
