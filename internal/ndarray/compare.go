package ndarray

import "gonum.org/v1/gonum/floats/scalar"

// Default tolerances for AllClose, matching NumPy's allclose.
const (
	DefaultRTol = 1e-5
	DefaultATol = 1e-8
)

// AllClose reports whether a and b have the same shape and every pair of
// elements is within atol absolutely or rtol relatively.
func AllClose(a, b *Array, rtol, atol float64) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	for i := range a.data {
		if !scalar.EqualWithinAbsOrRel(a.data[i], b.data[i], atol, rtol) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b have the same shape and identical elements.
func Equal(a, b *Array) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}
