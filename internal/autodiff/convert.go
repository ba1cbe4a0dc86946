package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/dezero/internal/ndarray"
)

// AsArray converts numeric scalars, float64 slices and matrices, and
// *ndarray.Array values to an array. Anything else yields
// ErrUnsupportedValueType.
func AsArray(value any) (*ndarray.Array, error) {
	switch v := value.(type) {
	case *ndarray.Array:
		if v == nil {
			return nil, errors.Wrap(ErrUnsupportedValueType, "nil array")
		}
		return v, nil
	case float64:
		return ndarray.Scalar(v), nil
	case float32:
		return ndarray.Scalar(float64(v)), nil
	case int:
		return ndarray.Scalar(float64(v)), nil
	case int32:
		return ndarray.Scalar(float64(v)), nil
	case int64:
		return ndarray.Scalar(float64(v)), nil
	case []float64:
		if len(v) == 0 {
			return nil, errors.Wrap(ErrUnsupportedValueType, "empty slice")
		}
		return ndarray.Vector(v...), nil
	case [][]float64:
		a, err := ndarray.Matrix(v)
		if err != nil {
			return nil, errors.Wrap(ErrUnsupportedValueType, err.Error())
		}
		return a, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedValueType, "%T", value)
	}
}

// AsVariable returns value unchanged when it is already a Variable of g, and
// otherwise wraps it as a leaf via AsArray.
func (g *Graph) AsVariable(value any) (*Variable, error) {
	if v, ok := value.(*Variable); ok {
		if v == nil {
			return nil, errors.Wrap(ErrUnsupportedValueType, "nil variable")
		}
		if v.graph != g {
			return nil, ErrGraphMismatch
		}
		return v, nil
	}
	a, err := AsArray(value)
	if err != nil {
		return nil, err
	}
	return newVariable(g, a), nil
}

// mustVariable is AsVariable for operator methods, which have no error return.
func (g *Graph) mustVariable(value any) *Variable {
	v, err := g.AsVariable(value)
	if err != nil {
		panic(err)
	}
	return v
}

// constant wraps c as a leaf of g.
func (g *Graph) constant(c float64) *Variable {
	return newVariable(g, ndarray.Scalar(c))
}
