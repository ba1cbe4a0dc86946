package autodiff

import "github.com/pkg/errors"

// Structural errors. They are wrapped with context where they occur; use
// errors.Is to test for them.
var (
	// ErrInvalidArity is returned when an operation is applied to the wrong
	// number of inputs.
	ErrInvalidArity = errors.New("invalid arity")

	// ErrBackwardArity is returned when a backward rule produces a gradient
	// count different from its input count.
	ErrBackwardArity = errors.New("backward arity mismatch")

	// ErrUnsupportedValueType is returned when a value cannot be converted to
	// an array.
	ErrUnsupportedValueType = errors.New("unsupported value type")

	// ErrDanglingOutput is returned when a function's recorded output has been
	// collected before the backward pass reached it.
	ErrDanglingOutput = errors.New("dangling output reference")

	// ErrGraphMismatch is returned when an operation mixes variables created
	// under different graphs.
	ErrGraphMismatch = errors.New("variables belong to different graphs")
)
