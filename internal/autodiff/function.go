package autodiff

import (
	"weak"

	"github.com/pkg/errors"

	"github.com/born-ml/dezero/internal/ndarray"
)

// Op is a differentiable operation.
//
// A fresh Op value is created for every application; Forward may store
// whatever Backward needs later (input shapes, constants) on the receiver.
type Op interface {
	// Name identifies the operation in errors, logs and graph export.
	Name() string

	// Arity is the number of inputs the operation takes.
	Arity() int

	// Forward computes the outputs from the input values.
	Forward(xs []*ndarray.Array) []*ndarray.Array

	// Backward computes one gradient per input from one gradient per output.
	// It is written in terms of Variables so that it can itself be recorded.
	Backward(inputs, outputs, gys []*Variable) []*Variable
}

// Function is a recorded application of an Op.
//
// A Function owns its inputs and holds its outputs through weak pointers.
// The outputs own the Function through their producer field.
type Function struct {
	op      Op
	inputs  []*Variable
	outputs []weak.Pointer[Variable]
	rank    int
}

// Name returns the name of the underlying operation.
func (f *Function) Name() string {
	return f.op.Name()
}

// Op returns the underlying operation.
func (f *Function) Op() Op {
	return f.op
}

// Rank returns the generation of the Function: the maximum rank of its inputs.
func (f *Function) Rank() int {
	return f.rank
}

// Inputs returns the input Variables in order.
func (f *Function) Inputs() []*Variable {
	inputs := make([]*Variable, len(f.inputs))
	copy(inputs, f.inputs)
	return inputs
}

// Outputs returns the output Variables in order. An entry is nil when the
// Variable has already been collected.
func (f *Function) Outputs() []*Variable {
	outputs := make([]*Variable, len(f.outputs))
	for i, out := range f.outputs {
		outputs[i] = out.Value()
	}
	return outputs
}

// resolveOutputs returns the live outputs, failing if any has been collected.
func (f *Function) resolveOutputs() ([]*Variable, error) {
	outputs := make([]*Variable, len(f.outputs))
	for i, out := range f.outputs {
		v := out.Value()
		if v == nil {
			return nil, errors.Wrapf(ErrDanglingOutput, "%s (rank %d): output %d", f.Name(), f.rank, i)
		}
		outputs[i] = v
	}
	return outputs, nil
}

// Apply evaluates op on inputs and returns the new output Variables.
//
// When g is recording, the outputs are linked to a new Function: their
// producer is set and their rank becomes one more than the Function's rank,
// which is the maximum input rank. When g is not recording, the outputs are
// plain leaves.
func (g *Graph) Apply(op Op, inputs ...*Variable) ([]*Variable, error) {
	if len(inputs) != op.Arity() {
		return nil, errors.Wrapf(ErrInvalidArity, "%s: expected %d inputs, got %d", op.Name(), op.Arity(), len(inputs))
	}

	xs := make([]*ndarray.Array, len(inputs))
	for i, in := range inputs {
		if in == nil {
			return nil, errors.Errorf("%s: input %d is nil", op.Name(), i)
		}
		if in.graph != g {
			return nil, errors.Wrapf(ErrGraphMismatch, "%s: input %d", op.Name(), i)
		}
		xs[i] = in.value
	}

	ys := op.Forward(xs)
	outputs := make([]*Variable, len(ys))
	for i, y := range ys {
		outputs[i] = newVariable(g, y)
	}

	if !g.recording {
		return outputs, nil
	}

	f := &Function{
		op:      op,
		inputs:  make([]*Variable, len(inputs)),
		outputs: make([]weak.Pointer[Variable], len(outputs)),
	}
	copy(f.inputs, inputs)
	for _, in := range inputs {
		f.rank = max(f.rank, in.rank)
	}
	for i, out := range outputs {
		out.producer = f
		out.rank = f.rank + 1
		f.outputs[i] = weak.Make(out)
	}

	return outputs, nil
}

// call applies a single-output op. The convenience wrappers use it; their
// arity is fixed by construction, so a structural error is a programming bug.
func call(op Op, inputs ...*Variable) *Variable {
	var g *Graph
	for _, in := range inputs {
		if in != nil {
			g = in.graph
			break
		}
	}
	if g == nil {
		panic(errors.Errorf("%s: input 0 is nil", op.Name()))
	}

	ys, err := g.Apply(op, inputs...)
	if err != nil {
		panic(err)
	}
	return ys[0]
}
