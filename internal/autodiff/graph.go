// Package autodiff implements define-by-run reverse-mode automatic
// differentiation.
//
// Operations execute eagerly on ndarray values. While the owning Graph is
// recording, every application also links its output Variables to a Function
// node, so the computation can later be replayed in reverse by Backward.
//
// Architecture:
//   - Variable: a value, its accumulated gradient and the Function that produced it
//   - Function: one applied operation; owns its inputs, weakly references its outputs
//   - Graph: the recording switch shared by every Variable created from it
//   - Backward: rank-ordered traversal that accumulates gradients via the chain rule
//
// Usage:
//
//	g := autodiff.NewGraph()
//	x := g.Scalar(0.5)
//	y := autodiff.Square(autodiff.Exp(autodiff.Square(x)))
//	if err := y.Backward(); err != nil {
//		return err
//	}
//	fmt.Println(x.Grad().Value().Item()) // 3.2974425414...
package autodiff

import (
	"log/slog"

	"github.com/born-ml/dezero/internal/ndarray"
)

// Graph holds the recording switch for a family of Variables.
//
// A Graph is not safe for concurrent use. Goroutines that build graphs in
// parallel should each use their own Graph.
type Graph struct {
	recording bool
	logger    *slog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for backward-pass diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithRecording sets the initial state of the recording switch (default on).
func WithRecording(enabled bool) Option {
	return func(g *Graph) {
		g.recording = enabled
	}
}

// NewGraph creates a Graph with recording enabled.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		recording: true,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// IsRecording reports whether applying an operation currently records graph edges.
func (g *Graph) IsRecording() bool {
	return g.recording
}

// SetRecording sets the recording switch and returns a function restoring the
// previous value. Toggles nest with stack discipline:
//
//	defer g.SetRecording(false)()
func (g *Graph) SetRecording(enabled bool) (restore func()) {
	prev := g.recording
	g.recording = enabled
	return func() {
		g.recording = prev
	}
}

// NoGrad disables recording until the returned function is called.
//
//	defer g.NoGrad()()
//	y := model.Forward(x) // no graph is built
func (g *Graph) NoGrad() (restore func()) {
	return g.SetRecording(false)
}

// WithoutGrad runs fn with recording disabled. The previous state is restored
// when fn returns or panics.
func (g *Graph) WithoutGrad(fn func() error) error {
	defer g.NoGrad()()
	return fn()
}

// NewVariable wraps value as a leaf Variable.
func (g *Graph) NewVariable(value *ndarray.Array) *Variable {
	return newVariable(g, value)
}

// NewNamedVariable wraps value as a named leaf Variable.
func (g *Graph) NewNamedVariable(value *ndarray.Array, name string) *Variable {
	v := newVariable(g, value)
	v.name = name
	return v
}

// Scalar creates a 0-d leaf Variable.
func (g *Graph) Scalar(v float64) *Variable {
	return newVariable(g, ndarray.Scalar(v))
}

// Vector creates a 1-d leaf Variable.
func (g *Graph) Vector(values ...float64) *Variable {
	return newVariable(g, ndarray.Vector(values...))
}
