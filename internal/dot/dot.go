// Package dot renders a recorded computation graph in Graphviz DOT format.
//
// Variables are drawn as orange ellipses and Functions as light blue boxes.
// Edges run from each input to the Function that consumed it, and from the
// Function to each of its still-live outputs. Node identifiers are assigned in
// visiting order, so the same graph always renders to the same text.
//
// Render an image with Graphviz:
//
//	dot graph.dot -T png -o graph.png
package dot

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/dezero/internal/autodiff"
	"github.com/born-ml/dezero/internal/ndarray"
)

// Graph returns the DOT description of every Function and Variable reachable
// from root. With verbose set, Variable labels also carry shape and dtype.
func Graph(root *autodiff.Variable, verbose bool) string {
	w := newWriter(verbose)

	w.sb.WriteString("digraph g {\n")
	w.variable(root)
	autodiff.Walk(root, w.function)
	w.sb.WriteString("}\n")

	// root is only weakly referenced by its producer.
	runtime.KeepAlive(root)
	return w.sb.String()
}

// WriteFile writes the DOT description of root's graph to path.
func WriteFile(path string, root *autodiff.Variable, verbose bool) error {
	if err := os.WriteFile(path, []byte(Graph(root, verbose)), 0o644); err != nil {
		return errors.Wrapf(err, "write graph to %s", path)
	}
	return nil
}

type writer struct {
	sb      strings.Builder
	verbose bool

	ids  map[*autodiff.Variable]int
	next int
}

func newWriter(verbose bool) *writer {
	return &writer{
		verbose: verbose,
		ids:     make(map[*autodiff.Variable]int),
	}
}

func (w *writer) id() int {
	w.next++
	return w.next
}

// variable emits v's node the first time it is seen and returns its id.
func (w *writer) variable(v *autodiff.Variable) int {
	if id, ok := w.ids[v]; ok {
		return id
	}
	id := w.id()
	w.ids[v] = id
	fmt.Fprintf(&w.sb, "%d [label=%q, color=orange, style=filled]\n", id, w.label(v))
	return id
}

func (w *writer) function(f *autodiff.Function) {
	id := w.id()
	fmt.Fprintf(&w.sb, "%d [label=%q, color=lightblue, style=filled, shape=box]\n", id, f.Name())

	for _, in := range f.Inputs() {
		fmt.Fprintf(&w.sb, "%d -> %d\n", w.variable(in), id)
	}
	for _, out := range f.Outputs() {
		if out == nil {
			continue
		}
		fmt.Fprintf(&w.sb, "%d -> %d\n", id, w.variable(out))
	}
}

func (w *writer) label(v *autodiff.Variable) string {
	if !w.verbose {
		return v.Name()
	}
	var sb strings.Builder
	if v.Name() != "" {
		sb.WriteString(v.Name())
		sb.WriteString(": ")
	}
	sb.WriteString(formatShape(v.Shape()))
	sb.WriteString(" float64")
	return sb.String()
}

// formatShape writes shapes the way NumPy prints them: (), (3,), (2, 3).
func formatShape(s ndarray.Shape) string {
	switch len(s) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d,)", s[0])
	}
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprint(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
