package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/born-ml/dezero/autodiff"
	"github.com/born-ml/dezero/dot"
	"github.com/born-ml/dezero/ndarray"
)

// demoFuncs are the single-variable functions the graph command can render.
var demoFuncs = map[string]func(x *autodiff.Variable) *autodiff.Variable{
	"tanh": autodiff.Tanh,
	"sin":  autodiff.Sin,
	"poly": func(x *autodiff.Variable) *autodiff.Variable {
		return x.Pow(4).Sub(x.Pow(2).Mul(2))
	},
	"exp-square": func(x *autodiff.Variable) *autodiff.Variable {
		return autodiff.Square(autodiff.Exp(autodiff.Square(x)))
	},
}

func newGraphCmd(a *app) *cobra.Command {
	var (
		fn      string
		at      float64
		order   int
		verbose bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Write the DOT graph of a function or one of its derivatives",
		Long: `Builds f(x) for a built-in function, differentiates it --order times with
graph recording enabled and prints the graph of the result in DOT format.

Example:
  dezero graph --func tanh --order 3 --verbose | dot -Tpng -o tanh.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := derivativeGraph(fn, at, order)
			if err != nil {
				return err
			}

			var functions int
			autodiff.Walk(root, func(*autodiff.Function) { functions++ })
			a.logger.Info("graph: built", "func", fn, "order", order, "functions", functions)

			if output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), dot.Graph(root, verbose))
				return err
			}
			if err := dot.WriteFile(output, root, verbose); err != nil {
				return err
			}
			a.logger.Info("graph: written", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&fn, "func", "tanh", "function to render ("+strings.Join(slices.Sorted(maps.Keys(demoFuncs)), ", ")+")")
	cmd.Flags().Float64Var(&at, "at", 1.0, "value of x")
	cmd.Flags().IntVar(&order, "order", 0, "derivative order to render (0 renders f itself)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include shapes and dtypes in variable labels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

// derivativeGraph returns the order-th derivative of the named function at x0,
// still connected to its recorded graph.
func derivativeGraph(name string, x0 float64, order int) (*autodiff.Variable, error) {
	f, ok := demoFuncs[name]
	if !ok {
		return nil, errors.Errorf("unknown function %q (want one of %s)",
			name, strings.Join(slices.Sorted(maps.Keys(demoFuncs)), ", "))
	}
	gx, err := nthDerivative(f, x0, order)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return gx, nil
}

// nthDerivative differentiates f order times at x0 with graph recording on.
func nthDerivative(f func(*autodiff.Variable) *autodiff.Variable, x0 float64, order int) (*autodiff.Variable, error) {
	if order < 0 {
		return nil, errors.Errorf("order must be >= 0, got %d", order)
	}

	g := autodiff.NewGraph()
	x := g.NewNamedVariable(ndarray.Scalar(x0), "x")
	y := f(x)
	y.SetName("y")

	for i := range order {
		x.ClearGrad()
		if err := y.Backward(autodiff.CreateGraph()); err != nil {
			return nil, errors.Wrapf(err, "derivative %d", i+1)
		}
		gx := x.Grad()
		if gx == nil {
			return nil, errors.Errorf("derivative %d does not depend on x", i+1)
		}
		gx.SetName(fmt.Sprintf("gx%d", i+1))
		y = gx
	}
	return y, nil
}
