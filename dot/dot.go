// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dot exports computation graphs in Graphviz DOT format.
//
// Example:
//
//	y := autodiff.Square(autodiff.Exp(autodiff.Square(x)))
//	if err := dot.WriteFile("graph.dot", y, true); err != nil {
//	    return err
//	}
package dot

import (
	"github.com/born-ml/dezero/internal/autodiff"
	"github.com/born-ml/dezero/internal/dot"
)

// Graph returns the DOT description of the graph reachable from root.
func Graph(root *autodiff.Variable, verbose bool) string {
	return dot.Graph(root, verbose)
}

// WriteFile writes the DOT description of root's graph to path.
func WriteFile(path string, root *autodiff.Variable, verbose bool) error {
	return dot.WriteFile(path, root, verbose)
}
