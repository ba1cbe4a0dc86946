// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/dezero/autodiff"
	"github.com/born-ml/dezero/ndarray"
	"github.com/born-ml/dezero/nn"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	g := autodiff.NewGraph()

	tests := []struct {
		name   string
		module nn.Module
		params int
	}{
		{"Linear", nn.NewLinear(g, 10, 5, nil), 2},
		{"Sigmoid", nn.NewSigmoid(), 0},
		{"Tanh", nn.NewTanh(), 0},
		{"Sequential", nn.NewSequential(nn.NewLinear(g, 10, 5, nil), nn.NewTanh(), nn.NewLinear(g, 5, 2, nil)), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.module.Parameters(), tt.params)
			assert.Len(t, tt.module.StateDict(), tt.params)

			x := g.NewVariable(ndarray.Ones(ndarray.Shape{3, 10}))
			assert.NotNil(t, tt.module.Forward(x))
		})
	}
}
