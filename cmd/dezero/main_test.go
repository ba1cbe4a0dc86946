package main

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dezero/autodiff"
	"github.com/born-ml/dezero/nn"
)

// execute runs the CLI with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dezero "+version+"\n", out)
}

func TestGraph_Stdout(t *testing.T) {
	out, _, err := execute(t, "graph", "--func", "tanh", "--order", "2", "--verbose")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "digraph g {\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `"gx2: () float64"`)
	assert.Contains(t, out, `"x: () float64"`)
	assert.Contains(t, out, `label="Tanh"`)
}

func TestGraph_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poly.dot")
	out, stderr, err := execute(t, "graph", "--func", "poly", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "graph: written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph g {")
}

func TestGraph_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown function", []string{"graph", "--func", "cosh"}, "unknown function"},
		{"negative order", []string{"graph", "--order=-1"}, "order must be >= 0"},
		{"bad log level", []string{"graph", "--log-level", "loud"}, "invalid log level"},
		{"bad log format", []string{"graph", "--log-format", "xml"}, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDerivativeGraph_Values(t *testing.T) {
	// f(x) = x⁴ - 2x², f'(2) = 24, f''(2) = 44, f'''(2) = 48, f''''(2) = 24.
	for order, want := range []float64{8, 24, 44, 48} {
		gx, err := derivativeGraph("poly", 2, order)
		require.NoError(t, err)
		assert.InDelta(t, want, gx.Value().Item(), 1e-9, "order %d", order)
	}
}

func TestNthDerivative_IndependentOfX(t *testing.T) {
	// f(x) = 0·x + 1: f' is a constant built from leaves, so f'' has no path to x.
	f := func(x *autodiff.Variable) *autodiff.Variable { return x.Mul(0).Add(1) }

	gx, err := nthDerivative(f, 3, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, gx.Value().Item(), 0)

	_, err = nthDerivative(f, 3, 2)
	require.Error(t, err)
	assert.Equal(t, "derivative 2 does not depend on x", err.Error())
}

func TestFit_Linear(t *testing.T) {
	cfg := defaultFitConfig()
	res, err := runFit(context.Background(), cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	assert.Less(t, res.FinalLoss, res.InitialLoss)
	linear, ok := res.Model.(*nn.Linear)
	require.True(t, ok)
	// Noise is uniform on [0, 1), so the intercept absorbs its mean.
	assert.InDelta(t, 2.0, linear.Weight().Value().Item(), 0.5)
	assert.InDelta(t, 5.5, linear.Bias().Value().Item(), 0.5)
}

func TestFit_MLPWithConfigAndSave(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "fit.yaml")
	savePath := filepath.Join(dir, "mlp.safetensors")
	require.NoError(t, os.WriteFile(configPath, []byte(`
optimizer: adam
iters: 200
samples: 50
hidden: 4
seed: 7
log_every: 50
adam:
  lr: 0.05
  betas: [0.9, 0.999]
`), 0o600))

	out, stderr, err := execute(t, "fit", "-c", configPath, "--save", savePath)
	require.NoError(t, err)
	assert.Contains(t, out, "final loss:")
	assert.NotContains(t, out, "W:")
	assert.Contains(t, stderr, "optimizer=adam")
	assert.Contains(t, stderr, "fit: saved")

	g := autodiff.NewGraph()
	model := nn.NewSequential(nn.NewLinear(g, 1, 4, nil), nn.NewSigmoid(), nn.NewLinear(g, 4, 1, nil))
	metadata, err := nn.Load(savePath, model)
	require.NoError(t, err)
	assert.Equal(t, "adam", metadata["optimizer"])
	assert.Equal(t, "200", metadata["iters"])
}

func TestFit_FlagsOverrideConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "fit.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("optimizer: adam\niters: 5\n"), 0o600))

	_, stderr, err := execute(t, "fit", "-c", configPath, "--optimizer", "sgd", "--lr", "0.2", "--iters", "3", "--log-every", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "optimizer=sgd")
	assert.Contains(t, stderr, "lr=0.2")
	assert.Contains(t, stderr, "iters=3")
	assert.Equal(t, 3, strings.Count(stderr, "fit: step"))
}

func TestFit_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("learning_rate: 0.1\n"), 0o600))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown key", []string{"fit", "-c", unknown}, "parse config"},
		{"missing file", []string{"fit", "-c", filepath.Join(dir, "nope.yaml")}, "read config"},
		{"unknown optimizer", []string{"fit", "--optimizer", "rmsprop"}, "unknown optimizer"},
		{"zero iters", []string{"fit", "--iters", "0"}, "iters must be > 0"},
		{"zero restarts", []string{"fit", "--restarts", "0"}, "restarts must be > 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFit_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runFit(ctx, defaultFitConfig(), slog.New(slog.DiscardHandler))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFitRestarts_KeepsLowestLoss(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	cfg := defaultFitConfig()
	cfg.Iters = 50
	cfg.Hidden = 3
	cfg.Seed = 11

	want := fitResult{FinalLoss: math.Inf(1)}
	for i := range uint64(3) {
		run := cfg
		run.Seed = cfg.Seed + i
		res, err := runFit(context.Background(), run, logger)
		require.NoError(t, err)
		if res.FinalLoss < want.FinalLoss {
			want = res
		}
	}

	cfg.Restarts = 3
	best, err := runFitRestarts(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, want.Seed, best.Seed)
	assert.InDelta(t, want.FinalLoss, best.FinalLoss, 1e-12)
	assert.InDelta(t, want.InitialLoss, best.InitialLoss, 1e-12)
}

func TestFitRestarts_SavesSeed(t *testing.T) {
	savePath := filepath.Join(t.TempDir(), "line.safetensors")

	_, stderr, err := execute(t, "fit", "--iters", "20", "--restarts", "2", "--seed", "4", "--save", savePath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "restart=0")
	assert.Contains(t, stderr, "restart=1")
	assert.Contains(t, stderr, "fit: best restart")

	metadata, err := nn.Load(savePath, nn.NewLinear(autodiff.NewGraph(), 1, 1, nil))
	require.NoError(t, err)
	assert.Contains(t, []string{"4", "5"}, metadata["seed"])
}

func TestFitRestarts_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := defaultFitConfig()
	cfg.Restarts = 4
	_, err := runFitRestarts(ctx, cfg, slog.New(slog.DiscardHandler))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
