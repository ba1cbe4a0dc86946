package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/dezero/autodiff"
	"github.com/born-ml/dezero/internal/parallel"
	"github.com/born-ml/dezero/ndarray"
	"github.com/born-ml/dezero/nn"
	"github.com/born-ml/dezero/optim"
)

// fitConfig is the YAML schema of the fit command.
type fitConfig struct {
	Optimizer string           `yaml:"optimizer"` // "sgd" or "adam"
	Iters     int              `yaml:"iters"`
	Samples   int              `yaml:"samples"`
	Hidden    int              `yaml:"hidden"` // 0 fits a line, >0 a one-hidden-layer MLP on a sine
	Seed      uint64           `yaml:"seed"`
	Restarts  int              `yaml:"restarts"` // independent runs seeded Seed, Seed+1, ...; the lowest final loss wins
	LogEvery  int              `yaml:"log_every"`
	SGD       optim.SGDConfig  `yaml:"sgd"`
	Adam      optim.AdamConfig `yaml:"adam"`
}

func defaultFitConfig() fitConfig {
	return fitConfig{
		Optimizer: "sgd",
		Iters:     1000,
		Samples:   100,
		Restarts:  1,
		LogEvery:  100,
		SGD:       optim.SGDConfig{LR: 0.1},
		Adam:      optim.AdamConfig{LR: 0.01},
	}
}

// loadFitConfig overlays the YAML file at path on the defaults.
// Unknown keys are rejected.
func loadFitConfig(path string) (fitConfig, error) {
	cfg := defaultFitConfig()
	if path == "" {
		return cfg, nil
	}

	//nolint:gosec // G304: config path is user input
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func (c fitConfig) validate() error {
	switch c.Optimizer {
	case "sgd", "adam":
	default:
		return errors.Errorf("unknown optimizer %q (want sgd or adam)", c.Optimizer)
	}
	if c.Iters <= 0 {
		return errors.Errorf("iters must be > 0, got %d", c.Iters)
	}
	if c.Samples <= 0 {
		return errors.Errorf("samples must be > 0, got %d", c.Samples)
	}
	if c.Hidden < 0 {
		return errors.Errorf("hidden must be >= 0, got %d", c.Hidden)
	}
	if c.Restarts <= 0 {
		return errors.Errorf("restarts must be > 0, got %d", c.Restarts)
	}
	return nil
}

// fitResult summarizes a training run.
type fitResult struct {
	Seed        uint64
	InitialLoss float64
	FinalLoss   float64
	Model       nn.Module
}

func newFitCmd(a *app) *cobra.Command {
	var (
		configPath string
		savePath   string
		flags      fitConfig
	)

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a small model to synthetic data",
		Long: `Generates a noisy synthetic dataset and fits it by gradient descent.

With --hidden 0 the data is y = 5 + 2x + noise and the model is a single
linear layer. With --hidden N the data is y = sin(2πx) + noise and the model
is Linear(1, N) → Sigmoid → Linear(N, 1).

Settings are read from --config (YAML) and overridden by explicit flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadFitConfig(configPath)
			if err != nil {
				return err
			}
			applyFitFlags(cmd, &cfg, flags)
			if err := cfg.validate(); err != nil {
				return err
			}

			res, err := runFitRestarts(cmd.Context(), cfg, a.logger)
			if err != nil {
				return err
			}
			printFitResult(cmd.OutOrStdout(), res)

			if savePath != "" {
				metadata := map[string]string{
					"optimizer": cfg.Optimizer,
					"iters":     strconv.Itoa(cfg.Iters),
					"seed":      strconv.FormatUint(res.Seed, 10),
					"loss":      strconv.FormatFloat(res.FinalLoss, 'g', -1, 64),
				}
				if err := nn.Save(savePath, res.Model, metadata); err != nil {
					return err
				}
				a.logger.Info("fit: saved", "path", savePath)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file")
	f.StringVar(&savePath, "save", "", "write the trained parameters to this SafeTensors file")
	f.StringVar(&flags.Optimizer, "optimizer", "", "optimizer (sgd, adam)")
	f.IntVar(&flags.Iters, "iters", 0, "training iterations")
	f.IntVar(&flags.Samples, "samples", 0, "number of samples")
	f.IntVar(&flags.Hidden, "hidden", 0, "hidden units (0 fits a line)")
	f.Uint64Var(&flags.Seed, "seed", 0, "random seed")
	f.IntVar(&flags.Restarts, "restarts", 0, "independent training runs; the best one is kept")
	f.IntVar(&flags.LogEvery, "log-every", 0, "log the loss every N iterations (0 disables)")
	f.Float64Var(&flags.SGD.LR, "lr", 0, "learning rate of the selected optimizer")
	f.Float64Var(&flags.SGD.Momentum, "momentum", 0, "SGD momentum")
	return cmd
}

// applyFitFlags copies explicitly set flags over cfg.
func applyFitFlags(cmd *cobra.Command, cfg *fitConfig, flags fitConfig) {
	changed := cmd.Flags().Changed
	if changed("optimizer") {
		cfg.Optimizer = flags.Optimizer
	}
	if changed("iters") {
		cfg.Iters = flags.Iters
	}
	if changed("samples") {
		cfg.Samples = flags.Samples
	}
	if changed("hidden") {
		cfg.Hidden = flags.Hidden
	}
	if changed("seed") {
		cfg.Seed = flags.Seed
	}
	if changed("restarts") {
		cfg.Restarts = flags.Restarts
	}
	if changed("log-every") {
		cfg.LogEvery = flags.LogEvery
	}
	if changed("lr") {
		cfg.SGD.LR = flags.SGD.LR
		cfg.Adam.LR = flags.SGD.LR
	}
	if changed("momentum") {
		cfg.SGD.Momentum = flags.SGD.Momentum
	}
}

// syntheticData returns inputs of shape [n, 1] and their noisy targets.
func syntheticData(n int, hidden bool, rng *rand.Rand) (x, y *ndarray.Array) {
	x = ndarray.Rand(ndarray.Shape{n, 1}, rng)
	noise := ndarray.Rand(ndarray.Shape{n, 1}, rng)
	if !hidden {
		return x, ndarray.Add(ndarray.AddScalar(ndarray.MulScalar(x, 2), 5), noise)
	}
	return x, ndarray.Add(ndarray.Sin(ndarray.MulScalar(x, 2*math.Pi)), noise)
}

func newModel(g *autodiff.Graph, hidden int, rng *rand.Rand) nn.Module {
	if hidden == 0 {
		return nn.NewLinear(g, 1, 1, rng)
	}
	return nn.NewSequential(
		nn.NewLinear(g, 1, hidden, rng),
		nn.NewSigmoid(),
		nn.NewLinear(g, hidden, 1, rng),
	)
}

func newOptimizer(cfg fitConfig, params []*nn.Parameter) optim.Optimizer {
	if cfg.Optimizer == "adam" {
		return optim.NewAdam(params, cfg.Adam)
	}
	return optim.NewSGD(params, cfg.SGD)
}

// runFit trains a fresh model described by cfg. It stops early with the
// context's error if ctx is cancelled.
func runFit(ctx context.Context, cfg fitConfig, logger *slog.Logger) (fitResult, error) {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	g := autodiff.NewGraph(autodiff.WithLogger(logger))
	xs, ys := syntheticData(cfg.Samples, cfg.Hidden > 0, rng)
	x := g.NewNamedVariable(xs, "x")
	y := g.NewNamedVariable(ys, "y")

	model := newModel(g, cfg.Hidden, rng)
	optimizer := newOptimizer(cfg, model.Parameters())

	logger.Info("fit: start",
		"optimizer", cfg.Optimizer,
		"lr", optimizer.GetLR(),
		"iters", cfg.Iters,
		"samples", cfg.Samples,
		"hidden", cfg.Hidden)

	res := fitResult{Seed: cfg.Seed, Model: model}
	for i := range cfg.Iters {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrapf(err, "fit stopped at iteration %d", i)
		}

		loss := nn.MeanSquaredError(model.Forward(x), y)
		if i == 0 {
			res.InitialLoss = loss.Value().Item()
		}

		optimizer.ZeroGrad()
		if err := loss.Backward(); err != nil {
			return res, errors.Wrapf(err, "backward at iteration %d", i)
		}
		optimizer.Step()

		if cfg.LogEvery > 0 && i%cfg.LogEvery == 0 {
			logger.Info("fit: step", "iter", i, "loss", loss.Value().Item())
		}
	}

	err := g.WithoutGrad(func() error {
		res.FinalLoss = nn.MeanSquaredError(model.Forward(x), y).Value().Item()
		return nil
	})
	logger.Info("fit: done", "initial_loss", res.InitialLoss, "final_loss", res.FinalLoss)
	return res, err
}

// runFitRestarts runs cfg.Restarts independent fits concurrently, each on its
// own Graph, and returns the one with the lowest final loss. Ties go to the
// lower seed. The first failing run cancels the rest.
func runFitRestarts(ctx context.Context, cfg fitConfig, logger *slog.Logger) (fitResult, error) {
	if cfg.Restarts <= 1 {
		return runFit(ctx, cfg, logger)
	}

	var (
		mu   sync.Mutex
		best fitResult
		have bool
	)
	err := parallel.ForErr(ctx, cfg.Restarts, func(ctx context.Context, i int) error {
		run := cfg
		run.Seed = cfg.Seed + uint64(i)
		res, err := runFit(ctx, run, logger.With("restart", i))
		if err != nil {
			return errors.Wrapf(err, "restart %d", i)
		}

		mu.Lock()
		defer mu.Unlock()
		if !have || res.FinalLoss < best.FinalLoss ||
			(res.FinalLoss == best.FinalLoss && res.Seed < best.Seed) {
			best, have = res, true
		}
		return nil
	}, parallel.DefaultConfig())
	if err != nil {
		return fitResult{}, err
	}

	logger.Info("fit: best restart", "seed", best.Seed, "final_loss", best.FinalLoss)
	return best, nil
}

func printFitResult(w io.Writer, res fitResult) {
	fmt.Fprintf(w, "initial loss: %.6f\n", res.InitialLoss)
	fmt.Fprintf(w, "final loss:   %.6f\n", res.FinalLoss)
	if l, ok := res.Model.(*nn.Linear); ok {
		fmt.Fprintf(w, "W: %v\n", l.Weight().Value())
		fmt.Fprintf(w, "b: %v\n", l.Bias().Value())
	}
}
