package autodiff

import (
	"container/heap"
	"runtime"

	"github.com/pkg/errors"

	"github.com/born-ml/dezero/internal/ndarray"
)

type backwardConfig struct {
	retainGrad  bool
	createGraph bool
	onVisit     func(*Function)
}

// BackwardOption configures a backward pass.
type BackwardOption func(*backwardConfig)

// RetainGrad keeps the gradients of intermediate Variables. By default they
// are released once the Function that produced them has consumed them.
func RetainGrad() BackwardOption {
	return func(c *backwardConfig) {
		c.retainGrad = true
	}
}

// CreateGraph records the backward computation itself, so that the resulting
// gradients have producers and can be differentiated again.
func CreateGraph() BackwardOption {
	return func(c *backwardConfig) {
		c.createGraph = true
	}
}

// OnVisit registers fn to be called for every Function, in the order the
// backward pass processes them.
func OnVisit(fn func(*Function)) BackwardOption {
	return func(c *backwardConfig) {
		c.onVisit = fn
	}
}

// Backward computes the gradient of v with respect to every Variable it
// depends on.
//
// Algorithm:
//  1. Seed v's gradient with ones unless the caller has set one
//  2. Pop the pending Function with the highest rank
//  3. Run its backward rule on the gradients of its outputs
//  4. Accumulate the results into its inputs, queueing their producers
//
// Ranks grow strictly along every edge, so a Function is only processed once
// every Function that can contribute to its outputs' gradients is done.
// Ordering among Functions of equal rank is unspecified.
//
// Calling Backward on a Variable without producer only seeds its gradient.
func (v *Variable) Backward(opts ...BackwardOption) error {
	var cfg backwardConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	g := v.graph
	if v.grad == nil {
		v.grad = newVariable(g, ndarray.OnesLike(v.value))
	}
	if v.producer == nil {
		return nil
	}

	g.logger.Debug("backward: start",
		"shape", v.value.Shape(),
		"rank", v.rank,
		"retain_grad", cfg.retainGrad,
		"create_graph", cfg.createGraph)

	queue := &functionQueue{}
	seen := make(map[*Function]struct{})
	enqueue := func(f *Function) {
		if _, ok := seen[f]; ok {
			return
		}
		seen[f] = struct{}{}
		heap.Push(queue, f)
	}
	enqueue(v.producer)

	visited := 0
	for queue.Len() > 0 {
		f := heap.Pop(queue).(*Function)
		visited++

		g.logger.Debug("backward: visit", "function", f.Name(), "rank", f.rank)
		if cfg.onVisit != nil {
			cfg.onVisit(f)
		}

		outputs, err := f.resolveOutputs()
		if err != nil {
			return err
		}

		if err := g.backwardStep(f, outputs, cfg.createGraph); err != nil {
			return err
		}

		for _, in := range f.inputs {
			if in.producer != nil {
				enqueue(in.producer)
			}
		}

		if !cfg.retainGrad {
			for _, out := range outputs {
				out.grad = nil
			}
		}
	}

	g.logger.Debug("backward: done", "functions", visited)

	// v is only weakly referenced by its producer.
	runtime.KeepAlive(v)
	return nil
}

// backwardStep runs one backward rule and accumulates the input gradients.
// Recording is forced to createGraph for its duration and restored on every
// exit path.
func (g *Graph) backwardStep(f *Function, outputs []*Variable, createGraph bool) error {
	defer g.SetRecording(createGraph)()

	gys := make([]*Variable, len(outputs))
	for i, out := range outputs {
		if out.grad == nil {
			gys[i] = newVariable(g, ndarray.ZerosLike(out.value))
			continue
		}
		gys[i] = out.grad
	}

	gxs := f.op.Backward(f.inputs, outputs, gys)
	if len(gxs) != len(f.inputs) {
		return errors.Wrapf(ErrBackwardArity, "%s: %d inputs, %d gradients", f.Name(), len(f.inputs), len(gxs))
	}

	for i, in := range f.inputs {
		if in.grad == nil {
			in.grad = gxs[i]
		} else {
			in.grad = Add(in.grad, gxs[i])
		}
	}
	return nil
}

// functionQueue is a max-heap of Functions ordered by rank.
type functionQueue []*Function

func (q functionQueue) Len() int           { return len(q) }
func (q functionQueue) Less(i, j int) bool { return q[i].rank > q[j].rank }
func (q functionQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *functionQueue) Push(x any) {
	*q = append(*q, x.(*Function))
}

func (q *functionQueue) Pop() any {
	old := *q
	n := len(old)
	f := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return f
}
