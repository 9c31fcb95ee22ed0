package dispatch

import (
	"sync"

	"dropbench/internal/core"
)

// Native keeps a set of workers parked on a condition variable. Each Dispatch
// hands worker i every task whose index is i modulo the worker count, bumps
// the generation and broadcasts; the last worker to finish wakes the waiters.
type Native struct {
	mu       sync.Mutex
	cond     *sync.Cond
	workers  int
	step     int
	pending  int
	closed   bool
	assigned [][]core.Advancer
	exited   sync.WaitGroup
}

// NewNative starts the barrier workers.
func NewNative(workers int) *Native {
	n := &Native{workers: Workers(workers)}
	n.cond = sync.NewCond(&n.mu)
	n.assigned = make([][]core.Advancer, n.workers)
	for i := 0; i < n.workers; i++ {
		n.exited.Add(1)
		go n.workerLoop(i)
	}
	return n
}

// Name identifies the strategy.
func (*Native) Name() string { return "native" }

func (n *Native) workerLoop(index int) {
	defer n.exited.Done()
	lastStep := 0
	n.mu.Lock()
	for {
		for n.step == lastStep && !n.closed {
			n.cond.Wait()
		}
		if n.step == lastStep {
			n.mu.Unlock()
			return
		}
		lastStep = n.step
		tasks := n.assigned[index]
		n.mu.Unlock()

		for _, t := range tasks {
			t.Advance()
		}

		n.mu.Lock()
		n.pending--
		if n.pending == 0 {
			n.cond.Broadcast()
		}
	}
}

// Dispatch publishes a new generation of work. If the previous generation is
// still running it is joined first. After Close the batch runs inline.
func (n *Native) Dispatch(tasks []core.Advancer) Handle {
	if len(tasks) == 0 {
		return Done
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for n.pending > 0 {
		n.cond.Wait()
	}
	if n.closed {
		for _, t := range tasks {
			t.Advance()
		}
		return Done
	}
	for i := range n.assigned {
		n.assigned[i] = n.assigned[i][:0]
	}
	for idx, t := range tasks {
		w := idx % n.workers
		n.assigned[w] = append(n.assigned[w], t)
	}
	n.pending = n.workers
	n.step++
	n.cond.Broadcast()
	return &barrierHandle{n: n, step: n.step}
}

// Close joins the current generation and stops the workers.
func (n *Native) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	for n.pending > 0 {
		n.cond.Wait()
	}
	n.closed = true
	n.cond.Broadcast()
	n.mu.Unlock()
	n.exited.Wait()
}

type barrierHandle struct {
	n    *Native
	step int
}

func (h *barrierHandle) Wait() {
	h.n.mu.Lock()
	for h.n.step == h.step && h.n.pending > 0 {
		h.n.cond.Wait()
	}
	h.n.mu.Unlock()
}

func init() {
	Register("native", func(workers int) Dispatcher { return NewNative(workers) })
}
