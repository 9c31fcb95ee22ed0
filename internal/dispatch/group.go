package dispatch

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"dropbench/internal/core"
)

// Group runs each batch through an errgroup capped at the worker count.
type Group struct {
	limit    int
	inflight sync.WaitGroup
}

// NewGroup returns an errgroup-backed dispatcher.
func NewGroup(workers int) *Group {
	return &Group{limit: Workers(workers)}
}

// Name identifies the strategy.
func (*Group) Name() string { return "group" }

// Dispatch feeds the batch to a fresh errgroup from a helper goroutine, since
// Go blocks once the limit is reached.
func (d *Group) Dispatch(tasks []core.Advancer) Handle {
	if len(tasks) == 0 {
		return Done
	}
	done := make(chan struct{})
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		defer close(done)
		var g errgroup.Group
		g.SetLimit(d.limit)
		for _, t := range tasks {
			t := t
			g.Go(func() error {
				t.Advance()
				return nil
			})
		}
		_ = g.Wait()
	}()
	return chanHandle{done: done}
}

// Close waits for every batch started so far.
func (d *Group) Close() { d.inflight.Wait() }

func init() {
	Register("group", func(workers int) Dispatcher { return NewGroup(workers) })
}
