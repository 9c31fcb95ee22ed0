package dispatch

import (
	"sync"

	"dropbench/internal/core"
)

// Tasks starts a fresh goroutine per task and joins them with a WaitGroup.
type Tasks struct {
	inflight sync.WaitGroup
}

// NewTasks returns a goroutine-per-task dispatcher.
func NewTasks() *Tasks { return &Tasks{} }

// Name identifies the strategy.
func (*Tasks) Name() string { return "tasks" }

// Dispatch launches one goroutine per task.
func (d *Tasks) Dispatch(tasks []core.Advancer) Handle {
	if len(tasks) == 0 {
		return Done
	}
	batch := &sync.WaitGroup{}
	batch.Add(len(tasks))
	d.inflight.Add(len(tasks))
	for _, t := range tasks {
		go func(t core.Advancer) {
			defer d.inflight.Done()
			defer batch.Done()
			t.Advance()
		}(t)
	}
	return batch
}

// Close waits for every goroutine started so far.
func (d *Tasks) Close() { d.inflight.Wait() }

func init() {
	Register("tasks", func(int) Dispatcher { return NewTasks() })
}
