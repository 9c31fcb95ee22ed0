package dispatch

import (
	"sync"

	"dropbench/internal/core"
)

// Jobs is a fixed pool of long-lived workers pulling closures off a channel.
type Jobs struct {
	jobs     chan func()
	workers  int
	running  sync.WaitGroup
	inflight sync.WaitGroup
	once     sync.Once
}

// NewJobs starts a pool with the given number of workers.
func NewJobs(workers int) *Jobs {
	p := &Jobs{jobs: make(chan func()), workers: Workers(workers)}
	for i := 0; i < p.workers; i++ {
		p.running.Add(1)
		go func() {
			defer p.running.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

// Name identifies the strategy.
func (*Jobs) Name() string { return "jobs" }

// Submit queues fn on the pool and returns a Handle for it. Submit does not
// block on busy workers.
func (p *Jobs) Submit(fns ...func()) Handle {
	if len(fns) == 0 {
		return Done
	}
	batch := &sync.WaitGroup{}
	batch.Add(len(fns))
	p.inflight.Add(len(fns))
	go func() {
		for _, fn := range fns {
			fn := fn
			p.jobs <- func() {
				defer p.inflight.Done()
				defer batch.Done()
				fn()
			}
		}
	}()
	return batch
}

// Dispatch wraps each task in a closure and submits the lot.
func (p *Jobs) Dispatch(tasks []core.Advancer) Handle {
	fns := make([]func(), len(tasks))
	for i, t := range tasks {
		fns[i] = t.Advance
	}
	return p.Submit(fns...)
}

// Close drains outstanding jobs and stops the workers.
func (p *Jobs) Close() {
	p.once.Do(func() {
		p.inflight.Wait()
		close(p.jobs)
		p.running.Wait()
	})
}

func init() {
	Register("jobs", func(workers int) Dispatcher { return NewJobs(workers) })
}
