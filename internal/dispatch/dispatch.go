// Package dispatch fans per-grid work out across goroutines and back in.
//
// Every strategy follows the same contract: Dispatch starts one unit of work
// per task and returns at once; the returned Handle's Wait blocks until all of
// them have finished. Tasks must be independent of each other.
package dispatch

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	"dropbench/internal/core"
)

// Handle represents every unit started by one Dispatch call.
type Handle interface {
	// Wait blocks until the whole batch has completed. It may be called more
	// than once and from any goroutine.
	Wait()
}

// Dispatcher runs batches of independent tasks.
type Dispatcher interface {
	Name() string
	Dispatch(tasks []core.Advancer) Handle
	// Close waits for in-flight batches and releases any workers. Further
	// Dispatch calls are not allowed.
	Close()
}

// Factory constructs a Dispatcher using at most the given number of workers.
type Factory func(workers int) Dispatcher

// ErrUnknownStrategy is returned when a strategy name is not registered.
var ErrUnknownStrategy = errors.New("unknown dispatch strategy")

var strategies = map[string]Factory{}

// Register adds a dispatcher factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	strategies[name] = f
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs the named strategy. A non-positive worker count selects
// GOMAXPROCS.
func New(name string, workers int) (Dispatcher, error) {
	f, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, name)
	}
	return f(Workers(workers)), nil
}

// Workers normalises a requested worker count.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

type doneHandle struct{}

func (doneHandle) Wait() {}

// Done is a Handle for a batch that has already completed.
var Done Handle = doneHandle{}

type chanHandle struct {
	done <-chan struct{}
}

func (h chanHandle) Wait() { <-h.done }
