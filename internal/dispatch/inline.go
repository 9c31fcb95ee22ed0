package dispatch

import "dropbench/internal/core"

// Inline runs every task on the calling goroutine inside Dispatch. It is the
// sequential baseline the parallel strategies are compared against.
type Inline struct{}

// NewInline returns the sequential dispatcher.
func NewInline() *Inline { return &Inline{} }

// Name identifies the strategy.
func (*Inline) Name() string { return "inline" }

// Dispatch advances every task before returning.
func (*Inline) Dispatch(tasks []core.Advancer) Handle {
	for _, t := range tasks {
		t.Advance()
	}
	return Done
}

// Close is a no-op.
func (*Inline) Close() {}

func init() {
	Register("inline", func(int) Dispatcher { return NewInline() })
}
