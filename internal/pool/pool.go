// Package pool owns a fixed set of rain grids and advances them once per tick.
package pool

import (
	"fmt"

	"dropbench/internal/core"
	"dropbench/internal/dispatch"
	"dropbench/internal/sims/rain"
	pcore "dropbench/pkg/core"
)

// Config controls the size and contents of a Pool.
type Config struct {
	// Grids is the number of independent grids, normally one per display surface.
	Grids int
	// Grid configures every grid. Its Seed is the master seed from which each
	// grid's own seed is derived.
	Grid rain.Config
	// Kernel runs the diffusion pass; nil selects rain.CPU. The pool owns it
	// and closes it in Close when it has a Close method.
	Kernel rain.Kernel
}

// DefaultConfig returns a four-grid pool at the reference grid size.
func DefaultConfig() Config {
	return Config{Grids: 4, Grid: rain.DefaultConfig()}
}

// Pool is an ordered, fixed-size sequence of grids. It never touches grid
// contents itself; all mutation goes through the grids' own methods.
type Pool struct {
	cfg   Config
	grids []*rain.Grid
	tasks []core.Advancer
	seeds []int64
}

// New builds and clears every grid.
func New(cfg Config) *Pool {
	if cfg.Grids < 1 {
		cfg.Grids = 1
	}
	seeds := pcore.NewRNG(cfg.Grid.Seed).Seeds(cfg.Grids)
	p := &Pool{
		cfg:   cfg,
		grids: make([]*rain.Grid, cfg.Grids),
		tasks: make([]core.Advancer, cfg.Grids),
		seeds: seeds,
	}
	for i := range p.grids {
		gc := cfg.Grid
		gc.Seed = seeds[i]
		p.grids[i] = rain.NewWithKernel(gc, cfg.Kernel)
		p.tasks[i] = p.grids[i]
	}
	return p
}

// Len returns the number of grids.
func (p *Pool) Len() int { return len(p.grids) }

// Grid returns the grid at index i.
func (p *Pool) Grid(i int) *rain.Grid { return p.grids[i] }

// Size returns the dimensions shared by every grid.
func (p *Pool) Size() core.Size {
	if len(p.grids) == 0 {
		return core.Size{}
	}
	return p.grids[0].Size()
}

// Seeds returns the per-grid seeds derived from the master seed.
func (p *Pool) Seeds() []int64 { return p.seeds }

// AdvanceAll advances every grid on the calling goroutine.
func (p *Pool) AdvanceAll() {
	for _, g := range p.grids {
		g.Advance()
	}
}

// Dispatch starts one advance per grid on d. The grids must not be read or
// perturbed until the returned handle has been waited on.
func (p *Pool) Dispatch(d dispatch.Dispatcher) dispatch.Handle {
	return d.Dispatch(p.tasks)
}

// Render hands each grid's RGBA output to fn. It must not run concurrently
// with a tick.
func (p *Pool) Render(fn func(index int, pixels []byte)) {
	for i, g := range p.grids {
		fn(i, g.Pixels())
	}
}

// Perturb drops a value into grid index at (x, y). Unknown indices and
// out-of-range coordinates are ignored.
func (p *Pool) Perturb(index, x, y int) bool {
	if index < 0 || index >= len(p.grids) {
		return false
	}
	return p.grids[index].Perturb(x, y)
}

// Frames returns the frame counter of every grid.
func (p *Pool) Frames() []int {
	frames := make([]int, len(p.grids))
	for i, g := range p.grids {
		frames[i] = g.Frame()
	}
	return frames
}

// Labels describes every grid as "#index f<frame> <ms>", using the duration
// of its last advance.
func (p *Pool) Labels() []string {
	labels := make([]string, len(p.grids))
	for i, g := range p.grids {
		labels[i] = fmt.Sprintf("#%d f%d %sms", i, g.Frame(), core.FormatMillis(g.LastUpdate()))
	}
	return labels
}

// Reset reseeds every grid from a new master seed. Zero keeps the current one.
func (p *Pool) Reset(seed int64) {
	if seed != 0 {
		p.cfg.Grid.Seed = seed
	}
	p.seeds = pcore.NewRNG(p.cfg.Grid.Seed).Seeds(len(p.grids))
	for i, g := range p.grids {
		g.Reset(p.seeds[i])
	}
}

// Parameters reports the pool configuration for display.
func (p *Pool) Parameters() core.ParameterSnapshot {
	size := p.Size()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Pool",
		Params: []core.Parameter{
			core.IntParam("grids", "Grids", len(p.grids)),
			core.TextParam("size", "Size", fmt.Sprintf("%dx%d", size.W, size.H)),
			core.FloatParam("dampening", "Dampening", float64(p.cfg.Grid.Dampening)),
			core.Int64Param("seed", "Seed", p.cfg.Grid.Seed),
		},
	}}}
}

// SetFloatParameter updates the dampening of every grid. Call it between ticks.
func (p *Pool) SetFloatParameter(key string, value float64) bool {
	if key != "dampening" || value <= 0 || value > 1 {
		return false
	}
	p.cfg.Grid.Dampening = float32(value)
	for _, g := range p.grids {
		g.SetDampening(float32(value))
	}
	return true
}

// Close releases every grid and the kernel.
func (p *Pool) Close() {
	for _, g := range p.grids {
		g.Close()
	}
	if c, ok := p.cfg.Kernel.(interface{ Close() }); ok {
		c.Close()
		p.cfg.Kernel = nil
	}
}
