package rain

import (
	"time"

	"dropbench/internal/core"
	pcore "dropbench/pkg/core"
)

// Grid is one double-buffered rain simulation. Its buffers are owned by the
// grid and only mutated by its own Advance, Perturb and Reset calls.
type Grid struct {
	size      core.Size
	dampening float32
	seed      int64

	bufA   []float32
	bufB   []float32
	output []byte
	frame  int

	rng    *pcore.RNG
	kernel Kernel
	timer  core.FrameTimer
}

// New returns a cleared grid running the CPU kernel.
func New(cfg Config) *Grid {
	return NewWithKernel(cfg, CPU)
}

// NewWithKernel returns a cleared grid whose diffusion pass runs on k.
func NewWithKernel(cfg Config, k Kernel) *Grid {
	size := core.Size{W: cfg.Width, H: cfg.Height}.Clamp(minSide)
	if cfg.Dampening <= 0 {
		cfg.Dampening = DefaultDampening
	}
	if k == nil {
		k = CPU
	}
	total := size.Cells()
	g := &Grid{
		size:      size,
		dampening: cfg.Dampening,
		seed:      cfg.Seed,
		bufA:      make([]float32, total),
		bufB:      make([]float32, total),
		output:    make([]byte, 4*total),
		rng:       pcore.NewRNG(cfg.Seed),
		kernel:    k,
	}
	g.Clear()
	return g
}

// Name returns the simulation identifier.
func (g *Grid) Name() string { return "rain" }

// Size reports the grid dimensions.
func (g *Grid) Size() core.Size { return g.size }

// Frame returns the number of completed ticks.
func (g *Grid) Frame() int { return g.frame }

// Pixels exposes the RGBA output of the last completed tick.
func (g *Grid) Pixels() []byte { return g.output }

// Dampening returns the decay constant applied by the diffusion pass.
func (g *Grid) Dampening() float32 { return g.dampening }

// SetDampening changes the decay constant. Call it between ticks only.
func (g *Grid) SetDampening(d float32) {
	if d > 0 {
		g.dampening = d
	}
}

// LastUpdate returns how long the most recent Advance took.
func (g *Grid) LastUpdate() time.Duration { return g.timer.Elapsed() }

// Clear fills both buffers with zero and the output with opaque black.
func (g *Grid) Clear() {
	for i := range g.bufA {
		g.bufA[i] = 0
		g.bufB[i] = 0
	}
	for i := 0; i < len(g.output); i += 4 {
		g.output[i+0] = 0
		g.output[i+1] = 0
		g.output[i+2] = 0
		g.output[i+3] = 255
	}
}

// Reset clears the grid, rewinds the frame counter and reseeds the generator.
// A zero seed reuses the seed the grid was built with.
func (g *Grid) Reset(seed int64) {
	if seed == 0 {
		seed = g.seed
	}
	g.seed = seed
	g.rng.Seed(seed)
	g.frame = 0
	g.Clear()
}

// Buffers returns the buffers that the next Advance will treat as current and
// previous.
func (g *Grid) Buffers() (current, previous []float32) {
	if g.frame&1 == 1 {
		return g.bufB, g.bufA
	}
	return g.bufA, g.bufB
}

// Advance moves the grid from frame to frame+1: one rain drop lands in the
// previous buffer, then the diffusion pass rewrites current and the output.
func (g *Grid) Advance() {
	g.advance(true)
}

func (g *Grid) advance(withRain bool) {
	if g.bufA == nil {
		return
	}
	g.timer.Start()
	if withRain {
		g.rain()
	}
	current, previous := g.Buffers()
	g.frame++
	g.kernel.Diffuse(g.size, g.dampening, previous, current, g.output)
	g.timer.Stop()
}

func (g *Grid) rain() {
	x := g.rng.IntRange(1, g.size.W-1)
	y := g.rng.IntRange(1, g.size.H-1)
	_, previous := g.Buffers()
	previous[g.size.Index(x, y)] = Drop
}

// Perturb drops a value into the previous buffer at (x, y). Coordinates
// outside the open range (0, W) x (0, H) are ignored. It reports whether the
// drop landed.
func (g *Grid) Perturb(x, y int) bool {
	if g.bufA == nil {
		return false
	}
	if x <= 0 || x >= g.size.W || y <= 0 || y >= g.size.H {
		return false
	}
	_, previous := g.Buffers()
	previous[g.size.Index(x, y)] = Drop
	return true
}

// Close releases the grid's buffers. Advance and Perturb become no-ops.
func (g *Grid) Close() {
	g.bufA = nil
	g.bufB = nil
	g.output = nil
}

var _ core.Sim = (*Grid)(nil)
