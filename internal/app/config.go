package app

import (
	"errors"
	"flag"
	"fmt"
	"slices"
	"strings"

	"dropbench/internal/accel"
	"dropbench/internal/core"
	"dropbench/internal/dispatch"
	"dropbench/internal/pool"
	"dropbench/internal/sims/rain"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the command-line parameters shared by every binary.
type Config struct {
	Grids     int
	Width     int
	Height    int
	Dampening float64
	Seed      int64
	Strategy  string
	Workers   int
	Enabled   bool
	Scale     int
	TPS       int
	Accel     string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Grids:     4,
		Width:     rain.DefaultWidth,
		Height:    rain.DefaultHeight,
		Dampening: rain.DefaultDampening,
		Seed:      42,
		Strategy:  "tasks",
		Enabled:   true,
		Scale:     1,
		TPS:       60,
		Accel:     "cpu",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Grids, "grids", c.Grids, "number of independent grids")
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.Float64Var(&c.Dampening, "dampening", c.Dampening, "ripple dampening factor in (0, 1]")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "master seed for the per-grid generators")
	fs.StringVar(&c.Strategy, "strategy", c.Strategy, "dispatch strategy: "+strings.Join(dispatch.Names(), ", "))
	fs.IntVar(&c.Workers, "workers", c.Workers, "worker count for pooled strategies (0 = GOMAXPROCS)")
	fs.BoolVar(&c.Enabled, "enabled", c.Enabled, "advance the grids every tick")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Accel, "accel", c.Accel, "diffusion kernel: cpu or opencl")
}

// Validate reports the first out-of-range field.
func (c *Config) Validate() error {
	switch {
	case c.Grids < 1:
		return fmt.Errorf("%w: grids must be positive, got %d", ErrInvalidConfig, c.Grids)
	case c.Width < 3 || c.Height < 3:
		return fmt.Errorf("%w: grid size must be at least 3x3, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case !(c.Dampening > 0 && c.Dampening <= 1):
		return fmt.Errorf("%w: dampening must be in (0, 1], got %g", ErrInvalidConfig, c.Dampening)
	case !slices.Contains(dispatch.Names(), c.Strategy):
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, dispatch.ErrUnknownStrategy, c.Strategy)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case c.Scale < 1:
		return fmt.Errorf("%w: scale must be positive, got %d", ErrInvalidConfig, c.Scale)
	case c.TPS < 1:
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalidConfig, c.TPS)
	case c.Accel != "cpu" && c.Accel != "opencl":
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, accel.ErrUnknownBackend, c.Accel)
	}
	return nil
}

// Size returns the configured grid dimensions.
func (c *Config) Size() core.Size { return core.Size{W: c.Width, H: c.Height} }

// PoolConfig converts the flags into a pool configuration without a kernel.
func (c *Config) PoolConfig() pool.Config {
	return pool.Config{
		Grids: c.Grids,
		Grid: rain.Config{
			Width:     c.Width,
			Height:    c.Height,
			Dampening: float32(c.Dampening),
			Seed:      c.Seed,
		},
	}
}

// Open validates the configuration and builds a ready driver. Closing the
// driver releases the dispatcher, the grids and the kernel.
func (c *Config) Open() (*pool.Driver, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	backend, err := accel.Open(c.Accel, c.Size())
	if err != nil {
		return nil, err
	}
	disp, err := dispatch.New(c.Strategy, c.Workers)
	if err != nil {
		backend.Close()
		return nil, err
	}
	pc := c.PoolConfig()
	pc.Kernel = backend
	d := pool.NewDriver(pool.New(pc), disp)
	d.SetEnabled(c.Enabled)
	return d, nil
}
