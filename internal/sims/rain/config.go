package rain

import "strconv"

const (
	// DefaultWidth and DefaultHeight match the reference surface size.
	DefaultWidth  = 512
	DefaultHeight = 512
	// DefaultDampening is the decay applied to every diffusion result.
	DefaultDampening = 0.99
	// Drop is the value written into the previous buffer by rain and clicks.
	Drop = 4096

	// minSide keeps at least one interior cell so rain always has a target.
	minSide = 3
)

// Config controls a single rain grid.
type Config struct {
	Width     int
	Height    int
	Dampening float32
	Seed      int64
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Dampening: DefaultDampening,
		Seed:      1,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["dampening"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.Dampening = float32(parsed)
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}
