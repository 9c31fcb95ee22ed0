// Package accel selects the kernel that runs the diffusion pass of every grid.
package accel

import (
	"errors"
	"fmt"

	"dropbench/internal/core"
	"dropbench/internal/sims/rain"
)

// Backend is a diffusion kernel that may hold device resources.
type Backend interface {
	rain.Kernel
	Name() string
	Close()
}

// ErrUnknownBackend is returned for names other than "cpu" and "opencl".
var ErrUnknownBackend = errors.New("unknown accelerator backend")

// Open returns the named backend sized for grids of the given dimensions.
func Open(name string, size core.Size) (Backend, error) {
	switch name {
	case "", "cpu":
		return cpuBackend{}, nil
	case "opencl":
		k, err := NewOpenCL(size)
		if err != nil {
			return nil, fmt.Errorf("opening opencl backend: %w", err)
		}
		return k, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, name)
	}
}

type cpuBackend struct{}

func (cpuBackend) Diffuse(size core.Size, dampening float32, previous, current []float32, out []byte) {
	rain.CPU.Diffuse(size, dampening, previous, current, out)
}

func (cpuBackend) Name() string { return "cpu" }

func (cpuBackend) Close() {}
