//go:build !opencl

package accel

import (
	"errors"

	"dropbench/internal/core"
	"dropbench/internal/sims/rain"
)

// ErrOpenCLDisabled reports a build without the opencl tag.
var ErrOpenCLDisabled = errors.New("OpenCL support is not enabled; rebuild with -tags opencl")

// OpenCL is unavailable in this build.
type OpenCL struct{}

// NewOpenCL always fails without the opencl build tag.
func NewOpenCL(core.Size) (*OpenCL, error) {
	return nil, ErrOpenCLDisabled
}

// Diffuse falls back to the CPU kernel.
func (*OpenCL) Diffuse(size core.Size, dampening float32, previous, current []float32, out []byte) {
	rain.CPU.Diffuse(size, dampening, previous, current, out)
}

// Name identifies the backend.
func (*OpenCL) Name() string { return "opencl" }

// DeviceName is empty in this build.
func (*OpenCL) DeviceName() string { return "" }

// Err reports why the device path is unavailable.
func (*OpenCL) Err() error { return ErrOpenCLDisabled }

// Close is a no-op.
func (*OpenCL) Close() {}
