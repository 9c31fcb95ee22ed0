//go:build opencl

package accel

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"dropbench/internal/core"
	"dropbench/internal/sims/rain"
)

const diffuseKernelSource = `__kernel void rain_diffuse(
    const int width,
    const int height,
    const float damp,
    __global const float* previous,
    __global float* current,
    __global uchar* out)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    int x = idx % width;
    int y = idx / width;
    if (x <= 0 || x >= width - 1 || y <= 0 || y >= height - 1) {
        return;
    }
    float sum = previous[idx - 1] + previous[idx + 1]
        + previous[idx - width] + previous[idx + width]
        + previous[idx - width - 1] + previous[idx - width + 1]
        + previous[idx + width - 1] + previous[idx + width + 1];
    float val = damp * (sum / 4.0f - current[idx]);
    current[idx] = val;
    uchar b = 0;
    if (val >= 255.0f) {
        b = 255;
    } else if (val > 0.0f) {
        b = (uchar)val;
    }
    int base = idx * 4;
    out[base] = b;
    out[base + 1] = b;
    out[base + 2] = b;
    out[base + 3] = 255;
}`

// OpenCL runs the diffusion pass on an OpenCL device. One instance is shared
// by every grid of a pool; calls are serialised on its command queue.
type OpenCL struct {
	mu         sync.Mutex
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	prevBuf    *cl.MemObject
	currBuf    *cl.MemObject
	outBuf     *cl.MemObject
	size       core.Size
	deviceName string
	err        error
	logOnce    sync.Once
}

func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

// NewOpenCL compiles the diffusion kernel and allocates device buffers for
// grids of the given size.
func NewOpenCL(size core.Size) (*OpenCL, error) {
	device, err := pickDevice()
	if err != nil {
		return nil, err
	}
	k := &OpenCL{size: size, deviceName: device.Name()}
	if err := k.init(device); err != nil {
		k.Close()
		return nil, err
	}
	log.Printf("OpenCL diffusion enabled (device: %s)", k.deviceName)
	return k, nil
}

func (k *OpenCL) init(device *cl.Device) error {
	var err error
	if k.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return fmt.Errorf("creating OpenCL context: %w", err)
	}
	if k.queue, err = k.context.CreateCommandQueue(device, 0); err != nil {
		return fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if k.program, err = k.context.CreateProgramWithSource([]string{diffuseKernelSource}); err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := k.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		if buildErr, ok := err.(cl.BuildError); ok {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}
	if k.kernel, err = k.program.CreateKernel("rain_diffuse"); err != nil {
		return fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	cells := k.size.Cells()
	floatBytes := cells * int(unsafe.Sizeof(float32(0)))
	if k.prevBuf, err = k.context.CreateEmptyBuffer(cl.MemReadOnly, floatBytes); err != nil {
		return fmt.Errorf("allocating previous buffer: %w", err)
	}
	if k.currBuf, err = k.context.CreateEmptyBuffer(cl.MemReadWrite, floatBytes); err != nil {
		return fmt.Errorf("allocating current buffer: %w", err)
	}
	if k.outBuf, err = k.context.CreateEmptyBuffer(cl.MemReadWrite, 4*cells); err != nil {
		return fmt.Errorf("allocating output buffer: %w", err)
	}
	return nil
}

// Name identifies the backend.
func (k *OpenCL) Name() string { return "opencl" }

// DeviceName returns the name of the selected device.
func (k *OpenCL) DeviceName() string { return k.deviceName }

// Err returns the first device error, after which every call uses the CPU.
func (k *OpenCL) Err() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.err
}

// Diffuse uploads both buffers and the output, runs the kernel and reads the
// results back. Grids of another size, and any call after a device error, run
// on the CPU kernel instead.
func (k *OpenCL) Diffuse(size core.Size, dampening float32, previous, current []float32, out []byte) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.err == nil && size != k.size {
		k.err = fmt.Errorf("grid size %dx%d does not match device buffers %dx%d", size.W, size.H, k.size.W, k.size.H)
	}
	if k.err == nil {
		k.err = k.run(dampening, previous, current, out)
	}
	if k.err != nil {
		k.logOnce.Do(func() { log.Printf("OpenCL diffusion disabled: %v", k.err) })
		rain.CPU.Diffuse(size, dampening, previous, current, out)
	}
}

func (k *OpenCL) run(dampening float32, previous, current []float32, out []byte) error {
	if _, err := k.queue.EnqueueWriteBufferFloat32(k.prevBuf, false, 0, previous, nil); err != nil {
		return fmt.Errorf("writing previous buffer: %w", err)
	}
	if _, err := k.queue.EnqueueWriteBufferFloat32(k.currBuf, false, 0, current, nil); err != nil {
		return fmt.Errorf("writing current buffer: %w", err)
	}
	if _, err := k.queue.EnqueueWriteBuffer(k.outBuf, false, 0, len(out), unsafe.Pointer(&out[0]), nil); err != nil {
		return fmt.Errorf("writing output buffer: %w", err)
	}
	if err := k.kernel.SetArgs(
		int32(k.size.W),
		int32(k.size.H),
		dampening,
		k.prevBuf,
		k.currBuf,
		k.outBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := k.queue.EnqueueNDRangeKernel(k.kernel, nil, []int{k.size.Cells()}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := k.queue.EnqueueReadBufferFloat32(k.currBuf, true, 0, current, nil); err != nil {
		return fmt.Errorf("reading current buffer: %w", err)
	}
	if _, err := k.queue.EnqueueReadBuffer(k.outBuf, true, 0, len(out), unsafe.Pointer(&out[0]), nil); err != nil {
		return fmt.Errorf("reading output buffer: %w", err)
	}
	return nil
}

// Close releases every device object.
func (k *OpenCL) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.outBuf != nil {
		k.outBuf.Release()
		k.outBuf = nil
	}
	if k.currBuf != nil {
		k.currBuf.Release()
		k.currBuf = nil
	}
	if k.prevBuf != nil {
		k.prevBuf.Release()
		k.prevBuf = nil
	}
	if k.kernel != nil {
		k.kernel.Release()
		k.kernel = nil
	}
	if k.program != nil {
		k.program.Release()
		k.program = nil
	}
	if k.queue != nil {
		k.queue.Release()
		k.queue = nil
	}
	if k.context != nil {
		k.context.Release()
		k.context = nil
	}
	if k.err == nil {
		k.err = errors.New("OpenCL backend closed")
	}
}
