package rain

import "dropbench/internal/core"

// Kernel performs the diffusion pass of a tick. It reads previous, and writes
// current and out for every interior cell; border cells are left alone. out
// holds four RGBA bytes per cell.
type Kernel interface {
	Diffuse(size core.Size, dampening float32, previous, current []float32, out []byte)
}

// CPU is the reference Kernel. It runs on the calling goroutine.
var CPU Kernel = cpuKernel{}

type cpuKernel struct{}

func (cpuKernel) Diffuse(size core.Size, dampening float32, previous, current []float32, out []byte) {
	width, height := size.W, size.H
	for y := 1; y < height-1; y++ {
		yi := y * width
		for x := 1; x < width-1; x++ {
			i := x + yi
			// Eight neighbours summed, then divided by four.
			val := dampening * ((previous[i-1]+
				previous[i+1]+
				previous[i-width]+
				previous[i+width]+
				previous[i-width-1]+
				previous[i-width+1]+
				previous[i+width-1]+
				previous[i+width+1])/4 -
				current[i])
			current[i] = val

			b := Quantize(val)
			base := i * 4
			out[base+0] = b
			out[base+1] = b
			out[base+2] = b
			out[base+3] = 255
		}
	}
}

// Quantize clamps val to [0, 255] and truncates it to a byte. NaN maps to 0.
func Quantize(val float32) uint8 {
	if !(val > 0) {
		return 0
	}
	if val >= 255 {
		return 255
	}
	return uint8(val)
}
