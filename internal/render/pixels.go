package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"dropbench/internal/core"
)

// DefaultGIFDelay is the delay between GIF frames in hundredths of a second.
const DefaultGIFDelay = 2

// ToImage wraps a grid output buffer as an image without copying it. The image
// is only valid until the grid advances again.
func ToImage(size core.Size, pixels []byte) *image.RGBA {
	return &image.RGBA{
		Pix:    pixels,
		Stride: 4 * size.W,
		Rect:   image.Rect(0, 0, size.W, size.H),
	}
}

// NewMosaic allocates an opaque black image large enough for every tile of l.
func NewMosaic(l Layout) *image.RGBA {
	w, h := l.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

// Compose copies one grid output into its tile of the mosaic, repeating each
// cell Scale times in both directions.
func Compose(dst *image.RGBA, l Layout, index int, pixels []byte) {
	if index < 0 || index >= l.Count || len(pixels) != 4*l.Tile.Cells() {
		return
	}
	ox, oy := l.Origin(index)
	for y := 0; y < l.Tile.H; y++ {
		for x := 0; x < l.Tile.W; x++ {
			src := pixels[4*(y*l.Tile.W+x) : 4*(y*l.Tile.W+x)+4]
			for dy := 0; dy < l.Scale; dy++ {
				row := dst.PixOffset(ox+x*l.Scale, oy+y*l.Scale+dy)
				for dx := 0; dx < l.Scale; dx++ {
					copy(dst.Pix[row+4*dx:row+4*dx+4], src)
				}
			}
		}
	}
}

// WritePNG encodes img to path, creating parent directories as needed.
func WritePNG(path string, img image.Image) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("could not create image directory: %w", err)
	}
	return nil
}

// GrayPalette holds the 256 shades a grid can output.
func GrayPalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}

// ErrNoFrames is returned when encoding a recorder that holds no frames.
var ErrNoFrames = errors.New("gif recorder has no frames")

// GIFRecorder collects grid outputs as paletted frames.
type GIFRecorder struct {
	palette color.Palette
	frames  []*image.Paletted
	delays  []int
	delay   int
}

// NewGIFRecorder creates a recorder with the given frame delay in hundredths
// of a second.
func NewGIFRecorder(delay int) *GIFRecorder {
	if delay <= 0 {
		delay = DefaultGIFDelay
	}
	return &GIFRecorder{palette: GrayPalette(), delay: delay}
}

// Add appends a frame. The red channel indexes the gray palette directly
// since grid outputs are always gray.
func (r *GIFRecorder) Add(size core.Size, pixels []byte) {
	if len(pixels) != 4*size.Cells() {
		return
	}
	dst := image.NewPaletted(image.Rect(0, 0, size.W, size.H), r.palette)
	for i := range dst.Pix {
		dst.Pix[i] = pixels[4*i]
	}
	r.frames = append(r.frames, dst)
	r.delays = append(r.delays, r.delay)
}

// Len returns the number of recorded frames.
func (r *GIFRecorder) Len() int { return len(r.frames) }

// Encode writes a looping animation to w.
func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &gif.GIF{
		Image:     r.frames,
		Delay:     r.delays,
		LoopCount: 0,
	})
}

// Save encodes the animation to path, creating parent directories as needed.
func (r *GIFRecorder) Save(path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
