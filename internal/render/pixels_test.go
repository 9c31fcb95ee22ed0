package render

import (
	"bytes"
	"errors"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"dropbench/internal/core"
)

func grayPixels(size core.Size, shade func(i int) byte) []byte {
	buf := make([]byte, 4*size.Cells())
	for i := 0; i < size.Cells(); i++ {
		b := shade(i)
		buf[4*i], buf[4*i+1], buf[4*i+2], buf[4*i+3] = b, b, b, 0xff
	}
	return buf
}

func TestToImageSharesBuffer(t *testing.T) {
	size := core.Size{W: 3, H: 2}
	pixels := grayPixels(size, func(int) byte { return 0 })
	img := ToImage(size, pixels)
	pixels[4*(1*3+2)] = 200
	if got := img.RGBAAt(2, 1).R; got != 200 {
		t.Fatalf("expected image to alias the buffer, got %d", got)
	}
}

func TestComposePlacesScaledTiles(t *testing.T) {
	size := core.Size{W: 2, H: 2}
	l := NewLayout(2, size, 2)
	dst := NewMosaic(l)
	Compose(dst, l, 1, grayPixels(size, func(i int) byte { return byte(10 * (i + 1)) }))

	ox, oy := l.Origin(1)
	if got := dst.RGBAAt(ox+3, oy+1).R; got != 20 {
		t.Fatalf("expected cell (1,0) of tile 1 at scaled position, got %d", got)
	}
	if got := dst.RGBAAt(ox+2, oy+3).R; got != 40 {
		t.Fatalf("expected cell (1,1) of tile 1 at scaled position, got %d", got)
	}
	if got := dst.RGBAAt(0, 0); got.R != 0 || got.A != 0xff {
		t.Fatalf("expected untouched tile to stay opaque black, got %+v", got)
	}
}

func TestComposeIgnoresMismatchedInput(t *testing.T) {
	l := NewLayout(1, core.Size{W: 2, H: 2}, 1)
	dst := NewMosaic(l)
	Compose(dst, l, 0, []byte{1, 2, 3})
	Compose(dst, l, 5, grayPixels(l.Tile, func(int) byte { return 9 }))
	if dst.Pix[0] != 0 {
		t.Fatal("expected mosaic to be unchanged")
	}
}

func TestWritePNG(t *testing.T) {
	size := core.Size{W: 4, H: 3}
	path := filepath.Join(t.TempDir(), "nested", "grid.png")
	if err := WritePNG(path, ToImage(size, grayPixels(size, func(i int) byte { return byte(i) }))); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if r, _, _, _ := img.At(3, 2).RGBA(); r>>8 != 11 {
		t.Fatalf("unexpected pixel value %d", r>>8)
	}
}

func TestGIFRecorder(t *testing.T) {
	size := core.Size{W: 5, H: 5}
	rec := NewGIFRecorder(0)
	if err := rec.Encode(&bytes.Buffer{}); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
	for f := 0; f < 3; f++ {
		rec.Add(size, grayPixels(size, func(i int) byte { return byte(f*50 + i) }))
	}
	rec.Add(size, []byte{0})
	if rec.Len() != 3 {
		t.Fatalf("expected 3 frames, got %d", rec.Len())
	}

	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 || g.Delay[0] != DefaultGIFDelay {
		t.Fatalf("unexpected animation: %d frames, delay %d", len(g.Image), g.Delay[0])
	}
	if got := g.Image[2].ColorIndexAt(4, 4); got != 124 {
		t.Fatalf("expected palette index 124, got %d", got)
	}
}
