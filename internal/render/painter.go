//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"dropbench/internal/core"
)

// Painter owns one texture per grid and draws them into a layout.
type Painter struct {
	layout Layout
	images []*ebiten.Image
}

// NewPainter allocates a texture for every tile in l.
func NewPainter(l Layout) *Painter {
	p := &Painter{layout: l, images: make([]*ebiten.Image, l.Count)}
	for i := range p.images {
		p.images[i] = ebiten.NewImage(l.Tile.W, l.Tile.H)
	}
	return p
}

// Layout returns the mosaic the painter draws into.
func (p *Painter) Layout() Layout { return p.layout }

// Upload replaces the texture of tile index with a grid output buffer.
func (p *Painter) Upload(index int, pixels []byte) {
	if index < 0 || index >= len(p.images) || len(pixels) != 4*p.layout.Tile.Cells() {
		return
	}
	p.images[index].WritePixels(pixels)
}

// Draw blits every texture at its tile origin.
func (p *Painter) Draw(dst *ebiten.Image) {
	for i, img := range p.images {
		ox, oy := p.layout.Origin(i)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(p.layout.Scale), float64(p.layout.Scale))
		op.GeoM.Translate(float64(ox), float64(oy))
		dst.DrawImage(img, op)
	}
}

// TileSize returns the grid dimensions of each tile.
func (p *Painter) TileSize() core.Size { return p.layout.Tile }

// Dispose releases every texture.
func (p *Painter) Dispose() {
	for i, img := range p.images {
		if img != nil {
			img.Dispose()
			p.images[i] = nil
		}
	}
}
