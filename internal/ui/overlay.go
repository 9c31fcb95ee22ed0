//go:build ebiten

package ui

import (
	"image/color"

	"dropbench/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// LabelSource reports one line of text per tile.
type LabelSource interface {
	Labels() []string
}

// Overlay draws per-tile labels and the cell under the cursor on top of the
// grid mosaic.
type Overlay struct {
	source     LabelSource
	layout     render.Layout
	showLabels bool
	showCursor bool
	labels     []string

	hover      bool
	hoverIndex int
	hoverX     int
	hoverY     int

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay with labels and the cursor marker shown.
func NewOverlay(source LabelSource, layout render.Layout) *Overlay {
	o := &Overlay{source: source, layout: layout, showLabels: true, showCursor: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the layers and samples the cursor. It must run between
// ticks since it reads grid state through the label source.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showLabels = !o.showLabels
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showCursor = !o.showCursor
	}
	if o.showLabels {
		o.labels = o.source.Labels()
	}
	mx, my := ebiten.CursorPosition()
	o.hoverIndex, o.hoverX, o.hoverY, o.hover = o.layout.HitTest(mx, my)
}

// Draw renders the enabled layers onto the screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showLabels {
		o.drawLabels(screen)
	}
	if o.showCursor && o.hover {
		o.drawCursor(screen)
	}
}

func (o *Overlay) drawLabels(screen *ebiten.Image) {
	face := basicfont.Face7x13
	for i, label := range o.labels {
		if i >= o.layout.Count {
			break
		}
		ox, oy := o.layout.Origin(i)
		bounds := text.BoundString(face, label)
		o.drawRect(screen, float64(ox), float64(oy), float64(bounds.Dx()+6), float64(bounds.Dy()+6), color.RGBA{A: 160})
		text.Draw(screen, label, face, ox+3, oy+3-bounds.Min.Y, color.RGBA{R: 120, G: 200, B: 255, A: 255})
	}
}

func (o *Overlay) drawCursor(screen *ebiten.Image) {
	ox, oy := o.layout.Origin(o.hoverIndex)
	scale := float64(o.layout.Scale)
	size := scale
	if size < 3 {
		size = 3
	}
	cx := float64(ox) + (float64(o.hoverX)+0.5)*scale
	cy := float64(oy) + (float64(o.hoverY)+0.5)*scale
	o.drawPoint(screen, cx, cy, size, color.RGBA{R: 200, G: 94, B: 31, A: 200})
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	o.drawRect(screen, x-size/2, y-size/2, size, size, col)
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
