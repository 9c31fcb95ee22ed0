//go:build ebiten

package app

import (
	"time"

	"dropbench/internal/pool"
	"dropbench/internal/render"
	"dropbench/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the parameter panel in screen pixels.
const HUDWidth = 240

// Game adapts a pool driver to the ebiten.Game interface.
type Game struct {
	driver  *pool.Driver
	layout  render.Layout
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay

	seed int64
}

// New constructs a Game that shows every grid of the driver's pool.
func New(d *pool.Driver, scale int, seed int64) *Game {
	p := d.Pool()
	layout := render.NewLayout(p.Len(), p.Size(), scale)
	return &Game{
		driver:  d,
		layout:  layout,
		painter: render.NewPainter(layout),
		hud:     ui.NewHUD(d, HUDWidth),
		overlay: ui.NewOverlay(p, layout),
		seed:    seed,
	}
}

// ScreenSize returns the window size needed for the mosaic and the HUD.
func (g *Game) ScreenSize() (int, int) {
	w, h := g.layout.Bounds()
	return w + g.hud.Width(), max(h, minScreenHeight)
}

// Reset reseeds every grid.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.driver.Reset(seed)
}

// Update handles input, uploads the last completed tick and runs the next.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.driver.SetEnabled(!g.driver.Enabled())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if index, x, y, ok := g.layout.HitTest(mx, my); ok {
			g.driver.Perturb(index, x, y)
		}
	}

	mosaicW, _ := g.layout.Bounds()
	g.hud.Update(mosaicW)
	g.overlay.Update()

	g.driver.Render(g.painter.Upload)
	g.driver.Tick()
	return nil
}

// Draw blits the textures uploaded by the last Update.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen)
	g.overlay.Draw(screen)
	mosaicW, _ := g.layout.Bounds()
	_, h := g.ScreenSize()
	g.hud.Draw(screen, mosaicW, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenSize()
}

// Close releases the textures and the driver.
func (g *Game) Close() {
	g.painter.Dispose()
	g.driver.Close()
}

const minScreenHeight = 320
