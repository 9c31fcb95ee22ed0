package render

import (
	"math"

	"dropbench/internal/core"
)

// DefaultGap is the number of screen pixels between neighbouring tiles.
const DefaultGap = 2

// Layout arranges equally sized grids into a near-square mosaic of tiles.
type Layout struct {
	Count int
	Cols  int
	Rows  int
	Tile  core.Size
	Scale int
	Gap   int
}

// NewLayout computes a mosaic for count tiles of the given size. Scale values
// below 1 are treated as 1.
func NewLayout(count int, tile core.Size, scale int) Layout {
	if count < 1 {
		count = 1
	}
	if scale < 1 {
		scale = 1
	}
	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := (count + cols - 1) / cols
	return Layout{Count: count, Cols: cols, Rows: rows, Tile: tile, Scale: scale, Gap: DefaultGap}
}

func (l Layout) strideX() int { return l.Tile.W*l.Scale + l.Gap }
func (l Layout) strideY() int { return l.Tile.H*l.Scale + l.Gap }

// Bounds returns the screen size needed to show every tile.
func (l Layout) Bounds() (int, int) {
	return l.Cols*l.strideX() - l.Gap, l.Rows*l.strideY() - l.Gap
}

// Origin returns the top-left screen pixel of tile i.
func (l Layout) Origin(i int) (int, int) {
	return (i % l.Cols) * l.strideX(), (i / l.Cols) * l.strideY()
}

// HitTest maps a screen pixel to a tile index and a cell inside that tile.
// Pixels on gaps or past the last tile report ok=false.
func (l Layout) HitTest(sx, sy int) (index, x, y int, ok bool) {
	if sx < 0 || sy < 0 || l.Cols == 0 {
		return 0, 0, 0, false
	}
	col, inX := sx/l.strideX(), sx%l.strideX()
	row, inY := sy/l.strideY(), sy%l.strideY()
	if col >= l.Cols || row >= l.Rows {
		return 0, 0, 0, false
	}
	if inX >= l.Tile.W*l.Scale || inY >= l.Tile.H*l.Scale {
		return 0, 0, 0, false
	}
	index = row*l.Cols + col
	if index >= l.Count {
		return 0, 0, 0, false
	}
	return index, inX / l.Scale, inY / l.Scale, true
}
