package render

import (
	"testing"

	"dropbench/internal/core"
)

func TestNewLayoutShape(t *testing.T) {
	cases := []struct {
		count, cols, rows int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{4, 2, 2},
		{5, 3, 2},
		{10, 4, 3},
		{100, 10, 10},
	}
	for _, c := range cases {
		l := NewLayout(c.count, core.Size{W: 8, H: 8}, 1)
		if l.Cols != c.cols || l.Rows != c.rows {
			t.Fatalf("count %d: expected %dx%d, got %dx%d", c.count, c.cols, c.rows, l.Cols, l.Rows)
		}
	}
}

func TestLayoutBounds(t *testing.T) {
	l := NewLayout(4, core.Size{W: 10, H: 6}, 2)
	w, h := l.Bounds()
	if w != 2*20+DefaultGap || h != 2*12+DefaultGap {
		t.Fatalf("unexpected bounds %dx%d", w, h)
	}
}

func TestHitTest(t *testing.T) {
	l := NewLayout(3, core.Size{W: 10, H: 10}, 2)
	stride := 10*2 + DefaultGap

	cases := []struct {
		name        string
		sx, sy      int
		index, x, y int
		ok          bool
	}{
		{"first tile origin", 0, 0, 0, 0, 0, true},
		{"first tile scaled", 5, 9, 0, 2, 4, true},
		{"second tile", stride + 3, 1, 1, 1, 0, true},
		{"third tile second row", 19, stride + 19, 2, 9, 9, true},
		{"gap between tiles", 20, 0, 0, 0, 0, false},
		{"missing fourth tile", stride + 1, stride + 1, 0, 0, 0, false},
		{"negative", -1, 4, 0, 0, 0, false},
		{"past the right edge", 2 * stride, 0, 0, 0, 0, false},
	}
	for _, c := range cases {
		index, x, y, ok := l.HitTest(c.sx, c.sy)
		if ok != c.ok {
			t.Fatalf("%s: expected ok=%v, got %v", c.name, c.ok, ok)
		}
		if ok && (index != c.index || x != c.x || y != c.y) {
			t.Fatalf("%s: expected (%d,%d,%d), got (%d,%d,%d)", c.name, c.index, c.x, c.y, index, x, y)
		}
	}
}

func TestHitTestRoundTripsOrigin(t *testing.T) {
	l := NewLayout(7, core.Size{W: 16, H: 12}, 3)
	for i := 0; i < l.Count; i++ {
		ox, oy := l.Origin(i)
		index, x, y, ok := l.HitTest(ox+3*5+1, oy+3*7+2)
		if !ok || index != i || x != 5 || y != 7 {
			t.Fatalf("tile %d: got (%d,%d,%d,%v)", i, index, x, y, ok)
		}
	}
}
