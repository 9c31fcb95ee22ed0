package core

// Cells returns the number of cells covered by the size.
func (s Size) Cells() int { return s.W * s.H }

// Index returns the linear slice index for coordinates (x, y).
func (s Size) Index(x, y int) int { return y*s.W + x }

// Interior reports whether (x, y) lies strictly inside the border ring.
func (s Size) Interior(x, y int) bool {
	return x >= 1 && x <= s.W-2 && y >= 1 && y <= s.H-2
}

// Border reports whether (x, y) is on the outermost ring of cells.
func (s Size) Border(x, y int) bool {
	return x == 0 || y == 0 || x == s.W-1 || y == s.H-1
}

// Clamp raises both dimensions to at least min.
func (s Size) Clamp(min int) Size {
	if s.W < min {
		s.W = min
	}
	if s.H < min {
		s.H = min
	}
	return s
}
