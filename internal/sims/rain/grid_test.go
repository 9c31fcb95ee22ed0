package rain

import (
	"math"
	"slices"
	"testing"
)

func TestAdvanceCountsFrames(t *testing.T) {
	g := New(Config{Width: 16, Height: 12, Dampening: DefaultDampening, Seed: 3})
	for k := 0; k <= 25; k++ {
		if g.Frame() != k {
			t.Fatalf("after %d advances frame=%d", k, g.Frame())
		}
		g.Advance()
	}
}

func TestBorderCellsNeverChange(t *testing.T) {
	g := New(Config{Width: 10, Height: 8, Dampening: DefaultDampening, Seed: 11})
	size := g.Size()
	const marker = 7
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			if !size.Border(x, y) {
				continue
			}
			i := size.Index(x, y)
			g.bufA[i] = marker
			g.bufB[i] = marker
			g.output[i*4] = marker
		}
	}

	for k := 0; k < 200; k++ {
		g.Advance()
	}

	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			if !size.Border(x, y) {
				continue
			}
			i := size.Index(x, y)
			if g.bufA[i] != marker || g.bufB[i] != marker {
				t.Fatalf("border cell (%d,%d) changed: a=%f b=%f", x, y, g.bufA[i], g.bufB[i])
			}
			if g.output[i*4] != marker || g.output[i*4+3] != 255 {
				t.Fatalf("border pixel (%d,%d) changed: %v", x, y, g.output[i*4:i*4+4])
			}
		}
	}
}

func TestAdvanceDeterministicForSeed(t *testing.T) {
	cfg := Config{Width: 64, Height: 48, Dampening: DefaultDampening, Seed: 4242}
	a := New(cfg)
	b := New(cfg)
	for k := 0; k < 120; k++ {
		a.Advance()
		b.Advance()
	}
	if !slices.Equal(a.Pixels(), b.Pixels()) {
		t.Fatal("identical seeds produced different output")
	}
	if !slices.Equal(a.bufA, b.bufA) || !slices.Equal(a.bufB, b.bufB) {
		t.Fatal("identical seeds produced different buffers")
	}

	cfg.Seed = 4243
	c := New(cfg)
	for k := 0; k < 120; k++ {
		c.Advance()
	}
	if slices.Equal(a.bufA, c.bufA) {
		t.Fatal("different seeds should rain in different places")
	}
}

func TestBufferRolesAlternate(t *testing.T) {
	g := New(Config{Width: 8, Height: 8, Dampening: DefaultDampening, Seed: 5})
	cur0, prev0 := g.Buffers()
	if &cur0[0] != &g.bufA[0] || &prev0[0] != &g.bufB[0] {
		t.Fatal("even frames should write bufferA and read bufferB")
	}
	for k := 0; k < 10; k++ {
		g.Advance()
		if got := g.Frame() & 1; got != (k+1)&1 {
			t.Fatalf("parity after %d advances = %d", k+1, got)
		}
		cur, prev := g.Buffers()
		wantSwapped := g.Frame()&1 == 1
		swapped := &cur[0] == &prev0[0] && &prev[0] == &cur0[0]
		if swapped != wantSwapped {
			t.Fatalf("frame %d: roles swapped=%v, want %v", g.Frame(), swapped, wantSwapped)
		}
	}
}

func TestQuantizeBoundaries(t *testing.T) {
	cases := []struct {
		in   float32
		want uint8
	}{
		{0, 0},
		{-0.5, 0},
		{-4096, 0},
		{0.99, 0},
		{1, 1},
		{24.75, 24},
		{254.9, 254},
		{255, 255},
		{1013.76, 255},
		{float32(math.Inf(1)), 255},
		{float32(math.NaN()), 0},
	}
	for _, tc := range cases {
		if got := Quantize(tc.in); got != tc.want {
			t.Fatalf("Quantize(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSingleSourceDiffusion(t *testing.T) {
	g := New(Config{Width: 4, Height: 4, Dampening: 0.99, Seed: 1})
	size := g.Size()
	current, previous := g.Buffers()
	previous[size.Index(1, 1)] = Drop

	g.advance(false)

	damp := float32(0.99)
	src := float32(Drop)
	want := damp * (src/4 - 0)
	// (2,2), (2,1) and (1,2) all see the source once; (1,1) does not see itself.
	for _, p := range [][2]int{{2, 2}, {2, 1}, {1, 2}} {
		i := size.Index(p[0], p[1])
		if current[i] != want {
			t.Fatalf("cell %v = %v, want %v", p, current[i], want)
		}
		if px := g.Pixels()[i*4 : i*4+4]; !slices.Equal(px, []byte{255, 255, 255, 255}) {
			t.Fatalf("pixel %v = %v, want saturated white", p, px)
		}
	}
	centre := size.Index(1, 1)
	if current[centre] != 0 {
		t.Fatalf("source cell should not see itself, got %v", current[centre])
	}
	if px := g.Pixels()[centre*4 : centre*4+4]; !slices.Equal(px, []byte{0, 0, 0, 255}) {
		t.Fatalf("source pixel = %v, want opaque black", px)
	}
}

func TestSingleSourceBelowSaturation(t *testing.T) {
	g := New(Config{Width: 4, Height: 4, Dampening: 0.99, Seed: 1})
	size := g.Size()
	_, previous := g.Buffers()
	previous[size.Index(1, 1)] = 100

	g.advance(false)

	i := size.Index(2, 2)
	if got := g.Pixels()[i*4]; got != 24 {
		t.Fatalf("expected 0.99*25 to quantize to 24, got %d", got)
	}
}

func TestDiffusionSubtractsCurrent(t *testing.T) {
	g := New(Config{Width: 3, Height: 3, Dampening: 0.5, Seed: 1})
	current, _ := g.Buffers()
	current[4] = 10

	g.advance(false)

	if current[4] != -5 {
		t.Fatalf("expected 0.5*(0-10) = -5, got %v", current[4])
	}
	if g.Pixels()[16] != 0 {
		t.Fatalf("negative values must quantize to 0, got %d", g.Pixels()[16])
	}
}

func TestRainLandsInPreviousInterior(t *testing.T) {
	g := New(Config{Width: 3, Height: 3, Dampening: DefaultDampening, Seed: 9})
	_, previous := g.Buffers()
	g.Advance()
	if previous[4] != Drop {
		t.Fatalf("3x3 rain must hit the only interior cell, got %v", previous[4])
	}
	for i, v := range previous {
		if i != 4 && v != 0 {
			t.Fatalf("rain touched cell %d", i)
		}
	}
}

func TestPerturbOpenInterval(t *testing.T) {
	g := New(Config{Width: 4, Height: 4, Dampening: DefaultDampening, Seed: 1})
	rejected := [][2]int{{0, 1}, {1, 0}, {4, 1}, {1, 4}, {-1, 2}, {2, -1}, {0, 0}}
	for _, p := range rejected {
		if g.Perturb(p[0], p[1]) {
			t.Fatalf("Perturb%v should be ignored", p)
		}
	}
	_, previous := g.Buffers()
	for i, v := range previous {
		if v != 0 {
			t.Fatalf("ignored perturbation wrote cell %d", i)
		}
	}
	if !g.Perturb(3, 3) {
		t.Fatal("(3,3) lies inside the open interval and should land")
	}
	if previous[g.Size().Index(3, 3)] != Drop {
		t.Fatal("perturbation did not reach the previous buffer")
	}
}

func TestPerturbFollowsParity(t *testing.T) {
	g := New(Config{Width: 6, Height: 6, Dampening: DefaultDampening, Seed: 2})
	g.Advance()
	idx := g.Size().Index(2, 3)
	g.bufA[idx] = 0
	if !g.Perturb(2, 3) {
		t.Fatal("expected perturbation to land")
	}
	if g.bufA[idx] != Drop {
		t.Fatal("odd frames read bufferA, so perturbation should write it")
	}
}

func TestResetReplaysFromSeed(t *testing.T) {
	cfg := Config{Width: 32, Height: 32, Dampening: DefaultDampening, Seed: 77}
	g := New(cfg)
	for k := 0; k < 30; k++ {
		g.Advance()
	}
	first := append([]byte(nil), g.Pixels()...)

	g.Reset(0)
	if g.Frame() != 0 {
		t.Fatalf("reset should rewind frame, got %d", g.Frame())
	}
	for i := 3; i < len(g.Pixels()); i += 4 {
		if g.Pixels()[i-3] != 0 || g.Pixels()[i] != 255 {
			t.Fatal("reset should clear output to opaque black")
		}
	}
	for k := 0; k < 30; k++ {
		g.Advance()
	}
	if !slices.Equal(first, g.Pixels()) {
		t.Fatal("reset with the construction seed should replay the same run")
	}
}

func TestClosedGridIgnoresWork(t *testing.T) {
	g := New(Config{Width: 8, Height: 8, Dampening: DefaultDampening, Seed: 1})
	g.Close()
	g.Advance()
	if g.Frame() != 0 {
		t.Fatal("closed grid must not advance")
	}
	if g.Perturb(2, 2) {
		t.Fatal("closed grid must ignore perturbation")
	}
	if g.Pixels() != nil {
		t.Fatal("closed grid should release its output")
	}
}

func TestSizeClampedToInterior(t *testing.T) {
	g := New(Config{Width: 1, Height: 0, Seed: 1})
	if s := g.Size(); s.W != 3 || s.H != 3 {
		t.Fatalf("expected 3x3 minimum, got %+v", s)
	}
	if g.Dampening() != DefaultDampening {
		t.Fatalf("zero dampening should fall back to default, got %v", g.Dampening())
	}
	g.Advance()
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{"w": "64", "h": "32", "dampening": "0.5", "seed": "-9", "bogus": "x"})
	if cfg.Width != 64 || cfg.Height != 32 || cfg.Dampening != 0.5 || cfg.Seed != -9 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	bad := FromMap(map[string]string{"w": "-1", "dampening": "zero"})
	if bad.Width != DefaultWidth || bad.Dampening != DefaultDampening {
		t.Fatalf("invalid values should keep defaults, got %+v", bad)
	}
}

func BenchmarkAdvance512(b *testing.B) {
	g := New(DefaultConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Advance()
	}
}
