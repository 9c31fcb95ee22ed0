package main

import (
	"os"
	"path/filepath"
	"testing"

	"dropbench/internal/app"
)

func TestApplyOverrides(t *testing.T) {
	cfg := app.NewConfig()
	cfg.Width = 64
	applyOverrides(cfg, []string{"h=48", "seed=9", "bogus", "dampening=0.9"})
	if cfg.Width != 64 || cfg.Height != 48 || cfg.Seed != 9 {
		t.Fatalf("unexpected config %+v", *cfg)
	}
	if cfg.Dampening != float64(float32(0.9)) {
		t.Fatalf("unexpected dampening %v", cfg.Dampening)
	}
}

func TestRunWritesImages(t *testing.T) {
	cfg := app.NewConfig()
	cfg.Grids, cfg.Width, cfg.Height = 3, 12, 10
	cfg.Strategy = "group"
	d, err := cfg.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	out := t.TempDir()
	stats, err := run(d, options{ticks: 6, pngEvery: 3, gifFrames: 4, out: out})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 6 {
		t.Fatalf("expected 6 timer readings, got %d", stats.Count)
	}
	for _, name := range []string{"tick-000003.png", "tick-000006.png", "final.png", "grid0.gif"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	if f := d.Pool().Frames(); f[0] != 6 || f[2] != 6 {
		t.Fatalf("unexpected frames %v", f)
	}
}
