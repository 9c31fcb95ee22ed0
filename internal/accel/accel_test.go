package accel

import (
	"errors"
	"slices"
	"testing"

	"dropbench/internal/core"
	"dropbench/internal/sims/rain"
)

func TestOpenCPUMatchesReference(t *testing.T) {
	b, err := Open("cpu", core.Size{W: 32, H: 32})
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if b.Name() != "cpu" {
		t.Fatalf("unexpected backend %q", b.Name())
	}

	cfg := rain.Config{Width: 32, Height: 32, Dampening: rain.DefaultDampening, Seed: 8}
	viaBackend := rain.NewWithKernel(cfg, b)
	reference := rain.New(cfg)
	for k := 0; k < 40; k++ {
		viaBackend.Advance()
		reference.Advance()
	}
	if !slices.Equal(viaBackend.Pixels(), reference.Pixels()) {
		t.Fatal("cpu backend diverged from the reference kernel")
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("burst", core.Size{W: 8, H: 8}); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}
