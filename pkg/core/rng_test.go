package core

import (
	"slices"
	"testing"
)

func TestIntRangeStaysInBounds(t *testing.T) {
	rng := NewRNG(7)
	for i := 0; i < 10000; i++ {
		v := rng.IntRange(1, 511)
		if v < 1 || v >= 511 {
			t.Fatalf("draw %d out of range: %d", i, v)
		}
	}
	if got := rng.IntRange(5, 5); got != 5 {
		t.Fatalf("empty range should return min, got %d", got)
	}
}

func TestSeedRewinds(t *testing.T) {
	rng := NewRNG(99)
	first := rng.Seeds(8)
	rng.Seed(99)
	second := rng.Seeds(8)
	if !slices.Equal(first, second) {
		t.Fatalf("reseeding should replay the sequence: %v vs %v", first, second)
	}
	for _, s := range first {
		if s < 1 || s >= 100000 {
			t.Fatalf("seed %d out of range", s)
		}
	}
}
