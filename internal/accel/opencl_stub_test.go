//go:build !opencl

package accel

import (
	"errors"
	"testing"

	"dropbench/internal/core"
)

func TestOpenCLDisabledWithoutTag(t *testing.T) {
	if _, err := Open("opencl", core.Size{W: 8, H: 8}); !errors.Is(err, ErrOpenCLDisabled) {
		t.Fatalf("expected ErrOpenCLDisabled, got %v", err)
	}
}
