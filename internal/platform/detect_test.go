package platform

import (
	"context"
	"runtime"
	"testing"
)

func TestDetect(t *testing.T) {
	info, err := NewDetector().Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() unexpected error: %v", err)
	}

	wantOS, err := NormalizeOS(runtime.GOOS)
	if err != nil {
		t.Skipf("test host %s has no release builds", runtime.GOOS)
	}
	if info.OS != wantOS {
		t.Errorf("Detect() OS = %q, want %q", info.OS, wantOS)
	}

	if info.Arch == "" {
		t.Error("Detect() returned empty architecture")
	}
	if info.Bits != Bits32 && info.Bits != Bits64 {
		t.Errorf("Detect() Bits = %d, want 32 or 64", info.Bits)
	}
}

func TestDetectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewDetector().Detect(ctx); err == nil {
		t.Error("Detect() with cancelled context expected error")
	}
}
