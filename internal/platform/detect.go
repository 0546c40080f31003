package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual host introspection.
type RealDetector struct{}

// NewDetector creates a new host platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect returns the host OS, architecture and bit-width.
//
// The OS comes from runtime.GOOS. The architecture prefers the kernel
// architecture reported by gopsutil, which distinguishes a 32-bit userland
// running on a 64-bit kernel from the architecture the binary itself was
// compiled for; when the probe fails it falls back to runtime.GOARCH.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	os, err := NormalizeOS(runtime.GOOS)
	if err != nil {
		return nil, fmt.Errorf("unsupported host: %w", err)
	}

	arch := ""
	if kernelArch, err := host.KernelArch(); err == nil {
		arch = NormalizeArch(kernelArch)
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
	}
	if arch == "" {
		arch = NormalizeArch(runtime.GOARCH)
	}

	bits := BitsForArch(arch)
	if bits == BitsUnknown {
		// Unrecognized architecture name. Every platform with official
		// builds today is 64-bit, so default to that rather than failing.
		bits = Bits64
	}

	return &Info{OS: os, Arch: arch, Bits: bits}, nil
}
