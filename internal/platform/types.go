// Package platform provides host platform detection for release matching.
//
// It detects the operating system, CPU architecture and bit-width the way
// the upstream release index names them ("linux", "macos", "windows"; 64 or
// 32 bits). Detection sits behind the Detector interface so tests can inject
// arbitrary targets without running on that actual platform.
package platform

import "context"

// OS identifies an operating system the way release filenames spell it.
type OS string

// Operating systems with official release builds.
const (
	Linux   OS = "linux"
	MacOS   OS = "macos"
	Windows OS = "windows"
	Unknown OS = ""
)

// String returns the string representation of the OS.
func (o OS) String() string {
	return string(o)
}

// Bits is the pointer width of a build.
type Bits int

// Bit-widths found in release filenames. BitsUnknown marks entries whose
// filename does not encode a width.
const (
	BitsUnknown Bits = 0
	Bits32      Bits = 32
	Bits64      Bits = 64
)

// Info contains detected host platform information.
type Info struct {
	OS   OS
	Arch string // normalized: "x86_64", "arm64", "i686"
	Bits Bits
}

// Detector is the interface for host platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
