package platform

import (
	"fmt"
	"strings"
)

// NormalizeOS maps user-supplied or runtime OS names to the canonical
// release naming. It accepts the Go runtime names ("darwin") as well as the
// spellings found in release filenames ("macos", "win64", "OSX").
func NormalizeOS(name string) (OS, error) {
	switch strings.ToLower(name) {
	case "linux":
		return Linux, nil
	case "macos", "darwin", "mac", "osx":
		return MacOS, nil
	case "windows", "win":
		return Windows, nil
	}
	return Unknown, fmt.Errorf("invalid operating system %q: must be 'linux', 'macos' or 'windows'", name)
}

// NormalizeArch maps kernel and Go runtime architecture names to the
// spellings used by release filenames.
func NormalizeArch(arch string) string {
	switch strings.ToLower(arch) {
	case "amd64", "x86_64", "x64":
		return "x86_64"
	case "arm64", "aarch64":
		return "arm64"
	case "386", "i386", "i486", "i586", "i686", "x86":
		return "i686"
	case "arm":
		return "arm"
	}
	return strings.ToLower(arch)
}

// BitsForArch returns the pointer width implied by a normalized
// architecture name.
func BitsForArch(arch string) Bits {
	switch NormalizeArch(arch) {
	case "x86_64", "arm64":
		return Bits64
	case "i686", "arm":
		return Bits32
	}
	return BitsUnknown
}
