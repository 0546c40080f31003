package release

import (
	"time"

	"github.com/blendget/blendget/internal/platform"
)

// Default channel URLs.
const (
	DefaultReleasesURL = "https://download.blender.org/release/"
	DefaultDailyURL    = "https://builder.blender.org/download/daily/archive/"
)

// Channel identifies an upstream listing tree.
type Channel string

// The two upstream channels.
const (
	ChannelReleases Channel = "releases"
	ChannelDaily    Channel = "daily"
)

// Entry is one parsed, installable archive record from a channel listing.
// Entries are immutable once parsed.
type Entry struct {
	// Name is the raw filename from the listing anchor.
	Name string
	// Version is the parsed version, or nil when the filename matched an
	// archive extension but yielded no parseable version. Nil-version
	// entries are listed but never selected.
	Version *Version
	// Platform the build targets, or platform.Unknown.
	Platform platform.OS
	// Bits is the build's pointer width; BitsUnknown when the filename does
	// not encode one (modern entries imply 64).
	Bits platform.Bits
	// Arch is the normalized architecture from the filename, if any.
	Arch string
	// Extension is the recognized archive extension, including the dot.
	Extension string
	// URL is the absolute download URL. It is always a URL that was present
	// in the listing this entry was parsed from.
	URL string
	// ModTime is the listing's modification time column, when present.
	ModTime time.Time
	// Size is the listing's size column in bytes, or 0 when absent.
	Size int64
}

// EffectiveBits returns the entry's bit-width, treating the absence of a
// width marker as 64 bits (no 32-bit build has been published since 2.80).
func (e *Entry) EffectiveBits() platform.Bits {
	if e.Bits == platform.BitsUnknown {
		return platform.Bits64
	}
	return e.Bits
}

// Request describes what to resolve: a token plus the target platform.
type Request struct {
	// Token is the user-supplied version selector: an explicit version,
	// "stable", "lts" or "nightly".
	Token string
	// Platform to match; required.
	Platform platform.OS
	// Bits to match; required.
	Bits platform.Bits
	// Arch restricts matching to one architecture. Empty accepts any,
	// which is right for most versions.
	Arch string
}

// archiveExtensions lists every extension recognized as an installable
// archive, longest first so ".tar.xz" wins over a hypothetical ".xz" suffix
// match. Listing lines with any other extension are checksums, release notes
// or directories and are skipped.
var archiveExtensions = []string{
	".tar.xz", ".tar.bz2", ".tar.gz",
	".zip", ".dmg", ".msi", ".exe", ".snap", ".deb", ".rpm",
}

// ArchiveExtension returns the recognized archive extension of a filename,
// or "" and false when the name is not an installable archive.
func ArchiveExtension(name string) (string, bool) {
	for _, ext := range archiveExtensions {
		if len(name) > len(ext) && name[len(name)-len(ext):] == ext {
			return ext, true
		}
	}
	return "", false
}

// extensionPreference orders archive formats from most to least preferred
// per target platform: portable archives beat installers.
var extensionPreference = map[platform.OS][]string{
	platform.Linux:   {".tar.xz", ".tar.bz2", ".tar.gz", ".snap", ".deb", ".rpm"},
	platform.Windows: {".zip", ".msi", ".exe"},
	platform.MacOS:   {".dmg", ".zip", ".tar.gz"},
}
