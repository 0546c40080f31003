package release

import (
	"bytes"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/blendget/blendget/internal/platform"
)

// Item is the tagged result of parsing one listing anchor: either a parsed
// Entry or the reason the line was skipped. Skipping is a filtering
// decision, not an error; checksum files and release notes share the index
// with the archives.
type Item struct {
	Entry      *Entry
	SkipReason string
}

// Entries returns only the parsed entries of a sequence of items.
func Entries(items []Item) []*Entry {
	var entries []*Entry
	for _, it := range items {
		if it.Entry != nil {
			entries = append(entries, it.Entry)
		}
	}
	return entries
}

var (
	versionPattern    = regexp.MustCompile(`blender-?v?(\d+\.\d+(?:\.\d+)?(?:[a-z]+\d*)?)`)
	versionDirPattern = regexp.MustCompile(`^Blender(\d+\.\d+[a-z]*)/$`)
	modTimePattern    = regexp.MustCompile(`\d{2}-[A-Za-z]{3}-\d{4} \d{2}:\d{2}`)
	sizePattern       = regexp.MustCompile(`(\d+)\s*$`)
	bitsPattern       = regexp.MustCompile(`(?:windows|win|linux|osx|macos)[-_]?(32|64)`)
)

// ParseListing parses an HTML directory index into items, one per anchor.
// Anchor hrefs are resolved against baseURL; the text following each anchor
// supplies the modification time and size columns when the index has them.
// Unparseable documents yield no items rather than an error: the format is
// an external collaborator's and is treated as best-effort.
func ParseListing(baseURL string, doc []byte) []Item {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var items []Item
	var pendingHref string
	var pendingMeta strings.Builder
	havePending := false

	flush := func() {
		if havePending {
			items = append(items, parseAnchor(base, pendingHref, pendingMeta.String()))
			havePending = false
		}
		pendingMeta.Reset()
	}

	z := html.NewTokenizer(bytes.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			flush()
			return items
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" {
				continue
			}
			flush()
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "href" {
					pendingHref = string(val)
					havePending = true
				}
			}
		case html.TextToken:
			if havePending {
				pendingMeta.Write(z.Text())
			}
		}
	}
}

// ParseVersionDirs extracts the per-release-line directory names
// ("Blender2.93/" and so on) from the releases channel root index, in
// listing order.
func ParseVersionDirs(doc []byte) []string {
	var dirs []string
	z := html.NewTokenizer(bytes.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return dirs
		}
		if tt != html.StartTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "a" {
			continue
		}
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			if string(key) != "href" {
				continue
			}
			if m := versionDirPattern.FindStringSubmatch(string(val)); m != nil {
				dirs = append(dirs, m[1])
			}
		}
	}
}

// parseAnchor turns one listing anchor plus its trailing column text into a
// tagged item.
func parseAnchor(base *url.URL, href, meta string) Item {
	ref, err := url.Parse(href)
	if err != nil {
		return Item{SkipReason: "unparseable href"}
	}
	abs := base.ResolveReference(ref)

	if strings.HasSuffix(abs.Path, "/") {
		return Item{SkipReason: "directory"}
	}
	if href == "" || strings.HasPrefix(href, "?") || strings.HasPrefix(href, "#") {
		return Item{SkipReason: "index navigation link"}
	}

	name := abs.Path
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	ext, ok := ArchiveExtension(name)
	if !ok {
		return Item{SkipReason: "no recognized archive extension"}
	}

	entry := &Entry{
		Name:      name,
		Extension: ext,
		URL:       abs.String(),
	}

	lower := strings.ToLower(name)
	entry.Platform = platformOf(lower)
	entry.Arch, entry.Bits = archOf(lower)

	if m := versionPattern.FindStringSubmatch(lower); m != nil {
		// A malformed marker keeps the entry visible with a nil version.
		entry.Version, _ = ParseVersion(m[1])
	}

	if m := modTimePattern.FindString(meta); m != "" {
		if ts, err := time.Parse("02-Jan-2006 15:04", m); err == nil {
			entry.ModTime = ts
		}
	}
	if m := sizePattern.FindStringSubmatch(strings.TrimSpace(meta)); m != nil {
		entry.Size, _ = strconv.ParseInt(m[1], 10, 64)
	}

	return Item{Entry: entry}
}

// platformOf matches the filename against the fixed platform vocabulary.
// macOS markers are checked before Windows because "darwin" contains "win".
func platformOf(lower string) platform.OS {
	switch {
	case strings.Contains(lower, "linux"):
		return platform.Linux
	case strings.Contains(lower, "darwin"),
		strings.Contains(lower, "macos"),
		strings.Contains(lower, "osx"):
		return platform.MacOS
	case strings.Contains(lower, "win"):
		return platform.Windows
	}
	return platform.Unknown
}

// archOf extracts the architecture and bit-width markers from a filename.
// Filenames without an explicit marker return BitsUnknown, which resolves
// to 64 bits on modern entries.
func archOf(lower string) (string, platform.Bits) {
	switch {
	case strings.Contains(lower, "aarch64"), strings.Contains(lower, "arm64"):
		return "arm64", platform.Bits64
	case strings.Contains(lower, "x86_64"), strings.Contains(lower, "x86-64"),
		strings.Contains(lower, "amd64"), strings.Contains(lower, "x64"):
		return "x86_64", platform.Bits64
	case strings.Contains(lower, "i686"), strings.Contains(lower, "i386"):
		return "i686", platform.Bits32
	}
	if m := bitsPattern.FindStringSubmatch(lower); m != nil {
		if m[1] == "32" {
			return "", platform.Bits32
		}
		return "", platform.Bits64
	}
	return "", platform.BitsUnknown
}
