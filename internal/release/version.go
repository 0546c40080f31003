package release

import (
	"fmt"
	"strings"
)

// Version is a release version ordered the way the upstream repository
// orders them: dot-separated numeric fields, optionally suffixed with a
// release-candidate or daily-build marker ("2.80rc3"). Numeric fields
// compare numerically; marker characters compare by character code after
// the numeric fields.
type Version struct {
	raw        string
	components []string
	fields     []int
	prerelease bool
}

// ParseVersion parses a version string. It accepts an optional leading "v"
// and returns an error when the string carries no leading numeric field.
func ParseVersion(raw string) (*Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if trimmed == "" {
		return nil, fmt.Errorf("empty version")
	}

	v := &Version{raw: trimmed, components: strings.Split(trimmed, ".")}

	// Numeric fields accumulate until the first marker character is seen;
	// from then on every character, digit or not, belongs to the marker.
	var markers []rune
	for _, component := range v.components {
		num := 0
		digits := 0
		for _, r := range component {
			if r >= '0' && r <= '9' && len(markers) == 0 {
				num = num*10 + int(r-'0')
				digits++
			} else {
				markers = append(markers, r)
			}
		}
		if digits > 0 {
			v.fields = append(v.fields, num)
		}
	}
	if len(v.fields) == 0 {
		return nil, fmt.Errorf("no numeric fields in version %q", raw)
	}

	for _, r := range markers {
		if r >= '0' && r <= '9' {
			v.fields = append(v.fields, int(r-'0'))
		} else {
			v.fields = append(v.fields, int(r))
			v.prerelease = true
		}
	}

	return v, nil
}

// String returns the version as written in the listing.
func (v *Version) String() string {
	return v.raw
}

// IsPrerelease reports whether the version carries a non-numeric marker
// (rc, alpha, beta). Prereleases are never selected as "stable".
func (v *Version) IsPrerelease() bool {
	return v.prerelease
}

// MajorMinor returns the "major.minor" release line, used for grouping and
// for the long-term-support allow-list.
func (v *Version) MajorMinor() string {
	if len(v.fields) == 1 {
		return fmt.Sprintf("%d.0", v.fields[0])
	}
	return fmt.Sprintf("%d.%d", v.fields[0], v.fields[1])
}

// Compare orders two versions: -1 when v < o, 0 when equal, 1 when v > o.
// Fields compare pairwise; when one version is a prefix of the other, the
// shorter sorts first.
func (v *Version) Compare(o *Version) int {
	for i := 0; i < len(v.fields) && i < len(o.fields); i++ {
		switch {
		case v.fields[i] < o.fields[i]:
			return -1
		case v.fields[i] > o.fields[i]:
			return 1
		}
	}
	switch {
	case len(v.fields) < len(o.fields):
		return -1
	case len(v.fields) > len(o.fields):
		return 1
	}
	return 0
}

// Matches reports whether v belongs to the family selected by token.
// A token with fewer components than v is a family wildcard whose last
// component matches as a string prefix: token "2.9" matches 2.90 and
// 2.91.3, token "2.83" matches every 2.83 patch release. A token with as
// many components as v must equal it exactly, so "2.83.1" never selects
// 2.83.18 and "2.80" never selects the 2.80rc3 prerelease.
func (v *Version) Matches(token *Version) bool {
	if len(token.components) > len(v.components) {
		return false
	}
	last := len(token.components) - 1
	for i, tc := range token.components {
		if i == last && len(token.components) < len(v.components) {
			return strings.HasPrefix(v.components[i], tc)
		}
		if v.components[i] != tc {
			return false
		}
	}
	return true
}

// NormalizeToken canonicalizes a user-supplied token: lowercased, "daily"
// folded into "nightly".
func NormalizeToken(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "daily" {
		return "nightly"
	}
	return t
}
