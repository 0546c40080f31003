package release

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/blendget/blendget/internal/platform"
)

// Config holds configuration for the resolver.
type Config struct {
	// Fetcher retrieves channel listings; required.
	Fetcher Fetcher
	// Logger for diagnostics; defaults to a no-op logger.
	Logger Logger
	// ReleasesURL overrides the releases channel root (for tests).
	ReleasesURL string
	// DailyURL overrides the daily-build channel (for tests).
	DailyURL string
}

// Resolver maps version tokens to release entries. Listing fetches are
// memoized for the lifetime of the resolver, which callers scope to one
// invocation; there is no cross-invocation listing cache.
type Resolver struct {
	fetcher     Fetcher
	logger      Logger
	releasesURL string
	dailyURL    string
	docs        map[string][]byte
}

// NewResolver creates a resolver for the two upstream channels.
func NewResolver(cfg Config) (*Resolver, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = defaultLogger()
	}
	if cfg.ReleasesURL == "" {
		cfg.ReleasesURL = DefaultReleasesURL
	}
	if cfg.DailyURL == "" {
		cfg.DailyURL = DefaultDailyURL
	}
	return &Resolver{
		fetcher:     cfg.Fetcher,
		logger:      cfg.Logger,
		releasesURL: cfg.ReleasesURL,
		dailyURL:    cfg.DailyURL,
		docs:        make(map[string][]byte),
	}, nil
}

// Resolve maps a request to exactly one entry, or fails with a
// VersionNotFoundError naming the token and platform searched.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Entry, error) {
	if req.Platform == platform.Unknown {
		return nil, fmt.Errorf("target platform is required")
	}

	token := NormalizeToken(req.Token)
	switch token {
	case "":
		return nil, fmt.Errorf("version token is required")
	case "stable":
		return r.resolveNewest(ctx, req, token, false)
	case "lts":
		return r.resolveNewest(ctx, req, token, true)
	case "nightly":
		return r.resolveNightly(ctx, req)
	}

	tok, err := ParseVersion(token)
	if err != nil {
		return nil, fmt.Errorf("invalid version token %q: must be a version number, 'stable', 'lts' or 'nightly'", req.Token)
	}

	// Some versions only ever appear as daily builds, so an explicit token
	// missing from the releases channel falls through to the daily one.
	entry, err := r.resolveExplicit(ctx, req, token, tok)
	var notFound *VersionNotFoundError
	if errors.As(err, &notFound) {
		r.logger.Debug("token absent from releases channel, trying daily builds", "token", token)
		return r.resolveDailyExplicit(ctx, req, token, tok)
	}
	return entry, err
}

// List enumerates available entries for the target platform: the newest
// daily build first, then the releases channel newest first. A daily
// channel with no matching build is skipped, not an error. max <= 0 lists
// everything.
func (r *Resolver) List(ctx context.Context, req Request, max int) ([]*Entry, error) {
	var out []*Entry
	nightly, err := r.resolveNightly(ctx, req)
	if err == nil {
		out = append(out, nightly)
	} else {
		var notFound *VersionNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	if max > 0 && len(out) >= max {
		return out[:max], nil
	}

	dirs, err := r.versionDirs(ctx)
	if err != nil {
		return nil, err
	}
	sortDirsDesc(dirs)

	for _, dir := range dirs {
		entries, err := r.listing(ctx, r.releasesURL+"Blender"+dir+"/")
		if err != nil {
			return nil, err
		}
		cands := filterTarget(entries, req)
		sortByVersionDesc(cands)
		out = append(out, cands...)
		if max > 0 && len(out) >= max {
			return out[:max], nil
		}
	}
	return out, nil
}

// resolveExplicit searches the releases channel for an explicit or
// family-wildcard token.
func (r *Resolver) resolveExplicit(ctx context.Context, req Request, token string, tok *Version) (*Entry, error) {
	dirs, err := r.versionDirs(ctx)
	if err != nil {
		return nil, err
	}

	var matching []string
	for _, dir := range dirs {
		dirVer, err := ParseVersion(dir)
		if err != nil {
			continue
		}
		if dirMatchesToken(dirVer, tok) {
			matching = append(matching, dir)
		}
	}
	sortDirsDesc(matching)

	var best *Entry
	for _, dir := range matching {
		entries, err := r.listing(ctx, r.releasesURL+"Blender"+dir+"/")
		if err != nil {
			return nil, err
		}
		for _, e := range filterTarget(entries, req) {
			if e.Version == nil || !e.Version.Matches(tok) {
				continue
			}
			best = better(best, e)
		}
	}
	if best == nil {
		return nil, &VersionNotFoundError{Token: token, Platform: req.Platform, Bits: req.Bits}
	}
	return best, nil
}

// resolveDailyExplicit searches the daily-build channel for an explicit
// token.
func (r *Resolver) resolveDailyExplicit(ctx context.Context, req Request, token string, tok *Version) (*Entry, error) {
	entries, err := r.listing(ctx, r.dailyURL)
	if err != nil {
		return nil, err
	}

	var best *Entry
	for _, e := range filterTarget(entries, req) {
		if e.Version == nil || !e.Version.Matches(tok) {
			continue
		}
		best = better(best, e)
	}
	if best == nil {
		return nil, &VersionNotFoundError{Token: token, Platform: req.Platform, Bits: req.Bits}
	}
	return best, nil
}

// resolveNewest selects the numerically highest released version, walking
// release-line directories newest first and stopping at the first line that
// yields a candidate. Prereleases never count; with ltsOnly only allow-listed
// long-term-support lines are considered.
func (r *Resolver) resolveNewest(ctx context.Context, req Request, token string, ltsOnly bool) (*Entry, error) {
	dirs, err := r.versionDirs(ctx)
	if err != nil {
		return nil, err
	}
	sortDirsDesc(dirs)

	for _, dir := range dirs {
		dirVer, err := ParseVersion(dir)
		if err != nil {
			continue
		}
		if ltsOnly && !IsLTS(dirVer) {
			continue
		}

		entries, err := r.listing(ctx, r.releasesURL+"Blender"+dir+"/")
		if err != nil {
			return nil, err
		}

		var best *Entry
		for _, e := range filterTarget(entries, req) {
			if e.Version == nil || e.Version.IsPrerelease() {
				continue
			}
			best = better(best, e)
		}
		if best != nil {
			return best, nil
		}
		r.logger.Debug("release line has no matching build, trying previous", "line", dir)
	}
	return nil, &VersionNotFoundError{Token: token, Platform: req.Platform, Bits: req.Bits}
}

// resolveNightly selects the most recently modified matching daily build.
func (r *Resolver) resolveNightly(ctx context.Context, req Request) (*Entry, error) {
	entries, err := r.listing(ctx, r.dailyURL)
	if err != nil {
		return nil, err
	}

	var best *Entry
	for _, e := range filterTarget(entries, req) {
		if e.Version == nil {
			continue
		}
		best = newer(best, e)
	}
	if best == nil {
		return nil, &VersionNotFoundError{Token: "nightly", Platform: req.Platform, Bits: req.Bits}
	}
	return best, nil
}

// listing fetches and parses one channel URL, memoized per resolver.
func (r *Resolver) listing(ctx context.Context, url string) ([]*Entry, error) {
	doc, ok := r.docs[url]
	if !ok {
		var err error
		doc, err = r.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		r.docs[url] = doc
	}
	items := ParseListing(url, doc)
	r.logger.Debug("parsed listing", "url", url, "anchors", len(items))
	return Entries(items), nil
}

// versionDirs fetches the releases channel root and returns the
// release-line directory versions.
func (r *Resolver) versionDirs(ctx context.Context) ([]string, error) {
	doc, ok := r.docs[r.releasesURL]
	if !ok {
		var err error
		doc, err = r.fetcher.Fetch(ctx, r.releasesURL)
		if err != nil {
			return nil, err
		}
		r.docs[r.releasesURL] = doc
	}
	return ParseVersionDirs(doc), nil
}

// filterTarget filters entries to the single best archive format for the
// target platform, then to the exact platform, bit-width and (when
// requested) architecture.
func filterTarget(entries []*Entry, req Request) []*Entry {
	wantArch := ""
	if req.Arch != "" {
		wantArch = platform.NormalizeArch(req.Arch)
	}
	for _, ext := range extensionPreference[req.Platform] {
		var subset []*Entry
		for _, e := range entries {
			if e.Extension != ext || e.Platform != req.Platform {
				continue
			}
			if req.Bits != platform.BitsUnknown && e.EffectiveBits() != req.Bits {
				continue
			}
			if wantArch != "" && e.Arch != wantArch {
				continue
			}
			subset = append(subset, e)
		}
		if len(subset) > 0 {
			return subset
		}
	}
	return nil
}

// dirMatchesToken reports whether a release-line directory (major.minor)
// can contain versions matching the token.
func dirMatchesToken(dir, tok *Version) bool {
	n := len(tok.components)
	if len(dir.components) < n {
		n = len(dir.components)
	}
	for i := 0; i < n; i++ {
		// The token's last component is a family prefix.
		if i == len(tok.components)-1 {
			return strings.HasPrefix(dir.components[i], tok.components[i])
		}
		if dir.components[i] != tok.components[i] {
			return false
		}
	}
	return n > 0
}

// better keeps the higher-versioned of two entries. Ties resolve to the
// lexicographically last URL so selection stays deterministic even against
// a listing with duplicates.
func better(cur, e *Entry) *Entry {
	if cur == nil {
		return e
	}
	switch cur.Version.Compare(e.Version) {
	case -1:
		return e
	case 1:
		return cur
	}
	if e.URL > cur.URL {
		return e
	}
	return cur
}

// newer keeps the more recently modified of two entries, falling back to
// version then URL so listings without a date column still resolve
// deterministically.
func newer(cur, e *Entry) *Entry {
	if cur == nil {
		return e
	}
	if !cur.ModTime.Equal(e.ModTime) {
		if e.ModTime.After(cur.ModTime) {
			return e
		}
		return cur
	}
	return better(cur, e)
}

// sortDirsDesc orders release-line directory versions newest first.
func sortDirsDesc(dirs []string) {
	sort.Slice(dirs, func(i, j int) bool {
		vi, erri := ParseVersion(dirs[i])
		vj, errj := ParseVersion(dirs[j])
		if erri != nil || errj != nil {
			return dirs[i] > dirs[j]
		}
		return vi.Compare(vj) > 0
	})
}

// sortByVersionDesc orders entries newest first; nil versions sort last.
func sortByVersionDesc(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool {
		vi, vj := entries[i].Version, entries[j].Version
		switch {
		case vi == nil:
			return false
		case vj == nil:
			return true
		}
		if c := vi.Compare(vj); c != 0 {
			return c > 0
		}
		return entries[i].URL > entries[j].URL
	})
}
