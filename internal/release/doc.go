// Package release resolves version tokens against the official Blender
// release indexes.
//
// # Channels
//
// Two upstream listing trees exist:
//   - the releases index (https://download.blender.org/release/), a two-level
//     HTML directory index: one Blender<major.minor>/ directory per release
//     line, each containing the per-version archives;
//   - the daily-build archive (https://builder.blender.org/download/daily/archive/),
//     a flat index of nightly builds.
//
// Both are external collaborators' formats and are parsed best-effort:
// anchors that do not name a recognized archive are skipped, anchors that
// name an archive but carry no parseable version are kept with a nil version
// so they stay visible in listings but are never selected.
//
// # Resolution
//
// A token is either an explicit version ("4.2.1", with a trailing wildcard
// for families: "2.9" matches 2.90, 2.91, ...), "stable" (highest released
// version), "lts" (highest version on the static long-term-support
// allow-list) or "nightly" (most recently modified daily build). Explicit
// tokens are looked up in the releases channel first and fall back to the
// daily channel, because some versions only ever appear as daily builds.
// Candidates are filtered to the best archive format for the target platform
// and to the exact platform/bit-width requested; an empty candidate set is a
// VersionNotFoundError naming exactly what was searched. Listing fetches are
// memoized per Resolver, i.e. for one invocation only.
package release
