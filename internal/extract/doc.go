// Package extract unpacks downloaded release archives and locates the
// executable inside the resulting tree.
//
// Compressed archives (.zip, .tar.gz, .tar.xz, .tar.bz2) extract to a
// sibling directory of the archive. Disk images (.dmg) are mounted via
// hdiutil and only on macOS; anything else is an UnsupportedOperationError
// rather than a silent fallback.
package extract
