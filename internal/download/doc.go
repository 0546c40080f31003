// Package download streams release archives into a flat on-disk cache.
//
// Every archive lives in its own cache subdirectory named by a stable hash
// of the source URL, and a small file-backed index maps those keys to
// completed downloads so repeated invocations skip the network entirely.
// Downloads are written to a temporary path and renamed into place only
// after the full, length-verified body has arrived: a concurrent reader
// either sees no file or the complete file, never a partial one. There is
// no locking beyond that discipline; two invocations racing on the same
// target both download and the last index write wins, which is an accepted
// inefficiency rather than a correctness bug.
package download
