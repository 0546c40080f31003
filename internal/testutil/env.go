// Package testutil provides utilities for testing blendget in isolation.
package testutil

import (
	"path/filepath"
	"testing"
)

// SetupTestEnv points the cache directory at a per-test temp location so
// tests never touch the user's real cache. Cleanup is handled by
// t.TempDir().
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	cacheDir := filepath.Join(t.TempDir(), "cache")
	t.Setenv("BLENDGET_CACHE_DIR", cacheDir)
	return cacheDir
}
