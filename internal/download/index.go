package download

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// indexFile is the cache index filename inside the cache directory.
const indexFile = "index.json"

// Key derives the stable cache key for a source URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}

// Index maps cache keys to previously downloaded file paths. Entries are
// appended on successful download and never mutated. Implementations are
// explicit values passed into the Downloader so tests can substitute an
// in-memory fake.
type Index interface {
	// Lookup returns the cached path for a key, if one was recorded.
	Lookup(key string) (string, bool)
	// Add records a completed download. Keys are write-once per process;
	// concurrent processes writing the same key race benignly (last
	// writer wins).
	Add(key, path string) error
}

// FileIndex is the on-disk index: a single JSON object in the cache
// directory. Loading reads the whole file; Add rewrites it atomically.
type FileIndex struct {
	path    string
	entries map[string]string
}

// NewFileIndex loads (or initializes) the index stored in dir.
func NewFileIndex(dir string) (*FileIndex, error) {
	idx := &FileIndex{
		path:    filepath.Join(dir, indexFile),
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(idx.path)
	if os.IsNotExist(err) {
		return idx, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache index: %w", err)
	}
	if err := json.Unmarshal(data, &idx.entries); err != nil {
		// A corrupt index only costs re-downloads; start fresh.
		idx.entries = make(map[string]string)
	}
	return idx, nil
}

// Lookup returns the recorded path for a key. Entries whose file has
// disappeared from disk are treated as absent.
func (i *FileIndex) Lookup(key string) (string, bool) {
	path, ok := i.entries[key]
	if !ok {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", false
	}
	return path, true
}

// Add records a completed download and persists the index with
// write-to-temp-then-rename.
func (i *FileIndex) Add(key, path string) error {
	i.entries[key] = path

	data, err := json.MarshalIndent(i.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache index: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(i.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp := i.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache index: %w", err)
	}
	if err := os.Rename(tmp, i.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace cache index: %w", err)
	}
	return nil
}

// MemIndex is an in-memory Index for tests.
type MemIndex struct {
	entries map[string]string
}

// NewMemIndex creates an empty in-memory index.
func NewMemIndex() *MemIndex {
	return &MemIndex{entries: make(map[string]string)}
}

// Lookup returns the recorded path for a key.
func (m *MemIndex) Lookup(key string) (string, bool) {
	path, ok := m.entries[key]
	return path, ok
}

// Add records a completed download.
func (m *MemIndex) Add(key, path string) error {
	m.entries[key] = path
	return nil
}
