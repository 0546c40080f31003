package download

import (
	"errors"
	"fmt"
	"syscall"
)

// DiskFullError reports that the cache directory's filesystem ran out of
// space mid-download. The partial temp file has already been removed.
type DiskFullError struct {
	Path string
	Err  error
}

func (e *DiskFullError) Error() string {
	return fmt.Sprintf("not enough free space at %s: %v", e.Path, e.Err)
}

func (e *DiskFullError) Unwrap() error {
	return e.Err
}

// isDiskFull reports whether a write failure was caused by a full disk.
func isDiskFull(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
