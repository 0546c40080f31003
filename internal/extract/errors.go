package extract

import "fmt"

// UnsupportedOperationError reports an archive format that cannot be
// handled on this host, such as mounting a disk image outside macOS.
type UnsupportedOperationError struct {
	Format string
	Host   string
}

func (e *UnsupportedOperationError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("cannot handle %s archives on %s", e.Format, e.Host)
	}
	return fmt.Sprintf("unsupported archive format %s", e.Format)
}

// ExecutableNotFoundError reports that extraction succeeded but no
// recognizable executable exists in the extracted tree.
type ExecutableNotFoundError struct {
	Root string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("no executable found under %s", e.Root)
}
