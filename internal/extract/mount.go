package extract

import (
	"fmt"
	"os/exec"
	"strings"
)

// mountDMG attaches a disk image and returns the mount point. Only macOS
// can mount .dmg files; elsewhere this is an UnsupportedOperationError, not
// a fallback to extraction.
func (e *Extractor) mountDMG(archivePath string) (string, error) {
	if e.goos != "darwin" {
		return "", &UnsupportedOperationError{Format: ".dmg", Host: e.goos}
	}

	out, err := exec.Command("hdiutil", "attach", "-nobrowse", "-readonly", archivePath).Output()
	if err != nil {
		return "", fmt.Errorf("hdiutil attach %s: %w", archivePath, err)
	}

	// hdiutil prints one line per attached entity; the mount point is the
	// last tab-separated field of the line that carries a /Volumes path.
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		fields := strings.Split(line, "\t")
		mountPoint := strings.TrimSpace(fields[len(fields)-1])
		if strings.HasPrefix(mountPoint, "/Volumes/") {
			return mountPoint, nil
		}
	}
	return "", fmt.Errorf("hdiutil attach %s: no mount point in output", archivePath)
}
