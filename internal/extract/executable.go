package extract

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/blendget/blendget/internal/platform"
)

// executableCandidates lists the relative paths where each platform's
// executable lives inside an extracted or mounted tree, tried in order.
var executableCandidates = map[platform.OS][]string{
	platform.Linux: {
		"blender",
	},
	platform.Windows: {
		"blender.exe",
	},
	platform.MacOS: {
		"Blender.app/Contents/MacOS/Blender",
		"Blender.app/Contents/MacOS/blender",
		"blender.app/Contents/MacOS/blender",
	},
}

// FindExecutable locates the main executable under root for the given
// platform. The first existing candidate wins.
func FindExecutable(root string, target platform.OS) (string, error) {
	for _, candidate := range executableCandidates[target] {
		path := filepath.Join(root, filepath.FromSlash(candidate))
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", &ExecutableNotFoundError{Root: root}
}

// FindPython locates the bundled Python interpreter under root: the first
// python* file (or .exe on Windows) inside a bin directory.
func FindPython(root string, target platform.OS) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Base(filepath.Dir(path)) != "bin" {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "python") || (target == platform.Windows && strings.HasSuffix(name, ".exe")) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", &ExecutableNotFoundError{Root: root}
	}
	return found, nil
}
