package extract

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"

	"github.com/blendget/blendget/internal/release"
)

// Extractor handles archive extraction and disk image mounting.
type Extractor struct {
	// goos is the host OS; overridable in tests to exercise the
	// unsupported-mount path regardless of where the tests run.
	goos string
}

// NewExtractor creates a new extractor for the current host.
func NewExtractor() *Extractor {
	return &Extractor{goos: runtime.GOOS}
}

// Unpack makes an archive's contents available and returns the root of the
// resulting tree. Compressed archives are extracted to a sibling directory;
// .dmg images are mounted (macOS only) and mounted reports which happened,
// since mount points need detaching rather than deleting. Formats with no
// portable layout (.msi, .exe, .snap, .deb, .rpm) are rejected with an
// UnsupportedOperationError.
func (e *Extractor) Unpack(archivePath string) (root string, mounted bool, err error) {
	ext, ok := release.ArchiveExtension(archivePath)
	if !ok {
		return "", false, &UnsupportedOperationError{Format: filepath.Ext(archivePath)}
	}

	if ext == ".dmg" {
		root, err = e.mountDMG(archivePath)
		return root, err == nil, err
	}

	destDir := strings.TrimSuffix(archivePath, ext)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", false, fmt.Errorf("create extraction dir: %w", err)
	}

	switch ext {
	case ".zip":
		err = extractZip(archivePath, destDir)
	case ".tar.gz", ".tar.xz", ".tar.bz2":
		err = extractTarball(archivePath, destDir, ext)
	default:
		return "", false, &UnsupportedOperationError{Format: ext}
	}
	if err != nil {
		return "", false, err
	}

	return treeRoot(destDir), false, nil
}

// extractTarball extracts a compressed tar archive to destDir.
func extractTarball(archivePath, destDir, ext string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	var decompressed io.Reader
	switch ext {
	case ".tar.gz":
		gzipReader, err := gzip.NewReader(archiveFile)
		if err != nil {
			return fmt.Errorf("create gzip reader: %w", err)
		}
		defer gzipReader.Close()
		decompressed = gzipReader
	case ".tar.xz":
		xzReader, err := xz.NewReader(archiveFile)
		if err != nil {
			return fmt.Errorf("create xz reader: %w", err)
		}
		decompressed = xzReader
	case ".tar.bz2":
		decompressed = bzip2.NewReader(archiveFile)
	}

	tarReader := tar.NewReader(decompressed)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		target, err := safeJoin(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}
			outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("create file %s: %w", target, err)
			}
			if _, err := io.Copy(outFile, tarReader); err != nil {
				outFile.Close()
				return fmt.Errorf("write file %s: %w", target, err)
			}
			outFile.Close()

		case tar.TypeSymlink:
			if err := checkLinkTarget(destDir, header.Name, header.Linkname); err != nil {
				return err
			}
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}

		default:
			// Skip other types (char devices, block devices, etc.)
			continue
		}
	}
	return nil
}

// extractZip extracts a zip archive to destDir.
func extractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		target, err := safeJoin(destDir, file.Name)
		if err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create parent dir for %s: %w", target, err)
		}

		src, err := file.Open()
		if err != nil {
			return fmt.Errorf("open archived file %s: %w", file.Name, err)
		}
		outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, file.Mode())
		if err != nil {
			src.Close()
			return fmt.Errorf("create file %s: %w", target, err)
		}
		_, err = io.Copy(outFile, src)
		src.Close()
		outFile.Close()
		if err != nil {
			return fmt.Errorf("write file %s: %w", target, err)
		}
	}
	return nil
}

// checkLinkTarget rejects symlink members whose target resolves outside
// destDir, so a link plus a later member written through it cannot escape
// the extraction tree.
func checkLinkTarget(destDir, name, linkname string) error {
	if filepath.IsAbs(linkname) {
		return fmt.Errorf("illegal symlink target in archive: %s -> %s", name, linkname)
	}
	resolved := filepath.Join(filepath.Dir(name), linkname)
	if _, err := safeJoin(destDir, resolved); err != nil {
		return fmt.Errorf("illegal symlink target in archive: %s -> %s", name, linkname)
	}
	return nil
}

// safeJoin joins an archive member name under destDir, rejecting path
// traversal.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal file path in archive: %s", name)
	}
	return target, nil
}

// treeRoot returns the single top-level directory of an extracted tree
// when the archive had one, the extraction directory otherwise. Releases
// normally ship one root directory; ancient ones spill files at the top.
func treeRoot(destDir string) string {
	entries, err := os.ReadDir(destDir)
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return destDir
	}
	return filepath.Join(destDir, entries[0].Name())
}
