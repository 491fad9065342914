// Package attachment turns a file on disk into a qualification.Document.
// Only the file header is read, to detect the MIME type from content rather
// than trusting the extension.
package attachment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/abhisek/credform/internal/qualification"
)

// ErrNotAFile is returned when the path names a directory or device.
var ErrNotAFile = errors.New("not a regular file")

// Probe describes the file at path. The returned Handle is the absolute path.
func Probe(path string) (qualification.Document, error) {
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return qualification.Document{}, fmt.Errorf("probe: empty path")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return qualification.Document{}, fmt.Errorf("resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return qualification.Document{}, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.Mode().IsRegular() {
		return qualification.Document{}, fmt.Errorf("%s: %w", abs, ErrNotAFile)
	}

	mt, err := mimetype.DetectFile(abs)
	if err != nil {
		return qualification.Document{}, fmt.Errorf("detect type of %s: %w", abs, err)
	}

	return qualification.Document{
		Filename: filepath.Base(abs),
		Size:     info.Size(),
		MIMEType: baseType(mt.String()),
		Handle:   abs,
	}, nil
}

// baseType drops parameters such as "; charset=utf-8".
func baseType(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.TrimSpace(mime)
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
