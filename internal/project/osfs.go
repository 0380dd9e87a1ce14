package project

import (
	"os"
	"path/filepath"
)

// OSFileSystem implements FileSystem directly against the host OS, the way
// the teacher's own cmd-level file helpers (collectProjectFiles,
// listSGFiles) call os/filepath straight through rather than behind an
// interface. This is the one place in the module that is allowed to touch
// the OS: everything under internal/project/load.go and above takes a
// FileSystem and never imports "os" itself.
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

// Canonicalize resolves path to an absolute, symlink-free form.
func (OSFileSystem) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// A path that does not exist yet (e.g. a member the loader is about
		// to report as missing) still canonicalizes to its absolute form.
		if os.IsNotExist(err) {
			return filepath.Clean(abs), nil
		}
		return "", err
	}
	return resolved, nil
}

// ReadToString reads path's entire contents as text.
func (OSFileSystem) ReadToString(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadDir lists the direct entries of a directory, names only.
func (OSFileSystem) ReadDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// IsFile reports whether path names a regular file.
func (OSFileSystem) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Glob expands pattern against the host filesystem.
func (OSFileSystem) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}
