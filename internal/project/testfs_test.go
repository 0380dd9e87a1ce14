package project

import (
	"fmt"
	"path"
	"sort"
)

// mapFS is a minimal in-memory FileSystem fake for this package's tests.
// spec.md §6 mandates the injected-abstraction shape directly; there is no
// teacher precedent to ground a fake on, since the teacher always talks to
// the OS directly.
type mapFS struct {
	files map[string]string
	dirs  map[string][]string
}

func newMapFS() *mapFS {
	return &mapFS{files: map[string]string{}, dirs: map[string][]string{}}
}

func (m *mapFS) put(p, content string) {
	p = path.Clean(p)
	m.files[p] = content
	dir := path.Dir(p)
	name := path.Base(p)
	for _, existing := range m.dirs[dir] {
		if existing == name {
			return
		}
	}
	m.dirs[dir] = append(m.dirs[dir], name)
}

func (m *mapFS) Canonicalize(p string) (string, error) { return path.Clean(p), nil }

func (m *mapFS) ReadToString(p string) (string, error) {
	c, ok := m.files[path.Clean(p)]
	if !ok {
		return "", fmt.Errorf("no such file: %s", p)
	}
	return c, nil
}

func (m *mapFS) ReadDir(p string) ([]string, error) {
	entries := append([]string(nil), m.dirs[path.Clean(p)]...)
	sort.Strings(entries)
	return entries, nil
}

func (m *mapFS) IsFile(p string) bool {
	_, ok := m.files[path.Clean(p)]
	return ok
}

func (m *mapFS) Glob(pattern string) ([]string, error) {
	var out []string
	for f := range m.files {
		ok, err := path.Match(pattern, f)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out, nil
}
