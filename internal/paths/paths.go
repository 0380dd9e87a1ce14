// Package paths interns canonical filesystem paths into a dense, stable
// id space, per spec.md §4.1. It is distinct from source.FileSet: a PathId
// may name a directory or a file that is never read (e.g. a sub-group
// reference), whereas a source.FileID always has loaded content.
package paths

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Id is a dense identifier for a canonicalized path. The zero value is
// never issued by Store.GetID.
type Id uint32

// CanonicalPath is an absolute, slash-normalized path under some root.
type CanonicalPath string

// ErrNotUnderRoot is returned by Store.GetID when asked to register a path
// that does not live under the store's configured root.
type ErrNotUnderRoot struct {
	Root CanonicalPath
	Path string
}

func (e *ErrNotUnderRoot) Error() string {
	return fmt.Sprintf("path %q is not under root %q", e.Path, e.Root)
}

// Store is a process-local, single-owner interner of canonical paths.
// Ids are stable for the life of the Store. Callers must serialize access;
// the store performs no internal locking (per spec.md §5: the paths store
// is owned exclusively by the current analysis).
type Store struct {
	root  CanonicalPath
	byID  []CanonicalPath
	index map[CanonicalPath]Id
}

// NewStore creates a Store rooted at root. root must already be an
// absolute, canonical directory path (canonicalization is the
// FileSystem abstraction's job, per spec.md §6).
func NewStore(root CanonicalPath) *Store {
	return &Store{
		root:  normalize(root),
		byID:  []CanonicalPath{""},
		index: map[CanonicalPath]Id{"": 0},
	}
}

// Root returns the store's configured root directory.
func (s *Store) Root() CanonicalPath { return s.root }

// GetID interns path, returning its stable Id. Idempotent: equal
// canonical paths yield equal ids, per spec.md §4.1.
func (s *Store) GetID(path CanonicalPath) (Id, error) {
	cp := normalize(path)
	if !isUnder(s.root, cp) {
		return 0, &ErrNotUnderRoot{Root: s.root, Path: string(path)}
	}
	if id, ok := s.index[cp]; ok {
		return id, nil
	}
	n, err := safecast.Conv[uint32](len(s.byID))
	if err != nil {
		panic(fmt.Errorf("path store overflow: %w", err))
	}
	id := Id(n)
	s.byID = append(s.byID, cp)
	s.index[cp] = id
	return id, nil
}

// GetPath returns the canonical path registered under id. Panics if id is
// out of range; ids only ever come from this Store.
func (s *Store) GetPath(id Id) CanonicalPath { return s.byID[id] }

// Len returns the number of registered paths, including the sentinel zero
// entry.
func (s *Store) Len() int { return len(s.byID) }

func normalize(p CanonicalPath) CanonicalPath {
	return CanonicalPath(strings.ReplaceAll(string(p), "\\", "/"))
}

func isUnder(root, p CanonicalPath) bool {
	if root == "" {
		return true
	}
	rs := string(root)
	ps := string(p)
	if ps == rs {
		return true
	}
	if !strings.HasSuffix(rs, "/") {
		rs += "/"
	}
	return strings.HasPrefix(ps, rs)
}
