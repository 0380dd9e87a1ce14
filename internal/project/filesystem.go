// Package project resolves a root directory into a dependency graph of CM
// or MLB group files (spec.md §4.2), grounded on the shape the teacher's
// own internal/project gives its module graph (dag.Graph/Topo) but
// re-purposed for SML's group-file build description instead of surge's
// pragma-driven module discovery.
package project

// FileSystem is the injected filesystem abstraction spec.md §6 names:
// "the core never touches the OS directly." Every path this package
// accepts or returns is already canonical; ReadToString and the other
// methods do no further normalization.
type FileSystem interface {
	// Canonicalize resolves path to an absolute, symlink-free form.
	Canonicalize(path string) (string, error)
	// ReadToString reads path's entire contents as text.
	ReadToString(path string) (string, error)
	// ReadDir lists the direct entries of a directory, names only.
	ReadDir(path string) ([]string, error)
	// IsFile reports whether path names a regular file.
	IsFile(path string) bool
	// Glob expands a glob pattern rooted at the filesystem root, per the
	// host OS's usual glob syntax (spec.md §6's workspace.root glob).
	Glob(pattern string) ([]string, error)
}
