package project

import (
	"millet/internal/paths"
	"millet/internal/source"
)

// Kind distinguishes a group file's dialect (spec.md §1/§3: "grouped by
// .cm/.mlb build-description files").
type Kind uint8

const (
	KindCm Kind = iota
	KindMlb
)

func (k Kind) String() string {
	if k == KindMlb {
		return "mlb"
	}
	return "cm"
}

// MemberClass is a group member's declared (or inferred) class, per
// spec.md §6 "class ∈ {sml, cm, sig, fun, ...}".
type MemberClass uint8

const (
	ClassSML MemberClass = iota
	ClassSig
	ClassFun
	ClassCM // a nested sub-group reference
)

// Member is one `PATH [":" class]` entry of a group's member list.
type Member struct {
	Path  paths.Id
	Class MemberClass
	Span  source.Span
}

// Namespace is the kind-of-name an Export item names, per spec.md §3's
// `namespace ∈ {Structure, Signature, Functor, FunSig}`.
type Namespace uint8

const (
	NamespaceStructure Namespace = iota
	NamespaceSignature
	NamespaceFunctor
	NamespaceFunSig
)

// ExportKind tags which shape of spec.md §3's `Export` tagged union an
// Export value holds.
type ExportKind uint8

const (
	ExportName ExportKind = iota
	ExportLibrary
	ExportSource
	ExportGroup
	ExportUnion
)

// Export is one entry of a group's export list (spec.md §3: `Export =
// { Name(namespace, name) | Library(path|stdlib) | Source(path|minus) |
// Group(path|minus) | Union([Export]) }`).
type Export struct {
	Kind      ExportKind
	Namespace Namespace // valid iff Kind == ExportName
	Name      string    // valid iff Kind == ExportName

	// Path/IsStdlib are valid iff Kind == ExportLibrary: a bare "stdlib"
	// token names the implicit standard-basis library rather than a path.
	Path     string
	IsStdlib bool

	// IsAll is valid iff Kind == ExportSource || Kind == ExportGroup: the
	// `-` form meaning "every member this source/sub-group exports",
	// rather than one ascribed path.
	IsAll bool

	Members []Export // valid iff Kind == ExportUnion

	Span source.Span
}

// Group is one parsed `.cm`/`.mlb` file: its own members and the paths of
// the sub-groups it depends on, plus what it exports (spec.md §3).
type Group struct {
	Kind Kind
	Path paths.Id

	Members      []Member
	Dependencies []paths.Id // sub-group paths drawn from Members' ClassCM entries

	// Exports is empty for a Group (meaning "export everything") but must
	// be non-empty for a Library (spec.md §3's invariant).
	Exports []Export
}
