package project

import (
	"fmt"

	"millet/internal/diag"
)

// RootError is the short-circuiting input/config error class spec.md §4.2
// names: these abort analysis before a single group file is parsed, rather
// than accumulating in a diag.Bag alongside lex/parse/lower/statics
// diagnostics.
type RootError struct {
	Code   diag.Code
	Detail string
	// PathA/PathB are set only for MultipleRoots.
	PathA, PathB string
}

func (e *RootError) Error() string {
	if e.PathA != "" || e.PathB != "" {
		return fmt.Sprintf("%s: %s (%s, %s)", e.Code, e.Detail, e.PathA, e.PathB)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func errNoRoot(dir string) error {
	return &RootError{Code: diag.InputNoRoot, Detail: fmt.Sprintf("no .cm or .mlb file found in %s", dir)}
}

func errMultipleRoots(a, b string) error {
	return &RootError{Code: diag.InputMultipleRoots, Detail: "more than one candidate root group file", PathA: a, PathB: b}
}

func errNotGroup(path string) error {
	return &RootError{Code: diag.InputNotGroup, Detail: fmt.Sprintf("%s is not a .cm or .mlb file", path)}
}

func errEmptyGlob(pattern string) error {
	return &RootError{Code: diag.InputEmptyGlob, Detail: fmt.Sprintf("workspace.root glob %q matched nothing", pattern)}
}

func errCouldNotParseConfig(detail string) error {
	return &RootError{Code: diag.InputCouldNotParseConfig, Detail: detail}
}

func errInvalidConfigVersion(detail string) error {
	return &RootError{Code: diag.InputInvalidConfigVersion, Detail: detail}
}

func errMembersUnimplemented() error {
	return &RootError{Code: diag.InputMembersUnimplemented, Detail: "workspace.members is not implemented"}
}

func errGlobPattern(pattern, detail string) error {
	return &RootError{Code: diag.InputGlobPattern, Detail: fmt.Sprintf("%s: %s", pattern, detail)}
}
