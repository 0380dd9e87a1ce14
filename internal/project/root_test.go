package project

import (
	"testing"

	"millet/internal/config"
	"millet/internal/diag"
)

func TestFindConfigWalksUpToRoot(t *testing.T) {
	fs := newMapFS()
	fs.put("/proj/millet.toml", "version = 1\n[workspace]\nroot = \"sources.cm\"\n")
	fs.put("/proj/src/foo.sml", "")

	got, ok, err := FindConfig(fs, "/proj/src")
	if err != nil || !ok {
		t.Fatalf("FindConfig: ok=%v err=%v", ok, err)
	}
	if got != "/proj/millet.toml" {
		t.Fatalf("got %q", got)
	}
}

func TestFindConfigReportsAbsent(t *testing.T) {
	fs := newMapFS()
	fs.put("/proj/src/foo.sml", "")

	_, ok, err := FindConfig(fs, "/proj/src")
	if err != nil || ok {
		t.Fatalf("FindConfig: ok=%v err=%v, want ok=false", ok, err)
	}
}

func TestResolveRootGroupSingleCandidate(t *testing.T) {
	fs := newMapFS()
	fs.put("/proj/sources.cm", "Group is foo.sml")

	got, err := ResolveRootGroup(fs, "/proj", config.Config{}, false)
	if err != nil {
		t.Fatalf("ResolveRootGroup: %v", err)
	}
	if got != "/proj/sources.cm" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveRootGroupNoCandidate(t *testing.T) {
	fs := newMapFS()
	fs.put("/proj/readme.txt", "")

	_, err := ResolveRootGroup(fs, "/proj", config.Config{}, false)
	rerr, ok := err.(*RootError)
	if !ok || rerr.Code != diag.InputNoRoot {
		t.Fatalf("err = %v, want NoRoot", err)
	}
}

func TestResolveRootGroupMultipleCandidates(t *testing.T) {
	fs := newMapFS()
	fs.put("/proj/a.cm", "")
	fs.put("/proj/b.cm", "")

	_, err := ResolveRootGroup(fs, "/proj", config.Config{}, false)
	rerr, ok := err.(*RootError)
	if !ok || rerr.Code != diag.InputMultipleRoots {
		t.Fatalf("err = %v, want MultipleRoots", err)
	}
}

func TestResolveRootGroupViaConfigGlob(t *testing.T) {
	fs := newMapFS()
	fs.put("/proj/build/sources.cm", "")
	fs.put("/proj/other.cm", "")

	cfg := config.Config{Workspace: config.Workspace{RootSet: true, Root: "build/sources.cm"}}
	got, err := ResolveRootGroup(fs, "/proj", cfg, true)
	if err != nil {
		t.Fatalf("ResolveRootGroup: %v", err)
	}
	if got != "/proj/build/sources.cm" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveRootGroupEmptyGlob(t *testing.T) {
	fs := newMapFS()
	fs.put("/proj/other.cm", "")

	cfg := config.Config{Workspace: config.Workspace{RootSet: true, Root: "missing.cm"}}
	_, err := ResolveRootGroup(fs, "/proj", cfg, true)
	rerr, ok := err.(*RootError)
	if !ok || rerr.Code != diag.InputEmptyGlob {
		t.Fatalf("err = %v, want EmptyGlob", err)
	}
}

func TestResolveRootGroupMembersUnimplemented(t *testing.T) {
	fs := newMapFS()
	cfg := config.Config{Workspace: config.Workspace{Members: []string{"a", "b"}}}
	_, err := ResolveRootGroup(fs, "/proj", cfg, true)
	rerr, ok := err.(*RootError)
	if !ok || rerr.Code != diag.InputMembersUnimplemented {
		t.Fatalf("err = %v, want MembersUnimplemented", err)
	}
}
