package project

import (
	"context"
	"testing"

	"millet/internal/paths"
	"millet/internal/source"
)

func TestLoadGroupFollowsSubGroupDependencies(t *testing.T) {
	fs := newMapFS()
	fs.put("/proj/sources.cm", `
Group is
	foo.sml
	sub/sources.cm
`)
	fs.put("/proj/sub/sources.cm", `
Group is
	bar.sml
`)
	fs.put("/proj/foo.sml", "val x = 1")
	fs.put("/proj/sub/bar.sml", "val y = 2")

	store := paths.NewStore("/proj")
	fset := source.NewFileSet()

	graph, err := LoadGroup(context.Background(), fs, fset, store, PathVars{}, "/proj/sources.cm", 4)
	if err != nil {
		t.Fatalf("LoadGroup: %v", err)
	}
	if graph.Errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", graph.Errors.Items())
	}
	if len(graph.Groups) != 2 {
		t.Fatalf("Groups = %v, want 2", graph.Groups)
	}

	root, ok := graph.Groups[graph.Root]
	if !ok {
		t.Fatal("root group missing")
	}
	if len(root.Dependencies) != 1 {
		t.Fatalf("root.Dependencies = %v, want 1", root.Dependencies)
	}
	subID := root.Dependencies[0]
	sub, ok := graph.Groups[subID]
	if !ok {
		t.Fatal("sub group missing from graph")
	}
	if len(sub.Members) != 1 || sub.Members[0].Class != ClassSML {
		t.Fatalf("sub.Members = %v", sub.Members)
	}
}

func TestLoadGroupRecordsReadErrorsButContinues(t *testing.T) {
	fs := newMapFS()
	fs.put("/proj/sources.cm", `
Group is
	foo.sml
	missing-sub.cm
`)
	fs.put("/proj/foo.sml", "val x = 1")
	// missing-sub.cm is never added to fs, so its read fails once LoadGroup's
	// BFS reaches it as a sub-group dependency.

	store := paths.NewStore("/proj")
	fset := source.NewFileSet()

	graph, err := LoadGroup(context.Background(), fs, fset, store, PathVars{}, "/proj/sources.cm", 2)
	if err != nil {
		t.Fatalf("LoadGroup: %v", err)
	}
	if len(graph.Groups) != 1 {
		t.Fatalf("Groups = %v, want 1 (only the root parsed)", graph.Groups)
	}
	if !graph.Errors.HasErrors() {
		t.Fatal("expected a read-error diagnostic for the missing sub-group")
	}
}
