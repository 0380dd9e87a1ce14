package dag

import (
	"testing"

	"millet/internal/diag"
	"millet/internal/paths"
	"millet/internal/project"
)

func newStore(t *testing.T, names ...string) (*paths.Store, map[string]paths.Id) {
	t.Helper()
	store := paths.NewStore("/root")
	ids := make(map[string]paths.Id, len(names))
	for _, name := range names {
		id, err := store.GetID(paths.CanonicalPath("/root/" + name))
		if err != nil {
			t.Fatalf("GetID(%q): %v", name, err)
		}
		ids[name] = id
	}
	return store, ids
}

func TestBuildGraphOrdersAcyclicDeps(t *testing.T) {
	store, ids := newStore(t, "a.cm", "b.cm", "c.cm")
	groups := map[paths.Id]*project.Group{
		ids["a.cm"]: {Dependencies: []paths.Id{ids["b.cm"], ids["c.cm"]}},
		ids["b.cm"]: {Dependencies: []paths.Id{ids["c.cm"]}},
		ids["c.cm"]: {},
	}
	g := &project.Graph{Groups: groups}

	dg := BuildGraph(g, store.Len())
	topo := ToposortKahn(dg)

	if topo.Cyclic {
		t.Fatalf("unexpected cycle: %v", topo.Cycles)
	}
	pos := make(map[paths.Id]int, len(topo.Order))
	for i, id := range topo.Order {
		pos[id] = i
	}
	if pos[ids["a.cm"]] > pos[ids["b.cm"]] || pos[ids["b.cm"]] > pos[ids["c.cm"]] {
		t.Fatalf("order %v does not list dependents before their dependencies", topo.Order)
	}
}

func TestToposortKahnDetectsCycle(t *testing.T) {
	store, ids := newStore(t, "a.cm", "b.cm")
	groups := map[paths.Id]*project.Group{
		ids["a.cm"]: {Dependencies: []paths.Id{ids["b.cm"]}},
		ids["b.cm"]: {Dependencies: []paths.Id{ids["a.cm"]}},
	}
	g := &project.Graph{Groups: groups}

	dg := BuildGraph(g, store.Len())
	topo := ToposortKahn(dg)

	if !topo.Cyclic {
		t.Fatal("expected a cycle")
	}
	if len(topo.Cycles) != 2 {
		t.Fatalf("Cycles = %v, want both a.cm and b.cm", topo.Cycles)
	}

	errs := diag.NewBag()
	ReportCycles(g, store, topo, errs)
	if !errs.HasErrors() {
		t.Fatal("expected ReportCycles to add a diagnostic")
	}
	for _, d := range errs.Items() {
		if d.Code != diag.InputCycle {
			t.Fatalf("code = %v, want InputCycle", d.Code)
		}
	}
}

func TestBuildGraphIgnoresSelfImport(t *testing.T) {
	store, ids := newStore(t, "a.cm")
	groups := map[paths.Id]*project.Group{
		ids["a.cm"]: {Dependencies: []paths.Id{ids["a.cm"]}},
	}
	g := &project.Graph{Groups: groups}

	dg := BuildGraph(g, store.Len())
	if len(dg.Edges[ids["a.cm"]]) != 0 {
		t.Fatalf("self-import should be dropped, got edges %v", dg.Edges[ids["a.cm"]])
	}
}
