// Package dag topologically orders a project.Graph's groups and detects
// cycles among them, grounded on the teacher's own internal/project/dag
// package (graph.go/topo.go/index.go) but adapted from surge's source-file
// import graph to SML's group-file dependency graph.
//
// The teacher keeps a separate ModuleIndex mapping module paths to dense
// IDs (index.go's BuildIndex); this package drops that layer entirely,
// since millet's own paths.Store (spec.md §4.1) already assigns every
// group file a dense, stable paths.Id — duplicating that mapping here
// would just be a second id space for the same paths.
package dag

import (
	"sort"

	"millet/internal/paths"
	"millet/internal/project"
)

// Graph is a dense adjacency-list view of a project.Graph's group
// dependencies, indexed directly by paths.Id (the teacher's Edges/Indeg/
// Present slices, carried over unchanged in shape).
type Graph struct {
	Edges   [][]paths.Id // Edges[from] = []to
	Indeg   []int
	Present []bool
}

// BuildGraph builds a Graph over every group in g, sized to size (normally
// the owning paths.Store's Len(), so every Id g's Dependencies might name
// is addressable even if that group itself never loaded).
func BuildGraph(g *project.Graph, size int) Graph {
	dg := Graph{
		Edges:   make([][]paths.Id, size),
		Indeg:   make([]int, size),
		Present: make([]bool, size),
	}
	for id := range g.Groups {
		dg.Present[id] = true
	}
	for from, grp := range g.Groups {
		seen := make(map[paths.Id]bool, len(grp.Dependencies))
		for _, to := range grp.Dependencies {
			if to == from || seen[to] {
				continue
			}
			seen[to] = true
			dg.Edges[from] = append(dg.Edges[from], to)
			if dg.Present[to] {
				dg.Indeg[to]++
			}
		}
		sort.Slice(dg.Edges[from], func(i, j int) bool { return dg.Edges[from][i] < dg.Edges[from][j] })
	}
	return dg
}
