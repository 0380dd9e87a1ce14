// Package driver implements the Analysis façade (spec.md §4.8): it
// orchestrates lex → parse → lower → statics over an input's group graph
// in topological dependency order, and maps each pass's errors back to
// source ranges, grounded on the teacher's own top-level orchestration in
// internal/driver/project.go and parallel.go. Elaboration here is
// single-threaded; the only concurrency is project.LoadGroup's reads of
// group files, one breadth-first layer at a time, bounded by Jobs.
package driver

import (
	"context"
	"fmt"

	"millet/internal/config"
	"millet/internal/diag"
	"millet/internal/lexer"
	"millet/internal/lower"
	"millet/internal/parser"
	"millet/internal/paths"
	"millet/internal/project"
	"millet/internal/project/dag"
	"millet/internal/source"
	"millet/internal/statics"
	"millet/internal/symbols"
	"millet/internal/types"
)

// AnalyzedFile is one file's complete pipeline output (spec.md §4.8:
// "instantiates a fresh AnalyzedFile { lex_errors, parse, lowered,
// statics_errors }").
type AnalyzedFile struct {
	Path    paths.Id
	Lex     lexer.Result
	Parse   parser.Result
	Lowered lower.Result
	Statics *diag.Bag
}

// AllErrors merges every phase's diagnostics into one sorted Bag.
func (f *AnalyzedFile) AllErrors() *diag.Bag {
	bag := diag.NewBag()
	bag.Merge(f.Lex.Errors)
	bag.Merge(f.Parse.Errors)
	bag.Merge(f.Lowered.Errors)
	bag.Merge(f.Statics)
	bag.Sort()
	return bag
}

// Analysis owns everything that must survive across an input's files
// (spec.md §3 "Lifecycles": Syms lives across files within one Analysis
// invocation, threaded mutably through every elaboration pass in
// topological dependency order; Subst is fresh per file).
type Analysis struct {
	FS      project.FileSystem
	Store   *paths.Store
	FileSet *source.FileSet
	Types   *types.Store
	Syms    *symbols.Syms
	Basis   symbols.Basis

	// Jobs bounds the concurrency of project.LoadGroup's member-read
	// fan-out; it has no bearing on elaboration itself, which is
	// single-threaded by design (spec.md §5).
	Jobs int
}

// NewAnalysis creates an Analysis rooted at root, with a fresh standard
// basis (spec.md §3: Syms/Subst are owned exclusively by the current
// analysis — nothing here is shared across Analysis values).
func NewAnalysis(fs project.FileSystem, root paths.CanonicalPath, jobs int) *Analysis {
	store := types.NewStore()
	syms, basis := symbols.NewWithBasis(store)
	return &Analysis{
		FS:      fs,
		Store:   paths.NewStore(root),
		FileSet: source.NewFileSet(),
		Types:   store,
		Syms:    syms,
		Basis:   basis,
		Jobs:    jobs,
	}
}

// Results is the façade's output: spec.md §4.8's `PathMap<Vec<Error>>`,
// generalized to the full AnalyzedFile rather than just its errors so a
// caller (internal/diagfmt, internal/lsp) can still reach the lowered
// program or individual phase buckets when it needs to.
type Results map[paths.Id]*AnalyzedFile

// GetMany runs the façade over rootDir: resolves its config and root
// group file, loads the full group dependency graph, topologically
// orders it (reporting any cycle as an InputCycle diagnostic rather than
// aborting — the acyclic remainder still gets analyzed), and elaborates
// every member file of every group in dependency order, each file's
// Cx/Env chained from the one before it within its own group (spec.md
// §4.8's per-group sequencing) and reseeded from the standard basis at
// each group boundary — full cross-group Library export resolution is
// future work (see DESIGN.md's Open Questions).
func (a *Analysis) GetMany(ctx context.Context, rootDir string) (Results, *diag.Bag, error) {
	topErrs := diag.NewBag()

	configPath, hasConfig, err := project.FindConfig(a.FS, rootDir)
	if err != nil {
		return nil, nil, err
	}

	cfg := config.Config{}
	if hasConfig {
		cfg, err = project.LoadConfig(a.FS, configPath)
		if err != nil {
			return nil, nil, err
		}
	}
	rootGroupPath, err := project.ResolveRootGroup(a.FS, rootDir, cfg, hasConfig)
	if err != nil {
		return nil, nil, err
	}

	graph, err := project.LoadGroup(ctx, a.FS, a.FileSet, a.Store, pathVarsFrom(cfg), rootGroupPath, a.Jobs)
	if err != nil {
		return nil, nil, err
	}
	topErrs.Merge(graph.Errors)

	dg := dag.BuildGraph(graph, a.Store.Len())
	topo := dag.ToposortKahn(dg)
	dag.ReportCycles(graph, a.Store, topo, topErrs)

	// topo.Order lists dependents before their dependencies (Kahn over
	// edges oriented dependent→dependency); elaboration needs the reverse,
	// dependencies before dependents, matching the convention the
	// teacher's own dag.ComputeModuleHashes relies on for the same reason.
	order := make([]paths.Id, len(topo.Order))
	for i, id := range topo.Order {
		order[len(topo.Order)-1-i] = id
	}

	results := make(Results, a.Store.Len())
	for _, gid := range order {
		grp, ok := graph.Groups[gid]
		if !ok {
			continue
		}
		a.elaborateGroup(grp, results)
	}
	return results, topErrs, nil
}

// pathVarsFrom flattens a config's workspace.path_vars table into the
// project.PathVars shape LoadGroup expects: only the literal `value` kind
// resolves to a plain string substitution here, since `path`/
// `workspace-path` entries need filesystem context LoadGroup's own
// $(VAR) expansion doesn't currently have a hook for (left unexpanded,
// which falls through to the caller-diagnoses-it behavior spec.md §4.2
// already defines for unresolved variables).
func pathVarsFrom(cfg config.Config) project.PathVars {
	vars := make(project.PathVars, len(cfg.Workspace.PathVars))
	for name, entry := range cfg.Workspace.PathVars {
		if entry.Kind == config.PathVarValue {
			vars[name] = entry.Value
		}
	}
	return vars
}

// elaborateGroup runs every non-stdlib, non-sub-group member of grp
// through the full pipeline in declared order, threading one Cx across
// them the way statics.Get's own doc comment describes for a group's
// files.
func (a *Analysis) elaborateGroup(grp *project.Group, results Results) {
	cx := statics.RootCx(a.Basis)
	for _, m := range grp.Members {
		if m.Class == project.ClassCM || m.Path == 0 {
			continue
		}
		filePath := string(a.Store.GetPath(m.Path))
		content, err := a.FS.ReadToString(filePath)
		if err != nil {
			af := &AnalyzedFile{Path: m.Path, Statics: diag.NewBag()}
			af.Statics.Add(diag.NewError(diag.InputReadFile, source.Span{}, fmt.Sprintf("%s: %v", filePath, err)))
			results[m.Path] = af
			continue
		}
		af, nextEnv := a.elaborateFile(filePath, content, cx)
		af.Path = m.Path
		results[m.Path] = af
		cx = cx.WithEnv(nextEnv)
	}
}

// elaborateFile runs one file through lex → parse → lower → statics,
// starting statics elaboration from start.
func (a *Analysis) elaborateFile(path, content string, start statics.Cx) (*AnalyzedFile, statics.Env) {
	fid := a.FileSet.AddVirtual(path, []byte(content))
	f := a.FileSet.Get(fid)

	lx := lexer.Lex(f)
	ps := parser.Parse(f, lx.Tokens)
	lw := lower.Lower(ps.File)

	st := statics.NewFileSt(lw.Program, a.Syms, a.Types, a.Basis)
	env := statics.Get(st, statics.Regular, start)

	return &AnalyzedFile{
		Lex:     lx,
		Parse:   ps,
		Lowered: lw,
		Statics: st.Errs,
	}, env
}

// GetOne runs the same pipeline on a single detached buffer (spec.md
// §4.8's "get_one(source)"), for unsaved editor contents that may not
// belong to any file on disk.
func (a *Analysis) GetOne(name string, content []byte) *AnalyzedFile {
	af, _ := a.elaborateFile(name, string(content), statics.RootCx(a.Basis))
	return af
}
