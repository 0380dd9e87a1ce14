package project

import (
	"context"
	"fmt"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"millet/internal/diag"
	"millet/internal/paths"
	"millet/internal/source"
)

// stdlibPath is the sentinel paths.Id standing in for a member or export
// that resolved to a PathVars "standard basis" sentinel rather than a real
// file (spec.md §4.2). paths.Store.GetID never issues the zero Id, so it is
// free to reuse here.
const stdlibPath paths.Id = 0

// Graph is every group reachable from a root group file, keyed by its
// PathId, plus every diagnostic collected while loading it.
type Graph struct {
	Root   paths.Id
	Groups map[paths.Id]*Group
	Errors *diag.Bag
}

// LoadGroup parses rootPath and everything it transitively depends on.
// Within one breadth-first layer, group files are read and parsed
// concurrently through the injected FileSystem via golang.org/x/sync/
// errgroup — group reads are independent, I/O-bound work, and spec.md §5
// calls this out as the system's one sanctioned concurrency. The graph
// itself (the map, the queue, the paths store) is only ever touched from
// the single calling goroutine between layers, preserving the "single-
// threaded core" guarantee.
func LoadGroup(ctx context.Context, fsys FileSystem, fset *source.FileSet, store *paths.Store, vars PathVars, rootPath string, jobs int) (*Graph, error) {
	rootID, err := store.GetID(paths.CanonicalPath(rootPath))
	if err != nil {
		return nil, err
	}

	g := &Graph{Root: rootID, Groups: map[paths.Id]*Group{}, Errors: &diag.Bag{}}
	queue := []string{rootPath}
	seen := map[string]bool{rootPath: true}

	for len(queue) > 0 {
		batch := queue
		queue = nil

		// Concurrent phase: only the I/O-bound reads touch multiple
		// goroutines at once, writing into a slice pre-sized and indexed
		// by each goroutine's own i so no locking is needed (mirrors the
		// teacher's errgroup fan-out in driver/parallel.go). fset, store,
		// and g.Errors are single-owner types with no internal locking
		// (spec.md §5), so nothing here may touch them.
		contents := make([]string, len(batch))
		readErrs := make([]error, len(batch))

		limit := jobs
		if limit <= 0 || limit > len(batch) {
			limit = len(batch)
		}
		eg, egctx := errgroup.WithContext(ctx)
		if limit > 0 {
			eg.SetLimit(limit)
		}
		for i, p := range batch {
			i, p := i, p
			eg.Go(func() error {
				select {
				case <-egctx.Done():
					return egctx.Err()
				default:
				}
				contents[i], readErrs[i] = fsys.ReadToString(p)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		// Single-threaded phase: parsing and interning mutate fset, store,
		// and g.Errors, so it runs back on the calling goroutine only.
		for i, p := range batch {
			if readErrs[i] != nil {
				g.Errors.Add(diag.NewError(diag.InputReadFile, source.Span{}, fmt.Sprintf("%s: %v", p, readErrs[i])))
				continue
			}
			grp := parseGroupContent(fsys, fset, store, vars, p, contents[i], g.Errors)
			id, err := store.GetID(paths.CanonicalPath(p))
			if err != nil {
				return nil, err
			}
			grp.Path = id
			g.Groups[id] = grp
			for _, dep := range grp.Dependencies {
				if dep == stdlibPath {
					continue
				}
				depPath := string(store.GetPath(dep))
				if !seen[depPath] {
					seen[depPath] = true
					queue = append(queue, depPath)
				}
			}
		}
	}
	return g, nil
}

// parseGroupContent parses a group file's already-read content, resolving
// its member paths against dir(absPath) and vars. Resolution failures are
// appended to errs as diagnostics rather than returned, so one bad member
// doesn't drop the rest of the group.
func parseGroupContent(fsys FileSystem, fset *source.FileSet, store *paths.Store, vars PathVars, absPath, content string, errs *diag.Bag) *Group {
	fid := fset.AddVirtual(absPath, []byte(content))
	toks := scan(fid, content)
	isLibrary, exports, rawMembers := parseGroupFile(toks, errs)

	dir := path.Dir(absPath)
	kind := KindCm
	if strings.HasSuffix(absPath, ".mlb") {
		kind = KindMlb
	}

	grp := &Group{Kind: kind, Exports: exports}
	if !isLibrary {
		grp.Exports = nil
	}
	for _, rm := range rawMembers {
		member, dep, ok := resolveMember(fsys, store, vars, dir, rm, errs)
		if !ok {
			continue
		}
		grp.Members = append(grp.Members, member)
		if dep != 0 {
			grp.Dependencies = append(grp.Dependencies, dep)
		}
	}
	return grp
}

// resolveMember expands rm.path's $(VAR) references, resolves it against
// dir, and interns the result. The returned dep is non-zero (and distinct
// from member.Path's stdlibPath case) only when the member is itself a
// sub-group reference, since those are what LoadGroup's BFS follows.
func resolveMember(fsys FileSystem, store *paths.Store, vars PathVars, dir string, rm rawMember, errs *diag.Bag) (member Member, dep paths.Id, ok bool) {
	expanded := vars.Expand(rm.path)
	if expanded.IsStdlib {
		class := classOf(rm.class, rm.path)
		return Member{Path: stdlibPath, Class: class, Span: rm.span}, 0, true
	}

	resolved := expanded.Value
	if !path.IsAbs(resolved) {
		resolved = path.Join(dir, resolved)
	}
	canon, err := fsys.Canonicalize(resolved)
	if err != nil {
		errs.Add(diag.NewError(diag.InputReadFile, rm.span, fmt.Sprintf("%s: %v", resolved, err)))
		return Member{}, 0, false
	}

	id, err := store.GetID(paths.CanonicalPath(canon))
	if err != nil {
		errs.Add(diag.NewError(diag.InputNotGroup, rm.span, err.Error()))
		return Member{}, 0, false
	}

	class := classOf(rm.class, canon)
	member = Member{Path: id, Class: class, Span: rm.span}
	if class == ClassCM {
		dep = id
	}
	return member, dep, true
}

// classOf resolves a member's declared class string, falling back to
// inferring one from the member's path extension when none was given
// (spec.md §6's `PATH [":" class]`, where the class is optional).
func classOf(declared, p string) MemberClass {
	if declared != "" {
		if c, ok := knownClasses[strings.ToLower(declared)]; ok {
			return c
		}
	}
	switch path.Ext(p) {
	case ".cm", ".mlb":
		return ClassCM
	case ".sig":
		return ClassSig
	case ".fun":
		return ClassFun
	default:
		return ClassSML
	}
}
