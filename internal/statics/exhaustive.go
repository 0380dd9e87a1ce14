package statics

import (
	"millet/internal/ast"
	"millet/internal/types"
)

// exhaustive reports whether matrix (each row one matchPat for a single
// scrutinee of the same type) covers every possible value, following the
// standard default-matrix algorithm (spec.md §4.6 "Pattern matching and
// exhaustiveness"): a wildcard/var row covers everything not covered by
// the rows' constructors, so the matrix is exhaustive iff a trailing bare
// wildcard would NOT be useful against it.
func exhaustive(st *St, rows []matchPat) bool {
	return !useful(st, rows, wildMatch())
}

// useful reports whether q is not yet covered by any row of rows (the
// classical usefulness check): a row is redundant iff it is not useful
// against the rows strictly above it.
func useful(st *St, rows []matchPat, q matchPat) bool {
	if len(rows) == 0 {
		return true
	}
	switch q.kind {
	case matchWild:
		return usefulWild(st, rows)
	case matchCon:
		return usefulCon(st, rows, q)
	case matchRecord:
		return usefulRecord(st, rows, q)
	default: // matchSCon
		return usefulSCon(rows, q)
	}
}

// usefulWild: q is a bare wildcard, useful unless the rows' constructors
// already cover every constructor of the scrutinee's datatype (or some row
// is itself a wildcard).
func usefulWild(st *St, rows []matchPat) bool {
	heads := map[ast.Name]bool{}
	var sym types.Sym
	haveSym := false
	for _, r := range rows {
		switch r.kind {
		case matchWild:
			return false
		case matchCon:
			heads[r.con] = true
			sym, haveSym = r.sym, true
		case matchRecord, matchSCon:
			return true // no enumerable signature: a literal/record row never excludes wild
		}
	}
	if !haveSym {
		return true
	}
	return len(heads) < conCount(st, sym)
}

// conCount returns how many constructors sym's datatype declares.
func conCount(st *St, sym types.Sym) int {
	info, ok := st.Syms.Get(sym)
	if !ok {
		return 0
	}
	n := 0
	info.TyInfo.ValEnv.Iter(func(_ ast.Name, v types.ValInfo) {
		if v.IdStatus.Tag == types.IdCon {
			n++
		}
	})
	return n
}

func usefulCon(st *St, rows []matchPat, q matchPat) bool {
	var subRows []matchPat
	for _, r := range rows {
		switch r.kind {
		case matchWild:
			subRows = append(subRows, wildMatch())
		case matchCon:
			if r.con != q.con {
				continue
			}
			if r.arg != nil {
				subRows = append(subRows, *r.arg)
			} else {
				subRows = append(subRows, wildMatch())
			}
		}
	}
	if q.arg != nil {
		return useful(st, subRows, *q.arg)
	}
	return useful(st, subRows, wildMatch())
}

// usefulRecord treats each element position independently rather than
// tracking row-correlation across positions: sound for the common case
// (tuple/record patterns that vary in at most one position) but can
// under-report usefulness for patterns that correlate multiple positions.
func usefulRecord(st *St, rows []matchPat, q matchPat) bool {
	if len(q.elems) == 0 {
		return false // the empty record/unit: any row reaching here already covers it
	}
	col := make([][]matchPat, len(q.elems))
	for _, r := range rows {
		var elems []matchPat
		switch r.kind {
		case matchWild:
			elems = make([]matchPat, len(q.elems))
			for i := range elems {
				elems[i] = wildMatch()
			}
		case matchRecord:
			elems = r.elems
		default:
			continue
		}
		for i, e := range elems {
			col[i] = append(col[i], e)
		}
	}
	for i, e := range q.elems {
		if useful(st, col[i], e) {
			return true
		}
	}
	return false
}

func usefulSCon(rows []matchPat, q matchPat) bool {
	for _, r := range rows {
		if r.kind == matchWild {
			return false
		}
		if r.kind == matchSCon && r.sconKind == q.sconKind && r.sconKey == q.sconKey {
			return false
		}
	}
	return true
}
