package dynamics

import "millet/internal/hir"

// declareDatatype binds every constructor of dec into st.Env as a nullary
// Con value (see types.go's Env doc comment for why dynamics keeps
// constructors in the same flat name table as ordinary values, instead of
// the original's separate per-expression IdStatus cache).
func declareDatatype(st *St, dec hir.DatatypeDec) {
	for _, b := range dec.Binds {
		for _, c := range b.Cons {
			st.Env.Val[c.Name] = Val{Kind: ValCon, Con: Con{Kind: ConKind{Tag: ConDat, Name: c.Name}}}
		}
	}
}

// declareDatatypeCopy is a no-op: `datatype t = datatype u` introduces a
// new type name for statics but no new constructor NAMEs (u's
// constructors are already bound in st.Env under their existing names,
// from whichever earlier declareDatatype call declared u). Since this
// port's dynamics Env is flat and name-keyed rather than type-keyed (see
// types.go), there is nothing further to bind here.
func declareDatatypeCopy(st *St, d hir.DatatypeCopyDec) {}

// declareException binds a fresh or copied exception name. A freshly
// declared exception gets its own identity from st.newLocalExn: this is a
// dynamics-private counter, independent of symbols.Syms's own exception
// table (which statics already populated separately during elaboration of
// the same declaration) — matching by Con.Kind.Name in pat_match.go never
// consults it, so it exists purely so two distinct runtime Con values for
// same-named exceptions declared in different scopes remain distinguishable
// to a caller inspecting raw Val data, without this port needing a shared
// statics/dynamics exception-id side table.
func declareException(st *St, dec hir.ExceptionDec) {
	for _, b := range dec.Binds {
		if b.IsCopy {
			if v, ok := st.Env.Val[b.Source.Last]; ok {
				st.Env.Val[b.Name] = v
			}
			continue
		}
		st.Env.Val[b.Name] = Val{Kind: ValCon, Con: Con{Kind: ConKind{Tag: ConExn, Name: b.Name, Exn: st.newLocalExn()}}}
	}
}
