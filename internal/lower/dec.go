package lower

import (
	"millet/internal/ast"
	"millet/internal/diag"
	"millet/internal/hir"
	"millet/internal/source"
)

func (l *lowerer) lowerDec(d ast.Dec) hir.Idx[hir.Dec] {
	span := ast.DecSpan(d)
	switch d := d.(type) {
	case nil:
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecHole}, span)
	case *ast.HoleDec:
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecHole}, span)
	case *ast.ValDec:
		binds := make([]hir.ValBind, len(d.Binds))
		for i, b := range d.Binds {
			binds[i] = hir.ValBind{Rec: b.Rec, Pat: l.lowerPat(b.Pat), Exp: l.lowerExp(b.Exp)}
		}
		// Implicit type variables are left empty; statics fills them in
		// from the bound expression's free tyvars (spec.md §4.5).
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecVal, Val: hir.ValDec{TyVars: d.TyVars, Binds: binds}}, span)
	case *ast.FunDec:
		return l.lowerFunDec(d, span)
	case *ast.TypeDec:
		binds := make([]hir.TyBind, len(d.Binds))
		for i, b := range d.Binds {
			binds[i] = l.lowerTyBind(b)
		}
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecTy, Ty: hir.TyDec{Binds: binds}}, span)
	case *ast.DatatypeDec:
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecDatatype, Datatype: hir.DatatypeDec{
			Binds:    l.lowerDatBinds(d.Binds),
			WithType: l.lowerTyBinds(d.WithType),
		}}, span)
	case *ast.DatatypeCopyDec:
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecDatatypeCopy, DatatypeCopy: hir.DatatypeCopyDec{Name: d.Name, Path: d.Path}}, span)
	case *ast.AbstypeDec:
		inner := l.lowerDec(d.Dec)
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecAbstype, Abstype: hir.AbstypeDec{
			Binds:    l.lowerDatBinds(d.Binds),
			WithType: l.lowerTyBinds(d.WithType),
			Dec:      inner,
		}}, span)
	case *ast.ExceptionDec:
		binds := make([]hir.ExBind, len(d.Binds))
		for i, b := range d.Binds {
			eb := hir.ExBind{Name: b.Name}
			if b.Kind == ast.ExBindCopy {
				eb.IsCopy = true
				eb.Source = b.Source
			} else if b.Arg != nil {
				eb.Arg = l.lowerTy(b.Arg)
			}
			binds[i] = eb
		}
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecException, Exception: hir.ExceptionDec{Binds: binds}}, span)
	case *ast.LocalDec:
		left := l.lowerDec(d.Left)
		right := l.lowerDec(d.Right)
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecLocal, Local: hir.LocalDec{Left: left, Right: right}}, span)
	case *ast.OpenDec:
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecOpen, Open: hir.OpenDec{Paths: d.Paths}}, span)
	case *ast.SeqDec:
		idxs := make([]hir.Idx[hir.Dec], len(d.Decs))
		for i, sub := range d.Decs {
			idxs[i] = l.lowerDec(sub)
		}
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecSeq, Seq: hir.SeqDec{Decs: idxs}}, span)
	case *ast.FixityDec:
		// Fixity declarations are a parse-time-only effect (spec.md §3
		// Dec list); lowering replaces each with an empty DecSeq node.
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecSeq, Seq: hir.SeqDec{}}, span)
	default:
		return l.prog.AllocDec(hir.Dec{Kind: hir.DecHole}, span)
	}
}

func (l *lowerer) lowerDatBinds(bs []ast.DatBind) []hir.DatBind {
	out := make([]hir.DatBind, len(bs))
	for i, b := range bs {
		cons := make([]hir.ConBind, len(b.Cons))
		for j, c := range b.Cons {
			cb := hir.ConBind{Name: c.Name}
			if c.Arg != nil {
				cb.Arg = l.lowerTy(c.Arg)
			}
			cons[j] = cb
		}
		out[i] = hir.DatBind{TyVars: b.TyVars, Name: b.Name, Cons: cons}
	}
	return out
}

func (l *lowerer) lowerTyBinds(bs []ast.TyBind) []hir.TyBind {
	out := make([]hir.TyBind, len(bs))
	for i, b := range bs {
		out[i] = l.lowerTyBind(b)
	}
	return out
}

// lowerFunDec desugars `fun name pat1 ... patn = exp | ...` into the
// standard `val rec` translation (Definition of Standard ML, Appendix A):
// fresh variables v1..vn are introduced, and the clauses become a case
// matcher over the (possibly tupled) fresh variables.
//
//	fun f p11 ... p1n = e1 | p21 ... p2n = e2 | ...
//	~~>
//	val rec f = fn v1 => ... => fn vn => case (v1, ..., vn) of
//	  (p11, ..., p1n) => e1 | (p21, ..., p2n) => e2 | ...
//
// For arity 1 there is no tupling: `case v1 of p11 => e1 | ...`.
func (l *lowerer) lowerFunDec(d *ast.FunDec, span source.Span) hir.Idx[hir.Dec] {
	binds := make([]hir.ValBind, 0, len(d.Binds))
	for _, fb := range d.Binds {
		if len(fb.Clauses) == 0 {
			continue
		}
		name := fb.Clauses[0].Name
		arity := len(fb.Clauses[0].Args)
		fresh := make([]ast.Name, arity)
		for i := range fresh {
			fresh[i] = l.fresh()
		}

		arms := make([]hir.Arm, len(fb.Clauses))
		for i, clause := range fb.Clauses {
			if len(clause.Args) != arity {
				l.err(diag.LowerFunArityMismatch, fb.Span, "fun clauses for the same name must have the same arity")
			}
			body := l.lowerExp(clause.Body)
			if clause.RetTy != nil {
				ty := l.lowerTy(clause.RetTy)
				body = l.prog.AllocExp(hir.Exp{Kind: hir.ExpTyped, Typed: hir.TypedExp{Exp: body, Ty: ty}}, ast.ExpSpan(clause.Body))
			}
			var pat hir.Idx[hir.Pat]
			if arity == 1 {
				pat = l.lowerPat(clause.Args[0])
			} else {
				rows := make([]hir.PatRow, len(clause.Args))
				for j, a := range clause.Args {
					rows[j] = hir.PatRow{Lab: ast.Lab{Index: j + 1}, Pat: l.lowerPat(a)}
				}
				pat = l.prog.AllocPat(hir.Pat{Kind: hir.PatRecord, Record: hir.RecordPat{Rows: rows}}, clause.Span)
			}
			arms[i] = hir.Arm{Pat: pat, Exp: body}
		}

		var scrutinee hir.Idx[hir.Exp]
		if arity == 1 {
			scrutinee = l.varExp(fresh[0], span)
		} else {
			rows := make([]hir.ExpRow, arity)
			for j, v := range fresh {
				rows[j] = hir.ExpRow{Lab: ast.Lab{Index: j + 1}, Exp: l.varExp(v, span)}
			}
			scrutinee = l.prog.AllocExp(hir.Exp{Kind: hir.ExpRecord, Record: hir.RecordExp{Rows: rows}}, span)
		}
		caseFn := l.prog.AllocExp(hir.Exp{Kind: hir.ExpFn, Fn: hir.FnExp{Matcher: arms}}, span)
		body := l.prog.AllocExp(hir.Exp{Kind: hir.ExpApp, App: hir.AppExp{Func: caseFn, Arg: scrutinee}}, span)

		for i := arity - 1; i >= 0; i-- {
			argPat := l.varPat(fresh[i], span)
			body = l.prog.AllocExp(hir.Exp{Kind: hir.ExpFn, Fn: hir.FnExp{Matcher: []hir.Arm{{Pat: argPat, Exp: body}}}}, span)
		}

		binds = append(binds, hir.ValBind{Rec: true, Pat: l.varPat(name, fb.Span), Exp: body})
	}
	return l.prog.AllocDec(hir.Dec{Kind: hir.DecVal, Val: hir.ValDec{TyVars: d.TyVars, Binds: binds}}, span)
}
