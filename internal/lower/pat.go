package lower

import (
	"millet/internal/ast"
	"millet/internal/hir"
)

func (l *lowerer) lowerPat(p ast.Pat) hir.Idx[hir.Pat] {
	span := ast.PatSpan(p)
	switch p := p.(type) {
	case nil:
		return l.prog.AllocPat(hir.Pat{Kind: hir.PatWild}, span)
	case *ast.HolePat:
		return l.prog.AllocPat(hir.Pat{Kind: hir.PatWild}, span)
	case *ast.WildPat:
		return l.prog.AllocPat(hir.Pat{Kind: hir.PatWild}, span)
	case *ast.SConPat:
		return l.prog.AllocPat(hir.Pat{Kind: hir.PatSCon, SCon: lowerSCon(p.Kind, p.Text)}, span)
	case *ast.ConPat:
		var arg hir.Idx[hir.Pat]
		if p.Arg != nil {
			arg = l.lowerPat(p.Arg)
		}
		return l.prog.AllocPat(hir.Pat{Kind: hir.PatCon, Con: hir.ConPat{Path: p.Path, Arg: arg}}, span)
	case *ast.RecordPat:
		rows := make([]hir.PatRow, len(p.Rows))
		for i, r := range p.Rows {
			rows[i] = hir.PatRow{Lab: r.Lab, Pat: l.lowerPat(r.Pat)}
		}
		return l.prog.AllocPat(hir.Pat{Kind: hir.PatRecord, Record: hir.RecordPat{Rows: rows, AllowsOther: p.AllowsOther}}, span)
	case *ast.TypedPat:
		inner := l.lowerPat(p.Pat)
		ty := l.lowerTy(p.Ty)
		return l.prog.AllocPat(hir.Pat{Kind: hir.PatTyped, Typed: hir.TypedPat{Pat: inner, Ty: ty}}, span)
	case *ast.AsPat:
		// The `as`-pattern's own optional type annotation is relocated onto
		// the rhs pattern during lowering (spec.md §4.5), rather than kept
		// as a separate hir.AsPat field.
		inner := l.lowerPat(p.Pat)
		if p.Ty != nil {
			ty := l.lowerTy(p.Ty)
			inner = l.prog.AllocPat(hir.Pat{Kind: hir.PatTyped, Typed: hir.TypedPat{Pat: inner, Ty: ty}}, span)
		}
		return l.prog.AllocPat(hir.Pat{Kind: hir.PatAs, As: hir.AsPat{Name: p.Name, Pat: inner}}, span)
	case *ast.OrPat:
		if len(p.Pats) == 0 {
			return l.prog.AllocPat(hir.Pat{Kind: hir.PatWild}, span)
		}
		first := l.lowerPat(p.Pats[0])
		rest := make([]hir.Idx[hir.Pat], len(p.Pats)-1)
		for i, sub := range p.Pats[1:] {
			rest[i] = l.lowerPat(sub)
		}
		return l.prog.AllocPat(hir.Pat{Kind: hir.PatOr, Or: hir.OrPat{First: first, Rest: rest}}, span)
	default:
		return l.prog.AllocPat(hir.Pat{Kind: hir.PatWild}, span)
	}
}
