package lower

import (
	"millet/internal/ast"
	"millet/internal/hir"
)

func (l *lowerer) lowerTy(t ast.Ty) hir.Idx[hir.Ty] {
	span := ast.TySpan(t)
	switch t := t.(type) {
	case nil:
		return l.prog.AllocTy(hir.Ty{Kind: hir.TyHole}, span)
	case *ast.HoleTy:
		return l.prog.AllocTy(hir.Ty{Kind: hir.TyHole}, span)
	case *ast.VarTy:
		return l.prog.AllocTy(hir.Ty{Kind: hir.TyVar, Var: hir.VarTy{Var: t.Var}}, span)
	case *ast.RecordTy:
		rows := make([]hir.TyRow, len(t.Rows))
		for i, r := range t.Rows {
			rows[i] = hir.TyRow{Lab: r.Lab, Ty: l.lowerTy(r.Ty)}
		}
		return l.prog.AllocTy(hir.Ty{Kind: hir.TyRecord, Record: hir.RecordTy{Rows: rows}}, span)
	case *ast.ConTy:
		args := make([]hir.Idx[hir.Ty], len(t.Args))
		for i, a := range t.Args {
			args[i] = l.lowerTy(a)
		}
		return l.prog.AllocTy(hir.Ty{Kind: hir.TyCon, Con: hir.ConTy{Args: args, Path: t.Path}}, span)
	case *ast.FnTy:
		param := l.lowerTy(t.Param)
		result := l.lowerTy(t.Result)
		return l.prog.AllocTy(hir.Ty{Kind: hir.TyFn, Fn: hir.FnTy{Param: param, Result: result}}, span)
	default:
		return l.prog.AllocTy(hir.Ty{Kind: hir.TyHole}, span)
	}
}

func (l *lowerer) lowerTyBind(b ast.TyBind) hir.TyBind {
	return hir.TyBind{TyVars: b.TyVars, Name: b.Name, Ty: l.lowerTy(b.Ty)}
}
