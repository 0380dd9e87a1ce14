package lower

import (
	"millet/internal/ast"
	"millet/internal/hir"
	"millet/internal/source"
)

func (l *lowerer) lowerExp(e ast.Exp) hir.Idx[hir.Exp] {
	span := ast.ExpSpan(e)
	switch e := e.(type) {
	case nil:
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpHole}, span)
	case *ast.HoleExp:
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpHole}, span)
	case *ast.SCon:
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpSCon, SCon: lowerSCon(e.Kind, e.Text)}, span)
	case *ast.PathExp:
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpPath, Path: hir.PathExp{Path: e.Path}}, span)
	case *ast.RecordExp:
		rows := make([]hir.ExpRow, len(e.Rows))
		for i, r := range e.Rows {
			rows[i] = hir.ExpRow{Lab: r.Lab, Exp: l.lowerExp(r.Exp)}
		}
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpRecord, Record: hir.RecordExp{Rows: rows}}, span)
	case *ast.LetExp:
		dec := l.lowerDec(e.Dec)
		body := l.lowerExp(e.Body)
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpLet, Let: hir.LetExp{Dec: dec, Body: body}}, span)
	case *ast.AppExp:
		fn := l.lowerExp(e.Func)
		arg := l.lowerExp(e.Arg)
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpApp, App: hir.AppExp{Func: fn, Arg: arg}}, span)
	case *ast.HandleExp:
		inner := l.lowerExp(e.Exp)
		arms := l.lowerMatcher(e.Matcher)
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpHandle, Handle: hir.HandleExp{Exp: inner, Matcher: arms}}, span)
	case *ast.RaiseExp:
		inner := l.lowerExp(e.Exp)
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpRaise, Raise: hir.RaiseExp{Exp: inner}}, span)
	case *ast.FnExp:
		arms := l.lowerMatcher(e.Matcher)
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpFn, Fn: hir.FnExp{Matcher: arms}}, span)
	case *ast.TypedExp:
		inner := l.lowerExp(e.Exp)
		ty := l.lowerTy(e.Ty)
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpTyped, Typed: hir.TypedExp{Exp: inner, Ty: ty}}, span)

	// case exp of matcher ~~> (fn matcher) exp
	case *ast.CaseExp:
		arms := l.lowerMatcher(e.Matcher)
		fn := l.prog.AllocExp(hir.Exp{Kind: hir.ExpFn, Fn: hir.FnExp{Matcher: arms}}, span)
		scrutinee := l.lowerExp(e.Exp)
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpApp, App: hir.AppExp{Func: fn, Arg: scrutinee}}, span)

	// if c then t else f ~~> case c of true => t | false => f
	case *ast.IfExp:
		cond := l.lowerExp(e.Cond)
		then := l.lowerExp(e.Then)
		els := l.lowerExp(e.Else)
		arms := []hir.Arm{
			{Pat: l.boolPat(true, span), Exp: then},
			{Pat: l.boolPat(false, span), Exp: els},
		}
		fn := l.prog.AllocExp(hir.Exp{Kind: hir.ExpFn, Fn: hir.FnExp{Matcher: arms}}, span)
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpApp, App: hir.AppExp{Func: fn, Arg: cond}}, span)

	// a andalso b ~~> if a then b else false
	case *ast.AndalsoExp:
		left := l.lowerExp(e.Left)
		right := l.lowerExp(e.Right)
		falseExp := l.boolExp(false, span)
		arms := []hir.Arm{
			{Pat: l.boolPat(true, span), Exp: right},
			{Pat: l.boolPat(false, span), Exp: falseExp},
		}
		fn := l.prog.AllocExp(hir.Exp{Kind: hir.ExpFn, Fn: hir.FnExp{Matcher: arms}}, span)
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpApp, App: hir.AppExp{Func: fn, Arg: left}}, span)

	// a orelse b ~~> if a then true else b
	case *ast.OrelseExp:
		left := l.lowerExp(e.Left)
		right := l.lowerExp(e.Right)
		trueExp := l.boolExp(true, span)
		arms := []hir.Arm{
			{Pat: l.boolPat(true, span), Exp: trueExp},
			{Pat: l.boolPat(false, span), Exp: right},
		}
		fn := l.prog.AllocExp(hir.Exp{Kind: hir.ExpFn, Fn: hir.FnExp{Matcher: arms}}, span)
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpApp, App: hir.AppExp{Func: fn, Arg: left}}, span)

	// while c do body ~~> let val rec loop = fn () => if c then (body; loop ()) else () in loop () end
	case *ast.WhileExp:
		return l.lowerWhile(e, span)

	case *ast.SeqExp:
		// e1; e2; ...; en ~~> case e1 of _ => case e2 of _ => ... en
		return l.lowerSeq(e.Exps, span)

	default:
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpHole}, span)
	}
}

func (l *lowerer) lowerMatcher(arms []ast.Arm) []hir.Arm {
	out := make([]hir.Arm, len(arms))
	for i, a := range arms {
		out[i] = hir.Arm{Pat: l.lowerPat(a.Pat), Exp: l.lowerExp(a.Exp)}
	}
	return out
}

// lowerSeq lowers `e1; e2; ...; en` to nested `case ei of _ => e(i+1)`,
// right-associating so the last expression's value is the whole
// sequence's value.
func (l *lowerer) lowerSeq(exps []ast.Exp, span source.Span) hir.Idx[hir.Exp] {
	if len(exps) == 0 {
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpHole}, span)
	}
	last := l.lowerExp(exps[len(exps)-1])
	for i := len(exps) - 2; i >= 0; i-- {
		cur := l.lowerExp(exps[i])
		wild := l.prog.AllocPat(hir.Pat{Kind: hir.PatWild}, span)
		arms := []hir.Arm{{Pat: wild, Exp: last}}
		fn := l.prog.AllocExp(hir.Exp{Kind: hir.ExpFn, Fn: hir.FnExp{Matcher: arms}}, span)
		last = l.prog.AllocExp(hir.Exp{Kind: hir.ExpApp, App: hir.AppExp{Func: fn, Arg: cur}}, span)
	}
	return last
}
