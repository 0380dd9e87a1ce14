package lower

import (
	"millet/internal/ast"
	"millet/internal/hir"
)

func (l *lowerer) lowerStrDec(d ast.StrDec) hir.Idx[hir.StrDec] {
	span := ast.StrDecSpan(d)
	switch d := d.(type) {
	case nil:
		return l.prog.AllocStrDec(hir.StrDec{Kind: hir.StrDecSeq}, span)
	case *ast.CoreStrDec:
		dec := l.lowerDec(d.Dec)
		return l.prog.AllocStrDec(hir.StrDec{Kind: hir.StrDecCore, Core: hir.CoreStrDec{Dec: dec}}, span)
	case *ast.StructureDec:
		binds := make([]hir.StrBind, len(d.Binds))
		for i, b := range d.Binds {
			sb := hir.StrBind{Name: b.Name, Asc: b.Asc, Exp: l.lowerStrExp(b.Exp)}
			if b.Sig != nil {
				sb.Sig = l.lowerSigExp(b.Sig)
			}
			binds[i] = sb
		}
		return l.prog.AllocStrDec(hir.StrDec{Kind: hir.StrDecStructure, Structure: hir.StructureDec{Binds: binds}}, span)
	case *ast.SignatureDec:
		binds := make([]hir.SigBind, len(d.Binds))
		for i, b := range d.Binds {
			binds[i] = hir.SigBind{Name: b.Name, Exp: l.lowerSigExp(b.Exp)}
		}
		return l.prog.AllocStrDec(hir.StrDec{Kind: hir.StrDecSignature, Signature: hir.SignatureDec{Binds: binds}}, span)
	case *ast.FunctorDec:
		binds := make([]hir.FunctorBind, len(d.Binds))
		for i, b := range d.Binds {
			fb := hir.FunctorBind{
				Name: b.Name, ParamName: b.ParamName, ParamSig: l.lowerSigExp(b.ParamSig),
				Asc: b.Asc, Body: l.lowerStrExp(b.Body),
			}
			if b.ResultSig != nil {
				fb.ResultSig = l.lowerSigExp(b.ResultSig)
			}
			binds[i] = fb
		}
		return l.prog.AllocStrDec(hir.StrDec{Kind: hir.StrDecFunctor, Functor: hir.FunctorDec{Binds: binds}}, span)
	case *ast.LocalStrDec:
		left := l.lowerStrDec(d.Left)
		right := l.lowerStrDec(d.Right)
		return l.prog.AllocStrDec(hir.StrDec{Kind: hir.StrDecLocal, Local: hir.LocalStrDec{Left: left, Right: right}}, span)
	case *ast.SeqStrDec:
		idxs := make([]hir.Idx[hir.StrDec], len(d.Decs))
		for i, sub := range d.Decs {
			idxs[i] = l.lowerStrDec(sub)
		}
		return l.prog.AllocStrDec(hir.StrDec{Kind: hir.StrDecSeq, Seq: hir.SeqStrDec{Decs: idxs}}, span)
	default:
		return l.prog.AllocStrDec(hir.StrDec{Kind: hir.StrDecSeq}, span)
	}
}

func (l *lowerer) lowerStrExp(e ast.StrExp) hir.Idx[hir.StrExp] {
	span := ast.StrExpSpan(e)
	switch e := e.(type) {
	case nil:
		return l.prog.AllocStrExp(hir.StrExp{Kind: hir.StrExpPath}, span)
	case *ast.StructStrExp:
		dec := l.lowerStrDec(e.Dec)
		return l.prog.AllocStrExp(hir.StrExp{Kind: hir.StrExpStruct, Struct: hir.StructStrExp{Dec: dec}}, span)
	case *ast.PathStrExp:
		return l.prog.AllocStrExp(hir.StrExp{Kind: hir.StrExpPath, Path: hir.PathStrExp{Path: e.Path}}, span)
	case *ast.AscriptionStrExp:
		inner := l.lowerStrExp(e.Exp)
		sig := l.lowerSigExp(e.Sig)
		return l.prog.AllocStrExp(hir.StrExp{Kind: hir.StrExpAscription, Ascription: hir.AscriptionStrExp{Exp: inner, Kind: e.Kind, Sig: sig}}, span)
	case *ast.AppStrExp:
		arg := l.lowerStrExp(e.Arg)
		return l.prog.AllocStrExp(hir.StrExp{Kind: hir.StrExpApp, App: hir.AppStrExp{Functor: e.Functor, Arg: arg}}, span)
	case *ast.LetStrExp:
		dec := l.lowerStrDec(e.Dec)
		body := l.lowerStrExp(e.Exp)
		return l.prog.AllocStrExp(hir.StrExp{Kind: hir.StrExpLet, Let: hir.LetStrExp{Dec: dec, Exp: body}}, span)
	default:
		return l.prog.AllocStrExp(hir.StrExp{Kind: hir.StrExpPath}, span)
	}
}

func (l *lowerer) lowerSigExp(e ast.SigExp) hir.Idx[hir.SigExp] {
	span := ast.SigExpSpan(e)
	switch e := e.(type) {
	case nil:
		return l.prog.AllocSigExp(hir.SigExp{Kind: hir.SigExpPath}, span)
	case *ast.SigStrExp:
		spec := l.lowerSpec(e.Spec)
		return l.prog.AllocSigExp(hir.SigExp{Kind: hir.SigExpSig, Sig: hir.SigStrExp{Spec: spec}}, span)
	case *ast.PathSigExp:
		return l.prog.AllocSigExp(hir.SigExp{Kind: hir.SigExpPath, Path: hir.PathSigExp{Name: e.Name}}, span)
	case *ast.WhereTypeSigExp:
		sig := l.lowerSigExp(e.Sig)
		ty := l.lowerTy(e.Ty)
		return l.prog.AllocSigExp(hir.SigExp{Kind: hir.SigExpWhereType, WhereType: hir.WhereTypeSigExp{
			Sig: sig, TyVars: e.TyVars, Path: e.Path, Ty: ty,
		}}, span)
	default:
		return l.prog.AllocSigExp(hir.SigExp{Kind: hir.SigExpPath}, span)
	}
}

func (l *lowerer) lowerSpec(s ast.Spec) hir.Idx[hir.Spec] {
	span := ast.SpecSpan(s)
	switch s := s.(type) {
	case nil:
		return l.prog.AllocSpec(hir.Spec{Kind: hir.SpecSeq}, span)
	case *ast.ValSpec:
		descs := make([]hir.ValDesc, len(s.Descs))
		for i, d := range s.Descs {
			descs[i] = hir.ValDesc{Name: d.Name, Ty: l.lowerTy(d.Ty)}
		}
		return l.prog.AllocSpec(hir.Spec{Kind: hir.SpecVal, Val: hir.ValSpec{Descs: descs}}, span)
	case *ast.TypeSpec:
		descs := make([]hir.TypeDesc, len(s.Descs))
		for i, d := range s.Descs {
			descs[i] = hir.TypeDesc{TyVars: d.TyVars, Name: d.Name}
		}
		return l.prog.AllocSpec(hir.Spec{Kind: hir.SpecType, Type: hir.TypeSpec{Eqtype: s.Eqtype, Descs: descs}}, span)
	case *ast.TypeDefSpec:
		return l.prog.AllocSpec(hir.Spec{Kind: hir.SpecTypeDef, TypeDef: hir.TypeDefSpec{Binds: l.lowerTyBinds(s.Binds)}}, span)
	case *ast.DatatypeSpec:
		return l.prog.AllocSpec(hir.Spec{Kind: hir.SpecDatatype, Datatype: hir.DatatypeSpec{
			Binds: l.lowerDatBinds(s.Binds), WithType: l.lowerTyBinds(s.WithType),
		}}, span)
	case *ast.ExceptionSpec:
		descs := make([]hir.ExDesc, len(s.Descs))
		for i, d := range s.Descs {
			ed := hir.ExDesc{Name: d.Name}
			if d.Arg != nil {
				ed.Arg = l.lowerTy(d.Arg)
			}
			descs[i] = ed
		}
		return l.prog.AllocSpec(hir.Spec{Kind: hir.SpecException, Exception: hir.ExceptionSpec{Descs: descs}}, span)
	case *ast.StructureSpec:
		descs := make([]hir.StrDesc, len(s.Descs))
		for i, d := range s.Descs {
			descs[i] = hir.StrDesc{Name: d.Name, Sig: l.lowerSigExp(d.Sig)}
		}
		return l.prog.AllocSpec(hir.Spec{Kind: hir.SpecStructure, Structure: hir.StructureSpec{Descs: descs}}, span)
	case *ast.IncludeSpec:
		sigs := make([]hir.Idx[hir.SigExp], len(s.Sigs))
		for i, sg := range s.Sigs {
			sigs[i] = l.lowerSigExp(sg)
		}
		return l.prog.AllocSpec(hir.Spec{Kind: hir.SpecInclude, Include: hir.IncludeSpec{Sigs: sigs}}, span)
	case *ast.SharingSpec:
		kind := hir.SharingStructure
		if s.Kind == ast.SharingType {
			kind = hir.SharingType
		}
		return l.prog.AllocSpec(hir.Spec{Kind: hir.SpecSharing, Sharing: hir.SharingSpec{Kind: kind, Paths: s.Paths}}, span)
	case *ast.SeqSpec:
		idxs := make([]hir.Idx[hir.Spec], len(s.Specs))
		for i, sub := range s.Specs {
			idxs[i] = l.lowerSpec(sub)
		}
		return l.prog.AllocSpec(hir.Spec{Kind: hir.SpecSeq, Seq: hir.SeqSpec{Specs: idxs}}, span)
	default:
		return l.prog.AllocSpec(hir.Spec{Kind: hir.SpecSeq}, span)
	}
}
