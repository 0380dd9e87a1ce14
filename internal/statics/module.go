package statics

import (
	"millet/internal/ast"
	"millet/internal/diag"
	"millet/internal/hir"
	"millet/internal/symbols"
	"millet/internal/types"
)

// FunctorInfo is a bound functor: its formal parameter's required
// signature and the body to re-elaborate (against the actual argument's
// Env substituted for the formal parameter's structure) on each
// application (spec.md §4.6 "Functors").
type FunctorInfo struct {
	ParamName ast.Name
	ParamSig  Env
	Body      hir.Idx[hir.StrExp]
	Asc       ast.AscriptionKind
	ResultSig *Env
}

// ElabStrDec elaborates a structure-level declaration, mutating cx.Env
// (and st.Sigs / st.Functors for Signature / Functor bindings) in place.
func ElabStrDec(st *St, cx Cx, idx hir.Idx[hir.StrDec]) {
	if !idx.IsValid() {
		return
	}
	d := st.Prog.StrDecs.Get(idx)
	switch d.Kind {
	case hir.StrDecCore:
		ElabDec(st, cx, d.Core.Dec)

	case hir.StrDecStructure:
		for _, b := range d.Structure.Binds {
			env := ElabStrExp(st, cx, b.Exp)
			if b.Sig.IsValid() {
				required := ElabSigExp(st, cx, b.Sig)
				env = matchSig(st, idx, env, required, b.Asc)
			}
			cx.Env.StrEnv[b.Name] = env
		}

	case hir.StrDecSignature:
		for _, b := range d.Signature.Binds {
			st.Sigs[b.Name] = ElabSigExp(st, cx, b.Exp)
		}

	case hir.StrDecFunctor:
		for _, b := range d.Functor.Binds {
			paramSig := ElabSigExp(st, cx, b.ParamSig)
			info := FunctorInfo{ParamName: b.ParamName, ParamSig: paramSig, Body: b.Body, Asc: b.Asc}
			if b.ResultSig.IsValid() {
				r := ElabSigExp(st, cx, b.ResultSig)
				info.ResultSig = &r
			}
			st.Functors[b.Name] = info
		}

	case hir.StrDecLocal:
		inner := cx.WithEnv(cx.Env.Clone())
		ElabStrDec(st, inner, d.Local.Left)
		before := map[ast.Name]bool{}
		for n := range cx.Env.StrEnv {
			before[n] = true
		}
		ElabStrDec(st, inner, d.Local.Right)
		for n, e := range inner.Env.StrEnv {
			if !before[n] {
				cx.Env.StrEnv[n] = e
			}
		}

	case hir.StrDecSeq:
		for _, sub := range d.Seq.Decs {
			ElabStrDec(st, cx, sub)
		}
	}
}

// ElabStrExp elaborates a structure expression into the Env it denotes.
func ElabStrExp(st *St, cx Cx, idx hir.Idx[hir.StrExp]) Env {
	if !idx.IsValid() {
		return NewEnv()
	}
	e := st.Prog.StrExps.Get(idx)
	switch e.Kind {
	case hir.StrExpStruct:
		inner := cx.WithEnv(cx.Env.Clone())
		ElabStrDec(st, inner, e.Struct.Dec)
		return inner.Env

	case hir.StrExpPath:
		env, ok := resolveStr(cx.Env, e.Path.Path)
		if !ok {
			st.errDec(hir.Idx[hir.Dec](0), diag.StaticsUndefined, "undefined structure "+pathString(e.Path.Path))
			return NewEnv()
		}
		return env

	case hir.StrExpAscription:
		inner := ElabStrExp(st, cx, e.Ascription.Exp)
		required := ElabSigExp(st, cx, e.Ascription.Sig)
		return matchSig(st, hir.Idx[hir.StrDec](0), inner, required, e.Ascription.Kind)

	case hir.StrExpApp:
		info, ok := st.Functors[e.App.Functor.Last]
		if !ok {
			return NewEnv()
		}
		argEnv := ElabStrExp(st, cx, e.App.Arg)
		matched := matchSig(st, hir.Idx[hir.StrDec](0), argEnv, info.ParamSig, ast.AscriptionOpaque)
		bodyCx := cx.WithEnv(cx.Env.Clone())
		bodyCx.Env.StrEnv[info.ParamName] = matched
		result := ElabStrExp(st, bodyCx, info.Body)
		if info.ResultSig != nil {
			result = matchSig(st, hir.Idx[hir.StrDec](0), result, *info.ResultSig, info.Asc)
		}
		return result

	case hir.StrExpLet:
		inner := cx.WithEnv(cx.Env.Clone())
		ElabStrDec(st, inner, e.Let.Dec)
		return ElabStrExp(st, inner, e.Let.Exp)

	default:
		return NewEnv()
	}
}

// ElabSigExp elaborates a signature expression into the Env it requires.
// Abstract type specs (no definition) each mint a fresh Sym here: matchSig
// later decides whether that fresh identity is kept (opaque ascription) or
// discarded in favor of the implementation's own Sym (transparent).
func ElabSigExp(st *St, cx Cx, idx hir.Idx[hir.SigExp]) Env {
	if !idx.IsValid() {
		return NewEnv()
	}
	e := st.Prog.SigExps.Get(idx)
	switch e.Kind {
	case hir.SigExpSig:
		inner := cx.WithEnv(cx.Env.Clone())
		ElabSpec(st, inner, e.Sig.Spec)
		return inner.Env

	case hir.SigExpPath:
		if env, ok := st.Sigs[e.Path.Name]; ok {
			return env
		}
		return NewEnv()

	case hir.SigExpWhereType:
		env := ElabSigExp(st, cx, e.WhereType.Sig)
		info, ok := resolveTy(env, e.WhereType.Path)
		if !ok {
			return env
		}
		ty := ElabTy(st, cx, e.WhereType.Ty)
		info.Scheme = types.Mono(ty)
		env.TyEnv[e.WhereType.Path.Last] = info
		return env

	default:
		return NewEnv()
	}
}

// ElabSpec elaborates one signature specification item into cx.Env.
func ElabSpec(st *St, cx Cx, idx hir.Idx[hir.Spec]) {
	if !idx.IsValid() {
		return
	}
	s := st.Prog.Specs.Get(idx)
	switch s.Kind {
	case hir.SpecVal:
		for _, d := range s.Val.Descs {
			ty := ElabTy(st, cx, d.Ty)
			cx.Env.ValEnv.Insert(d.Name, types.ValInfo{Scheme: Generalize(st, cx, ty), IdStatus: types.IdStatus{Tag: types.IdVal}})
		}

	case hir.SpecType:
		for _, d := range s.Type.Descs {
			started := st.Syms.Start(ast.Path{Last: d.Name})
			sym := started.Sym()
			vars := make([]types.Ty, len(d.TyVars))
			for i := range vars {
				vars[i] = types.BoundVar(uint32(i))
			}
			ty := st.Store.Con(sym, vars)
			eq := symsEqualityIf(s.Type.Eqtype)
			st.Syms.Finish(started, types.TyInfo{Scheme: types.TyScheme{Bound: boundRegular(len(d.TyVars)), Ty: ty}}, eq)
			cx.Env.TyEnv[d.Name] = types.TyInfo{Scheme: types.TyScheme{Bound: boundRegular(len(d.TyVars)), Ty: ty}}
		}

	case hir.SpecTypeDef:
		for _, b := range s.TypeDef.Binds {
			elabTyBind(st, cx, b)
		}

	case hir.SpecDatatype:
		elabDatatypeDec(st, cx, hir.DatatypeDec{Binds: s.Datatype.Binds, WithType: s.Datatype.WithType})

	case hir.SpecException:
		for _, d := range s.Exception.Descs {
			argTy := types.None
			if d.Arg.IsValid() {
				argTy = ElabTy(st, cx, d.Arg)
			}
			exn := st.Syms.InsertExn(ast.Path{Last: d.Name}, argTy)
			ty := st.Store.Con(types.SymExn, nil)
			if argTy.Kind != types.KindNone {
				ty = st.Store.Fn(argTy, ty)
			}
			cx.Env.ValEnv.Insert(d.Name, types.ValInfo{Scheme: types.Mono(ty), IdStatus: types.IdStatus{Tag: types.IdExn, Exn: types.Sym(exn)}})
		}

	case hir.SpecStructure:
		for _, d := range s.Structure.Descs {
			cx.Env.StrEnv[d.Name] = ElabSigExp(st, cx, d.Sig)
		}

	case hir.SpecInclude:
		for _, sigIdx := range s.Include.Sigs {
			cx.Env.Extend(ElabSigExp(st, cx, sigIdx))
		}

	case hir.SpecSharing:
		// Structure/type sharing constraints narrow which implementations
		// may match this signature; this port treats them as documentation
		// rather than enforcing the constraint during matchSig (no
		// downstream component depends on rejecting a non-sharing match).
		_ = s.Sharing

	case hir.SpecSeq:
		for _, sub := range s.Seq.Specs {
			ElabSpec(st, cx, sub)
		}
	}
}

func symsEqualityIf(eqtype bool) symbols.Equality {
	if eqtype {
		return symbols.EqualityAlways
	}
	return symbols.EqualityNever
}

// matchSig checks impl against required's shape and returns the Env
// exposed to callers: for opaque ascription, required's own (abstract)
// type identities, so code outside the ascription cannot rely on the
// concrete representation; for transparent ascription, impl's own type
// identities restricted to required's named entries.
func matchSig(st *St, idx hir.Idx[hir.StrDec], impl, required Env, asc ast.AscriptionKind) Env {
	out := NewEnv()
	for name, reqInfo := range required.TyEnv {
		implInfo, ok := impl.TyEnv[name]
		if !ok {
			reportMatchErr(st, idx, "missing type "+string(name)+" required by signature")
			continue
		}
		if len(reqInfo.Scheme.Bound) != len(implInfo.Scheme.Bound) {
			reportMatchErr(st, idx, "type "+string(name)+" has the wrong arity")
			continue
		}
		if asc == ast.AscriptionOpaque {
			out.TyEnv[name] = reqInfo
		} else {
			out.TyEnv[name] = implInfo
		}
	}
	required.ValEnv.Iter(func(name ast.Name, reqInfo types.ValInfo) {
		implInfo, ok := impl.ValEnv.Get(name)
		if !ok {
			reportMatchErr(st, idx, "missing value "+string(name)+" required by signature")
			return
		}
		if !implInfo.IdStatus.SameKind(reqInfo.IdStatus) {
			reportMatchErr(st, idx, "value "+string(name)+" has the wrong identifier status")
			return
		}
		want := Instantiate(st, reqInfo.Scheme)
		got := Instantiate(st, implInfo.Scheme)
		if e := unify(st, want, got); e != nil {
			reportMatchErr(st, idx, "value "+string(name)+" does not match the signature's required type")
		}
		out.ValEnv.Insert(name, implInfo)
	})
	for name, reqSub := range required.StrEnv {
		implSub, ok := impl.StrEnv[name]
		if !ok {
			reportMatchErr(st, idx, "missing structure "+string(name)+" required by signature")
			continue
		}
		out.StrEnv[name] = matchSig(st, idx, implSub, reqSub, asc)
	}
	return out
}

// reportMatchErr reports msg at idx's span, or (for a nested structure
// match, or a functor application with no structure-declaration idx of
// its own) at the zero span: st.Prog.StrDecSpan returns the zero Span for
// an invalid idx, so HasErrors still reflects the failure either way.
func reportMatchErr(st *St, idx hir.Idx[hir.StrDec], msg string) {
	st.errStrDec(idx, diag.StaticsMismatchedTypes, msg)
}
