package symbols

import (
	"millet/internal/ast"
	"millet/internal/types"
)

// Basis names the fixed entities the standard basis installs that statics
// needs to refer to directly, rather than by re-looking-up a name (e.g. to
// raise Match on a non-exhaustive case, or to know Sym.Bool's true/false
// constructors when elaborating `if`).
type Basis struct {
	Bind, Match, Subscript, Size, Overflow, Div, Domain, Chr, Fail Exn

	Int, Word, Real, Char, String, Bool, List, Ref, Vector types.Sym

	// RootTyEnv and RootValEnv seed the top-level Env every file starts
	// elaborating in: every basis type and value identifier, ready to
	// merge into statics.Env on file entry.
	RootTyEnv  types.TyEnv
	RootValEnv *types.ValEnv
}

func path1(name ast.Name) ast.Path { return ast.Path{Last: name} }

// NewWithBasis creates a Syms table seeded with the special primitive syms
// (spec.md §3: "Special syms are reserved at fixed indices"), the standard
// basis's built-in equality-types table, and the initial static basis's
// exception constructors (Definition of Standard ML, Appendix C). store
// mints the Tys the basis's type schemes and constructor argument types
// need (e.g. `'a list`, `'a ref`).
//
// The nine Start calls below must run in exactly special_sym_order
// (EXN implicit, then INT..VECTOR) since Start assigns syms by table
// length alone.
func NewWithBasis(store *types.Store) (*Syms, Basis) {
	s := New()

	startPrim := func(store *types.Store, name ast.Name, eq Equality) types.Sym {
		started := s.Start(path1(name))
		sym := started.Sym()
		s.Finish(started, types.TyInfo{Scheme: types.Mono(store.Con(sym, nil)), ValEnv: *types.NewValEnv()}, eq)
		return sym
	}

	intSym := startPrim(store, "int", EqualityAlways)
	wordSym := startPrim(store, "word", EqualityAlways)
	realSym := startPrim(store, "real", EqualityNever)
	charSym := startPrim(store, "char", EqualityAlways)
	stringSym := startPrim(store, "string", EqualityAlways)

	boolStarted := s.Start(path1("bool"))
	boolSym := boolStarted.Sym()
	boolVE := types.NewValEnv()
	nullaryCon := func(ve *types.ValEnv, name ast.Name, scheme types.TyScheme) {
		ve.Insert(name, types.ValInfo{Scheme: scheme, IdStatus: types.IdStatus{Tag: types.IdCon}})
	}
	boolScheme := types.Mono(store.Con(boolSym, nil))
	nullaryCon(boolVE, "true", boolScheme)
	nullaryCon(boolVE, "false", boolScheme)
	s.Finish(boolStarted, types.TyInfo{Scheme: types.Mono(store.Con(boolSym, nil)), ValEnv: *boolVE}, EqualityAlways)

	listStarted := s.Start(path1("list"))
	listSym := listStarted.Sym()
	elemVar := types.BoundVar(0)
	listOfElem := store.Con(listSym, []types.Ty{elemVar})
	listVE := types.NewValEnv()
	nullaryCon(listVE, "nil", types.TyScheme{Bound: []types.TyVarKind{types.Regular}, Ty: listOfElem})
	listVE.Insert("::", types.ValInfo{
		Scheme:   types.TyScheme{Bound: []types.TyVarKind{types.Regular}, Ty: store.Fn(store.Record([]types.Row{{Lab: ast.Lab{Index: 1}, Ty: elemVar}, {Lab: ast.Lab{Index: 2}, Ty: listOfElem}}), listOfElem)},
		IdStatus: types.IdStatus{Tag: types.IdCon},
	})
	s.Finish(listStarted, types.TyInfo{Scheme: types.TyScheme{Bound: []types.TyVarKind{types.Regular}, Ty: listOfElem}, ValEnv: *listVE}, EqualitySometimes)

	refStarted := s.Start(path1("ref"))
	refSym := refStarted.Sym()
	refOfElem := store.Con(refSym, []types.Ty{elemVar})
	refVE := types.NewValEnv()
	refVE.Insert("ref", types.ValInfo{
		Scheme:   types.TyScheme{Bound: []types.TyVarKind{types.Regular}, Ty: store.Fn(elemVar, refOfElem)},
		IdStatus: types.IdStatus{Tag: types.IdCon},
	})
	s.Finish(refStarted, types.TyInfo{Scheme: types.TyScheme{Bound: []types.TyVarKind{types.Regular}, Ty: refOfElem}, ValEnv: *refVE}, EqualitySometimes)

	vectorStarted := s.Start(path1("vector"))
	vectorSym := vectorStarted.Sym()
	vectorOfElem := store.Con(vectorSym, []types.Ty{elemVar})
	s.Finish(vectorStarted, types.TyInfo{Scheme: types.TyScheme{Bound: []types.TyVarKind{types.Regular}, Ty: vectorOfElem}, ValEnv: *types.NewValEnv()}, EqualitySometimes)

	s.SetOverloads(Overloads{
		Int:    []types.Sym{intSym},
		Real:   []types.Sym{realSym},
		Word:   []types.Sym{wordSym},
		String: []types.Sym{stringSym},
		Char:   []types.Sym{charSym},
	})

	stringTy := store.Con(stringSym, nil)

	rootTyEnv := types.TyEnv{}
	for name, sym := range map[ast.Name]types.Sym{
		"int": intSym, "word": wordSym, "real": realSym, "char": charSym,
		"string": stringSym, "bool": boolSym, "list": listSym, "ref": refSym,
		"vector": vectorSym,
	} {
		info, _ := s.Get(sym)
		rootTyEnv[name] = info.TyInfo
	}

	rootValEnv := types.NewValEnv()
	rootTyEnv["bool"].ValEnv.Iter(func(n ast.Name, v types.ValInfo) { rootValEnv.Insert(n, v) })
	rootTyEnv["list"].ValEnv.Iter(func(n ast.Name, v types.ValInfo) { rootValEnv.Insert(n, v) })
	rootTyEnv["ref"].ValEnv.Iter(func(n ast.Name, v types.ValInfo) { rootValEnv.Insert(n, v) })
	insertOverloadedArith(rootValEnv, store, boolSym)

	b := Basis{
		Bind:      s.InsertExn(path1("Bind"), types.None),
		Match:     s.InsertExn(path1("Match"), types.None),
		Subscript: s.InsertExn(path1("Subscript"), types.None),
		Size:      s.InsertExn(path1("Size"), types.None),
		Overflow:  s.InsertExn(path1("Overflow"), types.None),
		Div:       s.InsertExn(path1("Div"), types.None),
		Domain:    s.InsertExn(path1("Domain"), types.None),
		Chr:       s.InsertExn(path1("Chr"), types.None),
		Fail:      s.InsertExn(path1("Fail"), stringTy),

		Int: intSym, Word: wordSym, Real: realSym, Char: charSym, String: stringSym,
		Bool: boolSym, List: listSym, Ref: refSym, Vector: vectorSym,

		RootTyEnv:  rootTyEnv,
		RootValEnv: rootValEnv,
	}
	return s, b
}

// insertOverloadedArith installs the basis's overloaded infix arithmetic
// and relational operators (Definition of Standard ML, Appendix C): each
// binds a bound type variable constrained to the classes the operator
// accepts, the same TyVarOverloaded mechanism Unify's fuseOverload resolves
// against a use site's argument types.
func insertOverloadedArith(ve *types.ValEnv, store *types.Store, boolSym types.Sym) {
	tv := types.BoundVar(0)
	pair := func(elem types.Ty) types.Ty {
		return store.Record([]types.Row{
			{Lab: ast.Lab{Index: 1}, Ty: elem},
			{Lab: ast.Lab{Index: 2}, Ty: elem},
		})
	}
	binop := func(ov types.Overload, res types.Ty) types.ValInfo {
		return types.ValInfo{Scheme: types.TyScheme{
			Bound: []types.TyVarKind{types.Overloaded(ov)},
			Ty:    store.Fn(pair(tv), res),
		}}
	}
	unop := func(ov types.Overload) types.ValInfo {
		return types.ValInfo{Scheme: types.TyScheme{
			Bound: []types.TyVarKind{types.Overloaded(ov)},
			Ty:    store.Fn(tv, tv),
		}}
	}

	numWord := types.Composite(types.OverloadInt, types.OverloadReal, types.OverloadWord)
	intWord := types.Composite(types.OverloadInt, types.OverloadWord)
	ordered := types.Composite(types.OverloadInt, types.OverloadReal, types.OverloadWord, types.OverloadString, types.OverloadChar)
	boolTy := store.Con(boolSym, nil)

	for _, name := range []ast.Name{"+", "-", "*"} {
		ve.Insert(name, binop(numWord, tv))
	}
	ve.Insert("div", binop(intWord, tv))
	ve.Insert("mod", binop(intWord, tv))
	ve.Insert("/", binop(types.Basic(types.OverloadReal), tv))
	for _, name := range []ast.Name{"<", "<=", ">", ">="} {
		ve.Insert(name, binop(ordered, boolTy))
	}
	ve.Insert("~", unop(numWord))
	ve.Insert("abs", unop(numWord))

	eqInfo := types.ValInfo{Scheme: types.TyScheme{
		Bound: []types.TyVarKind{types.Equality},
		Ty:    store.Fn(pair(tv), boolTy),
	}}
	ve.Insert("=", eqInfo)
	ve.Insert("<>", eqInfo)
}
