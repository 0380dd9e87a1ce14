package hir

import "millet/internal/ast"

// StrDecKind enumerates the shapes a StrDec node can take.
type StrDecKind uint8

const (
	StrDecCore StrDecKind = iota
	StrDecStructure
	StrDecSignature
	StrDecFunctor
	StrDecLocal
	StrDecSeq
)

type StrBind struct {
	Name ast.Name
	Asc  ast.AscriptionKind
	Sig  Idx[SigExp]
	Exp  Idx[StrExp]
}

type CoreStrDec struct{ Dec Idx[Dec] }

type StructureDec struct{ Binds []StrBind }

type SigBind struct {
	Name ast.Name
	Exp  Idx[SigExp]
}

type SignatureDec struct{ Binds []SigBind }

type FunctorBind struct {
	Name      ast.Name
	ParamName ast.Name
	ParamSig  Idx[SigExp]
	Asc       ast.AscriptionKind
	ResultSig Idx[SigExp]
	Body      Idx[StrExp]
}

type FunctorDec struct{ Binds []FunctorBind }

type LocalStrDec struct{ Left, Right Idx[StrDec] }

type SeqStrDec struct{ Decs []Idx[StrDec] }

// StrDec is one lowered structure-level declaration node.
type StrDec struct {
	Kind StrDecKind

	Core      CoreStrDec
	Structure StructureDec
	Signature SignatureDec
	Functor   FunctorDec
	Local     LocalStrDec
	Seq       SeqStrDec
}

// StrExpKind enumerates the shapes a StrExp node can take.
type StrExpKind uint8

const (
	StrExpStruct StrExpKind = iota
	StrExpPath
	StrExpAscription
	StrExpApp
	StrExpLet
)

type StructStrExp struct{ Dec Idx[StrDec] }

type PathStrExp struct{ Path ast.Path }

type AscriptionStrExp struct {
	Exp  Idx[StrExp]
	Kind ast.AscriptionKind
	Sig  Idx[SigExp]
}

type AppStrExp struct {
	Functor ast.Path
	Arg     Idx[StrExp]
}

type LetStrExp struct {
	Dec Idx[StrDec]
	Exp Idx[StrExp]
}

// StrExp is one lowered structure-expression node.
type StrExp struct {
	Kind StrExpKind

	Struct     StructStrExp
	Path       PathStrExp
	Ascription AscriptionStrExp
	App        AppStrExp
	Let        LetStrExp
}

// SigExpKind enumerates the shapes a SigExp node can take.
type SigExpKind uint8

const (
	SigExpSig SigExpKind = iota
	SigExpPath
	SigExpWhereType
)

type SigStrExp struct{ Spec Idx[Spec] }

type PathSigExp struct{ Name ast.Name }

type WhereTypeSigExp struct {
	Sig    Idx[SigExp]
	TyVars []ast.TyVar
	Path   ast.Path
	Ty     Idx[Ty]
}

// SigExp is one lowered signature-expression node.
type SigExp struct {
	Kind SigExpKind

	Sig       SigStrExp
	Path      PathSigExp
	WhereType WhereTypeSigExp
}

// SpecKind enumerates the shapes a Spec node can take.
type SpecKind uint8

const (
	SpecVal SpecKind = iota
	SpecType
	SpecTypeDef
	SpecDatatype
	SpecException
	SpecStructure
	SpecInclude
	SpecSharing
	SpecSeq
)

type ValDesc struct {
	Name ast.Name
	Ty   Idx[Ty]
}
type ValSpec struct{ Descs []ValDesc }

type TypeDesc struct {
	TyVars []ast.TyVar
	Name   ast.Name
}
type TypeSpec struct {
	Eqtype bool
	Descs  []TypeDesc
}

type TypeDefSpec struct{ Binds []TyBind }

type DatatypeSpec struct {
	Binds    []DatBind
	WithType []TyBind
}

type ExDesc struct {
	Name ast.Name
	Arg  Idx[Ty]
}
type ExceptionSpec struct{ Descs []ExDesc }

type StrDesc struct {
	Name ast.Name
	Sig  Idx[SigExp]
}
type StructureSpec struct{ Descs []StrDesc }

type IncludeSpec struct{ Sigs []Idx[SigExp] }

// SharingKind distinguishes `sharing` (structure sharing) from
// `sharing type` (type sharing).
type SharingKind uint8

const (
	SharingStructure SharingKind = iota
	SharingType
)

type SharingSpec struct {
	Kind  SharingKind
	Paths []ast.Path
}

type SeqSpec struct{ Specs []Idx[Spec] }

// Spec is one lowered signature specification item.
type Spec struct {
	Kind SpecKind

	Val       ValSpec
	Type      TypeSpec
	TypeDef   TypeDefSpec
	Datatype  DatatypeSpec
	Exception ExceptionSpec
	Structure StructureSpec
	Include   IncludeSpec
	Sharing   SharingSpec
	Seq       SeqSpec
}
