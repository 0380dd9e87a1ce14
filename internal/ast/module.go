package ast

import "millet/internal/source"

// StrDec is a structure-level declaration (spec.md §3 `StrDec`).
type StrDec interface{ strDecSpan() source.Span }

func StrDecSpan(d StrDec) source.Span {
	if d == nil {
		return source.Span{}
	}
	return d.strDecSpan()
}

// CoreStrDec wraps a core Dec so it can appear among structure-level
// declarations (SML's grammar interleaves `val`/`fun`/... freely with
// `structure`/`signature`/`functor` at this level).
type CoreStrDec struct {
	Dec  Dec
	Span source.Span
}

func (d *CoreStrDec) strDecSpan() source.Span { return d.Span }

// AscriptionKind distinguishes transparent (`:`) from opaque (`:>`)
// signature ascription.
type AscriptionKind uint8

const (
	AscriptionNone AscriptionKind = iota
	AscriptionTransparent
	AscriptionOpaque
)

// StrBind is one `name [: sig] = strexp` clause of a `structure`
// declaration.
type StrBind struct {
	Name  Name
	Asc   AscriptionKind
	Sig   SigExp // nil if AscriptionNone
	Exp   StrExp
	Span  source.Span
}

// StructureDec is `structure strbind and ...`.
type StructureDec struct {
	Binds []StrBind
	Span  source.Span
}

func (d *StructureDec) strDecSpan() source.Span { return d.Span }

// SigBind is one `name = sigexp` clause of a `signature` declaration.
type SigBind struct {
	Name Name
	Exp  SigExp
	Span source.Span
}

// SignatureDec is `signature sigbind and ...`.
type SignatureDec struct {
	Binds []SigBind
	Span  source.Span
}

func (d *SignatureDec) strDecSpan() source.Span { return d.Span }

// FunctorBind is one `name ( paramName : paramSig ) [: sig] = strexp`
// clause of a `functor` declaration.
type FunctorBind struct {
	Name      Name
	ParamName Name
	ParamSig  SigExp
	Asc       AscriptionKind
	ResultSig SigExp // nil if AscriptionNone
	Body      StrExp
	Span      source.Span
}

// FunctorDec is `functor functorbind and ...`.
type FunctorDec struct {
	Binds []FunctorBind
	Span  source.Span
}

func (d *FunctorDec) strDecSpan() source.Span { return d.Span }

// LocalStrDec is `local strdec1 in strdec2 end` at the structure level.
type LocalStrDec struct {
	Left, Right StrDec
	Span        source.Span
}

func (d *LocalStrDec) strDecSpan() source.Span { return d.Span }

// SeqStrDec sequences several structure-level declarations.
type SeqStrDec struct {
	Decs []StrDec
	Span source.Span
}

func (d *SeqStrDec) strDecSpan() source.Span { return d.Span }

// StrExp is a structure expression (spec.md §3 `StrExp`).
type StrExp interface{ strExpSpan() source.Span }

func StrExpSpan(e StrExp) source.Span {
	if e == nil {
		return source.Span{}
	}
	return e.strExpSpan()
}

// StructStrExp is `struct strdec end`.
type StructStrExp struct {
	Dec  StrDec
	Span source.Span
}

func (e *StructStrExp) strExpSpan() source.Span { return e.Span }

// PathStrExp is a reference to an existing structure by path.
type PathStrExp struct {
	Path Path
	Span source.Span
}

func (e *PathStrExp) strExpSpan() source.Span { return e.Span }

// AscriptionStrExp is `strexp : sigexp` or `strexp :> sigexp`.
type AscriptionStrExp struct {
	Exp  StrExp
	Kind AscriptionKind
	Sig  SigExp
	Span source.Span
}

func (e *AscriptionStrExp) strExpSpan() source.Span { return e.Span }

// AppStrExp is a functor application `path ( strexp )` (or, as an
// extension many implementations accept, `path ( strdec )` for an
// inline-argument structure).
type AppStrExp struct {
	Functor Path
	Arg     StrExp
	Span    source.Span
}

func (e *AppStrExp) strExpSpan() source.Span { return e.Span }

// LetStrExp is `let strdec in strexp end`.
type LetStrExp struct {
	Dec  StrDec
	Exp  StrExp
	Span source.Span
}

func (e *LetStrExp) strExpSpan() source.Span { return e.Span }

// SigExp is a signature expression (spec.md §3 `SigExp`).
type SigExp interface{ sigExpSpan() source.Span }

func SigExpSpan(e SigExp) source.Span {
	if e == nil {
		return source.Span{}
	}
	return e.sigExpSpan()
}

// SigStrExp is `sig spec end`.
type SigStrExp struct {
	Spec Spec
	Span source.Span
}

func (e *SigStrExp) sigExpSpan() source.Span { return e.Span }

// PathSigExp is a reference to an existing signature by name.
type PathSigExp struct {
	Name Name
	Span source.Span
}

func (e *PathSigExp) sigExpSpan() source.Span { return e.Span }

// WhereTypeSigExp is `sigexp where type tyvarseq path = ty`.
type WhereTypeSigExp struct {
	Sig    SigExp
	TyVars []TyVar
	Path   Path
	Ty     Ty
	Span   source.Span
}

func (e *WhereTypeSigExp) sigExpSpan() source.Span { return e.Span }

// Spec is a signature specification item (spec.md §3 `Spec`).
type Spec interface{ specSpan() source.Span }

func SpecSpan(s Spec) source.Span {
	if s == nil {
		return source.Span{}
	}
	return s.specSpan()
}

// ValSpec is `val name : ty and ...`.
type ValDesc struct {
	Name Name
	Ty   Ty
}
type ValSpec struct {
	Descs []ValDesc
	Span  source.Span
}

func (s *ValSpec) specSpan() source.Span { return s.Span }

// TypeSpec is `type tyvarseq name and ...` (no definition) or, if Eqtype
// is set, `eqtype tyvarseq name and ...`.
type TypeDesc struct {
	TyVars []TyVar
	Name   Name
}
type TypeSpec struct {
	Eqtype bool
	Descs  []TypeDesc
	Span   source.Span
}

func (s *TypeSpec) specSpan() source.Span { return s.Span }

// TypeDefSpec is `type tyvarseq name = ty and ...`: a specified type with
// a concrete definition (a common extension many implementations accept
// within `sig ... end`).
type TypeDefSpec struct {
	Binds []TyBind
	Span  source.Span
}

func (s *TypeDefSpec) specSpan() source.Span { return s.Span }

// DatatypeSpec is `datatype datbind and ... [withtype ...]`.
type DatatypeSpec struct {
	Binds    []DatBind
	WithType []TyBind
	Span     source.Span
}

func (s *DatatypeSpec) specSpan() source.Span { return s.Span }

// ExceptionSpec is `exception name [of ty] and ...`.
type ExDesc struct {
	Name Name
	Arg  Ty
}
type ExceptionSpec struct {
	Descs []ExDesc
	Span  source.Span
}

func (s *ExceptionSpec) specSpan() source.Span { return s.Span }

// StructureSpec is `structure name : sigexp and ...`.
type StrDesc struct {
	Name Name
	Sig  SigExp
}
type StructureSpec struct {
	Descs []StrDesc
	Span  source.Span
}

func (s *StructureSpec) specSpan() source.Span { return s.Span }

// IncludeSpec is `include sigexp ...` (one or more, for `include sigexp1
// and sigexp2`-style multiple includes some implementations allow; the
// common case is a single sigexp).
type IncludeSpec struct {
	Sigs []SigExp
	Span source.Span
}

func (s *IncludeSpec) specSpan() source.Span { return s.Span }

// SharingKind distinguishes `sharing` (structure sharing) from
// `sharing type` (type sharing), per spec.md §4.5.
type SharingKind uint8

const (
	SharingStructure SharingKind = iota
	SharingType
)

// SharingSpec is `sharing [type] path1 = path2 = ...`.
type SharingSpec struct {
	Kind  SharingKind
	Paths []Path
	Span  source.Span
}

func (s *SharingSpec) specSpan() source.Span { return s.Span }

// SeqSpec sequences several spec items.
type SeqSpec struct {
	Specs []Spec
	Span  source.Span
}

func (s *SeqSpec) specSpan() source.Span { return s.Span }
