package hir

import "millet/internal/source"

// ArenaKind tags which of the eight parallel arenas an index belongs to,
// letting the side Ptrs map key on a single flat type instead of one map
// per arena.
type ArenaKind uint8

const (
	ArenaExp ArenaKind = iota
	ArenaDec
	ArenaTy
	ArenaPat
	ArenaStrDec
	ArenaStrExp
	ArenaSigExp
	ArenaSpec
)

// AnyIdx is a type-erased arena index, used only as a Ptrs map key.
type AnyIdx struct {
	Kind  ArenaKind
	Index uint32
}

func expIdx(i Idx[Exp]) AnyIdx       { return AnyIdx{ArenaExp, uint32(i)} }
func decIdx(i Idx[Dec]) AnyIdx       { return AnyIdx{ArenaDec, uint32(i)} }
func tyIdx(i Idx[Ty]) AnyIdx         { return AnyIdx{ArenaTy, uint32(i)} }
func patIdx(i Idx[Pat]) AnyIdx       { return AnyIdx{ArenaPat, uint32(i)} }
func strDecIdx(i Idx[StrDec]) AnyIdx { return AnyIdx{ArenaStrDec, uint32(i)} }
func strExpIdx(i Idx[StrExp]) AnyIdx { return AnyIdx{ArenaStrExp, uint32(i)} }
func sigExpIdx(i Idx[SigExp]) AnyIdx { return AnyIdx{ArenaSigExp, uint32(i)} }
func specIdx(i Idx[Spec]) AnyIdx     { return AnyIdx{ArenaSpec, uint32(i)} }

// Program is the complete lowered output for one source file: the eight
// parallel arenas, the file's top-level structure declarations, and the
// Ptrs side map back to originating source spans (spec.md §3 "a side map
// ptrs: Idx → AstPointer").
type Program struct {
	Exps    *Arena[Exp]
	Decs    *Arena[Dec]
	Tys     *Arena[Ty]
	Pats    *Arena[Pat]
	StrDecs *Arena[StrDec]
	StrExps *Arena[StrExp]
	SigExps *Arena[SigExp]
	Specs   *Arena[Spec]

	TopDecs []Idx[StrDec]

	ptrs map[AnyIdx]source.Span
}

// NewProgram returns an empty Program with all eight arenas initialized.
func NewProgram() *Program {
	return &Program{
		Exps:    NewArena[Exp](64),
		Decs:    NewArena[Dec](32),
		Tys:     NewArena[Ty](32),
		Pats:    NewArena[Pat](32),
		StrDecs: NewArena[StrDec](8),
		StrExps: NewArena[StrExp](8),
		SigExps: NewArena[SigExp](4),
		Specs:   NewArena[Spec](16),
		ptrs:    make(map[AnyIdx]source.Span),
	}
}

// SpanOf returns the originating source span recorded for idx, or the zero
// Span if none was recorded (a synthesized node with no surface-syntax
// origin).
func (p *Program) SpanOf(idx AnyIdx) source.Span { return p.ptrs[idx] }

// Each AllocX helper appends a fully-built node to its arena, records its
// originating span in Ptrs, and returns the new index. Lowering calls
// these exclusively rather than touching the arenas directly, so every
// node is guaranteed a Ptrs entry.

func (p *Program) AllocExp(e Exp, span source.Span) Idx[Exp] {
	idx := p.Exps.Alloc(e)
	p.ptrs[expIdx(idx)] = span
	return idx
}

func (p *Program) AllocDec(d Dec, span source.Span) Idx[Dec] {
	idx := p.Decs.Alloc(d)
	p.ptrs[decIdx(idx)] = span
	return idx
}

func (p *Program) AllocTy(t Ty, span source.Span) Idx[Ty] {
	idx := p.Tys.Alloc(t)
	p.ptrs[tyIdx(idx)] = span
	return idx
}

func (p *Program) AllocPat(pt Pat, span source.Span) Idx[Pat] {
	idx := p.Pats.Alloc(pt)
	p.ptrs[patIdx(idx)] = span
	return idx
}

func (p *Program) AllocStrDec(d StrDec, span source.Span) Idx[StrDec] {
	idx := p.StrDecs.Alloc(d)
	p.ptrs[strDecIdx(idx)] = span
	return idx
}

func (p *Program) AllocStrExp(e StrExp, span source.Span) Idx[StrExp] {
	idx := p.StrExps.Alloc(e)
	p.ptrs[strExpIdx(idx)] = span
	return idx
}

func (p *Program) AllocSigExp(e SigExp, span source.Span) Idx[SigExp] {
	idx := p.SigExps.Alloc(e)
	p.ptrs[sigExpIdx(idx)] = span
	return idx
}

func (p *Program) AllocSpec(s Spec, span source.Span) Idx[Spec] {
	idx := p.Specs.Alloc(s)
	p.ptrs[specIdx(idx)] = span
	return idx
}

// ExpSpan, DecSpan, TySpan, PatSpan, StrDecSpan, StrExpSpan, SigExpSpan,
// and SpecSpan look up the recorded origin span for an index of the
// corresponding arena.
func (p *Program) ExpSpan(i Idx[Exp]) source.Span       { return p.SpanOf(expIdx(i)) }
func (p *Program) DecSpan(i Idx[Dec]) source.Span       { return p.SpanOf(decIdx(i)) }
func (p *Program) TySpan(i Idx[Ty]) source.Span         { return p.SpanOf(tyIdx(i)) }
func (p *Program) PatSpan(i Idx[Pat]) source.Span       { return p.SpanOf(patIdx(i)) }
func (p *Program) StrDecSpan(i Idx[StrDec]) source.Span { return p.SpanOf(strDecIdx(i)) }
func (p *Program) StrExpSpan(i Idx[StrExp]) source.Span { return p.SpanOf(strExpIdx(i)) }
func (p *Program) SigExpSpan(i Idx[SigExp]) source.Span { return p.SpanOf(sigExpIdx(i)) }
func (p *Program) SpecSpan(i Idx[Spec]) source.Span     { return p.SpanOf(specIdx(i)) }
