package parser

import (
	"millet/internal/ast"
	"millet/internal/diag"
	"millet/internal/source"
	"millet/internal/token"
)

// parsePat parses a full pattern: an "app"-level pattern, optionally typed
// or `as`-bound, optionally joined with `|` for or-patterns.
func (p *parser) parsePat() ast.Pat {
	start := p.here()
	pat := p.parsePatApp()
	// `id [: ty] as pat`: the identifier names the whole value, `ty` (if
	// present) types it, and `pat` further destructures it. A bare
	// `: ty` with no following `as` is just an ordinary TypedPat.
	var pendingTy ast.Ty
	hadColon := false
	if p.at(token.Colon) {
		p.bump()
		pendingTy = p.parseTy()
		hadColon = true
	}
	switch {
	case p.at(token.KwAs):
		pat = p.finishAsPat(start, pat, pendingTy)
	case hadColon:
		pat = &ast.TypedPat{Pat: pat, Ty: pendingTy, Span: p.spanFrom(start)}
	}
	if p.at(token.Bar) {
		pats := []ast.Pat{pat}
		for p.at(token.Bar) {
			p.bump()
			pats = append(pats, p.parsePatApp())
		}
		return &ast.OrPat{Pats: pats, Span: p.spanFrom(start)}
	}
	return pat
}

// finishAsPat consumes the `as pat` suffix, given the already-parsed
// `id [: ty]` prefix (left, leftTy). left must reduce to a bare
// identifier; anything else is a malformed as-pattern and is reported.
func (p *parser) finishAsPat(start source.Span, left ast.Pat, leftTy ast.Ty) ast.Pat {
	p.bump() // as
	name, ok := bareConName(left)
	if !ok {
		p.errAt(diag.LowerInvalidAsPatName, ast.PatSpan(left), "left side of `as` must be a variable")
	}
	inner := p.parsePat()
	return &ast.AsPat{Name: name, Ty: leftTy, Pat: inner, Span: p.spanFrom(start)}
}

// bareConName extracts the plain variable name from a pattern that is
// exactly a nullary, unqualified constructor/variable pattern.
func bareConName(pat ast.Pat) (ast.Name, bool) {
	cp, ok := pat.(*ast.ConPat)
	if !ok || cp.Arg != nil || len(cp.Path.Structures) != 0 {
		return "", false
	}
	return cp.Path.Last, true
}

// parsePatApp parses `path atpat` (constructor application), then folds
// in any trailing infix constructor applications (`p1 :: p2`, `p1 op p2`)
// left-to-right. SML patterns only ever use a single infix level in
// practice (`::`); a full precedence-climbing fold is applied anyway so
// user-declared infix constructors compose correctly.
func (p *parser) parsePatApp() ast.Pat {
	start := p.here()
	left := p.parseAtPatOrCon()
	for p.cur().Kind == token.SymbolicId || p.cur().Kind == token.Ident {
		if _, isInfix := p.fixity.Lookup(ast.Name(p.cur().Text)); !isInfix {
			break
		}
		opTok := p.bump()
		right := p.parseAtPatOrCon()
		path := ast.Path{Last: ast.Name(opTok.Text), Span: opTok.Span}
		left = &ast.ConPat{Path: path, Arg: &ast.RecordPat{
			Rows: []ast.PatRow{
				{Lab: ast.Lab{Index: 1}, Pat: left},
				{Lab: ast.Lab{Index: 2}, Pat: right},
			},
			Span: p.spanFrom(start),
		}, Span: p.spanFrom(start)}
	}
	return left
}

func (p *parser) parseAtPatOrCon() ast.Pat {
	start := p.here()
	if p.at(token.KwOp) || p.at(token.Ident) {
		op := false
		if p.at(token.KwOp) {
			p.bump()
			op = true
		}
		path := p.parsePath()
		if p.atAtPatStart() && !isReservedFollow(p.cur().Kind) {
			arg := p.parseAtPat()
			return &ast.ConPat{Op: op, Path: path, Arg: arg, Span: p.spanFrom(start)}
		}
		return &ast.ConPat{Op: op, Path: path, Span: p.spanFrom(start)}
	}
	if p.at(token.SymbolicId) && p.cur().Text == "::" {
		return p.parseAtPat()
	}
	return p.parseAtPat()
}

func (p *parser) atAtPatStart() bool {
	switch p.cur().Kind {
	case token.Ident, token.Underscore, token.IntLit, token.WordLit, token.RealLit,
		token.CharLit, token.StringLit, token.LParen, token.LBrace, token.KwOp:
		return true
	default:
		return false
	}
}

func isReservedFollow(k token.Kind) bool {
	switch k {
	case token.Eq, token.DArrow, token.Bar, token.KwAs, token.Colon, token.Comma,
		token.RParen, token.RBracket, token.RBrace, token.KwAnd, token.KwThen,
		token.KwElse, token.KwOf, token.KwIn, token.KwEnd, token.Semi, token.EOF:
		return true
	default:
		return false
	}
}

func (p *parser) parseAtPat() ast.Pat {
	start := p.here()
	switch p.cur().Kind {
	case token.Underscore:
		p.bump()
		return &ast.WildPat{Span: p.spanFrom(start)}
	case token.IntLit, token.WordLit, token.CharLit, token.StringLit:
		t := p.bump()
		return &ast.SConPat{Kind: sconKindOf(t.Kind), Text: t.Text, Span: t.Span}
	case token.RealLit:
		// Syntactically permitted; statics rejects it (spec.md §4.6 RealPat).
		t := p.bump()
		return &ast.SConPat{Kind: ast.SConReal, Text: t.Text, Span: t.Span}
	case token.KwOp, token.Ident:
		return p.parseAtPatOrCon()
	case token.LBrace:
		return p.parseRecordPat()
	case token.LParen:
		return p.parseParenPat()
	case token.LBracket:
		return p.parseListPat()
	default:
		p.errAt(0, p.here(), "expected a pattern")
		return &ast.HolePat{Span: p.here()}
	}
}

func sconKindOf(k token.Kind) ast.SConKind {
	switch k {
	case token.IntLit:
		return ast.SConInt
	case token.WordLit:
		return ast.SConWord
	case token.CharLit:
		return ast.SConChar
	case token.StringLit:
		return ast.SConString
	default:
		return ast.SConInt
	}
}

func (p *parser) parseRecordPat() ast.Pat {
	start := p.here()
	p.bump() // {
	var rows []ast.PatRow
	allowsOther := false
	for !p.at(token.RBrace) && !p.atEOF() {
		if p.at(token.DotDotDot) {
			p.bump()
			allowsOther = true
			break
		}
		rowStart := p.here()
		lab := p.parseLab()
		var fieldPat ast.Pat
		if p.at(token.Eq) {
			p.bump()
			fieldPat = p.parsePat()
		} else {
			// punning: `{x}` means `{x = x}`.
			fieldPat = &ast.ConPat{Path: ast.Path{Last: lab.Name, Span: lab.Span}, Span: lab.Span}
		}
		rows = append(rows, ast.PatRow{Lab: lab, Pat: fieldPat, Span: p.spanFrom(rowStart)})
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.eat(token.RBrace)
	return &ast.RecordPat{Rows: rows, AllowsOther: allowsOther, Span: p.spanFrom(start)}
}

func (p *parser) parseParenPat() ast.Pat {
	start := p.here()
	p.bump() // (
	if p.at(token.RParen) {
		p.bump()
		return &ast.ConPat{Path: ast.Path{Last: "()"}, Span: p.spanFrom(start)}
	}
	first := p.parsePat()
	if p.at(token.Comma) {
		rows := []ast.PatRow{{Lab: ast.Lab{Index: 1}, Pat: first}}
		i := 2
		for p.at(token.Comma) {
			p.bump()
			rows = append(rows, ast.PatRow{Lab: ast.Lab{Index: i}, Pat: p.parsePat()})
			i++
		}
		p.eat(token.RParen)
		return &ast.RecordPat{Rows: rows, Span: p.spanFrom(start)}
	}
	p.eat(token.RParen)
	return first
}

// parseListPat parses `[p1, p2, ...]`, desugaring to nested `::`/`nil`
// constructor patterns.
func (p *parser) parseListPat() ast.Pat {
	start := p.here()
	p.bump() // [
	var pats []ast.Pat
	for !p.at(token.RBracket) && !p.atEOF() {
		pats = append(pats, p.parsePat())
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.eat(token.RBracket)
	sp := p.spanFrom(start)
	result := ast.Pat(&ast.ConPat{Path: ast.Path{Last: "nil"}, Span: sp})
	for i := len(pats) - 1; i >= 0; i-- {
		result = &ast.ConPat{
			Path: ast.Path{Last: "::"},
			Arg: &ast.RecordPat{Rows: []ast.PatRow{
				{Lab: ast.Lab{Index: 1}, Pat: pats[i]},
				{Lab: ast.Lab{Index: 2}, Pat: result},
			}, Span: sp},
			Span: sp,
		}
	}
	return result
}

func (p *parser) parseOpName() (ast.Name, bool) {
	op := false
	if p.at(token.KwOp) {
		p.bump()
		op = true
	}
	t := p.cur()
	if t.Kind == token.Ident || t.Kind == token.SymbolicId {
		p.bump()
		return ast.Name(t.Text), op
	}
	p.errAt(0, t.Span, "expected an identifier")
	return "", op
}
