package parser

import (
	"millet/internal/ast"
	"millet/internal/token"
)

// parseTy parses a type expression: atomic types joined by `->` (which is
// right-associative) and juxtaposed with a trailing type constructor path.
func (p *parser) parseTy() ast.Ty {
	start := p.here()
	left := p.parseTyApp()
	if p.at(token.Arrow) {
		p.bump()
		right := p.parseTy()
		return &ast.FnTy{Param: left, Result: right, Span: p.spanFrom(start)}
	}
	return left
}

// parseTyApp parses `atty1 ... attyn path` with zero or more trailing
// `path` applications, e.g. `int list list`.
func (p *parser) parseTyApp() ast.Ty {
	start := p.here()
	t := p.parseAtTy()
	for isPathStart(p.cur().Kind) && !p.at(token.Arrow) {
		path := p.parsePath()
		args := []ast.Ty{t}
		t = &ast.ConTy{Args: args, Path: path, Span: p.spanFrom(start)}
	}
	return t
}

func (p *parser) parseAtTy() ast.Ty {
	start := p.here()
	switch p.cur().Kind {
	case token.TyVar:
		tv := p.parseTyVar()
		return &ast.VarTy{Var: tv, Span: tv.Span}
	case token.LBrace:
		return p.parseRecordTy()
	case token.LParen:
		p.bump()
		first := p.parseTy()
		if p.at(token.Comma) {
			args := []ast.Ty{first}
			for p.at(token.Comma) {
				p.bump()
				args = append(args, p.parseTy())
			}
			p.eat(token.RParen)
			path := p.parsePath()
			return &ast.ConTy{Args: args, Path: path, Span: p.spanFrom(start)}
		}
		p.eat(token.RParen)
		return first
	case token.Ident:
		path := p.parsePath()
		return &ast.ConTy{Path: path, Span: p.spanFrom(start)}
	default:
		p.errAt(0, p.here(), "expected a type")
		return &ast.HoleTy{Span: p.here()}
	}
}

func (p *parser) parseTyVar() ast.TyVar {
	t := p.cur()
	if t.Kind != token.TyVar {
		p.errExpected(token.TyVar)
		return ast.TyVar{Span: t.Span}
	}
	p.bump()
	text := t.Text
	eq := false
	i := 0
	for i < len(text) && text[i] == '\'' {
		i++
	}
	if i >= 2 {
		eq = true
	}
	return ast.TyVar{Name: ast.Name(text[i:]), Equality: eq, Span: t.Span}
}

func (p *parser) parseRecordTy() ast.Ty {
	start := p.here()
	p.bump() // {
	var rows []ast.TyRow
	for !p.at(token.RBrace) && !p.atEOF() {
		rowStart := p.here()
		lab := p.parseLab()
		p.eat(token.Colon)
		ty := p.parseTy()
		rows = append(rows, ast.TyRow{Lab: lab, Ty: ty, Span: p.spanFrom(rowStart)})
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.eat(token.RBrace)
	return &ast.RecordTy{Rows: rows, Span: p.spanFrom(start)}
}

func (p *parser) parseLab() ast.Lab {
	t := p.cur()
	switch t.Kind {
	case token.Ident, token.SymbolicId:
		p.bump()
		return ast.Lab{Name: ast.Name(t.Text), Span: t.Span}
	case token.IntLit:
		p.bump()
		idx := 0
		for _, c := range t.Text {
			if c >= '0' && c <= '9' {
				idx = idx*10 + int(c-'0')
			}
		}
		if idx == 0 {
			idx = 1
		}
		return ast.Lab{Index: idx, Span: t.Span}
	default:
		p.errAt(0, t.Span, "expected a label")
		return ast.Lab{Span: t.Span}
	}
}

func isPathStart(k token.Kind) bool { return k == token.Ident }

func (p *parser) parsePath() ast.Path {
	start := p.here()
	var segs []ast.Name
	for {
		t, ok := p.eat(token.Ident)
		if !ok {
			return ast.Path{Span: p.spanFrom(start)}
		}
		segs = append(segs, ast.Name(t.Text))
		if p.at(token.Dot) {
			p.bump()
			continue
		}
		break
	}
	last := segs[len(segs)-1]
	return ast.Path{Structures: segs[:len(segs)-1], Last: last, Span: p.spanFrom(start)}
}
