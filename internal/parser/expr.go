package parser

import (
	"millet/internal/ast"
	"millet/internal/source"
	"millet/internal/token"
)

// parseExpr parses a full expression: keyword-led forms (if/case/fn/
// let/raise/while), or an infix expression built from application-level
// operands via precedence climbing over the current FixityEnv.
func (p *parser) parseExpr() ast.Exp {
	switch p.cur().Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwCase:
		return p.parseCase()
	case token.KwFn:
		return p.parseFn()
	case token.KwLet:
		return p.parseLet()
	case token.KwRaise:
		return p.parseRaise()
	case token.KwWhile:
		return p.parseWhile()
	default:
		return p.parseInfixExpr(0)
	}
}

func (p *parser) parseIf() ast.Exp {
	start := p.here()
	p.bump()
	cond := p.parseExpr()
	p.eat(token.KwThen)
	then := p.parseExpr()
	p.eat(token.KwElse)
	els := p.parseExpr()
	return &ast.IfExp{Cond: cond, Then: then, Else: els, Span: p.spanFrom(start)}
}

func (p *parser) parseWhile() ast.Exp {
	start := p.here()
	p.bump()
	cond := p.parseExpr()
	p.eat(token.KwDo)
	body := p.parseExpr()
	return &ast.WhileExp{Cond: cond, Body: body, Span: p.spanFrom(start)}
}

func (p *parser) parseRaise() ast.Exp {
	start := p.here()
	p.bump()
	e := p.parseExpr()
	return &ast.RaiseExp{Exp: e, Span: p.spanFrom(start)}
}

func (p *parser) parseFn() ast.Exp {
	start := p.here()
	p.bump()
	arms := p.parseMatcher()
	return &ast.FnExp{Matcher: arms, Span: p.spanFrom(start)}
}

func (p *parser) parseCase() ast.Exp {
	start := p.here()
	p.bump()
	e := p.parseExpr()
	p.eat(token.KwOf)
	arms := p.parseMatcher()
	return &ast.CaseExp{Exp: e, Matcher: arms, Span: p.spanFrom(start)}
}

func (p *parser) parseMatcher() []ast.Arm {
	var arms []ast.Arm
	for {
		start := p.here()
		pat := p.parsePat()
		p.eat(token.DArrow)
		body := p.parseExprNoBarHandle()
		arms = append(arms, ast.Arm{Pat: pat, Exp: body, Span: p.spanFrom(start)})
		if p.at(token.Bar) {
			p.bump()
			continue
		}
		break
	}
	return arms
}

// parseExprNoBarHandle parses a matcher-arm body: a full expression, but
// `handle` binds as part of the surrounding arm rather than grabbing the
// next `|` alternative (handled naturally since `handle` is a postfix
// suffix applied inside parseInfixExpr's caller chain below).
func (p *parser) parseExprNoBarHandle() ast.Exp {
	e := p.parseExpr()
	for p.at(token.KwHandle) {
		start := ast.ExpSpan(e)
		p.bump()
		arms := p.parseMatcher()
		e = &ast.HandleExp{Exp: e, Matcher: arms, Span: p.spanFrom(start)}
	}
	return e
}

func (p *parser) parseLet() ast.Exp {
	start := p.here()
	p.bump()
	savedFixity := p.fixity
	p.fixity = p.fixity.Clone()
	dec := p.parseDecSeq()
	p.fixity = savedFixity
	p.eat(token.KwIn)
	body := p.parseExprSeq()
	p.eat(token.KwEnd)
	return &ast.LetExp{Dec: dec, Body: body, Span: p.spanFrom(start)}
}

// parseExprSeq parses `exp1; exp2; ...; expn`, producing a SeqExp when
// there is more than one expression.
func (p *parser) parseExprSeq() ast.Exp {
	start := p.here()
	first := p.parseExprNoBarHandle()
	if !p.at(token.Semi) {
		return first
	}
	exps := []ast.Exp{first}
	for p.at(token.Semi) {
		p.bump()
		exps = append(exps, p.parseExprNoBarHandle())
	}
	return &ast.SeqExp{Exps: exps, Span: p.spanFrom(start)}
}

// parseInfixExpr implements precedence climbing over application-level
// operands, threading andalso/orelse in at their fixed precedence
// (between level 0 and the lowest declared infix, per the Definition).
func (p *parser) parseInfixExpr(minPrec int) ast.Exp {
	start := p.here()
	left := p.parseAppExpr()
	for {
		if p.at(token.KwAndalso) && minPrec <= 1 {
			p.bump()
			right := p.parseInfixExpr(2)
			left = &ast.AndalsoExp{Left: left, Right: right, Span: p.spanFrom(start)}
			continue
		}
		if p.at(token.KwOrelse) && minPrec <= 0 {
			p.bump()
			right := p.parseInfixExpr(1)
			left = &ast.OrelseExp{Left: left, Right: right, Span: p.spanFrom(start)}
			continue
		}
		name, ok := p.curInfixName()
		if !ok {
			return left
		}
		fx, _ := p.fixity.Lookup(name)
		if fx.Level < minPrec {
			return left
		}
		p.bump()
		nextMin := fx.Level + 1
		if fx.Assoc == AssocRight {
			nextMin = fx.Level
		}
		right := p.parseInfixExpr(nextMin)
		left = applyInfix(name, left, right, p.spanFrom(start))
	}
}

func (p *parser) curInfixName() (ast.Name, bool) {
	if p.cur().Kind != token.SymbolicId && p.cur().Kind != token.Ident {
		return "", false
	}
	name := ast.Name(p.cur().Text)
	if _, ok := p.fixity.Lookup(name); !ok {
		return "", false
	}
	return name, true
}

func applyInfix(name ast.Name, left, right ast.Exp, span source.Span) ast.Exp {
	path := &ast.PathExp{Path: ast.Path{Last: name}, Span: span}
	arg := &ast.RecordExp{Rows: []ast.ExpRow{
		{Lab: ast.Lab{Index: 1}, Exp: left},
		{Lab: ast.Lab{Index: 2}, Exp: right},
	}, Span: span}
	return &ast.AppExp{Func: path, Arg: arg, Span: span}
}

// parseAppExpr parses `atexp1 atexp2 ... atexpn`, left-associative
// function application.
func (p *parser) parseAppExpr() ast.Exp {
	start := p.here()
	e := p.parseAtExprOp()
	for p.atAtExprStart() {
		arg := p.parseAtExprOp()
		e = &ast.AppExp{Func: e, Arg: arg, Span: p.spanFrom(start)}
	}
	if p.at(token.Colon) {
		p.bump()
		ty := p.parseTy()
		e = &ast.TypedExp{Exp: e, Ty: ty, Span: p.spanFrom(start)}
	}
	return e
}

func (p *parser) parseAtExprOp() ast.Exp {
	start := p.here()
	if p.at(token.KwOp) {
		p.bump()
		path := p.parsePath()
		return &ast.PathExp{Op: true, Path: path, Span: p.spanFrom(start)}
	}
	return p.parseAtExpr()
}

func (p *parser) atAtExprStart() bool {
	switch p.cur().Kind {
	case token.Ident, token.KwOp, token.IntLit, token.WordLit, token.RealLit,
		token.CharLit, token.StringLit, token.LParen, token.LBrace, token.LBracket,
		token.Hash:
		return true
	default:
		return false
	}
}

func (p *parser) parseAtExpr() ast.Exp {
	start := p.here()
	switch p.cur().Kind {
	case token.IntLit, token.WordLit, token.RealLit, token.CharLit, token.StringLit:
		t := p.bump()
		return &ast.SCon{Kind: sconKindOfExp(t.Kind), Text: t.Text, Span: t.Span}
	case token.Ident:
		path := p.parsePath()
		return &ast.PathExp{Path: path, Span: p.spanFrom(start)}
	case token.Hash:
		p.bump()
		lab := p.parseLab()
		// `#lab` is kept as a plain path named `#lab`; lowering does not
		// expand it into a selector function, and statics has no binding for
		// that name.
		return &ast.PathExp{Path: ast.Path{Last: ast.Name("#" + labelText(lab))}, Span: p.spanFrom(start)}
	case token.LBrace:
		return p.parseRecordExpr()
	case token.LBracket:
		return p.parseListExpr()
	case token.LParen:
		return p.parseParenExpr()
	default:
		p.errAt(0, p.here(), "expected an expression")
		return &ast.HoleExp{Span: p.here()}
	}
}

func labelText(l ast.Lab) string {
	if l.IsTuple() {
		return string(rune('0' + l.Index))
	}
	return string(l.Name)
}

func sconKindOfExp(k token.Kind) ast.SConKind {
	switch k {
	case token.IntLit:
		return ast.SConInt
	case token.WordLit:
		return ast.SConWord
	case token.RealLit:
		return ast.SConReal
	case token.CharLit:
		return ast.SConChar
	case token.StringLit:
		return ast.SConString
	default:
		return ast.SConInt
	}
}

func (p *parser) parseRecordExpr() ast.Exp {
	start := p.here()
	p.bump() // {
	var rows []ast.ExpRow
	for !p.at(token.RBrace) && !p.atEOF() {
		rowStart := p.here()
		lab := p.parseLab()
		p.eat(token.Eq)
		e := p.parseExpr()
		rows = append(rows, ast.ExpRow{Lab: lab, Exp: e, Span: p.spanFrom(rowStart)})
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.eat(token.RBrace)
	return &ast.RecordExp{Rows: rows, Span: p.spanFrom(start)}
}

func (p *parser) parseListExpr() ast.Exp {
	start := p.here()
	p.bump() // [
	var exps []ast.Exp
	for !p.at(token.RBracket) && !p.atEOF() {
		exps = append(exps, p.parseExpr())
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.eat(token.RBracket)
	sp := p.spanFrom(start)
	result := ast.Exp(&ast.PathExp{Path: ast.Path{Last: "nil"}, Span: sp})
	for i := len(exps) - 1; i >= 0; i-- {
		cons := &ast.PathExp{Path: ast.Path{Last: "::"}, Span: sp}
		arg := &ast.RecordExp{Rows: []ast.ExpRow{
			{Lab: ast.Lab{Index: 1}, Exp: exps[i]},
			{Lab: ast.Lab{Index: 2}, Exp: result},
		}, Span: sp}
		result = &ast.AppExp{Func: cons, Arg: arg, Span: sp}
	}
	return result
}

func (p *parser) parseParenExpr() ast.Exp {
	start := p.here()
	p.bump() // (
	if p.at(token.RParen) {
		p.bump()
		return &ast.PathExp{Path: ast.Path{Last: "()"}, Span: p.spanFrom(start)}
	}
	first := p.parseExprSeq()
	if p.at(token.Comma) {
		rows := []ast.ExpRow{{Lab: ast.Lab{Index: 1}, Exp: first}}
		i := 2
		for p.at(token.Comma) {
			p.bump()
			rows = append(rows, ast.ExpRow{Lab: ast.Lab{Index: i}, Exp: p.parseExprSeq()})
			i++
		}
		p.eat(token.RParen)
		return &ast.RecordExp{Rows: rows, Span: p.spanFrom(start)}
	}
	p.eat(token.RParen)
	return first
}
