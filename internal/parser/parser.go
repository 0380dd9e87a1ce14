// Package parser builds a CST/AST from a token stream, with error
// recovery so a single malformed construct never prevents parsing the
// rest of the file (spec.md §4.4). The parser never "fails" outright:
// unparseable subtrees become ast.Hole* nodes, which lowering turns into
// HIR holes.
package parser

import (
	"fmt"

	"millet/internal/ast"
	"millet/internal/diag"
	"millet/internal/source"
	"millet/internal/token"
)

// Result is the parser's output for one file.
type Result struct {
	File   *ast.File
	Errors *diag.Bag
}

// Parse builds a Result from a pre-lexed token stream.
func Parse(file *source.File, toks []token.Token) Result {
	p := &parser{file: file, toks: toks, fixity: NewFixityEnv(), errs: diag.NewBag()}
	decs := p.parseTopDecs()
	start := source.Span{File: file.ID, Start: 0, End: 0}
	sp := start
	if len(toks) > 0 {
		sp = source.Span{File: file.ID, Start: toks[0].Span.Start, End: toks[len(toks)-1].Span.End}
	}
	return Result{File: &ast.File{Decs: decs, Span: sp}, Errors: p.errs}
}

type parser struct {
	file   *source.File
	toks   []token.Token
	pos    int
	fixity *FixityEnv
	errs   *diag.Bag
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF sentinel is always last
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *parser) bump() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// eat consumes a token of kind k, or records a recovery diagnostic and
// returns the current (unconsumed) token without advancing, letting the
// caller decide how to proceed.
func (p *parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.bump(), true
	}
	p.errExpected(k)
	return p.cur(), false
}

func (p *parser) errExpected(k token.Kind) {
	p.errAt(diag.ParseExpected, p.cur().Span, fmt.Sprintf("expected %s, found %s", k, p.cur().Kind))
}

func (p *parser) errAt(code diag.Code, sp source.Span, msg string) {
	p.errs.Add(diag.NewError(code, sp, msg))
}

func (p *parser) here() source.Span { return p.cur().Span }

func (p *parser) spanFrom(start source.Span) source.Span {
	end := p.toks[max(p.pos-1, 0)].Span
	return start.Cover(end)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// syncTo advances tokens until one in follow is reached (or EOF), used to
// recover from an unexpected token by skipping to a known synchronization
// point (spec.md §4.4).
func (p *parser) syncTo(follow ...token.Kind) {
	for !p.atEOF() {
		for _, k := range follow {
			if p.at(k) {
				return
			}
		}
		p.bump()
	}
}

func isDecFollow(k token.Kind) bool {
	switch k {
	case token.KwEnd, token.KwIn, token.EOF, token.Semi,
		token.KwVal, token.KwFun, token.KwType, token.KwDatatype, token.KwAbstype,
		token.KwException, token.KwLocal, token.KwOpen, token.KwInfix, token.KwInfixr,
		token.KwNonfix, token.KwStructure, token.KwSignature, token.KwFunctor:
		return true
	default:
		return false
	}
}
