package project

import (
	"fmt"
	"strings"
	"unicode"

	"millet/internal/diag"
	"millet/internal/source"
)

// This file implements the one CM-flavored group grammar spec.md §6
// contracts (shared by .cm and .mlb files — the spec gives a single
// textual grammar for both dialects, so Kind only changes which file
// extension routed a buffer here, not how it is tokenized or parsed).
// No ecosystem library parses SML/NJ CM or ML Basis files; this hand-
// written recursive-descent parser is this package's one deliberately
// stdlib-only corner (see DESIGN.md).

type tokKind uint8

const (
	tokWord tokKind = iota // bare identifier or unquoted path segment
	tokString              // "quoted path"
	tokColon
	tokLParen
	tokRParen
	tokMinus
	tokEOF
)

type gtoken struct {
	kind tokKind
	text string
	span source.Span
}

// scan tokenizes src (one group file's content), skipping whitespace and
// `(* ... *)` nested comments (SML's own comment syntax, which CM/MLB
// group files reuse).
func scan(file source.FileID, src string) []gtoken {
	var toks []gtoken
	i := 0
	n := len(src)
	mk := func(start, end int, kind tokKind) gtoken {
		return gtoken{kind: kind, text: src[start:end], span: source.Span{File: file, Start: uint32(start), End: uint32(end)}}
	}
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '(' && i+1 < n && src[i+1] == '*':
			i = skipComment(src, i)
		case c == '(':
			toks = append(toks, mk(i, i+1, tokLParen))
			i++
		case c == ')':
			toks = append(toks, mk(i, i+1, tokRParen))
			i++
		case c == ':':
			toks = append(toks, mk(i, i+1, tokColon))
			i++
		case c == '-' && (i+1 >= n || isBreak(rune(src[i+1]))):
			toks = append(toks, mk(i, i+1, tokMinus))
			i++
		case c == '"':
			j := i + 1
			for j < n && src[j] != '"' {
				j++
			}
			end := j
			if j < n {
				end = j + 1
			}
			toks = append(toks, mk(i+1, j, tokString))
			i = end
		default:
			j := i
			for j < n && !isBreak(rune(src[j])) {
				j++
			}
			if j == i {
				i++
				continue
			}
			toks = append(toks, mk(i, j, tokWord))
			i = j
		}
	}
	toks = append(toks, gtoken{kind: tokEOF, span: source.Span{File: file, Start: uint32(n), End: uint32(n)}})
	return toks
}

func isBreak(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '(', ')', ':', '"':
		return true
	}
	return false
}

func skipComment(src string, i int) int {
	depth := 0
	n := len(src)
	for i < n {
		if i+1 < n && src[i] == '(' && src[i+1] == '*' {
			depth++
			i += 2
			continue
		}
		if i+1 < n && src[i] == '*' && src[i+1] == ')' {
			depth--
			i += 2
			if depth == 0 {
				return i
			}
			continue
		}
		i++
	}
	return i
}

type gparser struct {
	toks []gtoken
	pos  int
	errs *diag.Bag
}

func (p *gparser) peek() gtoken { return p.toks[p.pos] }

func (p *gparser) next() gtoken {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *gparser) atEnd() bool { return p.peek().kind == tokEOF }

func (p *gparser) expectWord(want string) (gtoken, bool) {
	t := p.peek()
	if t.kind == tokWord && strings.EqualFold(t.text, want) {
		return p.next(), true
	}
	p.errs.Add(diag.NewError(diag.ParseExpected, t.span, fmt.Sprintf("expected %q", want)))
	return t, false
}

// parseGroupFile parses one group file's token stream into the raw
// export/member lists spec.md §6's grammar describes:
//
//	("Group"|"Library") exports "is" members
func parseGroupFile(toks []gtoken, errs *diag.Bag) (isLibrary bool, exports []Export, members []rawMember) {
	p := &gparser{toks: toks, errs: errs}
	head := p.peek()
	switch {
	case head.kind == tokWord && strings.EqualFold(head.text, "library"):
		isLibrary = true
		p.next()
	case head.kind == tokWord && strings.EqualFold(head.text, "group"):
		p.next()
	default:
		errs.Add(diag.NewError(diag.ParseExpected, head.span, `expected "Group" or "Library"`))
		return
	}

	for !p.atEnd() {
		t := p.peek()
		if t.kind == tokWord && strings.EqualFold(t.text, "is") {
			p.next()
			break
		}
		exp, ok := parseExport(p)
		if !ok {
			if !p.atEnd() {
				p.next()
			}
			continue
		}
		exports = append(exports, exp)
	}
	if isLibrary && len(exports) == 0 {
		errs.Add(diag.NewError(diag.ParseEmptyExportList, head.span, "a Library must declare at least one export"))
	}

	for !p.atEnd() {
		m, ok := parseMember(p)
		if !ok {
			continue
		}
		members = append(members, m)
	}
	return
}

type rawMember struct {
	path  string
	class string // "" if unspecified
	span  source.Span
}

func namespaceOf(word string) (Namespace, bool) {
	switch strings.ToLower(word) {
	case "structure":
		return NamespaceStructure, true
	case "signature":
		return NamespaceSignature, true
	case "functor":
		return NamespaceFunctor, true
	case "funsig":
		return NamespaceFunSig, true
	default:
		return 0, false
	}
}

func parseExport(p *gparser) (Export, bool) {
	t := p.peek()
	if t.kind != tokWord {
		p.errs.Add(diag.NewError(diag.ParseExpectedExport, t.span, "expected an export item"))
		return Export{}, false
	}
	lower := strings.ToLower(t.text)
	if ns, ok := namespaceOf(t.text); ok {
		p.next()
		name := p.peek()
		if name.kind != tokWord {
			p.errs.Add(diag.NewError(diag.ParseExpectedDesc, name.span, "expected an exported name"))
			return Export{}, false
		}
		p.next()
		return Export{Kind: ExportName, Namespace: ns, Name: name.text, Span: source.Span{File: t.span.File, Start: t.span.Start, End: name.span.End}}, true
	}
	switch lower {
	case "library", "source", "group":
		p.next()
		if _, ok := p.expectWordKind(tokLParen); !ok {
			return Export{}, false
		}
		inner := p.peek()
		isAll := inner.kind == tokMinus
		path := ""
		if isAll {
			p.next()
		} else if inner.kind == tokWord || inner.kind == tokString {
			path = inner.text
			p.next()
		} else {
			p.errs.Add(diag.NewError(diag.ParseExpectedDesc, inner.span, "expected a path or \"-\""))
			return Export{}, false
		}
		closeParen := p.peek()
		if closeParen.kind != tokRParen {
			p.errs.Add(diag.NewError(diag.ParseExpected, closeParen.span, `expected ")"`))
			return Export{}, false
		}
		p.next()
		span := source.Span{File: t.span.File, Start: t.span.Start, End: closeParen.span.End}
		switch lower {
		case "library":
			return Export{Kind: ExportLibrary, Path: path, IsStdlib: strings.EqualFold(path, "stdlib"), Span: span}, true
		case "source":
			return Export{Kind: ExportSource, Path: path, IsAll: isAll, Span: span}, true
		default: // "group"
			return Export{Kind: ExportGroup, Path: path, IsAll: isAll, Span: span}, true
		}
	default:
		p.errs.Add(diag.NewError(diag.ParseExpectedExport, t.span, fmt.Sprintf("unexpected export item %q", t.text)))
		return Export{}, false
	}
}

// expectWordKind is parseExport's helper for the single non-word token
// kinds it needs to assert ("(" here); named distinctly from expectWord
// since those two never share a call site.
func (p *gparser) expectWordKind(kind tokKind) (gtoken, bool) {
	t := p.peek()
	if t.kind == kind {
		return p.next(), true
	}
	p.errs.Add(diag.NewError(diag.ParseExpected, t.span, `expected "("`))
	return t, false
}

var knownClasses = map[string]MemberClass{
	"sml": ClassSML,
	"sig": ClassSig,
	"fun": ClassFun,
	"cm":  ClassCM,
	"mlb": ClassCM,
}

func parseMember(p *gparser) (rawMember, bool) {
	t := p.peek()
	if t.kind != tokWord && t.kind != tokString {
		p.errs.Add(diag.NewError(diag.ParseExpected, t.span, "expected a member path"))
		p.next()
		return rawMember{}, false
	}
	p.next()
	m := rawMember{path: t.text, span: t.span}
	if p.peek().kind == tokColon {
		p.next()
		cls := p.peek()
		if cls.kind != tokWord {
			p.errs.Add(diag.NewError(diag.ParseExpectedDesc, cls.span, "expected a member class"))
			return rawMember{}, false
		}
		p.next()
		m.class = cls.text
		m.span.End = cls.span.End
	}
	return m, true
}
