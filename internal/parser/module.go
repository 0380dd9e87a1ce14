package parser

import (
	"millet/internal/ast"
	"millet/internal/token"
)

// parseTopDecs parses a whole file as a sequence of top-level
// structure-level declarations. This is the entry point Parse calls.
func (p *parser) parseTopDecs() []ast.StrDec {
	var decs []ast.StrDec
	for !p.atEOF() {
		if p.at(token.Semi) {
			p.bump()
			continue
		}
		decs = append(decs, p.parseOneStrDec())
	}
	return decs
}

func (p *parser) atStrDecStart() bool {
	if p.atDecStart() {
		return true
	}
	switch p.cur().Kind {
	case token.KwStructure, token.KwSignature, token.KwFunctor, token.KwLocal:
		return true
	default:
		return false
	}
}

func (p *parser) parseStrDecSeq() ast.StrDec {
	start := p.here()
	var decs []ast.StrDec
	for {
		if p.at(token.Semi) {
			p.bump()
			continue
		}
		if !p.atStrDecStart() {
			break
		}
		decs = append(decs, p.parseOneStrDec())
	}
	if len(decs) == 1 {
		return decs[0]
	}
	return &ast.SeqStrDec{Decs: decs, Span: p.spanFrom(start)}
}

func (p *parser) parseOneStrDec() ast.StrDec {
	switch p.cur().Kind {
	case token.KwStructure:
		return p.parseStructureDec()
	case token.KwSignature:
		return p.parseSignatureDec()
	case token.KwFunctor:
		return p.parseFunctorDec()
	case token.KwLocal:
		return p.parseLocalStrDec()
	default:
		if p.atDecStart() {
			start := p.here()
			dec := p.parseOneDec()
			return &ast.CoreStrDec{Dec: dec, Span: p.spanFrom(start)}
		}
		start := p.here()
		p.errAt(0, start, "expected a structure-level declaration")
		p.syncTo(token.KwEnd, token.EOF, token.Semi)
		return &ast.CoreStrDec{Dec: &ast.HoleDec{Span: p.spanFrom(start)}, Span: p.spanFrom(start)}
	}
}

func (p *parser) parseLocalStrDec() ast.StrDec {
	start := p.here()
	p.bump() // local
	left := p.parseStrDecSeq()
	p.eat(token.KwIn)
	right := p.parseStrDecSeq()
	p.eat(token.KwEnd)
	return &ast.LocalStrDec{Left: left, Right: right, Span: p.spanFrom(start)}
}

func (p *parser) parseAscriptionKind() (ast.AscriptionKind, bool) {
	switch p.cur().Kind {
	case token.Colon:
		p.bump()
		return ast.AscriptionTransparent, true
	case token.ColonGt:
		p.bump()
		return ast.AscriptionOpaque, true
	default:
		return ast.AscriptionNone, false
	}
}

func (p *parser) parseStructureDec() ast.StrDec {
	start := p.here()
	p.bump() // structure
	var binds []ast.StrBind
	for {
		bstart := p.here()
		nameTok, _ := p.eat(token.Ident)
		var sig ast.SigExp
		asc, has := p.parseAscriptionKind()
		if has {
			sig = p.parseSigExp()
		}
		p.eat(token.Eq)
		exp := p.parseStrExp()
		binds = append(binds, ast.StrBind{Name: ast.Name(nameTok.Text), Asc: asc, Sig: sig, Exp: exp, Span: p.spanFrom(bstart)})
		if p.at(token.KwAnd) {
			p.bump()
			continue
		}
		break
	}
	return &ast.StructureDec{Binds: binds, Span: p.spanFrom(start)}
}

func (p *parser) atStrExpStart() bool {
	switch p.cur().Kind {
	case token.KwStruct, token.Ident, token.KwLet:
		return true
	default:
		return false
	}
}

func (p *parser) parseStrExp() ast.StrExp {
	start := p.here()
	var e ast.StrExp
	switch p.cur().Kind {
	case token.KwStruct:
		p.bump()
		dec := p.parseStrDecSeq()
		p.eat(token.KwEnd)
		e = &ast.StructStrExp{Dec: dec, Span: p.spanFrom(start)}
	case token.KwLet:
		p.bump()
		dec := p.parseStrDecSeq()
		p.eat(token.KwIn)
		body := p.parseStrExp()
		p.eat(token.KwEnd)
		e = &ast.LetStrExp{Dec: dec, Exp: body, Span: p.spanFrom(start)}
	case token.Ident:
		path := p.parsePath()
		if p.at(token.LParen) {
			p.bump()
			var arg ast.StrExp
			if p.atStrDecStart() && !p.atStrExpStart() {
				argDec := p.parseStrDecSeq()
				arg = &ast.StructStrExp{Dec: argDec, Span: p.spanFrom(start)}
			} else {
				arg = p.parseStrExp()
			}
			p.eat(token.RParen)
			e = &ast.AppStrExp{Functor: path, Arg: arg, Span: p.spanFrom(start)}
		} else {
			e = &ast.PathStrExp{Path: path, Span: p.spanFrom(start)}
		}
	default:
		p.errAt(0, p.here(), "expected a structure expression")
		e = &ast.PathStrExp{Path: ast.Path{}, Span: p.here()}
	}
	if asc, has := p.parseAscriptionKind(); has {
		sig := p.parseSigExp()
		e = &ast.AscriptionStrExp{Exp: e, Kind: asc, Sig: sig, Span: p.spanFrom(start)}
	}
	return e
}

func (p *parser) parseSignatureDec() ast.StrDec {
	start := p.here()
	p.bump() // signature
	var binds []ast.SigBind
	for {
		bstart := p.here()
		nameTok, _ := p.eat(token.Ident)
		p.eat(token.Eq)
		exp := p.parseSigExp()
		binds = append(binds, ast.SigBind{Name: ast.Name(nameTok.Text), Exp: exp, Span: p.spanFrom(bstart)})
		if p.at(token.KwAnd) {
			p.bump()
			continue
		}
		break
	}
	return &ast.SignatureDec{Binds: binds, Span: p.spanFrom(start)}
}

func (p *parser) parseSigExp() ast.SigExp {
	start := p.here()
	var e ast.SigExp
	switch p.cur().Kind {
	case token.KwSig:
		p.bump()
		spec := p.parseSpecSeq()
		p.eat(token.KwEnd)
		e = &ast.SigStrExp{Spec: spec, Span: p.spanFrom(start)}
	case token.Ident:
		t := p.bump()
		e = &ast.PathSigExp{Name: ast.Name(t.Text), Span: p.spanFrom(start)}
	default:
		p.errAt(0, p.here(), "expected a signature expression")
		e = &ast.PathSigExp{Name: "", Span: p.here()}
	}
	for p.at(token.KwWhere) {
		p.bump()
		p.eat(token.KwType)
		tvs := p.parseTyVarSeq()
		path := p.parsePath()
		p.eat(token.Eq)
		ty := p.parseTy()
		e = &ast.WhereTypeSigExp{Sig: e, TyVars: tvs, Path: path, Ty: ty, Span: p.spanFrom(start)}
	}
	return e
}

func (p *parser) parseFunctorDec() ast.StrDec {
	start := p.here()
	p.bump() // functor
	var binds []ast.FunctorBind
	for {
		bstart := p.here()
		nameTok, _ := p.eat(token.Ident)
		p.eat(token.LParen)
		paramTok, _ := p.eat(token.Ident)
		p.eat(token.Colon)
		paramSig := p.parseSigExp()
		p.eat(token.RParen)
		var resultSig ast.SigExp
		asc, has := p.parseAscriptionKind()
		if has {
			resultSig = p.parseSigExp()
		}
		p.eat(token.Eq)
		body := p.parseStrExp()
		binds = append(binds, ast.FunctorBind{
			Name: ast.Name(nameTok.Text), ParamName: ast.Name(paramTok.Text), ParamSig: paramSig,
			Asc: asc, ResultSig: resultSig, Body: body, Span: p.spanFrom(bstart),
		})
		if p.at(token.KwAnd) {
			p.bump()
			continue
		}
		break
	}
	return &ast.FunctorDec{Binds: binds, Span: p.spanFrom(start)}
}

func (p *parser) atSpecStart() bool {
	switch p.cur().Kind {
	case token.KwVal, token.KwType, token.KwEqtype, token.KwDatatype, token.KwException,
		token.KwStructure, token.KwInclude, token.KwSharing:
		return true
	default:
		return false
	}
}

func (p *parser) parseSpecSeq() ast.Spec {
	start := p.here()
	var specs []ast.Spec
	for {
		if p.at(token.Semi) {
			p.bump()
			continue
		}
		if !p.atSpecStart() {
			break
		}
		specs = append(specs, p.parseOneSpec())
	}
	if len(specs) == 1 {
		return specs[0]
	}
	return &ast.SeqSpec{Specs: specs, Span: p.spanFrom(start)}
}

func (p *parser) parseOneSpec() ast.Spec {
	switch p.cur().Kind {
	case token.KwVal:
		return p.parseValSpec()
	case token.KwType:
		return p.parseTypeSpec(false)
	case token.KwEqtype:
		return p.parseTypeSpec(true)
	case token.KwDatatype:
		return p.parseDatatypeSpec()
	case token.KwException:
		return p.parseExceptionSpec()
	case token.KwStructure:
		return p.parseStructureSpec()
	case token.KwInclude:
		return p.parseIncludeSpec()
	case token.KwSharing:
		return p.parseSharingSpec()
	default:
		start := p.here()
		p.errAt(0, start, "expected a specification")
		p.syncTo(token.KwEnd, token.EOF, token.Semi)
		return &ast.SeqSpec{Span: p.spanFrom(start)}
	}
}

func (p *parser) parseValSpec() ast.Spec {
	start := p.here()
	p.bump() // val
	var descs []ast.ValDesc
	for {
		nameTok, _ := p.eat(token.Ident)
		p.eat(token.Colon)
		ty := p.parseTy()
		descs = append(descs, ast.ValDesc{Name: ast.Name(nameTok.Text), Ty: ty})
		if p.at(token.KwAnd) {
			p.bump()
			continue
		}
		break
	}
	return &ast.ValSpec{Descs: descs, Span: p.spanFrom(start)}
}

// parseTypeSpec parses `type`/`eqtype` specs. A trailing `= ty` is accepted
// as a TypeDefSpec (a common sig-level extension); otherwise a bare
// TypeSpec is produced.
func (p *parser) parseTypeSpec(eq bool) ast.Spec {
	start := p.here()
	p.bump() // type/eqtype
	var descs []ast.TypeDesc
	var defs []ast.TyBind
	isDef := false
	for {
		dstart := p.here()
		tvs := p.parseTyVarSeq()
		nameTok, _ := p.eat(token.Ident)
		if p.at(token.Eq) {
			isDef = true
			p.bump()
			ty := p.parseTy()
			defs = append(defs, ast.TyBind{TyVars: tvs, Name: ast.Name(nameTok.Text), Ty: ty, Span: p.spanFrom(dstart)})
		} else {
			descs = append(descs, ast.TypeDesc{TyVars: tvs, Name: ast.Name(nameTok.Text)})
		}
		if p.at(token.KwAnd) {
			p.bump()
			continue
		}
		break
	}
	if isDef {
		return &ast.TypeDefSpec{Binds: defs, Span: p.spanFrom(start)}
	}
	return &ast.TypeSpec{Eqtype: eq, Descs: descs, Span: p.spanFrom(start)}
}

func (p *parser) parseDatatypeSpec() ast.Spec {
	start := p.here()
	p.bump() // datatype
	var binds []ast.DatBind
	for {
		binds = append(binds, p.parseDatBind())
		if p.at(token.KwAnd) {
			p.bump()
			continue
		}
		break
	}
	var with []ast.TyBind
	if p.at(token.KwWithtype) {
		p.bump()
		for {
			with = append(with, p.parseTyBind())
			if p.at(token.KwAnd) {
				p.bump()
				continue
			}
			break
		}
	}
	return &ast.DatatypeSpec{Binds: binds, WithType: with, Span: p.spanFrom(start)}
}

func (p *parser) parseExceptionSpec() ast.Spec {
	start := p.here()
	p.bump() // exception
	var descs []ast.ExDesc
	for {
		nameTok, _ := p.eat(token.Ident)
		var arg ast.Ty
		if p.at(token.KwOf) {
			p.bump()
			arg = p.parseTy()
		}
		descs = append(descs, ast.ExDesc{Name: ast.Name(nameTok.Text), Arg: arg})
		if p.at(token.KwAnd) {
			p.bump()
			continue
		}
		break
	}
	return &ast.ExceptionSpec{Descs: descs, Span: p.spanFrom(start)}
}

func (p *parser) parseStructureSpec() ast.Spec {
	start := p.here()
	p.bump() // structure
	var descs []ast.StrDesc
	for {
		nameTok, _ := p.eat(token.Ident)
		p.eat(token.Colon)
		sig := p.parseSigExp()
		descs = append(descs, ast.StrDesc{Name: ast.Name(nameTok.Text), Sig: sig})
		if p.at(token.KwAnd) {
			p.bump()
			continue
		}
		break
	}
	return &ast.StructureSpec{Descs: descs, Span: p.spanFrom(start)}
}

func (p *parser) parseIncludeSpec() ast.Spec {
	start := p.here()
	p.bump() // include
	var sigs []ast.SigExp
	sigs = append(sigs, p.parseSigExp())
	for p.at(token.KwAnd) {
		p.bump()
		sigs = append(sigs, p.parseSigExp())
	}
	return &ast.IncludeSpec{Sigs: sigs, Span: p.spanFrom(start)}
}

func (p *parser) parseSharingSpec() ast.Spec {
	start := p.here()
	p.bump() // sharing
	kind := ast.SharingStructure
	if p.at(token.KwType) {
		p.bump()
		kind = ast.SharingType
	}
	var paths []ast.Path
	paths = append(paths, p.parsePath())
	for p.at(token.Eq) {
		p.bump()
		paths = append(paths, p.parsePath())
	}
	return &ast.SharingSpec{Kind: kind, Paths: paths, Span: p.spanFrom(start)}
}
