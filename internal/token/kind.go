// Package token defines the lexical categories of Standard ML source text.
package token

// Kind is the category of a single token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	// Identifiers and literals.
	Ident       // alphanumeric identifier: foo, Foo', x1
	SymbolicId  // symbolic identifier: +, @, ::, <=
	TyVar       // 'a, ''a
	IntLit      // 123, ~123, 0x1F
	WordLit     // 0w12, 0wx1F
	RealLit     // 1.0, 1e10, ~1.0
	CharLit     // #"a"
	StringLit   // "abc"
	Label       // #foo, #1 (record selector); the lexer never emits it, producing Hash then the label instead
	LongIdStart // reserved for qualified-path dotted segments (parser concern, not lexer)

	// Reserved words (SML '97 §2.4, 2.9).
	KwAbstype
	KwAnd
	KwAndalso
	KwAs
	KwCase
	KwDatatype
	KwDo
	KwElse
	KwEnd
	KwException
	KwFn
	KwFun
	KwHandle
	KwIf
	KwIn
	KwInfix
	KwInfixr
	KwLet
	KwLocal
	KwNonfix
	KwOf
	KwOp
	KwOpen
	KwOrelse
	KwRaise
	KwRec
	KwThen
	KwType
	KwVal
	KwWith
	KwWithtype
	KwWhile
	KwEqtype
	KwFunctor
	KwInclude
	KwSharing
	KwSig
	KwSignature
	KwStruct
	KwStructure
	KwWhere

	// Punctuation.
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	ColonGt   // :>
	Semi      // ;
	DotDotDot // ...
	Underscore
	Bar     // |
	Eq      // =
	DArrow  // =>
	Arrow   // ->
	Hash    // #
	Star    // *
	Dot     // . (structure path separator)
)

var kindNames = map[Kind]string{
	Invalid: "invalid", EOF: "EOF",
	Ident: "identifier", SymbolicId: "symbolic identifier", TyVar: "type variable",
	IntLit: "integer literal", WordLit: "word literal", RealLit: "real literal",
	CharLit: "character literal", StringLit: "string literal", Label: "label",
	KwAbstype: "abstype", KwAnd: "and", KwAndalso: "andalso", KwAs: "as",
	KwCase: "case", KwDatatype: "datatype", KwDo: "do", KwElse: "else",
	KwEnd: "end", KwException: "exception", KwFn: "fn", KwFun: "fun",
	KwHandle: "handle", KwIf: "if", KwIn: "in", KwInfix: "infix",
	KwInfixr: "infixr", KwLet: "let", KwLocal: "local", KwNonfix: "nonfix",
	KwOf: "of", KwOp: "op", KwOpen: "open", KwOrelse: "orelse",
	KwRaise: "raise", KwRec: "rec", KwThen: "then", KwType: "type",
	KwVal: "val", KwWith: "with", KwWithtype: "withtype", KwWhile: "while",
	KwEqtype: "eqtype", KwFunctor: "functor", KwInclude: "include",
	KwSharing: "sharing", KwSig: "sig", KwSignature: "signature",
	KwStruct: "struct", KwStructure: "structure", KwWhere: "where",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	LBrace: "{", RBrace: "}", Comma: ",", Colon: ":", ColonGt: ":>",
	Semi: ";", DotDotDot: "...", Underscore: "_", Bar: "|", Eq: "=",
	DArrow: "=>", Arrow: "->", Hash: "#", Star: "*", Dot: ".",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsKeyword reports whether k is one of the SML reserved words.
func (k Kind) IsKeyword() bool { return k >= KwAbstype && k <= KwWhere }
