package token

// Keywords maps the reserved-word spelling to its Kind. Anything not in
// this table that looks alphanumeric is an Ident.
var Keywords = map[string]Kind{
	"abstype":   KwAbstype,
	"and":       KwAnd,
	"andalso":   KwAndalso,
	"as":        KwAs,
	"case":      KwCase,
	"datatype":  KwDatatype,
	"do":        KwDo,
	"else":      KwElse,
	"end":       KwEnd,
	"exception": KwException,
	"fn":        KwFn,
	"fun":       KwFun,
	"handle":    KwHandle,
	"if":        KwIf,
	"in":        KwIn,
	"infix":     KwInfix,
	"infixr":    KwInfixr,
	"let":       KwLet,
	"local":     KwLocal,
	"nonfix":    KwNonfix,
	"of":        KwOf,
	"op":        KwOp,
	"open":      KwOpen,
	"orelse":    KwOrelse,
	"raise":     KwRaise,
	"rec":       KwRec,
	"then":      KwThen,
	"type":      KwType,
	"val":       KwVal,
	"with":      KwWith,
	"withtype":  KwWithtype,
	"while":     KwWhile,
	"eqtype":    KwEqtype,
	"functor":   KwFunctor,
	"include":   KwInclude,
	"sharing":   KwSharing,
	"sig":       KwSig,
	"signature": KwSignature,
	"struct":    KwStruct,
	"structure": KwStructure,
	"where":     KwWhere,
}

// LookupIdent returns the keyword Kind for s, or (Ident, false) if s is a
// plain identifier.
func LookupIdent(s string) (Kind, bool) {
	if k, ok := Keywords[s]; ok {
		return k, true
	}
	return Ident, false
}

// SymbolicChars is the set of characters SML allows in a symbolic
// identifier (SML '97 §2.4).
const SymbolicChars = "!%&$#+-/:<=>?@\\~`^|*"
