package lower

import (
	"math/big"
	"strings"

	"millet/internal/ast"
	"millet/internal/hir"
)

// lowerSCon parses a literal's original lexeme into its hir.SCon value.
// Only real/char/string constants carry Text; int/word literals carry just
// their parsed value (Int or Small), not the source form.
func lowerSCon(kind ast.SConKind, text string) hir.SCon {
	switch kind {
	case ast.SConInt:
		return intSCon(hir.SConInt, text, false)
	case ast.SConWord:
		return intSCon(hir.SConWord, text, true)
	case ast.SConReal:
		return hir.SCon{Kind: hir.SConReal, Text: text}
	case ast.SConChar:
		return hir.SCon{Kind: hir.SConChar, Text: decodeEscapes(trimQuotes(text, true))}
	case ast.SConString:
		return hir.SCon{Kind: hir.SConString, Text: decodeEscapes(trimQuotes(text, false))}
	default:
		return hir.SCon{}
	}
}

// intSCon parses an int/word literal lexeme, handling the `~` negation
// prefix and `0x`/`0w`/`0wx` radix markers.
func intSCon(kind hir.SConKind, text string, isWord bool) hir.SCon {
	s := text
	neg := false
	if strings.HasPrefix(s, "~") {
		neg = true
		s = s[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(s, "0wx") || strings.HasPrefix(s, "0wX"):
		base = 16
		s = s[3:]
	case strings.HasPrefix(s, "0w"):
		s = s[2:]
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base = 16
		s = s[2:]
	}
	n := new(big.Int)
	if _, ok := n.SetString(s, base); !ok {
		n.SetInt64(0)
	}
	if neg {
		n.Neg(n)
	}
	small, isSmall := n.Int64(), n.IsInt64()
	return hir.SCon{Kind: kind, Int: n, Small: small, IsSmall: isSmall}
}

func trimQuotes(text string, isChar bool) string {
	if isChar {
		// #"..."
		if len(text) >= 3 && strings.HasPrefix(text, `#"`) && strings.HasSuffix(text, `"`) {
			return text[2 : len(text)-1]
		}
		return text
	}
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return text[1 : len(text)-1]
	}
	return text
}

// decodeEscapes turns SML string/char escape sequences into their decoded
// rune content. Malformed escapes (already diagnosed by the lexer) are
// passed through verbatim rather than re-diagnosed here.
func decodeEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		c := r[i]
		if c != '\\' || i+1 >= len(r) {
			b.WriteRune(c)
			continue
		}
		i++
		switch r[i] {
		case 'a':
			b.WriteRune('\a')
		case 'b':
			b.WriteRune('\b')
		case 't':
			b.WriteRune('\t')
		case 'n':
			b.WriteRune('\n')
		case 'v':
			b.WriteRune('\v')
		case 'f':
			b.WriteRune('\f')
		case 'r':
			b.WriteRune('\r')
		case '"':
			b.WriteRune('"')
		case '\\':
			b.WriteRune('\\')
		default:
			if r[i] >= '0' && r[i] <= '9' {
				j := i
				for j < len(r) && r[j] >= '0' && r[j] <= '9' {
					j++
				}
				code := 0
				for _, d := range r[i:j] {
					code = code*10 + int(d-'0')
				}
				b.WriteRune(rune(code))
				i = j - 1
				continue
			}
			b.WriteRune('\\')
			b.WriteRune(r[i])
		}
	}
	return b.String()
}
