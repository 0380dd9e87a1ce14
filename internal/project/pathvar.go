package project

import "strings"

// PathVars resolves a group file's `$(VAR)` occurrences, per spec.md §4.2:
// "Path-variables $(VAR) in group files are resolved from a configured
// environment; undefined variables "" and "SMLNJ-LIB" are treated as
// 'standard basis' sentinels rather than errors."
type PathVars map[string]string

// stdlibSentinels names the two variables that, when undefined in vars,
// mean "this path names something in the standard basis" rather than an
// error — spec.md §4.2 calls these out explicitly by name.
var stdlibSentinels = map[string]bool{
	"":         true,
	"SMLNJ-LIB": true,
}

// ExpandResult reports whether an expanded path resolved to a concrete
// value or fell through to the standard-basis sentinel case.
type ExpandResult struct {
	Value    string
	IsStdlib bool
}

// Expand substitutes every `$(VAR)` occurrence in raw using vars. A
// variable absent from vars resolves per stdlibSentinels if its name
// qualifies, else it is left as a literal empty expansion (the group
// parser reports the unresolved reference as part of the surrounding
// path, matching spec.md's framing that only the two named sentinels are
// non-errors — everything else is this package's caller's problem to
// diagnose once the expanded path fails to resolve to a real file).
func (v PathVars) Expand(raw string) ExpandResult {
	var b strings.Builder
	stdlib := false
	i := 0
	for i < len(raw) {
		start := strings.Index(raw[i:], "$(")
		if start < 0 {
			b.WriteString(raw[i:])
			break
		}
		start += i
		b.WriteString(raw[i:start])
		end := strings.IndexByte(raw[start+2:], ')')
		if end < 0 {
			b.WriteString(raw[start:])
			break
		}
		end += start + 2
		name := raw[start+2 : end]
		if val, ok := v[name]; ok {
			b.WriteString(val)
		} else if stdlibSentinels[name] {
			stdlib = true
		}
		i = end + 1
	}
	return ExpandResult{Value: b.String(), IsStdlib: stdlib}
}
