package statics

import "millet/internal/symbols"

// Mode distinguishes how a file's top-level declarations are elaborated
// (spec.md §4.8 "statics::get(&mut st, Regular, …)"). Regular is the only
// case this port needs: every file in a group is elaborated the same way,
// so there is no second Mode to distinguish it from.
type Mode uint8

const (
	// Regular elaborates every top-level StrDec of a file in sequence
	// against its starting Cx.
	Regular Mode = iota
)

// Get elaborates every entry of st.Prog.TopDecs in sequence, threading one
// Cx (and so one accumulating Env) across them the way a file's sequence
// of top-level declarations shares scope in the Definition of Standard ML.
// Diagnostics land in st.Errs as they're found; the final Env is returned
// so a caller chaining the files of one group (spec.md §4.2 "Group
// resolution") can seed each subsequent file's starting Cx with the ones
// before it.
func Get(st *St, mode Mode, start Cx) Env {
	_ = mode // Regular is the only case today; kept for signature parity.
	cx := start
	for _, top := range st.Prog.TopDecs {
		ElabStrDec(st, cx, top)
	}
	return cx.Env
}

// GetFile is the common case of Get: elaborate a standalone file (one not
// continuing a prior file's scope within the same group) against the
// standard basis alone.
func GetFile(st *St, basis symbols.Basis) Env {
	return Get(st, Regular, RootCx(basis))
}
