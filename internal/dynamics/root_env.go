package dynamics

import (
	"millet/internal/ast"
	"millet/internal/symbols"
	"millet/internal/types"
)

// RootEnv builds the Env every top-level Program starts evaluating in:
// one nullary Con value for each constructor the standard basis declares
// (true, false, nil, ::, ref — see symbols.Basis.RootValEnv), keyed the
// same flat way as every other constructor this port declares (types.go's
// Env doc comment). `::` and `ref` are unary constructors; as bare values
// (not yet applied) they are still nullary Con values here, exactly like
// any user datatype constructor referenced without an argument — AppFunc's
// AppConArg handling supplies the argument on application.
func RootEnv(basis symbols.Basis) Env {
	env := NewEnv()
	basis.RootValEnv.Iter(func(name ast.Name, v types.ValInfo) {
		if v.IdStatus.Tag != types.IdCon {
			return
		}
		env.Val[name] = Val{Kind: ValCon, Con: Con{Kind: ConKind{Tag: ConDat, Name: name}}}
	})
	return env
}
