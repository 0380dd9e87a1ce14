// Package lower performs the deterministic CST (internal/ast) to HIR
// (internal/hir) transformation described in spec.md §4.5: each syntactic
// construct becomes one or more HIR nodes, with a handful of notable
// desugarings (fun-clauses, as-pattern type relocation, case/if/andalso/
// orelse/while) applied along the way so statics only ever sees the
// reduced HIR shape.
package lower

import (
	"fmt"

	"millet/internal/ast"
	"millet/internal/diag"
	"millet/internal/hir"
	"millet/internal/source"
)

// Result is the lowering output for one file.
type Result struct {
	Program *hir.Program
	Errors  *diag.Bag
}

// Lower walks file's top-level structure declarations into a fresh
// hir.Program.
func Lower(file *ast.File) Result {
	l := &lowerer{prog: hir.NewProgram(), errs: diag.NewBag()}
	for _, d := range file.Decs {
		l.prog.TopDecs = append(l.prog.TopDecs, l.lowerStrDec(d))
	}
	return Result{Program: l.prog, Errors: l.errs}
}

type lowerer struct {
	prog    *hir.Program
	errs    *diag.Bag
	freshNo int
}

// fresh returns a synthetic variable name that cannot collide with any
// identifier the lexer can produce (identifiers never start with `$`),
// used for the arguments fun-clause desugaring introduces.
func (l *lowerer) fresh() ast.Name {
	l.freshNo++
	return ast.Name(fmt.Sprintf("$fun%d", l.freshNo))
}

func (l *lowerer) err(code diag.Code, span source.Span, msg string) {
	l.errs.Add(diag.NewError(code, span, msg))
}
