package dynamics

import (
	"millet/internal/ast"
	"millet/internal/hir"
)

// FrameKind enumerates the shapes of continuation the machine can be
// paused at (spec.md §4.7 "A stack of Frame{env, kind} captures
// continuations").
type FrameKind uint8

const (
	FrameRecord FrameKind = iota
	FrameAppFunc
	FrameAppClosureArg
	FrameAppConArg
	FrameRaise
	FrameHandle
	FrameValBind
	FrameLet
	FrameLocal
	FrameIn
)

// RecordFrame accumulates a record expression's already-evaluated rows
// while the remaining ones are stepped in source order. Lab is the label
// of the row whose expression is in flight; when its Val arrives it is
// inserted into Done under Lab before the next Rest row (if any) starts.
type RecordFrame struct {
	IsTuple bool
	Done    map[string]Val
	Lab     ast.Lab
	Rest    []hir.ExpRow
}

type AppFuncFrame struct{ Arg hir.Idx[hir.Exp] }

type AppClosureArgFrame struct{ Matcher []hir.Arm }

type AppConArgFrame struct{ Kind ConKind }

type HandleFrame struct{ Matcher []hir.Arm }

// ValBindFrame is mid-elaboration of one Val declaration's binding list:
// Pat/Rec describe the binding currently being matched against the
// incoming Val; Rest holds the bindings still to come.
type ValBindFrame struct {
	Rec  bool
	Pat  hir.Idx[hir.Pat]
	Rest []hir.ValBind
}

// LetFrame resumes at Exp once the `let`'s single Dec (hir.LetExp bundles
// any sequence of declarations into one DecSeq node already) finishes.
type LetFrame struct {
	Exp hir.Idx[hir.Exp]
}

// LocalFrame steps Local's private part then its public part in turn:
// Local holds the single (possibly DecSeq) private Dec still to run, or is
// empty once it has; In then holds the public part.
type LocalFrame struct {
	Local []hir.Idx[hir.Dec]
	In    []hir.Idx[hir.Dec]
}

type InFrame struct{ Decs []hir.Idx[hir.Dec] }

// Frame is one stack-machine continuation: the environment active when it
// was pushed, restored on resumption, plus the kind-specific payload.
type Frame struct {
	Env  Env
	Kind FrameKind

	Record         RecordFrame
	AppFunc        AppFuncFrame
	AppClosureArg  AppClosureArgFrame
	AppConArg      AppConArgFrame
	Handle         HandleFrame
	ValBind        ValBindFrame
	Let            LetFrame
	Local          LocalFrame
	In             InFrame
}
