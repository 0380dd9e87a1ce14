package dynamics

import (
	"millet/internal/ast"
	"millet/internal/hir"
	"millet/internal/symbols"
)

// StepKind tags which of the five shapes (spec.md §4.7 "Step ∈ { Exp(e) |
// Val(v) | Dec(d) | Raise(exn) | DecDone }") a Step currently holds.
type StepKind uint8

const (
	StepExp StepKind = iota
	StepVal
	StepDec
	StepRaise
	StepDecDone
)

// Step is one state of the machine: exactly one of Exp/Val/Dec/Raise is
// meaningful, selected by Kind.
type Step struct {
	Kind  StepKind
	Exp   hir.Idx[hir.Exp]
	Val   Val
	Dec   hir.Idx[hir.Dec]
	Raise Val
}

func stepExp(e hir.Idx[hir.Exp]) Step { return Step{Kind: StepExp, Exp: e} }
func stepVal(v Val) Step              { return Step{Kind: StepVal, Val: v} }
func stepDec(d hir.Idx[hir.Dec]) Step { return Step{Kind: StepDec, Dec: d} }
func stepRaise(v Val) Step            { return Step{Kind: StepRaise, Raise: v} }

// St is the mutable machine state threaded through every call to Step:
// the current environment, the continuation stack, the Program being
// evaluated, and the Syms/Basis needed to synthesize Bind/Match
// exceptions (spec.md §4.7's cx.bind_exn()/cx.match_exn()).
type St struct {
	Prog   *hir.Program
	Syms   *symbols.Syms
	Basis  symbols.Basis
	Env    Env
	Frames []Frame

	// localExn seeds identities for exceptions declared while evaluating
	// (see declare.go's declareException); counts down from the max
	// symbols.Exn value so it can never collide with a real Syms-assigned
	// id, which counts up from zero.
	localExn symbols.Exn
}

func (st *St) newLocalExn() symbols.Exn {
	st.localExn--
	return st.localExn
}

// NewSt creates an St ready to evaluate prog, starting from env (typically
// RootEnv(basis) extended with whatever top-level bindings statics already
// elaborated for this file).
func NewSt(prog *hir.Program, syms *symbols.Syms, basis symbols.Basis, env Env) *St {
	return &St{Prog: prog, Syms: syms, Basis: basis, Env: env}
}

func (st *St) pushWithCurEnv(kind FrameKind, f Frame) {
	f.Env = st.Env
	f.Kind = kind
	st.Frames = append(st.Frames, f)
}

func (st *St) popFrame() (Frame, bool) {
	if len(st.Frames) == 0 {
		return Frame{}, false
	}
	n := len(st.Frames) - 1
	f := st.Frames[n]
	st.Frames = st.Frames[:n]
	return f, true
}

func (st *St) matchExn() Val { return st.exnVal(st.Basis.Match, "Match") }
func (st *St) bindExn() Val  { return st.exnVal(st.Basis.Bind, "Bind") }

// exnVal builds the Con value for a known built-in exception. name is a
// fallback used only if st.Syms is nil (never true once NewSt has run);
// otherwise the name comes from Syms itself, so it agrees with however
// the standard basis actually declared it.
func (st *St) exnVal(e symbols.Exn, name ast.Name) Val {
	if st.Syms != nil {
		name = st.Syms.GetExn(e).Path.Last
	}
	return Val{Kind: ValCon, Con: Con{Kind: ConKind{Tag: ConExn, Name: name, Exn: e}}}
}

// Step reduces one Exp/Val/Dec/Raise state and returns the next one plus
// whether this was a "visible" (user-facing) step (spec.md §4.7 "step
// reduces one Exp/Val/Dec and returns (next, visible)"). Step is NOT
// recursive: a caller drives the machine to a fixed point by looping
// until DecDone (or an unhandled Raise) — see Run.
func Step(st *St, s Step) (Step, bool) {
	switch s.Kind {
	case StepExp:
		return stepExpKind(st, s.Exp)
	case StepVal:
		return stepValKind(st, s.Val)
	case StepRaise:
		return stepRaiseKind(st, s.Raise)
	case StepDec:
		return stepDecKind(st, s.Dec)
	default: // StepDecDone
		return Step{Kind: StepDecDone}, false
	}
}

// Run drives the machine from s to DecDone or an unhandled Raise,
// returning the terminal Step. visible reports each intermediate step to
// onVisible in order, if non-nil (a caller wanting single-step/trace
// behavior should call Step directly instead).
func Run(st *St, s Step, onVisible func(Step)) Step {
	for {
		next, visible := Step(st, s)
		if visible && onVisible != nil {
			onVisible(next)
		}
		if next.Kind == StepDecDone {
			return next
		}
		if next.Kind == StepRaise && len(st.Frames) == 0 {
			return next
		}
		s = next
	}
}

func stepExpKind(st *St, idx hir.Idx[hir.Exp]) (Step, bool) {
	e := st.Prog.Exps.Get(idx)
	switch e.Kind {
	case hir.ExpHole:
		return stepVal(Val{}), false

	case hir.ExpSCon:
		return stepVal(Val{Kind: ValSCon, SCon: e.SCon}), false

	case hir.ExpPath:
		return stepPath(st, e.Path.Path)

	case hir.ExpRecord:
		return stepExpRecord(st, e.Record.Rows)

	case hir.ExpLet:
		st.pushWithCurEnv(FrameLet, Frame{Let: LetFrame{Exp: e.Let.Body}})
		return stepDec(e.Let.Dec), false

	case hir.ExpApp:
		st.pushWithCurEnv(FrameAppFunc, Frame{AppFunc: AppFuncFrame{Arg: e.App.Arg}})
		return stepExp(e.App.Func), false

	case hir.ExpHandle:
		st.pushWithCurEnv(FrameHandle, Frame{Handle: HandleFrame{Matcher: e.Handle.Matcher}})
		return stepExp(e.Handle.Exp), false

	case hir.ExpRaise:
		st.Frames = append(st.Frames, Frame{Env: NewEnv(), Kind: FrameRaise})
		return stepExp(e.Raise.Exp), false

	case hir.ExpFn:
		clos := Closure{Env: st.Env, This: map[ast.Name]bool{}, Matcher: e.Fn.Matcher}
		return stepVal(Val{Kind: ValClosure, Closure: clos}), false

	case hir.ExpTyped:
		return stepExp(e.Typed.Exp), false

	default:
		return stepVal(Val{}), false
	}
}

func stepExpRecord(st *St, rows []hir.ExpRow) (Step, bool) {
	if len(rows) == 0 {
		return stepVal(Val{Kind: ValRecord, Record: map[string]Val{}}), false
	}
	isTuple := len(rows) != 1 && isTupleRows(rows)
	first, rest := rows[0], rows[1:]
	st.pushWithCurEnv(FrameRecord, Frame{Record: RecordFrame{IsTuple: isTuple, Done: map[string]Val{}, Lab: first.Lab, Rest: rest}})
	return stepExp(first.Exp), false
}

func isTupleRows(rows []hir.ExpRow) bool {
	for i, r := range rows {
		if !r.Lab.IsTuple() || r.Lab.Index != i+1 {
			return false
		}
	}
	return true
}

// stepPath resolves a bare identifier occurrence. Every declared
// constructor, exception, and ordinary value shares st.Env (see
// types.go's Env doc comment), so this is always a single lookup keyed on
// the path's final name; a qualified (structure-projected) path resolves
// to the same flat name since this port's dynamics does not model
// structures at runtime (spec.md §4.7 scopes dynamics to the core
// language only).
func stepPath(st *St, path ast.Path) (Step, bool) {
	v, ok := st.Env.Val[path.Last]
	if !ok {
		return stepVal(Val{}), false
	}
	// A bound ordinary value is a visible step (it came from somewhere in
	// the running program); a constructor/exception reference is the value
	// itself with no prior binding to reveal, so it stays silent.
	visible := v.Kind != ValCon || v.Con.Arg != nil
	return stepVal(v), visible
}

func stepValKind(st *St, val Val) (Step, bool) {
	frame, ok := st.popFrame()
	if !ok {
		return stepVal(val), false
	}
	switch frame.Kind {
	case FrameRecord:
		return stepRecordFrame(st, frame, val)
	case FrameAppFunc:
		return stepAppFuncFrame(st, frame, val)
	case FrameAppClosureArg:
		return stepAppClosureArgFrame(st, frame, val)
	case FrameAppConArg:
		arg := val
		return stepVal(Val{Kind: ValCon, Con: Con{Kind: frame.AppConArg.Kind, Arg: &arg}}), false
	case FrameRaise:
		return stepRaiseFromVal(val)
	case FrameHandle:
		// The handled body finished without raising; this Handle never
		// gets to run its matcher, but the overall expression did produce
		// its value, which is user-visible.
		return stepVal(val), true
	case FrameValBind:
		return stepValBindFrame(st, frame, val)
	default: // Let, Local, In: never the frame directly below a Val
		return stepVal(val), false
	}
}

func stepRecordFrame(st *St, frame Frame, val Val) (Step, bool) {
	rf := frame.Record
	done := rf.Done
	done[labKey(rf.Lab)] = val
	if len(rf.Rest) == 0 {
		return stepVal(Val{Kind: ValRecord, Record: done}), true
	}
	st.Env = frame.Env
	next, rest := rf.Rest[0], rf.Rest[1:]
	st.pushWithCurEnv(FrameRecord, Frame{Record: RecordFrame{IsTuple: rf.IsTuple, Done: done, Lab: next.Lab, Rest: rest}})
	return stepExp(next.Exp), false
}

func stepAppFuncFrame(st *St, frame Frame, val Val) (Step, bool) {
	arg := frame.AppFunc.Arg
	switch val.Kind {
	case ValClosure:
		// The pushed frame's Env is the CLOSURE's captured environment
		// (with its recursive names tied back to itself), restored once
		// the argument finishes evaluating and the matcher needs to run
		// in it; the argument itself evaluates in the caller's env
		// (st.Env = frame.Env below), not the closure's.
		closEnv := val.Closure.Env.Clone()
		for name := range val.Closure.This {
			closEnv.Val[name] = val
		}
		st.Frames = append(st.Frames, Frame{
			Env:           closEnv,
			Kind:          FrameAppClosureArg,
			AppClosureArg: AppClosureArgFrame{Matcher: val.Closure.Matcher},
		})
		st.Env = frame.Env
		return stepExp(arg), false
	case ValCon:
		st.Env = frame.Env
		st.pushWithCurEnv(FrameAppConArg, Frame{AppConArg: AppConArgFrame{Kind: val.Con.Kind}})
		return stepExp(arg), false
	default:
		return stepVal(Val{}), false
	}
}

func stepAppClosureArgFrame(st *St, frame Frame, val Val) (Step, bool) {
	ac := NewEnv()
	for _, arm := range frame.AppClosureArg.Matcher {
		if matchVal(st.Prog, &ac, arm.Pat, val) {
			st.Env = frame.Env
			st.Env.Extend(ac)
			return stepExp(arm.Exp), true
		}
		ac = NewEnv()
	}
	return stepRaise(st.matchExn()), true
}

func stepRaiseFromVal(val Val) (Step, bool) {
	if val.Kind != ValCon {
		return stepVal(Val{}), false
	}
	return stepRaise(val), false
}

func stepRaiseKind(st *St, exn Val) (Step, bool) {
	frame, ok := st.popFrame()
	if !ok {
		return stepRaise(exn), true
	}
	if frame.Kind != FrameHandle {
		// Every other frame lets the exception keep bubbling past it
		// (already popped above, so the next call resumes at whatever
		// frame was beneath it).
		return stepRaise(exn), true
	}
	ac := NewEnv()
	for _, arm := range frame.Handle.Matcher {
		if matchVal(st.Prog, &ac, arm.Pat, exn) {
			st.Env = frame.Env
			st.Env.Extend(ac)
			return stepExp(arm.Exp), true
		}
		ac = NewEnv()
	}
	return stepRaise(exn), true
}

func stepValBindFrame(st *St, frame Frame, val Val) (Step, bool) {
	vb := frame.ValBind
	ac := NewEnv()
	if vb.Rec {
		this := map[ast.Name]bool{}
		recFnNames(st.Prog, this, vb.Pat)
		if val.Kind != ValClosure {
			return stepVal(Val{}), false
		}
		clos := val.Closure
		clos.This = this
		for name := range this {
			ac.Val[name] = Val{Kind: ValClosure, Closure: clos}
		}
	} else if !matchVal(st.Prog, &ac, vb.Pat, val) {
		return stepRaise(st.bindExn()), true
	}
	st.Env = frame.Env
	st.Env.Extend(ac)
	if len(vb.Rest) == 0 {
		return runStepDec(st)
	}
	next, rest := vb.Rest[0], vb.Rest[1:]
	st.pushWithCurEnv(FrameValBind, Frame{ValBind: ValBindFrame{Rec: next.Rec, Pat: next.Pat, Rest: rest}})
	return stepExp(next.Exp), false
}

func stepDecKind(st *St, idx hir.Idx[hir.Dec]) (Step, bool) {
	d := st.Prog.Decs.Get(idx)
	switch d.Kind {
	case hir.DecVal:
		binds := d.Val.Binds
		first, rest := binds[0], binds[1:]
		st.pushWithCurEnv(FrameValBind, Frame{ValBind: ValBindFrame{Rec: first.Rec, Pat: first.Pat, Rest: rest}})
		return stepExp(first.Exp), false

	case hir.DecDatatype:
		declareDatatype(st, d.Datatype)
		return runStepDec(st)

	case hir.DecDatatypeCopy:
		declareDatatypeCopy(st, d.DatatypeCopy)
		return runStepDec(st)

	case hir.DecAbstype:
		declareDatatype(st, hir.DatatypeDec{Binds: d.Abstype.Binds, WithType: d.Abstype.WithType})
		return stepDec(d.Abstype.Dec), false

	case hir.DecException:
		declareException(st, d.Exception)
		return runStepDec(st)

	case hir.DecTy, hir.DecOpen:
		return runStepDec(st)

	case hir.DecLocal:
		st.pushWithCurEnv(FrameLocal, Frame{Local: LocalFrame{Local: []hir.Idx[hir.Dec]{d.Local.Left}, In: []hir.Idx[hir.Dec]{d.Local.Right}}})
		return runStepDec(st)

	case hir.DecSeq:
		decs := append([]hir.Idx[hir.Dec]{}, d.Seq.Decs...)
		return runSeqDec(st, decs)

	default:
		return runStepDec(st)
	}
}

// runSeqDec steps a DecSeq's members left to right by pushing an In
// continuation and delegating to runStepDec's In-handling machinery: a
// SeqDec behaves exactly like a Local with no private part, so it reuses
// the same In frame rather than a bespoke one.
func runSeqDec(st *St, decs []hir.Idx[hir.Dec]) (Step, bool) {
	if len(decs) == 0 {
		return runStepDec(st)
	}
	first, rest := decs[0], decs[1:]
	st.pushWithCurEnv(FrameIn, Frame{In: InFrame{Decs: rest}})
	return stepDec(first), false
}

// runStepDec is Step's "done with one Dec, what's next" loop (spec.md
// §4.7's step_dec): it pops continuation frames that are themselves about
// declarations (Let/Local/In) until it finds the next Dec to run, the Exp
// to resume, or the stack is exhausted (DecDone).
func runStepDec(st *St) (Step, bool) {
	changed := false
	for {
		frame, ok := st.popFrame()
		if !ok {
			return Step{Kind: StepDecDone}, changed
		}
		switch frame.Kind {
		case FrameLet:
			return stepExp(frame.Let.Exp), changed

		case FrameLocal:
			lf := frame.Local
			if len(lf.Local) == 0 {
				st.pushWithCurEnv(FrameIn, Frame{In: InFrame{Decs: lf.In}})
				continue
			}
			first, rest := lf.Local[0], lf.Local[1:]
			st.pushWithCurEnv(FrameLocal, Frame{Local: LocalFrame{Local: rest, In: lf.In}})
			return stepDec(first), changed

		case FrameIn:
			inf := frame.In
			if len(inf.Decs) == 0 {
				changed = true
				continue
			}
			first, rest := inf.Decs[0], inf.Decs[1:]
			st.pushWithCurEnv(FrameIn, Frame{In: InFrame{Decs: rest}})
			return stepDec(first), changed

		default:
			// Every other frame kind belongs under an Exp, not a Dec; the
			// original treats reaching one here as an invariant violation.
			// A defensively-constructed machine simply can't get here
			// given how stepDecKind/runStepDec push frames.
			return Step{Kind: StepDecDone}, changed
		}
	}
}
