// Package eval implements the tree-walking evaluator: the mutually-recursive
// exec/eval/evalRef trio that runs a parsed script against a global scope.
package eval

import (
	"github.com/go-ascript/ascript/internal/ast"
	"github.com/go-ascript/ascript/internal/diag"
	"github.com/go-ascript/ascript/internal/value"
)

// defaultMaxCallDepth bounds nested script function calls so a runaway
// recursive script fails with a diagnostic instead of overflowing the Go
// call stack (a fatal, uncatchable crash rather than an interpreter error).
const defaultMaxCallDepth = 1000

// Evaluator runs an AST against a global scope. It holds the single return
// slot shared by every nested exec/eval call, mirroring the source's
// "current call's return value" cell.
type Evaluator struct {
	File   string
	Source string

	Global *value.Map

	ret value.Value // nil means the slot is empty (Running state)

	maxCallDepth int
	callDepth    int
}

// New constructs an Evaluator over an already-populated global scope.
func New(file, source string, global *value.Map) *Evaluator {
	return &Evaluator{File: file, Source: source, Global: global, maxCallDepth: defaultMaxCallDepth}
}

// SetMaxCallDepth overrides the nested-call guard invokeFunction enforces.
// n <= 0 is treated as "use the default" rather than "unlimited".
func (ev *Evaluator) SetMaxCallDepth(n int) {
	if n <= 0 {
		n = defaultMaxCallDepth
	}
	ev.maxCallDepth = n
}

// Run executes root against the global scope.
func (ev *Evaluator) Run(root ast.Stat) error {
	return ev.Exec(ev.Global, root)
}

// returning reports whether a Return has fired and not yet been harvested.
func (ev *Evaluator) returning() bool { return ev.ret != nil }

func (ev *Evaluator) wrap(err error, info ast.SourceInfo) error {
	return diag.Wrap(err, info, ev.File, ev.Source)
}

// Exec executes a statement against scope.
func (ev *Evaluator) Exec(scope *value.Map, s ast.Stat) error {
	if s == nil {
		return nil
	}
	switch st := s.(type) {

	case *ast.AssignStat:
		rv, err := ev.Eval(scope, st.RHS)
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		slot, err := ev.EvalRef(scope, st.LHS)
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		if ext, ok := slot.Value().(*value.Extern); ok {
			if err := ext.AssignFrom(rv); err != nil {
				return ev.wrap(err, st.Info())
			}
			return nil
		}
		slot.Assign(rv)
		return nil

	case *ast.CompoundAssignStat:
		rv, err := ev.Eval(scope, st.RHS)
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		slot, err := ev.EvalRef(scope, st.LHS)
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		result, err := slot.Value().BinOp(string(st.Op[:1]), rv)
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		slot.Assign(result)
		return nil

	case *ast.IfStat:
		cv, err := ev.Eval(scope, st.Cond)
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		truthy, err := cv.IsTrue()
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		if truthy {
			return ev.Exec(scope, st.Then)
		}
		if st.Else != nil {
			return ev.Exec(scope, st.Else)
		}
		return nil

	case *ast.BlockStat:
		for _, inner := range st.Stats {
			if ev.returning() {
				break
			}
			if err := ev.Exec(scope, inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.WhileStat:
		for {
			if ev.returning() {
				return nil
			}
			cv, err := ev.Eval(scope, st.Cond)
			if err != nil {
				return ev.wrap(err, st.Info())
			}
			truthy, err := cv.IsTrue()
			if err != nil {
				return ev.wrap(err, st.Info())
			}
			if !truthy {
				return nil
			}
			if err := ev.Exec(scope, st.Body); err != nil {
				return err
			}
		}

	case *ast.ForStat:
		iv, err := ev.Eval(scope, st.Iter)
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		n, err := iv.Length()
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		slot, err := scope.GetRef(st.Ident)
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		for i := 0; i < n; i++ {
			if ev.returning() {
				return nil
			}
			elem, err := iv.At(i)
			if err != nil {
				return ev.wrap(err, st.Info())
			}
			slot.Assign(elem)
			if err := ev.Exec(scope, st.Body); err != nil {
				return err
			}
		}
		return nil

	case *ast.FuncCallStat:
		_, err := ev.Eval(scope, st.Call)
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		return nil

	case *ast.ReturnStat:
		if st.Value == nil {
			ev.ret = value.NewNone()
			return nil
		}
		rv, err := ev.Eval(scope, st.Value)
		if err != nil {
			return ev.wrap(err, st.Info())
		}
		ev.ret = rv
		return nil
	}

	return diag.New(diag.KindInternalError, "unhandled statement node %T", s)
}
