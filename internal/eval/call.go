package eval

import (
	"github.com/go-ascript/ascript/internal/ast"
	"github.com/go-ascript/ascript/internal/diag"
	"github.com/go-ascript/ascript/internal/value"
)

// evalCall implements the function-call dispatch rules: argument evaluation
// is strictly left-to-right, then dispatch differs depending on whether the
// call is qualified by an explicit context expression.
func (ev *Evaluator) evalCall(scope *value.Map, ex *ast.FuncCallExp) (value.Value, error) {
	args := make([]value.Value, len(ex.Args))
	for i, a := range ex.Args {
		v, err := ev.Eval(scope, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if ex.Ctx == nil {
		local, err := scope.Get(ex.Name)
		if err != nil {
			return nil, err
		}
		if fn, ok := local.(*value.Function); ok {
			return ev.invokeFunction(fn, scope, args)
		}
		global, err := ev.Global.Get(ex.Name)
		if err != nil {
			return nil, err
		}
		return ev.invokeResolved(global, ev.Global, args, ex.Name)
	}

	vctx, err := ev.Eval(scope, ex.Ctx)
	if err != nil {
		return nil, err
	}
	if mctx, ok := vctx.(*value.Map); ok {
		member, err := mctx.Get(ex.Name)
		if err != nil {
			return nil, err
		}
		return ev.invokeResolved(member, mctx, args, ex.Name)
	}
	return vctx.Call(ex.Name, args)
}

// invokeResolved dispatches a value already looked up by name to the right
// invocation path, binding ctx as this for script Functions.
func (ev *Evaluator) invokeResolved(resolved value.Value, ctx *value.Map, args []value.Value, name string) (value.Value, error) {
	switch fn := resolved.(type) {
	case *value.Function:
		return ev.invokeFunction(fn, ctx, args)
	case *value.NativeFunc:
		return fn.Invoke(args)
	default:
		return nil, diag.New(diag.KindUnknownMethod, "%q is not callable", name)
	}
}

// invokeFunction calls a script-defined Function with a fresh scope.
func (ev *Evaluator) invokeFunction(fn *value.Function, ctx *value.Map, args []value.Value) (value.Value, error) {
	if len(fn.Params) != len(args) {
		return nil, diag.New(diag.KindArityMismatch, "expected %d argument(s), got %d", len(fn.Params), len(args))
	}
	for _, p := range fn.Params {
		if p == "this" {
			return nil, diag.New(diag.KindReservedParam, "parameter may not be named \"this\"")
		}
	}

	maxDepth := ev.maxCallDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxCallDepth
	}
	if ev.callDepth >= maxDepth {
		return nil, diag.New(diag.KindCallDepthExceeded, "call depth exceeded %d", maxDepth)
	}
	ev.callDepth++
	defer func() { ev.callDepth-- }()

	callScope := value.NewMap()
	for i, p := range fn.Params {
		callScope.Define(p, args[i])
	}
	callScope.Define("this", ctx)

	savedRet := ev.ret
	ev.ret = nil
	if err := ev.Exec(callScope, fn.Body); err != nil {
		ev.ret = savedRet
		return nil, err
	}
	result := ev.ret
	ev.ret = savedRet
	if result == nil {
		return value.NewNone(), nil
	}
	return result, nil
}
