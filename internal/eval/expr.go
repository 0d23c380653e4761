package eval

import (
	"github.com/go-ascript/ascript/internal/ast"
	"github.com/go-ascript/ascript/internal/diag"
	"github.com/go-ascript/ascript/internal/value"
)

// Eval evaluates an expression against scope. If the result is an Extern,
// it is transparently materialized into a fresh scalar so scripts always
// see ordinary values.
func (ev *Evaluator) Eval(scope *value.Map, e ast.Exp) (value.Value, error) {
	v, err := ev.eval1(scope, e)
	if err != nil {
		return nil, ev.wrap(err, e.Info())
	}
	if ext, ok := v.(*value.Extern); ok {
		return ext.Materialize(), nil
	}
	return v, nil
}

func (ev *Evaluator) eval1(scope *value.Map, e ast.Exp) (value.Value, error) {
	switch ex := e.(type) {

	case *ast.IntExp:
		return value.NewInt(int32(ex.Value)), nil

	case *ast.FloatExp:
		return value.NewFloat(float32(ex.Value)), nil

	case *ast.StrExp:
		return value.NewStr(ex.Value), nil

	case *ast.NoneExp:
		return value.NewNone(), nil

	case *ast.IdExp:
		return scope.Get(ex.Name)

	case *ast.BinOpExp:
		// and/or short-circuit over the left operand's truthiness.
		if ex.Op == "and" || ex.Op == "or" {
			lv, err := ev.Eval(scope, ex.Left)
			if err != nil {
				return nil, err
			}
			lt, err := lv.IsTrue()
			if err != nil {
				return nil, err
			}
			if ex.Op == "and" && !lt {
				return value.NewInt(0), nil
			}
			if ex.Op == "or" && lt {
				return value.NewInt(1), nil
			}
			rv, err := ev.Eval(scope, ex.Right)
			if err != nil {
				return nil, err
			}
			rt, err := rv.IsTrue()
			if err != nil {
				return nil, err
			}
			if rt {
				return value.NewInt(1), nil
			}
			return value.NewInt(0), nil
		}
		lv, err := ev.Eval(scope, ex.Left)
		if err != nil {
			return nil, err
		}
		rv, err := ev.Eval(scope, ex.Right)
		if err != nil {
			return nil, err
		}
		return lv.BinOp(ex.Op, rv)

	case *ast.UnOpExp:
		ov, err := ev.Eval(scope, ex.Operand)
		if err != nil {
			return nil, err
		}
		return ov.UnOp(ex.Op)

	case *ast.MapDefExp:
		m := value.NewMap()
		for _, entry := range ex.Entries {
			v, err := ev.Eval(scope, entry.Value)
			if err != nil {
				return nil, err
			}
			m.Define(entry.Key, v)
		}
		return m, nil

	case *ast.ListDefExp:
		elems := make([]value.Value, len(ex.Elements))
		for i, el := range ex.Elements {
			v, err := ev.Eval(scope, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems), nil

	case *ast.RangeDefExp:
		bv, err := ev.Eval(scope, ex.Beg)
		if err != nil {
			return nil, err
		}
		ev2, err := ev.Eval(scope, ex.End)
		if err != nil {
			return nil, err
		}
		begI, err := bv.GetInt()
		if err != nil {
			return nil, err
		}
		endI, err := ev2.GetInt()
		if err != nil {
			return nil, err
		}
		step := int64(1)
		if ex.Step != nil {
			sv, err := ev.Eval(scope, ex.Step)
			if err != nil {
				return nil, err
			}
			step, err = sv.GetInt()
			if err != nil {
				return nil, err
			}
		}
		return value.NewRange(int32(begI), int32(endI), int32(step))

	case *ast.FuncDefExp:
		return value.NewFunction(ex.Params, ex.Body), nil

	case *ast.TernaryExp:
		cv, err := ev.Eval(scope, ex.Cond)
		if err != nil {
			return nil, err
		}
		truthy, err := cv.IsTrue()
		if err != nil {
			return nil, err
		}
		if truthy {
			return ev.Eval(scope, ex.Then)
		}
		return ev.Eval(scope, ex.Else)

	case *ast.IndexExp:
		tv, err := ev.Eval(scope, ex.Target)
		if err != nil {
			return nil, err
		}
		iv, err := ev.Eval(scope, ex.Index)
		if err != nil {
			return nil, err
		}
		i, err := iv.GetInt()
		if err != nil {
			return nil, err
		}
		return tv.At(int(i))

	case *ast.MemberExp:
		tv, err := ev.Eval(scope, ex.Target)
		if err != nil {
			return nil, err
		}
		return tv.Get(ex.Member)

	case *ast.FuncCallExp:
		return ev.evalCall(scope, ex)
	}

	return nil, diag.New(diag.KindInternalError, "unhandled expression node %T", e)
}

// EvalRef resolves e to an assignable Slot. Only Id, Index, and Member are
// valid L-value shapes.
func (ev *Evaluator) EvalRef(scope *value.Map, e ast.Exp) (value.Slot, error) {
	s, err := ev.evalRef1(scope, e)
	if err != nil {
		return value.Slot{}, ev.wrap(err, e.Info())
	}
	return s, nil
}

func (ev *Evaluator) evalRef1(scope *value.Map, e ast.Exp) (value.Slot, error) {
	switch ex := e.(type) {

	case *ast.IdExp:
		return scope.GetRef(ex.Name)

	case *ast.IndexExp:
		containerSlot, err := ev.EvalRef(scope, ex.Target)
		if err != nil {
			return value.Slot{}, err
		}
		iv, err := ev.Eval(scope, ex.Index)
		if err != nil {
			return value.Slot{}, err
		}
		i, err := iv.GetInt()
		if err != nil {
			return value.Slot{}, err
		}
		return containerSlot.Value().AtRef(int(i))

	case *ast.MemberExp:
		containerSlot, err := ev.EvalRef(scope, ex.Target)
		if err != nil {
			return value.Slot{}, err
		}
		return slotGetRef(containerSlot, ex.Member)
	}

	return value.Slot{}, diag.New(diag.KindNonAssignable, "expression is not assignable")
}

// slotGetRef auto-vivifies containerSlot from None into a fresh Map at the
// point of write, then resolves member within it. This is what lets
// a.b.c = 1 succeed when a and a.b do not exist yet: the vivification
// happens here, when the chain is actually being assigned through, not
// during a plain read of a.b.
func slotGetRef(containerSlot value.Slot, member string) (value.Slot, error) {
	cur := containerSlot.Value()
	if _, isNone := cur.(*value.None); isNone {
		m := value.NewMap()
		containerSlot.Assign(m)
		cur = m
	}
	m, ok := cur.(*value.Map)
	if !ok {
		return value.Slot{}, diag.New(diag.KindNonAssignable, "%s has no assignable member %q", cur.Type(), member)
	}
	return m.GetRef(member)
}
