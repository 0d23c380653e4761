// Package hostbind implements the bidirectional adapter between script
// values and host Go types: Link exposes a live host variable as an
// Extern, and LinkFunction exposes a typed host function as a NativeFunc.
//
// Conversion is reflect-driven: it marshals by reflect.Kind between script
// values and the scalar kinds this value model has, extended with a slice
// case for array-shaped host functions.
package hostbind

import (
	"fmt"
	"reflect"

	"github.com/go-ascript/ascript/internal/diag"
	"github.com/go-ascript/ascript/internal/value"
)

// Link installs an Extern at name in scope, wrapping the live host variable
// ref points to. ref must be a pointer to int, any sized int, float32,
// float64, or string.
func Link(scope *value.Map, name string, ref any) error {
	rv := reflect.ValueOf(ref)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("hostbind: Link(%q): ref must be a non-nil pointer", name)
	}
	elem := rv.Elem()
	typeName := elem.Type().String()

	switch elem.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ext := value.NewExtern(typeName,
			func() value.Value { return value.NewInt(int32(elem.Int())) },
			func(v value.Value) error {
				i, err := v.GetInt()
				if err != nil {
					return diag.New(diag.KindIncompatibleTypes, "cannot assign %s to %s", v.Type(), typeName)
				}
				elem.SetInt(i)
				return nil
			},
		)
		scope.Define(name, ext)
		return nil

	case reflect.Float32, reflect.Float64:
		ext := value.NewExtern(typeName,
			func() value.Value { return value.NewFloat(float32(elem.Float())) },
			func(v value.Value) error {
				f, err := value.AsFloat64(v)
				if err != nil {
					return diag.New(diag.KindIncompatibleTypes, "cannot assign %s to %s", v.Type(), typeName)
				}
				elem.SetFloat(f)
				return nil
			},
		)
		scope.Define(name, ext)
		return nil

	case reflect.String:
		ext := value.NewExtern(typeName,
			func() value.Value { return value.NewStr(elem.String()) },
			func(v value.Value) error {
				s, err := v.GetStr()
				if err != nil {
					return diag.New(diag.KindIncompatibleTypes, "cannot assign %s to %s", v.Type(), typeName)
				}
				elem.SetString(s)
				return nil
			},
		)
		scope.Define(name, ext)
		return nil
	}

	return fmt.Errorf("hostbind: Link(%q): unsupported host type %s", name, typeName)
}

// LinkFunction installs a NativeFunc at name in scope, adapting the typed
// Go function fn to the uniform []value.Value -> (value.Value, error) shape.
func LinkFunction(scope *value.Map, name string, fn any) error {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return fmt.Errorf("hostbind: LinkFunction(%q): fn must be a function", name)
	}
	t := rv.Type()
	arity := t.NumIn()

	native := value.NewNativeFunc(func(args []value.Value) (value.Value, error) {
		if len(args) != arity {
			return nil, diag.New(diag.KindArityMismatch, "%q expected %d argument(s), got %d", name, arity, len(args))
		}
		in := make([]reflect.Value, arity)
		for i := 0; i < arity; i++ {
			gv, err := toGo(args[i], t.In(i))
			if err != nil {
				return nil, err
			}
			in[i] = gv
		}
		out := rv.Call(in)
		if len(out) == 0 {
			return value.NewNone(), nil
		}
		return toScript(out[0])
	})
	scope.Define(name, native)
	return nil
}

// toGo converts a script value into a reflect.Value of the requested Go
// type, per the built-in converter table (Int<->int, Float<->float,
// Str<->string) extended with a slice case for []int64/[]float64/[]string.
func toGo(v value.Value, t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := v.GetInt()
		if err != nil {
			return reflect.Value{}, diag.New(diag.KindTypeMismatch, "expected an integer, got %s", v.Type())
		}
		return reflect.ValueOf(i).Convert(t), nil

	case reflect.Float32, reflect.Float64:
		f, err := value.AsFloat64(v)
		if err != nil {
			return reflect.Value{}, diag.New(diag.KindTypeMismatch, "expected a number, got %s", v.Type())
		}
		return reflect.ValueOf(f).Convert(t), nil

	case reflect.String:
		s, err := v.GetStr()
		if err != nil {
			return reflect.Value{}, diag.New(diag.KindTypeMismatch, "expected a string, got %s", v.Type())
		}
		return reflect.ValueOf(s).Convert(t), nil

	case reflect.Slice:
		list, ok := v.(*value.List)
		if !ok {
			return reflect.Value{}, diag.New(diag.KindTypeMismatch, "expected a list, got %s", v.Type())
		}
		elems := list.Elements()
		out := reflect.MakeSlice(t, len(elems), len(elems))
		for i, el := range elems {
			gv, err := toGo(el, t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(gv)
		}
		return out, nil
	}

	return reflect.Value{}, diag.New(diag.KindTypeMismatch, "unsupported host parameter type %s", t)
}

// toScript converts a reflect.Value returned by a host function into the
// matching script value.
func toScript(rv reflect.Value) (value.Value, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.NewInt(int32(rv.Int())), nil
	case reflect.Float32, reflect.Float64:
		return value.NewFloat(float32(rv.Float())), nil
	case reflect.String:
		return value.NewStr(rv.String()), nil
	case reflect.Slice:
		elems := make([]value.Value, rv.Len())
		for i := range elems {
			sv, err := toScript(rv.Index(i))
			if err != nil {
				return nil, err
			}
			elems[i] = sv
		}
		return value.NewList(elems), nil
	}
	return nil, diag.New(diag.KindTypeMismatch, "unsupported host return type %s", rv.Type())
}
