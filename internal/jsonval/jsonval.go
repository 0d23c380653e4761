// Package jsonval bridges script values and JSON text, installed as the
// JSON.Parse/JSON.Stringify native functions when a Script is configured
// WithJSON. Parsing is gjson-backed; construction builds the document key
// by key with sjson and reindents the result with tidwall/pretty.
package jsonval

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/go-ascript/ascript/internal/diag"
	"github.com/go-ascript/ascript/internal/value"
)

// Install defines JSON.Parse and JSON.Stringify in scope.
func Install(scope *value.Map) {
	jsonMap := value.NewMap()
	jsonMap.Define("Parse", value.NewNativeFunc(parseFn))
	jsonMap.Define("Stringify", value.NewNativeFunc(stringifyFn))
	scope.Define("JSON", jsonMap)
}

func parseFn(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, diag.New(diag.KindArityMismatch, "JSON.Parse expected 1 argument, got %d", len(args))
	}
	s, err := args[0].GetStr()
	if err != nil {
		return nil, diag.New(diag.KindTypeMismatch, "JSON.Parse expects a Str argument")
	}
	if !gjson.Valid(s) {
		return nil, diag.New(diag.KindTypeMismatch, "JSON.Parse: invalid JSON")
	}
	return fromGJSON(gjson.Parse(s)), nil
}

func fromGJSON(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.String:
		return value.NewStr(r.String())
	case gjson.Number:
		f := r.Float()
		if f == float64(int64(f)) {
			return value.NewInt(int32(int64(f)))
		}
		return value.NewFloat(float32(f))
	case gjson.True:
		return value.NewInt(1)
	case gjson.False:
		return value.NewInt(0)
	case gjson.Null:
		return value.NewNone()
	case gjson.JSON:
		if r.IsArray() {
			var elems []value.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, fromGJSON(v))
				return true
			})
			return value.NewList(elems)
		}
		m := value.NewMap()
		r.ForEach(func(k, v gjson.Result) bool {
			m.Define(k.String(), fromGJSON(v))
			return true
		})
		return m
	}
	return value.NewNone()
}

func stringifyFn(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, diag.New(diag.KindArityMismatch, "JSON.Stringify expected 1 argument, got %d", len(args))
	}
	doc, err := toJSON(args[0])
	if err != nil {
		return nil, err
	}
	return value.NewStr(strings.TrimSuffix(string(pretty.Pretty([]byte(doc))), "\n")), nil
}

// toJSON renders v as a standalone JSON document. Maps and lists are built
// incrementally with sjson.SetRaw, splicing in each element's own rendered
// document at the right path.
func toJSON(v value.Value) (string, error) {
	switch val := v.(type) {
	case *value.None:
		return "null", nil

	case *value.Int:
		i, _ := val.GetInt()
		return strconv.FormatInt(i, 10), nil

	case *value.Float:
		return val.Print(), nil

	case *value.Str:
		s, _ := val.GetStr()
		return strconv.Quote(s), nil

	case *value.Map:
		doc := "{}"
		for _, k := range val.Keys() {
			child, _ := val.Get(k)
			sub, err := toJSON(child)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, k, sub)
			if err != nil {
				return "", diag.New(diag.KindInternalError, "JSON.Stringify: %s", err.Error())
			}
		}
		return doc, nil

	case *value.List:
		doc := "[]"
		for i, el := range val.Elements() {
			sub, err := toJSON(el)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, strconv.Itoa(i), sub)
			if err != nil {
				return "", diag.New(diag.KindInternalError, "JSON.Stringify: %s", err.Error())
			}
		}
		return doc, nil
	}

	return "", diag.New(diag.KindTypeMismatch, "JSON.Stringify: %s is not representable in JSON", v.Type())
}
