package jsonval

import (
	"testing"

	"github.com/go-ascript/ascript/internal/value"
)

func parseOne(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := parseFn([]value.Value{value.NewStr(src)})
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func isNone(v value.Value) bool {
	_, ok := v.(*value.None)
	return ok
}

func TestParseScalars(t *testing.T) {
	if v := parseOne(t, `"hi"`); v.(*value.Str).V != "hi" {
		t.Errorf("got %v", v)
	}
	if v := parseOne(t, `42`); v.(*value.Int).V != 42 {
		t.Errorf("got %v", v)
	}
	if v := parseOne(t, `1.5`); v.(*value.Float).V != 1.5 {
		t.Errorf("got %v", v)
	}
	if v := parseOne(t, `null`); !isNone(v) {
		t.Errorf("got %T, want *value.None", v)
	}
	if v := parseOne(t, `true`); v.(*value.Int).V != 1 {
		t.Errorf("true did not map to Int(1): %v", v)
	}
	if v := parseOne(t, `false`); v.(*value.Int).V != 0 {
		t.Errorf("false did not map to Int(0): %v", v)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := parseFn([]value.Value{value.NewStr("{not json")}); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestParseNestedObjectPreservesKeyOrder(t *testing.T) {
	v := parseOne(t, `{"b": 1, "a": 2}`)
	m := v.(*value.Map)
	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("got keys %v, want [b a]", keys)
	}
}

func TestParseArray(t *testing.T) {
	v := parseOne(t, `[1, 2, 3]`)
	l := v.(*value.List)
	n, _ := l.Length()
	if n != 3 {
		t.Fatalf("got length %d, want 3", n)
	}
	first, _ := l.At(0)
	if first.(*value.Int).V != 1 {
		t.Errorf("got %v", first)
	}
}

func TestStringifyRoundTrip(t *testing.T) {
	m := value.NewMap()
	m.Define("name", value.NewStr("widget"))
	m.Define("count", value.NewInt(3))
	inner := value.NewList([]value.Value{value.NewInt(1), value.NewInt(2)})
	m.Define("items", inner)

	out, err := stringifyFn([]value.Value{m})
	if err != nil {
		t.Fatal(err)
	}
	doc := out.(*value.Str).V

	reparsed := parseOne(t, doc)
	rm := reparsed.(*value.Map)
	name, _ := rm.Get("name")
	if name.(*value.Str).V != "widget" {
		t.Errorf("round-trip name = %v", name)
	}
	count, _ := rm.Get("count")
	if count.(*value.Int).V != 3 {
		t.Errorf("round-trip count = %v", count)
	}
	items, _ := rm.Get("items")
	n, _ := items.(*value.List).Length()
	if n != 2 {
		t.Errorf("round-trip items length = %d, want 2", n)
	}
}

func TestStringifyNone(t *testing.T) {
	out, err := stringifyFn([]value.Value{value.NewNone()})
	if err != nil {
		t.Fatal(err)
	}
	if out.(*value.Str).V != "null" {
		t.Errorf("got %q, want \"null\"", out.(*value.Str).V)
	}
}

func TestInstallDefinesJSONMapWithBothMembers(t *testing.T) {
	scope := value.NewMap()
	Install(scope)
	jv, err := scope.Get("JSON")
	if err != nil {
		t.Fatal(err)
	}
	jm, ok := jv.(*value.Map)
	if !ok {
		t.Fatalf("got %T, want *value.Map", jv)
	}
	if !jm.Has("Parse") || !jm.Has("Stringify") {
		t.Errorf("expected JSON map to define Parse and Stringify, keys = %v", jm.Keys())
	}
}
