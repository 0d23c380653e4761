package value

import (
	"math"
	"testing"

	"github.com/go-ascript/ascript/internal/diag"
)

func TestDivisionAndModuloByZeroDiagnoseInsteadOfPanic(t *testing.T) {
	cases := []struct {
		name string
		l, r Value
		op   string
	}{
		{"int div", NewInt(1), NewInt(0), "/"},
		{"int mod", NewInt(1), NewInt(0), "%"},
		{"float mod", NewFloat(1), NewFloat(0), "%"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.l.BinOp(c.op, c.r)
			if err == nil {
				t.Fatalf("BinOp(%q) on zero divisor: want error, got nil", c.op)
			}
			de, ok := err.(*diag.Error)
			if !ok {
				t.Fatalf("BinOp(%q) error type = %T, want *diag.Error", c.op, err)
			}
			if de.Kind != diag.KindUnsupportedOp {
				t.Errorf("BinOp(%q) Kind = %v, want KindUnsupportedOp", c.op, de.Kind)
			}
		})
	}

	// Float division by zero follows IEEE-754 (+Inf/-Inf/NaN), not a panic
	// or a diagnostic — Go's float division never traps.
	got, err := NewFloat(1).BinOp("/", NewFloat(0))
	if err != nil {
		t.Fatalf("float division by zero: %v", err)
	}
	if fv, ok := got.(*Float); !ok || !math.IsInf(float64(fv.V), 1) {
		t.Errorf("float 1/0 = %v, want +Inf", got)
	}
}

func TestIntBinOpArithmeticAndComparison(t *testing.T) {
	l, r := NewInt(6), NewInt(4)
	cases := []struct {
		op   string
		want int32
	}{
		{"+", 10}, {"-", 2}, {"*", 24}, {"/", 1}, {"%", 2},
		{"==", 0}, {"!=", 1}, {"<", 0}, {">", 1}, {"<=", 0}, {">=", 1},
		{"and", 1}, {"or", 1},
	}
	for _, c := range cases {
		got, err := l.BinOp(c.op, r)
		if err != nil {
			t.Fatalf("BinOp(%q): %v", c.op, err)
		}
		iv, ok := got.(*Int)
		if !ok {
			t.Fatalf("BinOp(%q) returned %T, want *Int", c.op, got)
		}
		if iv.V != c.want {
			t.Errorf("BinOp(%q) = %d, want %d", c.op, iv.V, c.want)
		}
	}
}

func TestMixedIntFloatPromotesToFloat(t *testing.T) {
	got, err := NewInt(3).BinOp("+", NewFloat(0.5))
	if err != nil {
		t.Fatal(err)
	}
	fv, ok := got.(*Float)
	if !ok {
		t.Fatalf("got %T, want *Float", got)
	}
	if fv.V != 3.5 {
		t.Errorf("got %v, want 3.5", fv.V)
	}

	got2, err := NewFloat(3).BinOp("+", NewFloat(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if got2.(*Float).V != got.(*Float).V {
		t.Errorf("Int+Float and Float+Float disagree: %v vs %v", got, got2)
	}
}

func TestStrConcatOnly(t *testing.T) {
	got, err := NewStr("foo").BinOp("+", NewStr("bar"))
	if err != nil {
		t.Fatal(err)
	}
	if got.(*Str).V != "foobar" {
		t.Errorf("got %q", got.(*Str).V)
	}
	if _, err := NewStr("foo").BinOp("-", NewStr("bar")); err == nil {
		t.Error("expected error for Str - Str")
	}
}

func TestUnOp(t *testing.T) {
	neg, _ := NewInt(5).UnOp("-")
	if neg.(*Int).V != -5 {
		t.Errorf("got %v", neg)
	}
	notZero, _ := NewInt(0).UnOp("not")
	if notZero.(*Int).V != 1 {
		t.Errorf("not 0 = %v, want 1", notZero)
	}
	notNonZero, _ := NewInt(5).UnOp("not")
	if notNonZero.(*Int).V != 0 {
		t.Errorf("not 5 = %v, want 0", notNonZero)
	}
}

func TestMapOrderedPrint(t *testing.T) {
	m := NewMap()
	m.Define("b", NewInt(2))
	m.Define("a", NewInt(1))
	want := "{b:2;a:1;}"
	if got := m.Print(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMapGetAutoVivifiesToNone(t *testing.T) {
	m := NewMap()
	v, err := m.Get("missing")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(*None); !ok {
		t.Fatalf("got %T, want *None", v)
	}
	if !m.Has("missing") {
		t.Error("expected auto-vivified key to now be present")
	}
}

func TestListLengthAtAtRef(t *testing.T) {
	l := NewList([]Value{NewInt(1), NewInt(2), NewInt(3)})
	n, _ := l.Length()
	if n != 3 {
		t.Errorf("length = %d, want 3", n)
	}
	v, err := l.At(1)
	if err != nil || v.(*Int).V != 2 {
		t.Errorf("At(1) = %v, %v", v, err)
	}
	slot, err := l.AtRef(0)
	if err != nil {
		t.Fatal(err)
	}
	slot.Assign(NewInt(99))
	v0, _ := l.At(0)
	if v0.(*Int).V != 99 {
		t.Errorf("AtRef write didn't take effect: %v", v0)
	}
	if _, err := l.At(5); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestListCallLength(t *testing.T) {
	l := NewList([]Value{NewInt(1), NewInt(2)})
	v, err := l.Call("length", nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.(*Int).V != 2 {
		t.Errorf("got %v", v)
	}
	if _, err := l.Call("nope", nil); err == nil {
		t.Error("expected UnknownMethod error")
	}
}

func TestRangeLengthAndAt(t *testing.T) {
	r, err := NewRange(1, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := r.Length()
	if n != 5 {
		t.Errorf("length = %d, want 5", n)
	}
	for i := 0; i < n; i++ {
		v, err := r.At(i)
		if err != nil {
			t.Fatal(err)
		}
		want := int32(1 + i)
		if v.(*Int).V != want {
			t.Errorf("At(%d) = %v, want %d", i, v, want)
		}
	}
}

func TestRangeNegativeLengthClampsToZero(t *testing.T) {
	r, err := NewRange(0, -1, 1)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := r.Length()
	if n != 0 {
		t.Errorf("length = %d, want 0", n)
	}
}

func TestRangeRejectsZeroStep(t *testing.T) {
	if _, err := NewRange(0, 10, 0); err == nil {
		t.Error("expected error for step == 0")
	}
}

func TestRangeAtRefUnsupported(t *testing.T) {
	r, _ := NewRange(0, 3, 1)
	if _, err := r.AtRef(0); err == nil {
		t.Error("expected Range.AtRef to be unsupported")
	}
}

func TestPrintFormsForEveryKind(t *testing.T) {
	vals := []Value{
		NewNone(), NewInt(1), NewFloat(1.5), NewStr("s"), NewMap(), NewList(nil),
	}
	for _, v := range vals {
		if v.Print() == "" {
			t.Errorf("%T.Print() returned empty string", v)
		}
	}
	r, _ := NewRange(0, 1, 1)
	if r.Print() != "[0..1]" {
		t.Errorf("Range.Print() = %q", r.Print())
	}
	rs, _ := NewRange(0, 10, 2)
	if rs.Print() != "[0..10..2]" {
		t.Errorf("Range.Print() with step = %q", rs.Print())
	}
}

func TestExternMaterializeAndAssign(t *testing.T) {
	host := int32(10)
	ext := NewExtern("int32",
		func() Value { return NewInt(host) },
		func(v Value) error {
			i, err := v.GetInt()
			if err != nil {
				return err
			}
			host = int32(i)
			return nil
		},
	)
	if ext.Materialize().(*Int).V != 10 {
		t.Fatalf("got %v", ext.Materialize())
	}
	if err := ext.AssignFrom(NewInt(42)); err != nil {
		t.Fatal(err)
	}
	if host != 42 {
		t.Errorf("host = %d, want 42", host)
	}
}
