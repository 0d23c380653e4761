package eval

import (
	"testing"

	"github.com/go-ascript/ascript/internal/diag"
	"github.com/go-ascript/ascript/internal/parser"
	"github.com/go-ascript/ascript/internal/value"
)

func run(t *testing.T, src string) (*Evaluator, error) {
	t.Helper()
	p := parser.New("test.as", src)
	root, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	global := value.NewMap()
	ev := New("test.as", src, global)
	return ev, ev.Run(root)
}

func mustRun(t *testing.T, src string) *Evaluator {
	t.Helper()
	ev, err := run(t, src)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	return ev
}

func TestArithmeticAccumulationAndIfElse(t *testing.T) {
	ev := mustRun(t, `
total = 0;
for (item in [1, 2, 3, 4, 5]) {
	total += item;
}
if (total != 15) {
	result = 0;
} else {
	result = 1;
}
`)
	v, err := ev.Global.Get("result")
	if err != nil {
		t.Fatal(err)
	}
	if v.(*value.Int).V != 1 {
		t.Errorf("total did not accumulate to 15, result = %v", v)
	}
}

func TestHostVariableReadWriteThroughExtern(t *testing.T) {
	global := value.NewMap()
	host := int32(5)
	global.Define("counter", value.NewExtern("int32",
		func() value.Value { return value.NewInt(host) },
		func(v value.Value) error {
			i, err := v.GetInt()
			if err != nil {
				return err
			}
			host = int32(i)
			return nil
		},
	))

	p := parser.New("test.as", "counter = counter + 10;")
	root, err := p.ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	ev := New("test.as", "counter = counter + 10;", global)
	if err := ev.Run(root); err != nil {
		t.Fatal(err)
	}
	if host != 15 {
		t.Errorf("host = %d, want 15", host)
	}
}

func TestHostFunctionCall(t *testing.T) {
	global := value.NewMap()
	global.Define("double", value.NewNativeFunc(func(args []value.Value) (value.Value, error) {
		i, err := args[0].GetInt()
		if err != nil {
			return nil, err
		}
		return value.NewInt(int32(i * 2)), nil
	}))

	src := "y = double(21);"
	p := parser.New("test.as", src)
	root, err := p.ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	ev := New("test.as", src, global)
	if err := ev.Run(root); err != nil {
		t.Fatal(err)
	}
	y, _ := global.Get("y")
	if y.(*value.Int).V != 42 {
		t.Errorf("got %v, want 42", y)
	}
}

func TestMapMethodBindsThis(t *testing.T) {
	ev := mustRun(t, `
obj = {value: 10, getValue: function() { return this.value; }};
result = obj.getValue();
`)
	v, _ := ev.Global.Get("result")
	if v.(*value.Int).V != 10 {
		t.Errorf("got %v, want 10", v)
	}
}

func TestForLoopOverList(t *testing.T) {
	ev := mustRun(t, `
sum = 0;
for (n in [10, 20, 30]) {
	sum += n;
}
`)
	v, _ := ev.Global.Get("sum")
	if v.(*value.Int).V != 60 {
		t.Errorf("got %v, want 60", v)
	}
}

func TestForLoopOverRange(t *testing.T) {
	ev := mustRun(t, `
count = 0;
for (i in [0..5]) {
	count += 1;
}
`)
	v, _ := ev.Global.Get("count")
	if v.(*value.Int).V != 6 {
		t.Errorf("got %v, want 6 ([0..5] includes both ends)", v)
	}
}

func TestDiagnosticPrecisionOnUnknownVariableUse(t *testing.T) {
	src := "x = 1;\ny = 2;\nz = undefinedFn(1);"
	_, err := run(t, src)
	if err == nil {
		t.Fatal("expected an error")
	}
	ie, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("got %T, want *diag.Error", err)
	}
	if ie.Pos == nil || ie.Pos.Line != 3 {
		t.Errorf("expected error at line 3, got %+v", ie.Pos)
	}
}

func TestDivisionByZeroDiagnosesInsteadOfPanicking(t *testing.T) {
	src := "\n\nassert(1 / 0 == 0);"
	_, err := run(t, src)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	de, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("got %T, want *diag.Error", err)
	}
	if de.Kind != diag.KindUnsupportedOp {
		t.Errorf("Kind = %v, want KindUnsupportedOp", de.Kind)
	}
	if de.Pos == nil || de.Pos.Line != 3 {
		t.Errorf("expected error on line 3, got %+v", de.Pos)
	}
	out := de.Format()
	if out == "" {
		t.Fatal("Format() returned empty string")
	}
}

func TestAutoVivificationAtPointOfWrite(t *testing.T) {
	ev := mustRun(t, `
m = {};
m.a.b = 1;
`)
	v, _ := ev.Global.Get("m")
	mp := v.(*value.Map)
	a, err := mp.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	am, ok := a.(*value.Map)
	if !ok {
		t.Fatalf("m.a vivified to %T, want *value.Map", a)
	}
	b, _ := am.Get("b")
	if b.(*value.Int).V != 1 {
		t.Errorf("m.a.b = %v, want 1", b)
	}
}

func TestReadingMissingChainDoesNotVivify(t *testing.T) {
	// Reading m.a (without assigning through it) must leave m.a bound to
	// None, not a Map — only the point of write vivifies a nested Map.
	ev := mustRun(t, `
m = {};
x = m.a;
`)
	v, _ := ev.Global.Get("m")
	mp := v.(*value.Map)
	a, _ := mp.Get("a")
	if _, isNone := a.(*value.None); !isNone {
		t.Errorf("m.a = %T, want *value.None (no vivification on read)", a)
	}
}

func TestReturnShortCircuitsRemainingStatements(t *testing.T) {
	ev := mustRun(t, `
f = function() {
	return 1;
	this.x = 99;
};
result = f();
`)
	v, _ := ev.Global.Get("result")
	if v.(*value.Int).V != 1 {
		t.Errorf("got %v, want 1", v)
	}
	if ev.Global.Has("x") {
		t.Error("statement after return should not have executed")
	}
}

func TestCallDepthGuardStopsRunawayRecursion(t *testing.T) {
	src := `
f = function(n) {
	return f(n + 1);
};
f(0);
`
	p := parser.New("test.as", src)
	root, err := p.ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	global := value.NewMap()
	ev := New("test.as", src, global)
	ev.SetMaxCallDepth(10)

	err = ev.Run(root)
	if err == nil {
		t.Fatal("expected runaway recursion to fail once the call-depth guard trips")
	}
	de, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("got %T, want *diag.Error", err)
	}
	if de.Kind != diag.KindCallDepthExceeded {
		t.Errorf("Kind = %v, want KindCallDepthExceeded", de.Kind)
	}
}

func TestCallDepthGuardAllowsOrdinaryRecursion(t *testing.T) {
	ev := mustRun(t, `
fact = function(n) {
	if (n <= 1) { return 1; }
	return n * fact(n - 1);
};
result = fact(6);
`)
	v, _ := ev.Global.Get("result")
	if v.(*value.Int).V != 720 {
		t.Errorf("got %v, want 720", v)
	}
}

func TestCompoundAssignAgainstExternFailsWithUnsupportedOp(t *testing.T) {
	global := value.NewMap()
	host := int32(5)
	writes := 0
	global.Define("counter", value.NewExtern("int32",
		func() value.Value { return value.NewInt(host) },
		func(v value.Value) error {
			writes++
			i, err := v.GetInt()
			if err != nil {
				return err
			}
			host = int32(i)
			return nil
		},
	))

	src := "counter += 1;"
	p := parser.New("test.as", src)
	root, err := p.ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	ev := New("test.as", src, global)
	err = ev.Run(root)
	if err == nil {
		t.Fatal("expected compound assignment against an Extern l-value to fail")
	}
	de, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("got %T, want *diag.Error", err)
	}
	if de.Kind != diag.KindUnsupportedOp {
		t.Errorf("Kind = %v, want KindUnsupportedOp", de.Kind)
	}
	if writes != 0 {
		t.Errorf("expected no host write on failed compound assignment, got %d writes", writes)
	}
}
