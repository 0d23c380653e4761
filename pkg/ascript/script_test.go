package ascript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-ascript/ascript/internal/diag"
)

func writeScript(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.as")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRunAssertPasses(t *testing.T) {
	path := writeScript(t, `assert(1 + 1 == 2);`)
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestNewRunAssertFails(t *testing.T) {
	path := writeScript(t, `assert(1 == 2);`)
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err == nil {
		t.Fatal("expected assertion failure")
	}
}

func TestLinkHostVariable(t *testing.T) {
	path := writeScript(t, `score = score + 5;`)
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	score := 10
	if err := s.Link("score", &score); err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if score != 15 {
		t.Errorf("score = %d, want 15", score)
	}
}

func TestLinkHostFunction(t *testing.T) {
	// Str supports only concatenation, so the result is written to a linked
	// host string and compared on the Go side.
	path := writeScript(t, `out = greet("world");`)
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.LinkFunction("greet", func(name string) string { return "hello " + name }); err != nil {
		t.Fatal(err)
	}
	out := ""
	if err := s.Link("out", &out); err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if out != "hello world" {
		t.Errorf("out = %q, want %q", out, "hello world")
	}
}

func TestWithJSONInstallsJSONModule(t *testing.T) {
	path := writeScript(t, `
doc = JSON.Parse("{\"a\": 1}");
assert(doc.a == 1);
`)
	s, err := New(path, WithJSON(true))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
}

func TestWithoutJSONLeavesModuleUndefined(t *testing.T) {
	path := writeScript(t, `x = JSON;`)
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	// JSON is not linked, so it auto-vivifies to None like any other
	// undefined variable reference rather than raising UnknownVariable.
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
}

func TestWithMaxCallDepthStopsRunawayRecursion(t *testing.T) {
	path := writeScript(t, `
f = function(n) {
	return f(n + 1);
};
f(0);
`)
	s, err := New(path, WithMaxCallDepth(10))
	if err != nil {
		t.Fatal(err)
	}
	err = s.Run()
	if err == nil {
		t.Fatal("expected runaway recursion to fail")
	}
	de, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("got %T, want *diag.Error", err)
	}
	if de.Kind != diag.KindCallDepthExceeded {
		t.Errorf("Kind = %v, want KindCallDepthExceeded", de.Kind)
	}
}

func TestNewReturnsParseError(t *testing.T) {
	path := writeScript(t, `x = ;`)
	if _, err := New(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestNewReturnsErrorForMissingFile(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing.as")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
