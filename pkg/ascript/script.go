// Package ascript is the embedding façade: load a script from disk, link
// host variables and functions into it, and run it.
package ascript

import (
	"fmt"
	"io"
	"os"

	"github.com/go-ascript/ascript/internal/ast"
	"github.com/go-ascript/ascript/internal/diag"
	"github.com/go-ascript/ascript/internal/eval"
	"github.com/go-ascript/ascript/internal/hostbind"
	"github.com/go-ascript/ascript/internal/jsonval"
	"github.com/go-ascript/ascript/internal/parser"
	"github.com/go-ascript/ascript/internal/value"
)

// Script is a loaded, not-yet-run program plus its global scope.
type Script struct {
	file   string
	source string
	root   ast.Stat

	global *value.Map
	ev     *eval.Evaluator

	output       io.Writer
	maxCallDepth int
}

// Option configures a Script at construction time.
type Option func(*Script)

// WithOutput records w as the Script's output writer (os.Stdout by
// default). Neither the façade nor the evaluator writes to it, and the
// language has no print statement of its own.
func WithOutput(w io.Writer) Option {
	return func(s *Script) { s.output = w }
}

// WithJSON installs the JSON.Parse/JSON.Stringify native functions into the
// global scope.
func WithJSON(enabled bool) Option {
	return func(s *Script) {
		if enabled {
			jsonval.Install(s.global)
		}
	}
}

// WithMaxCallDepth bounds nested script function-call depth: a call past the
// limit fails with diag.KindCallDepthExceeded instead of overflowing the
// host Go call stack.
func WithMaxCallDepth(n int) Option {
	return func(s *Script) { s.maxCallDepth = n }
}

// New loads and parses the script at path, installs the assert intrinsic,
// and applies opts. It does not execute the script.
func New(path string, opts ...Option) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ascript: %w", err)
	}

	s := &Script{
		file:   path,
		source: string(data),
		global: value.NewMap(),
		output: os.Stdout,
	}

	p := parser.New(path, s.source)
	root, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	s.root = root

	installAssert(s.global)

	for _, opt := range opts {
		opt(s)
	}

	s.ev = eval.New(s.file, s.source, s.global)
	if s.maxCallDepth != 0 {
		s.ev.SetMaxCallDepth(s.maxCallDepth)
	}
	return s, nil
}

// installAssert installs the assert(x) intrinsic, required before user code
// runs regardless of any Option.
func installAssert(scope *value.Map) {
	scope.Define("assert", value.NewNativeFunc(func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, diag.New(diag.KindArityMismatch, "assert expected 1 argument, got %d", len(args))
		}
		truthy, err := args[0].IsTrue()
		if err != nil {
			return nil, err
		}
		if !truthy {
			return nil, diag.New(diag.KindAssertionFailed, "Assertion failed")
		}
		return value.NewNone(), nil
	}))
}

// Link installs an Extern at name in the global scope, wrapping the host
// variable ref points to.
func (s *Script) Link(name string, ref any) error {
	return hostbind.Link(s.global, name, ref)
}

// LinkFunction installs a typed host function as a native function at name
// in the global scope.
func (s *Script) LinkFunction(name string, fn any) error {
	return hostbind.LinkFunction(s.global, name, fn)
}

// Run executes the script against its global scope.
func (s *Script) Run() error {
	return s.ev.Run(s.root)
}

// IsOver always reports false; the field exists for a future
// staged-execution interface.
func (s *Script) IsOver() bool { return false }
