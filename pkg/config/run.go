package config

import (
	"fmt"

	"github.com/go-ascript/ascript/pkg/ascript"
)

// Result is the outcome of running one ScriptSpec.
type Result struct {
	Path string
	Err  error
}

// RunAll runs every script in the project in sequence, one fresh Script
// (and one fresh global scope) per entry. A later entry's failure does not
// prevent earlier or later entries from running.
func RunAll(p *Project) []Result {
	results := make([]Result, 0, len(p.Scripts))
	for _, spec := range p.Scripts {
		results = append(results, runOne(spec))
	}
	return results
}

func runOne(spec ScriptSpec) Result {
	s, err := ascript.New(spec.Path)
	if err != nil {
		return Result{Path: spec.Path, Err: err}
	}
	for name, v := range spec.Vars {
		if err := linkVar(s, name, v); err != nil {
			return Result{Path: spec.Path, Err: fmt.Errorf("linking %q: %w", name, err)}
		}
	}
	return Result{Path: spec.Path, Err: s.Run()}
}

// linkVar materializes a host-side Go variable for v and links it under
// name, so config-declared variables get the same Extern write-through
// semantics a real embedding host would see.
func linkVar(s *ascript.Script, name string, v VarSpec) error {
	switch v.Type {
	case "int":
		n := toInt(v.Value)
		return s.Link(name, &n)
	case "float":
		f := toFloat(v.Value)
		return s.Link(name, &f)
	case "string":
		str := fmt.Sprintf("%v", v.Value)
		return s.Link(name, &str)
	}
	return fmt.Errorf("unknown var type %q", v.Type)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}
