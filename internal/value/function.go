package value

import (
	"fmt"

	"github.com/go-ascript/ascript/internal/ast"
)

// Function is a script-defined function: formal parameters plus a body. It
// has no captured environment — a call sees only its parameters, this, and
// the global scope.
type Function struct {
	unsupported
	Params []string
	Body   ast.Stat
}

// NewFunction constructs a script Function value.
func NewFunction(params []string, body ast.Stat) *Function {
	return &Function{unsupported: unsupported{kind: "Function"}, Params: params, Body: body}
}

func (*Function) Type() string    { return "Function" }
func (f *Function) Print() string { return fmt.Sprintf("function(%d)", len(f.Params)) }

// NativeFuncImpl is the Go-side implementation backing a NativeFunc value.
type NativeFuncImpl func(args []Value) (Value, error)

// NativeFunc wraps a host-provided callable as a script value, produced by
// host-binding installs (LinkFunction) or by intrinsics such as assert.
type NativeFunc struct {
	unsupported
	Impl NativeFuncImpl
}

// NewNativeFunc wraps impl as a NativeFunc value.
func NewNativeFunc(impl NativeFuncImpl) *NativeFunc {
	return &NativeFunc{unsupported: unsupported{kind: "NativeFunc"}, Impl: impl}
}

func (*NativeFunc) Type() string  { return "NativeFunc" }
func (*NativeFunc) Print() string { return "nativefunction" }

// Invoke calls the wrapped Go function.
func (n *NativeFunc) Invoke(args []Value) (Value, error) { return n.Impl(args) }
