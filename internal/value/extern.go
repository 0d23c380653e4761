package value

import (
	"fmt"

	"github.com/go-ascript/ascript/internal/diag"
)

// Extern is a live reference into host memory. It behaves as a scalar of its
// equivalent script type on read/write; the interpreter never stores a raw
// host pointer anywhere outside this holder.
//
// The read/write pair is type-erased here (constructed by hostbind, which
// owns the reflect-driven machinery over the host's actual Go type);
// this keeps the value package's capability contract closed over the same
// ten kinds regardless of how many host types get linked.
type Extern struct {
	unsupported
	TypeName string
	Read     func() Value
	Write    func(Value) error
}

// NewExtern constructs an Extern wrapping typeName (used only for Print),
// read and write.
func NewExtern(typeName string, read func() Value, write func(Value) error) *Extern {
	return &Extern{unsupported: unsupported{kind: "Extern"}, TypeName: typeName, Read: read, Write: write}
}

func (*Extern) Type() string    { return "Extern" }
func (e *Extern) Print() string { return fmt.Sprintf("externvalue<%s>", e.TypeName) }

// Materialize returns the fresh scalar value currently held on the host
// side. The evaluator calls this after every expression evaluation so
// scripts observe extern-bound variables as ordinary values.
func (e *Extern) Materialize() Value { return e.Read() }

// AssignFrom writes rhs through to the host, coercing as the adapter allows.
func (e *Extern) AssignFrom(rhs Value) error {
	if err := e.Write(rhs); err != nil {
		if _, ok := err.(*diag.Error); ok {
			return err
		}
		return diag.New(diag.KindIncompatibleTypes, "%s", err.Error())
	}
	return nil
}
