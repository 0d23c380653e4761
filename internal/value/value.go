// Package value implements the interpreter's polymorphic runtime value
// model: a closed set of kinds sharing one capability contract, rather than
// an open inheritance hierarchy.
package value

import "github.com/go-ascript/ascript/internal/diag"

// Value is the capability contract every runtime value implements. Each
// method has a default that fails (via unsupported, embedded by every
// concrete kind) with a *diag.Error: UnsupportedOp for the operators, and
// NotIterable, NonAssignable, UnknownMethod, NotACondition or TypeMismatch
// for the other operations; a kind overrides only the operations it
// actually supports.
type Value interface {
	// Type names the kind, used in diagnostics.
	Type() string

	// Print formats the value the way script output and diagnostics render it.
	Print() string

	UnOp(op string) (Value, error)
	BinOp(op string, rhs Value) (Value, error)

	Length() (int, error)
	At(i int) (Value, error)
	AtRef(i int) (Slot, error)

	Get(name string) (Value, error)
	GetRef(name string) (Slot, error)

	IsTrue() (bool, error)
	GetInt() (int64, error)
	GetStr() (string, error)

	Call(name string, args []Value) (Value, error)
}

// Slot is an assignable location inside a Map or List.
type Slot struct {
	get func() Value
	set func(Value)
}

// NewSlot builds a Slot from a pair of accessor closures.
func NewSlot(get func() Value, set func(Value)) Slot {
	return Slot{get: get, set: set}
}

// Value reads the slot's current contents.
func (s Slot) Value() Value { return s.get() }

// Assign overwrites the slot's contents.
func (s Slot) Assign(v Value) { s.set(v) }

// unsupported is embedded by every concrete Value kind to supply the
// capability contract's failing defaults. Kinds override whichever methods
// their row in the capability table actually grants them.
type unsupported struct {
	kind string
}

func (u unsupported) unsupportedOp(op string) error {
	return diag.New(diag.KindUnsupportedOp, "unsupported operation %q on %s", op, u.kind)
}

func (u unsupported) UnOp(op string) (Value, error) {
	return nil, u.unsupportedOp(op)
}

func (u unsupported) BinOp(op string, rhs Value) (Value, error) {
	return nil, u.unsupportedOp(op)
}

func (u unsupported) Length() (int, error) {
	return 0, diag.New(diag.KindNotIterable, "%s has no length", u.kind)
}

func (u unsupported) At(i int) (Value, error) {
	return nil, diag.New(diag.KindNotIterable, "%s is not indexable", u.kind)
}

func (u unsupported) AtRef(i int) (Slot, error) {
	return Slot{}, diag.New(diag.KindNonAssignable, "%s is not indexable", u.kind)
}

func (u unsupported) Get(name string) (Value, error) {
	return nil, diag.New(diag.KindUnknownMethod, "%s has no member %q", u.kind, name)
}

func (u unsupported) GetRef(name string) (Slot, error) {
	return Slot{}, diag.New(diag.KindNonAssignable, "%s has no member %q", u.kind, name)
}

func (u unsupported) IsTrue() (bool, error) {
	return false, diag.New(diag.KindNotACondition, "%s has no truth value", u.kind)
}

func (u unsupported) GetInt() (int64, error) {
	return 0, diag.New(diag.KindTypeMismatch, "%s is not an integer", u.kind)
}

func (u unsupported) GetStr() (string, error) {
	return "", diag.New(diag.KindTypeMismatch, "%s is not a string", u.kind)
}

func (u unsupported) Call(name string, args []Value) (Value, error) {
	return nil, diag.New(diag.KindUnknownMethod, "%s has no method %q", u.kind, name)
}
