package value

import (
	"fmt"
	"strconv"

	"github.com/go-ascript/ascript/internal/diag"
)

// None is produced by an empty return, a read of an unset map key, and by
// assert's return value.
type None struct {
	unsupported
}

// NewNone constructs the singleton-shaped None value. Not cached as a true
// singleton since None carries no state, but every caller is free to treat
// instances as interchangeable.
func NewNone() *None { return &None{unsupported{kind: "None"}} }

func (*None) Type() string    { return "None" }
func (*None) Print() string   { return "None" }
func (*None) IsTrue() (bool, error) { return false, nil }

// Int is a 32-bit signed integer value.
type Int struct {
	unsupported
	V int32
}

func NewInt(v int32) *Int { return &Int{unsupported{kind: "Int"}, v} }

func (*Int) Type() string   { return "Int" }
func (i *Int) Print() string { return strconv.FormatInt(int64(i.V), 10) }

func (i *Int) IsTrue() (bool, error) { return i.V != 0, nil }
func (i *Int) GetInt() (int64, error) { return int64(i.V), nil }

func (i *Int) UnOp(op string) (Value, error) {
	switch op {
	case "-":
		return NewInt(-i.V), nil
	case "not":
		if i.V == 0 {
			return NewInt(1), nil
		}
		return NewInt(0), nil
	}
	return nil, i.unsupportedOp(op)
}

func (i *Int) BinOp(op string, rhs Value) (Value, error) {
	switch r := rhs.(type) {
	case *Int:
		return intBinOp(op, i.V, r.V)
	case *Float:
		return floatBinOp(op, float32(i.V), r.V)
	}
	return nil, diag.New(diag.KindTypeMismatch, "incompatible operand for %q: Int and %s", op, rhs.Type())
}

// Float is a 32-bit IEEE-754 value.
type Float struct {
	unsupported
	V float32
}

func NewFloat(v float32) *Float { return &Float{unsupported{kind: "Float"}, v} }

func (*Float) Type() string    { return "Float" }
func (f *Float) Print() string { return strconv.FormatFloat(float64(f.V), 'g', -1, 32) }

func (f *Float) IsTrue() (bool, error)  { return f.V != 0, nil }
func (f *Float) GetInt() (int64, error) { return int64(f.V), nil }

func (f *Float) UnOp(op string) (Value, error) {
	switch op {
	case "-":
		return NewFloat(-f.V), nil
	case "not":
		if f.V == 0 {
			return NewInt(1), nil
		}
		return NewInt(0), nil
	}
	return nil, f.unsupportedOp(op)
}

func (f *Float) BinOp(op string, rhs Value) (Value, error) {
	switch r := rhs.(type) {
	case *Int:
		return floatBinOp(op, f.V, float32(r.V))
	case *Float:
		return floatBinOp(op, f.V, r.V)
	}
	return nil, diag.New(diag.KindTypeMismatch, "incompatible operand for %q: Float and %s", op, rhs.Type())
}

func intBinOp(op string, l, r int32) (Value, error) {
	switch op {
	case "+":
		return NewInt(l + r), nil
	case "-":
		return NewInt(l - r), nil
	case "*":
		return NewInt(l * r), nil
	case "/":
		if r == 0 {
			return nil, diag.New(diag.KindUnsupportedOp, "division by zero")
		}
		return NewInt(l / r), nil
	case "%":
		if r == 0 {
			return nil, diag.New(diag.KindUnsupportedOp, "modulo by zero")
		}
		return NewInt(l % r), nil
	case "==":
		return boolInt(l == r), nil
	case "!=":
		return boolInt(l != r), nil
	case "<":
		return boolInt(l < r), nil
	case ">":
		return boolInt(l > r), nil
	case "<=":
		return boolInt(l <= r), nil
	case ">=":
		return boolInt(l >= r), nil
	case "and":
		return boolInt(l != 0 && r != 0), nil
	case "or":
		return boolInt(l != 0 || r != 0), nil
	}
	return nil, diag.New(diag.KindUnsupportedOp, "unsupported operator %q on Int", op)
}

func floatBinOp(op string, l, r float32) (Value, error) {
	switch op {
	case "+":
		return NewFloat(l + r), nil
	case "-":
		return NewFloat(l - r), nil
	case "*":
		return NewFloat(l * r), nil
	case "/":
		return NewFloat(l / r), nil
	case "%":
		if int32(r) == 0 {
			return nil, diag.New(diag.KindUnsupportedOp, "modulo by zero")
		}
		return NewInt(int32(l) % int32(r)), nil
	case "==":
		return boolInt(l == r), nil
	case "!=":
		return boolInt(l != r), nil
	case "<":
		return boolInt(l < r), nil
	case ">":
		return boolInt(l > r), nil
	case "<=":
		return boolInt(l <= r), nil
	case ">=":
		return boolInt(l >= r), nil
	case "and":
		return boolInt(l != 0 && r != 0), nil
	case "or":
		return boolInt(l != 0 || r != 0), nil
	}
	return nil, diag.New(diag.KindUnsupportedOp, "unsupported operator %q on Float", op)
}

// AsFloat64 extracts a numeric value as a float64, accepting both Int and
// Float. It is not part of the capability contract (the contract only
// specifies GetInt/GetStr); host-binding code needs this to convert script
// numbers into arbitrary-width host float types.
func AsFloat64(v Value) (float64, error) {
	switch n := v.(type) {
	case *Int:
		return float64(n.V), nil
	case *Float:
		return float64(n.V), nil
	}
	return 0, diag.New(diag.KindTypeMismatch, "%s is not numeric", v.Type())
}

func boolInt(b bool) *Int {
	if b {
		return NewInt(1)
	}
	return NewInt(0)
}

// Str is a byte-sequence string value; the only supported binary operator is
// concatenation.
type Str struct {
	unsupported
	V string
}

func NewStr(v string) *Str { return &Str{unsupported{kind: "Str"}, v} }

func (*Str) Type() string    { return "Str" }
func (s *Str) Print() string { return fmt.Sprintf("%q", s.V) }

func (s *Str) GetStr() (string, error) { return s.V, nil }

func (s *Str) BinOp(op string, rhs Value) (Value, error) {
	if op != "+" {
		return nil, diag.New(diag.KindUnsupportedOp, "unsupported operator %q on Str", op)
	}
	r, ok := rhs.(*Str)
	if !ok {
		return nil, diag.New(diag.KindTypeMismatch, "incompatible operand for %q: Str and %s", op, rhs.Type())
	}
	return NewStr(s.V + r.V), nil
}
