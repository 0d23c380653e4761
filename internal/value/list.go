package value

import "strings"

// List is an ordered, resizable sequence of values, shared by reference like
// Map.
type List struct {
	unsupported
	elems []Value
}

// NewList constructs a List from the given elements (taken by reference, not
// copied).
func NewList(elems []Value) *List {
	return &List{unsupported: unsupported{kind: "List"}, elems: elems}
}

func (*List) Type() string { return "List" }

func (l *List) Print() string {
	var sb strings.Builder
	sb.WriteString("[")
	for _, v := range l.elems {
		sb.WriteString(v.Print())
		sb.WriteString(",")
	}
	sb.WriteString("]")
	return sb.String()
}

func (l *List) Length() (int, error) { return len(l.elems), nil }

func (l *List) At(i int) (Value, error) {
	if i < 0 || i >= len(l.elems) {
		return nil, indexOutOfRange(i, len(l.elems))
	}
	return l.elems[i], nil
}

func (l *List) AtRef(i int) (Slot, error) {
	if i < 0 || i >= len(l.elems) {
		return Slot{}, indexOutOfRange(i, len(l.elems))
	}
	return NewSlot(
		func() Value { return l.elems[i] },
		func(v Value) { l.elems[i] = v },
	), nil
}

// Call implements the single built-in method lists expose to script code.
func (l *List) Call(name string, args []Value) (Value, error) {
	if name == "length" {
		return NewInt(int32(len(l.elems))), nil
	}
	return l.unsupported.Call(name, args)
}

// Elements exposes the backing slice for iteration (e.g. by the
// host-binding slice converters and JSON.Stringify). Callers must not retain it past
// any mutation of the list.
func (l *List) Elements() []Value { return l.elems }

// Append grows the list by one element.
func (l *List) Append(v Value) { l.elems = append(l.elems, v) }
