package value

import "strings"

// Map is an ordered Name→Value mapping. It is the only value kind that also
// serves as a lexical scope. Go's built-in map does not preserve insertion
// order, so key order is tracked explicitly alongside the backing map.
type Map struct {
	unsupported
	keys []string
	vals map[string]Value
}

// NewMap constructs an empty, ordered map.
func NewMap() *Map {
	return &Map{unsupported: unsupported{kind: "Map"}, vals: make(map[string]Value)}
}

func (*Map) Type() string { return "Map" }

func (m *Map) Print() string {
	var sb strings.Builder
	sb.WriteString("{")
	for _, k := range m.keys {
		sb.WriteString(k)
		sb.WriteString(":")
		sb.WriteString(m.vals[k].Print())
		sb.WriteString(";")
	}
	sb.WriteString("}")
	return sb.String()
}

// Keys returns the map's keys in insertion order. The returned slice must
// not be mutated by callers.
func (m *Map) Keys() []string { return m.keys }

// Has reports whether name is bound, without auto-vivifying it.
func (m *Map) Has(name string) bool {
	_, ok := m.vals[name]
	return ok
}

// Define binds name to v, appending it to the key order if new. Used for
// parameter binding and literal construction, where no auto-vivification
// semantics apply.
func (m *Map) Define(name string, v Value) {
	if _, ok := m.vals[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.vals[name] = v
}

// Get reads name, auto-vivifying it to None if absent.
func (m *Map) Get(name string) (Value, error) {
	if v, ok := m.vals[name]; ok {
		return v, nil
	}
	m.Define(name, NewNone())
	return m.vals[name], nil
}

// GetRef returns an assignable Slot for name, auto-vivifying it to None if
// absent.
func (m *Map) GetRef(name string) (Slot, error) {
	if _, ok := m.vals[name]; !ok {
		m.Define(name, NewNone())
	}
	return NewSlot(
		func() Value { return m.vals[name] },
		func(v Value) { m.vals[name] = v },
	), nil
}
