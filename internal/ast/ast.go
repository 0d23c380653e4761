// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the evaluator.
package ast

import "github.com/go-ascript/ascript/internal/token"

// SourceInfo locates a node in its originating source text. Line == 0 means
// the node has no source origin (synthesized by the host, or unknown),
// matching the evaluator's rule that positionless errors omit source context.
type SourceInfo struct {
	Line       int
	Column     int
	StartIndex int
	EndIndex   int
}

// FromToken builds a SourceInfo spanning a single token.
func FromToken(t token.Token) SourceInfo {
	return SourceInfo{
		Line:       t.Pos.Line,
		Column:     t.Pos.Column,
		StartIndex: t.Pos.Offset,
		EndIndex:   t.End,
	}
}

// Spanning builds a SourceInfo covering from the start of a to the end of b.
func Spanning(a, b SourceInfo) SourceInfo {
	return SourceInfo{Line: a.Line, Column: a.Column, StartIndex: a.StartIndex, EndIndex: b.EndIndex}
}

// Node is the common interface implemented by every AST node.
type Node interface {
	Info() SourceInfo
}

// Stat is a statement node.
type Stat interface {
	Node
	statNode()
}

// Exp is an expression node.
type Exp interface {
	Node
	expNode()
}

// Base embeds source position bookkeeping shared by every node.
type Base struct {
	SrcInfo SourceInfo
}

func (b Base) Info() SourceInfo { return b.SrcInfo }

// ---- Statements ----

// AssignStat assigns the value of RHS to the l-value denoted by LHS.
type AssignStat struct {
	Base
	LHS Exp
	RHS Exp
}

func (*AssignStat) statNode() {}

// CompoundAssignOp identifies the operator of a compound assignment.
type CompoundAssignOp string

const (
	CompoundAdd CompoundAssignOp = "+="
	CompoundSub CompoundAssignOp = "-="
	CompoundMul CompoundAssignOp = "*="
	CompoundDiv CompoundAssignOp = "/="
	CompoundMod CompoundAssignOp = "%="
)

// CompoundAssignStat applies Op to the current value of LHS and RHS, storing
// the result back into LHS. Unlike AssignStat, it never passes through the
// host-binding write-through path for Extern l-values.
type CompoundAssignStat struct {
	Base
	LHS Exp
	Op  CompoundAssignOp
	RHS Exp
}

func (*CompoundAssignStat) statNode() {}

// IfStat is a conditional with an optional else branch.
type IfStat struct {
	Base
	Cond Exp
	Then Stat
	Else Stat // nil if no else clause
}

func (*IfStat) statNode() {}

// BlockStat is a sequence of statements executed in order; execution stops
// early once a ReturnStat has set the enclosing call's return slot.
type BlockStat struct {
	Base
	Stats []Stat
}

func (*BlockStat) statNode() {}

// WhileStat loops Body while Cond is true.
type WhileStat struct {
	Base
	Cond Exp
	Body Stat
}

func (*WhileStat) statNode() {}

// ForStat iterates Ident over Iter, writing each element into Ident in the
// enclosing scope (no fresh scope is introduced per iteration).
type ForStat struct {
	Base
	Ident string
	Iter  Exp
	Body  Stat
}

func (*ForStat) statNode() {}

// FuncCallStat evaluates a function call expression and discards its result.
type FuncCallStat struct {
	Base
	Call *FuncCallExp
}

func (*FuncCallStat) statNode() {}

// ReturnStat sets the current call's return slot. Value may be nil, meaning
// "return none".
type ReturnStat struct {
	Base
	Value Exp
}

func (*ReturnStat) statNode() {}

// ---- Expressions ----

// IntExp is an integer literal.
type IntExp struct {
	Base
	Value int64
}

func (*IntExp) expNode() {}

// FloatExp is a floating-point literal.
type FloatExp struct {
	Base
	Value float64
}

func (*FloatExp) expNode() {}

// NoneExp is the literal none.
type NoneExp struct {
	Base
}

func (*NoneExp) expNode() {}

// StrExp is a string literal.
type StrExp struct {
	Base
	Value string
}

func (*StrExp) expNode() {}

// IdExp references a variable by name.
type IdExp struct {
	Base
	Name string
}

func (*IdExp) expNode() {}

// BinOpExp is a binary operator application.
type BinOpExp struct {
	Base
	Op    string
	Left  Exp
	Right Exp
}

func (*BinOpExp) expNode() {}

// UnOpExp is a unary operator application ("-" or "not").
type UnOpExp struct {
	Base
	Op      string
	Operand Exp
}

func (*UnOpExp) expNode() {}

// MapEntry is one key/value pair in a MapDefExp, preserving source order.
type MapEntry struct {
	Key   string
	Value Exp
}

// MapDefExp constructs a map literal, preserving key insertion order.
type MapDefExp struct {
	Base
	Entries []MapEntry
}

func (*MapDefExp) expNode() {}

// ListDefExp constructs a list literal.
type ListDefExp struct {
	Base
	Elements []Exp
}

func (*ListDefExp) expNode() {}

// RangeDefExp constructs a range value (beg..end, or beg..end..step).
type RangeDefExp struct {
	Base
	Beg  Exp
	End  Exp
	Step Exp // nil means step of 1
}

func (*RangeDefExp) expNode() {}

// FuncDefExp constructs a function literal.
type FuncDefExp struct {
	Base
	Params []string
	Body   Stat
}

func (*FuncDefExp) expNode() {}

// FuncCallExp calls a function, optionally against an explicit receiver
// (Ctx != nil for member-style calls like list.length()).
type FuncCallExp struct {
	Base
	Ctx  Exp // nil for a bare call
	Name string
	Args []Exp
}

func (*FuncCallExp) expNode() {}

// IndexExp indexes a list or range by an integer expression.
type IndexExp struct {
	Base
	Target Exp
	Index  Exp
}

func (*IndexExp) expNode() {}

// MemberExp accesses a named member of a map-like value.
type MemberExp struct {
	Base
	Target Exp
	Member string
}

func (*MemberExp) expNode() {}

// TernaryExp is the conditional expression cond ? then : else.
type TernaryExp struct {
	Base
	Cond Exp
	Then Exp
	Else Exp
}

func (*TernaryExp) expNode() {}

// NewBase constructs the embeddable Base with the given SourceInfo.
func NewBase(info SourceInfo) Base { return Base{SrcInfo: info} }
