// Package diag formats interpreter failures into compiler-style diagnostics.
package diag

import (
	"fmt"
	"strings"

	"github.com/go-ascript/ascript/internal/ast"
)

// Kind classifies the cause of an InterpreterError.
type Kind string

// Error kinds raised during parsing and evaluation.
const (
	KindUnsupportedOp     Kind = "UnsupportedOp"
	KindTypeMismatch      Kind = "TypeMismatch"
	KindIncompatibleTypes Kind = "IncompatibleTypes"
	KindArityMismatch     Kind = "ArityMismatch"
	KindUnknownMethod     Kind = "UnknownMethod"
	KindUnknownVariable   Kind = "UnknownVariable"
	KindNonAssignable     Kind = "NonAssignable"
	KindNotIterable       Kind = "NotIterable"
	KindNotACondition     Kind = "NotACondition"
	KindReservedParam     Kind = "ReservedParam"
	KindAssertionFailed   Kind = "AssertionFailed"
	KindParseError        Kind = "ParseError"
	KindInternalError     Kind = "InternalError"
	// KindIndexOutOfRange has no direct counterpart in the original source's
	// error table; bounds-checking a List index needs a kind of its own, so
	// this extends the table rather than overloading NonAssignable.
	KindIndexOutOfRange Kind = "IndexOutOfRange"
	// KindCallDepthExceeded has no original-source counterpart either: the
	// reference implementation recurses the host call stack directly and
	// simply crashes past its limit. A function-call nesting guard needs a
	// catchable diagnostic of its own rather than reusing InternalError.
	KindCallDepthExceeded Kind = "CallDepthExceeded"
)

// Error is the single error type that crosses the evaluator boundary. The
// first node to catch and decorate it wins: a Pos already set is left alone,
// so the innermost (most specific) expression's span survives propagation.
type Error struct {
	Kind    Kind
	Message string

	Pos    *ast.SourceInfo
	File   string
	Source string
}

// Error returns the full Format() diagnostic once a position has been
// attached, and the bare message before that.
func (e *Error) Error() string {
	if e.Pos == nil {
		return e.Message
	}
	return e.Format()
}

// New creates an undecorated Error of the given Kind. It carries no position
// until a caller Wraps it with one.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap decorates err with file/source/position, unless it is already an
// *Error carrying a position — the deepest wrap keeps its span.
func Wrap(err error, info ast.SourceInfo, file, source string) error {
	if err == nil {
		return nil
	}
	ie, ok := err.(*Error)
	if !ok {
		ie = &Error{Kind: KindInternalError, Message: err.Error()}
	}
	if ie.Pos == nil {
		pos := info
		ie.Pos = &pos
		ie.File = file
		ie.Source = source
	}
	return ie
}

// Format renders the three-line compiler-style diagnostic described by the
// embedding contract: a header naming file/position/message, the quoted
// source line (when a position is known), and a caret-plus-tildes span
// underneath it.
func (e *Error) Format() string {
	var sb strings.Builder

	sb.WriteString(e.File)
	sb.WriteString(":")
	if e.Pos != nil && e.Pos.Line != 0 {
		fmt.Fprintf(&sb, "%d:%d:", e.Pos.Line, e.Pos.Column)
	}
	sb.WriteString("error: ")
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	if e.Pos != nil && e.Pos.Line != 0 {
		line := sourceLine(e.Source, e.Pos.Line)
		sb.WriteString(line)
		sb.WriteString("\n")

		for i := 1; i < e.Pos.Column; i++ {
			sb.WriteString(" ")
		}
		sb.WriteString("^")

		tildeLen := e.Pos.EndIndex - e.Pos.StartIndex
		maxLen := len([]rune(line)) - e.Pos.Column
		if tildeLen > maxLen {
			tildeLen = maxLen
		}
		for i := 0; i < tildeLen; i++ {
			sb.WriteString("~")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// sourceLine returns the n'th (1-indexed) line of source, or "" if n is out
// of range.
func sourceLine(source string, n int) string {
	lines := strings.Split(source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}
