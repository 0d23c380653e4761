// Package lexer scans script source text into a stream of tokens.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/go-ascript/ascript/internal/token"
)

// Lexer is a hand-written scanner over UTF-8 source text.
//
// Column positions are rune counts from the start of the line, not byte
// offsets: multi-byte runes each count as one column, matching how an
// editor reports cursor position.
type Lexer struct {
	input        string
	position     int // byte offset of ch
	readPosition int // byte offset of the next rune
	line         int
	column       int
	ch           rune
}

// New creates a Lexer over src, stripping a leading UTF-8 BOM if present.
func New(src string) *Lexer {
	src = StripBOM(src)
	l := &Lexer{input: src, line: 1, column: 0}
	l.advance()
	return l
}

// StripBOM removes a leading byte-order-mark, if any, using the same
// BOM-sniffing transform x/text uses for encoding-agnostic text ingestion.
// Source text reaching the lexer is always UTF-8 already; this only peels
// off a stray leading BOM a host editor or file write may have left behind.
func StripBOM(src string) string {
	t := xunicode.BOMOverride(xunicode.UTF8.NewDecoder())
	result, _, err := transform.String(t, src)
	if err != nil {
		return src
	}
	return result
}

func (l *Lexer) advance() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.position = l.readPosition
	l.readPosition += size
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.column++
	l.ch = r
}

func (l *Lexer) peek() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		default:
			return
		}
	}
}

// Next scans and returns the next token in the stream.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	pos := token.Position{Line: l.line, Column: l.column, Offset: l.position}

	if l.ch == 0 {
		return token.Token{Type: token.EOF, Literal: "", Pos: pos, End: l.position}
	}

	switch {
	case isLetter(l.ch):
		return l.scanIdent(pos)
	case isDigit(l.ch):
		return l.scanNumber(pos)
	case l.ch == '"' || l.ch == '\'':
		return l.scanString(pos)
	}

	ch := l.ch
	mk := func(t token.Type, lit string) token.Token {
		return token.Token{Type: t, Literal: lit, Pos: pos, End: l.position}
	}

	two := func(next rune, withNext token.Type, withNextLit string, without token.Type, withoutLit string) token.Token {
		if l.peek() == next {
			l.advance()
			l.advance()
			return mk(withNext, withNextLit)
		}
		l.advance()
		return mk(without, withoutLit)
	}

	switch ch {
	case '+':
		return two('=', token.PLUS_EQ, "+=", token.PLUS, "+")
	case '-':
		return two('=', token.MINUS_EQ, "-=", token.MINUS, "-")
	case '*':
		return two('=', token.STAR_EQ, "*=", token.STAR, "*")
	case '/':
		return two('=', token.SLASH_EQ, "/=", token.SLASH, "/")
	case '%':
		return two('=', token.PCT_EQ, "%=", token.PERCENT, "%")
	case '=':
		return two('=', token.EQ, "==", token.ASSIGN, "=")
	case '!':
		return two('=', token.NOT_EQ, "!=", token.ILLEGAL, "!")
	case '<':
		return two('=', token.LT_EQ, "<=", token.LT, "<")
	case '>':
		return two('=', token.GT_EQ, ">=", token.GT, ">")
	case '(':
		l.advance()
		return mk(token.LPAREN, "(")
	case ')':
		l.advance()
		return mk(token.RPAREN, ")")
	case '{':
		l.advance()
		return mk(token.LBRACE, "{")
	case '}':
		l.advance()
		return mk(token.RBRACE, "}")
	case '[':
		l.advance()
		return mk(token.LBRACKET, "[")
	case ']':
		l.advance()
		return mk(token.RBRACKET, "]")
	case ',':
		l.advance()
		return mk(token.COMMA, ",")
	case ':':
		l.advance()
		return mk(token.COLON, ":")
	case '.':
		if l.peek() == '.' {
			l.advance()
			l.advance()
			return mk(token.DOTDOT, "..")
		}
		l.advance()
		return mk(token.DOT, ".")
	case '?':
		l.advance()
		return mk(token.QUESTION, "?")
	case ';':
		l.advance()
		return mk(token.SEMI, ";")
	default:
		l.advance()
		return mk(token.ILLEGAL, string(ch))
	}
}

func (l *Lexer) scanIdent(pos token.Position) token.Token {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.advance()
	}
	lit := l.input[start:l.position]
	return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos, End: l.position}
}

func (l *Lexer) scanNumber(pos token.Position) token.Token {
	start := l.position
	isFloat := false
	for isDigit(l.ch) {
		l.advance()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		isFloat = true
		l.advance()
		for isDigit(l.ch) {
			l.advance()
		}
	}
	lit := l.input[start:l.position]
	if isFloat {
		return token.Token{Type: token.FLOAT, Literal: lit, Pos: pos, End: l.position}
	}
	return token.Token{Type: token.INT, Literal: lit, Pos: pos, End: l.position}
}

func (l *Lexer) scanString(pos token.Position) token.Token {
	quote := l.ch
	l.advance() // consume opening quote
	var sb strings.Builder
	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.advance()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case '\\':
				sb.WriteRune('\\')
			case '"':
				sb.WriteRune('"')
			case '\'':
				sb.WriteRune('\'')
			default:
				sb.WriteRune(l.ch)
			}
			l.advance()
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	if l.ch == quote {
		l.advance() // consume closing quote
	}
	return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos, End: l.position}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}
