// Package parser implements a hand-written, precedence-climbing
// recursive-descent parser producing the internal/ast tree consumed by the
// evaluator.
package parser

import (
	"fmt"

	"github.com/go-ascript/ascript/internal/ast"
	"github.com/go-ascript/ascript/internal/diag"
	"github.com/go-ascript/ascript/internal/lexer"
	"github.com/go-ascript/ascript/internal/token"
)

// Parser turns a token stream into an AST.
type Parser struct {
	l    *lexer.Lexer
	file string
	src  string

	cur  token.Token
	peek token.Token
}

// New constructs a Parser over src, attributing diagnostics to file.
func New(file, src string) *Parser {
	p := &Parser{l: lexer.New(src), file: file, src: src}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

func (p *Parser) errorf(info ast.SourceInfo, format string, args ...any) error {
	return diag.Wrap(diag.New(diag.KindParseError, format, args...), info, p.file, p.src)
}

func (p *Parser) curInfo() ast.SourceInfo { return ast.FromToken(p.cur) }

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if p.cur.Type != t {
		return token.Token{}, p.errorf(p.curInfo(), "expected %s, got %q", t, p.cur.Literal)
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

// ParseProgram parses the whole input into a top-level block.
func (p *Parser) ParseProgram() (ast.Stat, error) {
	start := p.curInfo()
	var stats []ast.Stat
	for p.cur.Type != token.EOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return &ast.BlockStat{Base: ast.NewBase(start), Stats: stats}, nil
}

func (p *Parser) parseStatement() (ast.Stat, error) {
	var s ast.Stat
	var err error

	switch p.cur.Type {
	case token.LBRACE:
		s, err = p.parseBlock()
	case token.IF:
		s, err = p.parseIf()
	case token.WHILE:
		s, err = p.parseWhile()
	case token.FOR:
		s, err = p.parseFor()
	case token.RETURN:
		s, err = p.parseReturn()
	default:
		s, err = p.parseExprStatement()
	}
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.SEMI {
		p.advance()
	}
	return s, nil
}

func (p *Parser) parseBlock() (ast.Stat, error) {
	start := p.curInfo()
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stats []ast.Stat
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	end := p.curInfo()
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.BlockStat{Base: ast.NewBase(ast.Spanning(start, end)), Stats: stats}, nil
}

func (p *Parser) parseIf() (ast.Stat, error) {
	start := p.curInfo()
	p.advance() // if
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseStat ast.Stat
	if p.cur.Type == token.ELSE {
		p.advance()
		elseStat, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStat{Base: ast.NewBase(start), Cond: cond, Then: then, Else: elseStat}, nil
}

func (p *Parser) parseWhile() (ast.Stat, error) {
	start := p.curInfo()
	p.advance() // while
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStat{Base: ast.NewBase(start), Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stat, error) {
	start := p.curInfo()
	p.advance() // for
	parens := p.cur.Type == token.LPAREN
	if parens {
		p.advance()
	}
	id, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if parens {
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStat{Base: ast.NewBase(start), Ident: id.Literal, Iter: iter, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Stat, error) {
	start := p.curInfo()
	p.advance() // return
	if p.cur.Type == token.SEMI || p.cur.Type == token.RBRACE || p.cur.Type == token.EOF {
		return &ast.ReturnStat{Base: ast.NewBase(start)}, nil
	}
	v, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStat{Base: ast.NewBase(start), Value: v}, nil
}

var compoundOps = map[token.Type]ast.CompoundAssignOp{
	token.PLUS_EQ:  ast.CompoundAdd,
	token.MINUS_EQ: ast.CompoundSub,
	token.STAR_EQ:  ast.CompoundMul,
	token.SLASH_EQ: ast.CompoundDiv,
	token.PCT_EQ:   ast.CompoundMod,
}

func (p *Parser) parseExprStatement() (ast.Stat, error) {
	start := p.curInfo()
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	switch p.cur.Type {
	case token.ASSIGN:
		p.advance()
		rhs, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.AssignStat{Base: ast.NewBase(start), LHS: e, RHS: rhs}, nil

	case token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ, token.SLASH_EQ, token.PCT_EQ:
		op := compoundOps[p.cur.Type]
		p.advance()
		rhs, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.CompoundAssignStat{Base: ast.NewBase(start), LHS: e, Op: op, RHS: rhs}, nil
	}

	call, ok := e.(*ast.FuncCallExp)
	if !ok {
		return nil, p.errorf(start, "expected an assignment or a function call statement")
	}
	return &ast.FuncCallStat{Base: ast.NewBase(start), Call: call}, nil
}

// ---- Expressions ----

func (p *Parser) parseExpression() (ast.Exp, error) {
	return p.parseTernary()
}

func (p *Parser) parseTernary() (ast.Exp, error) {
	start := p.curInfo()
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.QUESTION {
		return cond, nil
	}
	p.advance()
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	els, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.TernaryExp{Base: ast.NewBase(start), Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseOr() (ast.Exp, error) {
	start := p.curInfo()
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.OR {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExp{Base: ast.NewBase(start), Op: "or", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Exp, error) {
	start := p.curInfo()
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.AND {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExp{Base: ast.NewBase(start), Op: "and", Left: left, Right: right}
	}
	return left, nil
}

var equalityOps = map[token.Type]string{token.EQ: "==", token.NOT_EQ: "!="}
var relationalOps = map[token.Type]string{
	token.LT: "<", token.GT: ">", token.LT_EQ: "<=", token.GT_EQ: ">=",
}
var additiveOps = map[token.Type]string{token.PLUS: "+", token.MINUS: "-"}
var multiplicativeOps = map[token.Type]string{token.STAR: "*", token.SLASH: "/", token.PERCENT: "%"}

func (p *Parser) parseEquality() (ast.Exp, error) {
	start := p.curInfo()
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := equalityOps[p.cur.Type]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExp{Base: ast.NewBase(start), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseRelational() (ast.Exp, error) {
	start := p.curInfo()
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := relationalOps[p.cur.Type]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExp{Base: ast.NewBase(start), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Exp, error) {
	start := p.curInfo()
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := additiveOps[p.cur.Type]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExp{Base: ast.NewBase(start), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (ast.Exp, error) {
	start := p.curInfo()
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := multiplicativeOps[p.cur.Type]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpExp{Base: ast.NewBase(start), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Exp, error) {
	start := p.curInfo()
	switch p.cur.Type {
	case token.MINUS:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnOpExp{Base: ast.NewBase(start), Op: "-", Operand: operand}, nil
	case token.NOT:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnOpExp{Base: ast.NewBase(start), Op: "not", Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Exp, error) {
	start := p.curInfo()
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case token.DOT:
			p.advance()
			name, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			if p.cur.Type == token.LPAREN {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				e = &ast.FuncCallExp{Base: ast.NewBase(start), Ctx: e, Name: name.Literal, Args: args}
			} else {
				e = &ast.MemberExp{Base: ast.NewBase(start), Target: e, Member: name.Literal}
			}
		case token.LBRACKET:
			p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			e = &ast.IndexExp{Base: ast.NewBase(start), Target: e, Index: idx}
		case token.LPAREN:
			id, ok := e.(*ast.IdExp)
			if !ok {
				return e, nil
			}
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			e = &ast.FuncCallExp{Base: ast.NewBase(start), Ctx: nil, Name: id.Name, Args: args}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parseArgs() ([]ast.Exp, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Exp
	if p.cur.Type == token.RPAREN {
		p.advance()
		return args, nil
	}
	for {
		a, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.cur.Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Exp, error) {
	start := p.curInfo()
	switch p.cur.Type {
	case token.INT:
		tok := p.cur
		p.advance()
		var v int64
		fmt.Sscanf(tok.Literal, "%d", &v)
		return &ast.IntExp{Base: ast.NewBase(start), Value: v}, nil

	case token.FLOAT:
		tok := p.cur
		p.advance()
		var v float64
		fmt.Sscanf(tok.Literal, "%g", &v)
		return &ast.FloatExp{Base: ast.NewBase(start), Value: v}, nil

	case token.STRING:
		tok := p.cur
		p.advance()
		return &ast.StrExp{Base: ast.NewBase(start), Value: tok.Literal}, nil

	case token.TRUE:
		p.advance()
		return &ast.IntExp{Base: ast.NewBase(start), Value: 1}, nil

	case token.FALSE:
		p.advance()
		return &ast.IntExp{Base: ast.NewBase(start), Value: 0}, nil

	case token.NONE:
		p.advance()
		return &ast.NoneExp{Base: ast.NewBase(start)}, nil

	case token.IDENT:
		tok := p.cur
		p.advance()
		return &ast.IdExp{Base: ast.NewBase(start), Name: tok.Literal}, nil

	case token.LPAREN:
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil

	case token.LBRACE:
		return p.parseMapDef()

	case token.LBRACKET:
		return p.parseListOrRangeDef()

	case token.FUNCTION:
		return p.parseFuncDef()
	}

	return nil, p.errorf(start, "unexpected token %q", p.cur.Literal)
}

func (p *Parser) parseMapDef() (ast.Exp, error) {
	start := p.curInfo()
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var entries []ast.MapEntry
	for p.cur.Type != token.RBRACE {
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.MapEntry{Key: name.Literal, Value: v})
		if p.cur.Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.MapDefExp{Base: ast.NewBase(start), Entries: entries}, nil
}

func (p *Parser) parseListOrRangeDef() (ast.Exp, error) {
	start := p.curInfo()
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	if p.cur.Type == token.RBRACKET {
		p.advance()
		return &ast.ListDefExp{Base: ast.NewBase(start)}, nil
	}

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.cur.Type == token.DOTDOT {
		p.advance()
		end, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		var step ast.Exp
		if p.cur.Type == token.DOTDOT {
			p.advance()
			step, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return &ast.RangeDefExp{Base: ast.NewBase(start), Beg: first, End: end, Step: step}, nil
	}

	elements := []ast.Exp{first}
	for p.cur.Type == token.COMMA {
		p.advance()
		if p.cur.Type == token.RBRACKET {
			break
		}
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ListDefExp{Base: ast.NewBase(start), Elements: elements}, nil
}

func (p *Parser) parseFuncDef() (ast.Exp, error) {
	start := p.curInfo()
	p.advance() // function
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for p.cur.Type != token.RPAREN {
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, name.Literal)
		if p.cur.Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDefExp{Base: ast.NewBase(start), Params: params, Body: body}, nil
}
