/*
File    : slang/parser/parser.go
Package : parser

Package parser implements Slang's grammar with Pratt-style operator
precedence climbing, the same table-driven shape as the teacher's
parser.Parser (UnaryFuncs/BinaryFuncs registered in an init-like
constructor). Two differences from the teacher, both required by the
spec rather than stylistic: no parse-time constant folding (the
teacher's Env/Consts/LetVars type-locking is dropped — Slang's value
model only exists once an Environment does), and errors abort parsing
immediately instead of being collected, since spec §4.2 explicitly
says the parser does not attempt recovery.
*/
package parser

import (
	"strconv"

	"github.com/akashmaji946/slang/ast"
	"github.com/akashmaji946/slang/lexer"
	"github.com/akashmaji946/slang/token"
)

// Precedence levels, lowest to highest, per spec §4.2.
const (
	_ int = iota
	precLowest
	precAssign     // =, +=, -=, *=, /=
	precPublish    // ->
	precOr         // ||
	precAnd        // &&
	precEquality   // == !=
	precComparison // < <= > >=
	precAdditive   // + -
	precMultiplicative // * / %
	precPrefix     // unary - !
	precPostfix    // () [] . :: ++ --
)

var precedences = map[token.Kind]int{
	token.ASSIGN:       precAssign,
	token.PLUS_ASSIGN:  precAssign,
	token.MINUS_ASSIGN: precAssign,
	token.STAR_ASSIGN:  precAssign,
	token.SLASH_ASSIGN: precAssign,
	token.ARROW:        precPublish,
	token.OR:           precOr,
	token.AND:          precAnd,
	token.EQ:           precEquality,
	token.NE:           precEquality,
	token.LT:           precComparison,
	token.LE:           precComparison,
	token.GT:           precComparison,
	token.GE:           precComparison,
	token.PLUS:         precAdditive,
	token.MINUS:        precAdditive,
	token.STAR:         precMultiplicative,
	token.SLASH:        precMultiplicative,
	token.PCT:          precMultiplicative,
	token.LPAREN:       precPostfix,
	token.LBRACKET:     precPostfix,
	token.DOT:          precPostfix,
	token.DOUBLECOLON:  precPostfix,
	token.INC:          precPostfix,
	token.DEC:          precPostfix,
}

var assignOps = map[token.Kind]bool{
	token.ASSIGN: true, token.PLUS_ASSIGN: true, token.MINUS_ASSIGN: true,
	token.STAR_ASSIGN: true, token.SLASH_ASSIGN: true,
}

type prefixParseFn func() (ast.Expression, error)
type infixParseFn func(left ast.Expression) (ast.Expression, error)

// Parser turns a token stream into an *ast.Program.
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	peek token.Token

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

// New creates a Parser reading from lex and primes cur/peek.
func New(lex *lexer.Lexer) (*Parser, error) {
	p := &Parser{lex: lex}
	p.prefixFns = map[token.Kind]prefixParseFn{}
	p.infixFns = map[token.Kind]infixParseFn{}
	p.registerExpressionParsers()

	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

// expect verifies cur is already k and advances past it. Use when a
// caller deliberately advanced onto an expected token and now wants to
// consume it.
func (p *Parser) expect(k token.Kind) error {
	if !p.curIs(k) {
		return &ParseError{Message: "unexpected token " + string(p.cur.Kind), Pos: p.cur.Pos, Expected: k}
	}
	return p.advance()
}

// expectPeek verifies peek is k and advances, making it cur. Use right
// after parsing a sub-expression (where cur sits on the sub-
// expression's last token and the expected delimiter is still ahead).
func (p *Parser) expectPeek(k token.Kind) error {
	if !p.peekIs(k) {
		return &ParseError{Message: "unexpected token " + string(p.peek.Kind), Pos: p.peek.Pos, Expected: k}
	}
	return p.advance()
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Kind]; ok {
		return prec
	}
	return precLowest
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Kind]; ok {
		return prec
	}
	return precLowest
}

// ParseProgram parses the entire token stream into a Program. It stops
// and returns the first ParseError encountered.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		if err := p.advance(); err != nil { // move past stmt's last token
			return nil, err
		}
	}
	return prog, nil
}

func parseIntLiteral(lit string, pos token.Position) (*ast.IntLit, error) {
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, &ParseError{Message: "invalid integer literal " + lit, Pos: pos}
	}
	return &ast.IntLit{Position: pos, Value: v}, nil
}

func parseFloatLiteral(lit string, pos token.Position) (*ast.FloatLit, error) {
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, &ParseError{Message: "invalid float literal " + lit, Pos: pos}
	}
	return &ast.FloatLit{Position: pos, Value: v}, nil
}
