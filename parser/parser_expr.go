package parser

import (
	"github.com/akashmaji946/slang/ast"
	"github.com/akashmaji946/slang/token"
)

func (p *Parser) registerExpressionParsers() {
	p.prefixFns[token.INT] = p.parseIntLit
	p.prefixFns[token.FLOAT] = p.parseFloatLit
	p.prefixFns[token.STRING] = p.parseStringLit
	p.prefixFns[token.TRUE] = p.parseBoolLit
	p.prefixFns[token.FALSE] = p.parseBoolLit
	p.prefixFns[token.NULL] = p.parseNullLit
	p.prefixFns[token.IDENT] = p.parseIdentifier
	p.prefixFns[token.THIS] = p.parseThis
	p.prefixFns[token.TAG] = p.parseTagLit
	p.prefixFns[token.LPAREN] = p.parseGroupedExpr
	p.prefixFns[token.LBRACKET] = p.parseArrayLit
	p.prefixFns[token.LBRACE] = p.parseObjectLit
	p.prefixFns[token.MINUS] = p.parsePrefixExpr
	p.prefixFns[token.BANG] = p.parsePrefixExpr
	p.prefixFns[token.FN] = p.parseFunctionLit
	p.prefixFns[token.FUNCTION] = p.parseFunctionLit
	p.prefixFns[token.NEW] = p.parseNew
	p.prefixFns[token.IF] = p.parseIfExpr

	p.infixFns[token.PLUS] = p.parseInfix
	p.infixFns[token.MINUS] = p.parseInfix
	p.infixFns[token.STAR] = p.parseInfix
	p.infixFns[token.SLASH] = p.parseInfix
	p.infixFns[token.PCT] = p.parseInfix
	p.infixFns[token.EQ] = p.parseInfix
	p.infixFns[token.NE] = p.parseInfix
	p.infixFns[token.LT] = p.parseInfix
	p.infixFns[token.LE] = p.parseInfix
	p.infixFns[token.GT] = p.parseInfix
	p.infixFns[token.GE] = p.parseInfix
	p.infixFns[token.AND] = p.parseInfix
	p.infixFns[token.OR] = p.parseInfix
	p.infixFns[token.ASSIGN] = p.parseAssign
	p.infixFns[token.PLUS_ASSIGN] = p.parseAssign
	p.infixFns[token.MINUS_ASSIGN] = p.parseAssign
	p.infixFns[token.STAR_ASSIGN] = p.parseAssign
	p.infixFns[token.SLASH_ASSIGN] = p.parseAssign
	p.infixFns[token.LPAREN] = p.parseCall
	p.infixFns[token.LBRACKET] = p.parseIndex
	p.infixFns[token.DOT] = p.parseMemberOrMethodCall
	p.infixFns[token.DOUBLECOLON] = p.parseNamespaceAccess
	p.infixFns[token.INC] = p.parsePostfix
	p.infixFns[token.DEC] = p.parsePostfix
}

// parseExpression is the single entry point into expression parsing.
// It wraps the Pratt climb with the publish-chain's special leading
// comma-list rule (spec §4.2): a comma-separated list of expressions
// is only legal immediately before a `->`.
func (p *Parser) parseExpression() (ast.Expression, error) {
	first, err := p.parseExpressionAt(precLowest)
	if err != nil {
		return nil, err
	}

	if p.peekIs(token.COMMA) {
		list := []ast.Expression{first}
		for p.peekIs(token.COMMA) {
			if err := p.advance(); err != nil { // cur = COMMA
				return nil, err
			}
			if err := p.advance(); err != nil { // cur = start of next expr
				return nil, err
			}
			next, err := p.parseExpressionAt(precLowest)
			if err != nil {
				return nil, err
			}
			list = append(list, next)
		}
		if !p.peekIs(token.ARROW) {
			return nil, &ParseError{Message: "comma-separated expressions are only valid directly before '->'", Pos: p.peek.Pos}
		}
		if err := p.advance(); err != nil { // cur = ARROW
			return nil, err
		}
		return p.parsePublishChain(list)
	}

	if p.peekIs(token.ARROW) {
		if err := p.advance(); err != nil { // cur = ARROW
			return nil, err
		}
		return p.parsePublishChain([]ast.Expression{first})
	}

	return first, nil
}

func (p *Parser) parseExpressionAt(precedence int) (ast.Expression, error) {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		return nil, &ParseError{Message: "unexpected token " + string(p.cur.Kind) + " in expression position", Pos: p.cur.Pos}
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peek.Kind]
		if !ok {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parsePublishChain(initial []ast.Expression) (ast.Expression, error) {
	pos := p.cur.Pos
	var tags []string
	for {
		if err := p.advance(); err != nil { // cur = TAG
			return nil, err
		}
		if !p.curIs(token.TAG) {
			return nil, &ParseError{Message: "expected tag after '->'", Pos: p.cur.Pos, Expected: token.TAG}
		}
		tags = append(tags, p.cur.Literal)
		if !p.peekIs(token.ARROW) {
			break
		}
		if err := p.advance(); err != nil { // cur = ARROW, continue loop
			return nil, err
		}
	}
	return &ast.PublishChain{Position: pos, Initial: initial, Tags: tags}, nil
}

func (p *Parser) parseIntLit() (ast.Expression, error) {
	return parseIntLiteral(p.cur.Literal, p.cur.Pos)
}

func (p *Parser) parseFloatLit() (ast.Expression, error) {
	return parseFloatLiteral(p.cur.Literal, p.cur.Pos)
}

func (p *Parser) parseStringLit() (ast.Expression, error) {
	return &ast.StringLit{Position: p.cur.Pos, Value: p.cur.Literal}, nil
}

func (p *Parser) parseBoolLit() (ast.Expression, error) {
	return &ast.BoolLit{Position: p.cur.Pos, Value: p.cur.Kind == token.TRUE}, nil
}

func (p *Parser) parseNullLit() (ast.Expression, error) {
	return &ast.NullLit{Position: p.cur.Pos}, nil
}

func (p *Parser) parseIdentifier() (ast.Expression, error) {
	return &ast.Identifier{Position: p.cur.Pos, Name: p.cur.Literal}, nil
}

func (p *Parser) parseThis() (ast.Expression, error) {
	return &ast.This{Position: p.cur.Pos}, nil
}

func (p *Parser) parseTagLit() (ast.Expression, error) {
	return &ast.TagLit{Position: p.cur.Pos, Name: p.cur.Literal}, nil
}

func (p *Parser) parseGroupedExpr() (ast.Expression, error) {
	if err := p.advance(); err != nil { // cur = first token inside parens
		return nil, err
	}
	expr, err := p.parseExpressionAt(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseArrayLit() (ast.Expression, error) {
	pos := p.cur.Pos
	elems, err := p.parseExpressionList(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayLit{Position: pos, Elements: elems}, nil
}

// parseExpressionList parses a comma-separated list of expressions up
// to and including the closing token, leaving cur on that closer.
func (p *Parser) parseExpressionList(closer token.Kind) ([]ast.Expression, error) {
	var list []ast.Expression
	if err := p.advance(); err != nil { // consume opener
		return nil, err
	}
	if p.curIs(closer) {
		return list, nil
	}
	for {
		expr, err := p.parseExpressionAt(precLowest)
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if p.peekIs(token.COMMA) {
			if err := p.advance(); err != nil { // cur = COMMA
				return nil, err
			}
			if err := p.advance(); err != nil { // cur = next expr start
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPeek(closer); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parseObjectLit() (ast.Expression, error) {
	pos := p.cur.Pos
	var entries []ast.ObjectEntry
	if err := p.advance(); err != nil { // consume '{', cur = first key or '}'
		return nil, err
	}
	for !p.curIs(token.RBRACE) {
		var key string
		switch p.cur.Kind {
		case token.IDENT, token.STRING:
			key = p.cur.Literal
		default:
			return nil, &ParseError{Message: "object literal keys must be identifiers or strings", Pos: p.cur.Pos}
		}
		if err := p.expectPeek(token.COLON); err != nil { // cur = ':'
			return nil, err
		}
		if err := p.advance(); err != nil { // cur = value start
			return nil, err
		}
		value, err := p.parseExpressionAt(precLowest)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.ObjectEntry{Key: key, Value: value})
		if p.peekIs(token.COMMA) {
			if err := p.advance(); err != nil { // cur = COMMA
				return nil, err
			}
			if err := p.advance(); err != nil { // cur = next key start
				return nil, err
			}
			continue
		}
		if err := p.expectPeek(token.RBRACE); err != nil {
			return nil, err
		}
		break
	}
	return &ast.ObjectLit{Position: pos, Entries: entries}, nil
}

func (p *Parser) parsePrefixExpr() (ast.Expression, error) {
	pos := p.cur.Pos
	op := p.cur.Kind
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExpressionAt(precPrefix)
	if err != nil {
		return nil, err
	}
	return &ast.Prefix{Position: pos, Op: op, Right: right}, nil
}

func (p *Parser) parseInfix(left ast.Expression) (ast.Expression, error) {
	pos := p.cur.Pos
	op := p.cur.Kind
	prec := p.curPrecedence()
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExpressionAt(prec)
	if err != nil {
		return nil, err
	}
	return &ast.Infix{Position: pos, Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseAssign(left ast.Expression) (ast.Expression, error) {
	pos := p.cur.Pos
	op := p.cur.Kind
	if !isLValue(left) {
		return nil, &ParseError{Message: "invalid assignment target", Pos: pos}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	// Right-associative: recurse one level below precAssign so a
	// nested `=`/`+=`/... on the right is itself consumed here rather
	// than by the caller's loop.
	right, err := p.parseExpressionAt(precAssign - 1)
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Position: pos, Op: op, Target: left, Value: right}, nil
}

func isLValue(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.Index, *ast.Member:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePostfix(left ast.Expression) (ast.Expression, error) {
	pos := p.cur.Pos
	op := p.cur.Kind
	if !isLValue(left) {
		return nil, &ParseError{Message: "invalid postfix target", Pos: pos}
	}
	return &ast.Postfix{Position: pos, Op: op, Target: left}, nil
}

func (p *Parser) parseCall(callee ast.Expression) (ast.Expression, error) {
	pos := p.cur.Pos
	args, err := p.parseExpressionList(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.Call{Position: pos, Callee: callee, Args: args}, nil
}

func (p *Parser) parseIndex(target ast.Expression) (ast.Expression, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // cur = index expr start
		return nil, err
	}
	idx, err := p.parseExpressionAt(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.Index{Position: pos, Target: target, Index: idx}, nil
}

// parseMemberOrMethodCall handles `.name` and, when immediately
// followed by `(`, folds it into a MethodCall so the evaluator can
// bind `this` without re-deriving it from a generic Call-of-Member.
func (p *Parser) parseMemberOrMethodCall(target ast.Expression) (ast.Expression, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // cur = field name
		return nil, err
	}
	if !p.curIs(token.IDENT) {
		return nil, &ParseError{Message: "expected identifier after '.'", Pos: p.cur.Pos, Expected: token.IDENT}
	}
	name := p.cur.Literal
	if p.peekIs(token.LPAREN) {
		if err := p.advance(); err != nil { // cur = '('
			return nil, err
		}
		args, err := p.parseExpressionList(token.RPAREN)
		if err != nil {
			return nil, err
		}
		return &ast.MethodCall{Position: pos, Receiver: target, Name: name, Args: args}, nil
	}
	return &ast.Member{Position: pos, Target: target, Name: name}, nil
}

func (p *Parser) parseNamespaceAccess(left ast.Expression) (ast.Expression, error) {
	pos := p.cur.Pos
	ident, ok := left.(*ast.Identifier)
	if !ok {
		return nil, &ParseError{Message: "'::' may only follow a namespace identifier", Pos: pos}
	}
	if err := p.advance(); err != nil { // cur = member name
		return nil, err
	}
	if !p.curIs(token.IDENT) {
		return nil, &ParseError{Message: "expected identifier after '::'", Pos: p.cur.Pos, Expected: token.IDENT}
	}
	return &ast.NamespaceAccess{Position: pos, Namespace: ident.Name, Member: p.cur.Literal}, nil
}

func (p *Parser) parseNew() (ast.Expression, error) {
	pos := p.cur.Pos
	if err := p.expectPeek(token.IDENT); err != nil { // cur = class name
		return nil, err
	}
	name := p.cur.Literal
	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}
	args, err := p.parseExpressionList(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.New{Position: pos, ClassName: name, Args: args}, nil
}

func (p *Parser) parseFunctionLit() (ast.Expression, error) {
	pos := p.cur.Pos
	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionLit{Position: pos, Params: params, Body: body}, nil
}

// parseParamList parses a parenthesized, comma-separated parameter
// list. It expects cur to already be the opening '(' and returns with
// cur on the closing ')'.
func (p *Parser) parseParamList() ([]string, error) {
	if !p.curIs(token.LPAREN) {
		return nil, &ParseError{Message: "expected '(' to start parameter list", Pos: p.cur.Pos, Expected: token.LPAREN}
	}
	var params []string
	if p.peekIs(token.RPAREN) {
		return params, p.advance()
	}
	if err := p.advance(); err != nil { // cur = first param name
		return nil, err
	}
	for {
		if !p.curIs(token.IDENT) {
			return nil, &ParseError{Message: "expected parameter name", Pos: p.cur.Pos, Expected: token.IDENT}
		}
		params = append(params, p.cur.Literal)
		if p.peekIs(token.COMMA) {
			if err := p.advance(); err != nil { // cur = COMMA
				return nil, err
			}
			if err := p.advance(); err != nil { // cur = next param name
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// parseIfExpr handles `if` in expression position: blocks are
// expression-valued per spec §4.4, so a statement-level `if` is simply
// an ExprStmt wrapping this node.
func (p *Parser) parseIfExpr() (ast.Expression, error) {
	pos := p.cur.Pos
	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil { // cur = cond start
		return nil, err
	}
	cond, err := p.parseExpressionAt(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseBlock() // expects peek == '{'
	if err != nil {
		return nil, err
	}
	node := &ast.If{Position: pos, Cond: cond, Then: then}
	if p.peekIs(token.ELSE) {
		if err := p.advance(); err != nil { // cur = ELSE
			return nil, err
		}
		if p.peekIs(token.IF) {
			if err := p.advance(); err != nil { // cur = IF
				return nil, err
			}
			elseExpr, err := p.parseIfExpr()
			if err != nil {
				return nil, err
			}
			node.Else = elseExpr
		} else {
			blockPos := p.peek.Pos
			block, err := p.parseBlock() // expects peek == '{'
			if err != nil {
				return nil, err
			}
			node.Else = &ast.BlockExpr{Position: blockPos, Block: block}
		}
	}
	return node, nil
}
