package parser

import (
	"github.com/akashmaji946/slang/ast"
	"github.com/akashmaji946/slang/token"
)

// parseStatement dispatches on the leading keyword, per spec §4.2:
// anything without a recognized leading keyword is parsed as an
// ExprStmt. Every branch returns with cur positioned on the
// statement's own last token (its trailing ';' if one was present),
// matching the same invariant expression parsing keeps.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Kind {
	case token.LET:
		return p.parseLet()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		return p.parseBreakStmt()
	case token.CONTINUE:
		return p.parseContinueStmt()
	case token.FUNCTION:
		return p.parseFunctionDecl(nil)
	case token.CLASS:
		return p.parseClassDecl()
	case token.NAMESPACE:
		return p.parseNamespaceDecl()
	case token.IMPORT:
		return p.parseImport()
	case token.TEST:
		return p.parseTest()
	case token.LBRACE:
		return p.parseBlockBody()
	case token.LPAREN:
		// A leading `(:Tag, …)` is a tag-set attached to the function
		// declaration that must follow it; a bare `(` otherwise starts
		// a grouped expression statement. Disambiguated on one token
		// of lookahead: only a literal tag immediately inside the
		// parens can start a tag-set, since a grouping expression's
		// first token would otherwise be any ordinary expression.
		if p.peekIs(token.TAG) {
			return p.parseTaggedFunctionDecl()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() (ast.Statement, error) {
	pos := p.cur.Pos
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.peekIs(token.SEMICOLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &ast.ExprStmt{Position: pos, Expr: expr}, nil
}

// parseBlock expects cur to sit just before the block's opening '{'
// (i.e. peek == '{') and consumes through the matching '}'.
func (p *Parser) parseBlock() (*ast.Block, error) {
	if err := p.expectPeek(token.LBRACE); err != nil {
		return nil, err
	}
	return p.parseBlockBody()
}

// parseBlockBody assumes cur is already the opening '{' (used both by
// parseBlock and directly for a bare `{ … }` statement).
func (p *Parser) parseBlockBody() (*ast.Block, error) {
	pos := p.cur.Pos
	block := &ast.Block{Position: pos}
	if err := p.advance(); err != nil { // cur = first stmt token or '}'
		return nil, err
	}
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.EOF) {
			return nil, &ParseError{Message: "unterminated block, expected '}'", Pos: p.cur.Pos, Expected: token.RBRACE}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
		if err := p.advance(); err != nil { // move past stmt's last token
			return nil, err
		}
	}
	return block, nil
}

func (p *Parser) parseLet() (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.expectPeek(token.IDENT); err != nil {
		return nil, err
	}
	name := p.cur.Literal
	if err := p.expectPeek(token.ASSIGN); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil { // cur = value start
		return nil, err
	}
	value, err := p.parseExpressionAt(precLowest)
	if err != nil {
		return nil, err
	}
	if p.peekIs(token.SEMICOLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &ast.Let{Position: pos, Name: name, Value: value}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
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
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Position: pos, Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.expectPeek(token.LPAREN); err != nil {
		return nil, err
	}

	var init ast.Statement
	if p.peekIs(token.SEMICOLON) {
		if err := p.advance(); err != nil { // cur = ';' (empty init)
			return nil, err
		}
	} else {
		if err := p.advance(); err != nil { // cur = init start
			return nil, err
		}
		var err error
		if p.curIs(token.LET) {
			init, err = p.parseLet()
		} else {
			init, err = p.parseExprStmt()
		}
		if err != nil {
			return nil, err
		}
		if !p.curIs(token.SEMICOLON) {
			return nil, &ParseError{Message: "expected ';' after for-loop init", Pos: p.cur.Pos, Expected: token.SEMICOLON}
		}
	}

	var cond ast.Expression
	if p.peekIs(token.SEMICOLON) {
		if err := p.advance(); err != nil { // cur = ';' (empty cond)
			return nil, err
		}
	} else {
		if err := p.advance(); err != nil { // cur = cond start
			return nil, err
		}
		var err error
		cond, err = p.parseExpressionAt(precLowest)
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.SEMICOLON); err != nil {
			return nil, err
		}
	}

	var post ast.Expression
	if p.peekIs(token.RPAREN) {
		if err := p.advance(); err != nil { // cur = ')' (empty post)
			return nil, err
		}
	} else {
		if err := p.advance(); err != nil { // cur = post start
			return nil, err
		}
		var err error
		post, err = p.parseExpressionAt(precLowest)
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.RPAREN); err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Position: pos, Init: init, Cond: cond, Post: post, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	pos := p.cur.Pos
	var value ast.Expression
	if !p.peekIs(token.SEMICOLON) && !p.peekIs(token.RBRACE) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var err error
		value, err = p.parseExpressionAt(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if p.peekIs(token.SEMICOLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &ast.Return{Position: pos, Value: value}, nil
}

func (p *Parser) parseBreakStmt() (ast.Statement, error) {
	pos := p.cur.Pos
	if p.peekIs(token.SEMICOLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &ast.Break{Position: pos}, nil
}

func (p *Parser) parseContinueStmt() (ast.Statement, error) {
	pos := p.cur.Pos
	if p.peekIs(token.SEMICOLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &ast.Continue{Position: pos}, nil
}

// parseFunctionDecl parses `function NAME(params) { body }`. tags is
// non-nil when a `(:Tag, …)` prefix preceded this declaration.
func (p *Parser) parseFunctionDecl(tags []string) (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.expectPeek(token.IDENT); err != nil {
		return nil, err
	}
	name := p.cur.Literal
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
	return &ast.FunctionDecl{Position: pos, Name: name, Params: params, Body: body, Tags: tags}, nil
}

// parseTaggedFunctionDecl parses the `(:Tag1, :Tag2) function NAME(...) {...}`
// subscription-prefix form. cur is the opening '(' of the tag-set.
func (p *Parser) parseTaggedFunctionDecl() (ast.Statement, error) {
	if err := p.advance(); err != nil { // cur = first TAG
		return nil, err
	}
	var tags []string
	for {
		if !p.curIs(token.TAG) {
			return nil, &ParseError{Message: "expected tag name in tag-set", Pos: p.cur.Pos, Expected: token.TAG}
		}
		tags = append(tags, p.cur.Literal)
		if p.peekIs(token.COMMA) {
			if err := p.advance(); err != nil { // cur = COMMA
				return nil, err
			}
			if err := p.advance(); err != nil { // cur = next TAG
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.FUNCTION); err != nil {
		return nil, err
	}
	return p.parseFunctionDecl(tags)
}

func (p *Parser) parseClassDecl() (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.expectPeek(token.IDENT); err != nil {
		return nil, err
	}
	name := p.cur.Literal
	if err := p.expectPeek(token.LBRACE); err != nil {
		return nil, err
	}
	var methods []*ast.FunctionDecl
	if err := p.advance(); err != nil { // cur = FUNCTION or '}'
		return nil, err
	}
	for !p.curIs(token.RBRACE) {
		if !p.curIs(token.FUNCTION) {
			return nil, &ParseError{Message: "class bodies may only contain method declarations", Pos: p.cur.Pos, Expected: token.FUNCTION}
		}
		decl, err := p.parseFunctionDecl(nil)
		if err != nil {
			return nil, err
		}
		methods = append(methods, decl.(*ast.FunctionDecl))
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &ast.ClassDecl{Position: pos, Name: name, Methods: methods}, nil
}

func (p *Parser) parseNamespaceDecl() (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.expectPeek(token.IDENT); err != nil {
		return nil, err
	}
	name := p.cur.Literal
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.NamespaceDecl{Position: pos, Name: name, Body: body}, nil
}

func (p *Parser) parseImport() (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.expectPeek(token.STRING); err != nil {
		return nil, err
	}
	path := p.cur.Literal
	if p.peekIs(token.SEMICOLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &ast.Import{Position: pos, Path: path}, nil
}

func (p *Parser) parseTest() (ast.Statement, error) {
	pos := p.cur.Pos
	if err := p.expectPeek(token.STRING); err != nil {
		return nil, err
	}
	desc := p.cur.Literal
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Test{Position: pos, Description: desc, Body: body}, nil
}
