/*
File    : slang/lexer/lexer.go
Package : lexer

Package lexer turns Slang source text into a stream of token.Token
values. It is a single-pass, byte-at-a-time scanner modeled on the
classic hand-written scanner shape: a Current byte, a Position index,
and Peek/Advance primitives that every token-recognizing branch builds
on. Line/column tracking is maintained incrementally so every token and
every LexError carries a source position.
*/
package lexer

import (
	"strings"
	"unicode"

	"github.com/akashmaji946/slang/token"
)

// Lexer scans Slang source code one byte at a time.
type Lexer struct {
	src       string
	current   byte
	position  int
	srcLength int
	line      int
	column    int
}

// New creates a Lexer positioned at the start of src.
func New(src string) *Lexer {
	lex := &Lexer{
		src:       src,
		srcLength: len(src),
		line:      1,
		column:    1,
	}
	if lex.srcLength > 0 {
		lex.current = src[0]
	}
	return lex
}

// Depth reports the current bracket/paren/brace nesting depth as seen
// so far by the lexer (used by the REPL to detect unterminated input).
// It is computed on demand by re-scanning, so it is only meaningful
// once the whole input has been tokenized.
func Depth(src string) (int, bool) {
	lex := New(src)
	depth := 0
	for {
		tok, err := lex.NextToken()
		if err != nil {
			// An unterminated string is itself a signal that more
			// input is needed.
			if lerr, ok := err.(*LexError); ok && lerr.Unterminated {
				return depth, true
			}
			return depth, false
		}
		switch tok.Kind {
		case token.LPAREN, token.LBRACE, token.LBRACKET:
			depth++
		case token.RPAREN, token.RBRACE, token.RBRACKET:
			depth--
		case token.EOF:
			return depth, depth > 0
		}
	}
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

// Peek looks at the next byte without consuming the current one.
func (l *Lexer) Peek() byte {
	if l.position+1 >= l.srcLength {
		return 0
	}
	return l.src[l.position+1]
}

// Advance moves the scan head forward by one byte, tracking column.
// Newlines are tracked by the whitespace skipper, not here, since only
// it knows when a byte being consumed is a structural newline versus
// part of a multi-byte lookahead.
func (l *Lexer) Advance() {
	l.position++
	l.column++
	if l.position >= l.srcLength {
		l.current = 0
		l.position = l.srcLength
		return
	}
	l.current = l.src[l.position]
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.current == '\n':
			l.line++
			l.column = 0 // Advance() below brings this to 1
			l.Advance()
		case isSpace(l.current):
			l.Advance()
		case l.current == '/' && l.Peek() == '/':
			for l.current != '\n' && l.current != 0 {
				l.Advance()
			}
		default:
			return
		}
	}
}

// NextToken scans and returns the next token, or a *LexError if the
// input cannot be tokenized (unterminated string, unknown byte).
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespaceAndComments()
	start := l.pos()

	switch c := l.current; {
	case c == 0:
		return token.New(token.EOF, "", start), nil
	case c == '"':
		return l.readString(start)
	case isDigit(c):
		return l.readNumber(start), nil
	case isAlpha(c) || c == '_':
		return l.readIdentifier(start), nil
	case c == ':':
		if isAlpha(l.Peek()) || l.Peek() == '_' {
			l.Advance()
			id := l.readIdentifier(start)
			return token.New(token.TAG, id.Literal, start), nil
		}
		if l.Peek() == ':' {
			l.Advance()
			l.Advance()
			return token.New(token.DOUBLECOLON, "::", start), nil
		}
		l.Advance()
		return token.New(token.COLON, ":", start), nil
	default:
		return l.readOperator(start)
	}
}

func (l *Lexer) two(first byte, second byte, oneKind, twoKind token.Kind) token.Token {
	start := l.pos()
	lit := string(first)
	kind := oneKind
	l.Advance()
	if l.current == second {
		lit += string(second)
		kind = twoKind
		l.Advance()
	}
	return token.New(kind, lit, start)
}

func (l *Lexer) readOperator(start token.Position) (token.Token, error) {
	switch l.current {
	case '=':
		return l.two('=', '=', token.ASSIGN, token.EQ), nil
	case '!':
		return l.two('!', '=', token.BANG, token.NE), nil
	case '<':
		return l.two('<', '=', token.LT, token.LE), nil
	case '>':
		return l.two('>', '=', token.GT, token.GE), nil
	case '+':
		if l.Peek() == '+' {
			l.Advance()
			l.Advance()
			return token.New(token.INC, "++", start), nil
		}
		if l.Peek() == '=' {
			l.Advance()
			l.Advance()
			return token.New(token.PLUS_ASSIGN, "+=", start), nil
		}
		l.Advance()
		return token.New(token.PLUS, "+", start), nil
	case '-':
		if l.Peek() == '-' {
			l.Advance()
			l.Advance()
			return token.New(token.DEC, "--", start), nil
		}
		if l.Peek() == '=' {
			l.Advance()
			l.Advance()
			return token.New(token.MINUS_ASSIGN, "-=", start), nil
		}
		if l.Peek() == '>' {
			l.Advance()
			l.Advance()
			return token.New(token.ARROW, "->", start), nil
		}
		l.Advance()
		return token.New(token.MINUS, "-", start), nil
	case '*':
		return l.two('*', '=', token.STAR, token.STAR_ASSIGN), nil
	case '/':
		return l.two('/', '=', token.SLASH, token.SLASH_ASSIGN), nil
	case '%':
		l.Advance()
		return token.New(token.PCT, "%", start), nil
	case '&':
		if l.Peek() == '&' {
			l.Advance()
			l.Advance()
			return token.New(token.AND, "&&", start), nil
		}
	case '|':
		if l.Peek() == '|' {
			l.Advance()
			l.Advance()
			return token.New(token.OR, "||", start), nil
		}
	case '(':
		l.Advance()
		return token.New(token.LPAREN, "(", start), nil
	case ')':
		l.Advance()
		return token.New(token.RPAREN, ")", start), nil
	case '{':
		l.Advance()
		return token.New(token.LBRACE, "{", start), nil
	case '}':
		l.Advance()
		return token.New(token.RBRACE, "}", start), nil
	case '[':
		l.Advance()
		return token.New(token.LBRACKET, "[", start), nil
	case ']':
		l.Advance()
		return token.New(token.RBRACKET, "]", start), nil
	case ',':
		l.Advance()
		return token.New(token.COMMA, ",", start), nil
	case ';':
		l.Advance()
		return token.New(token.SEMICOLON, ";", start), nil
	case '.':
		l.Advance()
		return token.New(token.DOT, ".", start), nil
	}
	bad := string(l.current)
	l.Advance()
	return token.Token{}, &LexError{Message: "unknown character " + quoteByte(bad), Pos: start}
}

func (l *Lexer) readString(start token.Position) (token.Token, error) {
	l.Advance() // consume opening quote
	var b strings.Builder
	for l.current != '"' {
		if l.current == 0 {
			return token.Token{}, &LexError{Message: "unterminated string literal", Pos: start, Unterminated: true}
		}
		if l.current == '\\' {
			l.Advance()
			ch, ok := escape(l.current)
			if !ok {
				return token.Token{}, &LexError{Message: "invalid escape sequence \\" + string(l.current), Pos: l.pos()}
			}
			b.WriteByte(ch)
			l.Advance()
			continue
		}
		b.WriteByte(l.current)
		l.Advance()
	}
	l.Advance() // consume closing quote
	return token.New(token.STRING, b.String(), start), nil
}

func escape(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	default:
		return 0, false
	}
}

func (l *Lexer) readNumber(start token.Position) token.Token {
	startPos := l.position
	for isDigit(l.current) {
		l.Advance()
	}
	isFloat := false
	if l.current == '.' && isDigit(l.Peek()) {
		isFloat = true
		l.Advance()
		for isDigit(l.current) {
			l.Advance()
		}
	}
	lit := l.src[startPos:l.position]
	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}
	return token.New(kind, lit, start)
}

func (l *Lexer) readIdentifier(start token.Position) token.Token {
	startPos := l.position
	for isAlnum(l.current) || l.current == '_' {
		l.Advance()
	}
	lit := l.src[startPos:l.position]
	return token.New(token.LookupIdent(lit), lit, start)
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return unicode.IsLetter(rune(c)) }
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

func quoteByte(s string) string {
	return "'" + s + "'"
}
