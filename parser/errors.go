package parser

import (
	"fmt"

	"github.com/akashmaji946/slang/token"
)

// ParseError reports a syntax error with the position it was detected
// at and, where known, what token kind was expected. The parser does
// not attempt recovery: the first ParseError aborts parsing (spec
// §4.2, "the parser does not attempt recovery").
type ParseError struct {
	Message  string
	Pos      token.Position
	Expected token.Kind
}

func (e *ParseError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("[%s] syntax error: %s (expected %s)", e.Pos, e.Message, e.Expected)
	}
	return fmt.Sprintf("[%s] syntax error: %s", e.Pos, e.Message)
}
