package lexer

import (
	"fmt"

	"github.com/akashmaji946/slang/token"
)

// LexError reports a failure to tokenize the input, with the source
// position the failure started at. Unterminated is set for errors that
// stem from input simply running out mid-token (mid-string here) — the
// REPL uses this to distinguish "need another line" from a real error.
type LexError struct {
	Message      string
	Pos          token.Position
	Unterminated bool
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[%s] lex error: %s", e.Pos, e.Message)
}
