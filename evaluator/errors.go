/*
File    : slang/evaluator/errors.go
Package : evaluator

Runtime errors carry a Kind alongside the message, mirroring the
taxonomy spec §4.4 names (NameError, TypeError, IndexError,
AssertionError, ImportError). They are returned as plain Go errors
(the idiomatic `(value.Value, error)` shape), not raised as panics —
the one place this diverges from the teacher, which threads an
*std.Error object.GoMixObject through its return channel instead.
Eloquence's evaluator does the same "errors are just another Object"
trick; Slang keeps Go's native error channel separate from value
signaling instead, which is why Eval returns (value.Value, error)
rather than a single Object/Signal union.
*/
package evaluator

import (
	"fmt"

	"github.com/akashmaji946/slang/token"
)

// ErrorKind names one of spec §4.4's runtime error categories.
type ErrorKind string

const (
	NameError      ErrorKind = "NameError"
	TypeError      ErrorKind = "TypeError"
	IndexError     ErrorKind = "IndexError"
	ArityError     ErrorKind = "ArityError"
	ImportError    ErrorKind = "ImportError"
	AssertionError ErrorKind = "AssertionError"
	RuntimeErr     ErrorKind = "RuntimeError"
	DivisionError  ErrorKind = "DivisionError"
	SyntaxErr      ErrorKind = "SyntaxError"
	IOError        ErrorKind = "IOError"
)

// RuntimeError is the concrete error type every evaluation failure
// returns.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[%s] %s at %s", e.Kind, e.Message, e.Pos)
}

func newError(kind ErrorKind, pos token.Position, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}
