/*
File    : slang/evaluator/signals.go
Package : evaluator

Control flow (return/break/continue) is expressed as distinguished,
non-error Values flowing back through the ordinary Eval return channel
— the same "signal object" trick Eloquence's evaluator plays with
object.ReturnValue, generalized here to the three control-transfer
kinds spec §4.4 names. A block or loop checks for these wrapper types
after every statement and propagates or unwraps them; nothing in this
package ever panics to unwind the Go call stack.
*/
package evaluator

import "github.com/akashmaji946/slang/value"

// returnSignal wraps the value a `return` statement produced. It
// propagates up through nested blocks until applyFunction unwraps it.
type returnSignal struct{ Value value.Value }

func (r *returnSignal) Type() value.Type { return "ReturnSignal" }
func (r *returnSignal) String() string   { return r.Value.String() }
func (r *returnSignal) Inspect() string  { return "<return " + r.Value.Inspect() + ">" }

// breakSignal/continueSignal carry no payload; loops intercept them.
type breakSignal struct{}

func (*breakSignal) Type() value.Type { return "BreakSignal" }
func (*breakSignal) String() string   { return "break" }
func (*breakSignal) Inspect() string  { return "<break>" }

type continueSignal struct{}

func (*continueSignal) Type() value.Type { return "ContinueSignal" }
func (*continueSignal) String() string   { return "continue" }
func (*continueSignal) Inspect() string  { return "<continue>" }

// isSignal reports whether v is a control-flow wrapper rather than an
// ordinary Value, so callers know to stop evaluating sibling
// statements and propagate it upward.
func isSignal(v value.Value) bool {
	switch v.(type) {
	case *returnSignal, *breakSignal, *continueSignal:
		return true
	default:
		return false
	}
}
