/*
File    : slang/evaluator/call.go
Package : evaluator

Call-shaped expressions: plain Call, MethodCall (with `this` binding),
NamespaceAccess (`NS::member`, plus its use as a call callee), `new`
instantiation, and the publish-chain driver that bridges pubsub.Registry
to the evaluator's own call machinery via a pubsub.Caller closure.
*/
package evaluator

import (
	"github.com/akashmaji946/slang/ast"
	"github.com/akashmaji946/slang/builtins"
	"github.com/akashmaji946/slang/environment"
	"github.com/akashmaji946/slang/token"
	"github.com/akashmaji946/slang/value"
)

func (e *Evaluator) evalCall(n *ast.Call, env *environment.Env) (value.Value, error) {
	// `NS::member(args)` parses as Call{Callee: NamespaceAccess{...}}
	// rather than a distinct node, so a namespace-qualified call is
	// just a plain call whose callee happens to be a NamespaceAccess.
	callee, err := e.Eval(n.Callee, env)
	if err != nil {
		return nil, err
	}
	if isSignal(callee) {
		return callee, nil
	}
	args, err := e.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 && isSignal(args[0]) {
		return args[0], nil
	}
	return e.callValue(callee, args, n.Position)
}

func (e *Evaluator) evalArgs(exprs []ast.Expression, env *environment.Env) ([]value.Value, error) {
	args := make([]value.Value, len(exprs))
	for i, expr := range exprs {
		v, err := e.Eval(expr, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return []value.Value{v}, nil
		}
		args[i] = v
	}
	return args, nil
}

// callValue dispatches a call by the callee's dynamic type: a
// Function runs through applyFunction (with whatever `this` is
// currently on the receiver stack — unchanged, since a plain Call
// never rebinds it); a Builtin's Fn is invoked directly.
func (e *Evaluator) callValue(callee value.Value, args []value.Value, pos token.Position) (value.Value, error) {
	switch fn := callee.(type) {
	case *value.Function:
		return e.applyFunction(fn, args, nil)
	case *value.Builtin:
		return e.callBuiltin(fn, args, pos)
	default:
		return nil, newError(TypeError, pos, "%s is not callable", callee.Type())
	}
}

func (e *Evaluator) callBuiltin(fn *value.Builtin, args []value.Value, pos token.Position) (value.Value, error) {
	if !fn.Arity.Accepts(len(args)) {
		return nil, newError(ArityError, pos, "%s expects %s argument(s), got %d", fn.Name, fn.Arity.String(), len(args))
	}
	result, err := fn.Fn(args)
	if err != nil {
		if af, ok := err.(*builtins.AssertionFailure); ok {
			return nil, newError(AssertionError, pos, "%s", af.Message)
		}
		return nil, newError(RuntimeErr, pos, "%s", err.Error())
	}
	return result, nil
}

// applyFunction invokes a user closure: a fresh child scope of the
// closure's captured environment (never the caller's environment —
// that is what makes it lexical rather than dynamic scoping), params
// bound positionally (missing -> Null, extra dropped per spec §4.4),
// receiver pushed for the body's `this` if non-nil, body evaluated,
// and a ReturnSignal unwrapped to its payload.
func (e *Evaluator) applyFunction(fn *value.Function, args []value.Value, receiver *value.Object) (value.Value, error) {
	parentEnv, ok := fn.Env.(*environment.Env)
	if !ok {
		return nil, newError(RuntimeErr, token.Position{}, "function %s has no environment", fn.Name)
	}
	body, ok := fn.Body.(*ast.Block)
	if !ok {
		return nil, newError(RuntimeErr, token.Position{}, "function %s has no body", fn.Name)
	}
	call := environment.NewEnclosed(parentEnv)
	for i, param := range fn.Params {
		if i < len(args) {
			call.Define(param, args[i])
		} else {
			call.Define(param, value.Null)
		}
	}
	if receiver != nil {
		e.receivers = append(e.receivers, receiver)
		defer func() { e.receivers = e.receivers[:len(e.receivers)-1] }()
	}
	result, err := e.evalBlock(body, call)
	if err != nil {
		return nil, err
	}
	if ret, ok := result.(*returnSignal); ok {
		return ret.Value, nil
	}
	if isSignal(result) {
		return nil, newError(SyntaxErr, token.Position{}, "break/continue outside of a loop")
	}
	return result, nil
}

func (e *Evaluator) evalMethodCall(n *ast.MethodCall, env *environment.Env) (value.Value, error) {
	recv, err := e.Eval(n.Receiver, env)
	if err != nil {
		return nil, err
	}
	if isSignal(recv) {
		return recv, nil
	}
	args, err := e.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 && isSignal(args[0]) {
		return args[0], nil
	}

	switch r := recv.(type) {
	case *value.Object:
		// A class instance resolves the method from its Class's method
		// table (spec §4.4: "Class instances ... looked up in the
		// class's method table"); a plain object literal's member must
		// itself be a Function value.
		if r.Class != nil {
			if m, ok := r.Class.Method(n.Name); ok {
				return e.applyFunction(m, args, r)
			}
		}
		member, ok := r.Get(n.Name)
		if !ok {
			return nil, newError(TypeError, n.Position, "object has no method %q", n.Name)
		}
		fn, ok := member.(*value.Function)
		if !ok {
			return nil, newError(TypeError, n.Position, "member %q is not a Function", n.Name)
		}
		return e.applyFunction(fn, args, r)
	default:
		return nil, newError(TypeError, n.Position, "cannot call method %q on %s", n.Name, recv.Type())
	}
}

func (e *Evaluator) evalNamespaceAccess(n *ast.NamespaceAccess, env *environment.Env) (value.Value, error) {
	ns, ok := env.Get(n.Namespace)
	if !ok {
		return nil, newError(NameError, n.Position, "undefined namespace %q", n.Namespace)
	}
	obj, ok := ns.(*value.Object)
	if !ok {
		return nil, newError(TypeError, n.Position, "%q is not a namespace", n.Namespace)
	}
	if v, ok := obj.Get(n.Member); ok {
		return v, nil
	}
	return value.Null, nil
}

// evalNew implements `new ClassName(args)` (spec §4.4): a fresh
// instance Object tagged with the Class, with `construct` (if the
// class declares one) invoked against it with args. A class with no
// `construct` method produces a bare instance with no fields set.
func (e *Evaluator) evalNew(n *ast.New, env *environment.Env) (value.Value, error) {
	classVal, ok := env.Get(n.ClassName)
	if !ok {
		return nil, newError(NameError, n.Position, "undefined class %q", n.ClassName)
	}
	cls, ok := classVal.(*value.Class)
	if !ok {
		return nil, newError(TypeError, n.Position, "%q is not a class", n.ClassName)
	}
	args, err := e.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 && isSignal(args[0]) {
		return args[0], nil
	}
	instance := value.NewInstance(cls)
	if ctor, ok := cls.Method("construct"); ok {
		if _, err := e.applyFunction(ctor, args, instance); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// evalPublishChain implements spec §4.5: evaluate the initial tuple,
// then drive pubsub.Registry.Dispatch through each tag stage, with a
// Caller closure that routes back through applyFunction so subscribers
// are ordinary Slang closures, not a separate callable kind.
func (e *Evaluator) evalPublishChain(n *ast.PublishChain, env *environment.Env) (value.Value, error) {
	initial, err := e.evalArgs(n.Initial, env)
	if err != nil {
		return nil, err
	}
	if len(initial) == 1 && isSignal(initial[0]) {
		return initial[0], nil
	}
	var callErr error
	result, err := e.Registry.Dispatch(initial, n.Tags, func(fn *value.Function, args []value.Value) (value.Value, error) {
		v, err := e.applyFunction(fn, args, nil)
		if err != nil {
			callErr = err
			return nil, err
		}
		return v, nil
	})
	if err != nil {
		if callErr != nil {
			return nil, callErr
		}
		return nil, newError(RuntimeErr, n.Position, "%s", err.Error())
	}
	return result, nil
}
