/*
File    : slang/evaluator/stmt.go
Package : evaluator

Statement-node evaluation: let-bindings, return, while/for loops with
break/continue handling, function/class declarations, and `test`
registration. Namespace declarations and imports live in namespace.go.
*/
package evaluator

import (
	"github.com/akashmaji946/slang/ast"
	"github.com/akashmaji946/slang/environment"
	"github.com/akashmaji946/slang/value"
)

func (e *Evaluator) evalLet(n *ast.Let, env *environment.Env) (value.Value, error) {
	v, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	if isSignal(v) {
		return v, nil
	}
	env.Define(n.Name, v)
	return v, nil
}

func (e *Evaluator) evalReturn(n *ast.Return, env *environment.Env) (value.Value, error) {
	if n.Value == nil {
		return &returnSignal{Value: value.Null}, nil
	}
	v, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	if isSignal(v) {
		return v, nil
	}
	return &returnSignal{Value: v}, nil
}

func (e *Evaluator) evalWhile(n *ast.While, env *environment.Env) (value.Value, error) {
	for {
		cond, err := e.Eval(n.Cond, env)
		if err != nil {
			return nil, err
		}
		if isSignal(cond) {
			return cond, nil
		}
		if !value.Truthy(cond) {
			break
		}
		result, err := e.evalBlock(n.Body, environment.NewEnclosed(env))
		if err != nil {
			return nil, err
		}
		switch result.(type) {
		case *breakSignal:
			return value.Null, nil
		case *returnSignal:
			return result, nil
		}
		// ContinueSignal and ordinary values both just move to the
		// next iteration.
	}
	return value.Null, nil
}

func (e *Evaluator) evalFor(n *ast.For, env *environment.Env) (value.Value, error) {
	loopEnv := environment.NewEnclosed(env)
	if n.Init != nil {
		v, err := e.Eval(n.Init, loopEnv)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
	}
	for {
		if n.Cond != nil {
			cond, err := e.Eval(n.Cond, loopEnv)
			if err != nil {
				return nil, err
			}
			if isSignal(cond) {
				return cond, nil
			}
			if !value.Truthy(cond) {
				break
			}
		}
		result, err := e.evalBlock(n.Body, environment.NewEnclosed(loopEnv))
		if err != nil {
			return nil, err
		}
		if _, ok := result.(*breakSignal); ok {
			return value.Null, nil
		}
		if ret, ok := result.(*returnSignal); ok {
			return ret, nil
		}
		if n.Post != nil {
			v, err := e.Eval(n.Post, loopEnv)
			if err != nil {
				return nil, err
			}
			if isSignal(v) {
				return v, nil
			}
		}
	}
	return value.Null, nil
}

// evalFunctionDecl desugars `function NAME(params) { body }` into
// `let NAME = fn(params) { body };` (spec §4.2), binding NAME before
// the closure's Env snapshot matters so recursive self-reference
// works: the Function captures env by reference, and env gains the
// binding for NAME immediately after, so a recursive call looks it up
// through the very env the closure holds.
func (e *Evaluator) evalFunctionDecl(n *ast.FunctionDecl, env *environment.Env) (value.Value, error) {
	fn := &value.Function{
		Name:   n.Name,
		Params: n.Params,
		Body:   n.Body,
		Env:    env,
		Tags:   n.Tags,
	}
	env.Define(n.Name, fn)
	if len(fn.Tags) > 0 {
		e.Registry.Subscribe(fn)
	}
	return fn, nil
}

func (e *Evaluator) evalClassDecl(n *ast.ClassDecl, env *environment.Env) (value.Value, error) {
	cls := value.NewClass(n.Name)
	for _, methodDecl := range n.Methods {
		fn := &value.Function{
			Name:   methodDecl.Name,
			Params: methodDecl.Params,
			Body:   methodDecl.Body,
			Env:    env,
		}
		cls.AddMethod(fn)
	}
	env.Define(n.Name, cls)
	return cls, nil
}

func (e *Evaluator) evalTest(n *ast.Test, env *environment.Env) (value.Value, error) {
	child := environment.NewEnclosed(env)
	_, err := e.evalBlock(n.Body, child)
	e.Tests = append(e.Tests, TestResult{Description: n.Description, Passed: err == nil, Err: err})
	return value.Null, nil
}
