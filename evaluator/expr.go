/*
File    : slang/evaluator/expr.go
Package : evaluator

Expression-node evaluation: literals composed of sub-expressions
(arrays, objects), identifier lookup, index/member access, the
operator dispatch table (arithmetic/comparison/equality/logical),
assignment (including the compound-operator desugar spec §4.4
describes), postfix ++/--, and `if` as an expression.
*/
package evaluator

import (
	"math"

	"github.com/akashmaji946/slang/ast"
	"github.com/akashmaji946/slang/environment"
	"github.com/akashmaji946/slang/token"
	"github.com/akashmaji946/slang/value"
)

func (e *Evaluator) evalIdentifier(n *ast.Identifier, env *environment.Env) (value.Value, error) {
	v, ok := env.Get(n.Name)
	if !ok {
		return nil, newError(NameError, n.Position, "undefined name %q", n.Name)
	}
	return v, nil
}

func (e *Evaluator) evalArrayLit(n *ast.ArrayLit, env *environment.Env) (value.Value, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, expr := range n.Elements {
		v, err := e.Eval(expr, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		elems[i] = v
	}
	return value.NewArray(elems), nil
}

func (e *Evaluator) evalObjectLit(n *ast.ObjectLit, env *environment.Env) (value.Value, error) {
	obj := value.NewObject()
	for _, entry := range n.Entries {
		v, err := e.Eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		obj.Set(entry.Key, v)
	}
	return obj, nil
}

func (e *Evaluator) evalIndex(n *ast.Index, env *environment.Env) (value.Value, error) {
	target, err := e.Eval(n.Target, env)
	if err != nil {
		return nil, err
	}
	if isSignal(target) {
		return target, nil
	}
	idx, err := e.Eval(n.Index, env)
	if err != nil {
		return nil, err
	}
	if isSignal(idx) {
		return idx, nil
	}
	switch t := target.(type) {
	case *value.Array:
		i, ok := idx.(*value.Integer)
		if !ok {
			return nil, newError(TypeError, n.Position, "array index must be an Integer, got %s", idx.Type())
		}
		pos := int(i.Value)
		if pos < 0 || pos >= t.Len() {
			return nil, newError(IndexError, n.Position, "index %d out of range for array of length %d", pos, t.Len())
		}
		return t.At(pos), nil
	case *value.Object:
		key, ok := idx.(*value.String)
		if !ok {
			return nil, newError(TypeError, n.Position, "object index must be a String, got %s", idx.Type())
		}
		if v, ok := t.Get(key.Value); ok {
			return v, nil
		}
		return value.Null, nil
	default:
		return nil, newError(TypeError, n.Position, "cannot index into %s", target.Type())
	}
}

func (e *Evaluator) evalMember(n *ast.Member, env *environment.Env) (value.Value, error) {
	target, err := e.Eval(n.Target, env)
	if err != nil {
		return nil, err
	}
	if isSignal(target) {
		return target, nil
	}
	return e.memberGet(target, n.Name, n.Position)
}

func (e *Evaluator) memberGet(target value.Value, name string, pos token.Position) (value.Value, error) {
	switch t := target.(type) {
	case *value.Object:
		if v, ok := t.Get(name); ok {
			return v, nil
		}
		return value.Null, nil
	case *value.Function:
		switch name {
		case "name":
			return value.NewString(t.Name), nil
		case "tags":
			tags := make([]value.Value, len(t.Tags))
			for i, tg := range t.Tags {
				tags[i] = value.NewString(tg)
			}
			return value.NewArray(tags), nil
		default:
			return nil, newError(TypeError, pos, "Function has no member %q", name)
		}
	case *value.Class:
		if name == "name" {
			return value.NewString(t.Name), nil
		}
		return nil, newError(TypeError, pos, "Class has no member %q", name)
	default:
		return nil, newError(TypeError, pos, "cannot access member %q on %s", name, target.Type())
	}
}

func (e *Evaluator) evalPrefix(n *ast.Prefix, env *environment.Env) (value.Value, error) {
	right, err := e.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	if isSignal(right) {
		return right, nil
	}
	switch n.Op {
	case token.MINUS:
		switch r := right.(type) {
		case *value.Integer:
			return value.NewInteger(-r.Value), nil
		case *value.Float:
			return value.NewFloat(-r.Value), nil
		default:
			return nil, newError(TypeError, n.Position, "unary '-' requires a number, got %s", right.Type())
		}
	case token.BANG:
		return value.NewBoolean(!value.Truthy(right)), nil
	default:
		return nil, newError(TypeError, n.Position, "unknown prefix operator %s", n.Op)
	}
}

func (e *Evaluator) evalInfix(n *ast.Infix, env *environment.Env) (value.Value, error) {
	left, err := e.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	if isSignal(left) {
		return left, nil
	}
	// && and || short-circuit, so the right operand must not be
	// evaluated unless needed.
	switch n.Op {
	case token.AND:
		if !value.Truthy(left) {
			return value.NewBoolean(false), nil
		}
		right, err := e.Eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		if isSignal(right) {
			return right, nil
		}
		return value.NewBoolean(value.Truthy(right)), nil
	case token.OR:
		if value.Truthy(left) {
			return value.NewBoolean(true), nil
		}
		right, err := e.Eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		if isSignal(right) {
			return right, nil
		}
		return value.NewBoolean(value.Truthy(right)), nil
	}

	right, err := e.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	if isSignal(right) {
		return right, nil
	}
	return evalInfixOp(n.Op, left, right, n.Position)
}

func evalInfixOp(op token.Kind, left, right value.Value, pos token.Position) (value.Value, error) {
	switch op {
	case token.PLUS:
		return evalAdd(left, right, pos)
	case token.MINUS:
		return evalArith(op, left, right, pos)
	case token.STAR:
		return evalArith(op, left, right, pos)
	case token.SLASH:
		return evalArith(op, left, right, pos)
	case token.PCT:
		return evalArith(op, left, right, pos)
	case token.EQ:
		return value.NewBoolean(value.Equal(left, right)), nil
	case token.NE:
		return value.NewBoolean(!value.Equal(left, right)), nil
	case token.LT, token.LE, token.GT, token.GE:
		return evalComparison(op, left, right, pos)
	default:
		return nil, newError(TypeError, pos, "unknown infix operator %s", op)
	}
}

func evalAdd(left, right value.Value, pos token.Position) (value.Value, error) {
	if ls, ok := left.(*value.String); ok {
		if rs, ok := right.(*value.String); ok {
			return value.NewString(ls.Value + rs.Value), nil
		}
		return nil, newError(TypeError, pos, "cannot add String and %s", right.Type())
	}
	if !value.IsNumber(left) || !value.IsNumber(right) {
		return nil, newError(TypeError, pos, "'+' requires two numbers or two strings, got %s and %s", left.Type(), right.Type())
	}
	return evalArith(token.PLUS, left, right, pos)
}

// evalArith implements the Integer/Float promotion table: both
// Integer stays Integer, either Float promotes the result to Float.
func evalArith(op token.Kind, left, right value.Value, pos token.Position) (value.Value, error) {
	li, lIsInt := left.(*value.Integer)
	ri, rIsInt := right.(*value.Integer)
	if lIsInt && rIsInt {
		return evalIntArith(op, li.Value, ri.Value, pos)
	}
	lf, lok := numericFloat(left)
	rf, rok := numericFloat(right)
	if !lok || !rok {
		return nil, newError(TypeError, pos, "'%s' requires numbers, got %s and %s", op, left.Type(), right.Type())
	}
	return evalFloatArith(op, lf, rf), nil
}

func numericFloat(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case *value.Integer:
		return float64(x.Value), true
	case *value.Float:
		return x.Value, true
	default:
		return 0, false
	}
}

func evalIntArith(op token.Kind, l, r int64, pos token.Position) (value.Value, error) {
	switch op {
	case token.PLUS:
		return value.NewInteger(l + r), nil
	case token.MINUS:
		return value.NewInteger(l - r), nil
	case token.STAR:
		return value.NewInteger(l * r), nil
	case token.SLASH:
		if r == 0 {
			return nil, newError(DivisionError, pos, "integer division by zero")
		}
		return value.NewInteger(l / r), nil
	case token.PCT:
		if r == 0 {
			return nil, newError(DivisionError, pos, "integer modulo by zero")
		}
		return value.NewInteger(l % r), nil
	default:
		return nil, newError(TypeError, pos, "unknown arithmetic operator %s", op)
	}
}

func evalFloatArith(op token.Kind, l, r float64) value.Value {
	switch op {
	case token.PLUS:
		return value.NewFloat(l + r)
	case token.MINUS:
		return value.NewFloat(l - r)
	case token.STAR:
		return value.NewFloat(l * r)
	case token.SLASH:
		return value.NewFloat(l / r)
	case token.PCT:
		return value.NewFloat(math.Mod(l, r))
	default:
		return value.Null
	}
}

func evalComparison(op token.Kind, left, right value.Value, pos token.Position) (value.Value, error) {
	if ls, ok := left.(*value.String); ok {
		rs, ok := right.(*value.String)
		if !ok {
			return nil, newError(TypeError, pos, "cannot compare String and %s", right.Type())
		}
		return value.NewBoolean(compareOrdered(op, stringCompare(ls.Value, rs.Value))), nil
	}
	lf, lok := numericFloat(left)
	rf, rok := numericFloat(right)
	if !lok || !rok {
		return nil, newError(TypeError, pos, "'%s' requires two numbers or two strings, got %s and %s", op, left.Type(), right.Type())
	}
	cmp := 0
	if lf < rf {
		cmp = -1
	} else if lf > rf {
		cmp = 1
	}
	return value.NewBoolean(compareOrdered(op, cmp)), nil
}

func stringCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareOrdered(op token.Kind, cmp int) bool {
	switch op {
	case token.LT:
		return cmp < 0
	case token.LE:
		return cmp <= 0
	case token.GT:
		return cmp > 0
	case token.GE:
		return cmp >= 0
	default:
		return false
	}
}

func (e *Evaluator) evalAssign(n *ast.Assign, env *environment.Env) (value.Value, error) {
	value_, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	if isSignal(value_) {
		return value_, nil
	}
	if n.Op != token.ASSIGN {
		cur, err := e.Eval(n.Target, env)
		if err != nil {
			return nil, err
		}
		if isSignal(cur) {
			return cur, nil
		}
		op := compoundBaseOp(n.Op)
		value_, err = evalInfixOp(op, cur, value_, n.Position)
		if err != nil {
			return nil, err
		}
	}
	return e.assignTo(n.Target, value_, env)
}

func compoundBaseOp(op token.Kind) token.Kind {
	switch op {
	case token.PLUS_ASSIGN:
		return token.PLUS
	case token.MINUS_ASSIGN:
		return token.MINUS
	case token.STAR_ASSIGN:
		return token.STAR
	case token.SLASH_ASSIGN:
		return token.SLASH
	default:
		return token.ASSIGN
	}
}

// assignTo writes v into the lvalue target: Identifier, Index, or
// Member (the only three the parser ever produces for Assign.Target).
func (e *Evaluator) assignTo(target ast.Expression, v value.Value, env *environment.Env) (value.Value, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		if !env.Assign(t.Name, v) {
			return nil, newError(NameError, t.Position, "assignment to undeclared name %q (use 'let' first)", t.Name)
		}
		return v, nil
	case *ast.Index:
		container, err := e.Eval(t.Target, env)
		if err != nil {
			return nil, err
		}
		if isSignal(container) {
			return container, nil
		}
		idx, err := e.Eval(t.Index, env)
		if err != nil {
			return nil, err
		}
		if isSignal(idx) {
			return idx, nil
		}
		switch c := container.(type) {
		case *value.Array:
			i, ok := idx.(*value.Integer)
			if !ok {
				return nil, newError(TypeError, t.Position, "array index must be an Integer, got %s", idx.Type())
			}
			if !c.Set(int(i.Value), v) {
				return nil, newError(IndexError, t.Position, "index %d out of range for array of length %d", i.Value, c.Len())
			}
			return v, nil
		case *value.Object:
			key, ok := idx.(*value.String)
			if !ok {
				return nil, newError(TypeError, t.Position, "object index must be a String, got %s", idx.Type())
			}
			c.Set(key.Value, v)
			return v, nil
		default:
			return nil, newError(TypeError, t.Position, "cannot index-assign into %s", container.Type())
		}
	case *ast.Member:
		container, err := e.Eval(t.Target, env)
		if err != nil {
			return nil, err
		}
		if isSignal(container) {
			return container, nil
		}
		obj, ok := container.(*value.Object)
		if !ok {
			return nil, newError(TypeError, t.Position, "cannot assign member %q on %s", t.Name, container.Type())
		}
		obj.Set(t.Name, v)
		return v, nil
	default:
		return nil, newError(TypeError, target.Pos(), "invalid assignment target")
	}
}

func (e *Evaluator) evalPostfix(n *ast.Postfix, env *environment.Env) (value.Value, error) {
	cur, err := e.Eval(n.Target, env)
	if err != nil {
		return nil, err
	}
	if isSignal(cur) {
		return cur, nil
	}
	var next value.Value
	switch c := cur.(type) {
	case *value.Integer:
		delta := int64(1)
		if n.Op == token.DEC {
			delta = -1
		}
		next = value.NewInteger(c.Value + delta)
	case *value.Float:
		delta := 1.0
		if n.Op == token.DEC {
			delta = -1
		}
		next = value.NewFloat(c.Value + delta)
	default:
		return nil, newError(TypeError, n.Position, "'%s' requires a number, got %s", n.Op, cur.Type())
	}
	return e.assignTo(n.Target, next, env)
}

func (e *Evaluator) evalIf(n *ast.If, env *environment.Env) (value.Value, error) {
	cond, err := e.Eval(n.Cond, env)
	if err != nil {
		return nil, err
	}
	if isSignal(cond) {
		return cond, nil
	}
	if value.Truthy(cond) {
		return e.evalBlock(n.Then, environment.NewEnclosed(env))
	}
	if n.Else == nil {
		return value.Null, nil
	}
	return e.Eval(n.Else, env)
}

// evalBlock runs a block's statements in child and returns the last
// ExprStmt's value (or Null if the block is empty or ends on a
// non-expression statement), per spec §4.4's "blocks are expression-
// valued" rule. A non-Normal signal from any statement stops the block
// immediately and propagates.
func (e *Evaluator) evalBlock(b *ast.Block, child *environment.Env) (value.Value, error) {
	var result value.Value = value.Null
	for _, stmt := range b.Statements {
		v, err := e.Eval(stmt, child)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		if _, ok := stmt.(*ast.ExprStmt); ok {
			result = v
		} else {
			result = value.Null
		}
	}
	return result, nil
}

func (e *Evaluator) evalFunctionLit(n *ast.FunctionLit, env *environment.Env) (value.Value, error) {
	fn := &value.Function{
		Name:   n.Name,
		Params: n.Params,
		Body:   n.Body,
		Env:    env,
		Tags:   n.Tags,
	}
	if len(fn.Tags) > 0 {
		e.Registry.Subscribe(fn)
	}
	return fn, nil
}
