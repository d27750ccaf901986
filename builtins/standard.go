/*
File    : slang/builtins/standard.go
Package : builtins

Standard assembles the default Registry every Evaluator starts from:
the small always-available surface spec §6 names (len/print/println/
type) plus the Option/Result/Array/Obj/Type/Test namespaces. The
`debug` builtin is not part of it; Evaluator.NewGlobalEnv adds it.
This is deliberately not a full standard library — spec §1 scopes
string/math/IO bodies out — but it is enough host plumbing for the
Option/Result idiom and the `test`/`assert` construct to actually run.
*/
package builtins

import (
	"fmt"
	"io"

	"github.com/spf13/cast"

	"github.com/akashmaji946/slang/value"
)

// AssertionFailure distinguishes a `Test::assert`/`assertEqual` failure
// from an ordinary builtin error, so the evaluator's call boundary can
// map it to the AssertionError kind spec §7 names instead of the
// generic RuntimeError every other builtin failure gets.
type AssertionFailure struct{ Message string }

func (e *AssertionFailure) Error() string { return e.Message }

func checked(name string, arity value.ArityPolicy, fn func(args []value.Value) (value.Value, error)) *value.Builtin {
	return &value.Builtin{
		Name:  name,
		Arity: arity,
		Fn: func(args []value.Value) (value.Value, error) {
			if !arity.Accepts(len(args)) {
				return nil, fmt.Errorf("%s expects %s argument(s), got %d", name, arity.String(), len(args))
			}
			return fn(args)
		},
	}
}

// Standard builds the default Registry. w is where print/println write
// (the evaluator wires this to its configured output stream, normally
// os.Stdout, overridable in the REPL).
func Standard(w io.Writer) *Registry {
	r := NewRegistry()

	r.RegisterBuiltin(checked("len", value.Exact(1), biLen))
	r.RegisterBuiltin(checked("type", value.Exact(1), biType))
	r.RegisterBuiltin(checked("print", value.AtLeast(0), biPrint(w, false)))
	r.RegisterBuiltin(checked("println", value.AtLeast(0), biPrint(w, true)))

	r.RegisterNamespace("Option",
		[]string{"Some", "None", "isSome", "isNone", "unwrap", "unwrapOr"},
		map[string]*value.Builtin{
			"Some":     checked("Option::Some", value.Exact(1), optSome),
			"None":     checked("Option::None", value.Exact(0), optNone),
			"isSome":   checked("Option::isSome", value.Exact(1), optIsSome),
			"isNone":   checked("Option::isNone", value.Exact(1), optIsNone),
			"unwrap":   checked("Option::unwrap", value.Exact(1), optUnwrap),
			"unwrapOr": checked("Option::unwrapOr", value.Exact(2), optUnwrapOr),
		})

	r.RegisterNamespace("Result",
		[]string{"Ok", "Err", "isOk", "isErr", "unwrap", "unwrapErr"},
		map[string]*value.Builtin{
			"Ok":        checked("Result::Ok", value.Exact(1), resOk),
			"Err":       checked("Result::Err", value.Exact(1), resErr),
			"isOk":      checked("Result::isOk", value.Exact(1), resIsOk),
			"isErr":     checked("Result::isErr", value.Exact(1), resIsErr),
			"unwrap":    checked("Result::unwrap", value.Exact(1), resUnwrap),
			"unwrapErr": checked("Result::unwrapErr", value.Exact(1), resUnwrapErr),
		})

	r.RegisterNamespace("Array",
		[]string{"push", "len", "at", "map"},
		map[string]*value.Builtin{
			"push": checked("Array::push", value.Exact(2), arrPush),
			"len":  checked("Array::len", value.Exact(1), arrLen),
			"at":   checked("Array::at", value.Exact(2), arrAt),
			"map":  checked("Array::map", value.Exact(2), arrMap),
		})

	r.RegisterNamespace("Obj",
		[]string{"keys", "has"},
		map[string]*value.Builtin{
			"keys": checked("Obj::keys", value.Exact(1), objKeys),
			"has":  checked("Obj::has", value.Exact(2), objHas),
		})

	r.RegisterNamespace("Type",
		[]string{"toInt", "toFloat", "toString"},
		map[string]*value.Builtin{
			"toInt":    checked("Type::toInt", value.Exact(1), typeToInt),
			"toFloat":  checked("Type::toFloat", value.Exact(1), typeToFloat),
			"toString": checked("Type::toString", value.Exact(1), typeToString),
		})

	r.RegisterNamespace("Test",
		[]string{"assert", "assertEqual"},
		map[string]*value.Builtin{
			"assert":      checked("Test::assert", value.Range(1, 2), testAssert),
			"assertEqual": checked("Test::assertEqual", value.Range(2, 3), testAssertEqual),
		})

	return r
}

func biLen(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case *value.Array:
		return value.NewInteger(int64(v.Len())), nil
	case *value.String:
		return value.NewInteger(int64(len(v.Value))), nil
	case *value.Object:
		return value.NewInteger(int64(v.Len())), nil
	default:
		return nil, fmt.Errorf("len: unsupported operand of type %s", v.Type())
	}
}

func biType(args []value.Value) (value.Value, error) {
	return value.NewString(string(args[0].Type())), nil
}

func biPrint(w io.Writer, newline bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		out := ""
		for i, p := range parts {
			if i > 0 {
				out += " "
			}
			out += p
		}
		if newline {
			fmt.Fprintln(w, out)
		} else {
			fmt.Fprint(w, out)
		}
		return value.Null, nil
	}
}

func optSome(args []value.Value) (value.Value, error) { return value.Some(args[0]), nil }
func optNone(args []value.Value) (value.Value, error) { return value.None(), nil }

func asOption(v value.Value) (*value.Option, error) {
	opt, ok := v.(*value.Option)
	if !ok {
		return nil, fmt.Errorf("expected an Option, got %s", v.Type())
	}
	return opt, nil
}

func optIsSome(args []value.Value) (value.Value, error) {
	opt, err := asOption(args[0])
	if err != nil {
		return nil, err
	}
	return value.NewBoolean(opt.IsSome), nil
}

func optIsNone(args []value.Value) (value.Value, error) {
	opt, err := asOption(args[0])
	if err != nil {
		return nil, err
	}
	return value.NewBoolean(!opt.IsSome), nil
}

func optUnwrap(args []value.Value) (value.Value, error) {
	opt, err := asOption(args[0])
	if err != nil {
		return nil, err
	}
	if !opt.IsSome {
		return nil, fmt.Errorf("unwrap called on None")
	}
	return opt.Payload, nil
}

func optUnwrapOr(args []value.Value) (value.Value, error) {
	opt, err := asOption(args[0])
	if err != nil {
		return nil, err
	}
	if opt.IsSome {
		return opt.Payload, nil
	}
	return args[1], nil
}

func resOk(args []value.Value) (value.Value, error)  { return value.Ok(args[0]), nil }
func resErr(args []value.Value) (value.Value, error) { return value.Err(args[0]), nil }

func asResult(v value.Value) (*value.Result, error) {
	res, ok := v.(*value.Result)
	if !ok {
		return nil, fmt.Errorf("expected a Result, got %s", v.Type())
	}
	return res, nil
}

func resIsOk(args []value.Value) (value.Value, error) {
	res, err := asResult(args[0])
	if err != nil {
		return nil, err
	}
	return value.NewBoolean(res.IsOk), nil
}

func resIsErr(args []value.Value) (value.Value, error) {
	res, err := asResult(args[0])
	if err != nil {
		return nil, err
	}
	return value.NewBoolean(!res.IsOk), nil
}

func resUnwrap(args []value.Value) (value.Value, error) {
	res, err := asResult(args[0])
	if err != nil {
		return nil, err
	}
	if !res.IsOk {
		return nil, fmt.Errorf("unwrap called on Err(%s)", res.Payload.String())
	}
	return res.Payload, nil
}

func resUnwrapErr(args []value.Value) (value.Value, error) {
	res, err := asResult(args[0])
	if err != nil {
		return nil, err
	}
	if res.IsOk {
		return nil, fmt.Errorf("unwrapErr called on Ok(%s)", res.Payload.String())
	}
	return res.Payload, nil
}

func asArray(v value.Value) (*value.Array, error) {
	arr, ok := v.(*value.Array)
	if !ok {
		return nil, fmt.Errorf("expected an Array, got %s", v.Type())
	}
	return arr, nil
}

func arrPush(args []value.Value) (value.Value, error) {
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	arr.Push(args[1])
	return arr, nil
}

func arrLen(args []value.Value) (value.Value, error) {
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	return value.NewInteger(int64(arr.Len())), nil
}

func arrAt(args []value.Value) (value.Value, error) {
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	idx, err := cast.ToIntE(indexOperand(args[1]))
	if err != nil {
		return nil, fmt.Errorf("Array::at: %w", err)
	}
	return arr.At(idx), nil
}

func indexOperand(v value.Value) interface{} {
	if i, ok := v.(*value.Integer); ok {
		return i.Value
	}
	return v.String()
}

// arrMap calls fn(element) for every element and collects the results
// into a new Array. This is a partial operation: builtins have no way
// to invoke a *value.Function closure (that requires the evaluator's
// environment-aware applyFunction, which builtins deliberately has no
// dependency on), so Array::map only works with a Builtin callback; a
// Slang-level user closure passed here fails rather than running.
func arrMap(args []value.Value) (value.Value, error) {
	arr, err := asArray(args[0])
	if err != nil {
		return nil, err
	}
	fn, ok := args[1].(*value.Builtin)
	if !ok {
		return nil, fmt.Errorf("Array::map: user-defined functions are not supported as callbacks, only builtins (got %s)", args[1].Type())
	}
	out := make([]value.Value, arr.Len())
	for i, e := range arr.Elements() {
		r, err := fn.Fn([]value.Value{e})
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return value.NewArray(out), nil
}

func objKeys(args []value.Value) (value.Value, error) {
	obj, ok := args[0].(*value.Object)
	if !ok {
		return nil, fmt.Errorf("Obj::keys: expected an Object, got %s", args[0].Type())
	}
	keys := obj.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = value.NewString(k)
	}
	return value.NewArray(out), nil
}

func objHas(args []value.Value) (value.Value, error) {
	obj, ok := args[0].(*value.Object)
	if !ok {
		return nil, fmt.Errorf("Obj::has: expected an Object, got %s", args[0].Type())
	}
	name, ok := args[1].(*value.String)
	if !ok {
		return nil, fmt.Errorf("Obj::has: field name must be a String")
	}
	_, present := obj.Get(name.Value)
	return value.NewBoolean(present), nil
}

// typeToInt/typeToFloat/typeToString lean on spf13/cast for the
// coercion rules, the same library the teacher's CLI layer uses to
// turn flag/REPL string input into numeric values.
func typeToInt(args []value.Value) (value.Value, error) {
	n, err := cast.ToInt64E(castOperand(args[0]))
	if err != nil {
		return nil, fmt.Errorf("Type::toInt: %w", err)
	}
	return value.NewInteger(n), nil
}

func typeToFloat(args []value.Value) (value.Value, error) {
	f, err := cast.ToFloat64E(castOperand(args[0]))
	if err != nil {
		return nil, fmt.Errorf("Type::toFloat: %w", err)
	}
	return value.NewFloat(f), nil
}

func typeToString(args []value.Value) (value.Value, error) {
	return value.NewString(args[0].String()), nil
}

func castOperand(v value.Value) interface{} {
	switch x := v.(type) {
	case *value.Integer:
		return x.Value
	case *value.Float:
		return x.Value
	case *value.Boolean:
		return x.Value
	case *value.String:
		return x.Value
	default:
		return x.String()
	}
}

// testAssert/testAssertEqual back the `test "..." { assert(...); }`
// construct's body; failures surface as an *AssertionFailure the
// evaluator maps to its AssertionError kind.
func testAssert(args []value.Value) (value.Value, error) {
	if !value.Truthy(args[0]) {
		msg := "assertion failed"
		if len(args) == 2 {
			if s, ok := args[1].(*value.String); ok {
				msg = s.Value
			}
		}
		return nil, &AssertionFailure{Message: msg}
	}
	return value.Null, nil
}

func testAssertEqual(args []value.Value) (value.Value, error) {
	if !value.Equal(args[0], args[1]) {
		msg := fmt.Sprintf("expected %s to equal %s", args[0].Inspect(), args[1].Inspect())
		if len(args) == 3 {
			if s, ok := args[2].(*value.String); ok {
				msg = s.Value
			}
		}
		return nil, &AssertionFailure{Message: msg}
	}
	return value.Null, nil
}
