package evaluator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/slang/environment"
	"github.com/akashmaji946/slang/lexer"
	"github.com/akashmaji946/slang/parser"
	"github.com/akashmaji946/slang/value"
)

// run lexes, parses, and evaluates src against a fresh global
// environment, returning the last statement's value.
func run(t *testing.T, src string) (value.Value, *Evaluator, *environment.Env) {
	t.Helper()
	lx := lexer.New(src)
	ps, err := parser.New(lx)
	require.NoError(t, err)
	prog, err := ps.ParseProgram()
	require.NoError(t, err)

	var out bytes.Buffer
	ev := New(&out, &bytes.Buffer{})
	env := ev.NewGlobalEnv()
	v, err := ev.Run(prog, env)
	require.NoError(t, err)
	return v, ev, env
}

func TestOperatorPrecedenceArithmetic(t *testing.T) {
	v, _, _ := run(t, `5 + 10 * 2 == 25;`)
	assert.Equal(t, true, v.(*value.Boolean).Value)
}

func TestClosuresCaptureByReference(t *testing.T) {
	v, _, _ := run(t, `
		let mk = fn(base) {
			fn(n) { base + n }
		};
		let add2 = mk(2);
		let add10 = mk(10);
		add2(3) == 5 && add10(7) == 17;
	`)
	assert.True(t, v.(*value.Boolean).Value)
}

func TestRecursion(t *testing.T) {
	v, _, _ := run(t, `
		function fact(n) {
			if (n <= 1) { return 1; }
			return n * fact(n - 1);
		}
		fact(5);
	`)
	assert.Equal(t, int64(120), v.(*value.Integer).Value)
}

func TestObjectIdentityUnderMutation(t *testing.T) {
	v, _, _ := run(t, `
		let a = { x: 1 };
		let b = a;
		b.x = 99;
		a.x;
	`)
	assert.Equal(t, int64(99), v.(*value.Integer).Value)
}

func TestArrayIdentityUnderMutation(t *testing.T) {
	v, _, _ := run(t, `
		let a = [1, 2, 3];
		let b = a;
		b[0] = 99;
		a[0];
	`)
	assert.Equal(t, int64(99), v.(*value.Integer).Value)
}

func TestNamespaceMerge(t *testing.T) {
	v, _, _ := run(t, `
		namespace N { let x = 1; }
		namespace N { let y = 2; }
		N::x == 1 && N::y == 2;
	`)
	assert.True(t, v.(*value.Boolean).Value)
}

func TestIntegerDivisionAndModIdentity(t *testing.T) {
	v, _, _ := run(t, `
		let a = 17;
		let b = 5;
		(a / b) * b + (a % b) == a;
	`)
	assert.True(t, v.(*value.Boolean).Value)
}

func TestFloatNaNSelfInequality(t *testing.T) {
	v, _, _ := run(t, `
		let nan = 0.0 / 0.0;
		nan == nan;
	`)
	assert.False(t, v.(*value.Boolean).Value)
}

func TestForLoopArraySum(t *testing.T) {
	v, _, _ := run(t, `
		let xs = [1, 2, 3, 4, 5];
		let sum = 0;
		for (let i = 0; i < 5; i = i + 1) {
			sum = sum + xs[i];
		}
		sum;
	`)
	assert.Equal(t, int64(15), v.(*value.Integer).Value)
}

func TestWhileLoopBreakContinue(t *testing.T) {
	v, _, _ := run(t, `
		let i = 0;
		let total = 0;
		while (i < 10) {
			i = i + 1;
			if (i % 2 == 0) { continue; }
			if (i > 7) { break; }
			total = total + i;
		}
		total;
	`)
	assert.Equal(t, int64(16), v.(*value.Integer).Value)
}

func TestClassConstructAndMethod(t *testing.T) {
	v, _, _ := run(t, `
		class Counter {
			function construct(start) { this.n = start; }
			function bump() { this.n = this.n + 1; return this.n; }
		}
		let c = new Counter(10);
		c.bump();
		c.bump();
	`)
	assert.Equal(t, int64(12), v.(*value.Integer).Value)
}

func TestResultIsErr(t *testing.T) {
	v, _, _ := run(t, `
		let r = Result::Err("boom");
		Result::isErr(r);
	`)
	assert.True(t, v.(*value.Boolean).Value)
}

func TestStringConcatenation(t *testing.T) {
	v, _, _ := run(t, `"hello, " + "world";`)
	assert.Equal(t, "hello, world", v.(*value.String).Value)
}

func TestPubSubSingleParamPacksArray(t *testing.T) {
	v, _, _ := run(t, `
		let seen = [];
		(:Greet) function onGreet(args) {
			seen = args;
		}
		"hi" -> :Greet;
		seen[0];
	`)
	assert.Equal(t, "hi", v.(*value.String).Value)
}

func TestPubSubChainFlattensScalars(t *testing.T) {
	v, _, _ := run(t, `
		(:Inc) function inc(batch) { return batch[0] + 1; }
		1 -> :Inc -> :Inc -> :Inc;
	`)
	assert.Equal(t, int64(4), v.(*value.Integer).Value)
}

func TestAssignToUnboundIdentifierIsNameError(t *testing.T) {
	lx := lexer.New(`x = 5;`)
	ps, err := parser.New(lx)
	require.NoError(t, err)
	prog, err := ps.ParseProgram()
	require.NoError(t, err)

	var out bytes.Buffer
	ev := New(&out, &bytes.Buffer{})
	env := ev.NewGlobalEnv()
	_, err = ev.Run(prog, env)
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, NameError, rerr.Kind)
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	lx := lexer.New(`1 / 0;`)
	ps, err := parser.New(lx)
	require.NoError(t, err)
	prog, err := ps.ParseProgram()
	require.NoError(t, err)

	var out bytes.Buffer
	ev := New(&out, &bytes.Buffer{})
	env := ev.NewGlobalEnv()
	_, err = ev.Run(prog, env)
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, DivisionError, rerr.Kind)
}

func TestImportPrivacyHidesPlainDecls(t *testing.T) {
	lx := lexer.New(`
		import "./fixtures/lib.sl";
		Lib::pub();
	`)
	ps, err := parser.New(lx)
	require.NoError(t, err)
	prog, err := ps.ParseProgram()
	require.NoError(t, err)

	var out bytes.Buffer
	ev := New(&out, &bytes.Buffer{})
	ev.SetScriptDir("testdata")
	env := ev.NewGlobalEnv()
	v, err := ev.Run(prog, env)
	require.NoError(t, err)
	assert.Equal(t, "pub-ok", v.(*value.String).Value)

	_, found := env.Get("secret")
	assert.False(t, found, "plain top-level bindings in an imported file must not leak")
}

func TestImportCycleIsDetected(t *testing.T) {
	lx := lexer.New(`import "./fixtures/cyclic_a.sl";`)
	ps, err := parser.New(lx)
	require.NoError(t, err)
	prog, err := ps.ParseProgram()
	require.NoError(t, err)

	var out bytes.Buffer
	ev := New(&out, &bytes.Buffer{})
	ev.SetScriptDir("testdata")
	env := ev.NewGlobalEnv()
	_, err = ev.Run(prog, env)
	require.Error(t, err)
}

func TestEndToEndPubSubTaggedChain(t *testing.T) {
	v, _, _ := run(t, `
		(:Double) function double(batch) { return batch[0] * 2; }
		(:AddOne) function addOne(batch) { return batch[0] + 1; }
		5 -> :Double -> :AddOne;
	`)
	assert.Equal(t, int64(11), v.(*value.Integer).Value)
}
