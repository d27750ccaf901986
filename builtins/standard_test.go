package builtins

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/slang/environment"
	"github.com/akashmaji946/slang/value"
)

func installed(t *testing.T, w *bytes.Buffer) *environment.Env {
	t.Helper()
	env := environment.New()
	Standard(w).Install(env)
	return env
}

func lookupBuiltin(t *testing.T, env *environment.Env, name string) *value.Builtin {
	t.Helper()
	v, ok := env.Get(name)
	require.True(t, ok, "expected %s to be defined", name)
	b, ok := v.(*value.Builtin)
	require.True(t, ok, "%s is not a Builtin", name)
	return b
}

func lookupNamespaceMember(t *testing.T, env *environment.Env, ns, member string) *value.Builtin {
	t.Helper()
	v, ok := env.Get(ns)
	require.True(t, ok, "expected namespace %s to be defined", ns)
	obj, ok := v.(*value.Object)
	require.True(t, ok, "%s is not an Object", ns)
	mv, ok := obj.Get(member)
	require.True(t, ok, "expected %s::%s to be defined", ns, member)
	b, ok := mv.(*value.Builtin)
	require.True(t, ok, "%s::%s is not a Builtin", ns, member)
	return b
}

func TestLenAcrossVariants(t *testing.T) {
	env := installed(t, &bytes.Buffer{})
	lenFn := lookupBuiltin(t, env, "len")

	arr := value.NewArray([]value.Value{value.NewInteger(1), value.NewInteger(2)})
	r, err := lenFn.Fn([]value.Value{arr})
	require.NoError(t, err)
	assert.Equal(t, int64(2), r.(*value.Integer).Value)

	r, err = lenFn.Fn([]value.Value{value.NewString("hello")})
	require.NoError(t, err)
	assert.Equal(t, int64(5), r.(*value.Integer).Value)
}

func TestPrintWritesToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	env := installed(t, &buf)
	println := lookupBuiltin(t, env, "println")
	_, err := println.Fn([]value.Value{value.NewString("hi"), value.NewInteger(1)})
	require.NoError(t, err)
	assert.Equal(t, "hi 1\n", buf.String())
}

func TestOptionRoundTrip(t *testing.T) {
	env := installed(t, &bytes.Buffer{})
	some := lookupNamespaceMember(t, env, "Option", "Some")
	unwrap := lookupNamespaceMember(t, env, "Option", "unwrap")
	isSome := lookupNamespaceMember(t, env, "Option", "isSome")

	opt, err := some.Fn([]value.Value{value.NewInteger(42)})
	require.NoError(t, err)

	b, err := isSome.Fn([]value.Value{opt})
	require.NoError(t, err)
	assert.True(t, b.(*value.Boolean).Value)

	v, err := unwrap.Fn([]value.Value{opt})
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.(*value.Integer).Value)
}

func TestResultUnwrapErrOnOkFails(t *testing.T) {
	env := installed(t, &bytes.Buffer{})
	ok := lookupNamespaceMember(t, env, "Result", "Ok")
	unwrapErr := lookupNamespaceMember(t, env, "Result", "unwrapErr")

	res, err := ok.Fn([]value.Value{value.NewInteger(1)})
	require.NoError(t, err)
	_, err = unwrapErr.Fn([]value.Value{res})
	assert.Error(t, err)
}

func TestArrayPushMutatesSharedBackingStore(t *testing.T) {
	env := installed(t, &bytes.Buffer{})
	push := lookupNamespaceMember(t, env, "Array", "push")

	arr := value.NewArray(nil)
	alias := arr
	_, err := push.Fn([]value.Value{arr, value.NewInteger(7)})
	require.NoError(t, err)
	assert.Equal(t, 1, alias.Len())
}

func TestTypeToIntCoercesString(t *testing.T) {
	env := installed(t, &bytes.Buffer{})
	toInt := lookupNamespaceMember(t, env, "Type", "toInt")
	r, err := toInt.Fn([]value.Value{value.NewString("42")})
	require.NoError(t, err)
	assert.Equal(t, int64(42), r.(*value.Integer).Value)
}

func TestAssertEqualFailureMessage(t *testing.T) {
	env := installed(t, &bytes.Buffer{})
	assertEqual := lookupNamespaceMember(t, env, "Test", "assertEqual")
	_, err := assertEqual.Fn([]value.Value{value.NewInteger(1), value.NewInteger(2)})
	assert.Error(t, err)

	_, err = assertEqual.Fn([]value.Value{value.NewInteger(1), value.NewInteger(1)})
	assert.NoError(t, err)
}

func TestArityCheckedBuiltinsRejectWrongArgCount(t *testing.T) {
	env := installed(t, &bytes.Buffer{})
	lenFn := lookupBuiltin(t, env, "len")
	_, err := lenFn.Fn([]value.Value{})
	assert.Error(t, err)
}
