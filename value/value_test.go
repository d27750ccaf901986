package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(False))
	assert.False(t, Truthy(Null))
	assert.False(t, Truthy(NewInteger(0)))
	assert.False(t, Truthy(NewFloat(0)))
	assert.False(t, Truthy(NewString("")))
	assert.False(t, Truthy(NewArray(nil)))
	assert.False(t, Truthy(NewObject()))
	assert.False(t, Truthy(None()))
	assert.False(t, Truthy(Err(NewString("boom"))))

	assert.True(t, Truthy(True))
	assert.True(t, Truthy(NewInteger(1)))
	assert.True(t, Truthy(NewString("x")))
	assert.True(t, Truthy(Some(Null)))
	assert.True(t, Truthy(Ok(NewInteger(0))))
}

func TestEqualPrimitives(t *testing.T) {
	assert.True(t, Equal(NewInteger(2), NewFloat(2)))
	assert.True(t, Equal(NewString("a"), NewString("a")))
	assert.False(t, Equal(NewString("a"), NewString("b")))
	assert.True(t, Equal(Null, Null))
}

func TestEqualArrayDeep(t *testing.T) {
	a := NewArray([]Value{NewInteger(1), NewArray([]Value{NewInteger(2)})})
	b := NewArray([]Value{NewInteger(1), NewArray([]Value{NewInteger(2)})})
	assert.True(t, Equal(a, b))
	b.At(1).(*Array).Set(0, NewInteger(3))
	assert.False(t, Equal(a, b))
}

func TestObjectOrderingPreservedOnOverwrite(t *testing.T) {
	o := NewObject()
	o.Set("a", NewInteger(1))
	o.Set("b", NewInteger(2))
	o.Set("a", NewInteger(99))
	assert.Equal(t, []string{"a", "b"}, o.Keys())
	v, ok := o.Get("a")
	assert.True(t, ok)
	assert.Equal(t, int64(99), v.(*Integer).Value)
}

func TestArrayReferenceSemantics(t *testing.T) {
	a := NewArray([]Value{NewInteger(1)})
	alias := a
	alias.Push(NewInteger(2))
	assert.Equal(t, 2, a.Len())
}

func TestArityPolicy(t *testing.T) {
	exact := Exact(2)
	assert.True(t, exact.Accepts(2))
	assert.False(t, exact.Accepts(1))
	assert.False(t, exact.Accepts(3))

	atLeast := AtLeast(1)
	assert.True(t, atLeast.Accepts(1))
	assert.True(t, atLeast.Accepts(50))
	assert.False(t, atLeast.Accepts(0))
}

func TestClassAddMethodPreservesOrder(t *testing.T) {
	cls := NewClass("Point")
	cls.AddMethod(&Function{Name: "move"})
	cls.AddMethod(&Function{Name: "dist"})
	cls.AddMethod(&Function{Name: "move"})
	assert.Equal(t, []string{"move", "dist"}, cls.MethodOrder)
}
