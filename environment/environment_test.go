package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/slang/value"
)

func TestDefineAndGet(t *testing.T) {
	env := New()
	env.Define("x", value.NewInteger(1))
	v, ok := env.Get("x")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.(*value.Integer).Value)
}

func TestGetWalksParentChain(t *testing.T) {
	outer := New()
	outer.Define("x", value.NewInteger(10))
	inner := NewEnclosed(outer)
	v, ok := inner.Get("x")
	assert.True(t, ok)
	assert.Equal(t, int64(10), v.(*value.Integer).Value)
}

func TestAssignMutatesOwningScope(t *testing.T) {
	outer := New()
	outer.Define("x", value.NewInteger(1))
	inner := NewEnclosed(outer)

	ok := inner.Assign("x", value.NewInteger(99))
	assert.True(t, ok)

	v, _ := outer.Get("x")
	assert.Equal(t, int64(99), v.(*value.Integer).Value)

	_, ownsIt := inner.vars.Get("x")
	assert.False(t, ownsIt)
}

func TestAssignUndeclaredFails(t *testing.T) {
	env := New()
	assert.False(t, env.Assign("missing", value.Null))
}

func TestDefineShadowsParent(t *testing.T) {
	outer := New()
	outer.Define("x", value.NewInteger(1))
	inner := NewEnclosed(outer)
	inner.Define("x", value.NewInteger(2))

	v, _ := inner.Get("x")
	assert.Equal(t, int64(2), v.(*value.Integer).Value)
	v, _ = outer.Get("x")
	assert.Equal(t, int64(1), v.(*value.Integer).Value)
}

// TestSiblingClosuresShareMutation is the invariant the teacher's
// Scope.Copy() could not provide: two children of the same outer scope
// must observe each other's assignments to a shared binding.
func TestSiblingClosuresShareMutation(t *testing.T) {
	outer := New()
	outer.Define("counter", value.NewInteger(0))

	closureA := NewEnclosed(outer)
	closureB := NewEnclosed(outer)

	closureA.Assign("counter", value.NewInteger(5))

	v, _ := closureB.Get("counter")
	assert.Equal(t, int64(5), v.(*value.Integer).Value)
}

func TestOwnNamesPreservesDeclarationOrder(t *testing.T) {
	env := New()
	env.Define("b", value.Null)
	env.Define("a", value.Null)
	env.Define("b", value.NewInteger(1))
	assert.Equal(t, []string{"b", "a"}, env.OwnNames())
}

func TestNewChildSatisfiesValueEnvironment(t *testing.T) {
	var _ value.Environment = New()
	outer := New()
	child := outer.NewChild()
	child.Define("y", value.NewInteger(7))
	_, foundOnOuter := outer.Get("y")
	assert.False(t, foundOnOuter)
}
