/*
File    : slang/environment/environment.go
Package : environment

Package environment implements Slang's lexical scope chain. It is
modeled on Eloquence's object.Environment rather than the teacher's
scope.Scope: scopes here are NEVER copied. A closure captures a raw
pointer to the Env alive at its declaration site, so two sibling
closures over the same outer `let` binding observe each other's
later assignments — the teacher's Scope.Copy() (a shallow snapshot
taken at closure-creation time) cannot provide that, which is why it
was dropped rather than adapted; see DESIGN.md.

Own-scope bindings are kept in an Tangerg LinkedMap so namespace
construction (which needs "declared in this block, in declaration
order") can read them back in order via OwnNames.
*/
package environment

import (
	"github.com/Tangerg/lynx/pkg/maps"

	"github.com/akashmaji946/slang/value"
)

// Env is a single lexical scope: its own bindings plus a link to the
// enclosing scope. *Env implements value.Environment.
type Env struct {
	vars   *maps.LinkedMap[string, value.Value]
	parent *Env
}

// New creates a fresh top-level (global) environment.
func New() *Env {
	return &Env{vars: maps.NewLinkedMap[string, value.Value]()}
}

// NewEnclosed creates a child scope of outer.
func NewEnclosed(outer *Env) *Env {
	return &Env{vars: maps.NewLinkedMap[string, value.Value](), parent: outer}
}

// Get walks the scope chain outward, returning the first binding found.
func (e *Env) Get(name string) (value.Value, bool) {
	if v, ok := e.vars.Get(name); ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, false
}

// Define creates (or shadows) a binding in this scope only. Used for
// `let`, function parameters, and loop induction variables.
func (e *Env) Define(name string, v value.Value) {
	e.vars.Put(name, v)
}

// Assign mutates an existing binding in whichever scope owns it,
// walking outward until found. Reports false if name is undeclared
// anywhere in the chain.
func (e *Env) Assign(name string, v value.Value) bool {
	if e.vars.ContainsKey(name) {
		e.vars.Put(name, v)
		return true
	}
	if e.parent != nil {
		return e.parent.Assign(name, v)
	}
	return false
}

// NewChild returns a new Env enclosed by e, satisfying
// value.Environment.
func (e *Env) NewChild() value.Environment {
	return NewEnclosed(e)
}

// OwnNames returns the names declared directly in this scope, in
// declaration order (not walking to the parent).
func (e *Env) OwnNames() []string {
	return e.vars.Keys()
}

// Parent returns the enclosing scope, if any.
func (e *Env) Parent() (*Env, bool) {
	return e.parent, e.parent != nil
}
