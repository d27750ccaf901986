/*
File    : slang/builtins/registry.go
Package : builtins

Package builtins implements the two registration hooks spec §6
promises external collaborators: register_builtin(name, callable,
arity_policy) and register_namespace(name, members). It generalizes
the teacher's std.Builtin/std.Package/RegisterPackage shape (a flat
name->callable table plus named, ordered member groups) rather than
replacing it: Builtin and its CallbackFunc equivalent live in the
value package instead of here (so value.Function and value.Builtin can
sit side by side as ordinary Values), but the "collect, then Install
into a scope" lifecycle is the same two-phase registration the teacher
uses before any user code runs.
*/
package builtins

import "github.com/akashmaji946/slang/value"

type namespaceGroup struct {
	name    string
	members []namedMember
}

type namedMember struct {
	name string
	fn   *value.Builtin
}

// Registry accumulates builtins and namespaces before they are
// installed into a global Environment.
type Registry struct {
	flat       []*value.Builtin
	namespaces []*namespaceGroup
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{} }

// RegisterBuiltin installs a bare host callable, bound directly in the
// global scope under name.
func (r *Registry) RegisterBuiltin(b *value.Builtin) {
	r.flat = append(r.flat, b)
}

// RegisterNamespace installs an ordered group of host callables under
// NS::member access. Calling it again with the same name appends a new
// group rather than merging — Install later folds same-named groups
// together in registration order, matching the namespace merge rule
// spec §4.6 defines for user-level `namespace` blocks.
func (r *Registry) RegisterNamespace(name string, order []string, members map[string]*value.Builtin) {
	group := &namespaceGroup{name: name}
	for _, key := range order {
		group.members = append(group.members, namedMember{name: key, fn: members[key]})
	}
	r.namespaces = append(r.namespaces, group)
}

// Install binds every registered builtin and namespace into env. It is
// called exactly once, against the evaluator's fresh global scope,
// before any user code runs.
func (r *Registry) Install(env value.Environment) {
	for _, b := range r.flat {
		env.Define(b.Name, b)
	}
	merged := map[string]*value.Object{}
	var order []string
	for _, group := range r.namespaces {
		obj, ok := merged[group.name]
		if !ok {
			obj = value.NewObject()
			merged[group.name] = obj
			order = append(order, group.name)
		}
		for _, m := range group.members {
			obj.Set(m.name, m.fn)
		}
	}
	for _, name := range order {
		env.Define(name, merged[name])
	}
}
