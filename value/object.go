package value

import (
	"strings"

	"github.com/Tangerg/lynx/pkg/maps"
)

// objectData is the shared backing store for an Object value: an
// insertion-ordered string-keyed map, the same way the teacher's
// std package keeps package/namespace members in declaration order.
// Object doubles as the representation for plain object literals, for
// namespace bodies, and (tagged with a Class) for class instances.
type objectData struct {
	fields *maps.LinkedMap[string, Value]
}

type Object struct {
	data  *objectData
	// Class is non-nil when this Object is an instance created by a
	// `new` expression; method calls on it resolve against Class's
	// method table with this bound to the instance.
	Class *Class
}

// NewObject builds an empty, unclassed Object (a plain object literal
// or a namespace body).
func NewObject() *Object {
	return &Object{data: &objectData{fields: maps.NewLinkedMap[string, Value]()}}
}

// NewInstance builds an Object tagged with cls, as `new` produces.
func NewInstance(cls *Class) *Object {
	o := NewObject()
	o.Class = cls
	return o
}

func (o *Object) Type() Type { return ObjectType }

func (o *Object) String() string {
	keys := o.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		v, _ := o.Get(k)
		if s, ok := v.(*String); ok {
			parts[i] = k + ": \"" + s.Value + "\""
		} else {
			parts[i] = k + ": " + v.String()
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (o *Object) Inspect() string {
	keys := o.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		v, _ := o.Get(k)
		parts[i] = k + ": " + v.Inspect()
	}
	tag := "Object"
	if o.Class != nil {
		tag = o.Class.Name
	}
	return "<" + tag + " {" + joinInspect(parts) + "}>"
}

// Len returns the number of fields.
func (o *Object) Len() int { return o.data.fields.Size() }

// Get looks up a field by name.
func (o *Object) Get(name string) (Value, bool) {
	return o.data.fields.Get(name)
}

// Set inserts or overwrites a field, preserving original insertion
// order on overwrite (spec's "redeclaring a namespace member keeps its
// original position" rule, reused here for object literals too).
func (o *Object) Set(name string, v Value) {
	o.data.fields.Put(name, v)
}

// Delete removes a field.
func (o *Object) Delete(name string) {
	o.data.fields.Remove(name)
}

// Keys returns field names in insertion order.
func (o *Object) Keys() []string {
	return o.data.fields.Keys()
}

// Merge copies other's fields into o in other's order, overwriting any
// field already present in o (used for namespace redeclaration merge).
func (o *Object) Merge(other *Object) {
	for _, k := range other.Keys() {
		v, _ := other.Get(k)
		o.Set(k, v)
	}
}
