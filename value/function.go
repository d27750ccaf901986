package value

import (
	"strconv"
	"strings"
)

// ArityPolicy describes how many arguments a callable accepts. Builtins
// use it to validate a call before running; user Functions carry no
// policy and are not arity-checked: missing parameters are bound to
// Null and extra arguments are dropped.
type ArityPolicy struct {
	Min      int
	Max      int
	Variadic bool
}

// Exact returns a fixed-arity policy of n arguments.
func Exact(n int) ArityPolicy { return ArityPolicy{Min: n, Max: n} }

// AtLeast returns a variadic policy requiring at least min arguments.
func AtLeast(min int) ArityPolicy { return ArityPolicy{Min: min, Variadic: true} }

// Range returns a policy accepting between min and max arguments.
func Range(min, max int) ArityPolicy { return ArityPolicy{Min: min, Max: max} }

// Accepts reports whether n arguments satisfy the policy.
func (p ArityPolicy) Accepts(n int) bool {
	if n < p.Min {
		return false
	}
	if p.Variadic {
		return true
	}
	return n <= p.Max
}

func (p ArityPolicy) String() string {
	if p.Variadic {
		return "at least " + strconv.Itoa(p.Min)
	}
	if p.Min == p.Max {
		return strconv.Itoa(p.Min)
	}
	return "between " + strconv.Itoa(p.Min) + " and " + strconv.Itoa(p.Max)
}

// Function is a user-defined closure: it carries the parameter names,
// its body (an opaque pointer into the ast package — evaluator knows
// the concrete type), the lexical Environment captured at declaration
// time, and the set of tags it subscribes to via publish-chains.
type Function struct {
	Name   string
	Params []string
	Body   interface{}
	Env    Environment
	Tags   []string
}

func (f *Function) Type() Type { return FunctionType }

func (f *Function) String() string {
	name := f.Name
	if name == "" {
		name = "anonymous"
	}
	return "<function " + name + "(" + strings.Join(f.Params, ", ") + ")>"
}

func (f *Function) Inspect() string { return f.String() }

// Builtin is a host-implemented callable registered by the builtins
// package. Fn closes over whatever runtime context it needs at
// registration time, so Builtin itself stays free of any dependency on
// the evaluator or builtins packages.
type Builtin struct {
	Name   string
	Arity  ArityPolicy
	Fn     func(args []Value) (Value, error)
}

func (b *Builtin) Type() Type      { return BuiltinType }
func (b *Builtin) String() string  { return "<builtin " + b.Name + ">" }
func (b *Builtin) Inspect() string { return b.String() }

// Class is a user-defined class: a name and an ordered method table.
// `new` instantiates it into an Object tagged with this Class; method
// calls against such an Object resolve through Methods.
type Class struct {
	Name    string
	Methods map[string]*Function
	// MethodOrder preserves declaration order for introspection/Inspect.
	MethodOrder []string
}

func NewClass(name string) *Class {
	return &Class{Name: name, Methods: map[string]*Function{}}
}

func (c *Class) AddMethod(fn *Function) {
	if _, exists := c.Methods[fn.Name]; !exists {
		c.MethodOrder = append(c.MethodOrder, fn.Name)
	}
	c.Methods[fn.Name] = fn
}

func (c *Class) Method(name string) (*Function, bool) {
	fn, ok := c.Methods[name]
	return fn, ok
}

func (c *Class) Type() Type      { return ClassType }
func (c *Class) String() string  { return "<class " + c.Name + ">" }
func (c *Class) Inspect() string {
	return "<class " + c.Name + " methods=" + strings.Join(c.MethodOrder, ",") + ">"
}
