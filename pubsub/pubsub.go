/*
File    : slang/pubsub/pubsub.go
Package : pubsub

Package pubsub implements the tag registry and publish-chain dispatch
driver (spec §4.5). It generalizes the teacher's std.Builtin registry
shape (a name keyed onto an ordered list, looked up at call time) to a
TagName -> ordered subscriber list instead of a flat name -> callable
table.

Dispatch itself only knows how to shuffle value.Value slices around;
it never evaluates a Slang call directly (doing so would need the
evaluator's closure-binding and control-flow machinery, which would
import pubsub right back). Instead Dispatch takes a Caller callback the
evaluator supplies, closing over its own Eval/Environment plumbing —
the same inversion value.Builtin.Fn uses to avoid an evaluator import.
*/
package pubsub

import "github.com/akashmaji946/slang/value"

// Caller invokes a subscriber Function with the given arguments and
// returns its result. The evaluator supplies this.
type Caller func(fn *value.Function, args []value.Value) (value.Value, error)

// Registry maps tag name to its ordered subscriber list. Subscription
// order is deterministic: functions are appended in the order their
// declarations are evaluated (spec §4.5), so imported namespaces append
// after the importer's pre-existing subscribers simply by subscribing
// later.
type Registry struct {
	subscribers map[string][]*value.Function
	order       []string
}

// NewRegistry returns an empty tag registry.
func NewRegistry() *Registry {
	return &Registry{subscribers: map[string][]*value.Function{}}
}

// Subscribe appends fn to every tag in fn.Tags. Called once, at the
// point a tagged function declaration (or tagged fn literal) is
// evaluated.
func (r *Registry) Subscribe(fn *value.Function) {
	for _, tag := range fn.Tags {
		if _, exists := r.subscribers[tag]; !exists {
			r.order = append(r.order, tag)
		}
		r.subscribers[tag] = append(r.subscribers[tag], fn)
	}
}

// Subscribers returns the ordered subscriber list for tag.
func (r *Registry) Subscribers(tag string) []*value.Function {
	return r.subscribers[tag]
}

// Dispatch runs a full publish chain: initial values V0 through tag
// sequence tags, per spec §4.5's three-step algorithm, and returns the
// chain's rendered final value.
func (r *Registry) Dispatch(initial []value.Value, tags []string, call Caller) (value.Value, error) {
	stage := initial
	for _, tag := range tags {
		subs := r.subscribers[tag]
		var next []value.Value
		for _, fn := range subs {
			args := packArgs(stage, len(fn.Params))
			result, err := call(fn, args)
			if err != nil {
				return nil, err
			}
			next = append(next, flattenReturn(result)...)
		}
		stage = dropNulls(next)
	}
	return render(stage), nil
}

// packArgs builds the argument list for a subscriber with k declared
// parameters from the previous stage's output, per spec §4.5 step 2.
// Only the 1-param case filters Null out of the packed Array; k>1
// binds positionally (Null included) and k==0 ignores prev entirely.
func packArgs(prev []value.Value, k int) []value.Value {
	switch {
	case k == 0:
		return nil
	case k == 1:
		return []value.Value{value.NewArray(dropNulls(prev))}
	default:
		args := make([]value.Value, k)
		if len(prev) <= k {
			for i := 0; i < k; i++ {
				if i < len(prev) {
					args[i] = prev[i]
				} else {
					args[i] = value.Null
				}
			}
			return args
		}
		for i := 0; i < k-1; i++ {
			args[i] = prev[i]
		}
		args[k-1] = value.NewArray(prev[k-1:])
		return args
	}
}

// flattenReturn implements the "concatenation, flattened one level if
// a subscriber returned an Array" rule: a scalar return is one element,
// an Array return splats its elements.
func flattenReturn(v value.Value) []value.Value {
	if arr, ok := v.(*value.Array); ok {
		cp := make([]value.Value, arr.Len())
		copy(cp, arr.Elements())
		return cp
	}
	return []value.Value{v}
}

func dropNulls(vs []value.Value) []value.Value {
	out := make([]value.Value, 0, len(vs))
	for _, v := range vs {
		if _, isNull := v.(*value.NullValue); isNull {
			continue
		}
		out = append(out, v)
	}
	return out
}

// render implements spec §4.5 step 3.
func render(vs []value.Value) value.Value {
	switch len(vs) {
	case 0:
		return value.Null
	case 1:
		return vs[0]
	default:
		return value.NewArray(vs)
	}
}
