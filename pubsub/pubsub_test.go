package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/slang/value"
)

func fn(name string, params ...string) *value.Function {
	return &value.Function{Name: name, Params: params, Tags: []string{}}
}

func TestSubscribeOrderIsDeclarationOrder(t *testing.T) {
	r := NewRegistry()
	a := fn("a", "x")
	a.Tags = []string{"T"}
	b := fn("b", "x")
	b.Tags = []string{"T"}
	r.Subscribe(a)
	r.Subscribe(b)
	subs := r.Subscribers("T")
	require.Len(t, subs, 2)
	assert.Same(t, a, subs[0])
	assert.Same(t, b, subs[1])
}

func TestDispatchSingleParamPacksArrayOfNonNull(t *testing.T) {
	r := NewRegistry()
	squareAll := fn("square", "arr")
	squareAll.Tags = []string{"T1"}
	r.Subscribe(squareAll)

	var captured []value.Value
	caller := func(f *value.Function, args []value.Value) (value.Value, error) {
		captured = args
		return value.Null, nil
	}

	_, err := r.Dispatch([]value.Value{value.NewInteger(1), value.NewInteger(2)}, []string{"T1"}, caller)
	require.NoError(t, err)
	require.Len(t, captured, 1)
	arr := captured[0].(*value.Array)
	require.Equal(t, 2, arr.Len())
	assert.Equal(t, int64(1), arr.At(0).(*value.Integer).Value)
}

func TestDispatchMultiParamSplatsRemainderIntoLastParam(t *testing.T) {
	r := NewRegistry()
	f := fn("f", "a", "b")
	f.Tags = []string{"T"}
	r.Subscribe(f)

	var captured []value.Value
	caller := func(fn *value.Function, args []value.Value) (value.Value, error) {
		captured = args
		return value.Null, nil
	}

	vals := []value.Value{value.NewInteger(1), value.NewInteger(2), value.NewInteger(3)}
	_, err := r.Dispatch(vals, []string{"T"}, caller)
	require.NoError(t, err)
	require.Len(t, captured, 2)
	assert.Equal(t, int64(1), captured[0].(*value.Integer).Value)
	rest := captured[1].(*value.Array)
	assert.Equal(t, 2, rest.Len())
}

func TestDispatchMultiParamPadsMissingWithNull(t *testing.T) {
	r := NewRegistry()
	f := fn("f", "a", "b", "c")
	f.Tags = []string{"T"}
	r.Subscribe(f)

	var captured []value.Value
	caller := func(fn *value.Function, args []value.Value) (value.Value, error) {
		captured = args
		return value.Null, nil
	}

	_, err := r.Dispatch([]value.Value{value.NewInteger(1)}, []string{"T"}, caller)
	require.NoError(t, err)
	require.Len(t, captured, 3)
	assert.Same(t, value.Null, captured[1])
	assert.Same(t, value.Null, captured[2])
}

func TestDispatchChainSquareThenPrint(t *testing.T) {
	r := NewRegistry()
	sq := fn("sq", "n")
	sq.Tags = []string{"Sq"}
	prt := fn("prt", "n")
	prt.Tags = []string{"Prt"}
	r.Subscribe(sq)
	r.Subscribe(prt)

	caller := func(f *value.Function, args []value.Value) (value.Value, error) {
		switch f.Name {
		case "sq":
			arr := args[0].(*value.Array)
			n := arr.At(0).(*value.Integer).Value
			return value.NewInteger(n * n), nil
		case "prt":
			return args[0], nil
		}
		return value.Null, nil
	}

	result, err := r.Dispatch([]value.Value{value.NewInteger(3)}, []string{"Sq", "Prt"}, caller)
	require.NoError(t, err)
	assert.Equal(t, int64(9), result.(*value.Integer).Value)
}

func TestDispatchFlattensArrayReturnOneLevel(t *testing.T) {
	r := NewRegistry()
	emit := fn("emit", "arr")
	emit.Tags = []string{"T"}
	r.Subscribe(emit)

	caller := func(f *value.Function, args []value.Value) (value.Value, error) {
		return value.NewArray([]value.Value{value.NewInteger(1), value.NewInteger(2)}), nil
	}

	result, err := r.Dispatch([]value.Value{value.NewInteger(0)}, []string{"T"}, caller)
	require.NoError(t, err)
	arr := result.(*value.Array)
	assert.Equal(t, 2, arr.Len())
}

func TestDispatchEmptyResultRendersNull(t *testing.T) {
	r := NewRegistry()
	result, err := r.Dispatch([]value.Value{value.NewInteger(1)}, []string{"NoSubs"}, func(f *value.Function, args []value.Value) (value.Value, error) {
		return value.Null, nil
	})
	require.NoError(t, err)
	assert.Same(t, value.Null, result)
}

func TestDispatchNullReturnsDroppedFromStage(t *testing.T) {
	r := NewRegistry()
	a := fn("a", "n")
	a.Tags = []string{"T"}
	b := fn("b", "n")
	b.Tags = []string{"T"}
	r.Subscribe(a)
	r.Subscribe(b)

	caller := func(f *value.Function, args []value.Value) (value.Value, error) {
		if f.Name == "a" {
			return value.Null, nil
		}
		return value.NewInteger(5), nil
	}

	result, err := r.Dispatch([]value.Value{value.NewInteger(1)}, []string{"T"}, caller)
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.(*value.Integer).Value)
}
