package interpreter

import (
	"unicode/utf8"

	"monkey/interpreter-go/pkg/runtime"
)

// newBuiltins builds the builtin table once per interpreter. It is never
// modified afterwards; print is bound to the interpreter's output sink.
func newBuiltins(output func(string)) map[string]*runtime.BuiltinValue {
	table := map[string]runtime.BuiltinFunc{
		"len":   builtinLen,
		"first": builtinFirst,
		"last":  builtinLast,
		"rest":  builtinRest,
		"push":  builtinPush,
		"print": func(args ...runtime.Value) runtime.Value {
			for _, arg := range args {
				output(runtime.Inspect(arg))
			}
			return runtime.Null
		},
	}
	out := make(map[string]*runtime.BuiltinValue, len(table))
	for name, impl := range table {
		out[name] = &runtime.BuiltinValue{Name: name, Impl: impl}
	}
	return out
}

func wrongArgCount(got, want int) *runtime.ErrorValue {
	return runtime.NewError("wrong number of arguments. got=%d, want=%d", got, want)
}

// arrayArg validates the single-array argument shared by first, last and rest.
func arrayArg(name string, args []runtime.Value, want int) (*runtime.ArrayValue, runtime.Value) {
	if len(args) != want {
		return nil, wrongArgCount(len(args), want)
	}
	arr, ok := args[0].(*runtime.ArrayValue)
	if !ok {
		return nil, runtime.NewError("argument to `%s` must be ARRAY, got %s", name, runtime.TypeName(args[0]))
	}
	return arr, nil
}

// len counts characters for strings, not bytes.
func builtinLen(args ...runtime.Value) runtime.Value {
	if len(args) != 1 {
		return wrongArgCount(len(args), 1)
	}
	switch arg := args[0].(type) {
	case runtime.StringValue:
		return runtime.IntegerValue{Val: int64(utf8.RuneCountInString(arg.Val))}
	case *runtime.ArrayValue:
		return runtime.IntegerValue{Val: int64(len(arg.Elements))}
	default:
		return runtime.NewError("argument to `len` not supported, got %s", runtime.TypeName(arg))
	}
}

func builtinFirst(args ...runtime.Value) runtime.Value {
	arr, errVal := arrayArg("first", args, 1)
	if errVal != nil {
		return errVal
	}
	if len(arr.Elements) == 0 {
		return runtime.Null
	}
	return arr.Elements[0]
}

func builtinLast(args ...runtime.Value) runtime.Value {
	arr, errVal := arrayArg("last", args, 1)
	if errVal != nil {
		return errVal
	}
	if len(arr.Elements) == 0 {
		return runtime.Null
	}
	return arr.Elements[len(arr.Elements)-1]
}

func builtinRest(args ...runtime.Value) runtime.Value {
	arr, errVal := arrayArg("rest", args, 1)
	if errVal != nil {
		return errVal
	}
	if len(arr.Elements) == 0 {
		return runtime.Null
	}
	rest := make([]runtime.Value, len(arr.Elements)-1)
	copy(rest, arr.Elements[1:])
	return runtime.NewArray(rest)
}

// push returns a new array; the argument is left untouched.
func builtinPush(args ...runtime.Value) runtime.Value {
	arr, errVal := arrayArg("push", args, 2)
	if errVal != nil {
		return errVal
	}
	elements := make([]runtime.Value, len(arr.Elements), len(arr.Elements)+1)
	copy(elements, arr.Elements)
	return runtime.NewArray(append(elements, args[1]))
}
