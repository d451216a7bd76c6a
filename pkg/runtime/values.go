package runtime

import (
	"fmt"

	"monkey/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindBoolean
	KindString
	KindNull
	KindArray
	KindHash
	KindFunction
	KindBuiltin
	KindReturnValue
	KindError
)

// String returns the type name used in runtime error messages.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "INTEGER"
	case KindBoolean:
		return "BOOLEAN"
	case KindString:
		return "STRING"
	case KindNull:
		return "NULL"
	case KindArray:
		return "ARRAY"
	case KindHash:
		return "HASH"
	case KindFunction:
		return "FUNCTION"
	case KindBuiltin:
		return "BUILTIN"
	case KindReturnValue:
		return "RETURN_VALUE"
	case KindError:
		return "ERROR"
	default:
		return fmt.Sprintf("UNKNOWN_KIND_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBoolean }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// Null is the single null value; NullValue has no state so any instance
// compares equal to it.
var Null Value = NullValue{}

// Bool maps a Go bool onto a runtime boolean.
func Bool(b bool) Value { return BoolValue{Val: b} }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

// NewArray wraps elements without copying them.
func NewArray(elements []Value) *ArrayValue {
	if elements == nil {
		elements = []Value{}
	}
	return &ArrayValue{Elements: elements}
}

// HashPair keeps the original key next to the value so the hash can be
// rendered and iterated.
type HashPair struct {
	Key   Value
	Value Value
}

// HashValue maps hashable keys to values and remembers insertion order.
type HashValue struct {
	pairs map[HashKey]HashPair
	order []HashKey
}

func (v *HashValue) Kind() Kind { return KindHash }

func NewHash() *HashValue {
	return &HashValue{pairs: make(map[HashKey]HashPair)}
}

// Set stores value under key. Re-setting a key keeps its original position.
func (v *HashValue) Set(key Hashable, value Value) {
	hk := key.HashKey()
	if _, exists := v.pairs[hk]; !exists {
		v.order = append(v.order, hk)
	}
	v.pairs[hk] = HashPair{Key: key, Value: value}
}

// Get looks up key, reporting whether it is present.
func (v *HashValue) Get(key Hashable) (Value, bool) {
	pair, ok := v.pairs[key.HashKey()]
	if !ok {
		return nil, false
	}
	return pair.Value, true
}

func (v *HashValue) Len() int { return len(v.order) }

// Pairs returns the entries in insertion order.
func (v *HashValue) Pairs() []HashPair {
	out := make([]HashPair, 0, len(v.order))
	for _, hk := range v.order {
		out = append(out, v.pairs[hk])
	}
	return out
}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

type FunctionValue struct {
	Declaration *ast.FunctionLiteral
	Closure     *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// Arity is the number of declared parameters.
func (v *FunctionValue) Arity() int { return len(v.Declaration.Parameters) }

// BuiltinFunc implements a native function. Failures are reported by
// returning an *ErrorValue, never by panicking.
type BuiltinFunc func(args ...Value) Value

type BuiltinValue struct {
	Name string
	Impl BuiltinFunc
}

func (v *BuiltinValue) Kind() Kind { return KindBuiltin }

//-----------------------------------------------------------------------------
// Control signals
//-----------------------------------------------------------------------------

// ReturnValue carries a `return` up to the nearest call boundary or the
// program boundary, where it is unwrapped.
type ReturnValue struct {
	Value Value
}

func (v *ReturnValue) Kind() Kind { return KindReturnValue }

type ErrorValue struct {
	Message string
}

func (v *ErrorValue) Kind() Kind { return KindError }

func (v *ErrorValue) Error() string { return v.Message }

// NewError builds an error value from a format string.
func NewError(format string, args ...any) *ErrorValue {
	return &ErrorValue{Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether v is an error value.
func IsError(v Value) bool {
	return v != nil && v.Kind() == KindError
}
