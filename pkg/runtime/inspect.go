package runtime

import (
	"strconv"
	"strings"

	"monkey/interpreter-go/pkg/ast"
)

// Inspect renders a value the way the REPL and `print` display it.
// Strings render raw, without quotes, including inside collections.
func Inspect(v Value) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case IntegerValue:
		return strconv.FormatInt(val.Val, 10)
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case StringValue:
		return val.Val
	case NullValue:
		return "null"
	case *ArrayValue:
		parts := make([]string, 0, len(val.Elements))
		for _, el := range val.Elements {
			parts = append(parts, Inspect(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *HashValue:
		pairs := val.Pairs()
		parts := make([]string, 0, len(pairs))
		for _, pair := range pairs {
			parts = append(parts, Inspect(pair.Key)+":"+Inspect(pair.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *FunctionValue:
		decl := val.Declaration
		return "fn(" + ast.JoinIdentifiers(decl.Parameters) + ") { " + decl.Body.String() + " }"
	case *BuiltinValue:
		return "builtin function"
	case *ReturnValue:
		return Inspect(val.Value)
	case *ErrorValue:
		return "ERROR: " + val.Message
	default:
		return "<" + v.Kind().String() + ">"
	}
}

// TypeName is the upper-case name used in error messages.
func TypeName(v Value) string {
	if v == nil {
		return KindNull.String()
	}
	return v.Kind().String()
}
