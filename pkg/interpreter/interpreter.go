package interpreter

import (
	"errors"
	"fmt"

	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/runtime"
)

// ErrCallDepthExceeded is returned when nested user function calls exceed
// the configured limit. It is a host fault, not a language-level Error.
var ErrCallDepthExceeded = errors.New("maximum call depth exceeded")

// DefaultMaxCallDepth bounds recursion unless overridden with WithMaxCallDepth.
const DefaultMaxCallDepth = 10000

// Interpreter walks Monkey ASTs.
type Interpreter struct {
	global       *runtime.Environment
	builtins     map[string]*runtime.BuiltinValue
	output       func(string)
	maxCallDepth int
	depth        int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the sink used by `print`. Each call receives one line
// without its trailing newline.
func WithOutput(fn func(line string)) Option {
	return func(i *Interpreter) {
		i.output = fn
	}
}

// WithMaxCallDepth limits nested user function calls; 0 disables the limit.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		i.maxCallDepth = depth
	}
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:       runtime.NewEnvironment(nil),
		output:       func(string) {},
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.builtins = newBuiltins(i.output)
	return i
}

// GlobalEnvironment returns the interpreter’s global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Builtin looks up a builtin function by name.
func (i *Interpreter) Builtin(name string) (*runtime.BuiltinValue, bool) {
	fn, ok := i.builtins[name]
	return fn, ok
}

// EvaluateProgram runs program in env (the global environment when env is
// nil). A top-level `return` ends the program with its value; an Error
// value ends it with that Error. The Go error is non-nil only for host
// faults such as ErrCallDepthExceeded.
func (i *Interpreter) EvaluateProgram(program *ast.Program, env *runtime.Environment) (runtime.Value, error) {
	if program == nil {
		return runtime.Null, nil
	}
	if env == nil {
		env = i.global
	}
	var result runtime.Value = runtime.Null
	for _, stmt := range program.Statements {
		val, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		switch v := val.(type) {
		case *runtime.ReturnValue:
			return v.Value, nil
		case *runtime.ErrorValue:
			return v, nil
		}
		result = val
	}
	return result, nil
}

// Eval evaluates any node against env.
func (i *Interpreter) Eval(node ast.Node, env *runtime.Environment) (runtime.Value, error) {
	if env == nil {
		env = i.global
	}
	switch n := node.(type) {
	case *ast.Program:
		return i.EvaluateProgram(n, env)
	case ast.Statement:
		return i.evaluateStatement(n, env)
	case ast.Expression:
		return i.evaluateExpression(n, env)
	default:
		return nil, fmt.Errorf("unsupported node type: %T", node)
	}
}

// CallFunction applies a function or builtin value to already evaluated
// arguments.
func (i *Interpreter) CallFunction(callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args)
	case *runtime.BuiltinValue:
		return fn.Impl(args...), nil
	default:
		return runtime.NewError("not a function: %s", runtime.TypeName(callee)), nil
	}
}

func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	if len(args) != fn.Arity() {
		return runtime.NewError("wrong number of arguments: want=%d, got=%d", fn.Arity(), len(args)), nil
	}
	if i.maxCallDepth > 0 && i.depth >= i.maxCallDepth {
		return nil, fmt.Errorf("call depth %d: %w", i.maxCallDepth, ErrCallDepthExceeded)
	}
	i.depth++
	defer func() { i.depth-- }()

	callEnv := runtime.NewEnclosedEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Parameters {
		callEnv.Define(param.Name, args[idx])
	}
	result, err := i.evaluateStatements(fn.Declaration.Body.Statements, callEnv)
	if err != nil {
		return nil, err
	}
	if ret, ok := result.(*runtime.ReturnValue); ok {
		return ret.Value, nil
	}
	return result, nil
}
