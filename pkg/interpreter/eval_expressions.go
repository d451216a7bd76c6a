package interpreter

import (
	"fmt"

	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.Identifier:
		return i.evaluateIdentifier(n, env), nil
	case *ast.PrefixExpression:
		return i.evaluatePrefixExpression(n, env)
	case *ast.InfixExpression:
		return i.evaluateInfixExpression(n, env)
	case *ast.IfExpression:
		return i.evaluateIfExpression(n, env)
	case *ast.FunctionLiteral:
		return &runtime.FunctionValue{Declaration: n, Closure: env}, nil
	case *ast.CallExpression:
		return i.evaluateCallExpression(n, env)
	case *ast.ArrayLiteral:
		elements, signal, err := i.evaluateExpressions(n.Elements, env)
		if err != nil || signal != nil {
			return signal, err
		}
		return runtime.NewArray(elements), nil
	case *ast.IndexExpression:
		return i.evaluateIndexExpression(n, env)
	case *ast.HashLiteral:
		return i.evaluateHashLiteral(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", node)
	}
}

func (i *Interpreter) evaluateIdentifier(id *ast.Identifier, env *runtime.Environment) runtime.Value {
	if val, ok := env.Get(id.Name); ok {
		return val
	}
	if fn, ok := i.builtins[id.Name]; ok {
		return fn
	}
	return runtime.NewError("identifier not found: %s", id.Name)
}

// evaluateExpressions evaluates left to right. The first Error or
// ReturnValue aborts the list and is returned as signal.
func (i *Interpreter) evaluateExpressions(exprs []ast.Expression, env *runtime.Environment) ([]runtime.Value, runtime.Value, error) {
	values := make([]runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		val, err := i.evaluateExpression(expr, env)
		if err != nil {
			return nil, nil, err
		}
		if isSignal(val) {
			return nil, val, nil
		}
		values = append(values, val)
	}
	return values, nil, nil
}

//-----------------------------------------------------------------------------
// Operators
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluatePrefixExpression(expr *ast.PrefixExpression, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil || isSignal(right) {
		return right, err
	}
	switch expr.Operator {
	case "!":
		return runtime.Bool(!runtime.IsTruthy(right)), nil
	case "-":
		iv, ok := right.(runtime.IntegerValue)
		if !ok {
			return runtime.NewError("unknown operator: -%s", runtime.TypeName(right)), nil
		}
		return runtime.IntegerValue{Val: -iv.Val}, nil
	default:
		return runtime.NewError("unknown operator: %s%s", expr.Operator, runtime.TypeName(right)), nil
	}
}

func (i *Interpreter) evaluateInfixExpression(expr *ast.InfixExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil || isSignal(left) {
		return left, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil || isSignal(right) {
		return right, err
	}
	return applyInfix(expr.Operator, left, right), nil
}

// applyInfix checks, in order: integer arithmetic, generic equality,
// mismatched kinds, string concatenation.
func applyInfix(op string, left, right runtime.Value) runtime.Value {
	lInt, lok := left.(runtime.IntegerValue)
	rInt, rok := right.(runtime.IntegerValue)
	switch {
	case lok && rok:
		return applyIntegerInfix(op, lInt.Val, rInt.Val)
	case op == "==":
		return runtime.Bool(runtime.Equal(left, right))
	case op == "!=":
		return runtime.Bool(!runtime.Equal(left, right))
	case left.Kind() != right.Kind():
		return runtime.NewError("type mismatch: %s %s %s", runtime.TypeName(left), op, runtime.TypeName(right))
	case left.Kind() == runtime.KindString && op == "+":
		return runtime.StringValue{Val: left.(runtime.StringValue).Val + right.(runtime.StringValue).Val}
	default:
		return runtime.NewError("unknown operator: %s %s %s", runtime.TypeName(left), op, runtime.TypeName(right))
	}
}

func applyIntegerInfix(op string, l, r int64) runtime.Value {
	switch op {
	case "+":
		return runtime.IntegerValue{Val: l + r}
	case "-":
		return runtime.IntegerValue{Val: l - r}
	case "*":
		return runtime.IntegerValue{Val: l * r}
	case "/":
		if r == 0 {
			return runtime.NewError("division by zero")
		}
		return runtime.IntegerValue{Val: l / r}
	case "<":
		return runtime.Bool(l < r)
	case ">":
		return runtime.Bool(l > r)
	case "==":
		return runtime.Bool(l == r)
	case "!=":
		return runtime.Bool(l != r)
	default:
		return runtime.NewError("unknown operator: INTEGER %s INTEGER", op)
	}
}

//-----------------------------------------------------------------------------
// Control flow & calls
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluateIfExpression(expr *ast.IfExpression, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpression(expr.Condition, env)
	if err != nil || isSignal(cond) {
		return cond, err
	}
	if runtime.IsTruthy(cond) {
		return i.evaluateBlock(expr.Consequence, env)
	}
	if expr.Alternative != nil {
		return i.evaluateBlock(expr.Alternative, env)
	}
	return runtime.Null, nil
}

func (i *Interpreter) evaluateCallExpression(call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil || isSignal(callee) {
		return callee, err
	}
	args, signal, err := i.evaluateExpressions(call.Arguments, env)
	if err != nil || signal != nil {
		return signal, err
	}
	return i.CallFunction(callee, args)
}

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluateIndexExpression(expr *ast.IndexExpression, env *runtime.Environment) (runtime.Value, error) {
	collection, err := i.evaluateExpression(expr.Collection, env)
	if err != nil || isSignal(collection) {
		return collection, err
	}
	index, err := i.evaluateExpression(expr.Index, env)
	if err != nil || isSignal(index) {
		return index, err
	}
	return indexValue(collection, index), nil
}

func indexValue(collection, index runtime.Value) runtime.Value {
	switch c := collection.(type) {
	case *runtime.ArrayValue:
		idx, ok := index.(runtime.IntegerValue)
		if !ok {
			return runtime.NewError("index operator not supported: %s", runtime.TypeName(collection))
		}
		if idx.Val < 0 || idx.Val >= int64(len(c.Elements)) {
			return runtime.Null
		}
		return c.Elements[idx.Val]
	case *runtime.HashValue:
		key, ok := runtime.AsHashable(index)
		if !ok {
			return runtime.NewError("unusable as hash key: %s", runtime.TypeName(index))
		}
		if val, found := c.Get(key); found {
			return val
		}
		return runtime.Null
	default:
		return runtime.NewError("index operator not supported: %s", runtime.TypeName(collection))
	}
}

func (i *Interpreter) evaluateHashLiteral(lit *ast.HashLiteral, env *runtime.Environment) (runtime.Value, error) {
	hash := runtime.NewHash()
	for _, pair := range lit.Pairs {
		keyVal, err := i.evaluateExpression(pair.Key, env)
		if err != nil || isSignal(keyVal) {
			return keyVal, err
		}
		key, ok := runtime.AsHashable(keyVal)
		if !ok {
			return runtime.NewError("unusable as hash key: %s", runtime.TypeName(keyVal)), nil
		}
		val, err := i.evaluateExpression(pair.Value, env)
		if err != nil || isSignal(val) {
			return val, err
		}
		hash.Set(key, val)
	}
	return hash, nil
}
