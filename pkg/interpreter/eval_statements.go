package interpreter

import (
	"fmt"

	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		return i.evaluateExpression(n.Expression, env)
	case *ast.LetStatement:
		return i.evaluateLetStatement(n, env)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	case *ast.BlockStatement:
		return i.evaluateBlock(n, env)
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", node.NodeType())
	}
}

// evaluateBlock runs a braced block in its own scope so `let` inside it
// shadows rather than rebinds outer names.
func (i *Interpreter) evaluateBlock(block *ast.BlockStatement, env *runtime.Environment) (runtime.Value, error) {
	if block == nil {
		return runtime.Null, nil
	}
	return i.evaluateStatements(block.Statements, env.Extend())
}

// evaluateStatements stops at the first ReturnValue or Error and hands it
// back still wrapped, so a return cascades out of nested blocks.
func (i *Interpreter) evaluateStatements(stmts []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.Null
	for _, stmt := range stmts {
		val, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		if isSignal(val) {
			return val, nil
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) evaluateLetStatement(stmt *ast.LetStatement, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return nil, err
	}
	if isSignal(val) {
		return val, nil
	}
	return env.Define(stmt.Name.Name, val), nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) (runtime.Value, error) {
	var val runtime.Value = runtime.Null
	if stmt.Value != nil {
		v, err := i.evaluateExpression(stmt.Value, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		val = v
	}
	return &runtime.ReturnValue{Value: val}, nil
}

// isSignal reports whether v is an Error or ReturnValue, both of which stop
// evaluation of whatever encloses them.
func isSignal(v runtime.Value) bool {
	if v == nil {
		return false
	}
	kind := v.Kind()
	return kind == runtime.KindError || kind == runtime.KindReturnValue
}
