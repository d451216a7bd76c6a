package ast

// Short-hand constructors for building trees by hand in tests and tools.
// Lists are never nil so hand-built trees compare equal to parsed ones.

func Prog(stmts ...Statement) *Program { return NewProgram(nonNil(stmts)) }

func Let(name string, value Expression) *LetStatement {
	return NewLetStatement(NewIdentifier(name), value)
}

func Ret(value Expression) *ReturnStatement { return NewReturnStatement(value) }

func Expr(expr Expression) *ExpressionStatement { return NewExpressionStatement(expr) }

// Block wraps bare expressions in expression statements.
func Block(nodes ...Node) *BlockStatement {
	stmts := make([]Statement, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case Statement:
			stmts = append(stmts, v)
		case Expression:
			stmts = append(stmts, NewExpressionStatement(v))
		}
	}
	return NewBlockStatement(stmts)
}

func ID(name string) *Identifier { return NewIdentifier(name) }

func Int(v int64) *IntegerLiteral { return NewIntegerLiteral(v) }

func Str(v string) *StringLiteral { return NewStringLiteral(v) }

func Bool(v bool) *BooleanLiteral { return NewBooleanLiteral(v) }

func Prefix(op string, right Expression) *PrefixExpression {
	return NewPrefixExpression(op, right)
}

func Bin(op string, left, right Expression) *InfixExpression {
	return NewInfixExpression(op, left, right)
}

func If(cond Expression, consequence, alternative *BlockStatement) *IfExpression {
	return NewIfExpression(cond, consequence, alternative)
}

func Fn(params []string, body *BlockStatement) *FunctionLiteral {
	ids := make([]*Identifier, 0, len(params))
	for _, p := range params {
		ids = append(ids, NewIdentifier(p))
	}
	return NewFunctionLiteral(ids, body)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, nonNil(args))
}

func Arr(elements ...Expression) *ArrayLiteral { return NewArrayLiteral(nonNil(elements)) }

func Index(collection, index Expression) *IndexExpression {
	return NewIndexExpression(collection, index)
}

func Hash(pairs ...HashPair) *HashLiteral { return NewHashLiteral(nonNil(pairs)) }

func Pair(key, value Expression) HashPair { return HashPair{Key: key, Value: value} }

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
