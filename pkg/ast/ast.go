package ast

import (
	"strconv"
	"strings"
)

type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeLetStatement        NodeType = "LetStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeIdentifier          NodeType = "Identifier"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodePrefixExpression    NodeType = "PrefixExpression"
	NodeInfixExpression     NodeType = "InfixExpression"
	NodeIfExpression        NodeType = "IfExpression"
	NodeFunctionLiteral     NodeType = "FunctionLiteral"
	NodeCallExpression      NodeType = "CallExpression"
	NodeArrayLiteral        NodeType = "ArrayLiteral"
	NodeIndexExpression     NodeType = "IndexExpression"
	NodeHashLiteral         NodeType = "HashLiteral"
)

// Node is implemented by every syntax tree element. String renders the node
// back to source form with every prefix and infix operation parenthesized.
type Node interface {
	NodeType() NodeType
	String() string
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Program is the root of every parsed source text.
type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

func (p *Program) String() string {
	var b strings.Builder
	for _, stmt := range p.Statements {
		b.WriteString(stmt.String())
	}
	return b.String()
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type LetStatement struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewLetStatement(name *Identifier, value Expression) *LetStatement {
	return &LetStatement{nodeImpl: newNodeImpl(NodeLetStatement), Name: name, Value: value}
}

func (s *LetStatement) String() string {
	return "let " + s.Name.String() + " = " + stringOf(s.Value) + ";"
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}

func (s *ReturnStatement) String() string {
	return "return " + stringOf(s.Value) + ";"
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

func (s *ExpressionStatement) String() string {
	return stringOf(s.Expression)
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlockStatement(statements []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Statements: statements}
}

func (s *BlockStatement) String() string {
	parts := make([]string, 0, len(s.Statements))
	for _, stmt := range s.Statements {
		parts = append(parts, stmt.String())
	}
	return strings.Join(parts, " ")
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

func (e *Identifier) String() string { return e.Name }

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

func (e *IntegerLiteral) String() string { return strconv.FormatInt(e.Value, 10) }

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// String quotes the value without escaping; the lexer has no escapes either.
func (e *StringLiteral) String() string { return `"` + e.Value + `"` }

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

func (e *BooleanLiteral) String() string { return strconv.FormatBool(e.Value) }

type PrefixExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Right    Expression `json:"right"`
}

func NewPrefixExpression(operator string, right Expression) *PrefixExpression {
	return &PrefixExpression{nodeImpl: newNodeImpl(NodePrefixExpression), Operator: operator, Right: right}
}

func (e *PrefixExpression) String() string {
	return "(" + e.Operator + stringOf(e.Right) + ")"
}

type InfixExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewInfixExpression(operator string, left, right Expression) *InfixExpression {
	return &InfixExpression{nodeImpl: newNodeImpl(NodeInfixExpression), Operator: operator, Left: left, Right: right}
}

func (e *InfixExpression) String() string {
	return "(" + stringOf(e.Left) + " " + e.Operator + " " + stringOf(e.Right) + ")"
}

type IfExpression struct {
	nodeImpl
	expressionMarker

	Condition   Expression      `json:"condition"`
	Consequence *BlockStatement `json:"consequence"`
	Alternative *BlockStatement `json:"alternative,omitempty"`
}

func NewIfExpression(condition Expression, consequence, alternative *BlockStatement) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Condition: condition, Consequence: consequence, Alternative: alternative}
}

func (e *IfExpression) String() string {
	var b strings.Builder
	b.WriteString("if (")
	b.WriteString(stringOf(e.Condition))
	b.WriteString(") { ")
	b.WriteString(e.Consequence.String())
	b.WriteString(" }")
	if e.Alternative != nil {
		b.WriteString(" else { ")
		b.WriteString(e.Alternative.String())
		b.WriteString(" }")
	}
	return b.String()
}

type FunctionLiteral struct {
	nodeImpl
	expressionMarker

	Parameters []*Identifier   `json:"parameters"`
	Body       *BlockStatement `json:"body"`
}

func NewFunctionLiteral(params []*Identifier, body *BlockStatement) *FunctionLiteral {
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunctionLiteral), Parameters: params, Body: body}
}

func (e *FunctionLiteral) String() string {
	return "fn(" + JoinIdentifiers(e.Parameters) + ") { " + e.Body.String() + " }"
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: args}
}

func (e *CallExpression) String() string {
	return stringOf(e.Callee) + "(" + joinExpressions(e.Arguments) + ")"
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

func (e *ArrayLiteral) String() string {
	return "[" + joinExpressions(e.Elements) + "]"
}

type IndexExpression struct {
	nodeImpl
	expressionMarker

	Collection Expression `json:"collection"`
	Index      Expression `json:"index"`
}

func NewIndexExpression(collection, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Collection: collection, Index: index}
}

func (e *IndexExpression) String() string {
	return "(" + stringOf(e.Collection) + "[" + stringOf(e.Index) + "])"
}

// HashPair is one `key: value` entry of a hash literal.
type HashPair struct {
	Key   Expression `json:"key"`
	Value Expression `json:"value"`
}

type HashLiteral struct {
	nodeImpl
	expressionMarker

	Pairs []HashPair `json:"pairs"`
}

func NewHashLiteral(pairs []HashPair) *HashLiteral {
	return &HashLiteral{nodeImpl: newNodeImpl(NodeHashLiteral), Pairs: pairs}
}

func (e *HashLiteral) String() string {
	parts := make([]string, 0, len(e.Pairs))
	for _, pair := range e.Pairs {
		parts = append(parts, stringOf(pair.Key)+":"+stringOf(pair.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

//-----------------------------------------------------------------------------
// Helpers
//-----------------------------------------------------------------------------

// JoinIdentifiers renders a parameter list as `a, b, c`.
func JoinIdentifiers(ids []*Identifier) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.Name)
	}
	return strings.Join(names, ", ")
}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		parts = append(parts, stringOf(expr))
	}
	return strings.Join(parts, ", ")
}

// stringOf tolerates nil children left behind by a failed parse.
func stringOf(n Node) string {
	if n == nil {
		return ""
	}
	return n.String()
}
