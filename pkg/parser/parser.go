package parser

import (
	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/lexer"
	"monkey/interpreter-go/pkg/token"
)

// Binding powers, lowest to highest.
const (
	_ int = iota
	precLowest
	precEquals      // == !=
	precLessGreater // < >
	precSum         // + -
	precProduct     // * /
	precPrefix      // -x !x
	precCall        // f(x)
	precIndex       // a[i]
)

var precedences = map[token.Kind]int{
	token.KindEq:       precEquals,
	token.KindNotEq:    precEquals,
	token.KindLT:       precLessGreater,
	token.KindGT:       precLessGreater,
	token.KindPlus:     precSum,
	token.KindMinus:    precSum,
	token.KindAsterisk: precProduct,
	token.KindSlash:    precProduct,
	token.KindLParen:   precCall,
	token.KindLBracket: precIndex,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(left ast.Expression) ast.Expression
)

// Parser is a recursive-descent parser with Pratt-style expression parsing.
// It keeps two tokens of lookahead and accumulates errors instead of
// stopping at the first one.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	diagnostics []Diagnostic

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

// New constructs a parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:         l,
		prefixFns: make(map[token.Kind]prefixParseFn),
		infixFns:  make(map[token.Kind]infixParseFn),
	}

	p.registerPrefix(token.KindIdent, p.parseIdentifier)
	p.registerPrefix(token.KindInt, p.parseIntegerLiteral)
	p.registerPrefix(token.KindString, p.parseStringLiteral)
	p.registerPrefix(token.KindTrue, p.parseBooleanLiteral)
	p.registerPrefix(token.KindFalse, p.parseBooleanLiteral)
	p.registerPrefix(token.KindBang, p.parsePrefixExpression)
	p.registerPrefix(token.KindMinus, p.parsePrefixExpression)
	p.registerPrefix(token.KindLParen, p.parseGroupedExpression)
	p.registerPrefix(token.KindIf, p.parseIfExpression)
	p.registerPrefix(token.KindFunction, p.parseFunctionLiteral)
	p.registerPrefix(token.KindLBracket, p.parseArrayLiteral)
	p.registerPrefix(token.KindLBrace, p.parseHashLiteral)

	for _, kind := range []token.Kind{
		token.KindPlus, token.KindMinus, token.KindAsterisk, token.KindSlash,
		token.KindEq, token.KindNotEq, token.KindLT, token.KindGT,
	} {
		p.registerInfix(kind, p.parseInfixExpression)
	}
	p.registerInfix(token.KindLParen, p.parseCallExpression)
	p.registerInfix(token.KindLBracket, p.parseIndexExpression)

	// Fill cur and peek.
	p.nextToken()
	p.nextToken()
	return p
}

// ParseSource lexes and parses src in one step.
func ParseSource(src string) (*ast.Program, []string) {
	p := New(lexer.New(src))
	program := p.ParseProgram()
	return program, p.Errors()
}

func (p *Parser) registerPrefix(kind token.Kind, fn prefixParseFn) {
	p.prefixFns[kind] = fn
}

func (p *Parser) registerInfix(kind token.Kind, fn infixParseFn) {
	p.infixFns[kind] = fn
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(kind token.Kind) bool  { return p.cur.Kind == kind }
func (p *Parser) peekIs(kind token.Kind) bool { return p.peek.Kind == kind }

// expectPeek advances only when the next token has the wanted kind and
// records an error otherwise.
func (p *Parser) expectPeek(kind token.Kind) bool {
	if p.peekIs(kind) {
		p.nextToken()
		return true
	}
	p.expectedError(kind, p.peek)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Kind]; ok {
		return prec
	}
	return precLowest
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Kind]; ok {
		return prec
	}
	return precLowest
}

// ParseProgram parses statements until end of input. Statements that fail
// to parse are dropped; their errors are available from Errors.
func (p *Parser) ParseProgram() *ast.Program {
	stmts := make([]ast.Statement, 0)
	for !p.curIs(token.KindEOF) {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
	}
	return ast.NewProgram(stmts)
}
