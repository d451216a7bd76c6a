package parser

import (
	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/token"
)

// parseStatement returns a nil interface on failure; a typed nil pointer
// would otherwise slip into the statement list.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.KindLet:
		if stmt := p.parseLetStatement(); stmt != nil {
			return stmt
		}
	case token.KindReturn:
		if stmt := p.parseReturnStatement(); stmt != nil {
			return stmt
		}
	default:
		if stmt := p.parseExpressionStatement(); stmt != nil {
			return stmt
		}
	}
	return nil
}

// let <ident> = <expr>;
func (p *Parser) parseLetStatement() *ast.LetStatement {
	if !p.expectPeek(token.KindIdent) {
		return nil
	}
	name := ast.NewIdentifier(p.cur.Text)
	if !p.expectPeek(token.KindAssign) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(precLowest)
	if value == nil {
		return nil
	}
	if p.peekIs(token.KindSemicolon) {
		p.nextToken()
	}
	return ast.NewLetStatement(name, value)
}

// return <expr>;
func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	p.nextToken()
	value := p.parseExpression(precLowest)
	if value == nil {
		return nil
	}
	if p.peekIs(token.KindSemicolon) {
		p.nextToken()
	}
	return ast.NewReturnStatement(value)
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if p.peekIs(token.KindSemicolon) {
		p.nextToken()
	}
	return ast.NewExpressionStatement(expr)
}

// parseBlockStatement expects cur to be `{` and leaves cur on the matching `}`.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	stmts := make([]ast.Statement, 0)
	p.nextToken()
	for !p.curIs(token.KindRBrace) {
		if p.curIs(token.KindEOF) {
			p.expectedError(token.KindRBrace, p.cur)
			return nil
		}
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
	}
	return ast.NewBlockStatement(stmts)
}
