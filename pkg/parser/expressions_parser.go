package parser

import (
	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/token"
)

// parseExpression runs the prefix handler for cur, then keeps folding infix
// operators while the next operator binds tighter than minPrec. Equal binding
// power stops the loop, which makes binary operators left-associative.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	prefix := p.prefixFns[p.cur.Kind]
	if prefix == nil {
		p.noPrefixParseFnError(p.cur)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for !p.peekIs(token.KindSemicolon) && minPrec < p.peekPrecedence() {
		infix := p.infixFns[p.peek.Kind]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	operator := p.cur.Text
	p.nextToken()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return ast.NewPrefixExpression(operator, right)
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	operator := p.cur.Text
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return ast.NewInfixExpression(operator, left, right)
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.KindRParen) {
		return nil
	}
	return expr
}

// if (<cond>) { ... } else { ... }
func (p *Parser) parseIfExpression() ast.Expression {
	if !p.expectPeek(token.KindLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(precLowest)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(token.KindRParen) || !p.expectPeek(token.KindLBrace) {
		return nil
	}
	consequence := p.parseBlockStatement()
	if consequence == nil {
		return nil
	}

	var alternative *ast.BlockStatement
	if p.peekIs(token.KindElse) {
		p.nextToken()
		if !p.expectPeek(token.KindLBrace) {
			return nil
		}
		if alternative = p.parseBlockStatement(); alternative == nil {
			return nil
		}
	}
	return ast.NewIfExpression(condition, consequence, alternative)
}

// fn(<params>) { ... }
func (p *Parser) parseFunctionLiteral() ast.Expression {
	if !p.expectPeek(token.KindLParen) {
		return nil
	}
	params, ok := parseList(p, token.KindRParen, p.parseParameter)
	if !ok {
		return nil
	}
	if !p.expectPeek(token.KindLBrace) {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return ast.NewFunctionLiteral(params, body)
}

func (p *Parser) parseParameter() (*ast.Identifier, bool) {
	if !p.curIs(token.KindIdent) {
		p.expectedError(token.KindIdent, p.cur)
		return nil, false
	}
	return ast.NewIdentifier(p.cur.Text), true
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	args, ok := p.parseExpressionList(token.KindRParen)
	if !ok {
		return nil
	}
	return ast.NewCallExpression(callee, args)
}

func (p *Parser) parseIndexExpression(collection ast.Expression) ast.Expression {
	p.nextToken()
	index := p.parseExpression(precLowest)
	if index == nil {
		return nil
	}
	if !p.expectPeek(token.KindRBracket) {
		return nil
	}
	return ast.NewIndexExpression(collection, index)
}
