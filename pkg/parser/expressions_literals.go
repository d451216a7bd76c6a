package parser

import (
	"strconv"

	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	return ast.NewIdentifier(p.cur.Text)
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.cur.Text, 10, 64)
	if err != nil {
		p.errorAt(p.cur.Pos, "could not parse %q as integer", p.cur.Text)
		return nil
	}
	return ast.NewIntegerLiteral(value)
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return ast.NewStringLiteral(p.cur.Text)
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return ast.NewBooleanLiteral(p.curIs(token.KindTrue))
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	elements, ok := p.parseExpressionList(token.KindRBracket)
	if !ok {
		return nil
	}
	return ast.NewArrayLiteral(elements)
}

// { <expr>: <expr>, ... }
func (p *Parser) parseHashLiteral() ast.Expression {
	pairs := make([]ast.HashPair, 0)
	for !p.peekIs(token.KindRBrace) {
		p.nextToken()
		key := p.parseExpression(precLowest)
		if key == nil {
			return nil
		}
		if !p.expectPeek(token.KindColon) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(precLowest)
		if value == nil {
			return nil
		}
		pairs = append(pairs, ast.HashPair{Key: key, Value: value})
		if !p.peekIs(token.KindRBrace) && !p.expectPeek(token.KindComma) {
			return nil
		}
	}
	if !p.expectPeek(token.KindRBrace) {
		return nil
	}
	return ast.NewHashLiteral(pairs)
}

func (p *Parser) parseExpressionList(end token.Kind) ([]ast.Expression, bool) {
	return parseList(p, end, func() (ast.Expression, bool) {
		expr := p.parseExpression(precLowest)
		return expr, expr != nil
	})
}

// parseList reads a comma separated list whose opening delimiter is cur and
// leaves cur on the closing delimiter. It is shared by call arguments, array
// elements and function parameters.
func parseList[T any](p *Parser, end token.Kind, item func() (T, bool)) ([]T, bool) {
	items := make([]T, 0)
	if p.peekIs(end) {
		p.nextToken()
		return items, true
	}

	p.nextToken()
	first, ok := item()
	if !ok {
		return nil, false
	}
	items = append(items, first)

	for p.peekIs(token.KindComma) {
		p.nextToken()
		p.nextToken()
		next, ok := item()
		if !ok {
			return nil, false
		}
		items = append(items, next)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return items, true
}
