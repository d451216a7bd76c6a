package parser

import (
	"fmt"

	"monkey/interpreter-go/pkg/token"
)

// Diagnostic is a parse error anchored at the token that caused it.
type Diagnostic struct {
	Message string         `json:"message"`
	Pos     token.Position `json:"pos"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// Errors returns the accumulated error messages in the order they occurred.
func (p *Parser) Errors() []string {
	msgs := make([]string, 0, len(p.diagnostics))
	for _, d := range p.diagnostics {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

// Diagnostics returns the accumulated errors with their source positions.
func (p *Parser) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(p.diagnostics))
	copy(out, p.diagnostics)
	return out
}

func (p *Parser) errorAt(pos token.Position, format string, args ...any) {
	p.diagnostics = append(p.diagnostics, Diagnostic{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (p *Parser) expectedError(want token.Kind, got token.Token) {
	p.errorAt(got.Pos, "expected next token to be %s, got %s instead", want, got.Kind)
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.errorAt(tok.Pos, "no prefix parse function for %s found", tok.Kind)
}
