package driver

import (
	"fmt"
	"os"
	"strings"

	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/lexer"
	"monkey/interpreter-go/pkg/parser"
)

// Source is a program text and where it came from.
type Source struct {
	Path string
	Text string
}

// LoadSource reads a program file.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	return &Source{Path: path, Text: string(data)}, nil
}

// ParseError carries every diagnostic the parser reported.
type ParseError struct {
	Path        string
	Diagnostics []parser.Diagnostic
}

func (e *ParseError) Error() string {
	var b strings.Builder
	name := e.Path
	if name == "" {
		name = "<input>"
	}
	fmt.Fprintf(&b, "parse %s failed:", name)
	for _, diag := range e.Diagnostics {
		b.WriteString("\n\t")
		b.WriteString(diag.String())
	}
	return b.String()
}

// Messages returns the diagnostics without positions.
func (e *ParseError) Messages() []string {
	out := make([]string, 0, len(e.Diagnostics))
	for _, diag := range e.Diagnostics {
		out = append(out, diag.Message)
	}
	return out
}

// Parse parses src. Any diagnostic turns into a *ParseError; the partial
// program is still returned alongside it.
func (s *Source) Parse() (*ast.Program, error) {
	p := parser.New(lexer.New(s.Text))
	program := p.ParseProgram()
	if diags := p.Diagnostics(); len(diags) > 0 {
		return program, &ParseError{Path: s.Path, Diagnostics: diags}
	}
	return program, nil
}

// ParseFile loads and parses path.
func ParseFile(path string) (*Source, *ast.Program, error) {
	src, err := LoadSource(path)
	if err != nil {
		return nil, nil, err
	}
	program, err := src.Parse()
	return src, program, err
}
