package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind string

const (
	KindIllegal Kind = "ILLEGAL"
	KindEOF     Kind = "EOF"

	KindIdent  Kind = "IDENT"
	KindInt    Kind = "INT"
	KindString Kind = "STRING"

	KindAssign   Kind = "="
	KindPlus     Kind = "+"
	KindMinus    Kind = "-"
	KindBang     Kind = "!"
	KindAsterisk Kind = "*"
	KindSlash    Kind = "/"
	KindLT       Kind = "<"
	KindGT       Kind = ">"
	KindEq       Kind = "=="
	KindNotEq    Kind = "!="

	KindComma     Kind = ","
	KindColon     Kind = ":"
	KindSemicolon Kind = ";"
	KindLParen    Kind = "("
	KindRParen    Kind = ")"
	KindLBrace    Kind = "{"
	KindRBrace    Kind = "}"
	KindLBracket  Kind = "["
	KindRBracket  Kind = "]"

	KindFunction Kind = "FUNCTION"
	KindLet      Kind = "LET"
	KindTrue     Kind = "TRUE"
	KindFalse    Kind = "FALSE"
	KindIf       Kind = "IF"
	KindElse     Kind = "ELSE"
	KindReturn   Kind = "RETURN"
)

var keywords = map[string]Kind{
	"fn":     KindFunction,
	"let":    KindLet,
	"true":   KindTrue,
	"false":  KindFalse,
	"if":     KindIf,
	"else":   KindElse,
	"return": KindReturn,
}

// LookupIdent classifies a run of letters as a keyword or a plain identifier.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return KindIdent
}

// Position is a 1-based line/column location in the source text.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is an immutable lexeme produced by the lexer.
type Token struct {
	Kind Kind     `json:"kind"`
	Text string   `json:"text"`
	Pos  Position `json:"pos"`
}

// New builds a token at the given position.
func New(kind Kind, text string, pos Position) Token {
	return Token{Kind: kind, Text: text, Pos: pos}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %s", t.Kind, t.Text, t.Pos)
}
