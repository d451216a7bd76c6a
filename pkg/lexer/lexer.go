package lexer

import (
	"unicode/utf8"

	"monkey/interpreter-go/pkg/token"
)

// Lexer turns source text into tokens on demand. It keeps one rune of
// lookahead beyond the current rune, which is enough for `==` and `!=`.
type Lexer struct {
	src string

	pos  int  // byte offset of ch
	next int  // byte offset after ch
	ch   rune // current rune, 0 at end of input
	done bool

	line   int
	column int
}

// New returns a lexer positioned at the first rune of src.
func New(src string) *Lexer {
	l := &Lexer{src: src, line: 1}
	l.readRune()
	return l
}

// Tokenize drains a fresh lexer over src, including the trailing EOF token.
func Tokenize(src string) []token.Token {
	l := New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.KindEOF {
			return toks
		}
	}
}

func (l *Lexer) readRune() {
	if l.done {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.pos = l.next
	l.column++
	if l.next >= len(l.src) {
		l.ch = 0
		l.done = true
		return
	}
	r, w := utf8.DecodeRuneInString(l.src[l.next:])
	l.ch = r
	l.next += w
}

func (l *Lexer) peekRune() rune {
	if l.next >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.next:])
	return r
}

func (l *Lexer) atEnd() bool {
	return l.done
}

// NextToken returns the next token and advances. Once the input is
// exhausted it returns EOF on every call.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	start := token.Position{Line: l.line, Column: l.column}

	if l.atEnd() {
		return token.New(token.KindEOF, "", start)
	}

	var tok token.Token
	switch l.ch {
	case '=':
		if l.peekRune() == '=' {
			l.readRune()
			tok = token.New(token.KindEq, "==", start)
		} else {
			tok = token.New(token.KindAssign, "=", start)
		}
	case '!':
		if l.peekRune() == '=' {
			l.readRune()
			tok = token.New(token.KindNotEq, "!=", start)
		} else {
			tok = token.New(token.KindBang, "!", start)
		}
	case '+':
		tok = token.New(token.KindPlus, "+", start)
	case '-':
		tok = token.New(token.KindMinus, "-", start)
	case '*':
		tok = token.New(token.KindAsterisk, "*", start)
	case '/':
		tok = token.New(token.KindSlash, "/", start)
	case '<':
		tok = token.New(token.KindLT, "<", start)
	case '>':
		tok = token.New(token.KindGT, ">", start)
	case ',':
		tok = token.New(token.KindComma, ",", start)
	case ':':
		tok = token.New(token.KindColon, ":", start)
	case ';':
		tok = token.New(token.KindSemicolon, ";", start)
	case '(':
		tok = token.New(token.KindLParen, "(", start)
	case ')':
		tok = token.New(token.KindRParen, ")", start)
	case '{':
		tok = token.New(token.KindLBrace, "{", start)
	case '}':
		tok = token.New(token.KindRBrace, "}", start)
	case '[':
		tok = token.New(token.KindLBracket, "[", start)
	case ']':
		tok = token.New(token.KindRBracket, "]", start)
	case '"':
		tok = token.New(token.KindString, l.readString(), start)
	default:
		switch {
		case isLetter(l.ch):
			text := l.readWhile(isLetter)
			return token.New(token.LookupIdent(text), text, start)
		case isDigit(l.ch):
			return token.New(token.KindInt, l.readWhile(isDigit), start)
		default:
			tok = token.New(token.KindIllegal, string(l.ch), start)
		}
	}
	l.readRune()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readRune()
	}
}

// readWhile consumes a maximal run of runes matching pred and leaves the
// lexer on the first rune past it.
func (l *Lexer) readWhile(pred func(rune) bool) string {
	start := l.pos
	for !l.atEnd() && pred(l.ch) {
		l.readRune()
	}
	return l.src[start:l.pos]
}

// readString returns the text between the opening quote and the closing
// quote. A missing closing quote ends the string at end of input.
func (l *Lexer) readString() string {
	start := l.pos + 1
	for {
		l.readRune()
		if l.ch == '"' || l.atEnd() {
			break
		}
	}
	return l.src[start:l.pos]
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
