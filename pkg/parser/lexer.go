package parser

import "github.com/mathflow-labs/mathflow/pkg/token"

// Lexer scans normalized math text into tokens. It is a plain byte
// scanner: identifiers and numbers are ASCII, all non-ASCII input should
// have been rewritten by Normalize before lexing and otherwise comes out
// as ILLEGAL tokens.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
}

// NewLexer returns a lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// NextToken returns the next token in the stream, ending with EOF.
func (l *Lexer) NextToken() token.Token {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
	start := l.pos
	var tok token.Token
	switch {
	case l.ch == 0:
		tok = token.Token{Type: token.EOF, Offset: start}
	case l.ch == '+':
		tok = token.Token{Type: token.PLUS, Literal: "+", Offset: start}
		l.readChar()
	case l.ch == '-':
		tok = token.Token{Type: token.MINUS, Literal: "-", Offset: start}
		l.readChar()
	case l.ch == '*':
		if l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			tok = token.Token{Type: token.POW, Literal: "**", Offset: start}
		} else {
			tok = token.Token{Type: token.STAR, Literal: "*", Offset: start}
			l.readChar()
		}
	case l.ch == '/':
		tok = token.Token{Type: token.SLASH, Literal: "/", Offset: start}
		l.readChar()
	case l.ch == '=':
		tok = token.Token{Type: token.EQ, Literal: "=", Offset: start}
		l.readChar()
	case l.ch == ',':
		tok = token.Token{Type: token.COMMA, Literal: ",", Offset: start}
		l.readChar()
	case l.ch == '(':
		tok = token.Token{Type: token.LPAREN, Literal: "(", Offset: start}
		l.readChar()
	case l.ch == ')':
		tok = token.Token{Type: token.RPAREN, Literal: ")", Offset: start}
		l.readChar()
	case l.ch == '.' && !isDigit(l.peekChar()):
		// A bare dot is attribute-access syntax, kept distinct so the
		// guard can name it in its rejection.
		tok = token.Token{Type: token.DOT, Literal: ".", Offset: start}
		l.readChar()
	case isDigit(l.ch) || l.ch == '.':
		tok = token.Token{Type: token.NUMBER, Literal: l.readNumber(), Offset: start}
	case isIdentStart(l.ch):
		tok = token.Token{Type: token.IDENT, Literal: l.readIdent(), Offset: start}
	default:
		tok = token.Token{Type: token.ILLEGAL, Literal: string(l.ch), Offset: start}
		l.readChar()
	}
	return tok
}

func (l *Lexer) readNumber() string {
	start := l.pos
	seenDot := false
	for isDigit(l.ch) || (l.ch == '.' && !seenDot && isDigit(l.peekChar())) {
		if l.ch == '.' {
			seenDot = true
		}
		l.readChar()
	}
	if (l.ch == 'e' || l.ch == 'E') && l.startsExponent() {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

// startsExponent reports whether the e/E under the cursor begins a numeric
// exponent: "2e5" is the number 2e5, while "2e" stays 2 followed by the
// constant e.
func (l *Lexer) startsExponent() bool {
	next := l.peekChar()
	if isDigit(next) {
		return true
	}
	if next == '+' || next == '-' {
		return l.readPos+1 < len(l.input) && isDigit(l.input[l.readPos+1])
	}
	return false
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// Tokens lexes the whole input, EOF excluded.
func Tokens(input string) []token.Token {
	l := NewLexer(input)
	var out []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isIdentStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}
