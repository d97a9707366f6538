// Package token defines the lexical token types for math expression parsing.
package token

import "fmt"

// Type represents the type of a lexical token.
type Type int

const (
	// Special tokens
	EOF Type = iota
	ILLEGAL

	// Literals
	NUMBER // 123, 45.67, 1e10
	IDENT  // x, sin, pi

	// Operators
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	POW    // ** (also lexes ^, which normalization rewrites away)
	EQ     // =
	COMMA  // ,
	DOT    // . outside a numeric literal; only ever rejected
	LPAREN // (
	RPAREN // )
)

// typeNames maps token types to their string representations.
var typeNames = map[Type]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	NUMBER:  "NUMBER",
	IDENT:   "IDENT",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	POW:     "**",
	EQ:      "=",
	COMMA:   ",",
	DOT:     ".",
	LPAREN:  "(",
	RPAREN:  ")",
}

// String returns a human-readable representation of the token type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// IsOperator returns true if the token type is an operator.
func (t Type) IsOperator() bool {
	return t >= PLUS && t <= RPAREN
}

// Token represents a lexical token with its position in the input.
type Token struct {
	Type    Type
	Literal string
	Offset  int // byte offset in the input (0-based)
}
