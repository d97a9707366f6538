package token

import "testing"

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{EOF, "EOF"},
		{ILLEGAL, "ILLEGAL"},
		{NUMBER, "NUMBER"},
		{IDENT, "IDENT"},
		{PLUS, "+"},
		{MINUS, "-"},
		{STAR, "*"},
		{SLASH, "/"},
		{POW, "**"},
		{EQ, "="},
		{DOT, "."},
		{Type(99), "TOKEN(99)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestIsOperator(t *testing.T) {
	for _, typ := range []Type{PLUS, MINUS, STAR, SLASH, POW, EQ, COMMA, DOT, LPAREN, RPAREN} {
		if !typ.IsOperator() {
			t.Errorf("%s should be an operator", typ)
		}
	}
	for _, typ := range []Type{EOF, ILLEGAL, NUMBER, IDENT} {
		if typ.IsOperator() {
			t.Errorf("%s should not be an operator", typ)
		}
	}
}
