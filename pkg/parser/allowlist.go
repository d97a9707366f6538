package parser

import (
	"fmt"
	"strings"

	"github.com/mathflow-labs/mathflow/pkg/token"
)

// Allowlist is the closed namespace the parser is permitted to resolve
// identifiers against: variable symbols, mathematical constants, and
// function names. It is built once at startup and read concurrently
// afterwards; there is no way to extend it per request.
type Allowlist struct {
	symbols   map[string]struct{}
	constants map[string]struct{}
	functions map[string]struct{}
}

// funcAliases maps accepted spellings to the canonical function name.
var funcAliases = map[string]string{"log": "ln"}

// NewAllowlist builds the default namespace: single-letter symbols a-z
// (except e, which is the Euler constant), digit-suffixed x1..z9, a few
// Greek letter names, the constants pi and e, and the elementary function
// set.
func NewAllowlist() *Allowlist {
	a := &Allowlist{
		symbols:   map[string]struct{}{},
		constants: map[string]struct{}{},
		functions: map[string]struct{}{},
	}
	for ch := byte('a'); ch <= 'z'; ch++ {
		if ch == 'e' {
			continue
		}
		a.symbols[string(ch)] = struct{}{}
	}
	for _, base := range []string{"x", "y", "z"} {
		for d := 1; d <= 9; d++ {
			a.symbols[fmt.Sprintf("%s%d", base, d)] = struct{}{}
		}
	}
	for _, greek := range []string{"alpha", "beta", "gamma", "theta", "phi"} {
		a.symbols[greek] = struct{}{}
	}
	a.constants["pi"] = struct{}{}
	a.constants["e"] = struct{}{}
	for _, fn := range []string{
		"sin", "cos", "tan", "asin", "acos", "atan",
		"sinh", "cosh", "tanh",
		"sqrt", "exp", "log", "ln",
		"abs", "floor", "ceil", "sign",
	} {
		a.functions[fn] = struct{}{}
	}
	return a
}

// AddSymbols extends the variable namespace. Only for use at process
// start, before the allow-list is shared.
func (a *Allowlist) AddSymbols(names ...string) {
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, taken := a.constants[n]; taken {
			continue
		}
		if _, taken := a.functions[n]; taken {
			continue
		}
		a.symbols[n] = struct{}{}
	}
}

// IsSymbol reports whether name is an allowed variable symbol.
func (a *Allowlist) IsSymbol(name string) bool {
	_, ok := a.symbols[name]
	return ok
}

// IsConstant reports whether name is an allowed constant.
func (a *Allowlist) IsConstant(name string) bool {
	_, ok := a.constants[name]
	return ok
}

// IsFunction reports whether name is an allowed function, alias spellings
// included.
func (a *Allowlist) IsFunction(name string) bool {
	if _, ok := funcAliases[name]; ok {
		return true
	}
	_, ok := a.functions[name]
	return ok
}

// Canonical resolves alias spellings to the canonical function name.
func (a *Allowlist) Canonical(name string) string {
	if c, ok := funcAliases[name]; ok {
		return c
	}
	return name
}

// known reports whether name is resolvable at all.
func (a *Allowlist) known(name string) bool {
	return a.IsSymbol(name) || a.IsConstant(name) || a.IsFunction(name)
}

// Check filters the token stream before any name resolution happens:
// every identifier must be in the allow-list, attribute access and
// double-underscore patterns are refused outright, and function names may
// only appear in call position. A nil error means every token is safe to
// hand to the expression parser.
func (a *Allowlist) Check(toks []token.Token) error {
	for i, tok := range toks {
		switch tok.Type {
		case token.ILLEGAL:
			return &UnsafeInputError{Detail: fmt.Sprintf("illegal character %q", tok.Literal)}
		case token.DOT:
			return &UnsafeInputError{Detail: "attribute access is not allowed"}
		case token.IDENT:
			name := tok.Literal
			if strings.Contains(name, "__") {
				return &UnsafeInputError{Detail: fmt.Sprintf("identifier %q looks reflective", name)}
			}
			if !a.known(name) {
				return &UnsafeInputError{Detail: fmt.Sprintf("identifier %q is not allowed", name)}
			}
			calling := i+1 < len(toks) && toks[i+1].Type == token.LPAREN
			if calling && !a.IsFunction(name) {
				return &UnsafeInputError{Detail: fmt.Sprintf("%q is not a callable function", name)}
			}
			if !calling && a.IsFunction(name) && !a.IsSymbol(name) && !a.IsConstant(name) {
				return &UnsafeInputError{Detail: fmt.Sprintf("function %q used without a call", name)}
			}
		}
	}
	return nil
}
