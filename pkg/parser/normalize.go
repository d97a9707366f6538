package parser

import (
	"strings"

	"github.com/mathflow-labs/mathflow/pkg/token"
)

// unicodeCleanup rewrites math glyphs that show up in pasted or
// OCR-scanned input into their ASCII operator forms.
var unicodeCleanup = strings.NewReplacer(
	"×", "*", "·", "*", "∙", "*",
	"÷", "/",
	"−", "-", "–", "-", "—", "-",
	"√", "sqrt",
	"π", "pi",
	"²", "**2", "³", "**3",
)

// Normalize rewrites raw query text into parser-ready syntax. It is total:
// malformed input comes out rewritten but still malformed, and fails later
// at guard or parse time. Passes, in order: unicode cleanup, == to =,
// caret to **, then a token-level rewrite that collapses whitespace and
// inserts implicit multiplication.
//
// Implicit multiplication is inserted when a number is followed by an
// identifier or an opening parenthesis, when a closing parenthesis is
// followed by an atom, between any two atoms that were separated only by
// whitespace, and when a known variable or constant is followed
// by an opening parenthesis. An unknown identifier before a parenthesis is
// left as call syntax on purpose: deciding whether it is a legal function
// is the guard's job, not the normalizer's.
func Normalize(text string, allowed *Allowlist) string {
	text = unicodeCleanup.Replace(text)
	text = strings.ReplaceAll(text, "==", "=")
	text = strings.ReplaceAll(text, "^", "**")

	toks := Tokens(text)
	var b strings.Builder
	var prev token.Token
	havePrev := false
	for _, tok := range toks {
		if havePrev && insertStar(prev, tok, allowed) {
			b.WriteString("*")
		}
		switch tok.Type {
		case token.EQ:
			b.WriteString(" = ")
		case token.PLUS, token.MINUS:
			if havePrev && isAtomEnd(prev.Type) {
				b.WriteString(" " + tok.Literal + " ")
			} else {
				b.WriteString(tok.Literal)
			}
		case token.COMMA:
			b.WriteString(", ")
		default:
			b.WriteString(tok.Literal)
		}
		prev = tok
		havePrev = true
	}
	return strings.TrimSpace(b.String())
}

// isAtomEnd reports whether a token can end an operand, which makes a
// following +/- a binary operator rather than a sign.
func isAtomEnd(t token.Type) bool {
	return t == token.NUMBER || t == token.IDENT || t == token.RPAREN
}

// insertStar decides where the rebuild puts an explicit `*` between two
// adjacent atoms. Atoms that were separated only by whitespace get one
// too ("x y" is a product, never the identifier "xy"): collapsing
// whitespace must not fuse tokens into something the input never said.
func insertStar(prev, cur token.Token, allowed *Allowlist) bool {
	switch prev.Type {
	case token.NUMBER:
		return cur.Type == token.NUMBER || cur.Type == token.IDENT || cur.Type == token.LPAREN
	case token.RPAREN:
		return cur.Type == token.LPAREN || cur.Type == token.IDENT || cur.Type == token.NUMBER
	case token.IDENT:
		if cur.Type == token.IDENT || cur.Type == token.NUMBER {
			return true
		}
		if cur.Type != token.LPAREN {
			return false
		}
		return allowed.IsSymbol(prev.Literal) || allowed.IsConstant(prev.Literal)
	}
	return false
}

// ScanSymbols returns the allowed variable symbols of the normalized text
// in first-occurrence order. Constants and function names never count.
// This is the deterministic source of truth for default-variable
// selection; it deliberately avoids iterating any symbol set.
func ScanSymbols(normalized string, allowed *Allowlist) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tok := range Tokens(normalized) {
		if tok.Type != token.IDENT || !allowed.IsSymbol(tok.Literal) {
			continue
		}
		if _, dup := seen[tok.Literal]; dup {
			continue
		}
		seen[tok.Literal] = struct{}{}
		out = append(out, tok.Literal)
	}
	return out
}

// promptWords are instruction words stripped from the front of free-form
// queries like "solve 2x + 3 = 7" or "find the derivative of sin(x)".
var promptWords = map[string]struct{}{
	"solve": {}, "simplify": {}, "differentiate": {}, "derive": {},
	"integrate": {}, "factor": {}, "expand": {}, "calculate": {},
	"compute": {}, "find": {}, "evaluate": {}, "what": {}, "is": {},
	"the": {}, "of": {}, "please": {}, "derivative": {}, "integral": {},
	"equation": {}, "expression": {},
}

// ExtractMath pulls the most math-looking line out of noisy multi-line
// text and strips leading instruction words and trailing punctuation. It
// is used on REPL input and on transcribed (OCR) text before the line
// reaches Normalize.
func ExtractMath(raw string) string {
	lines := strings.Split(raw, "\n")
	best := ""
	bestScore := -1
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s := mathScore(line); s > bestScore {
			best, bestScore = line, s
		}
	}
	fields := strings.Fields(best)
	for len(fields) > 0 {
		w := strings.ToLower(strings.Trim(fields[0], ":,"))
		if _, ok := promptWords[w]; !ok {
			break
		}
		fields = fields[1:]
	}
	out := strings.Join(fields, " ")
	return strings.TrimRight(out, "?!.;: ")
}

func mathScore(s string) int {
	score := 0
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
			score += 2
		case strings.ContainsRune("+-*/^=()", ch):
			score += 2
		case ch == 'x' || ch == 'y' || ch == 'z':
			score++
		}
	}
	return score
}
