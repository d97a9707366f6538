package parser

import (
	"strings"

	"github.com/mathflow-labs/mathflow/pkg/token"
)

// SplitKind tags the result of equation detection.
type SplitKind int

const (
	// KindExpression means no top-level = was found.
	KindExpression SplitKind = iota
	// KindEquation means exactly one top-level = split the text in two.
	KindEquation
)

func (k SplitKind) String() string {
	if k == KindEquation {
		return "equation"
	}
	return "expression"
}

// Split is the outcome of top-level equality detection on normalized
// text: either the whole expression, or an lhs/rhs pair.
type Split struct {
	Kind SplitKind
	Expr string
	LHS  string
	RHS  string
}

// SplitEquation scans normalized text for a top-level = (depth zero, not
// inside parentheses). Zero occurrences yield an expression, exactly one
// an equation; anything more is an AmbiguousEquationError rather than a
// silent guess at which equality the caller meant.
func SplitEquation(normalized string) (Split, error) {
	depth := 0
	count := 0
	cut := -1
	for _, tok := range Tokens(normalized) {
		switch tok.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.EQ:
			if depth == 0 {
				count++
				if cut < 0 {
					cut = tok.Offset
				}
			}
		}
	}
	switch count {
	case 0:
		return Split{Kind: KindExpression, Expr: normalized}, nil
	case 1:
		return Split{
			Kind: KindEquation,
			LHS:  strings.TrimSpace(normalized[:cut]),
			RHS:  strings.TrimSpace(normalized[cut+1:]),
		}, nil
	default:
		return Split{}, &AmbiguousEquationError{Count: count}
	}
}
