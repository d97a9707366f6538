// Package parser turns raw math query text into symbolic expression
// trees, in three guarded stages: Normalize rewrites the text into
// canonical syntax, Allowlist.Check filters the token stream against the
// closed namespace, and Parse builds the tree resolving identifiers only
// through that allow-list. Raw user text never reaches name resolution of
// any kind without passing the guard first.
package parser

import (
	"fmt"

	"github.com/mathflow-labs/mathflow/pkg/sym"
	"github.com/mathflow-labs/mathflow/pkg/token"
)

// Operator binding powers, loosest to tightest. Power is right
// associative; everything else binds left.
const (
	precLowest = iota
	precAdd
	precMul
	precUnary
	precPow
)

func infixPrecedence(t token.Type) int {
	switch t {
	case token.PLUS, token.MINUS:
		return precAdd
	case token.STAR, token.SLASH:
		return precMul
	case token.POW:
		return precPow
	default:
		return precLowest
	}
}

// Parse lexes text, runs the allow-list guard over the token stream, and
// parses the result into an expression tree. The allow-list must be
// passed explicitly; there is no ambient default.
func Parse(text string, allowed *Allowlist) (sym.Expr, error) {
	toks := Tokens(text)
	if err := allowed.Check(toks); err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, &ParseError{Offset: 0, Msg: "empty expression"}
	}
	p := &exprParser{toks: toks, allowed: allowed}
	e, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if rest := p.cur(); rest.Type != token.EOF {
		return nil, &ParseError{Offset: rest.Offset, Msg: fmt.Sprintf("unexpected %s %q", rest.Type, rest.Literal)}
	}
	return e, nil
}

type exprParser struct {
	toks    []token.Token
	pos     int
	allowed *Allowlist
}

func (p *exprParser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Type: token.EOF, Offset: len(p.toks)}
	}
	return p.toks[p.pos]
}

func (p *exprParser) advance() token.Token {
	tok := p.cur()
	p.pos++
	return tok
}

func (p *exprParser) expect(t token.Type) (token.Token, error) {
	tok := p.cur()
	if tok.Type != t {
		return tok, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("expected %s, got %s %q", t, tok.Type, tok.Literal)}
	}
	p.pos++
	return tok, nil
}

func (p *exprParser) parseExpression(minPrec int) (sym.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		op := p.cur()
		prec := infixPrecedence(op.Type)
		if prec == precLowest || prec < minPrec {
			return left, nil
		}
		p.advance()
		nextMin := prec + 1
		if op.Type == token.POW {
			// Right associative: a**b**c parses as a**(b**c).
			nextMin = prec
		}
		right, err := p.parseExpression(nextMin)
		if err != nil {
			return nil, err
		}
		switch op.Type {
		case token.PLUS:
			left = sym.Sum(left, right)
		case token.MINUS:
			left = sym.SubExpr(left, right)
		case token.STAR:
			left = sym.Prod(left, right)
		case token.SLASH:
			left = sym.Div(left, right)
		case token.POW:
			left = sym.Power(left, right)
		}
	}
}

func (p *exprParser) parsePrefix() (sym.Expr, error) {
	tok := p.advance()
	switch tok.Type {
	case token.NUMBER:
		lit := tok.Literal
		if lit[0] == '.' {
			lit = "0" + lit
		}
		n, ok := sym.ParseNum(lit)
		if !ok {
			return nil, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("invalid number %q", tok.Literal)}
		}
		return n, nil
	case token.IDENT:
		if p.cur().Type == token.LPAREN && p.allowed.IsFunction(tok.Literal) {
			p.advance()
			arg, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			return sym.Apply(p.allowed.Canonical(tok.Literal), arg), nil
		}
		return sym.Var(tok.Literal), nil
	case token.MINUS:
		operand, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		return sym.Neg(operand), nil
	case token.PLUS:
		return p.parseExpression(precUnary)
	case token.LPAREN:
		inner, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, &ParseError{Offset: tok.Offset, Msg: fmt.Sprintf("unexpected %s %q", tok.Type, tok.Literal)}
	}
}
