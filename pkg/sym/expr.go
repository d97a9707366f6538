// Package sym implements a deterministic, rule-based symbolic math kernel:
// exact rational arithmetic, stable simplification, differentiation,
// pattern-based integration, and polynomial equation solving.
//
// The kernel is deliberately conservative: operations that cannot be
// performed symbolically report failure instead of returning a partial or
// numerically guessed result.
package sym

import (
	"math/big"
	"strconv"
)

// Expr is a symbolic expression tree node. Implementations are immutable;
// every operation returns a new expression.
type Expr interface {
	// Simplify returns a canonical, flattened form of the expression.
	Simplify() Expr
	// String renders the expression with ** as the power operator.
	String() string
	// Substitute replaces every occurrence of the named symbol.
	Substitute(name string, value Expr) Expr
	// Diff differentiates with respect to the named symbol.
	Diff(name string) Expr
	// Eval reduces the expression to a single number if possible.
	Eval() (*Num, bool)
	// Equal reports structural equality.
	Equal(other Expr) bool
}

// ============================================================
// Num — exact rational number
// ============================================================

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// Int returns the integer n as an expression.
func Int(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// Rat returns the fraction p/q as an expression. q must be non-zero.
func Rat(p, q int64) *Num {
	if q == 0 {
		panic("sym: zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// Float converts f to an exact rational via its shortest decimal form,
// so Float(0.5) is 1/2 rather than a long binary fraction.
func Float(f float64) *Num {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', 15, 64))
	if !ok {
		r = new(big.Rat).SetFloat64(f)
		if r == nil {
			r = new(big.Rat)
		}
	}
	return &Num{val: r}
}

// ParseNum parses a decimal literal ("5", "4.25", "1e3") into a Num.
func ParseNum(lit string) (*Num, bool) {
	r, ok := new(big.Rat).SetString(lit)
	if !ok {
		return nil, false
	}
	return &Num{val: r}, true
}

func (n *Num) Simplify() Expr                  { return n }
func (n *Num) Substitute(string, Expr) Expr    { return n }
func (n *Num) Diff(string) Expr                { return Int(0) }
func (n *Num) Eval() (*Num, bool)              { return n, true }
func (n *Num) IsZero() bool                    { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool                     { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool                  { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool                 { return n.val.IsInt() }
func (n *Num) IsNegative() bool                { return n.val.Sign() < 0 }
func (n *Num) IsPositive() bool                { return n.val.Sign() > 0 }
func (n *Num) Rat() *big.Rat                   { return new(big.Rat).Set(n.val) }
func (n *Num) Float64() float64                { f, _ := n.val.Float64(); return f }

func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }

func numRecip(a *Num) (*Num, bool) {
	if a.IsZero() {
		return nil, false
	}
	return &Num{val: new(big.Rat).Inv(a.val)}, true
}

func numDiv(a, b *Num) (*Num, bool) {
	r, ok := numRecip(b)
	if !ok {
		return nil, false
	}
	return numMul(a, r), true
}

func numCmp(a, b *Num) int { return a.val.Cmp(b.val) }

func numAbs(a *Num) *Num {
	r := new(big.Rat).Set(a.val)
	if r.Sign() < 0 {
		r.Neg(r)
	}
	return &Num{val: r}
}

// ============================================================
// Sym — free symbol
// ============================================================

// Sym is a named symbol (a free variable or a symbolic constant).
type Sym struct{ name string }

// Var returns the named symbol as an expression.
func Var(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) Name() string   { return s.name }

func (s *Sym) Substitute(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return Int(1)
	}
	return Int(0)
}

func (s *Sym) Eval() (*Num, bool) { return nil, false }

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

// ============================================================
// Free symbols
// ============================================================

// FreeSymbols returns the set of symbol names occurring in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	walkSymbols(e, out)
	return out
}

func walkSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			walkSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			walkSymbols(f, out)
		}
	case *Pow:
		walkSymbols(v.base, out)
		walkSymbols(v.exp, out)
	case *Call:
		walkSymbols(v.arg, out)
	}
}

// HasSymbol reports whether the named symbol occurs in e.
func HasSymbol(e Expr, name string) bool {
	_, ok := FreeSymbols(e)[name]
	return ok
}
