package sym

import "math/big"

// Call is a named unary function application, e.g. sin(x) or ln(x+1).
type Call struct {
	name string
	arg  Expr
}

// Apply builds the application name(arg).
func Apply(name string, arg Expr) *Call { return &Call{name: name, arg: arg} }

// FuncName returns the applied function's name.
func (c *Call) FuncName() string { return c.name }

// Arg returns the function argument.
func (c *Call) Arg() Expr { return c.arg }

func (c *Call) String() string { return c.name + "(" + c.arg.String() + ")" }

func (c *Call) Substitute(name string, value Expr) Expr {
	return &Call{name: c.name, arg: c.arg.Substitute(name, value)}
}

func (c *Call) Equal(other Expr) bool {
	o, ok := other.(*Call)
	return ok && c.name == o.name && c.arg.Equal(o.arg)
}

func (c *Call) Simplify() Expr {
	arg := c.arg.Simplify()

	// sqrt is canonicalized to a half power so products can merge bases.
	if c.name == "sqrt" {
		return Power(arg, Rat(1, 2)).Simplify()
	}

	if n, ok := arg.(*Num); ok {
		if r, done := evalExact(c.name, n); done {
			return r
		}
	}

	switch c.name {
	case "ln":
		if s, ok := arg.(*Sym); ok && s.name == "e" {
			return Int(1)
		}
		if inner, ok := arg.(*Call); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if inner, ok := arg.(*Call); ok && inner.name == "ln" {
			return inner.arg
		}
	case "abs":
		if inner, ok := arg.(*Call); ok && inner.name == "abs" {
			return inner
		}
	}
	return &Call{name: c.name, arg: arg}
}

// evalExact folds function applications with exactly representable results.
// Transcendental values stay symbolic.
func evalExact(name string, n *Num) (Expr, bool) {
	switch name {
	case "sin", "tan", "asin", "atan", "sinh", "tanh":
		if n.IsZero() {
			return Int(0), true
		}
	case "cos", "cosh", "exp":
		if n.IsZero() {
			return Int(1), true
		}
	case "ln":
		if n.IsOne() {
			return Int(0), true
		}
	case "abs":
		return numAbs(n), true
	case "sign":
		switch {
		case n.IsZero():
			return Int(0), true
		case n.IsNegative():
			return Int(-1), true
		default:
			return Int(1), true
		}
	case "floor":
		return &Num{val: new(big.Rat).SetInt(ratFloor(n.val))}, true
	case "ceil":
		return &Num{val: new(big.Rat).SetInt(ratCeil(n.val))}, true
	}
	return nil, false
}

func ratFloor(r *big.Rat) *big.Int {
	q := new(big.Int)
	m := new(big.Int)
	q.QuoRem(r.Num(), r.Denom(), m)
	if m.Sign() < 0 {
		q.Sub(q, big.NewInt(1))
	}
	return q
}

func ratCeil(r *big.Rat) *big.Int {
	f := ratFloor(r)
	if r.IsInt() {
		return f
	}
	return f.Add(f, big.NewInt(1))
}

// Diff applies the chain rule with the standard derivative table.
func (c *Call) Diff(name string) Expr {
	u := c.arg
	var outer Expr
	switch c.name {
	case "sin":
		outer = Apply("cos", u)
	case "cos":
		outer = Neg(Apply("sin", u))
	case "tan":
		outer = Power(Apply("cos", u), Int(-2))
	case "asin":
		outer = Power(SubExpr(Int(1), Power(u, Int(2))), Rat(-1, 2))
	case "acos":
		outer = Neg(Power(SubExpr(Int(1), Power(u, Int(2))), Rat(-1, 2)))
	case "atan":
		outer = Power(Sum(Int(1), Power(u, Int(2))), Int(-1))
	case "sinh":
		outer = Apply("cosh", u)
	case "cosh":
		outer = Apply("sinh", u)
	case "tanh":
		outer = Power(Apply("cosh", u), Int(-2))
	case "exp":
		outer = Apply("exp", u)
	case "ln":
		outer = Power(u, Int(-1))
	case "sqrt":
		outer = Prod(Rat(1, 2), Power(u, Rat(-1, 2)))
	case "abs":
		outer = Apply("sign", u)
	case "floor", "ceil", "sign":
		// Piecewise constant almost everywhere.
		return Int(0)
	default:
		if !HasSymbol(u, name) {
			return Int(0)
		}
		panic("sym: no derivative rule for " + c.name)
	}
	return Prod(outer, u.Diff(name))
}

func (c *Call) Eval() (*Num, bool) {
	n, ok := c.arg.Eval()
	if !ok {
		return nil, false
	}
	r, done := evalExact(c.name, n)
	if !done {
		return nil, false
	}
	rn, ok := r.(*Num)
	return rn, ok
}
