package sym

import "fmt"

// Integrate returns an antiderivative of e with respect to the named
// variable, without the constant of integration. It is rule-based: sums
// integrate termwise, constant factors are pulled out, and a table covers
// powers and elementary functions of linear arguments. Anything else is an
// error.
func Integrate(e Expr, name string) (Expr, error) {
	r, err := integrate(e.Simplify(), name)
	if err != nil {
		// Expanding often turns a product into integrable terms.
		ex := Expand(e)
		if !ex.Equal(e.Simplify()) {
			if r2, err2 := integrate(ex, name); err2 == nil {
				return r2.Simplify(), nil
			}
		}
		return nil, err
	}
	return r.Simplify(), nil
}

func integrate(e Expr, name string) (Expr, error) {
	if !HasSymbol(e, name) {
		return Prod(e, Var(name)), nil
	}
	switch v := e.(type) {
	case *Sym:
		return Prod(Rat(1, 2), Power(v, Int(2))), nil
	case *Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			r, err := integrate(t, name)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return Sum(out...), nil
	case *Mul:
		var konst []Expr
		var dep []Expr
		for _, f := range v.factors {
			if HasSymbol(f, name) {
				dep = append(dep, f)
			} else {
				konst = append(konst, f)
			}
		}
		if len(dep) != 1 {
			return nil, fmt.Errorf("no integration rule for product %s", e)
		}
		inner, err := integrate(dep[0], name)
		if err != nil {
			return nil, err
		}
		return Prod(append(konst, inner)...), nil
	case *Pow:
		return integratePow(v, name)
	case *Call:
		return integrateCall(v, name)
	}
	return nil, fmt.Errorf("no integration rule for %s", e)
}

// integratePow handles (a*x + b)**n for rational n, including n = -1.
func integratePow(p *Pow, name string) (Expr, error) {
	if HasSymbol(p.exp, name) {
		if HasSymbol(p.base, name) {
			return nil, fmt.Errorf("no integration rule for %s", p)
		}
		a, _, ok := linearArg(p.exp, name)
		if !ok {
			return nil, fmt.Errorf("no integration rule for %s", p)
		}
		// b**(a*x+c) integrates to b**(a*x+c) / (a*ln(b)).
		return Prod(p, Power(Prod(a, Apply("ln", p.base)), Int(-1))), nil
	}
	n, ok := p.exp.(*Num)
	if !ok {
		return nil, fmt.Errorf("no integration rule for %s", p)
	}
	a, _, ok := linearArg(p.base, name)
	if !ok {
		return nil, fmt.Errorf("no integration rule for %s", p)
	}
	recipA := Power(a, Int(-1))
	if n.IsNegOne() {
		// ∫ (a*x+b)**-1 dx = ln(abs(a*x+b)) / a
		return Prod(recipA, Apply("ln", Apply("abs", p.base))), nil
	}
	// ∫ (a*x+b)**n dx = (a*x+b)**(n+1) / (a*(n+1))
	np1 := numAdd(n, Int(1))
	return Prod(recipA, Power(np1, Int(-1)), Power(p.base, np1)), nil
}

// integrateCall handles elementary functions of a linear argument.
func integrateCall(c *Call, name string) (Expr, error) {
	a, _, ok := linearArg(c.arg, name)
	if !ok {
		return nil, fmt.Errorf("no integration rule for %s", c)
	}
	recipA := Power(a, Int(-1))
	u := c.arg
	var anti Expr
	switch c.name {
	case "sin":
		anti = Neg(Apply("cos", u))
	case "cos":
		anti = Apply("sin", u)
	case "tan":
		anti = Neg(Apply("ln", Apply("abs", Apply("cos", u))))
	case "exp":
		anti = Apply("exp", u)
	case "sinh":
		anti = Apply("cosh", u)
	case "cosh":
		anti = Apply("sinh", u)
	case "ln":
		// ∫ ln(u) du = u*ln(u) - u
		anti = SubExpr(Prod(u, Apply("ln", u)), u)
	default:
		return nil, fmt.Errorf("no integration rule for %s", c)
	}
	return Prod(recipA, anti), nil
}

// linearArg checks that e is linear in the named variable (a*x + b with
// constant a, b and a non-zero) and returns the slope and intercept.
func linearArg(e Expr, name string) (a, b Expr, ok bool) {
	cs, polyOK := Coeffs(e, name)
	if !polyOK || len(cs) != 2 {
		return nil, nil, false
	}
	if n, isNum := cs[1].(*Num); isNum && n.IsZero() {
		return nil, nil, false
	}
	return cs[1], cs[0], true
}
