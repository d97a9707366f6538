package sym

import (
	"errors"
	"fmt"
	"sort"
)

// Kernel solve failures. Callers distinguish them from programming errors
// and surface them as engine-level diagnostics.
var (
	ErrAllValues   = errors.New("equation holds for every value of the variable")
	ErrNoSolution  = errors.New("equation has no solution")
	ErrComplexRoot = errors.New("equation has no real solutions (complex roots)")
)

// SolveEquation solves lhs = rhs for the named variable. Solutions are
// returned in ascending order for numeric roots, with symbolic roots after.
func SolveEquation(lhs, rhs Expr, name string) ([]Expr, error) {
	e := SubExpr(lhs, rhs).Simplify()
	if !HasSymbol(e, name) {
		if n, ok := e.Eval(); ok && n.IsZero() {
			return nil, ErrAllValues
		}
		return nil, ErrNoSolution
	}
	if cs, ok := Coeffs(e, name); ok {
		sols, err := solvePoly(cs, name)
		if err != nil {
			return nil, err
		}
		return finishSolutions(sols), nil
	}
	sols, err := isolate(e, Int(0), name)
	if err != nil {
		return nil, err
	}
	return finishSolutions(sols), nil
}

func solvePoly(cs []Expr, name string) ([]Expr, error) {
	switch len(cs) {
	case 0, 1:
		// Constant after trimming: Coeffs gives a single entry only when the
		// variable vanished, which SolveEquation already handled.
		return nil, ErrNoSolution
	case 2:
		// c1*x + c0 = 0
		return []Expr{Div(Neg(cs[0]), cs[1]).Simplify()}, nil
	case 3:
		return solveQuadratic(cs[0], cs[1], cs[2])
	}

	// Degree three and up: peel rational roots, then finish the deflated
	// polynomial if it is quadratic or smaller.
	nums := make([]*Num, len(cs))
	for i, c := range cs {
		n, ok := c.Eval()
		if !ok {
			return nil, fmt.Errorf("cannot solve degree-%d equation with symbolic coefficients", len(cs)-1)
		}
		nums[i] = n
	}
	roots, rest := rationalRoots(nums)
	sols := make([]Expr, 0, len(roots))
	for _, r := range roots {
		sols = append(sols, r)
	}
	switch {
	case len(rest) <= 1:
	case len(rest) == 2:
		sols = append(sols, Div(Neg(rest[0]), rest[1]).Simplify())
	case len(rest) == 3:
		more, err := solveQuadratic(rest[0], rest[1], rest[2])
		if err != nil {
			if errors.Is(err, ErrComplexRoot) && len(sols) > 0 {
				// Real roots found; the remaining quadratic factor only
				// contributes complex ones.
				return sols, nil
			}
			return nil, err
		}
		sols = append(sols, more...)
	default:
		return nil, fmt.Errorf("cannot solve degree-%d equation with no rational roots", len(cs)-1)
	}
	if len(sols) == 0 {
		return nil, ErrNoSolution
	}
	return sols, nil
}

// solveQuadratic solves c + b*x + a*x**2 = 0 by the quadratic formula.
func solveQuadratic(c, b, a Expr) ([]Expr, error) {
	disc := SubExpr(Prod(b, b), Prod(Int(4), a, c)).Simplify()
	if dn, ok := disc.Eval(); ok {
		if dn.IsNegative() {
			return nil, ErrComplexRoot
		}
		if dn.IsZero() {
			return []Expr{Div(Neg(b), Prod(Int(2), a)).Simplify()}, nil
		}
	}
	root := Power(disc, Rat(1, 2))
	denom := Power(Prod(Int(2), a), Int(-1))
	return []Expr{
		Prod(Sum(Neg(b), Neg(root)), denom).Simplify(),
		Prod(Sum(Neg(b), root), denom).Simplify(),
	}, nil
}

// isolate solves e = target when the variable occurs exactly once in e, by
// peeling one layer of structure per step.
func isolate(e, target Expr, name string) ([]Expr, error) {
	if symCount(e, name) != 1 {
		return nil, fmt.Errorf("cannot isolate %s: variable occurs in multiple positions", name)
	}
	for {
		switch v := e.(type) {
		case *Sym:
			return []Expr{target.Simplify()}, nil
		case *Add:
			var dep Expr
			rest := make([]Expr, 0, len(v.terms))
			for _, t := range v.terms {
				if HasSymbol(t, name) {
					dep = t
				} else {
					rest = append(rest, Neg(t))
				}
			}
			target = Sum(append([]Expr{target}, rest...)...)
			e = dep
		case *Mul:
			var dep Expr
			rest := make([]Expr, 0, len(v.factors))
			for _, f := range v.factors {
				if HasSymbol(f, name) {
					dep = f
				} else {
					rest = append(rest, Power(f, Int(-1)))
				}
			}
			target = Prod(append([]Expr{target}, rest...)...)
			e = dep
		case *Pow:
			return isolatePow(v, target, name)
		case *Call:
			inv, err := invert(v.name, target)
			if err != nil {
				return nil, err
			}
			if v.name == "abs" {
				pos, err1 := isolate(v.arg, inv, name)
				negSols, err2 := isolate(v.arg, Neg(inv).Simplify(), name)
				if err1 != nil {
					return nil, err1
				}
				if err2 != nil {
					return nil, err2
				}
				return append(pos, negSols...), nil
			}
			target = inv
			e = v.arg
		default:
			return nil, fmt.Errorf("cannot isolate %s", name)
		}
	}
}

func isolatePow(p *Pow, target Expr, name string) ([]Expr, error) {
	if HasSymbol(p.exp, name) {
		// a**x = t  =>  x = ln(t)/ln(a)
		x := Div(Apply("ln", target), Apply("ln", p.base))
		return isolate(p.exp, x, name)
	}
	n, ok := p.exp.(*Num)
	if !ok {
		return nil, fmt.Errorf("cannot invert symbolic exponent")
	}
	if n.IsInteger() && !n.IsNegative() && isEvenInt(n) {
		if tn, tok := target.Eval(); tok && tn.IsNegative() {
			return nil, ErrComplexRoot
		}
		recipExp, _ := numRecip(n)
		root := Power(target, recipExp)
		pos, err := isolate(p.base, root, name)
		if err != nil {
			return nil, err
		}
		negSols, err := isolate(p.base, Neg(root).Simplify(), name)
		if err != nil {
			return nil, err
		}
		return append(negSols, pos...), nil
	}
	recipExp, ok := numRecip(n)
	if !ok {
		return nil, fmt.Errorf("cannot invert zero exponent")
	}
	return isolate(p.base, Power(target, recipExp), name)
}

func isEvenInt(n *Num) bool {
	if !n.IsInteger() {
		return false
	}
	return n.val.Num().Bit(0) == 0
}

func invert(fn string, target Expr) (Expr, error) {
	switch fn {
	case "sin":
		return Apply("asin", target), nil
	case "cos":
		return Apply("acos", target), nil
	case "tan":
		return Apply("atan", target), nil
	case "asin":
		return Apply("sin", target), nil
	case "acos":
		return Apply("cos", target), nil
	case "atan":
		return Apply("tan", target), nil
	case "exp":
		return Apply("ln", target), nil
	case "ln", "log":
		return Apply("exp", target), nil
	case "sqrt":
		return Power(target, Int(2)), nil
	case "abs":
		return target, nil
	default:
		return nil, fmt.Errorf("cannot invert %s", fn)
	}
}

func symCount(e Expr, name string) int {
	switch v := e.(type) {
	case *Sym:
		if v.name == name {
			return 1
		}
	case *Add:
		n := 0
		for _, t := range v.terms {
			n += symCount(t, name)
		}
		return n
	case *Mul:
		n := 0
		for _, f := range v.factors {
			n += symCount(f, name)
		}
		return n
	case *Pow:
		return symCount(v.base, name) + symCount(v.exp, name)
	case *Call:
		return symCount(v.arg, name)
	}
	return 0
}

// finishSolutions simplifies, deduplicates, and orders solutions: numeric
// roots ascending, symbolic ones after in lexical order.
func finishSolutions(sols []Expr) []Expr {
	seen := map[string]struct{}{}
	out := make([]Expr, 0, len(sols))
	for _, s := range sols {
		s = s.Simplify()
		key := s.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ni, iNum := out[i].Eval()
		nj, jNum := out[j].Eval()
		switch {
		case iNum && jNum:
			return numCmp(ni, nj) < 0
		case iNum != jNum:
			return iNum
		default:
			return out[i].String() < out[j].String()
		}
	})
	return out
}
