package sym

import "math/big"

// Coeffs extracts polynomial coefficients of e in the named variable,
// in ascending degree order. It reports false when e is not a polynomial
// in that variable (negative or symbolic exponents, the variable inside a
// function argument, and so on). Coefficients may themselves be symbolic
// in other variables.
func Coeffs(e Expr, name string) ([]Expr, bool) {
	cs, ok := coeffs(e.Simplify(), name)
	if !ok {
		return nil, false
	}
	for i := range cs {
		cs[i] = cs[i].Simplify()
	}
	// Trim trailing zero coefficients.
	for len(cs) > 1 {
		n, isNum := cs[len(cs)-1].(*Num)
		if !isNum || !n.IsZero() {
			break
		}
		cs = cs[:len(cs)-1]
	}
	return cs, true
}

func coeffs(e Expr, name string) ([]Expr, bool) {
	if !HasSymbol(e, name) {
		return []Expr{e}, true
	}
	switch v := e.(type) {
	case *Sym:
		return []Expr{Int(0), Int(1)}, true
	case *Add:
		var acc []Expr
		for _, t := range v.terms {
			tc, ok := coeffs(t, name)
			if !ok {
				return nil, false
			}
			acc = polyAdd(acc, tc)
		}
		return acc, true
	case *Mul:
		acc := []Expr{Int(1)}
		for _, f := range v.factors {
			fc, ok := coeffs(f, name)
			if !ok {
				return nil, false
			}
			acc = polyMul(acc, fc)
		}
		return acc, true
	case *Pow:
		n, isNum := v.exp.(*Num)
		if !isNum || !n.IsInteger() || n.IsNegative() {
			return nil, false
		}
		k := n.val.Num().Int64()
		base, ok := coeffs(v.base, name)
		if !ok {
			return nil, false
		}
		acc := []Expr{Int(1)}
		for i := int64(0); i < k; i++ {
			acc = polyMul(acc, base)
		}
		return acc, true
	default:
		return nil, false
	}
}

func polyAdd(a, b []Expr) []Expr {
	if len(b) > len(a) {
		a, b = b, a
	}
	out := make([]Expr, len(a))
	copy(out, a)
	for i, c := range b {
		out[i] = Sum(out[i], c)
	}
	return out
}

func polyMul(a, b []Expr) []Expr {
	out := make([]Expr, len(a)+len(b)-1)
	for i := range out {
		out[i] = Int(0)
	}
	for i, ca := range a {
		for j, cb := range b {
			out[i+j] = Sum(out[i+j], Prod(ca, cb))
		}
	}
	return out
}

// NumCoeffs is Coeffs restricted to numeric coefficients.
func NumCoeffs(e Expr, name string) ([]*Num, bool) {
	cs, ok := Coeffs(e, name)
	if !ok {
		return nil, false
	}
	out := make([]*Num, len(cs))
	for i, c := range cs {
		n, ok := c.Eval()
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// FromCoeffs rebuilds the polynomial sum c0 + c1*x + ... in the named
// variable.
func FromCoeffs(cs []Expr, name string) Expr {
	terms := make([]Expr, 0, len(cs))
	for i, c := range cs {
		terms = append(terms, Prod(c, Power(Var(name), Int(int64(i)))))
	}
	return Sum(terms...).Simplify()
}

// numPolyDiv divides polynomial a by b over the rationals, returning the
// quotient and remainder coefficient slices.
func numPolyDiv(a, b []*Num) (quo, rem []*Num) {
	rem = make([]*Num, len(a))
	copy(rem, a)
	db := len(b) - 1
	for len(b) > 0 && b[db].IsZero() && db > 0 {
		db--
	}
	lead := b[db]
	if len(rem)-1 < db {
		return []*Num{Int(0)}, rem
	}
	quo = make([]*Num, len(rem)-db)
	for i := range quo {
		quo[i] = Int(0)
	}
	for d := len(rem) - 1; d >= db; d-- {
		if rem[d].IsZero() {
			continue
		}
		q, _ := numDiv(rem[d], lead)
		quo[d-db] = q
		for j := 0; j <= db; j++ {
			rem[d-db+j] = numSub(rem[d-db+j], numMul(q, b[j]))
		}
	}
	for len(rem) > 1 && rem[len(rem)-1].IsZero() {
		rem = rem[:len(rem)-1]
	}
	for len(quo) > 1 && quo[len(quo)-1].IsZero() {
		quo = quo[:len(quo)-1]
	}
	return quo, rem
}

func numPolyIsZero(cs []*Num) bool {
	for _, c := range cs {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// evalPoly evaluates the polynomial with coefficients cs at x by Horner's
// rule.
func evalPoly(cs []*Num, x *Num) *Num {
	acc := Int(0)
	for i := len(cs) - 1; i >= 0; i-- {
		acc = numAdd(numMul(acc, x), cs[i])
	}
	return acc
}

// rationalRoots finds all rational roots of the polynomial by the rational
// root theorem, including multiplicities, and returns them with the
// deflated remainder polynomial.
func rationalRoots(cs []*Num) (roots []*Num, rest []*Num) {
	rest = make([]*Num, len(cs))
	copy(rest, cs)
	for len(rest) > 1 {
		// Strip x=0 roots first.
		if rest[0].IsZero() {
			roots = append(roots, Int(0))
			rest = rest[1:]
			continue
		}
		root, ok := findRationalRoot(rest)
		if !ok {
			break
		}
		roots = append(roots, root)
		divisor := []*Num{numNeg(root), Int(1)}
		rest, _ = numPolyDiv(rest, divisor)
	}
	return roots, rest
}

func findRationalRoot(cs []*Num) (*Num, bool) {
	// Scale to integer coefficients.
	lcm := big.NewInt(1)
	for _, c := range cs {
		lcm.Mul(lcm, c.val.Denom())
		lcm.Div(lcm, new(big.Int).GCD(nil, nil, lcm, c.val.Denom()))
	}
	ints := make([]*big.Int, len(cs))
	for i, c := range cs {
		r := new(big.Rat).Mul(c.val, new(big.Rat).SetInt(lcm))
		ints[i] = r.Num()
	}
	a0, an := ints[0], ints[len(ints)-1]
	if a0.Sign() == 0 {
		return Int(0), true
	}
	for _, p := range divisorsOf(a0) {
		for _, q := range divisorsOf(an) {
			for _, sign := range []int64{1, -1} {
				cand := &Num{val: new(big.Rat).SetFrac(
					new(big.Int).Mul(p, big.NewInt(sign)), q)}
				if evalPoly(cs, cand).IsZero() {
					return cand, true
				}
			}
		}
	}
	return nil, false
}

// divisorsOf returns the positive divisors of v, capped to keep root
// search bounded on huge coefficients.
func divisorsOf(v *big.Int) []*big.Int {
	abs := new(big.Int).Abs(v)
	if !abs.IsInt64() {
		return []*big.Int{big.NewInt(1), abs}
	}
	n := abs.Int64()
	var out []*big.Int
	for d := int64(1); d*d <= n && d <= 1_000_000; d++ {
		if n%d == 0 {
			out = append(out, big.NewInt(d))
			if d != n/d {
				out = append(out, big.NewInt(n/d))
			}
		}
	}
	if len(out) == 0 {
		out = append(out, big.NewInt(1))
	}
	return out
}
