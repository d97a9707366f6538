package sym

import (
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Constructors
// ============================================================

// Sum builds an n-ary sum. Call Simplify to canonicalize.
func Sum(terms ...Expr) *Add { return &Add{terms: terms} }

// Prod builds an n-ary product. Call Simplify to canonicalize.
func Prod(factors ...Expr) *Mul { return &Mul{factors: factors} }

// Power builds base**exp.
func Power(base, exp Expr) *Pow { return &Pow{base: base, exp: exp} }

// Neg builds -e as (-1)*e.
func Neg(e Expr) Expr { return Prod(Int(-1), e) }

// SubExpr builds a-b as a + (-1)*b.
func SubExpr(a, b Expr) Expr { return Sum(a, Neg(b)) }

// Div builds a/b as a * b**-1.
func Div(a, b Expr) Expr { return Prod(a, Power(b, Int(-1))) }

// ============================================================
// Add — n-ary sum
// ============================================================

// Add is an n-ary sum of terms.
type Add struct{ terms []Expr }

// Terms returns the term slice. Callers must not mutate it.
func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) Simplify() Expr {
	// Simplify children and flatten nested sums.
	var flat []Expr
	for _, t := range a.terms {
		switch s := t.Simplify().(type) {
		case *Add:
			flat = append(flat, s.terms...)
		default:
			flat = append(flat, s)
		}
	}

	// Fold numeric terms and group like terms by their non-numeric part.
	konst := Int(0)
	type group struct {
		coeff *Num
		rest  Expr
	}
	groups := map[string]*group{}
	var order []string
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			konst = numAdd(konst, n)
			continue
		}
		coeff, rest := splitCoeff(t)
		key := rest.String()
		if g, ok := groups[key]; ok {
			g.coeff = numAdd(g.coeff, coeff)
		} else {
			groups[key] = &group{coeff: coeff, rest: rest}
			order = append(order, key)
		}
	}

	var out []Expr
	for _, key := range order {
		g := groups[key]
		if g.coeff.IsZero() {
			continue
		}
		if g.coeff.IsOne() {
			out = append(out, g.rest)
		} else {
			out = append(out, Prod(g.coeff, g.rest).Simplify())
		}
	}
	if !konst.IsZero() || len(out) == 0 {
		out = append(out, konst)
	}
	if len(out) == 1 {
		return out[0]
	}
	sort.SliceStable(out, func(i, j int) bool { return termLess(out[i], out[j]) })
	return &Add{terms: out}
}

func (a *Add) Substitute(name string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Substitute(name, value)
	}
	return &Add{terms: out}
}

func (a *Add) Diff(name string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(name)
	}
	return &Add{terms: out}
}

func (a *Add) Eval() (*Num, bool) {
	acc := Int(0)
	for _, t := range a.terms {
		n, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, n)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range a.terms {
		neg, abs := negSplit(t)
		if i == 0 {
			if neg {
				b.WriteString("-")
			}
			b.WriteString(abs.String())
			continue
		}
		if neg {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}
		b.WriteString(abs.String())
	}
	return b.String()
}

// negSplit reports whether a term carries a negative numeric coefficient,
// and returns the term with the sign stripped.
func negSplit(e Expr) (bool, Expr) {
	switch v := e.(type) {
	case *Num:
		if v.IsNegative() {
			return true, numNeg(v)
		}
	case *Mul:
		if len(v.factors) > 0 {
			if n, ok := v.factors[0].(*Num); ok && n.IsNegative() {
				rest := append([]Expr{numNeg(n)}, v.factors[1:]...)
				return true, (&Mul{factors: rest}).compact()
			}
		}
	}
	return false, e
}

// splitCoeff factors a term into its numeric coefficient and the rest.
func splitCoeff(e Expr) (*Num, Expr) {
	m, ok := e.(*Mul)
	if !ok {
		return Int(1), e
	}
	coeff := Int(1)
	var rest []Expr
	for _, f := range m.factors {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
		} else {
			rest = append(rest, f)
		}
	}
	switch len(rest) {
	case 0:
		return coeff, Int(1)
	case 1:
		return coeff, rest[0]
	default:
		return coeff, &Mul{factors: rest}
	}
}

// ============================================================
// Mul — n-ary product
// ============================================================

// Mul is an n-ary product of factors.
type Mul struct{ factors []Expr }

// Factors returns the factor slice. Callers must not mutate it.
func (m *Mul) Factors() []Expr { return m.factors }

// compact drops unit factors without a full re-simplification pass.
func (m *Mul) compact() Expr {
	var out []Expr
	for _, f := range m.factors {
		if n, ok := f.(*Num); ok && n.IsOne() {
			continue
		}
		out = append(out, f)
	}
	switch len(out) {
	case 0:
		return Int(1)
	case 1:
		return out[0]
	default:
		return &Mul{factors: out}
	}
}

func (m *Mul) Simplify() Expr {
	var flat []Expr
	for _, f := range m.factors {
		switch s := f.Simplify().(type) {
		case *Mul:
			flat = append(flat, s.factors...)
		default:
			flat = append(flat, s)
		}
	}

	// Fold numeric factors and merge repeated bases into powers.
	coeff := Int(1)
	type group struct {
		base Expr
		exp  []Expr
	}
	groups := map[string]*group{}
	var order []string
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		base, exp := f, Expr(Int(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		key := base.String()
		if g, ok := groups[key]; ok {
			g.exp = append(g.exp, exp)
		} else {
			groups[key] = &group{base: base, exp: []Expr{exp}}
			order = append(order, key)
		}
	}
	if coeff.IsZero() {
		return Int(0)
	}

	var out []Expr
	for _, key := range order {
		g := groups[key]
		exp := g.exp[0]
		if len(g.exp) > 1 {
			exp = Sum(g.exp...).Simplify()
		}
		f := Power(g.base, exp).Simplify()
		switch fv := f.(type) {
		case *Num:
			coeff = numMul(coeff, fv)
		default:
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return coeff
	}
	sort.SliceStable(out, func(i, j int) bool { return factorLess(out[i], out[j]) })
	if !coeff.IsOne() {
		out = append([]Expr{coeff}, out...)
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Mul{factors: out}
}

func (m *Mul) Substitute(name string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Substitute(name, value)
	}
	return &Mul{factors: out}
}

// Diff applies the general product rule.
func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		fs := make([]Expr, len(m.factors))
		copy(fs, m.factors)
		fs[i] = m.factors[i].Diff(name)
		terms = append(terms, &Mul{factors: fs})
	}
	return &Add{terms: terms}
}

func (m *Mul) Eval() (*Num, bool) {
	acc := Int(1)
	for _, f := range m.factors {
		n, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, n)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	var parts []string
	for _, f := range m.factors {
		if n, ok := f.(*Num); ok && n.IsNegOne() && len(m.factors) > 1 {
			parts = append(parts, "-1")
			continue
		}
		parts = append(parts, mulOperand(f))
	}
	s := strings.Join(parts, "*")
	// -1*x reads better as -x.
	if strings.HasPrefix(s, "-1*") {
		return "-" + s[len("-1*"):]
	}
	return s
}

func mulOperand(e Expr) string {
	switch v := e.(type) {
	case *Add:
		return "(" + v.String() + ")"
	case *Num:
		if !v.IsInteger() || v.IsNegative() {
			if v.IsNegative() && v.IsInteger() {
				return v.String()
			}
			if !v.IsInteger() {
				return "(" + v.String() + ")"
			}
		}
		return v.String()
	default:
		return e.String()
	}
}

// ============================================================
// Pow — exponentiation
// ============================================================

// Pow is base**exp.
type Pow struct{ base, exp Expr }

// Base returns the base operand.
func (p *Pow) Base() Expr { return p.base }

// Exp returns the exponent operand.
func (p *Pow) Exp() Expr { return p.exp }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return Int(1)
		}
		if en.IsOne() {
			return base
		}
		if bn, ok := base.(*Num); ok {
			if r, done := numPow(bn, en); done {
				return r
			}
			// Pull perfect n-th power factors out of the radical, so
			// 8**(1/2) becomes 2*2**(1/2).
			if !en.IsInteger() && bn.IsPositive() {
				if out, in, split := radicalSplit(bn, en); split {
					return Prod(out, &Pow{base: in, exp: en}).Simplify()
				}
			}
		}
		// Distribute integer exponents over products so like bases cancel.
		if en.IsInteger() {
			if bm, ok := base.(*Mul); ok {
				fs := make([]Expr, len(bm.factors))
				for i, f := range bm.factors {
					fs[i] = Power(f, en)
				}
				return (&Mul{factors: fs}).Simplify()
			}
			if bp, ok := base.(*Pow); ok {
				return Power(bp.base, Prod(bp.exp, en)).Simplify()
			}
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsOne() {
			return Int(1)
		}
		if bn.IsZero() {
			if en, ok := exp.(*Num); ok && en.IsPositive() {
				return Int(0)
			}
		}
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) Substitute(name string, value Expr) Expr {
	return &Pow{base: p.base.Substitute(name, value), exp: p.exp.Substitute(name, value)}
}

// Diff handles the three cases: constant exponent, constant base, and the
// general f**g via the logarithmic derivative.
func (p *Pow) Diff(name string) Expr {
	baseDep := HasSymbol(p.base, name)
	expDep := HasSymbol(p.exp, name)
	switch {
	case !baseDep && !expDep:
		return Int(0)
	case baseDep && !expDep:
		// (f**n)' = n * f**(n-1) * f'
		return Prod(p.exp, Power(p.base, SubExpr(p.exp, Int(1))), p.base.Diff(name))
	case !baseDep && expDep:
		// (a**g)' = a**g * ln(a) * g'
		return Prod(p, Apply("ln", p.base), p.exp.Diff(name))
	default:
		// (f**g)' = f**g * (g' * ln(f) + g * f' / f)
		inner := Sum(
			Prod(p.exp.Diff(name), Apply("ln", p.base)),
			Prod(p.exp, p.base.Diff(name), Power(p.base, Int(-1))),
		)
		return Prod(p, inner)
	}
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok := p.base.Eval()
	if !ok {
		return nil, false
	}
	e, ok := p.exp.Eval()
	if !ok {
		return nil, false
	}
	r, done := numPow(b, e)
	if !done {
		return nil, false
	}
	return r, true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) String() string {
	base := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		base = "(" + base + ")"
	case *Num:
		if n := p.base.(*Num); n.IsNegative() || !n.IsInteger() {
			base = "(" + base + ")"
		}
	}
	exp := p.exp.String()
	switch v := p.exp.(type) {
	case *Num:
		if v.IsNegative() || !v.IsInteger() {
			exp = "(" + exp + ")"
		}
	case *Sym, *Call:
	default:
		exp = "(" + exp + ")"
	}
	return base + "**" + exp
}

// numPow computes a**e exactly when possible: integer exponents always,
// fractional exponents only when the result is rational.
func numPow(a, e *Num) (*Num, bool) {
	if e.IsInteger() {
		n := e.val.Num()
		if !n.IsInt64() {
			return nil, false
		}
		k := n.Int64()
		if a.IsZero() {
			if k < 0 {
				return nil, false
			}
			if k == 0 {
				return Int(1), true
			}
			return Int(0), true
		}
		neg := k < 0
		if neg {
			k = -k
		}
		r := new(big.Rat).SetInt64(1)
		b := new(big.Rat).Set(a.val)
		for i := int64(0); i < k; i++ {
			r.Mul(r, b)
		}
		if neg {
			r.Inv(r)
		}
		return &Num{val: r}, true
	}
	// p/q exponent: both numerator and denominator of the base must have
	// exact q-th roots.
	if a.IsNegative() {
		return nil, false
	}
	q := e.val.Denom()
	if !q.IsInt64() || q.Int64() > 64 {
		return nil, false
	}
	rootNum, ok := intRoot(a.val.Num(), q.Int64())
	if !ok {
		return nil, false
	}
	rootDen, ok := intRoot(a.val.Denom(), q.Int64())
	if !ok {
		return nil, false
	}
	root := &Num{val: new(big.Rat).SetFrac(rootNum, rootDen)}
	return numPow(root, &Num{val: new(big.Rat).SetInt(e.val.Num())})
}

// radicalSplit writes b**(p/q) as out * in**(p/q) where out collects the
// perfect q-th power content of b. split is false when there is nothing to
// extract.
func radicalSplit(b, e *Num) (out, in *Num, split bool) {
	p, q := e.val.Num(), e.val.Denom()
	if !p.IsInt64() || !q.IsInt64() || q.Int64() > 8 {
		return nil, nil, false
	}
	outN, inN := nthPowerSplit(b.val.Num(), q.Int64())
	outD, inD := nthPowerSplit(b.val.Denom(), q.Int64())
	one := big.NewInt(1)
	if outN.Cmp(one) == 0 && outD.Cmp(one) == 0 {
		return nil, nil, false
	}
	content := &Num{val: new(big.Rat).SetFrac(outN, outD)}
	pow, done := numPow(content, &Num{val: new(big.Rat).SetInt(p)})
	if !done {
		return nil, nil, false
	}
	return pow, &Num{val: new(big.Rat).SetFrac(inN, inD)}, true
}

// nthPowerSplit factors v into out**q * in with out maximal over small
// primes.
func nthPowerSplit(v *big.Int, q int64) (out, in *big.Int) {
	out = big.NewInt(1)
	in = new(big.Int).Set(v)
	for d := int64(2); d <= 1000; d++ {
		dq := new(big.Int).Exp(big.NewInt(d), big.NewInt(q), nil)
		for new(big.Int).Mod(in, dq).Sign() == 0 {
			in.Div(in, dq)
			out.Mul(out, big.NewInt(d))
		}
	}
	if r, ok := intRoot(in, q); ok {
		out.Mul(out, r)
		in = big.NewInt(1)
	}
	return out, in
}

// intRoot returns the exact n-th root of v, if one exists.
func intRoot(v *big.Int, n int64) (*big.Int, bool) {
	if v.Sign() < 0 {
		return nil, false
	}
	if v.Sign() == 0 || v.Cmp(big.NewInt(1)) == 0 {
		return new(big.Int).Set(v), true
	}
	lo, hi := big.NewInt(1), new(big.Int).Set(v)
	nn := big.NewInt(n)
	for lo.Cmp(hi) <= 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Rsh(mid, 1)
		p := new(big.Int).Exp(mid, nn, nil)
		switch p.Cmp(v) {
		case 0:
			return mid, true
		case -1:
			lo = new(big.Int).Add(mid, big.NewInt(1))
		default:
			hi = new(big.Int).Sub(mid, big.NewInt(1))
		}
	}
	return nil, false
}

// ============================================================
// Canonical ordering
// ============================================================

// totalDegree estimates the polynomial degree of a term for display
// ordering. Function applications count as degree zero.
func totalDegree(e Expr) *big.Rat {
	switch v := e.(type) {
	case *Num, *Call:
		return new(big.Rat)
	case *Sym:
		return new(big.Rat).SetInt64(1)
	case *Pow:
		if n, ok := v.exp.(*Num); ok {
			if _, isSym := v.base.(*Sym); isSym {
				return n.Rat()
			}
			d := totalDegree(v.base)
			return d.Mul(d, n.val)
		}
		return new(big.Rat).SetInt64(1)
	case *Mul:
		sum := new(big.Rat)
		for _, f := range v.factors {
			sum.Add(sum, totalDegree(f))
		}
		return sum
	case *Add:
		max := new(big.Rat)
		for _, t := range v.terms {
			if d := totalDegree(t); d.Cmp(max) > 0 {
				max = d
			}
		}
		return max
	}
	return new(big.Rat)
}

// termLess orders sum terms by descending degree, then lexically, with the
// numeric constant last.
func termLess(a, b Expr) bool {
	_, aNum := a.(*Num)
	_, bNum := b.(*Num)
	if aNum != bNum {
		return bNum
	}
	da, db := totalDegree(a), totalDegree(b)
	if c := da.Cmp(db); c != 0 {
		return c > 0
	}
	return a.String() < b.String()
}

// factorLess orders product factors: plain symbols first, then exp/ln,
// then other function applications, then composite bases, lexically within
// each band.
func factorLess(a, b Expr) bool {
	return factorKey(a) < factorKey(b)
}

func factorKey(e Expr) string {
	base := e
	if p, ok := e.(*Pow); ok {
		base = p.base
	}
	switch v := base.(type) {
	case *Sym:
		return "0:" + v.name
	case *Call:
		if v.name == "exp" || v.name == "ln" {
			return "1:" + v.String()
		}
		return "2:" + v.String()
	default:
		return "3:" + base.String()
	}
}
