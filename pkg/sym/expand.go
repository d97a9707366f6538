package sym

// Expand distributes products over sums and multiplies out positive
// integer powers of sums.
func Expand(e Expr) Expr {
	return expand(e.Simplify()).Simplify()
}

func expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = expand(t)
		}
		return Sum(out...).Simplify()
	case *Mul:
		terms := []Expr{Int(1)}
		for _, f := range v.factors {
			terms = distribute(terms, expand(f))
		}
		return Sum(terms...).Simplify()
	case *Pow:
		base := expand(v.base)
		exp := expand(v.exp)
		if n, ok := exp.(*Num); ok && n.IsInteger() && n.IsPositive() && n.val.Num().IsInt64() {
			if _, isAdd := base.(*Add); isAdd {
				k := n.val.Num().Int64()
				terms := []Expr{Int(1)}
				for i := int64(0); i < k; i++ {
					terms = distribute(terms, base)
				}
				return Sum(terms...).Simplify()
			}
		}
		return Power(base, exp).Simplify()
	case *Call:
		return (&Call{name: v.name, arg: expand(v.arg)}).Simplify()
	default:
		return e
	}
}

// distribute multiplies every accumulated term by f, splitting f into its
// terms when it is a sum.
func distribute(acc []Expr, f Expr) []Expr {
	fTerms := []Expr{f}
	if a, ok := f.(*Add); ok {
		fTerms = a.terms
	}
	out := make([]Expr, 0, len(acc)*len(fTerms))
	for _, t := range acc {
		for _, ft := range fTerms {
			out = append(out, Prod(t, ft).Simplify())
		}
	}
	return out
}

// Cancel removes an exact polynomial denominator from a single-variable
// quotient, so (x**2 - 1)/(x - 1) becomes x + 1. Expressions it cannot
// handle are returned unchanged.
func Cancel(e Expr) Expr {
	e = e.Simplify()
	syms := FreeSymbols(e)
	name := ""
	for s := range syms {
		if s == "pi" || s == "e" {
			continue
		}
		if name != "" {
			return e
		}
		name = s
	}
	if name == "" {
		return e
	}
	num, den, ok := splitFraction(e)
	if !ok {
		return e
	}
	ncs, ok := NumCoeffs(Expand(num), name)
	if !ok {
		return e
	}
	dcs, ok := NumCoeffs(Expand(den), name)
	if !ok || numPolyIsZero(dcs) {
		return e
	}
	quo, rem := numPolyDiv(ncs, dcs)
	if !numPolyIsZero(rem) {
		return e
	}
	out := make([]Expr, len(quo))
	for i, c := range quo {
		out[i] = c
	}
	return FromCoeffs(out, name)
}

// splitFraction separates a product into numerator and denominator by the
// sign of integer exponents. ok is false when there is no denominator.
func splitFraction(e Expr) (num, den Expr, ok bool) {
	m, isMul := e.(*Mul)
	if !isMul {
		return nil, nil, false
	}
	var nums, dens []Expr
	for _, f := range m.factors {
		if p, isPow := f.(*Pow); isPow {
			if n, isNum := p.exp.(*Num); isNum && n.IsInteger() && n.IsNegative() {
				dens = append(dens, Power(p.base, numNeg(n)))
				continue
			}
		}
		nums = append(nums, f)
	}
	if len(dens) == 0 {
		return nil, nil, false
	}
	return Prod(nums...).Simplify(), Prod(dens...).Simplify(), true
}

// Reduce is the full simplification pipeline: canonical simplification,
// quotient cancellation, and the Pythagorean identity.
func Reduce(e Expr) Expr {
	e = Cancel(e.Simplify())
	return trigReduce(e).Simplify()
}

// trigReduce collapses matching sin(u)**2 + cos(u)**2 pairs to 1.
func trigReduce(e Expr) Expr {
	a, ok := e.(*Add)
	if !ok {
		return e
	}
	type pair struct {
		coeff *Num
		idx   int
	}
	sins := map[string]pair{}
	coss := map[string]pair{}
	used := make([]bool, len(a.terms))
	for i, t := range a.terms {
		coeff, rest := splitCoeff(t)
		p, isPow := rest.(*Pow)
		if !isPow {
			continue
		}
		n, isNum := p.exp.(*Num)
		if !isNum || numCmp(n, Int(2)) != 0 {
			continue
		}
		c, isCall := p.base.(*Call)
		if !isCall {
			continue
		}
		key := c.arg.String()
		switch c.name {
		case "sin":
			sins[key] = pair{coeff: coeff, idx: i}
		case "cos":
			coss[key] = pair{coeff: coeff, idx: i}
		}
	}
	var extra []Expr
	for key, s := range sins {
		c, okc := coss[key]
		if !okc || numCmp(s.coeff, c.coeff) != 0 {
			continue
		}
		used[s.idx] = true
		used[c.idx] = true
		extra = append(extra, s.coeff)
	}
	if len(extra) == 0 {
		return e
	}
	var out []Expr
	for i, t := range a.terms {
		if !used[i] {
			out = append(out, t)
		}
	}
	out = append(out, extra...)
	return Sum(out...).Simplify()
}
