package sym

// Factor rewrites a polynomial in the named variable as a product of
// linear factors over the rationals, times any irreducible remainder.
// Expressions that are not numeric-coefficient polynomials are returned
// unchanged after simplification.
func Factor(e Expr, name string) Expr {
	e = Expand(e)
	cs, ok := NumCoeffs(e, name)
	if !ok || len(cs) < 2 {
		return e
	}
	roots, rest := rationalRoots(cs)
	if len(roots) == 0 {
		return e
	}
	x := Var(name)
	factors := make([]Expr, 0, len(roots)+1)
	for _, r := range roots {
		factors = append(factors, SubExpr(x, r).Simplify())
	}
	if len(rest) > 1 {
		restCs := make([]Expr, len(rest))
		for i, c := range rest {
			restCs[i] = c
		}
		factors = append(factors, FromCoeffs(restCs, name))
	} else if len(rest) == 1 && !rest[0].IsOne() {
		factors = append(factors, rest[0])
	}
	if len(factors) == 1 {
		return factors[0]
	}
	// Simplify orders the factors and merges repeated roots into powers
	// without distributing the product.
	return Prod(factors...).Simplify()
}
