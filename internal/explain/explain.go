// Package explain produces short human-readable derivation steps for a
// computed result. Steps are descriptive, built from the same expression
// trees the engine worked on; they are only generated when a caller asks.
package explain

import (
	"fmt"
	"strings"

	"github.com/mathflow-labs/mathflow/pkg/sym"
)

// Input carries everything a step writer may need about one finished
// computation.
type Input struct {
	Task      string
	Expr      sym.Expr
	LHS       sym.Expr
	RHS       sym.Expr
	Variable  string
	Solutions []sym.Expr
	Outcome   sym.Expr
}

// Steps writes the explanation for one computation. Unknown or
// unexplainable shapes fall back to a result-only note rather than
// failing the request.
func Steps(in Input) []string {
	switch in.Task {
	case "solve":
		return solveSteps(in)
	case "differentiate":
		return diffSteps(in)
	case "integrate":
		return integrateSteps(in)
	case "simplify", "factor", "expand":
		if in.Outcome == nil {
			return nil
		}
		return []string{fmt.Sprintf("Apply %s: %s", in.Task, in.Outcome)}
	default:
		return nil
	}
}

func solveSteps(in Input) []string {
	x := in.Variable
	residual := in.Expr.Simplify()
	steps := []string{fmt.Sprintf("Bring every term to one side: %s = 0", residual)}

	cs, ok := sym.Coeffs(residual, x)
	switch {
	case ok && len(cs) == 2:
		a, b := cs[1], cs[0]
		lhs := sym.Prod(a, sym.Var(x)).Simplify()
		steps = append(steps,
			fmt.Sprintf("Move the constant to the right: %s = %s", lhs, sym.Neg(b).Simplify()),
			fmt.Sprintf("Divide both sides by %s", a))
	case ok && len(cs) == 3:
		a, b, c := cs[2], cs[1], cs[0]
		disc := sym.SubExpr(sym.Prod(b, b), sym.Prod(sym.Int(4), a, c)).Simplify()
		steps = append(steps, fmt.Sprintf("Compute the discriminant: (%s)**2 - 4*(%s)*(%s) = %s", b, a, c, disc))
		if factored, didFactor := rationalFactorisation(in.Solutions, x); didFactor {
			steps = append(steps, fmt.Sprintf("Factor: %s = 0", factored))
		} else {
			steps = append(steps, "Apply the quadratic formula")
		}
	}

	if len(in.Solutions) > 0 {
		var parts []string
		for _, s := range in.Solutions {
			parts = append(parts, fmt.Sprintf("%s = %s", x, s))
		}
		steps = append(steps, "Solutions: "+strings.Join(parts, ", "))
	}
	return steps
}

// rationalFactorisation rebuilds the factored form when every solution is
// a plain rational number.
func rationalFactorisation(sols []sym.Expr, x string) (sym.Expr, bool) {
	if len(sols) == 0 {
		return nil, false
	}
	factors := make([]sym.Expr, 0, len(sols))
	for _, s := range sols {
		if _, numeric := s.Eval(); !numeric {
			return nil, false
		}
		factors = append(factors, sym.SubExpr(sym.Var(x), s).Simplify())
	}
	return sym.Prod(factors...).Simplify(), true
}

func diffSteps(in Input) []string {
	var steps []string
	switch v := in.Expr.Simplify().(type) {
	case *sym.Add:
		steps = append(steps, "Differentiate term by term (sum rule)")
	case *sym.Mul:
		steps = append(steps, "Apply the product rule: (f*g)' = f'*g + f*g'")
	case *sym.Pow:
		steps = append(steps, "Apply the power rule: (u**n)' = n*u**(n-1)*u'")
	case *sym.Call:
		if _, plain := v.Arg().(*sym.Sym); plain {
			steps = append(steps, fmt.Sprintf("Use the table derivative of %s", v.FuncName()))
		} else {
			steps = append(steps, "Apply the chain rule: f(u)' = f'(u)*u'")
		}
	}
	if in.Outcome != nil {
		steps = append(steps, fmt.Sprintf("Derivative with respect to %s: %s", in.Variable, in.Outcome))
	}
	return steps
}

func integrateSteps(in Input) []string {
	var steps []string
	if _, isSum := in.Expr.Simplify().(*sym.Add); isSum {
		steps = append(steps, "Integrate term by term")
	}
	if in.Outcome != nil {
		steps = append(steps, fmt.Sprintf("Antiderivative with respect to %s: %s + C", in.Variable, in.Outcome))
	}
	return steps
}
