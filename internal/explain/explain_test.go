package explain

import (
	"strings"
	"testing"

	"github.com/mathflow-labs/mathflow/pkg/sym"
)

func TestSolveStepsQuadratic(t *testing.T) {
	x := sym.Var("x")
	expr := sym.Sum(sym.Power(x, sym.Int(2)), sym.Prod(sym.Int(-5), x), sym.Int(6))
	steps := Steps(Input{
		Task:      "solve",
		Expr:      expr,
		Variable:  "x",
		Solutions: []sym.Expr{sym.Int(2), sym.Int(3)},
	})
	if len(steps) != 4 {
		t.Fatalf("got %d steps, want 4: %v", len(steps), steps)
	}
	if !strings.Contains(steps[1], "discriminant") {
		t.Errorf("step 2 should mention the discriminant: %q", steps[1])
	}
	if !strings.Contains(steps[2], "(x - 2)*(x - 3)") {
		t.Errorf("step 3 should show the factorisation: %q", steps[2])
	}
	if want := "Solutions: x = 2, x = 3"; steps[3] != want {
		t.Errorf("step 4 = %q, want %q", steps[3], want)
	}
}

func TestSolveStepsLinear(t *testing.T) {
	x := sym.Var("x")
	expr := sym.Sum(sym.Prod(sym.Int(2), x), sym.Int(-4))
	steps := Steps(Input{
		Task:      "solve",
		Expr:      expr,
		Variable:  "x",
		Solutions: []sym.Expr{sym.Int(2)},
	})
	if len(steps) != 4 {
		t.Fatalf("got %d steps, want 4: %v", len(steps), steps)
	}
	if want := "Move the constant to the right: 2*x = 4"; steps[1] != want {
		t.Errorf("step 2 = %q, want %q", steps[1], want)
	}
}

func TestDiffStepsProductRule(t *testing.T) {
	x := sym.Var("x")
	expr := sym.Prod(sym.Apply("exp", x), sym.Apply("sin", x))
	steps := Steps(Input{
		Task:     "differentiate",
		Expr:     expr,
		Variable: "x",
		Outcome:  sym.Sum(sym.Prod(sym.Apply("exp", x), sym.Apply("cos", x)), sym.Prod(sym.Apply("exp", x), sym.Apply("sin", x))).Simplify(),
	})
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2: %v", len(steps), steps)
	}
	if !strings.Contains(steps[0], "product rule") {
		t.Errorf("step 1 should name the product rule: %q", steps[0])
	}
}

func TestStepsQuietForUnknownTask(t *testing.T) {
	if got := Steps(Input{Task: "auto"}); got != nil {
		t.Errorf("expected no steps, got %v", got)
	}
}
