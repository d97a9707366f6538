package sym

import "testing"

func TestSimplifyString(t *testing.T) {
	x := Var("x")
	tests := []struct {
		name string
		in   Expr
		want string
	}{
		{"collect like terms", Sum(Prod(Int(2), x), Prod(Int(3), x)), "5*x"},
		{"merge bases", Prod(Power(x, Int(2)), x), "x**3"},
		{"drop zero", Sum(x, Int(0)), "x"},
		{"drop one", Prod(Int(1), x), "x"},
		{"zero product", Prod(Int(0), x, Apply("sin", x)), "0"},
		{"standard polynomial order", Sum(Int(6), Power(x, Int(2)), Prod(Int(-5), x)), "x**2 - 5*x + 6"},
		{"negative head", Sum(Prod(Int(-1), x), Int(2)), "-x + 2"},
		{"numeric fold", Sum(Int(2), Int(3), Prod(Int(2), Int(2))), "9"},
		{"rational power", Power(Int(4), Rat(1, 2)), "2"},
		{"integer power", Power(Int(2), Int(10)), "1024"},
		{"negative integer power", Power(Int(2), Int(-2)), "1/4"},
		{"sqrt becomes half power", Apply("sqrt", x), "x**(1/2)"},
		{"sqrt merges", Prod(Apply("sqrt", x), Apply("sqrt", x)), "x"},
		{"ln exp inverse", Apply("ln", Apply("exp", x)), "x"},
		{"ln e", Apply("ln", Var("e")), "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Simplify().String()
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	x := Var("x")
	tests := []struct {
		name string
		in   Expr
		want string
	}{
		{"power rule", Power(x, Int(3)), "3*x**2"},
		{"constant", Int(7), "0"},
		{"other symbol", Var("y"), "0"},
		{"sin", Apply("sin", x), "cos(x)"},
		{"cos", Apply("cos", x), "-sin(x)"},
		{"chain rule", Apply("sin", Power(x, Int(2))), "2*x*cos(x**2)"},
		{"product rule", Prod(Apply("exp", x), Apply("sin", x)), "exp(x)*cos(x) + exp(x)*sin(x)"},
		{"ln", Apply("ln", x), "x**(-1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Diff("x").Simplify().String()
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	x := Var("x")
	tests := []struct {
		name string
		in   Expr
		want string
	}{
		{"binomial square", Power(Sum(x, Int(1)), Int(2)), "x**2 + 2*x + 1"},
		{"product of sums", Prod(Sum(x, Int(2)), Sum(x, Int(3))), "x**2 + 5*x + 6"},
		{"distribute scalar", Prod(Int(2), Sum(x, Int(1))), "2*x + 2"},
		{"cube", Power(Sum(x, Int(1)), Int(3)), "x**3 + 3*x**2 + 3*x + 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.in).String()
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	x := Var("x")
	tests := []struct {
		name string
		in   Expr
		want string
	}{
		{
			"difference of squares",
			Div(SubExpr(Power(x, Int(2)), Int(1)), SubExpr(x, Int(1))),
			"x + 1",
		},
		{
			"exact cubic quotient",
			Div(SubExpr(Power(x, Int(3)), Int(8)), SubExpr(x, Int(2))),
			"x**2 + 2*x + 4",
		},
		{
			"no common factor stays put",
			Div(Sum(x, Int(1)), Sum(x, Int(2))),
			"(x + 1)*(x + 2)**(-1)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cancel(tt.in).String()
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReduceTrig(t *testing.T) {
	x := Var("x")
	in := Sum(Power(Apply("sin", x), Int(2)), Power(Apply("cos", x), Int(2)))
	if got := Reduce(in).String(); got != "1" {
		t.Errorf("got %q, want %q", got, "1")
	}
}

func TestFactor(t *testing.T) {
	x := Var("x")
	tests := []struct {
		name string
		in   Expr
		want string
	}{
		{"two rational roots", Sum(Power(x, Int(2)), Prod(Int(-5), x), Int(6)), "(x - 2)*(x - 3)"},
		{"repeated root", Sum(Power(x, Int(2)), Prod(Int(2), x), Int(1)), "(x + 1)**2"},
		{"content factor", Sum(Prod(Int(2), x), Int(4)), "2*(x + 2)"},
		{"irreducible stays expanded", Sum(Power(x, Int(2)), Int(1)), "x**2 + 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Factor(tt.in, "x").String()
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSolveEquation(t *testing.T) {
	x := Var("x")
	tests := []struct {
		name string
		lhs  Expr
		rhs  Expr
		want []string
	}{
		{"linear", Sum(Prod(Int(2), x), Int(3)), Int(7), []string{"2"}},
		{"quadratic two roots", Sum(Power(x, Int(2)), Prod(Int(-5), x), Int(6)), Int(0), []string{"2", "3"}},
		{"quadratic double root", Sum(Power(x, Int(2)), Prod(Int(-2), x), Int(1)), Int(0), []string{"1"}},
		{"cubic rational roots", Prod(SubExpr(x, Int(1)), SubExpr(x, Int(2)), SubExpr(x, Int(3))), Int(0), []string{"1", "2", "3"}},
		{"irrational roots", Power(x, Int(2)), Int(2), []string{"-2**(1/2)", "2**(1/2)"}},
		{"isolate exp", Apply("exp", x), Int(5), []string{"ln(5)"}},
		{"isolate sqrt", Apply("sqrt", x), Int(3), []string{"9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sols, err := SolveEquation(tt.lhs, tt.rhs, "x")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(sols) != len(tt.want) {
				t.Fatalf("got %d solutions, want %d", len(sols), len(tt.want))
			}
			for i, s := range sols {
				if s.String() != tt.want[i] {
					t.Errorf("solution %d: got %q, want %q", i, s.String(), tt.want[i])
				}
			}
		})
	}
}

func TestSolveEquationErrors(t *testing.T) {
	x := Var("x")
	if _, err := SolveEquation(Sum(Power(x, Int(2)), Int(1)), Int(0), "x"); err != ErrComplexRoot {
		t.Errorf("complex roots: got %v, want %v", err, ErrComplexRoot)
	}
	if _, err := SolveEquation(x, x, "x"); err != ErrAllValues {
		t.Errorf("identity: got %v, want %v", err, ErrAllValues)
	}
	if _, err := SolveEquation(Int(1), Int(2), "x"); err != ErrNoSolution {
		t.Errorf("contradiction: got %v, want %v", err, ErrNoSolution)
	}
}

func TestIntegrate(t *testing.T) {
	x := Var("x")
	tests := []struct {
		name string
		in   Expr
		want string
	}{
		{"power", Power(x, Int(2)), "(1/3)*x**3"},
		{"symbol", x, "(1/2)*x**2"},
		{"constant", Int(5), "5*x"},
		{"reciprocal", Power(x, Int(-1)), "ln(abs(x))"},
		{"cos", Apply("cos", x), "sin(x)"},
		{"scaled sin", Apply("sin", Prod(Int(2), x)), "(-1/2)*cos(2*x)"},
		{"exp", Apply("exp", x), "exp(x)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Integrate(tt.in, "x")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestSubstituteEval(t *testing.T) {
	x := Var("x")
	e := Sum(Power(x, Int(2)), Prod(Int(3), x), Int(1))
	n, ok := e.Substitute("x", Int(2)).Eval()
	if !ok {
		t.Fatal("expected numeric result")
	}
	if n.String() != "11" {
		t.Errorf("got %s, want 11", n)
	}
}

func TestFreeSymbols(t *testing.T) {
	e := Sum(Prod(Var("a"), Var("x")), Apply("sin", Var("y")))
	got := FreeSymbols(e)
	for _, name := range []string{"a", "x", "y"} {
		if _, ok := got[name]; !ok {
			t.Errorf("missing symbol %s", name)
		}
	}
	if len(got) != 3 {
		t.Errorf("got %d symbols, want 3", len(got))
	}
}
