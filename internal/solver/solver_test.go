package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathflow-labs/mathflow/pkg/parser"
)

func newTestSolver() *Solver {
	return New(nil, nil, nil)
}

func solutionStrings(r TaskResult) []string {
	out := make([]string, len(r.Solutions))
	for i, s := range r.Solutions {
		out[i] = s.String()
	}
	return out
}

func TestSolveQuadraticEquation(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "x^2 - 5x + 6 = 0", Task: TaskSolve, Vars: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, "x**2 - 5*x + 6 = 0", out.Normalized)
	assert.Equal(t, parser.KindEquation, out.Kind)
	assert.Equal(t, TaskSolve, out.Task)
	assert.Equal(t, []string{"2", "3"}, solutionStrings(out.Result))
	assert.True(t, out.Result.IsSolutions())
}

func TestDifferentiateDeclaredVariable(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "sin(x)*exp(x)", Task: TaskDifferentiate, Vars: []string{"x"}})
	require.NoError(t, err)
	require.False(t, out.Result.IsSolutions())
	assert.Equal(t, "exp(x)*cos(x) + exp(x)*sin(x)", out.Result.Expression.String())
}

func TestSimplifyQuotient(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "(x^2 - 1)/(x-1)", Task: TaskSimplify})
	require.NoError(t, err)
	assert.Equal(t, "x + 1", out.Result.Expression.String())
}

func TestAutoRoutesExpressionToSimplify(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "x^2", Task: TaskAuto})
	require.NoError(t, err)
	assert.Equal(t, TaskSimplify, out.Task)
	assert.Equal(t, parser.KindExpression, out.Kind)
}

func TestAutoRoutesEquationToSolve(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "2x + 3 = 7", Task: TaskAuto})
	require.NoError(t, err)
	assert.Equal(t, TaskSolve, out.Task)
	assert.Equal(t, []string{"2"}, solutionStrings(out.Result))
}

func TestSolveBareExpressionMeansEqualsZero(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "x - 3", Task: TaskSolve})
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, solutionStrings(out.Result))
}

func TestUnsafeInputRejected(t *testing.T) {
	s := newTestSolver()
	for _, text := range []string{"__import__('os')", "eval(x)", "x.y + 1"} {
		_, err := s.Solve(context.Background(), Query{Text: text, Task: TaskAuto})
		var unsafeErr *parser.UnsafeInputError
		assert.ErrorAs(t, err, &unsafeErr, "input %q", text)
	}
}

func TestAmbiguousEquationRejected(t *testing.T) {
	s := newTestSolver()
	_, err := s.Solve(context.Background(), Query{Text: "a = b = c", Task: TaskSolve})
	var ambErr *parser.AmbiguousEquationError
	require.ErrorAs(t, err, &ambErr)
	assert.Equal(t, 2, ambErr.Count)
}

func TestNoFreeVariable(t *testing.T) {
	s := newTestSolver()
	_, err := s.Solve(context.Background(), Query{Text: "3 + 4", Task: TaskDifferentiate})
	var nfvErr *NoFreeVariableError
	require.ErrorAs(t, err, &nfvErr)
	assert.Equal(t, TaskDifferentiate, nfvErr.Task)
}

func TestComplexRootsSurfaceAsEngineError(t *testing.T) {
	s := newTestSolver()
	_, err := s.Solve(context.Background(), Query{Text: "x^2 + 1 = 0", Task: TaskSolve})
	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
}

func TestDeclaredVariablesWinVerbatim(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "x*y", Task: TaskDifferentiate, Vars: []string{"y"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, out.Variables)
	assert.Equal(t, "x", out.Result.Expression.String())
}

func TestDefaultVariableIsFirstOccurrence(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "y + x", Task: TaskDifferentiate})
	require.NoError(t, err)
	require.NotEmpty(t, out.Variables)
	assert.Equal(t, "y", out.Variables[0])
	assert.Equal(t, "1", out.Result.Expression.String())
}

func TestConstantsAreNotVariables(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "2*pi*r", Task: TaskDifferentiate})
	require.NoError(t, err)
	assert.Equal(t, []string{"r"}, out.Variables)
	assert.Equal(t, "2*pi", out.Result.Expression.String())
}

func TestExtractStripsPromptWords(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "solve 2x + 3 = 7", Task: TaskAuto, Extract: true})
	require.NoError(t, err)
	assert.Equal(t, TaskSolve, out.Task)
	assert.Equal(t, []string{"2"}, solutionStrings(out.Result))
}

func TestExplainProducesSteps(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "x^2 - 5x + 6 = 0", Task: TaskSolve, Explain: true})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Steps)
}

func TestFactor(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "x^2 - 5x + 6", Task: TaskFactor})
	require.NoError(t, err)
	assert.Equal(t, "(x - 2)*(x - 3)", out.Result.Expression.String())
}

func TestExpand(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "(x+1)^2", Task: TaskExpand})
	require.NoError(t, err)
	assert.Equal(t, "x**2 + 2*x + 1", out.Result.Expression.String())
}

func TestIntegrate(t *testing.T) {
	s := newTestSolver()
	out, err := s.Solve(context.Background(), Query{Text: "cos(x)", Task: TaskIntegrate})
	require.NoError(t, err)
	assert.Equal(t, "sin(x)", out.Result.Expression.String())
}

func TestCancelledContextIsEngineError(t *testing.T) {
	s := newTestSolver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Solve(ctx, Query{Text: "x + 1", Task: TaskSimplify})
	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnknownTaskRejected(t *testing.T) {
	s := newTestSolver()
	_, err := s.Solve(context.Background(), Query{Text: "x", Task: Task("annihilate")})
	require.Error(t, err)
}

func TestWhitespaceSeparatedAtomsAreProducts(t *testing.T) {
	s := newTestSolver()

	// "x 2" is x*2, never the digit-suffixed variable x2.
	out, err := s.Solve(context.Background(), Query{Text: "x 2", Task: TaskSimplify})
	require.NoError(t, err)
	assert.Equal(t, "x*2", out.Normalized)
	assert.Equal(t, "2*x", out.Result.Expression.String())

	out, err = s.Solve(context.Background(), Query{Text: "x y", Task: TaskSimplify})
	require.NoError(t, err)
	assert.Equal(t, "x*y", out.Normalized)
	assert.Equal(t, "x*y", out.Result.Expression.String())
}

func TestSplitThenSolveMatchesResidualSolve(t *testing.T) {
	s := newTestSolver()
	eq, err := s.Solve(context.Background(), Query{Text: "x^2 = 5x - 6", Task: TaskSolve})
	require.NoError(t, err)
	residual, err := s.Solve(context.Background(), Query{Text: "x^2 - (5x - 6)", Task: TaskSolve})
	require.NoError(t, err)
	assert.Equal(t, solutionStrings(residual.Result), solutionStrings(eq.Result))
}
