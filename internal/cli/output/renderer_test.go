package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathflow-labs/mathflow/internal/solver"
	"github.com/mathflow-labs/mathflow/pkg/parser"
	"github.com/mathflow-labs/mathflow/pkg/sym"
)

func solutionsOutcome() *solver.Outcome {
	return &solver.Outcome{
		Task:       solver.TaskSolve,
		Kind:       parser.KindEquation,
		Normalized: "x**2 - 5*x + 6 = 0",
		Variables:  []string{"x"},
		Result:     solver.TaskResult{Solutions: []sym.Expr{sym.Int(2), sym.Int(3)}},
	}
}

func expressionOutcome() *solver.Outcome {
	return &solver.Outcome{
		Task:       solver.TaskSimplify,
		Kind:       parser.KindExpression,
		Normalized: "(x**2 - 1)/(x - 1)",
		Variables:  []string{"x"},
		Result:     solver.TaskResult{Expression: sym.Sum(sym.Var("x"), sym.Int(1)).Simplify()},
	}
}

func TestRenderText(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, buf, ModeText)

	require.NoError(t, r.Outcome(solutionsOutcome()))
	assert.Equal(t, "x = 2, x = 3\n", buf.String())

	buf.Reset()
	require.NoError(t, r.Outcome(expressionOutcome()))
	assert.Equal(t, "x + 1\n", buf.String())
}

func TestRenderTextSteps(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, buf, ModeText)

	o := expressionOutcome()
	o.Steps = []string{"first", "second"}
	require.NoError(t, r.Outcome(o))
	assert.Equal(t, "x + 1\n  first\n  second\n", buf.String())
}

func TestRenderJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, buf, ModeJSON)

	require.NoError(t, r.Outcome(solutionsOutcome()))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "solve", got["task"])
	assert.Equal(t, "equation", got["kind"])
	assert.Equal(t, []interface{}{"2", "3"}, got["solutions"])
}

func TestRenderYAML(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, buf, ModeYAML)

	require.NoError(t, r.Outcome(expressionOutcome()))
	assert.Contains(t, buf.String(), "task: simplify")
	assert.Contains(t, buf.String(), "expression: x + 1")
}

func TestRenderTable(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, buf, ModeTable)

	require.NoError(t, r.Outcome(solutionsOutcome()))
	out := buf.String()
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "3")
}

func TestUnknownModeFallsBackToAuto(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, buf, Mode("bogus"))

	require.NoError(t, r.Outcome(expressionOutcome()))
	assert.Equal(t, "x + 1\n", buf.String())
}
