package solver

import (
	"fmt"

	"github.com/mathflow-labs/mathflow/pkg/parser"
	"github.com/mathflow-labs/mathflow/pkg/sym"
)

// Task names an operation the router can dispatch.
type Task string

const (
	TaskAuto          Task = "auto"
	TaskSolve         Task = "solve"
	TaskSimplify      Task = "simplify"
	TaskDifferentiate Task = "differentiate"
	TaskIntegrate     Task = "integrate"
	TaskFactor        Task = "factor"
	TaskExpand        Task = "expand"
)

// Tasks lists every accepted task name, auto first.
func Tasks() []Task {
	return []Task{TaskAuto, TaskSolve, TaskSimplify, TaskDifferentiate, TaskIntegrate, TaskFactor, TaskExpand}
}

// ParseTask validates a task name; the empty string means auto.
func ParseTask(s string) (Task, error) {
	if s == "" {
		return TaskAuto, nil
	}
	for _, t := range Tasks() {
		if Task(s) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown task %q", s)
}

// needsOneVariable reports whether the task operates on exactly one
// variable.
func (t Task) needsOneVariable() bool {
	switch t {
	case TaskSolve, TaskDifferentiate, TaskIntegrate:
		return true
	}
	return false
}

// Query is one immutable request: free-form text, the requested task, and
// optionally the caller's variable declaration.
type Query struct {
	Text string
	Task Task
	// Vars is the caller's authoritative variable list; when set it is
	// used verbatim and never second-guessed.
	Vars []string
	// Extract runs prompt-word / noise stripping before normalization.
	Extract bool
	// Explain asks for step-by-step notes alongside the result.
	Explain bool
}

// TaskResult is the tagged computation outcome: a solution list for solve,
// a single expression for everything else.
type TaskResult struct {
	Solutions  []sym.Expr
	Expression sym.Expr
}

// IsSolutions reports which arm of the union is populated.
func (r TaskResult) IsSolutions() bool { return r.Expression == nil }

// Outcome is the full structured response for one query.
type Outcome struct {
	Task       Task
	Kind       parser.SplitKind
	Normalized string
	Variables  []string
	Result     TaskResult
	Steps      []string
}
