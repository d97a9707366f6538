// Package solver runs the query pipeline: normalization, equation
// splitting, guarded parsing, variable resolution, task routing, and the
// engine invocation, producing one structured Outcome per query.
package solver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mathflow-labs/mathflow/internal/explain"
	"github.com/mathflow-labs/mathflow/pkg/parser"
	"github.com/mathflow-labs/mathflow/pkg/sym"
)

// Solver wires the pipeline together. It is stateless per request; the
// only shared state is the read-only allow-list, safe for concurrent use.
type Solver struct {
	engine  Engine
	allowed *parser.Allowlist
	log     *slog.Logger
}

// New builds a solver. A nil engine gets the in-process kernel, a nil
// allow-list the default namespace, a nil logger discards.
func New(engine Engine, allowed *parser.Allowlist, log *slog.Logger) *Solver {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if engine == nil {
		engine = NewKernelEngine(log)
	}
	if allowed == nil {
		allowed = parser.NewAllowlist()
	}
	return &Solver{engine: engine, allowed: allowed, log: log}
}

// Allowlist exposes the solver's namespace, for callers that normalize or
// scan text themselves.
func (s *Solver) Allowlist() *parser.Allowlist { return s.allowed }

// Solve runs one query through the full pipeline.
func (s *Solver) Solve(ctx context.Context, q Query) (*Outcome, error) {
	task, err := ParseTask(string(q.Task))
	if err != nil {
		return nil, err
	}

	text := q.Text
	if q.Extract {
		text = parser.ExtractMath(text)
	}
	normalized := parser.Normalize(text, s.allowed)

	split, err := parser.SplitEquation(normalized)
	if err != nil {
		return nil, err
	}

	// auto resolves against the artifact shape: equations are solved,
	// bare expressions simplified.
	if task == TaskAuto {
		if split.Kind == parser.KindEquation {
			task = TaskSolve
		} else {
			task = TaskSimplify
		}
	}

	var lhs, rhs sym.Expr
	if split.Kind == parser.KindEquation {
		if lhs, err = parser.Parse(split.LHS, s.allowed); err != nil {
			return nil, err
		}
		if rhs, err = parser.Parse(split.RHS, s.allowed); err != nil {
			return nil, err
		}
	} else {
		if lhs, err = parser.Parse(split.Expr, s.allowed); err != nil {
			return nil, err
		}
	}

	vars, err := resolveVariables(task, q.Vars, normalized, s.allowed, exprList(lhs, rhs)...)
	if err != nil {
		return nil, err
	}

	// Non-solve tasks treat an equation as its residual lhs-rhs; only the
	// solve route, and only it, supplies the implicit "= 0" for a bare
	// expression.
	expr := lhs
	if rhs != nil {
		expr = sym.SubExpr(lhs, rhs)
	}

	s.log.Debug("routing query",
		"task", string(task),
		"kind", split.Kind.String(),
		"normalized", normalized,
		"vars", vars)

	result, err := s.route(ctx, task, expr, vars)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Task:       task,
		Kind:       split.Kind,
		Normalized: normalized,
		Variables:  vars,
		Result:     result,
	}
	if q.Explain {
		out.Steps = explain.Steps(explain.Input{
			Task:      string(task),
			Expr:      expr,
			LHS:       lhs,
			RHS:       rhs,
			Variable:  primaryVariable(vars),
			Solutions: result.Solutions,
			Outcome:   result.Expression,
		})
	}
	return out, nil
}

func (s *Solver) route(ctx context.Context, task Task, expr sym.Expr, vars []string) (TaskResult, error) {
	variable := primaryVariable(vars)
	switch task {
	case TaskSolve:
		sols, err := s.engine.Solve(ctx, expr, variable)
		if err != nil {
			return TaskResult{}, err
		}
		return TaskResult{Solutions: sols}, nil
	case TaskSimplify:
		out, err := s.engine.Simplify(ctx, expr)
		if err != nil {
			return TaskResult{}, err
		}
		return TaskResult{Expression: out}, nil
	case TaskDifferentiate:
		out, err := s.engine.Diff(ctx, expr, variable)
		if err != nil {
			return TaskResult{}, err
		}
		return TaskResult{Expression: out}, nil
	case TaskIntegrate:
		out, err := s.engine.Integrate(ctx, expr, variable)
		if err != nil {
			return TaskResult{}, err
		}
		return TaskResult{Expression: out}, nil
	case TaskFactor:
		out, err := s.engine.Factor(ctx, expr, variable)
		if err != nil {
			return TaskResult{}, err
		}
		return TaskResult{Expression: out}, nil
	case TaskExpand:
		out, err := s.engine.Expand(ctx, expr)
		if err != nil {
			return TaskResult{}, err
		}
		return TaskResult{Expression: out}, nil
	default:
		// ParseTask and the auto rewrite leave no other task standing.
		return TaskResult{}, fmt.Errorf("unroutable task %q", task)
	}
}

func exprList(lhs, rhs sym.Expr) []sym.Expr {
	if rhs == nil {
		return []sym.Expr{lhs}
	}
	return []sym.Expr{lhs, rhs}
}
