package solver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mathflow-labs/mathflow/pkg/sym"
)

// Engine is the capability interface over the symbolic backend. The
// router depends only on this, so the backend can be swapped or stubbed
// in tests without touching routing logic.
type Engine interface {
	Solve(ctx context.Context, expr sym.Expr, variable string) ([]sym.Expr, error)
	Simplify(ctx context.Context, expr sym.Expr) (sym.Expr, error)
	Diff(ctx context.Context, expr sym.Expr, variable string) (sym.Expr, error)
	Integrate(ctx context.Context, expr sym.Expr, variable string) (sym.Expr, error)
	Factor(ctx context.Context, expr sym.Expr, variable string) (sym.Expr, error)
	Expand(ctx context.Context, expr sym.Expr) (sym.Expr, error)
}

// KernelEngine backs the Engine interface with the in-process symbolic
// kernel. Kernel failures and panics surface as EngineError; context
// cancellation does too, since timeout ownership stays with the caller.
// The engine holds no state and performs no caching or retries.
type KernelEngine struct {
	log *slog.Logger
}

// NewKernelEngine returns a kernel-backed engine. A nil logger discards.
func NewKernelEngine(log *slog.Logger) *KernelEngine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &KernelEngine{log: log}
}

// guard converts context errors and kernel panics into EngineError. Every
// primitive runs inside it.
func (k *KernelEngine) guard(ctx context.Context, op string, fn func() error) (err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &EngineError{Cause: ctxErr}
	}
	defer func() {
		if r := recover(); r != nil {
			k.log.Error("kernel panic", "op", op, "panic", r)
			err = &EngineError{Cause: fmt.Errorf("%s: %v", op, r)}
		}
	}()
	if err = fn(); err != nil {
		return &EngineError{Cause: err}
	}
	return nil
}

func (k *KernelEngine) Solve(ctx context.Context, expr sym.Expr, variable string) ([]sym.Expr, error) {
	var out []sym.Expr
	err := k.guard(ctx, "solve", func() error {
		sols, err := sym.SolveEquation(expr, sym.Int(0), variable)
		out = sols
		return err
	})
	return out, err
}

func (k *KernelEngine) Simplify(ctx context.Context, expr sym.Expr) (sym.Expr, error) {
	var out sym.Expr
	err := k.guard(ctx, "simplify", func() error {
		out = sym.Reduce(expr)
		return nil
	})
	return out, err
}

func (k *KernelEngine) Diff(ctx context.Context, expr sym.Expr, variable string) (sym.Expr, error) {
	var out sym.Expr
	err := k.guard(ctx, "diff", func() error {
		out = sym.Reduce(expr.Diff(variable))
		return nil
	})
	return out, err
}

func (k *KernelEngine) Integrate(ctx context.Context, expr sym.Expr, variable string) (sym.Expr, error) {
	var out sym.Expr
	err := k.guard(ctx, "integrate", func() error {
		anti, err := sym.Integrate(expr, variable)
		out = anti
		return err
	})
	return out, err
}

func (k *KernelEngine) Factor(ctx context.Context, expr sym.Expr, variable string) (sym.Expr, error) {
	var out sym.Expr
	err := k.guard(ctx, "factor", func() error {
		out = sym.Factor(expr, variable)
		return nil
	})
	return out, err
}

func (k *KernelEngine) Expand(ctx context.Context, expr sym.Expr) (sym.Expr, error) {
	var out sym.Expr
	err := k.guard(ctx, "expand", func() error {
		out = sym.Expand(expr)
		return nil
	})
	return out, err
}
