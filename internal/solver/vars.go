package solver

import (
	"github.com/mathflow-labs/mathflow/pkg/parser"
	"github.com/mathflow-labs/mathflow/pkg/sym"
)

// resolveVariables decides which variables the task operates on.
//
// Declared variables win verbatim, order preserved; single-variable tasks
// then use the first entry. With no declaration, the free symbols of the
// parsed expressions are taken in first-occurrence order over the
// normalized text, which keeps the default-variable choice reproducible
// regardless of how any symbol set iterates. Constants are never
// variables. Tasks that need a variable fail with NoFreeVariableError
// when none is found.
func resolveVariables(task Task, declared []string, normalized string, allowed *parser.Allowlist, exprs ...sym.Expr) ([]string, error) {
	if len(declared) > 0 {
		out := make([]string, len(declared))
		copy(out, declared)
		return out, nil
	}
	free := map[string]struct{}{}
	for _, e := range exprs {
		for name := range sym.FreeSymbols(e) {
			if allowed.IsConstant(name) {
				continue
			}
			free[name] = struct{}{}
		}
	}
	var out []string
	for _, name := range parser.ScanSymbols(normalized, allowed) {
		if _, ok := free[name]; ok {
			out = append(out, name)
		}
	}
	if len(out) == 0 && task.needsOneVariable() {
		return nil, &NoFreeVariableError{Task: task}
	}
	return out, nil
}

// primaryVariable is the single variable used by solve, differentiate,
// and integrate: the first resolved entry, or empty when there is none.
func primaryVariable(vars []string) string {
	if len(vars) == 0 {
		return ""
	}
	return vars[0]
}
