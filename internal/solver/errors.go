package solver

import "fmt"

// NoFreeVariableError is returned when a task that needs a variable is
// asked about an expression with no free symbols.
type NoFreeVariableError struct {
	Task Task
}

func (e *NoFreeVariableError) Error() string {
	return fmt.Sprintf("task %q requires a variable but the expression has no free symbols", e.Task)
}

// EngineError wraps any failure coming out of the symbolic engine:
// unsupported operations, unsolvable equations, kernel panics, or caller
// timeouts. Engine failures are terminal for the request; nothing retries.
type EngineError struct {
	Cause error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine: %v", e.Cause)
}

func (e *EngineError) Unwrap() error { return e.Cause }
