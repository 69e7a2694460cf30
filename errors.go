package main

import "fmt"

// InsufficientParametersError reports a parameter vector whose length does not
// match the requested ansatz shape. Detected up front, before any gates are
// emitted.
type InsufficientParametersError struct {
	Got    int
	Want   int
	Qubits int
	Layers int
}

func (e *InsufficientParametersError) Error() string {
	return fmt.Sprintf("ansatz for %d qubits x %d layers needs %d parameters, got %d",
		e.Qubits, e.Layers, e.Want, e.Got)
}

// CompilationError wraps a failure in the transpilation phase, before any
// shots are run.
type CompilationError struct {
	Reason string
	Err    error
}

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation failed: %s", e.Reason)
}

func (e *CompilationError) Unwrap() error { return e.Err }

// ExecutionError wraps a failure during simulated execution of a circuit that
// already compiled successfully.
type ExecutionError struct {
	Reason string
	Err    error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("execution failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("execution failed: %s", e.Reason)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// DegenerateResultError reports outcome counts that cannot produce a fidelity
// value (no outcomes, or shots summing to zero).
type DegenerateResultError struct {
	Outcomes int
	Shots    int
}

func (e *DegenerateResultError) Error() string {
	return fmt.Sprintf("degenerate execution result: %d outcomes over %d shots", e.Outcomes, e.Shots)
}
