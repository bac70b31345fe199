package tools

import "errors"

// Registry and chain errors.
var (
	// ErrToolNotFound is returned when a normalized tool name has no
	// registry entry. It is fatal to the remaining chain.
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolExecution wraps any failure inside a tool's Execute.
	// It is recorded on the failing step and aborts the remainder.
	ErrToolExecution = errors.New("tool execution failed")

	// ErrToolNameEmpty is returned when a tool has no name.
	ErrToolNameEmpty = errors.New("tool name cannot be empty")

	// ErrToolExecuteNil is returned when a tool has no execute function.
	ErrToolExecuteNil = errors.New("tool execute function cannot be nil")

	// ErrToolAlreadyRegistered is returned when registering a duplicate.
	ErrToolAlreadyRegistered = errors.New("tool already registered")
)

// Tool-level parameter errors. All wrap into ErrToolExecution at the
// chain boundary.
var (
	// ErrMissingParam is returned when a required parameter is absent.
	ErrMissingParam = errors.New("missing required parameter")

	// ErrInvalidParam is returned when a parameter cannot be coerced
	// to the expected type.
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrDivisionByZero is returned by the calculator for b == 0.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUnknownOperation is returned for an unsupported calculator op.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrUnknownCurrency is returned for a currency code outside the
	// mock rate table.
	ErrUnknownCurrency = errors.New("unknown currency")
)
