package main

import "errors"

// Sentinel errors for the simulation pipeline. Callers match them with
// errors.Is; the wrapped message carries the offending gate or value.
var (
	// ErrInvalidCircuit is returned when a circuit fails validation before
	// any gate is applied.
	ErrInvalidCircuit = errors.New("invalid circuit")

	// ErrInvalidParams is returned when a parametric gate is missing an
	// angle or carries a non-numeric one.
	ErrInvalidParams = errors.New("invalid gate parameters")

	// ErrDimensionMismatch is returned when a state vector's length does
	// not equal 2^n for its qubit count.
	ErrDimensionMismatch = errors.New("state dimension mismatch")

	// ErrConfiguration is returned by the sampler for a non-positive
	// shot count.
	ErrConfiguration = errors.New("invalid configuration")
)
