package qsim

import "errors"

// Sentinel errors for the three failure classes: circuit construction,
// backend execution, and result presentation.
var (
	ErrInvalidQubitCount = errors.New("qsim: qubit count out of range")
	ErrQubitOutOfRange   = errors.New("qsim: gate references an undeclared qubit")
	ErrClbitOutOfRange   = errors.New("qsim: measurement references an undeclared classical bit")
	ErrDuplicateQubit    = errors.New("qsim: gate references the same qubit twice")

	ErrCapacityExceeded  = errors.New("qsim: circuit exceeds backend qubit capacity")
	ErrMalformedCircuit  = errors.New("qsim: malformed circuit")
	ErrInvalidShots      = errors.New("qsim: shot count must be positive")

	ErrEmptyResult    = errors.New("qsim: result has no outcomes to present")
	ErrEntangledQubit = errors.New("qsim: qubit is entangled, no single-qubit state exists")

	ErrInvalidTarget = errors.New("qsim: target must be a bitstring of circuit length")
)
