package prover

import "errors"

// ErrAssertionFailed is returned when an IsAssert gate's wire value is
// nonzero: the input the circuit was evaluated on violates a constraint
// the circuit author asserted, not a bug in this package.
var ErrAssertionFailed = errors.New("prover: assertion gate evaluated to a nonzero value")

// ErrProverLogic is returned when an internal sum-check identity the
// prover itself should always satisfy fails to hold — a malformed
// LayeredCircuit (bad gate indices, non-power-of-two layer, disconnected
// wiring) rather than anything about the witness.
var ErrProverLogic = errors.New("prover: internal consistency check failed")
