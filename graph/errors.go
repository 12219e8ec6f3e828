package graph

import "errors"

// ErrMalformedNode is returned when a node's child wiring cannot be emitted
// as a gate: a relay with neither child set, or an op outside {input, add,
// mul, relay}.
var ErrMalformedNode = errors.New("graph: malformed node")

// ErrCircuitTooLarge is returned when padding a layer up to the next power
// of two would exceed the 2^31 gate cap.
var ErrCircuitTooLarge = errors.New("graph: circuit too large")
