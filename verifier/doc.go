/*
Package verifier implements zkgraph's zero-knowledge GKR verifier: given a
compiled LayeredCircuit (the same public circuit structure the prover used,
including its input-layer constants) and a prover.Proof, it replays the
proof's transcript log and accepts only if every sum-check round is
internally consistent and the final round ties back to the circuit's own
wiring and input values.

Unlike the prover, the verifier never sees intermediate wire values. Each
layer's wiring predicates (graph.AddMLE, MultMLE, RelayMLE, AddXSum,
ConstMLE) are pure functions of the compiled circuit's structure, so the
verifier can evaluate them directly; v_u and v_v are read off the
transcript rather than recomputed, and are only trusted once the sum-check
rounds that produced them have checked out.

A proof is accepted only if:
  - every phase-1/phase-2 round satisfies p_k(0)+p_k(1) = the running
    target carried from the previous round (or, for round 0 of a layer,
    from the claim handed down from the layer above),
  - the phase-1-to-phase-2 boundary deduction (drelay, computed from the
    transcript's v_u and the circuit's own AddXSum, plus v_u times the
    circuit's RelayMLE) is applied before checking phase 2's first round,
  - the very last round of a layer's phase 2 matches
    [AddMLE(r_x,r_y) + v_u*MultMLE(r_x,r_y)]*v_v, after undoing the
    revealed mask contribution,
  - the mask seed revealed at the end of each layer actually hashes to the
    commitment absorbed at the start of that layer,
  - the final layer's v_u, v_v agree with graph.EvalMLE evaluated directly
    against the circuit's own input-layer constants, and
  - no record is left unconsumed in the transcript log (transcript.Done).
*/
package verifier
