/*
Package prover implements zkgraph's zero-knowledge GKR prover: given a
compiled layered circuit with its input gates already filled in, it
evaluates the circuit, runs the GKR sum-check reduction from the output
layer down to the inputs, and returns a Proof whose transcript log
package verifier can replay through a transcript.VerifierTranscript.

Protocol shape
====================================================================================================
For each layer i from the output down to layer 1, the prover reduces a
claim about V_i (the layer's wire-value function) at one or two points
into a claim about V_{i-1} at two fresh points, via a two-phase sum-check:
phase 1 binds the "u" half of the wire below (the add/mult gates' first
input), phase 2 binds the "v" half (the second input), after which the
claim for the next layer down is alpha*V_{i-1}(r_u) + beta*V_{i-1}(r_v)
for freshly drawn batching scalars alpha, beta.

Every phase-1/phase-2 round message is a Quadratic (see package poly):
phase 1's round polynomial is P(x)*V(x)+Q(x) where P and Q are
bookkeeping tables built once per layer in O(gates) time (package graph's
BuildPhase1Tables), and phase 2's is G(y)*V(y) after x has been bound to
a concrete r_u and the add and relay gates' V(r_u) contributions are
deducted as verifier-computable scalars (graph.AddXSum, graph.RelayMLE)
before phase 2 begins.

Zero-knowledge masking
====================================================================================================
Each layer's two-phase sum-check is blinded by a fresh random multilinear
table the size of the layer's combined (x,y) domain. The prover commits to
it with a SHA3-256 hash of a random seed before drawing the rho
batching challenge that mixes the mask into every round's message, and
reveals the seed once the layer's rounds are done so the verifier can
regenerate the same table and check the final round against it. This is a
direct, simplified instance of the "blind the sum-check with an
independent random low-degree polynomial, reveal only what's needed to
check consistency" technique; see DESIGN.md for why this repo didn't
wire the optional MKZG commitment to the mask polynomial described for
the richer variant.

Input-layer consistency
====================================================================================================
The last layer-1 sum-check ends with a claim about V_0 (the input layer)
at two challenge points r_u, r_v, already carried in the proof as the
revealed v_u, v_v scalars from that layer's rounds. Layer 0 holds the
circuit's input constants, which both prover and verifier read from the
same compiled circuit, so no further transcript exchange is needed: the
prover checks its own v_u, v_v against graph.EvalMLE(inputs, r) before
returning (ErrProverLogic if they disagree), and the verifier performs
the identical fold independently and compares against the v_u, v_v it
already read off the transcript.
*/
package prover
