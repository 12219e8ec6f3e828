// Package zkgraph ties the library's pieces into the three calls an outside
// caller actually needs: compile an expression graph into a layered
// circuit, prove it, and run a proof against the same circuit shape. It
// mirrors AlgoPlonk's CompiledCircuit/Compile/Verify split, adapted from a
// PLONK constraint system and proving/verifying key pair to a GKR layered
// circuit and Fiat-Shamir transcript.
package zkgraph

import (
	"fmt"

	"github.com/agencyenterprise/zkgraph/graph"
	"github.com/agencyenterprise/zkgraph/prover"
	"github.com/agencyenterprise/zkgraph/verifier"
	"github.com/rs/zerolog"
)

// CompiledCircuit is a graph.Builder's output flattened into the layered
// form both Prove and Run operate on. It carries no secret state: the same
// CompiledCircuit can Prove many times (each call re-evaluates the circuit
// fresh) and Run against proofs produced anywhere.
type CompiledCircuit struct {
	Circuit *graph.LayeredCircuit
}

// Compile flattens the expression graph rooted at output into a
// CompiledCircuit. b's accumulated graph state is consumed exactly as
// graph.Builder.CompileLayeredCircuit documents: CompileLayeredCircuit
// resets b's layering state before returning, so b can go on to build a
// fresh, unrelated circuit afterwards.
func Compile(b *graph.Builder, output *graph.Node) (*CompiledCircuit, error) {
	c, err := b.CompileLayeredCircuit(output)
	if err != nil {
		return nil, fmt.Errorf("zkgraph: compiling circuit: %w", err)
	}
	return &CompiledCircuit{Circuit: c}, nil
}

// Prove evaluates cc's circuit against the constants baked into it at
// Compile time and returns a self-contained, binary-encoded proof. log
// receives one structured event per layer and sum-check round; pass
// zerolog.Nop() for silent operation.
func (cc *CompiledCircuit) Prove(log zerolog.Logger) ([]byte, error) {
	proof, err := prover.Prove(cc.Circuit, log)
	if err != nil {
		return nil, fmt.Errorf("zkgraph: proving: %w", err)
	}
	return proof.MarshalBinary(), nil
}

// Run decodes proofBytes and checks it against cc's circuit shape. It
// returns (true, nil) only if every sum-check round and boundary check
// passes; any rejection — malformed bytes, a failed round, a disagreeing
// output — comes back as a non-nil error with ok false, never a panic.
func (cc *CompiledCircuit) Run(proofBytes []byte, log zerolog.Logger) (bool, error) {
	proof, err := prover.UnmarshalProof(proofBytes)
	if err != nil {
		return false, fmt.Errorf("zkgraph: decoding proof: %w", err)
	}
	if err := verifier.Verify(cc.Circuit, proof, log); err != nil {
		return false, err
	}
	return true, nil
}
