// Command zkgraph-harness compiles one of a small set of built-in circuits,
// proves it, and runs the proof back through the verifier, printing the
// outcome. It exists as a manual smoke test for the quantize -> graph ->
// prove -> bytes -> verify pipeline outside of `go test`.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/agencyenterprise/zkgraph"
	"github.com/agencyenterprise/zkgraph/field"
	"github.com/agencyenterprise/zkgraph/graph"
	"github.com/agencyenterprise/zkgraph/mkzg"
	"github.com/agencyenterprise/zkgraph/setup"
	"github.com/rs/zerolog"
)

func main() {
	circuitName := flag.String("circuit", "addscale", "circuit to run: addscale or matvec")
	precision := flag.Int("precision", field.PrecisionBits, "fractional bits expected of the fixed-point encoding; must match field.PrecisionBits")
	setupPath := flag.String("setup", "", "path to a persisted KZG trusted-setup table; generated there if missing")
	logLevel := flag.String("log", "info", "log level: debug, info, warn, error")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zkgraph-harness: bad -log value: %v\n", err)
		os.Exit(2)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if *precision != field.PrecisionBits {
		log.Fatal().Int("requested", *precision).Int("actual", field.PrecisionBits).
			Msg("this build's fixed-point encoding has a compiled-in precision")
	}

	if *setupPath != "" {
		if err := ensureSetup(*setupPath, log); err != nil {
			log.Fatal().Err(err).Msg("trusted-setup ceremony failed")
		}
	}

	b := graph.NewBuilder()
	var output *graph.Node
	switch *circuitName {
	case "addscale":
		output = buildAddScale(b)
	case "matvec":
		output = buildMatVec(b)
	default:
		fmt.Fprintf(os.Stderr, "zkgraph-harness: unknown -circuit %q (want addscale or matvec)\n", *circuitName)
		os.Exit(2)
	}

	cc, err := zkgraph.Compile(b, output)
	if err != nil {
		log.Fatal().Err(err).Msg("compiling circuit")
	}

	proofBytes, err := cc.Prove(log)
	if err != nil {
		log.Fatal().Err(err).Msg("proving")
	}
	log.Info().Int("bytes", len(proofBytes)).Msg("proof produced")

	ok, err := cc.Run(proofBytes, log)
	if err != nil {
		log.Error().Err(err).Msg("proof rejected")
		os.Exit(1)
	}
	if !ok {
		log.Error().Msg("proof rejected with no error, which should never happen")
		os.Exit(1)
	}
	log.Info().Msg("proof accepted")
}

// buildAddScale builds A=1, B=2, C=A+B, C=C*1, C=C*2, the smallest circuit
// exercising both an Add layer and two chained Mul layers.
func buildAddScale(b *graph.Builder) *graph.Node {
	a := b.Const(field.Quantize(1))
	bb := b.Const(field.Quantize(2))
	c := b.Add(a, bb)
	one := b.Const(field.Quantize(1))
	c = b.Mul(c, one)
	two := b.Const(field.Quantize(2))
	return b.Mul(c, two)
}

// buildMatVec builds A=[[1,2],[2,1]] times B=[3,4], folded to a scalar sum
// of the two product entries so it compiles from a single output node.
func buildMatVec(b *graph.Builder) *graph.Node {
	lit := func(x float64) *graph.Node { return b.Const(field.Quantize(x)) }
	a := graph.Matrix{
		{lit(1), lit(2)},
		{lit(2), lit(1)},
	}
	v := graph.Matrix{
		{lit(3)},
		{lit(4)},
	}
	prod := b.MatMul(a, v)
	return b.Add(prod[0][0], prod[1][0])
}

// ensureSetup loads a persisted trusted-setup table from path, generating
// and persisting a fresh TestOnly one if none exists yet. It demonstrates
// the ceremony machinery standalone, independent of whichever circuit is
// being proved: a real deployment would size the table to the circuit
// actually in use.
func ensureSetup(path string, log zerolog.Logger) error {
	if _, err := os.Stat(path); err == nil {
		pp, err := setup.Load(path)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Int("entries", len(pp.Exponents())).Msg("loaded trusted setup")
		return nil
	}
	pp, err := setup.Generate(setup.TestOnly, mkzg.General, 4, 1, log)
	if err != nil {
		return err
	}
	if err := setup.Persist(pp, path); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("generated and persisted trusted setup")
	return nil
}
