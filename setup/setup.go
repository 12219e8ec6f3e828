package setup

import (
	"bytes"
	"crypto/rand"
	"encoding/gob"
	"fmt"
	"math/big"
	"os"
	"runtime"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/agencyenterprise/zkgraph/mkzg"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrSetupFailure wraps any error produced while generating or persisting a
// PublicParams table.
var ErrSetupFailure = fmt.Errorf("setup: ceremony failed")

// Conf selects how the toxic-waste secret behind a ceremony is sampled.
type Conf int

const (
	// Trusted samples the secret from crypto/rand and keeps it only for
	// the lifetime of Generate's call stack.
	Trusted Conf = iota
	// TestOnly samples the secret from a fixed, well-known seed, so
	// repeated test runs regenerate byte-identical tables.
	TestOnly
)

// chunkSize bounds how much work one goroutine does before yielding a
// result, so the worker pool has more units than workers even for a table
// near the 2^14 cap.
const chunkSize = 256

// Generate runs a one-process toy ceremony for a (family, n, d) table: it
// samples a secret exponent vector according to conf, then computes every
// table entry in parallel across a worker pool sized to GOMAXPROCS.
//
// For ZKSumcheck, n is the number of logical variables; the sampled secret
// has 2n components (t_i followed by t_i^2 for each i). log receives one
// structured event per chunk of the table computed; pass zerolog.Nop() for
// silent operation.
func Generate(conf Conf, family mkzg.Family, n, d int, log zerolog.Logger) (*mkzg.PublicParams, error) {
	secretLen := n
	if family == mkzg.ZKSumcheck {
		secretLen = 2 * n
	}
	t, err := sampleSecret(conf, family, n, secretLen)
	if err != nil {
		return nil, fmt.Errorf("%w: sampling secret: %v", ErrSetupFailure, err)
	}
	if family == mkzg.ZKSumcheck {
		for i := 0; i < n; i++ {
			t[2*i+1] = t[2*i].Mul(t[2*i])
		}
	}

	exps, err := mkzg.TableExponents(family, n, d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetupFailure, err)
	}
	log.Info().Int("entries", len(exps)).Int("chunk_size", chunkSize).Msg("ceremony starting")

	g1Gen, g2Gen := mkzg.Generators()
	g1s := make([]bls12381.G1Affine, len(exps))
	g2s := make([]bls12381.G2Affine, len(exps))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < len(exps); start += chunkSize {
		start := start
		end := start + chunkSize
		if end > len(exps) {
			end = len(exps)
		}
		eg.Go(func() error {
			for i := start; i < end; i++ {
				g1s[i], g2s[i] = mkzg.ComputeEntry(g1Gen, g2Gen, exps[i], t)
			}
			log.Debug().Int("start", start).Int("end", end).Msg("chunk computed")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSetupFailure, err)
	}

	log.Info().Msg("ceremony complete")
	return mkzg.FromTable(family, n, d, g1Gen, g2Gen, exps, g1s, g2s), nil
}

// testOnlySeed is the fixed, public, well-known seed used by Conf.TestOnly.
// It must never be used for a table whose opening soundness matters.
const testOnlySeed = 0x5a4b7374

func sampleSecret(conf Conf, family mkzg.Family, n, secretLen int) ([]field.Element, error) {
	switch conf {
	case Trusted:
		t := make([]field.Element, secretLen)
		for i := range t {
			v, err := rand.Int(rand.Reader, field.Modulus())
			if err != nil {
				return nil, err
			}
			t[i] = field.FromBigInt(v)
		}
		return t, nil
	case TestOnly:
		t := make([]field.Element, secretLen)
		state := big.NewInt(testOnlySeed)
		step := big.NewInt(0x9e3779b9)
		for i := range t {
			state = new(big.Int).Mod(new(big.Int).Add(state, step), field.Modulus())
			t[i] = field.FromBigInt(state)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("setup: unknown Conf %d", conf)
	}
}

// persistedParams is the gob envelope Persist/Load move across the wire:
// every curve point reduced to its fixed-size compressed encoding, so the
// file format doesn't depend on gnark-crypto's in-memory representation.
type persistedParams struct {
	Family  mkzg.Family
	NumVars int
	Degree  int
	G1Gen   []byte
	G2Gen   []byte
	Exps    [][]int
	G1s     [][]byte
	G2s     [][]byte
}

// Persist writes pp to path as a gob-encoded envelope of compressed curve
// points, mirroring AlgoPlonk's gob-over-WriteTo serialization of a
// compiled circuit.
func Persist(pp *mkzg.PublicParams, path string) error {
	exps := pp.Exponents()
	g1Gen := pp.G1Gen
	g2Gen := pp.G2Gen

	g1GenBytes := g1Gen.Bytes()
	g2GenBytes := g2Gen.Bytes()
	p := persistedParams{
		Family:  pp.Family,
		NumVars: pp.NumVars,
		Degree:  pp.Degree,
		G1Gen:   g1GenBytes[:],
		G2Gen:   g2GenBytes[:],
		Exps:    make([][]int, len(exps)),
		G1s:     make([][]byte, len(exps)),
		G2s:     make([][]byte, len(exps)),
	}
	for i, e := range exps {
		p.Exps[i] = []int(e)
		g1, ok := pp.G1At(e)
		if !ok {
			return fmt.Errorf("%w: missing G1 entry for exponent %v", ErrSetupFailure, e)
		}
		g2, ok := pp.G2At(e)
		if !ok {
			return fmt.Errorf("%w: missing G2 entry for exponent %v", ErrSetupFailure, e)
		}
		b1 := g1.Bytes()
		b2 := g2.Bytes()
		p.G1s[i] = b1[:]
		p.G2s[i] = b2[:]
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("%w: encoding: %v", ErrSetupFailure, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrSetupFailure, path, err)
	}
	return nil
}

// Load reads a PublicParams table previously written by Persist.
func Load(path string) (*mkzg.PublicParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrSetupFailure, path, err)
	}

	var p persistedParams
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrSetupFailure, path, err)
	}

	var g1Gen bls12381.G1Affine
	if _, err := g1Gen.SetBytes(p.G1Gen); err != nil {
		return nil, fmt.Errorf("%w: decoding G1 generator: %v", ErrSetupFailure, err)
	}
	var g2Gen bls12381.G2Affine
	if _, err := g2Gen.SetBytes(p.G2Gen); err != nil {
		return nil, fmt.Errorf("%w: decoding G2 generator: %v", ErrSetupFailure, err)
	}

	exps := make([]mkzg.Exp, len(p.Exps))
	g1s := make([]bls12381.G1Affine, len(p.Exps))
	g2s := make([]bls12381.G2Affine, len(p.Exps))
	for i := range p.Exps {
		exps[i] = mkzg.Exp(p.Exps[i])
		if _, err := g1s[i].SetBytes(p.G1s[i]); err != nil {
			return nil, fmt.Errorf("%w: decoding G1 entry %d: %v", ErrSetupFailure, i, err)
		}
		if _, err := g2s[i].SetBytes(p.G2s[i]); err != nil {
			return nil, fmt.Errorf("%w: decoding G2 entry %d: %v", ErrSetupFailure, i, err)
		}
	}

	return mkzg.FromTable(p.Family, p.NumVars, p.Degree, g1Gen, g2Gen, exps, g1s, g2s), nil
}
