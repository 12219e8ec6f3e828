package setup

import (
	"path/filepath"
	"testing"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/agencyenterprise/zkgraph/mkzg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestGenerateTestOnlyIsReproducible(t *testing.T) {
	a, err := Generate(TestOnly, mkzg.General, 2, 1, zerolog.Nop())
	require.NoError(t, err)
	b, err := Generate(TestOnly, mkzg.General, 2, 1, zerolog.Nop())
	require.NoError(t, err)

	for _, e := range a.Exponents() {
		ag1, ok := a.G1At(e)
		require.True(t, ok)
		bg1, ok := b.G1At(e)
		require.True(t, ok)
		require.True(t, ag1.Equal(&bg1))
	}
}

func TestGenerateTrustedVariesAcrossRuns(t *testing.T) {
	a, err := Generate(Trusted, mkzg.General, 2, 1, zerolog.Nop())
	require.NoError(t, err)
	b, err := Generate(Trusted, mkzg.General, 2, 1, zerolog.Nop())
	require.NoError(t, err)

	diff := false
	for _, e := range a.Exponents() {
		ag1, _ := a.G1At(e)
		bg1, _ := b.G1At(e)
		if !ag1.Equal(&bg1) {
			diff = true
			break
		}
	}
	require.True(t, diff, "two Trusted runs produced identical tables")
}

func TestGenerateRejectsOversizedTable(t *testing.T) {
	_, err := Generate(TestOnly, mkzg.General, 20, 2, zerolog.Nop())
	require.ErrorIs(t, err, mkzg.ErrUnsupportedSize)
}

func TestGeneratedTableCommitsOpensAndVerifies(t *testing.T) {
	pp, err := Generate(TestOnly, mkzg.UnivariatePerVar, 3, 2, zerolog.Nop())
	require.NoError(t, err)

	p := mkzg.NewPoly(
		[]mkzg.Exp{{0, 0, 0}, {1, 0, 0}, {0, 2, 0}},
		[]field.Element{field.FromUint64(1), field.FromUint64(2), field.FromUint64(3)},
	)
	commitment, err := mkzg.Commit(pp, p)
	require.NoError(t, err)

	r := []field.Element{field.FromUint64(5), field.FromUint64(2), field.FromUint64(9)}
	op, err := mkzg.Open(pp, p, r)
	require.NoError(t, err)

	ok, err := mkzg.Verify(pp, commitment, r, op.Value, op)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPersistAndLoadRoundTrip(t *testing.T) {
	pp, err := Generate(TestOnly, mkzg.ZKSumcheck, 2, 1, zerolog.Nop())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "params.gob")
	require.NoError(t, Persist(pp, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, pp.Family, loaded.Family)
	require.Equal(t, pp.NumVars, loaded.NumVars)
	require.Equal(t, pp.Degree, loaded.Degree)

	for _, e := range pp.Exponents() {
		wantG1, ok := pp.G1At(e)
		require.True(t, ok)
		gotG1, ok := loaded.G1At(e)
		require.True(t, ok)
		require.True(t, wantG1.Equal(&gotG1))

		wantG2, ok := pp.G2At(e)
		require.True(t, ok)
		gotG2, ok := loaded.G2At(e)
		require.True(t, ok)
		require.True(t, wantG2.Equal(&gotG2))
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.gob"))
	require.ErrorIs(t, err, ErrSetupFailure)
}
