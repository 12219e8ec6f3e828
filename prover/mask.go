package prover

import "github.com/agencyenterprise/zkgraph/field"

// foldRowsOneBit halves a table of rows by binding one bit of the row
// index, entrywise across each row, so the phase-1 blinding table (indexed
// by x) can be turned into phase 2's blinding table (the slice of the
// combined (x,y) mask at x=r_u) by folding along x with the exact
// challenges phase 1 drew, in the same low-bit-first order FoldOneBit
// uses for a flat table.
func foldRowsOneBit(rows [][]field.Element, x field.Element) [][]field.Element {
	half := len(rows) / 2
	next := make([][]field.Element, half)
	for i := 0; i < half; i++ {
		row := make([]field.Element, len(rows[0]))
		for j := range row {
			row[j] = rows[2*i][j].Add(x.Mul(rows[2*i+1][j].Sub(rows[2*i][j])))
		}
		next[i] = row
	}
	return next
}
