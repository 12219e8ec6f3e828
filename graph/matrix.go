package graph

// Matrix is a row-major dense matrix of graph nodes, the shape most of
// zkgraph's supplemented linear-algebra layers (matmul, elementwise add)
// consume and produce.
type Matrix [][]*Node

// Rows and Cols report the matrix's dimensions. Cols panics on an empty
// matrix; callers that build matrices incrementally should check len(m)
// first.
func (m Matrix) Rows() int { return len(m) }
func (m Matrix) Cols() int { return len(m[0]) }

// MatMul returns the product of a (r x k) and b (k x c), built entirely
// from Add and Mul gates: each output entry is a left-to-right sum of k
// products.
func (b *Builder) MatMul(a, bm Matrix) Matrix {
	r, k, c := a.Rows(), a.Cols(), bm.Cols()
	out := make(Matrix, r)
	for i := 0; i < r; i++ {
		out[i] = make([]*Node, c)
		for j := 0; j < c; j++ {
			acc := b.Mul(a[i][0], bm[0][j])
			for t := 1; t < k; t++ {
				acc = b.Add(acc, b.Mul(a[i][t], bm[t][j]))
			}
			out[i][j] = acc
		}
	}
	return out
}

// ElementwiseAdd returns a matrix with out[i][j] = a[i][j] + b[i][j]. a and
// b must have identical dimensions.
func (bd *Builder) ElementwiseAdd(a, b Matrix) Matrix {
	out := make(Matrix, a.Rows())
	for i := range a {
		out[i] = make([]*Node, len(a[i]))
		for j := range a[i] {
			out[i][j] = bd.Add(a[i][j], b[i][j])
		}
	}
	return out
}

// ElementwiseApply maps f over every entry of a.
func (bd *Builder) ElementwiseApply(a Matrix, f func(*Builder, *Node) *Node) Matrix {
	out := make(Matrix, a.Rows())
	for i := range a {
		out[i] = make([]*Node, len(a[i]))
		for j := range a[i] {
			out[i][j] = f(bd, a[i][j])
		}
	}
	return out
}
