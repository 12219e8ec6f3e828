package mkzg

import "errors"

// ErrUnsupportedSize is returned by Setup when the requested table would
// exceed the dense-family cap of (d+1)^n <= 2^14 entries.
var ErrUnsupportedSize = errors.New("mkzg: unsupported size")

// ErrMissingMonomial is returned by Commit when a polynomial has a nonzero
// coefficient on a monomial outside the public parameters' table.
var ErrMissingMonomial = errors.New("mkzg: missing monomial")

// ErrInvalidDecomposition is returned by Open when the iterated polynomial
// division used to build the opening leaves a nonzero remainder.
var ErrInvalidDecomposition = errors.New("mkzg: invalid decomposition")
