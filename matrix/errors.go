// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All algorithms MUST return these sentinels (optionally wrapped with an
// operation tag) and tests MUST check them via errors.Is. No routine panics on
// user-triggered error conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs.
var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Add of different shapes, a vector of the wrong length, or a non-square
	// input where a square one is required.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the given tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (or nil vector) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrMatrixEigenFailed indicates that an eigen decomposition (Jacobi or
	// gonum EigenSym) failed to converge.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrNotPositiveDefinite is returned by TopGeneralized when the Cholesky
	// factorization of B fails.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")
)
