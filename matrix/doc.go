// SPDX-License-Identifier: MIT

// Package matrix is the dense linear-algebra substrate of speigh.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with safe accessors (At/Set never panic).
//   - Central validators (nil, square, symmetric, vector length) returning sentinels.
//   - Kernels used by the sparse eigensolver: MatVec, Add, Sub, Scale,
//     Outer, QuadForm and Symmetrize.
//   - Spectral routines for small problems: the Jacobi Eigen, plus the
//     symmetric pseudo-inverse PinvSym and TopGeneralized (the algebraically
//     largest pair of the symmetric-definite pencil (A, B)), both built on
//     gonum/mat.
//
// All routines are deterministic (fixed loop orders, no map iteration) and
// return errors that wrap the package sentinels, so callers match them with
// errors.Is.
//
// Matrices here are meant to be small to moderate (the variational
// renormalization step only ever sees the discovered support); every spectral
// routine is O(n³).
package matrix
