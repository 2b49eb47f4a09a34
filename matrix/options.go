// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults (single source of truth).
package matrix

const (
	// DefaultEpsilon is the absolute tolerance used by structural checks
	// (symmetry, diagonality) when the caller has no better scale.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true

	// DefaultEigenTol is the off-diagonal threshold, relative to the Frobenius
	// norm of the input, at which the Jacobi sweeps stop.
	DefaultEigenTol = 1e-13

	// DefaultPinvRcond is the relative cutoff below which eigenvalues are
	// treated as zero by PinvSym.
	DefaultPinvRcond = 1e-10
)

// DefaultEigenMaxIter returns the Jacobi rotation cap for an n×n input.
// Classical Jacobi needs O(n²) rotations per sweep and a handful of sweeps.
func DefaultEigenMaxIter(n int) int { return 64*n*n + 100 }
