// SPDX-License-Identifier: MIT

package speigh

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration flags inputs rejected before the first iteration:
	// shape mismatches, asymmetric A or B, non-finite data, out-of-range scalars.
	ErrConfiguration = errors.New("speigh: invalid configuration")

	// ErrOptimization flags a sub-problem (or the final eigenproblem) that did
	// not reach an optimal status. The solve is aborted; no partial result.
	ErrOptimization = errors.New("speigh: sub-problem did not solve to optimality")

	// ErrNonConvergence is never returned by Speigh. Result.Err reports it when
	// the iteration cap was reached before the step norm fell below tol.
	ErrNonConvergence = errors.New("speigh: iteration cap reached before convergence")
)

// Operation tags for error wrapping.
const (
	opSpeigh     = "Speigh"
	opDeflate    = "SCDeflate"
	opNonnegQuad = "nonnegQuad"
	opProjector  = "NewL1Projector"
	opSolve      = "L1Projector.Solve"
	opSolveSp    = "L1Projector.SolveSparse"
	opRefine     = "refine"
	opSolveK     = "SolveK"
)

// configErrorf tags err and marks it as ErrConfiguration.
func configErrorf(tag string, err error) error {
	return fmt.Errorf("speigh.%s: %w: %w", tag, ErrConfiguration, err)
}

// optimizationErrorf tags err and marks it as ErrOptimization; the backend
// cause (e.g. cvx.ErrNotOptimal) stays reachable through errors.Is.
func optimizationErrorf(tag string, err error) error {
	return fmt.Errorf("speigh.%s: %w: %w", tag, ErrOptimization, err)
}
