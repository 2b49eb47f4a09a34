// SPDX-License-Identifier: MIT

package cvx

import (
	"errors"
	"fmt"
)

var (
	// ErrNotOptimal is returned whenever a solve ends in a status other than
	// Optimal or OptimalInaccurate.
	ErrNotOptimal = errors.New("cvx: solver did not reach an optimal status")

	// ErrBadInput flags malformed problem data (shape mismatch, NaN/Inf,
	// negative weights or penalty). It is always paired with SolverError.
	ErrBadInput = errors.New("cvx: invalid problem data")

	// ErrBadSettings flags nonsensical Settings passed to NewSolver.
	ErrBadSettings = errors.New("cvx: invalid settings")
)

// Operation tags for error wrapping.
const (
	opNonnegQuad = "NonnegQuad"
	opL1Ball     = "L1Ball"
	opNewSolver  = "NewSolver"
)

// cvxErrorf wraps err with an operation tag, preserving it for errors.Is.
func cvxErrorf(tag string, err error) error {
	return fmt.Errorf("cvx.%s: %w", tag, err)
}

// statusError wraps ErrNotOptimal with the offending status.
func statusError(tag string, s Status) error {
	return fmt.Errorf("cvx.%s: status %s: %w", tag, s, ErrNotOptimal)
}
