// SPDX-License-Identifier: MIT

package speigh

import (
	"fmt"
	"time"

	"github.com/katalvlaran/speigh/matrix"
)

// Path is the algorithm variant, selected once per solve.
type Path int

const (
	// PathUnknown is the zero value; reported when a solve fails before selection.
	PathUnknown Path = iota

	// PathDiagonal: tau = 0 and B diagonal; closed-form update.
	PathDiagonal

	// PathGeneral: tau = 0 and B with off-diagonal entries; NNQP multiplier + pinv(SBS).
	PathGeneral

	// PathDC: tau ≠ 0; L1-penalized projection onto the B-ellipsoid.
	PathDC
)

var pathNames = [...]string{
	PathUnknown:  "unknown",
	PathDiagonal: "diagonal",
	PathGeneral:  "general",
	PathDC:       "dc",
}

// String implements fmt.Stringer.
func (p Path) String() string {
	if p < 0 || int(p) >= len(pathNames) {
		return pathNames[PathUnknown]
	}

	return pathNames[p]
}

// Stats describes how a solve went.
type Stats struct {
	Path       Path
	Iterations int     // MM updates performed
	Converged  bool    // step norm below tol at exit
	FinalNorm  float64 // last restricted step norm (+Inf if never measured)
	StartTime  time.Time
	Runtime    time.Duration
}

// Result is the sparse eigenpair and its diagnostics.
type Result struct {
	// Value is the generalized eigenvalue on the support (0 for an empty support).
	Value float64

	// Vector has length N and is zero outside Support. For |Support| ≥ 2 it is
	// B-normalized; for |Support| = 1 it is one-hot.
	Vector []float64

	// Support lists, ascending, the coordinates with |x_i| > tol after the loop.
	Support []int

	Stats Stats
}

// Err returns a wrapped ErrNonConvergence when the iteration cap was reached
// before the step norm fell below tol, and nil otherwise. Value and Vector
// are computed the same way in both cases.
func (r Result) Err() error {
	if r.Stats.Converged {
		return nil
	}

	return fmt.Errorf("speigh: %s path, %d iterations, step norm %g: %w",
		r.Stats.Path, r.Stats.Iterations, r.Stats.FinalNorm, ErrNonConvergence)
}

// GeneralizedEigensolver returns the top eigenpair (algebraically largest
// eigenvalue) of a v = λ b v for small symmetric a and positive definite b.
// seed is the current iterate restricted to the support; implementations may
// use it as a starting vector and for sign orientation.
type GeneralizedEigensolver interface {
	Top(a, b *matrix.Dense, seed []float64) (float64, []float64, error)
}

// DenseEigensolver is the default GeneralizedEigensolver: a gonum Cholesky
// reduction plus a symmetric eigensolve (matrix.TopGeneralized). The vector is B-normalized and
// oriented so that v·seed ≥ 0.
type DenseEigensolver struct{}

var _ GeneralizedEigensolver = DenseEigensolver{}

// Top implements GeneralizedEigensolver.
func (DenseEigensolver) Top(a, b *matrix.Dense, seed []float64) (float64, []float64, error) {
	return matrix.TopGeneralized(a, b, seed)
}
