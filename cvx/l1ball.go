// SPDX-License-Identifier: MIT

package cvx

import (
	"fmt"
	"math"

	cvxopt "github.com/hrautila/cvx"
	"github.com/hrautila/cvx/sets"
	fmat "github.com/hrautila/matrix"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/speigh/matrix"
)

// L1Ball minimizes ‖z−y‖₂² + c‖diag(w) z‖₁ subject to zᵀ B z ≤ 1.
//
// Implementation (cone QP in v = [z; t], t bounding |z|):
//
//	minimize    zᵀz − 2yᵀz + c·wᵀt
//	subject to  z − t ≤ 0,  −z − t ≤ 0,  t ≤ T      (linear, 3n rows)
//	            (1, F z) ∈ Q^{r+1}                   (second-order cone, FᵀF = B)
//
// with T = 2‖y‖₂ + 1. Any minimizer has ‖z−y‖ ≤ ‖y‖ (z = 0 is feasible), so
// the bound on t never binds; it only keeps the feasible set compact when
// some c·w_i is zero. F comes from the cached eigen-decomposition of B.
//
// Behavior highlights:
//   - The returned X is rescaled onto the ellipsoid when the interior point
//     lies just outside it.
//   - Entries the penalty drives to zero come back tiny but not exactly zero;
//     callers threshold.
//
// Errors:
//   - ErrBadInput (SolverError) for shape mismatch, non-finite data,
//     negative c or w, or B not symmetric positive semidefinite.
//   - ErrNotOptimal for MaxIterations or a library failure.
func (s *Solver) L1Ball(y, w []float64, b *matrix.Dense, c float64) (Result, error) {
	bs, err := validateL1Ball(y, w, b, c)
	if err != nil {
		return Result{Status: SolverError}, cvxErrorf(opL1Ball, err)
	}
	cf, err := s.factorFor(bs)
	if err != nil {
		return Result{Status: SolverError}, cvxErrorf(opL1Ball, err)
	}

	n := len(y)
	nv := 2 * n
	bound := 2*floats.Norm(y, 2) + 1

	P := make([]float64, nv*nv)
	q := make([]float64, nv)
	var i, k int
	for i = 0; i < n; i++ {
		P[i*nv+i] = 2
		q[i] = -2 * y[i]
		q[n+i] = c * w[i]
	}

	rowsG := 3*n + 1 + cf.rows
	G := make([]float64, rowsG*nv)
	h := make([]float64, rowsG)
	for i = 0; i < n; i++ {
		// z − t ≤ 0, −z − t ≤ 0, t ≤ T
		G[i*nv+i], G[i*nv+n+i] = 1, -1
		G[(n+i)*nv+i], G[(n+i)*nv+n+i] = -1, -1
		G[(2*n+i)*nv+n+i], h[2*n+i] = 1, bound
	}
	h[3*n] = 1 // cone head
	for k = 0; k < cf.rows; k++ {
		row := 3*n + 1 + k
		for i = 0; i < n; i++ {
			G[row*nv+i] = -cf.f[k*n+i]
		}
	}

	dims := sets.DSetNew("l", "q", "s")
	dims.Set("l", []int{3 * n})
	dims.Set("q", []int{cf.rows + 1})

	sol, qpErr := cvxopt.ConeQp(
		columnMajor(nv, nv, P),
		fmat.FloatVector(q),
		columnMajor(rowsG, nv, G),
		fmat.FloatVector(h),
		nil, nil,
		dims,
		s.settings.solverOptions(), nil,
	)
	z := primal(sol, n)
	if z == nil {
		return Result{Status: SolverError}, fmt.Errorf("cvx.%s: %v: %w", opL1Ball, qpErr, ErrNotOptimal)
	}

	quad, err := matrix.QuadForm(bs, z)
	if err != nil {
		return Result{Status: SolverError}, cvxErrorf(opL1Ball, err)
	}
	residual := math.Max(0, quad-1)

	status := s.judge(sol, residual)
	res := Result{Status: status, Residual: residual}
	if !status.OK() {
		return res, statusError(opL1Ball, status)
	}
	if quad > 1 {
		floats.Scale(1/math.Sqrt(quad), z)
	}
	res.X = z

	return res, nil
}

// validateL1Ball checks shapes, finiteness and signs, and returns an exactly
// symmetric copy of b.
func validateL1Ball(y, w []float64, b *matrix.Dense, c float64) (*matrix.Dense, error) {
	if b == nil {
		return nil, fmt.Errorf("nil B: %w", ErrBadInput)
	}
	n := b.Rows()
	if err := matrix.ValidateSquare(b); err != nil {
		return nil, fmt.Errorf("B: %v: %w", err, ErrBadInput)
	}
	if err := matrix.ValidateVecLen(y, n); err != nil {
		return nil, fmt.Errorf("y: %v: %w", err, ErrBadInput)
	}
	if err := matrix.ValidateVecLen(w, n); err != nil {
		return nil, fmt.Errorf("w: %v: %w", err, ErrBadInput)
	}
	for _, vec := range [][]float64{y, w, b.RawData()} {
		if err := matrix.ValidateFiniteVec(vec); err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrBadInput)
		}
	}
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
		return nil, fmt.Errorf("c = %g: %w", c, ErrBadInput)
	}
	for i, wi := range w {
		if wi < 0 {
			return nil, fmt.Errorf("w[%d] = %g: %w", i, wi, ErrBadInput)
		}
	}
	scale := math.Max(1, floats.Norm(b.RawData(), math.Inf(1)))
	if err := matrix.ValidateSymmetric(b, matrix.DefaultEpsilon*scale); err != nil {
		return nil, fmt.Errorf("B: %v: %w", err, ErrBadInput)
	}
	bs, err := matrix.Symmetrize(b)
	if err != nil {
		return nil, fmt.Errorf("B: %v: %w", err, ErrBadInput)
	}

	return bs, nil
}
