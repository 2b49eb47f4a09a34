// SPDX-License-Identifier: MIT

package cvx

import (
	"fmt"
	"math"

	cvxopt "github.com/hrautila/cvx"
	fmat "github.com/hrautila/matrix"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/speigh/matrix"
)

// NonnegQuad minimizes (z+γ)ᵀ M (z+γ) over z ≥ 0.
//
// Implementation:
//   - Stage 1: validate shapes and finiteness; reject indefinite diagonals as Unbounded.
//   - Stage 2: drop the coordinates whose row of M is zero (the objective does
//     not depend on them; they stay 0).
//   - Stage 3: expand to ½zᵀPz + qᵀz with P = 2M, q = 2Mγ, G = −I, h = 0 and
//     hand it to cvxopt.Qp.
//   - Stage 4: clamp the interior point onto z ≥ 0 and check it with the
//     natural residual max_i |min(z_i, r_i)|, r = M(z+γ), scaled by 1+‖Mγ‖∞.
//
// Errors:
//   - ErrBadInput (SolverError) for malformed data.
//   - ErrNotOptimal for Unbounded, MaxIterations or a library failure.
//
// Complexity:
//   - O(n³) per interior-point iteration.
func (s *Solver) NonnegQuad(m *matrix.Dense, gamma []float64) (Result, error) {
	if err := validateNonnegQuad(m, gamma); err != nil {
		return Result{Status: SolverError}, cvxErrorf(opNonnegQuad, err)
	}
	n := len(gamma)
	M := m.RawData()

	// Indefinite structure makes the objective unbounded below along e_i.
	idx := make([]int, 0, n)
	var i, j int
	for i = 0; i < n; i++ {
		if M[i*n+i] < 0 {
			return Result{Status: Unbounded}, statusError(opNonnegQuad, Unbounded)
		}
		if M[i*n+i] > 0 {
			idx = append(idx, i)
			continue
		}
		for j = 0; j < n; j++ {
			if M[i*n+j] != 0 {
				return Result{Status: Unbounded}, statusError(opNonnegQuad, Unbounded)
			}
		}
	}

	mg, err := matrix.MatVec(m, gamma)
	if err != nil {
		return Result{Status: SolverError}, cvxErrorf(opNonnegQuad, err)
	}
	z := make([]float64, n)
	if len(idx) == 0 {
		return Result{X: z, Status: Optimal}, nil
	}

	k := len(idx)
	P := make([]float64, k*k)
	q := make([]float64, k)
	for a, ia := range idx {
		for b, ib := range idx {
			P[a*k+b] = 2 * M[ia*n+ib]
		}
		q[a] = 2 * mg[ia]
	}
	sol, qpErr := cvxopt.Qp(
		columnMajor(k, k, P),
		fmat.FloatVector(q),
		fmat.FloatDiagonal(k, -1.0),
		fmat.FloatZeros(k, 1),
		nil, nil,
		s.settings.solverOptions(), nil,
	)
	lam := primal(sol, k)
	if lam == nil {
		return Result{Status: SolverError}, fmt.Errorf("cvx.%s: %v: %w", opNonnegQuad, qpErr, ErrNotOptimal)
	}
	for a, ia := range idx {
		z[ia] = math.Max(0, lam[a])
	}

	shifted := make([]float64, n)
	floats.AddTo(shifted, z, gamma)
	r, err := matrix.MatVec(m, shifted)
	if err != nil {
		return Result{Status: SolverError}, cvxErrorf(opNonnegQuad, err)
	}
	residual := kktResidual(z, r) / (1 + floats.Norm(mg, math.Inf(1)))

	status := s.judge(sol, residual)
	res := Result{Status: status, Residual: residual}
	if !status.OK() {
		return res, statusError(opNonnegQuad, status)
	}
	res.X = z

	return res, nil
}

// kktResidual is the natural residual max_i |min(z_i, r_i)| of the
// complementarity conditions z ≥ 0, r ≥ 0, z∘r = 0 for the (half) gradient r.
func kktResidual(z, r []float64) float64 {
	var worst float64
	for i := range z {
		worst = math.Max(worst, math.Abs(math.Min(z[i], r[i])))
	}

	return worst
}

// validateNonnegQuad checks M square, symmetric and finite, and len(γ) == n.
func validateNonnegQuad(m *matrix.Dense, gamma []float64) error {
	if m == nil {
		return fmt.Errorf("nil M: %w", ErrBadInput)
	}
	if err := matrix.ValidateVecLen(gamma, m.Rows()); err != nil {
		return fmt.Errorf("gamma: %v: %w", err, ErrBadInput)
	}
	if err := matrix.ValidateFiniteVec(gamma); err != nil {
		return fmt.Errorf("gamma: %v: %w", err, ErrBadInput)
	}
	if err := matrix.ValidateFiniteVec(m.RawData()); err != nil {
		return fmt.Errorf("M: %v: %w", err, ErrBadInput)
	}
	scale := math.Max(1, floats.Norm(m.RawData(), math.Inf(1)))
	if err := matrix.ValidateSymmetric(m, matrix.DefaultEpsilon*scale); err != nil {
		return fmt.Errorf("M: %v: %w", err, ErrBadInput)
	}

	return nil
}
