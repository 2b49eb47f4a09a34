// SPDX-License-Identifier: MIT

package speigh

import (
	"fmt"
	"math"

	"github.com/katalvlaran/speigh/cvx"
	"github.com/katalvlaran/speigh/matrix"
)

// nonnegQuad returns argmin_{z ≥ 0} (z+γ)ᵀ M (z+γ) from the backend.
// Any status other than Optimal / OptimalInaccurate is ErrOptimization.
func nonnegQuad(backend cvx.Backend, m *matrix.Dense, gamma []float64) ([]float64, error) {
	res, err := backend.NonnegQuad(m, gamma)
	if err != nil {
		return nil, optimizationErrorf(opNonnegQuad, err)
	}
	if !res.Status.OK() {
		return nil, optimizationErrorf(opNonnegQuad, fmt.Errorf("status %s: %w", res.Status, cvx.ErrNotOptimal))
	}

	return res.X, nil
}

// L1Projector solves
//
//	minimize ‖z−y‖₂² + c‖diag(w) z‖₁  subject to  zᵀ B z ≤ 1
//
// for a fixed (B, c, sparse). The configuration is immutable, so one value can
// be reused across the iterations of a solve. It keeps no state between calls
// but is not meant for concurrent use by several solves.
type L1Projector struct {
	b       *matrix.Dense
	c       float64
	sparse  bool
	backend cvx.Backend
}

// NewL1Projector binds B, the penalty strength c and the restricted-support
// mode. A nil backend selects a cvx.Solver with default settings.
//
// Errors:
//   - ErrConfiguration for nil or non-square B, or c negative / non-finite.
func NewL1Projector(B matrix.Matrix, c float64, sparse bool, backend cvx.Backend) (*L1Projector, error) {
	b, err := matrix.AsDense(B)
	if err != nil {
		return nil, configErrorf(opProjector, err)
	}
	if err = matrix.ValidateSquare(b); err != nil {
		return nil, configErrorf(opProjector, err)
	}
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
		return nil, configErrorf(opProjector, fmt.Errorf("c = %g must be finite and non-negative", c))
	}
	if backend == nil {
		if backend, err = cvx.NewSolver(cvx.DefaultSettings()); err != nil {
			return nil, configErrorf(opProjector, err)
		}
	}

	return &L1Projector{b: b, c: c, sparse: sparse, backend: backend}, nil
}

// Sparse reports whether Project uses the restricted-support mode.
func (p *L1Projector) Sparse() bool { return p.sparse }

// Solve returns the full-length minimizer.
//
// Errors:
//   - ErrConfiguration when len(y) or len(w) differs from N.
//   - ErrOptimization (wrapping the backend error) on a non-optimal status.
func (p *L1Projector) Solve(y, w []float64) ([]float64, error) {
	n := p.b.Rows()
	for _, v := range [][]float64{y, w} {
		if err := matrix.ValidateVecLen(v, n); err != nil {
			return nil, configErrorf(opSolve, err)
		}
	}
	res, err := p.backend.L1Ball(y, w, p.b, p.c)
	if err != nil {
		return nil, optimizationErrorf(opSolve, err)
	}
	if !res.Status.OK() {
		return nil, optimizationErrorf(opSolve, fmt.Errorf("status %s: %w", res.Status, cvx.ErrNotOptimal))
	}

	return res.X, nil
}

// SolveSparse solves the same problem restricted to the coordinates in mask
// (decision variable and B reduced to mask×mask) and embeds the result into a
// length-N vector that is zero outside mask. An empty mask yields the zero
// vector without calling the backend.
//
// This is an approximation: it assumes the coordinates outside mask are zero
// at the optimum of the full problem, which does not hold in general.
//
// Errors:
//   - ErrConfiguration when len(mask), len(y) or len(w) differs from N.
//   - ErrOptimization on a non-optimal backend status.
func (p *L1Projector) SolveSparse(y, w []float64, mask []bool) ([]float64, error) {
	n := p.b.Rows()
	for _, v := range [][]float64{y, w} {
		if err := matrix.ValidateVecLen(v, n); err != nil {
			return nil, configErrorf(opSolveSp, err)
		}
	}
	if len(mask) != n {
		return nil, configErrorf(opSolveSp, fmt.Errorf("len(mask)=%d, want %d: %w", len(mask), n, matrix.ErrDimensionMismatch))
	}

	idx := maskIndices(mask)
	out := make([]float64, n)
	if len(idx) == 0 {
		return out, nil
	}
	bk, err := p.b.Principal(idx)
	if err != nil {
		return nil, configErrorf(opSolveSp, err)
	}
	res, err := p.backend.L1Ball(gather(y, idx), gather(w, idx), bk, p.c)
	if err != nil {
		return nil, optimizationErrorf(opSolveSp, err)
	}
	if !res.Status.OK() {
		return nil, optimizationErrorf(opSolveSp, fmt.Errorf("status %s: %w", res.Status, cvx.ErrNotOptimal))
	}
	for k, i := range idx {
		out[i] = res.X[k]
	}

	return out, nil
}

// Project dispatches to SolveSparse in restricted-support mode when a mask is
// given, and to Solve otherwise.
func (p *L1Projector) Project(y, w []float64, mask []bool) ([]float64, error) {
	if p.sparse && mask != nil {
		return p.SolveSparse(y, w, mask)
	}

	return p.Solve(y, w)
}

// maskIndices lists the true positions of mask in ascending order.
func maskIndices(mask []bool) []int {
	idx := make([]int, 0, len(mask))
	for i, on := range mask {
		if on {
			idx = append(idx, i)
		}
	}

	return idx
}

// gather returns v[idx] as a fresh slice.
func gather(v []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for k, i := range idx {
		out[k] = v[i]
	}

	return out
}

// supportMask returns |x_i| > cutoff.
func supportMask(x []float64, cutoff float64) []bool {
	mask := make([]bool, len(x))
	for i, v := range x {
		mask[i] = math.Abs(v) > cutoff
	}

	return mask
}
