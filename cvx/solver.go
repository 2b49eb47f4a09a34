// SPDX-License-Identifier: MIT

package cvx

import (
	lru "github.com/hashicorp/golang-lru/v2"
	cvxopt "github.com/hrautila/cvx"
	fmat "github.com/hrautila/matrix"

	"github.com/katalvlaran/speigh/matrix"
)

// Backend is the minimal capability the eigensolver consumes.
//
// Implementations must not retain or mutate their arguments and must return
// a non-nil error (wrapping ErrNotOptimal or ErrBadInput) whenever
// Result.Status is not OK.
type Backend interface {
	// NonnegQuad minimizes (z+γ)ᵀ M (z+γ) over z ≥ 0 for symmetric M.
	NonnegQuad(m *matrix.Dense, gamma []float64) (Result, error)

	// L1Ball minimizes ‖z−y‖₂² + c‖diag(w) z‖₁ subject to zᵀ B z ≤ 1.
	L1Ball(y, w []float64, b *matrix.Dense, c float64) (Result, error)
}

// Solver is the default Backend. It casts both sub-problems as cone
// quadratic programs for github.com/hrautila/cvx.
type Solver struct {
	settings Settings
	cache    *lru.Cache[uint64, []*coneFactor] // hash of B → factors sharing that hash
}

var _ Backend = (*Solver)(nil)

// NewSolver builds a Solver; zero Settings fields take their defaults.
//
// Errors:
//   - ErrBadSettings when a field is out of range.
func NewSolver(s Settings) (*Solver, error) {
	rs, err := s.resolve()
	if err != nil {
		return nil, cvxErrorf(opNewSolver, err)
	}
	sol := &Solver{settings: rs}
	if rs.CacheSize > 0 {
		if sol.cache, err = lru.New[uint64, []*coneFactor](rs.CacheSize); err != nil {
			return nil, cvxErrorf(opNewSolver, err)
		}
	}

	return sol, nil
}

// Settings returns the resolved settings.
func (s *Solver) Settings() Settings { return s.settings }

// judge maps the interior-point outcome to a Status. An optimal library status
// is trusted as is; otherwise the returned point is accepted as
// OptimalInaccurate only when our own residual check on it passes.
func (s *Solver) judge(sol *cvxopt.Solution, residual float64) Status {
	switch {
	case sol == nil:
		return SolverError
	case sol.Status == cvxopt.Optimal:
		return Optimal
	case residual <= s.settings.InaccurateFactor*s.settings.Tolerance:
		return OptimalInaccurate
	default:
		return MaxIterations
	}
}

// primal extracts the first n entries of the primal variable x.
func primal(sol *cvxopt.Solution, n int) []float64 {
	if sol == nil || sol.Result == nil {
		return nil
	}
	xs := sol.Result.At("x")
	if len(xs) == 0 || xs[0] == nil || xs[0].NumElements() < n {
		return nil
	}
	out := make([]float64, n)
	copy(out, xs[0].FloatArray()[:n])

	return out
}

// columnMajor builds a rows×cols library matrix from a row-major buffer.
func columnMajor(rows, cols int, rowMajor []float64) *fmat.FloatMatrix {
	cm := make([]float64, rows*cols)
	var i, j int
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			cm[j*rows+i] = rowMajor[i*cols+j]
		}
	}

	return fmat.FloatNew(rows, cols, cm)
}
