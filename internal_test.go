// SPDX-License-Identifier: MIT

package speigh

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/speigh/cvx"
	"github.com/katalvlaran/speigh/matrix"
)

func newTestProblem(t *testing.T, a, b []float64, n int) *problem {
	t.Helper()
	A, err := matrix.NewDenseFrom(n, n, a)
	require.NoError(t, err)
	B, err := matrix.NewDenseFrom(n, n, b)
	require.NoError(t, err)

	return &problem{a: A, b: B, n: n, tol: 1e-6}
}

func TestRefine(t *testing.T) {
	t.Parallel()

	p := newTestProblem(t,
		[]float64{3, 1, 0, 1, 2, 0, 0, 0, 7},
		[]float64{2, 0, 0, 0, 1, 0, 0, 0, 4}, 3)
	x := []float64{0.5, 1e-9, 0.2}

	// Empty support.
	val, v, err := p.refine(x, nil, DenseEigensolver{})
	require.NoError(t, err)
	require.Equal(t, 0.0, val)
	require.Equal(t, []float64{0, 0, 0}, v)

	// One coordinate: A_kk / B_kk and a one-hot vector.
	val, v, err = p.refine(x, []int{2}, DenseEigensolver{})
	require.NoError(t, err)
	require.Equal(t, 7.0/4.0, val)
	require.Equal(t, []float64{0, 0, 1}, v)

	// Two coordinates {0, 2}: decoupled, top is max(3/2, 7/4).
	val, v, err = p.refine(x, []int{0, 2}, DenseEigensolver{})
	require.NoError(t, err)
	require.InDelta(t, 1.75, val, 1e-12)
	require.InDeltaSlice(t, []float64{0, 0, 0.5}, v, 1e-12) // vᵀBv = 1, oriented by x
}

func TestStepNorm(t *testing.T) {
	t.Parallel()

	prev := []float64{1, 1e-9, -2}
	x := []float64{1.5, 5, -2}
	// The second coordinate is below tol in prev and ignored.
	require.InDelta(t, 0.5, stepNorm(x, prev, 1e-6), 1e-15)
	require.Equal(t, 0.0, stepNorm(x, []float64{0, 0, 0}, 1e-6))
	require.Equal(t, 2, countAbove(x, 1.6))
}

func TestStepDiagonal_Inactive(t *testing.T) {
	t.Parallel()

	p := newTestProblem(t, []float64{1, 0, 0, 1}, []float64{1, 0, 0, 1}, 2)
	p.bdiag = []float64{1, 1}
	p.eps = 0.1
	p.rhoE = 100 // 2·Σ|Ax|(|x|+eps) is far below rho_e

	x, err := p.stepDiagonal([]float64{0.6, 0.8})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, x)
}

// recordingBackend forwards to a real backend and keeps every NonnegQuad result.
type recordingBackend struct {
	cvx.Backend
	multipliers [][]float64
}

func (r *recordingBackend) NonnegQuad(m *matrix.Dense, gamma []float64) (cvx.Result, error) {
	res, err := r.Backend.NonnegQuad(m, gamma)
	r.multipliers = append(r.multipliers, res.X)

	return res, err
}

// Coupled block {0,1} against two weak coordinates: at rho = 1 the weak
// coordinates have γ < 0 and the multiplier lifts them exactly to zero.
func TestStepGeneral_Multiplier(t *testing.T) {
	t.Parallel()

	A, err := matrix.NewDenseFrom(4, 4, []float64{
		5, 4, 0, 0,
		4, 5, 0, 0,
		0, 0, 3, 0,
		0, 0, 0, 3,
	})
	require.NoError(t, err)
	B, err := matrix.NewDenseFrom(4, 4, []float64{
		2, 1, 0, 0,
		1, 2, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	require.NoError(t, err)
	x0 := []float64{0.3, 0.3, 0.1, 0.1}

	p, err := newProblem(A, B, x0, 1, 1e-3, 1e-4, gatherOptions())
	require.NoError(t, err)
	require.Equal(t, PathGeneral, p.path)
	rec := &recordingBackend{Backend: p.backend}
	p.backend = rec

	_, gamma, active, err := p.majorize(x0)
	require.NoError(t, err)
	require.True(t, active)
	require.Greater(t, gamma[0], 0.0)
	require.Less(t, gamma[2], 0.0)

	x, err := p.stepGeneral(x0)
	require.NoError(t, err)
	require.Len(t, rec.multipliers, 1)
	lambda := rec.multipliers[0]
	require.InDelta(t, 0.0, lambda[0], 1e-5)
	require.InDelta(t, 0.0, lambda[1], 1e-5)
	require.InDelta(t, -gamma[2], lambda[2], 1e-5) // ≈ 0.4166
	require.InDelta(t, -gamma[3], lambda[3], 1e-5)
	require.Greater(t, lambda[2], 0.1)

	require.InDelta(t, 1/math.Sqrt(6), x[0], 1e-6)
	require.InDelta(t, 1/math.Sqrt(6), x[1], 1e-6)
	require.InDelta(t, 0.0, x[2], 1e-6)
	require.InDelta(t, 0.0, x[3], 1e-6)
}

func TestPathString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "diagonal", PathDiagonal.String())
	require.Equal(t, "general", PathGeneral.String())
	require.Equal(t, "dc", PathDC.String())
	require.Equal(t, "unknown", Path(99).String())
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	A, err := matrix.NewDiag([]float64{3, 2, 1})
	require.NoError(t, err)
	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	v0 := []float64{1 / math.Sqrt(3), 1 / math.Sqrt(3), 1 / math.Sqrt(3)}

	_, err = Speigh(A, I, v0, 0, 1e-6, 1e-6, WithMetrics(m))
	require.NoError(t, err)
	_, err = Speigh(A, I, v0, 0, 1e-6, 1e-6, WithMetrics(m), WithMaxIter(1))
	require.NoError(t, err)
	_, err = Speigh(A, I, v0, -1, 1e-6, 1e-6, WithMetrics(m))
	require.Error(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(m.solves.WithLabelValues("diagonal", outcomeConverged)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.solves.WithLabelValues("diagonal", outcomeMaxIter)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.solves.WithLabelValues("unknown", outcomeConfiguration)))
	require.Equal(t, 4, testutil.CollectAndCount(m.solves)+testutil.CollectAndCount(m.support))

	// A nil *Metrics is a no-op.
	var none *Metrics
	none.observe(Result{})
	none.observeFailure(PathDC, outcomeOptimization)
}
