// SPDX-License-Identifier: MIT

package speigh_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/speigh/cvx"
	"github.com/katalvlaran/speigh/matrix"
)

// dense builds an n×n matrix from row-major data or fails the test.
func dense(t *testing.T, n int, data ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(n, n, data)
	require.NoError(t, err)

	return m
}

func diag(t *testing.T, d ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDiag(d)
	require.NoError(t, err)

	return m
}

func identity(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewIdentity(n)
	require.NoError(t, err)

	return m
}

// uniform returns the unit vector with equal entries.
func uniform(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1 / math.Sqrt(float64(n))
	}

	return v
}

// randomSPD returns GᵀG + I for a seeded Gaussian G.
func randomSPD(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g := make([]float64, n*n)
	for k := range g {
		g[k] = rng.NormFloat64()
	}
	out := make([]float64, n*n)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			var s float64
			for k = 0; k < n; k++ {
				s += g[k*n+i] * g[k*n+j]
			}
			if i == j {
				s++
			}
			out[i*n+j], out[j*n+i] = s, s
		}
	}

	return dense(t, n, out...)
}

// nnz counts nonzero entries.
func nnz(v []float64) int {
	var k int
	for _, x := range v {
		if x != 0 {
			k++
		}
	}

	return k
}

// stubBackend returns canned statuses and records calls.
type stubBackend struct {
	status cvx.Status
	err    error
	calls  int
}

func (s *stubBackend) NonnegQuad(m *matrix.Dense, gamma []float64) (cvx.Result, error) {
	s.calls++

	return cvx.Result{Status: s.status, X: make([]float64, len(gamma))}, s.err
}

func (s *stubBackend) L1Ball(y, w []float64, b *matrix.Dense, c float64) (cvx.Result, error) {
	s.calls++

	return cvx.Result{Status: s.status, X: make([]float64, len(y))}, s.err
}
