// SPDX-License-Identifier: MIT
// Package matrix_test contains shared fixtures.
//
// Purpose:
//   • Provide small, deterministic fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/speigh/matrix"
)

// hide wraps any Matrix to hide its concrete type, forcing the AsDense copy path.
type hide struct{ matrix.Matrix }

// NewFilledDense builds an r×c *Dense from row-major data or fails the test.
func NewFilledDense(t *testing.T, r, c int, data []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(t, err)

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RandomSPD returns a deterministic n×n symmetric positive definite matrix
// MᵀM + shift·I seeded by seed.
func RandomSPD(t *testing.T, n int, shift float64, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	raw := make([]float64, n*n)
	for k := range raw {
		raw[k] = rng.Float64()*2 - 1
	}
	M := NewFilledDense(t, n, n, raw)
	out := make([]float64, n*n)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			var s float64
			for k = 0; k < n; k++ {
				s += MustAt(t, M, k, i) * MustAt(t, M, k, j)
			}
			if i == j {
				s += shift
			}
			out[i*n+j] = s
		}
	}

	return NewFilledDense(t, n, n, out)
}

// propEigenEquation asserts A q_k = λ_k q_k for every column of Q.
func propEigenEquation(t *testing.T, A matrix.Matrix, Q matrix.Matrix, vals []float64, tol float64) {
	t.Helper()
	n := A.Rows()
	for k := 0; k < n; k++ {
		q := make([]float64, n)
		for i := 0; i < n; i++ {
			q[i] = MustAt(t, Q, i, k)
		}
		Aq, err := matrix.MatVec(A, q)
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			require.InDelta(t, vals[k]*q[i], Aq[i], tol, "column %d row %d", k, i)
		}
	}
}

// norm2 is the Euclidean norm.
func norm2(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}

	return math.Sqrt(s)
}
