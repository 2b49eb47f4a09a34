// SPDX-License-Identifier: MIT
// Package matrix_test provides benchmarks for the kernels and spectral
// helpers, using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/speigh/matrix"
)

// benchSizes are the matrix sizes to benchmark. Spectral helpers are O(n³)
// per sweep, so sizes stay in the range of typical support submatrices.
var benchSizes = []int{8, 32, 64}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkV []float64
	sinkF float64
)

// benchSPD returns a deterministic n×n SPD matrix MᵀM + n·I.
func benchSPD(b *testing.B, n int, seed int64) *matrix.Dense {
	b.Helper()
	rng := rand.New(rand.NewSource(seed))
	raw := make([]float64, n*n)
	for k := range raw {
		raw[k] = rng.Float64()*2 - 1
	}
	out := make([]float64, n*n)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			var s float64
			for k = 0; k < n; k++ {
				s += raw[k*n+i] * raw[k*n+j]
			}
			if i == j {
				s += float64(n)
			}
			out[i*n+j], out[j*n+i] = s, s
		}
	}
	m, err := matrix.NewDenseFrom(n, n, out)
	if err != nil {
		b.Fatal(err)
	}

	return m
}

func BenchmarkMatVec(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := benchSPD(b, n, 1337)
			x := make([]float64, n)
			for i := range x {
				x[i] = float64(i%7) - 3
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				y, err := matrix.MatVec(A, x)
				if err != nil {
					b.Fatal(err)
				}
				sinkV = y
			}
		})
	}
}

func BenchmarkPinvSym(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := benchSPD(b, n, 7)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.PinvSym(A, 0)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkTopGeneralized(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := benchSPD(b, n, 3)
			B := benchSPD(b, n, 5)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				val, v, err := matrix.TopGeneralized(A, B, nil)
				if err != nil {
					b.Fatal(err)
				}
				sinkF, sinkV = val, v
			}
		})
	}
}
