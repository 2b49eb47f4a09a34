// SPDX-License-Identifier: MIT

package speigh_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/speigh"
	"github.com/katalvlaran/speigh/matrix"
)

func TestSCDeflate_NullVector(t *testing.T) {
	t.Parallel()

	// Eigenpairs: (3, [1,1,0]/√2), (1, [1,−1,0]/√2), (5, e3).
	A := dense(t, 3, 2, 1, 0, 1, 2, 0, 0, 0, 5)
	s := 1 / math.Sqrt2
	x := []float64{s, s, 0}

	D, err := speigh.SCDeflate(A, x)
	require.NoError(t, err)

	q, err := matrix.QuadForm(D, x)
	require.NoError(t, err)
	require.InDelta(t, 0, q, 1e-12)

	Dx, err := matrix.MatVec(D, x)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 0, 0}, Dx, 1e-12)

	// Remaining eigenpairs are preserved.
	for _, pair := range []struct {
		val float64
		vec []float64
	}{
		{1, []float64{s, -s, 0}},
		{5, []float64{0, 0, 1}},
	} {
		got, err := matrix.MatVec(D, pair.vec)
		require.NoError(t, err)
		want := []float64{pair.val * pair.vec[0], pair.val * pair.vec[1], pair.val * pair.vec[2]}
		require.InDeltaSlice(t, want, got, 1e-12)
	}

	// Input untouched.
	require.Equal(t, []float64{2, 1, 0, 1, 2, 0, 0, 0, 5}, A.RawData())
}

func TestSCDeflate_Diagonal(t *testing.T) {
	t.Parallel()

	D, err := speigh.SCDeflate(diag(t, 3, 2, 1), []float64{1, 0, 0})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0, 0, 2, 0, 0, 0, 1}, D.RawData())
}

func TestSCDeflate_Errors(t *testing.T) {
	t.Parallel()

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = speigh.SCDeflate(rect, []float64{1, 0, 0})
	require.ErrorIs(t, err, speigh.ErrConfiguration)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = speigh.SCDeflate(identity(t, 2), []float64{1, 0, 0})
	require.ErrorIs(t, err, speigh.ErrConfiguration)

	_, err = speigh.SCDeflate(nil, []float64{1})
	require.ErrorIs(t, err, speigh.ErrConfiguration)
}
