// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/speigh/matrix"
)

func TestMatVec(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	y, err := matrix.MatVec(A, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, y)

	// interface path yields the same result
	y2, err := matrix.MatVec(hide{A}, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, y, y2)

	_, err = matrix.MatVec(A, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAddSub_Scale(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	B := NewFilledDense(t, 2, 2, []float64{0, 1, 1, 0})

	S, err := matrix.Add(A, B)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3, 4, 4}, S.RawData())

	D, err := matrix.Sub(A, B)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 2, 4}, D.RawData())

	H, err := matrix.Scale(A, 0.5)
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 1, 1.5, 2}, H.RawData())

	C := NewFilledDense(t, 3, 1, []float64{1, 2, 3})
	_, err = matrix.Sub(A, C)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Add(A, C)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestOuter_QuadForm(t *testing.T) {
	t.Parallel()

	O, err := matrix.Outer([]float64{1, 2}, []float64{3, 4, 5})
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4, 5, 6, 8, 10}, O.RawData())

	A := NewFilledDense(t, 2, 2, []float64{2, 1, 1, 3})
	q, err := matrix.QuadForm(A, []float64{1, -1})
	require.NoError(t, err)
	require.InDelta(t, 3.0, q, 1e-15) // 2 - 1 - 1 + 3

	_, err = matrix.QuadForm(O, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestSymmetrize(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 2, []float64{1, 2, 4, 3})
	S, err := matrix.Symmetrize(A)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3, 3, 3}, S.RawData())
}
