// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/speigh/matrix"
)

// TestValidateSameShape covers nil inputs, matching and mismatched dimensions.
func TestValidateSameShape(t *testing.T) {
	t.Parallel()

	zeros := func(r, c int) matrix.Matrix {
		m, err := matrix.NewDense(r, c)
		require.NoError(t, err)
		return m
	}

	tests := []struct {
		name    string
		a, b    matrix.Matrix
		wantErr error
	}{
		{"both nil", nil, nil, matrix.ErrNilMatrix},
		{"first nil", nil, zeros(2, 2), matrix.ErrNilMatrix},
		{"second nil", zeros(2, 2), nil, matrix.ErrNilMatrix},
		{"equal 2x3", zeros(2, 3), zeros(2, 3), nil},
		{"row mismatch", zeros(2, 3), zeros(3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", zeros(2, 3), zeros(2, 4), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Truef(t, errors.Is(err, tc.wantErr),
					"expected errors.Is(%v, %v)", err, tc.wantErr)
			}
		})
	}
}

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	one, err := matrix.NewIdentity(1)
	require.NoError(t, err)

	tests := []struct {
		name string
		m    matrix.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"1x1", one, nil},
		{"2x3", rect, matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSquare(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.want)
			}
		})
	}
}

// TestValidateSymmetric checks the tolerance boundary and structural errors.
func TestValidateSymmetric(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 2, []float64{1, 2, 2 + 1e-7, 1})
	require.NoError(t, matrix.ValidateSymmetric(A, 1e-6))
	require.ErrorIs(t, matrix.ValidateSymmetric(A, 1e-8), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(hide{A}, 1e-6))

	rect := NewFilledDense(t, 1, 2, []float64{1, 2})
	require.ErrorIs(t, matrix.ValidateSymmetric(rect, 1), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateSymmetric(nil, 1), matrix.ErrNilMatrix)
}

// TestVectorValidators covers ValidateVecLen and ValidateFiniteVec.
func TestVectorValidators(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)

	require.NoError(t, matrix.ValidateFiniteVec([]float64{0, -1, 1e300}))
	require.ErrorIs(t, matrix.ValidateFiniteVec([]float64{0, math.NaN()}), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateFiniteVec([]float64{math.Inf(-1)}), matrix.ErrNaNInf)
}

// TestIsZeroOffDiagonal separates diagonal from dense inputs.
func TestIsZeroOffDiagonal(t *testing.T) {
	t.Parallel()

	D, err := matrix.NewDiag([]float64{1, 2, 3})
	require.NoError(t, err)
	ok, err := matrix.IsZeroOffDiagonal(D, 0)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, D.Set(0, 2, 1e-12))
	ok, err = matrix.IsZeroOffDiagonal(D, 0)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = matrix.IsZeroOffDiagonal(D, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = matrix.IsZeroOffDiagonal(NewFilledDense(t, 1, 2, []float64{1, 2}), 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
