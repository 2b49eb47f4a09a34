// SPDX-License-Identifier: MIT

package speigh

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/speigh/matrix"
)

// SCDeflate returns the Schur-complement deflation
//
//	A' = A − (A x)(xᵀ A) / (xᵀ A x).
//
// x becomes a null vector of the quadratic form (xᵀA'x = 0) and eigenpairs
// of a symmetric A that are A-orthogonal to x are preserved.
//
// Hazard: xᵀAx ≈ 0 is not checked. The division then yields huge or
// non-finite entries; callers must guard (SolveK stops on an exact zero).
//
// Errors:
//   - ErrConfiguration when A is nil or not square, or len(x) != N.
//
// Complexity: O(N²).
func SCDeflate(A matrix.Matrix, x []float64) (*matrix.Dense, error) {
	a, err := matrix.AsDense(A)
	if err != nil {
		return nil, configErrorf(opDeflate, err)
	}
	if err = matrix.ValidateSquare(a); err != nil {
		return nil, configErrorf(opDeflate, err)
	}
	n := a.Rows()
	if err = matrix.ValidateVecLen(x, n); err != nil {
		return nil, configErrorf(opDeflate, err)
	}

	ax, err := matrix.MatVec(a, x)
	if err != nil {
		return nil, configErrorf(opDeflate, err)
	}
	// xᵀA, kept separate from Ax so a slightly asymmetric A deflates exactly.
	xa := make([]float64, n)
	raw := a.RawData()
	for i, xi := range x {
		if xi != 0 {
			floats.AddScaled(xa, xi, raw[i*n:(i+1)*n])
		}
	}
	q := floats.Dot(x, ax)

	rank1, err := matrix.Outer(ax, xa)
	if err != nil {
		return nil, configErrorf(opDeflate, err)
	}
	floats.Scale(1/q, rank1.RawData())

	out, err := matrix.Sub(a, rank1)
	if err != nil {
		return nil, configErrorf(opDeflate, err)
	}

	return out, nil
}
