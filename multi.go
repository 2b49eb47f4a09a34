// SPDX-License-Identifier: MIT

package speigh

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/speigh/matrix"
)

// SolveK extracts up to len(vInits) sparse eigenvectors by alternating
// Speigh and SCDeflate: the i-th solve runs on A deflated by the i−1 vectors
// found before, always against the same B and with vInits[i] as start.
//
// The loop stops early, returning the results so far, when a solve yields an
// empty support or a vector with xᵀA_i x = 0, since deflation by such a
// vector is undefined.
//
// Errors:
//   - ErrConfiguration when vInits is empty; any error of Speigh or
//     SCDeflate, tagged with the index of the failing solve.
func SolveK(A, B matrix.Matrix, vInits [][]float64, rho, eps, tol float64, opts ...Option) ([]Result, error) {
	if len(vInits) == 0 {
		return nil, configErrorf(opSolveK, errors.New("no initial vectors"))
	}
	current, err := matrix.AsDense(A)
	if err != nil {
		return nil, configErrorf(opSolveK, err)
	}

	results := make([]Result, 0, len(vInits))
	var q float64
	for i, v0 := range vInits {
		res, err := Speigh(current, B, v0, rho, eps, tol, opts...)
		if err != nil {
			return results, fmt.Errorf("speigh.%s[%d]: %w", opSolveK, i, err)
		}
		results = append(results, res)
		if len(res.Support) == 0 || i == len(vInits)-1 {
			break
		}
		if q, err = matrix.QuadForm(current, res.Vector); err != nil {
			return results, configErrorf(opSolveK, err)
		}
		if q == 0 {
			break
		}
		if current, err = SCDeflate(current, res.Vector); err != nil {
			return results, fmt.Errorf("speigh.%s[%d]: %w", opSolveK, i, err)
		}
	}

	return results, nil
}
