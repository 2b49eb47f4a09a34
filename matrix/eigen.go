// SPDX-License-Identifier: MIT

package matrix

import "math"

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
//
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Repeatedly pick (p,q) with the largest |A[p,q]| in i→j order and apply a
//     Jacobi rotation that annihilates it; accumulate the rotation into Q.
//   - Stage 3: Fail if the largest off-diagonal entry is still ≥ tol after maxIter rotations.
//
// Inputs:
//   - m: symmetric Matrix (within tol).
//   - tol: convergence threshold on max |A[p,q]| (absolute).
//   - maxIter: cap on the number of rotations.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix, unsorted).
//   - *Dense: Q whose columns are the matching orthonormal eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrAsymmetry,
//     ErrMatrixEigenFailed (max off-diagonal ≥ tol after maxIter).
//
// Determinism:
//   - Fixed i→j pivot search and fixed update order produce stable results.
//
// Complexity:
//   - Time O(maxIter * n^2), Space O(n^2).
//
// AI-Hints:
//   - Use a tolerance relative to the matrix scale (see frobenius) when the caller
//     cannot bound the magnitude of the entries.
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := AsDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	a := src.Clone().(*Dense) // working copy; the input is never mutated
	Q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	ad, qd := a.data, Q.data

	var (
		iter, i, p, q      int
		maxOff             float64
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		theta, t, c, s     float64
	)
	for iter = 0; iter < maxIter; iter++ {
		// J.1: pivot (p,q) maximizing |A[p,q]|
		maxOff, p, q = maxOffDiagonal(ad, n)

		// J.2: converged (maxOff == 0 covers tol == 0 on an already diagonal input)
		if maxOff < tol || maxOff == 0 {
			break
		}

		// J.3: rotation parameters from A[p,p], A[q,q], A[p,q]
		app, aqq, apq = ad[p*n+p], ad[q*n+q], ad[p*n+q]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.4: apply the rotation to rows/cols p and q
		for i = 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip, aiq = ad[i*n+p], ad[i*n+q]
			ad[i*n+p] = c*aip - s*aiq
			ad[p*n+i] = ad[i*n+p]
			ad[i*n+q] = s*aip + c*aiq
			ad[q*n+i] = ad[i*n+q]
		}
		ad[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		ad[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
		ad[p*n+q], ad[q*n+p] = 0, 0

		// J.5: accumulate into Q
		for i = 0; i < n; i++ {
			qip, qiq = qd[i*n+p], qd[i*n+q]
			qd[i*n+p] = c*qip - s*qiq
			qd[i*n+q] = s*qip + c*qiq
		}
	}

	if maxOff, _, _ = maxOffDiagonal(ad, n); maxOff > 0 && maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	return a.Diag(), Q, nil
}

// maxOffDiagonal scans the strict upper triangle of a flat n×n buffer and
// returns the largest magnitude together with its position.
func maxOffDiagonal(data []float64, n int) (float64, int, int) {
	var (
		maxOff, off float64
		i, j, base  int
		p, q        int
	)
	for i = 0; i < n; i++ {
		base = i * n
		for j = i + 1; j < n; j++ {
			off = math.Abs(data[base+j])
			if off > maxOff {
				maxOff, p, q = off, i, j
			}
		}
	}

	return maxOff, p, q
}

// frobenius returns sqrt(Σ a_ij²), used to scale tolerances.
func frobenius(d *Dense) float64 {
	var s float64
	for _, v := range d.data {
		s += v * v
	}

	return math.Sqrt(s)
}
