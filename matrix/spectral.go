// SPDX-License-Identifier: MIT
// Package matrix: spectral helpers backed by gonum/mat.
//
// Purpose:
//   - PinvSym: Moore–Penrose pseudo-inverse of a symmetric (possibly singular) matrix.
//   - TopGeneralized: algebraically largest eigenpair of the pencil (A, B) with
//     B symmetric positive definite, via the reduction C = L⁻¹ A L⁻ᵀ.
//
// Determinism & Policy:
//   - Inputs are symmetrized once (repairing round-off) and never mutated.
//   - The symmetric tolerance is relative to the Frobenius norm of the operand.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// PinvSym returns the pseudo-inverse of a symmetric matrix m.
//
// Implementation:
//   - Stage 1: validate m symmetric within DefaultEpsilon·max(1,‖m‖_F); symmetrize.
//   - Stage 2: restrict to the rows/columns that are not identically zero.
//   - Stage 3: mat.EigenSym on the restriction, m = Q Λ Qᵀ.
//   - Stage 4: accumulate Σ_{|λ_k| > rcond·max|λ|} (1/λ_k) q_k q_kᵀ and embed.
//
// Behavior highlights:
//   - Zero rows/columns (e.g. produced by a zero sign pattern) yield exactly
//     zero rows/columns.
//   - rcond ≤ 0 selects DefaultPinvRcond.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrMatrixEigenFailed.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func PinvSym(m Matrix, rcond float64) (*Dense, error) {
	d, err := symmetricDense(m)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	if rcond <= 0 {
		rcond = DefaultPinvRcond
	}
	n := d.r

	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	idx := nonzeroRows(d)
	if len(idx) == 0 {
		return res, nil
	}
	sub, err := d.Principal(idx)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	k := len(idx)

	var es mat.EigenSym
	if !es.Factorize(mat.NewSymDense(k, sub.data), true) {
		return nil, matrixErrorf(opPinv, ErrMatrixEigenFailed)
	}
	vals := es.Values(nil)
	var Q mat.Dense
	es.VectorsTo(&Q)

	var maxAbs float64
	for _, v := range vals {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	cut := rcond * maxAbs

	var (
		e, a, b int
		inv, qa float64
	)
	for e = 0; e < k; e++ {
		if math.Abs(vals[e]) <= cut {
			continue // null-space direction
		}
		inv = 1.0 / vals[e]
		for a = 0; a < k; a++ {
			qa = Q.At(a, e) * inv
			if qa == 0 {
				continue
			}
			for b = 0; b < k; b++ {
				res.data[idx[a]*n+idx[b]] += qa * Q.At(b, e)
			}
		}
	}

	return res, nil
}

// TopGeneralized returns the eigenpair (λ, v) of a v = λ b v with the
// algebraically largest λ, for symmetric a and symmetric positive definite b.
//
// Implementation:
//   - Stage 1: b = L Lᵀ via mat.Cholesky; L⁻¹ via TriDense.InverseTri.
//   - Stage 2: C = L⁻¹ a L⁻ᵀ, symmetrized.
//   - Stage 3: mat.EigenSym on C; the last (largest) eigenvalue and its vector y.
//   - Stage 4: v = L⁻ᵀ y, so vᵀ b v = yᵀ y = 1.
//   - Stage 5: orient v so that v·seed ≥ 0 when a seed is given.
//
// Inputs:
//   - a, b: n×n symmetric; b positive definite.
//   - seed: optional (nil allowed) vector of length n used only for orientation.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNotPositiveDefinite,
//     ErrMatrixEigenFailed.
//
// Complexity: O(n^3).
func TopGeneralized(a, b Matrix, seed []float64) (float64, []float64, error) {
	ad, err := symmetricDense(a)
	if err != nil {
		return 0, nil, matrixErrorf(opTopGen, err)
	}
	bd, err := symmetricDense(b)
	if err != nil {
		return 0, nil, matrixErrorf(opTopGen, err)
	}
	if err = ValidateSameShape(ad, bd); err != nil {
		return 0, nil, matrixErrorf(opTopGen, err)
	}
	n := ad.r
	if seed != nil {
		if err = ValidateVecLen(seed, n); err != nil {
			return 0, nil, matrixErrorf(opTopGen, err)
		}
	}

	var ch mat.Cholesky
	if !ch.Factorize(mat.NewSymDense(n, bd.data)) {
		return 0, nil, matrixErrorf(opTopGen, ErrNotPositiveDefinite)
	}
	var L, Linv mat.TriDense
	ch.LTo(&L)
	if err = Linv.InverseTri(&L); err != nil {
		return 0, nil, matrixErrorf(opTopGen, ErrNotPositiveDefinite)
	}

	var tmp, C mat.Dense
	tmp.Mul(&Linv, mat.NewDense(n, n, ad.data))
	C.Mul(&tmp, Linv.T())
	cs := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			cs.SetSym(i, j, 0.5*(C.At(i, j)+C.At(j, i)))
		}
	}

	var es mat.EigenSym
	if !es.Factorize(cs, true) {
		return 0, nil, matrixErrorf(opTopGen, ErrMatrixEigenFailed)
	}
	vals := es.Values(nil)
	var Q mat.Dense
	es.VectorsTo(&Q)
	top := n - 1 // ascending order

	var v mat.VecDense
	v.MulVec(Linv.T(), Q.ColView(top))
	out := make([]float64, n)
	for i = 0; i < n; i++ {
		out[i] = v.AtVec(i)
	}

	if seed != nil {
		var dot float64
		for i = 0; i < n; i++ {
			dot += out[i] * seed[i]
		}
		if dot < 0 {
			for i = range out {
				out[i] = -out[i]
			}
		}
	}

	return vals[top], out, nil
}

// nonzeroRows lists the rows of a square d holding at least one nonzero entry.
func nonzeroRows(d *Dense) []int {
	n := d.r
	idx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		for _, v := range d.data[i*n : (i+1)*n] {
			if v != 0 {
				idx = append(idx, i)
				break
			}
		}
	}

	return idx
}

// symmetricDense validates m as symmetric within a scale-aware tolerance and
// returns an exactly symmetric Dense copy.
func symmetricDense(m Matrix) (*Dense, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, err
	}
	if err = ValidateSymmetric(d, DefaultEpsilon*math.Max(1, frobenius(d))); err != nil {
		return nil, err
	}

	return Symmetrize(d)
}
