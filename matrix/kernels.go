// SPDX-License-Identifier: MIT
// Package matrix provides the canonical kernels used by the sparse
// eigensolver: matrix-vector product, element-wise sum/difference,
// scaling, outer product and quadratic form. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - Every kernel converts its operands once via AsDense and then runs flat
//     row-major loops; non-Dense implementations pay one copy at entry.
//   - Results are always freshly allocated; operands are never mutated.

package matrix

import "fmt"

// ZeroSum is the initial value of every accumulator.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opScale     = "Scale"
	opMatVec    = "MatVec"
	opOuter     = "Outer"
	opQuadForm  = "QuadForm"
	opEigen     = "Eigen"
	opPinv      = "PinvSym"
	opTopGen    = "TopGeneralized"
	opSymmetric = "Symmetrize"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes element-wise out = a + sign*b for sign ∈ {+1, -1}.
// Shared by Add/Sub for validation, allocation and the flat loop.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	if err = ValidateSameShape(da, db); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx := range res.data { // deterministic 0..n-1
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha * m as a fresh matrix.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(d.r, d.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range d.data {
		res.data[idx] = alpha * v
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
//
// AI-Hints:
//   - Skipping zero x[j] helps when x is sparse, which is the common case
//     late in a sparse eigen solve.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err = ValidateVecLen(x, d.c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, d.r)
	var (
		i, j, base int
		acc, xv    float64
	)
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			xv = x[j]
			if xv != 0 {
				acc += d.data[base+j] * xv
			}
		}
		y[i] = acc
	}

	return y, nil
}

// Outer returns the rank-one matrix x yᵀ.
// Errors: ErrNilMatrix for nil vectors, ErrInvalidDimensions for empty ones.
// Complexity: O(len(x)*len(y)).
func Outer(x, y []float64) (*Dense, error) {
	if x == nil || y == nil {
		return nil, matrixErrorf(opOuter, ErrNilMatrix)
	}
	res, err := NewDense(len(x), len(y))
	if err != nil {
		return nil, matrixErrorf(opOuter, err)
	}
	var i, j, base int
	for i = 0; i < res.r; i++ {
		base = i * res.c
		for j = 0; j < res.c; j++ {
			res.data[base+j] = x[i] * y[j]
		}
	}

	return res, nil
}

// QuadForm returns xᵀ M x for square M.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(n²), no allocation beyond AsDense.
func QuadForm(m Matrix, x []float64) (float64, error) {
	d, err := AsDense(m)
	if err != nil {
		return 0, matrixErrorf(opQuadForm, err)
	}
	if err = ValidateSquare(d); err != nil {
		return 0, matrixErrorf(opQuadForm, err)
	}
	if err = ValidateVecLen(x, d.c); err != nil {
		return 0, matrixErrorf(opQuadForm, err)
	}

	var (
		i, j, base int
		row, total float64
	)
	for i = 0; i < d.r; i++ {
		if x[i] == 0 {
			continue
		}
		row = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			row += d.data[base+j] * x[j]
		}
		total += x[i] * row
	}

	return total, nil
}

// Symmetrize returns (m + mᵀ)/2 for square m.
// Used to repair the round-off asymmetry that similarity transforms leave
// behind before handing a matrix to Eigen.
func Symmetrize(m Matrix) (*Dense, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opSymmetric, err)
	}
	if err = ValidateSquare(d); err != nil {
		return nil, matrixErrorf(opSymmetric, err)
	}
	n := d.r
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opSymmetric, err)
	}
	var i, j int
	var avg float64
	for i = 0; i < n; i++ {
		res.data[i*n+i] = d.data[i*n+i]
		for j = i + 1; j < n; j++ {
			avg = 0.5 * (d.data[i*n+j] + d.data[j*n+i])
			res.data[i*n+j], res.data[j*n+i] = avg, avg
		}
	}

	return res, nil
}
