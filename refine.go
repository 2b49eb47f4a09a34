// SPDX-License-Identifier: MIT

package speigh

import (
	"fmt"

	"github.com/katalvlaran/speigh/matrix"
)

// refine is the variational renormalization: the thresholded iterate fixes
// the sparsity pattern, and the loadings are recomputed without penalty on
// the induced submatrices Ak = A[S,S], Bk = B[S,S].
//
//   - |S| = 0: (0, zero vector).
//   - |S| = 1: (Ak/Bk, one-hot at S).
//   - |S| ≥ 2: top eigenpair of (Ak, Bk) seeded with x[S], embedded into length N.
//
// Errors:
//   - ErrOptimization when the eigensolver fails (e.g. Bk not positive definite).
func (p *problem) refine(x []float64, support []int, eig GeneralizedEigensolver) (float64, []float64, error) {
	v := make([]float64, p.n)
	switch len(support) {
	case 0:
		return 0, v, nil
	case 1:
		k := support[0]
		v[k] = 1
		ak, _ := p.a.At(k, k)
		bk, _ := p.b.At(k, k)

		return ak / bk, v, nil
	}

	ak, err := p.a.Principal(support)
	if err != nil {
		return 0, nil, optimizationErrorf(opRefine, err)
	}
	bk, err := p.b.Principal(support)
	if err != nil {
		return 0, nil, optimizationErrorf(opRefine, err)
	}
	value, vk, err := eig.Top(ak, bk, gather(x, support))
	if err != nil {
		return 0, nil, optimizationErrorf(opRefine, err)
	}
	if len(vk) != len(support) {
		return 0, nil, optimizationErrorf(opRefine,
			fmt.Errorf("eigenvector length %d, want %d: %w", len(vk), len(support), matrix.ErrDimensionMismatch))
	}
	for k, i := range support {
		v[i] = vk[k]
	}

	return value, v, nil
}
