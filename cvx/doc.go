// SPDX-License-Identifier: MIT

// Package cvx is the convex-optimization backend used by the sparse
// generalized eigensolver.
//
// It deliberately exposes exactly two sub-problem shapes through Backend:
//
//	NonnegQuad:  minimize (z+γ)ᵀ M (z+γ)                  s.t. z ≥ 0
//	L1Ball:      minimize ‖z−y‖₂² + c‖diag(w) z‖₁          s.t. zᵀ B z ≤ 1
//
// Every solve reports a Status. Optimal and OptimalInaccurate count as success;
// anything else comes back together with an error wrapping ErrNotOptimal.
//
// The default Solver casts both shapes as cone quadratic programs for the
// primal-dual interior-point solver of github.com/hrautila/cvx:
//   - NonnegQuad becomes Qp with P = 2M, q = 2Mγ and the bound −z ≤ 0.
//   - L1Ball splits |z| into bounded epigraph variables and turns zᵀBz ≤ 1
//     into a second-order cone through a factor F with FᵀF = B. Factors are
//     kept in an LRU cache so repeated solves against the same B (or the same
//     support-restricted submatrix) do not re-factor.
//
// A non-optimal library status is downgraded to OptimalInaccurate only when
// the returned point passes a residual check of its own.
//
// A Solver is safe for concurrent use.
package cvx
