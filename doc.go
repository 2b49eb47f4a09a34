// SPDX-License-Identifier: MIT

// Package speigh computes sparse approximate solutions of the generalized
// symmetric eigenvalue problem
//
//	maximize xᵀAx  subject to  xᵀBx ≤ 1,  ‖x‖₀ small,
//
// for symmetric A and positive semidefinite B. The cardinality penalty is
// replaced by the smooth surrogate
//
//	rho · Σ log(1 + |x_i|/eps) / log(1 + 1/eps)
//
// and minimized by a majorization-minimization (MM) loop. Every MM step is a
// convex problem that takes one of three forms, chosen once per solve:
//
//   - PathDiagonal (tau = 0, B diagonal): a closed-form update.
//   - PathGeneral (tau = 0, B dense): a nonnegative quadratic program for the
//     Lagrange multiplier, then a closed-form update through pinv(SBS).
//   - PathDC (tau ≠ 0): the difference-of-convex path; each step projects
//     (A/tau + I)x onto the B-ellipsoid under a weighted L1 penalty.
//
// After the loop the iterate is thresholded at tol and the loadings are
// recomputed exactly on the discovered support (variational renormalization).
//
// SCDeflate removes a found vector from A by Schur-complement deflation so a
// following solve targets the remaining structure; SolveK chains the two.
//
// The convex sub-problems are delegated to a cvx.Backend and the dense
// eigenproblem on the support to a GeneralizedEigensolver; both can be
// replaced through options. Logging goes through an injected zerolog.Logger
// and solve statistics can be exported to Prometheus via Metrics.
//
// The module is organized as the root package plus two subpackages:
//
//	matrix/: dense row-major matrices, validators, kernels, Jacobi eigen,
//	          pseudo-inverse and the generalized top eigenpair (gonum/mat)
//	cvx/:    the convex backend, an adapter over github.com/hrautila/cvx
//	          for the nonnegative QP and the L1-penalized cone QP
//
// Quick example:
//
//	A, _ := matrix.NewDiag([]float64{3, 2, 1})
//	B, _ := matrix.NewIdentity(3)
//	res, err := speigh.Speigh(A, B, v0, 0.5, 1e-3, 1e-6)
//	// res.Value, res.Vector, res.Support
//
// Reference: Sriperumbudur, Torres, Lanckriet, "A majorization-minimization
// approach to the sparse generalized eigenvalue problem", Machine Learning
// 85 (2011) 3–39.
package speigh
