// SPDX-License-Identifier: MIT

// Package speigh: functional configuration of a solve. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors (panic only on nonsensical values),
//   - gatherOptions helper (internal).
//
// Notes:
//   - Scalar problem parameters (rho, eps, tol) are positional arguments of
//     Speigh and validated there; options carry the algorithm knobs and the
//     collaborators (backend, eigensolver, logger, metrics).
//   - maxIter is validated by Speigh so a bad value surfaces as ErrConfiguration.
package speigh

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/speigh/cvx"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTau selects the untransformed paths (Diagonal / General).
	DefaultTau = 0.0

	// DefaultMaxIter caps the number of MM updates.
	DefaultMaxIter = 10000

	// DefaultGreedy restricts PathDC sub-problems to the active coordinates.
	DefaultGreedy = true

	// DefaultSymmetryTol is the relative tolerance of the symmetry checks on A
	// and B: |m_ij − m_ji| ≤ DefaultSymmetryTol·max(1, max|m|).
	DefaultSymmetryTol = 1e-8
)

// ---------- Internal panic messages ----------

const (
	panicTauInvalid     = "speigh: WithTau: tau must be finite"
	panicBackendNil     = "speigh: WithBackend: backend must be non-nil"
	panicEigensolverNil = "speigh: WithEigensolver: eigensolver must be non-nil"
	panicSymTolInvalid  = "speigh: WithSymmetryTol: tolerance must be finite, non-negative"
)

// Option mutates Options. Options are applied in order; last writer wins.
type Option func(*Options)

// Options is the resolved configuration of one solve.
type Options struct {
	tau         float64
	maxIter     int
	greedy      bool
	symTol      float64
	logger      zerolog.Logger
	backend     cvx.Backend // nil ⇒ a fresh cvx.Solver with default settings
	eigensolver GeneralizedEigensolver
	metrics     *Metrics // nil ⇒ no metrics
}

// WithTau sets the DC weight. tau = 0 selects PathDiagonal or PathGeneral,
// any other value selects PathDC with scaledA = A/tau + I.
// Panics on NaN/Inf.
func WithTau(tau float64) Option {
	if math.IsNaN(tau) || math.IsInf(tau, 0) {
		panic(panicTauInvalid)
	}

	return func(o *Options) { o.tau = tau }
}

// WithMaxIter caps the number of MM updates. Values < 1 are rejected by
// Speigh with ErrConfiguration.
func WithMaxIter(n int) Option {
	return func(o *Options) { o.maxIter = n }
}

// WithGreedy toggles the restricted-support mode of PathDC: each sub-problem
// is solved only over coordinates with |x_i| > tol, assuming the others stay
// zero at the optimum. This is an approximation and is not proven exact.
func WithGreedy(greedy bool) Option {
	return func(o *Options) { o.greedy = greedy }
}

// WithSymmetryTol sets the relative tolerance of the symmetry checks.
func WithSymmetryTol(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSymTolInvalid)
	}

	return func(o *Options) { o.symTol = tol }
}

// WithLogger injects a structured logger. Per-iteration events are emitted at
// debug level and one summary per solve at info level.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithBackend replaces the convex sub-problem solver.
func WithBackend(b cvx.Backend) Option {
	if b == nil {
		panic(panicBackendNil)
	}

	return func(o *Options) { o.backend = b }
}

// WithEigensolver replaces the dense generalized eigensolver used on the support.
func WithEigensolver(e GeneralizedEigensolver) Option {
	if e == nil {
		panic(panicEigensolverNil)
	}

	return func(o *Options) { o.eigensolver = e }
}

// WithMetrics records solve statistics into m. A nil m disables metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// gatherOptions applies user options over the defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		tau:         DefaultTau,
		maxIter:     DefaultMaxIter,
		greedy:      DefaultGreedy,
		symTol:      DefaultSymmetryTol,
		logger:      zerolog.Nop(),
		eigensolver: DenseEigensolver{},
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
