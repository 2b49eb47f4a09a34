// SPDX-License-Identifier: MIT

package speigh

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/speigh/cvx"
	"github.com/katalvlaran/speigh/matrix"
)

// problem is the validated input of one solve plus the path-specific
// precomputation. It is read-only once built.
type problem struct {
	a, b *matrix.Dense
	n    int
	rhoE float64 // rho / ln(1 + 1/eps)
	eps  float64
	tol  float64
	path Path

	bdiag   []float64     // PathDiagonal: diag(B), all > 0
	backend cvx.Backend   // PathGeneral: nonnegative QP solver
	scaledA *matrix.Dense // PathDC: A/tau + I
	proj    *L1Projector  // PathDC: c = rhoE/tau
	greedy  bool          // PathDC: restricted-support sub-problems
}

// Speigh computes a sparse approximate top eigenpair of A x = λ B x.
//
// Implementation:
//   - Stage 1 (Initializing): validate shapes, symmetry, finiteness and
//     scalars; select the Path once (see package doc).
//   - Stage 2 (Iterating): x ← step(x) until the norm of x − prev over the
//     coordinates with |prev| > tol drops below tol, or maxIter updates ran.
//     The first check never passes (prev starts at +Inf).
//   - Stage 3 (Thresholding): Support = {i : |x_i| > tol}.
//   - Stage 4 (Refining): re-solve exactly on Support (see refine).
//
// Inputs:
//   - A: N×N symmetric; B: N×N symmetric positive semidefinite.
//   - vInit: starting vector of length N (e.g. the dense top eigenvector).
//   - rho ≥ 0 sparsity strength; eps > 0 smoothing; tol > 0 convergence and
//     support cutoff.
//
// Behavior highlights:
//   - Reaching maxIter is not an error: the last iterate is thresholded and
//     refined as usual, Stats.Converged is false and Result.Err reports it.
//   - PathDiagonal requires diag(B) > 0; PathDC with rho > 0 requires tau > 0
//     (a negative penalty makes the sub-problem non-convex).
//
// Errors:
//   - ErrConfiguration before any iteration for invalid input.
//   - ErrOptimization as soon as a sub-problem or the final eigenproblem fails;
//     no partial result is returned.
//
// Complexity:
//   - PathDiagonal O(N²) per step; PathGeneral O(N³) per step (pseudo-inverse);
//     PathDC one backend L1Ball solve per step.
func Speigh(A, B matrix.Matrix, vInit []float64, rho, eps, tol float64, opts ...Option) (Result, error) {
	o := gatherOptions(opts...)
	start := time.Now()

	p, err := newProblem(A, B, vInit, rho, eps, tol, o)
	if err != nil {
		o.metrics.observeFailure(PathUnknown, outcomeConfiguration)
		o.logger.Debug().Err(err).Msg("speigh: input rejected")

		return Result{Stats: Stats{StartTime: start, Runtime: time.Since(start)}}, err
	}
	log := o.logger.With().Str("component", "speigh").Stringer("path", p.path).Int("n", p.n).Logger()
	log.Debug().Float64("rho_e", p.rhoE).Float64("eps", eps).Float64("tol", tol).
		Float64("tau", o.tau).Bool("greedy", p.greedy).Msg("path selected")

	x, stats, err := p.iterate(vInit, o.maxIter, log)
	stats.StartTime = start
	if err != nil {
		stats.Runtime = time.Since(start)
		o.metrics.observeFailure(p.path, outcomeOptimization)
		log.Error().Err(err).Int("iterations", stats.Iterations).Msg("speigh: sub-problem failed")

		return Result{Stats: stats}, err
	}

	support := maskIndices(supportMask(x, tol))
	value, vector, err := p.refine(x, support, o.eigensolver)
	stats.Runtime = time.Since(start)
	if err != nil {
		o.metrics.observeFailure(p.path, outcomeOptimization)
		log.Error().Err(err).Ints("support", support).Msg("speigh: refinement failed")

		return Result{Stats: stats}, err
	}

	res := Result{Value: value, Vector: vector, Support: support, Stats: stats}
	o.metrics.observe(res)

	ev := log.Info()
	if !stats.Converged {
		ev = log.Warn()
	}
	ev.Int("iterations", stats.Iterations).
		Bool("converged", stats.Converged).
		Float64("norm", stats.FinalNorm).
		Int("nnz", len(support)).
		Float64("value", value).
		Dur("runtime", stats.Runtime).
		Msg("speigh solve finished")

	return res, nil
}

// newProblem is the Initializing state.
func newProblem(A, B matrix.Matrix, vInit []float64, rho, eps, tol float64, o Options) (*problem, error) {
	a, err := matrix.AsDense(A)
	if err != nil {
		return nil, configErrorf(opSpeigh, fmt.Errorf("A: %w", err))
	}
	b, err := matrix.AsDense(B)
	if err != nil {
		return nil, configErrorf(opSpeigh, fmt.Errorf("B: %w", err))
	}
	if err = matrix.ValidateSquare(a); err != nil {
		return nil, configErrorf(opSpeigh, fmt.Errorf("A: %w", err))
	}
	if err = matrix.ValidateSameShape(a, b); err != nil {
		return nil, configErrorf(opSpeigh, fmt.Errorf("B: %w", err))
	}
	n := a.Rows()
	if err = matrix.ValidateVecLen(vInit, n); err != nil {
		return nil, configErrorf(opSpeigh, fmt.Errorf("vInit: %w", err))
	}
	for _, in := range []struct {
		name string
		v    []float64
	}{{"A", a.RawData()}, {"B", b.RawData()}, {"vInit", vInit}} {
		if err = matrix.ValidateFiniteVec(in.v); err != nil {
			return nil, configErrorf(opSpeigh, fmt.Errorf("%s: %w", in.name, err))
		}
	}

	switch {
	case math.IsNaN(rho) || math.IsInf(rho, 0) || rho < 0:
		return nil, configErrorf(opSpeigh, fmt.Errorf("rho = %g must be finite and ≥ 0", rho))
	case math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0:
		return nil, configErrorf(opSpeigh, fmt.Errorf("eps = %g must be finite and > 0", eps))
	case math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0:
		return nil, configErrorf(opSpeigh, fmt.Errorf("tol = %g must be finite and > 0", tol))
	case o.maxIter < 1:
		return nil, configErrorf(opSpeigh, fmt.Errorf("maxIter = %d must be ≥ 1", o.maxIter))
	}

	for _, in := range []struct {
		name string
		m    *matrix.Dense
	}{{"A", a}, {"B", b}} {
		scale := math.Max(1, floats.Norm(in.m.RawData(), math.Inf(1)))
		if err = matrix.ValidateSymmetric(in.m, o.symTol*scale); err != nil {
			return nil, configErrorf(opSpeigh, fmt.Errorf("%s: %w", in.name, err))
		}
	}

	p := &problem{
		a:      a,
		b:      b,
		n:      n,
		rhoE:   rho / math.Log1p(1/eps),
		eps:    eps,
		tol:    tol,
		greedy: o.greedy,
	}

	diagonal, err := matrix.IsZeroOffDiagonal(b, 0)
	if err != nil {
		return nil, configErrorf(opSpeigh, fmt.Errorf("B: %w", err))
	}
	switch {
	case o.tau != 0:
		p.path = PathDC
		if o.tau < 0 && rho > 0 {
			return nil, configErrorf(opSpeigh, fmt.Errorf("tau = %g must be > 0 when rho > 0", o.tau))
		}
		if p.scaledA, err = scaleShift(a, o.tau); err != nil {
			return nil, configErrorf(opSpeigh, err)
		}
		if p.proj, err = NewL1Projector(b, p.rhoE/o.tau, o.greedy, o.backend); err != nil {
			return nil, err
		}
	case diagonal:
		p.path = PathDiagonal
		p.bdiag = b.Diag()
		for i, bi := range p.bdiag {
			if bi <= 0 {
				return nil, configErrorf(opSpeigh, fmt.Errorf("B[%d,%d] = %g must be > 0 for a diagonal B", i, i, bi))
			}
		}
	default:
		p.path = PathGeneral
		if p.backend = o.backend; p.backend == nil {
			if p.backend, err = cvx.NewSolver(cvx.DefaultSettings()); err != nil {
				return nil, configErrorf(opSpeigh, err)
			}
		}
	}

	return p, nil
}

// scaleShift returns A/tau + I.
func scaleShift(a *matrix.Dense, tau float64) (*matrix.Dense, error) {
	scaled, err := matrix.Scale(a, 1/tau)
	if err != nil {
		return nil, err
	}
	I, err := matrix.NewIdentity(a.Rows())
	if err != nil {
		return nil, err
	}

	return matrix.Add(scaled, I)
}

// iterate is the Iterating state. It returns the last iterate and the loop
// statistics; x is replaced, never mutated, so prev can alias the old slice.
func (p *problem) iterate(vInit []float64, maxIter int, log zerolog.Logger) ([]float64, Stats, error) {
	stats := Stats{Path: p.path, FinalNorm: math.Inf(1)}
	x := make([]float64, p.n)
	copy(x, vInit)

	var (
		prev    []float64 // nil stands for the +Inf initial previous iterate
		it      int
		err     error
		stepAt  time.Time
		debugOn = log.GetLevel() <= zerolog.DebugLevel
	)
	for it = 0; it < maxIter; it++ {
		if prev != nil {
			stats.FinalNorm = stepNorm(x, prev, p.tol)
			if stats.FinalNorm < p.tol {
				stats.Converged = true
				break
			}
		}
		prev = x
		stepAt = time.Now()
		if x, err = p.step(x); err != nil {
			stats.Iterations = it

			return nil, stats, err
		}
		if debugOn {
			log.Debug().
				Int("iter", it+1).
				Float64("norm", stats.FinalNorm).
				Int("nnz", countAbove(x, p.tol)).
				Dur("elapsed", time.Since(stepAt)).
				Msg("mm step")
		}
	}
	stats.Iterations = it
	if !stats.Converged && prev != nil {
		// The cap was hit right after an update: measure that last step too.
		stats.FinalNorm = stepNorm(x, prev, p.tol)
		stats.Converged = stats.FinalNorm < p.tol
	}

	return x, stats, nil
}

// step dispatches one MM update on the path selected at Initializing.
func (p *problem) step(x []float64) ([]float64, error) {
	switch p.path {
	case PathDiagonal:
		return p.stepDiagonal(x)
	case PathGeneral:
		return p.stepGeneral(x)
	case PathDC:
		return p.stepDC(x)
	default:
		return nil, configErrorf(opSpeigh, fmt.Errorf("path %s", p.path))
	}
}

// stepNorm is ‖(x − prev)|_{|prev| > tol}‖₂.
func stepNorm(x, prev []float64, tol float64) float64 {
	var s, d float64
	for i, pv := range prev {
		if math.Abs(pv) > tol {
			d = x[i] - pv
			s += d * d
		}
	}

	return math.Sqrt(s)
}

// countAbove counts |x_i| > tol.
func countAbove(x []float64, tol float64) int {
	var k int
	for _, v := range x {
		if math.Abs(v) > tol {
			k++
		}
	}

	return k
}
