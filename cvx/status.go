// SPDX-License-Identifier: MIT

package cvx

// Status is the terminal state of a sub-problem solve.
type Status int

const (
	// Optimal means the interior-point solver reported an optimal solution.
	Optimal Status = iota

	// OptimalInaccurate means the solver stopped short of an optimal status but
	// the returned point passed the residual check within
	// InaccurateFactor·Tolerance. Callers treat it as success.
	OptimalInaccurate

	// Infeasible means the problem data admit no feasible point.
	Infeasible

	// Unbounded means the objective is unbounded below (e.g. an indefinite M).
	Unbounded

	// SolverError means the problem data were rejected or the solver
	// returned no usable point.
	SolverError

	// MaxIterations means the solver stopped short of an optimal status and
	// the returned point failed the residual check.
	MaxIterations
)

var statusNames = [...]string{
	Optimal:           "optimal",
	OptimalInaccurate: "optimal_inaccurate",
	Infeasible:        "infeasible",
	Unbounded:         "unbounded",
	SolverError:       "solver_error",
	MaxIterations:     "max_iterations",
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}

	return statusNames[s]
}

// OK reports whether the status counts as a successful solve.
func (s Status) OK() bool { return s == Optimal || s == OptimalInaccurate }

// Result carries the minimizer and solve diagnostics.
type Result struct {
	// X is the minimizer; nil unless Status.OK().
	X []float64

	// Status is the terminal state.
	Status Status

	// Residual is the check the status was judged on: the complementarity
	// residual (NonnegQuad) or the ellipsoid excess max(0, zᵀBz−1) (L1Ball).
	Residual float64
}
